package clipper

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"pantry-keeper/internal/llm"
)

type mockTextGenerator struct {
	response    string
	shouldError bool
	lastPrompt  string
}

func (m *mockTextGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.lastPrompt = prompt
	if m.shouldError {
		return llm.ContentResponse{}, errors.New("LLM error")
	}
	return llm.ContentResponse{Content: m.response}, nil
}

const testPage = `<html><head><style>body{}</style></head><body>
<script>var ads = 1;</script>
<h1>Kimchi Fried Rice</h1>
<ul><li>kimchi</li><li>rice</li><li>egg</li></ul>
<footer>subscribe to our newsletter</footer>
</body></html>`

func TestImportFromURL(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(1))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testPage))
	}))
	defer server.Close()

	t.Run("Success", func(t *testing.T) {
		gen := &mockTextGenerator{response: `{"title":"Kimchi Fried Rice","ingredients":["kimchi","rice","egg"]}`}
		c := NewClipper(gen)

		prov, _, err := c.ImportFromURL(ctx, server.URL, rng)
		if err != nil {
			t.Fatalf("ImportFromURL failed: %v", err)
		}
		if prov.Title != "Kimchi Fried Rice" {
			t.Errorf("Expected title 'Kimchi Fried Rice', got '%s'", prov.Title)
		}
		if prov.SourceURL != server.URL {
			t.Errorf("Expected source URL %q, got %q", server.URL, prov.SourceURL)
		}
		if !strings.HasPrefix(prov.ID, "draft-") {
			t.Errorf("Expected a provisional draft identity, got '%s'", prov.ID)
		}
		if !reflect.DeepEqual(prov.Ingredients, []string{"kimchi", "rice", "egg"}) {
			t.Errorf("Unexpected ingredients: %v", prov.Ingredients)
		}
	})

	t.Run("NoiseStrippedFromPrompt", func(t *testing.T) {
		gen := &mockTextGenerator{response: `{"title":"X","ingredients":["rice"]}`}
		c := NewClipper(gen)

		if _, _, err := c.ImportFromURL(ctx, server.URL, rng); err != nil {
			t.Fatalf("ImportFromURL failed: %v", err)
		}
		if strings.Contains(gen.lastPrompt, "var ads") {
			t.Error("Script content leaked into the prompt")
		}
		if strings.Contains(gen.lastPrompt, "newsletter") {
			t.Error("Footer content leaked into the prompt")
		}
		if !strings.Contains(gen.lastPrompt, "Kimchi Fried Rice") {
			t.Error("Page body missing from the prompt")
		}
	})

	t.Run("ParseFailureCreatesNoRecipe", func(t *testing.T) {
		gen := &mockTextGenerator{response: "not json"}
		c := NewClipper(gen)

		_, _, err := c.ImportFromURL(ctx, server.URL, rng)
		if err == nil {
			t.Fatal("Expected a parse error, got nil")
		}
	})

	t.Run("HTTPError", func(t *testing.T) {
		failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer failing.Close()

		c := NewClipper(&mockTextGenerator{})
		_, _, err := c.ImportFromURL(ctx, failing.URL, rng)
		if err == nil || !strings.Contains(err.Error(), "status 404") {
			t.Errorf("Expected a status error, got %v", err)
		}
	})
}
