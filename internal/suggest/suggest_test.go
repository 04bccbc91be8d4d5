package suggest

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"pantry-keeper/internal/llm"
	"pantry-keeper/internal/pantry"
)

// mockTextGenerator is a canned-response implementation of llm.TextGenerator.
type mockTextGenerator struct {
	response    string
	shouldError bool
}

func (m *mockTextGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	if m.shouldError {
		return llm.ContentResponse{}, errors.New("LLM error")
	}
	return llm.ContentResponse{Content: m.response}, nil
}

func TestEstimateExpiry(t *testing.T) {
	ctx := context.Background()
	ing := pantry.Ingredient{
		Name:        "firm tofu",
		Category:    pantry.CategoryFridge,
		PurchasedAt: "2026-08-20",
	}

	t.Run("ExtractsFirstDate", func(t *testing.T) {
		gen := &mockTextGenerator{response: "Use by 2026-08-30, possibly 2026-09-02 if unopened."}

		date, _, err := EstimateExpiry(ctx, gen, ing)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if date != "2026-08-30" {
			t.Errorf("Expected first date '2026-08-30', got '%s'", date)
		}
	})

	t.Run("InvalidSentinel", func(t *testing.T) {
		gen := &mockTextGenerator{response: "INVALID"}

		date, _, err := EstimateExpiry(ctx, gen, ing)
		if !errors.Is(err, ErrInvalidEstimate) {
			t.Errorf("Expected ErrInvalidEstimate, got %v", err)
		}
		if date != "" {
			t.Errorf("No date must be applied on rejection, got '%s'", date)
		}
	})

	t.Run("NoDateIsNoOp", func(t *testing.T) {
		gen := &mockTextGenerator{response: "It should keep for about a week."}

		date, _, err := EstimateExpiry(ctx, gen, ing)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if date != "" {
			t.Errorf("Expected empty no-op result, got '%s'", date)
		}
	})

	t.Run("CollaboratorError", func(t *testing.T) {
		gen := &mockTextGenerator{shouldError: true}

		_, _, err := EstimateExpiry(ctx, gen, ing)
		if err == nil {
			t.Fatal("Expected an error from the collaborator, got nil")
		}
	})
}

func TestDiscoverRecipe(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(1))

	t.Run("Success", func(t *testing.T) {
		gen := &mockTextGenerator{response: `{"title":"Egg Rice","ingredients":["egg","rice","soy sauce"]}`}

		prov, _, err := DiscoverRecipe(ctx, gen, []string{"egg", "rice"}, rng)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if prov.Title != "Egg Rice" {
			t.Errorf("Expected title 'Egg Rice', got '%s'", prov.Title)
		}
		if !strings.HasPrefix(prov.ID, "draft-") {
			t.Errorf("Expected a transient draft identity, got '%s'", prov.ID)
		}
		if prov.Status != "none" {
			t.Errorf("Expected status none, got '%s'", prov.Status)
		}
		if prov.Symbol == "" {
			t.Error("Expected a display symbol to be picked")
		}
	})

	t.Run("CodeFencedPayloadParsesIdentically", func(t *testing.T) {
		plain := &mockTextGenerator{response: `{"title":"Egg Rice","ingredients":["egg","rice","soy sauce"]}`}
		fenced := &mockTextGenerator{response: "```json\n{\"title\":\"Egg Rice\",\"ingredients\":[\"egg\",\"rice\",\"soy sauce\"]}\n```"}

		a, _, err := DiscoverRecipe(ctx, plain, []string{"egg"}, rand.New(rand.NewSource(7)))
		if err != nil {
			t.Fatalf("Plain parse failed: %v", err)
		}
		b, _, err := DiscoverRecipe(ctx, fenced, []string{"egg"}, rand.New(rand.NewSource(7)))
		if err != nil {
			t.Fatalf("Fenced parse failed: %v", err)
		}

		if a.Title != b.Title || !reflect.DeepEqual(a.Ingredients, b.Ingredients) || a.Symbol != b.Symbol {
			t.Errorf("Fenced and plain payloads diverged: %+v vs %+v", a, b)
		}
	})

	t.Run("EmptySelection", func(t *testing.T) {
		gen := &mockTextGenerator{response: `{}`}

		_, _, err := DiscoverRecipe(ctx, gen, nil, rng)
		if !errors.Is(err, ErrNoIngredientsSelected) {
			t.Errorf("Expected ErrNoIngredientsSelected, got %v", err)
		}
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		gen := &mockTextGenerator{response: "sure! here is a recipe"}

		_, _, err := DiscoverRecipe(ctx, gen, []string{"egg"}, rng)
		if err == nil {
			t.Fatal("Expected a parse error, got nil")
		}
	})

	t.Run("MissingIngredientsField", func(t *testing.T) {
		gen := &mockTextGenerator{response: `{"title":"Egg Rice"}`}

		_, _, err := DiscoverRecipe(ctx, gen, []string{"egg"}, rng)
		if err == nil || !strings.Contains(err.Error(), "no ingredients") {
			t.Errorf("Expected an integrity error for the missing ingredients field, got %v", err)
		}
	})
}

func TestStripCodeFence(t *testing.T) {
	payload := `{"title":"Egg Rice"}`

	cases := []struct {
		name  string
		input string
	}{
		{"Unwrapped", payload},
		{"Fenced", "```\n" + payload + "\n```"},
		{"FencedWithLanguage", "```json\n" + payload + "\n```"},
		{"FencedWithWhitespace", "  ```json\n" + payload + "\n```  \n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripCodeFence(tc.input); got != payload {
				t.Errorf("StripCodeFence(%q) = %q, want %q", tc.input, got, payload)
			}
		})
	}
}

func TestPickSymbolIsSeedable(t *testing.T) {
	t.Run("KnownIngredientUsesTable", func(t *testing.T) {
		got := pickSymbol([]string{"egg"}, rand.New(rand.NewSource(42)))
		if got != ingredientSymbols["egg"] {
			t.Errorf("Expected the egg symbol, got %q", got)
		}
	})

	t.Run("UnknownIngredientsUsePalette", func(t *testing.T) {
		got := pickSymbol([]string{"durian"}, rand.New(rand.NewSource(42)))
		found := false
		for _, s := range dishPalette {
			if s == got {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected a palette symbol, got %q", got)
		}
	})

	t.Run("SameSeedSameSymbol", func(t *testing.T) {
		a := pickSymbol([]string{"egg", "rice", "pork"}, rand.New(rand.NewSource(3)))
		b := pickSymbol([]string{"egg", "rice", "pork"}, rand.New(rand.NewSource(3)))
		if a != b {
			t.Errorf("Seeded picks diverged: %q vs %q", a, b)
		}
	})
}

func TestGate(t *testing.T) {
	gate := NewGate()

	if err := gate.TryAcquire(KindDiscovery); err != nil {
		t.Fatalf("First acquire failed: %v", err)
	}

	if err := gate.TryAcquire(KindDiscovery); !errors.Is(err, ErrBusy) {
		t.Errorf("Expected ErrBusy for a second same-kind acquire, got %v", err)
	}

	// A different kind is not blocked.
	if err := gate.TryAcquire(KindExpiry); err != nil {
		t.Errorf("Different kind should acquire independently, got %v", err)
	}

	gate.Release(KindDiscovery)
	if err := gate.TryAcquire(KindDiscovery); err != nil {
		t.Errorf("Acquire after release failed: %v", err)
	}
}
