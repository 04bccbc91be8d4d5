package suggest

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"text/template"
	"time"

	"pantry-keeper/internal/llm"
	"pantry-keeper/internal/recipe"
	"pantry-keeper/internal/shared"

	"github.com/google/uuid"
)

//go:embed discover_prompt.md
var discoverPrompt string

// ErrNoIngredientsSelected is returned when discovery is requested with an
// empty selection.
var ErrNoIngredientsSelected = errors.New("no ingredients selected for discovery")

// Payload is the structured record expected from the collaborator.
type Payload struct {
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
}

// DiscoverRecipe asks the collaborator for exactly one recipe over the
// selected ingredient names and returns a provisional recipe held outside the
// catalog until the user confirms a disposition.
func DiscoverRecipe(
	ctx context.Context,
	textGen llm.TextGenerator,
	selected []string,
	rng *rand.Rand,
) (recipe.Recipe, shared.CallMeta, error) {
	start := time.Now()

	if len(selected) == 0 {
		return recipe.Recipe{}, shared.CallMeta{}, ErrNoIngredientsSelected
	}

	prompt, err := buildDiscoverPrompt(selected)
	if err != nil {
		return recipe.Recipe{}, shared.CallMeta{}, err
	}

	resp, err := textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return recipe.Recipe{}, shared.CallMeta{Operation: "discover"}, err
	}

	meta := shared.CallMeta{
		Operation: "discover",
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}

	payload, err := ParseSuggestion(resp.Content)
	if err != nil {
		return recipe.Recipe{}, meta, err
	}

	return NewProvisional(payload, "", rng), meta, nil
}

// ParseSuggestion strips any enclosing code-fence markup and parses the
// payload. A malformed structure, an empty title, or a missing ingredients
// list is terminal for the attempt; no partial recipe is created.
func ParseSuggestion(raw string) (Payload, error) {
	cleaned := StripCodeFence(raw)

	var payload Payload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return Payload{}, fmt.Errorf("failed to parse suggestion: %w. Response: %s", err, raw)
	}

	if strings.TrimSpace(payload.Title) == "" {
		return Payload{}, fmt.Errorf("suggestion has no title. Response: %s", raw)
	}
	if len(payload.Ingredients) == 0 {
		return Payload{}, fmt.Errorf("suggestion has no ingredients field. Response: %s", raw)
	}

	return payload, nil
}

// NewProvisional synthesizes a provisional recipe from a parsed payload: a
// transient identity, status none, and a symbol picked via the injected rng.
// The provisional is not subject to the duplicate rule until acceptance.
func NewProvisional(p Payload, sourceURL string, rng *rand.Rand) recipe.Recipe {
	ingredients := recipe.DedupRequirements(p.Ingredients)
	return recipe.Recipe{
		ID:          "draft-" + uuid.NewString(),
		Title:       p.Title,
		Ingredients: ingredients,
		SourceURL:   sourceURL,
		Status:      recipe.StatusNone,
		Symbol:      pickSymbol(ingredients, rng),
	}
}

// StripCodeFence removes one enclosing markdown code fence, with or without a
// language tag, returning the inner payload unchanged otherwise.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func buildDiscoverPrompt(selected []string) (string, error) {
	tmpl, err := template.New("discover").Parse(discoverPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Ingredients []string }{Ingredients: selected}); err != nil {
		return "", err
	}

	return buf.String(), nil
}
