package suggest

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"regexp"
	"strings"
	"text/template"
	"time"

	"pantry-keeper/internal/llm"
	"pantry-keeper/internal/pantry"
	"pantry-keeper/internal/shared"
)

//go:embed expiry_prompt.md
var expiryPrompt string

// ErrInvalidEstimate is the semantic rejection for the collaborator's INVALID
// sentinel. The user may correct the input and resubmit; no retry is automatic.
var ErrInvalidEstimate = errors.New("collaborator rejected the item as invalid")

var datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// EstimateExpiry asks the collaborator for a use-by date for the ingredient.
// A response containing the INVALID sentinel is a hard rejection and no date
// is applied. Otherwise the first YYYY-MM-DD substring is returned; a response
// with no such substring yields an empty date and no error.
func EstimateExpiry(
	ctx context.Context,
	textGen llm.TextGenerator,
	ing pantry.Ingredient,
) (string, shared.CallMeta, error) {
	start := time.Now()

	prompt, err := buildExpiryPrompt(ing)
	if err != nil {
		return "", shared.CallMeta{}, err
	}

	resp, err := textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return "", shared.CallMeta{Operation: "expiry"}, err
	}

	meta := shared.CallMeta{
		Operation: "expiry",
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}

	if strings.Contains(resp.Content, "INVALID") {
		return "", meta, ErrInvalidEstimate
	}

	return datePattern.FindString(resp.Content), meta, nil
}

func buildExpiryPrompt(ing pantry.Ingredient) (string, error) {
	tmpl, err := template.New("expiry").Parse(expiryPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ing); err != nil {
		return "", err
	}

	return buf.String(), nil
}
