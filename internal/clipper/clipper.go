package clipper

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"pantry-keeper/internal/llm"
	"pantry-keeper/internal/recipe"
	"pantry-keeper/internal/shared"
	"pantry-keeper/internal/suggest"

	"github.com/PuerkitoBio/goquery"
)

// Clipper imports recipes from web pages.
type Clipper struct {
	textGen    llm.TextGenerator
	httpClient *http.Client
}

// NewClipper creates a new Clipper instance.
func NewClipper(textGen llm.TextGenerator) *Clipper {
	return &Clipper{
		textGen: textGen,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ImportFromURL fetches the page, extracts a recipe via the collaborator, and
// returns a provisional recipe carrying the source URL. The provisional goes
// through the same accept/reject flow as discovered recipes.
func (c *Clipper) ImportFromURL(ctx context.Context, url string, rng *rand.Rand) (recipe.Recipe, shared.CallMeta, error) {
	start := time.Now()

	content, err := c.fetchAndCleanHTML(ctx, url)
	if err != nil {
		return recipe.Recipe{}, shared.CallMeta{}, fmt.Errorf("failed to fetch content: %w", err)
	}

	prompt := fmt.Sprintf(`
You are a recipe extraction expert. Extract the recipe from the following page content.
List every ingredient as a BARE NOUN: no quantities, no units, no qualifiers.
Return the result strictly as a JSON object with this structure:
{
  "title": "Recipe Title",
  "ingredients": ["ingredient", "ingredient", ...]
}

Return ONLY the raw JSON string. Do not wrap the response in markdown code blocks.

Page Content:
%s
`, content)

	resp, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return recipe.Recipe{}, shared.CallMeta{Operation: "import"}, fmt.Errorf("ai extraction failed: %w", err)
	}

	meta := shared.CallMeta{
		Operation: "import",
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}

	payload, err := suggest.ParseSuggestion(resp.Content)
	if err != nil {
		return recipe.Recipe{}, meta, err
	}

	return suggest.NewProvisional(payload, url, rng), meta, nil
}

func (c *Clipper) fetchAndCleanHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save LLM tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return doc.Find("body").Text(), nil
}
