package suggest

import (
	"math/rand"
	"sort"
	"strings"
)

// ingredientSymbols maps ingredient keywords to display symbols.
var ingredientSymbols = map[string]string{
	"egg":      "🍳",
	"rice":     "🍚",
	"bread":    "🍞",
	"noodle":   "🍜",
	"ramen":    "🍜",
	"pasta":    "🍝",
	"tomato":   "🍅",
	"potato":   "🥔",
	"onion":    "🧅",
	"garlic":   "🧄",
	"carrot":   "🥕",
	"pork":     "🥓",
	"beef":     "🥩",
	"chicken":  "🍗",
	"fish":     "🐟",
	"shrimp":   "🦐",
	"tofu":     "🧆",
	"cheese":   "🧀",
	"milk":     "🥛",
	"apple":    "🍎",
	"lettuce":  "🥬",
	"pepper":   "🌶️",
	"corn":     "🌽",
	"mushroom": "🍄",
}

// dishPalette is the fallback set of generic dish symbols.
var dishPalette = []string{"🍽️", "🥘", "🍲", "🥗", "🍛"}

// pickSymbol chooses a display symbol for a suggested recipe: if any suggested
// ingredient matches a keyword in the symbol table, one matching symbol is
// picked at random; otherwise a symbol is picked uniformly from the generic
// dish palette. rng is injected so outcomes are reproducible.
func pickSymbol(ingredients []string, rng *rand.Rand) string {
	// Keywords are walked in sorted order so a seeded rng yields the same
	// symbol on every run.
	keywords := make([]string, 0, len(ingredientSymbols))
	for k := range ingredientSymbols {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)

	var matches []string
	for _, ing := range ingredients {
		for _, keyword := range keywords {
			if strings.Contains(ing, keyword) {
				matches = append(matches, ingredientSymbols[keyword])
			}
		}
	}
	if len(matches) > 0 {
		return matches[rng.Intn(len(matches))]
	}
	return dishPalette[rng.Intn(len(dishPalette))]
}
