package recipe

import (
	"sort"

	"pantry-keeper/internal/pantry"
)

// Filter is a recipe classification bucket.
type Filter string

const (
	// FilterNone means no bucket is selected; classification returns nothing.
	FilterNone   Filter = ""
	FilterReady  Filter = "ready"
	FilterAlmost Filter = "almost"
	FilterAlways Filter = "always"
	FilterWant   Filter = "want"
	FilterAll    Filter = "all"
)

// Match pairs a recipe with the requirements the pantry does not cover.
type Match struct {
	Recipe  Recipe
	Missing []string
}

// Classify computes missing ingredients for every recipe, keeps those matching
// the filter bucket, and sorts the result ascending by missing count. The sort
// is stable: ties keep their original relative order. Classify is pure over
// its inputs and never mutates the given collections.
//
// The always/want buckets are unconditional on missing count; ready/almost
// apply only to recipes with no explicit status.
func Classify(catalog []Recipe, items []pantry.Ingredient, filter Filter) []Match {
	if filter == FilterNone {
		return []Match{}
	}

	matches := make([]Match, 0, len(catalog))
	for _, r := range catalog {
		missing := pantry.Missing(items, r.Ingredients)

		include := false
		switch filter {
		case FilterReady:
			include = len(missing) == 0 && r.Status == StatusNone
		case FilterAlmost:
			include = len(missing) > 0 && len(missing) <= 2 && r.Status == StatusNone
		case FilterAlways:
			include = r.Status == StatusAlways
		case FilterWant:
			include = r.Status == StatusWant
		case FilterAll:
			include = true
		}
		if include {
			matches = append(matches, Match{Recipe: r, Missing: missing})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return len(matches[i].Missing) < len(matches[j].Missing)
	})

	return matches
}
