package recipe

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTitleRequired is returned when a recipe is submitted without a title.
	ErrTitleRequired = errors.New("recipe title is required")
	// ErrDuplicate is returned when a recipe collides with an existing catalog
	// entry on both trimmed title and requirement set.
	ErrDuplicate = errors.New("recipe already exists")
)

// Status is the user-assigned tag on a recipe.
type Status string

const (
	StatusNone   Status = "none"
	StatusAlways Status = "always" // always wanted
	StatusWant   Status = "want"   // want to try
)

// Recipe is a catalog entry. Ingredients holds bare requirement names, ordered
// but deduplicated, with no empty entries.
type Recipe struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	SourceURL   string   `json:"source_url,omitempty"`
	Status      Status   `json:"status"`
	Symbol      string   `json:"symbol"`
}

// DedupRequirements drops empty entries and exact-string duplicates while
// preserving first-occurrence order.
func DedupRequirements(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// sameRequirementSet reports order-independent equality of two deduplicated
// requirement lists.
func sameRequirementSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, n := range a {
		set[n] = struct{}{}
	}
	for _, n := range b {
		if _, ok := set[n]; !ok {
			return false
		}
	}
	return true
}

// conflicts reports whether two recipes collide under the duplicate rule:
// identical trimmed title and identical order-independent requirement set.
func conflicts(a, b Recipe) bool {
	return strings.TrimSpace(a.Title) == strings.TrimSpace(b.Title) &&
		sameRequirementSet(a.Ingredients, b.Ingredients)
}

// validate checks invariants and normalizes the requirement list.
func validate(r *Recipe) error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrTitleRequired
	}
	r.Ingredients = DedupRequirements(r.Ingredients)
	if r.Status == "" {
		r.Status = StatusNone
	}
	return nil
}

// Add validates the recipe, applies the duplicate rule against the catalog,
// and returns a derived copy with the recipe appended.
func Add(catalog []Recipe, r Recipe) ([]Recipe, error) {
	if err := validate(&r); err != nil {
		return nil, err
	}
	for _, existing := range catalog {
		if conflicts(existing, r) {
			return nil, ErrDuplicate
		}
	}

	next := make([]Recipe, 0, len(catalog)+1)
	next = append(next, catalog...)
	next = append(next, r)
	return next, nil
}

// Prepend is Add with front insertion, used when accepting an AI suggestion.
func Prepend(catalog []Recipe, r Recipe) ([]Recipe, error) {
	if err := validate(&r); err != nil {
		return nil, err
	}
	for _, existing := range catalog {
		if conflicts(existing, r) {
			return nil, ErrDuplicate
		}
	}

	next := make([]Recipe, 0, len(catalog)+1)
	next = append(next, r)
	next = append(next, catalog...)
	return next, nil
}

// Update replaces the recipe with a matching ID, applying the duplicate rule
// against every other catalog entry, and returns a derived copy.
func Update(catalog []Recipe, r Recipe) ([]Recipe, error) {
	if err := validate(&r); err != nil {
		return nil, err
	}
	for _, existing := range catalog {
		if existing.ID != r.ID && conflicts(existing, r) {
			return nil, ErrDuplicate
		}
	}

	next := make([]Recipe, len(catalog))
	copy(next, catalog)
	for idx := range next {
		if next[idx].ID == r.ID {
			next[idx] = r
			return next, nil
		}
	}
	return nil, fmt.Errorf("recipe %s not found", r.ID)
}

// Remove drops the recipe with the given ID. Removing an unknown ID is a no-op.
func Remove(catalog []Recipe, id string) []Recipe {
	next := make([]Recipe, 0, len(catalog))
	for _, r := range catalog {
		if r.ID != id {
			next = append(next, r)
		}
	}
	return next
}
