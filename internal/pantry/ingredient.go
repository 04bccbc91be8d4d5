package pantry

import (
	"errors"
	"fmt"
)

// ErrNameRequired is returned when an ingredient is submitted without a name.
var ErrNameRequired = errors.New("ingredient name is required")

// Category is the storage category of an ingredient.
type Category string

const (
	CategoryFridge    Category = "fridge"
	CategoryFreezer   Category = "freezer"
	CategoryPantry    Category = "pantry"
	CategoryCondiment Category = "condiment"
)

// Ingredient is a single owned food item.
type Ingredient struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Symbol      string   `json:"symbol"`
	Quantity    string   `json:"quantity"`
	Category    Category `json:"category"`
	PurchasedAt string   `json:"purchased_at"`
	ExpiresAt   string   `json:"expires_at,omitempty"`
	Label       string   `json:"label,omitempty"`
}

// Validate checks the ingredient's invariants.
func (i Ingredient) Validate() error {
	if i.Name == "" {
		return ErrNameRequired
	}
	return nil
}

// Add appends a new ingredient and returns a derived copy of the collection.
// The input slice is never mutated.
func Add(items []Ingredient, ing Ingredient) ([]Ingredient, error) {
	if err := ing.Validate(); err != nil {
		return nil, err
	}

	next := make([]Ingredient, 0, len(items)+1)
	next = append(next, items...)
	next = append(next, ing)
	return next, nil
}

// Update replaces the ingredient with a matching ID and returns a derived copy.
func Update(items []Ingredient, ing Ingredient) ([]Ingredient, error) {
	if err := ing.Validate(); err != nil {
		return nil, err
	}

	next := make([]Ingredient, len(items))
	copy(next, items)
	for idx := range next {
		if next[idx].ID == ing.ID {
			next[idx] = ing
			return next, nil
		}
	}
	return nil, fmt.Errorf("ingredient %s not found", ing.ID)
}

// Remove drops the ingredient with the given ID. Removing an unknown ID is a no-op.
func Remove(items []Ingredient, id string) []Ingredient {
	next := make([]Ingredient, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			next = append(next, it)
		}
	}
	return next
}
