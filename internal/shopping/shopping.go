package shopping

import (
	"errors"
)

// ErrNameRequired is returned when a shopping item is submitted without a name.
var ErrNameRequired = errors.New("shopping item name is required")

// StoreUnspecified is the sentinel store label for items with no store.
const StoreUnspecified = "unspecified"

// Item is a single shopping list entry. Price is a plain non-negative count
// in whole currency units, not minor units.
type Item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Store string `json:"store"`
	Price int    `json:"price"`
	Done  bool   `json:"done"`
}

// ParsePrice extracts a non-negative integer from arbitrary input text by
// stripping all non-digit characters. Input with no digits parses to zero,
// so "3,500원" is 3500 and "free" is 0.
func ParsePrice(input string) int {
	price := 0
	for _, r := range input {
		if r >= '0' && r <= '9' {
			price = price*10 + int(r-'0')
		}
	}
	return price
}

// NewItem validates and normalizes a submitted entry: a blank store label
// falls back to the sentinel, and the price text is parsed digit-wise.
func NewItem(id, name, store, priceText string) (Item, error) {
	if name == "" {
		return Item{}, ErrNameRequired
	}
	if store == "" {
		store = StoreUnspecified
	}
	return Item{
		ID:    id,
		Name:  name,
		Store: store,
		Price: ParsePrice(priceText),
	}, nil
}

// Add appends an item and returns a derived copy of the collection.
func Add(items []Item, it Item) []Item {
	next := make([]Item, 0, len(items)+1)
	next = append(next, items...)
	next = append(next, it)
	return next
}

// ToggleDone flips the completed flag of the item with the given ID and
// returns a derived copy. Unknown IDs are a no-op.
func ToggleDone(items []Item, id string) []Item {
	next := make([]Item, len(items))
	copy(next, items)
	for idx := range next {
		if next[idx].ID == id {
			next[idx].Done = !next[idx].Done
		}
	}
	return next
}

// Remove drops the item with the given ID. Removing an unknown ID is a no-op.
func Remove(items []Item, id string) []Item {
	next := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			next = append(next, it)
		}
	}
	return next
}

// StoreGroup is one per-store partition of the shopping list.
type StoreGroup struct {
	Store string
	Items []Item
	Total int
}

// GroupByStore partitions the flat list into per-store groups ordered by
// first appearance of each label. Items keep their original relative order
// within a group, and each group's Total accumulates its item prices, so the
// sum of group totals always equals the sum of item prices.
func GroupByStore(items []Item) []StoreGroup {
	groups := []StoreGroup{}
	index := map[string]int{}

	for _, it := range items {
		store := it.Store
		if store == "" {
			store = StoreUnspecified
		}

		i, ok := index[store]
		if !ok {
			i = len(groups)
			index[store] = i
			groups = append(groups, StoreGroup{Store: store})
		}
		groups[i].Items = append(groups[i].Items, it)
		groups[i].Total += it.Price
	}

	return groups
}

// Registry is the append-only set of store labels ever used, kept for entry
// suggestions. Labels are never pruned, even when the last item referencing
// a store is deleted.
type Registry []string

// Register returns a derived copy containing the label. Blank labels and the
// sentinel are not recorded.
func (r Registry) Register(store string) Registry {
	if store == "" || store == StoreUnspecified {
		return r
	}
	for _, s := range r {
		if s == store {
			return r
		}
	}
	next := make(Registry, 0, len(r)+1)
	next = append(next, r...)
	next = append(next, store)
	return next
}
