package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"

	"pantry-keeper/internal/clipper"
	"pantry-keeper/internal/llm"
	"pantry-keeper/internal/metrics"
	"pantry-keeper/internal/pantry"
	"pantry-keeper/internal/recipe"
	"pantry-keeper/internal/shared"
	"pantry-keeper/internal/shopping"
	"pantry-keeper/internal/storage"
	"pantry-keeper/internal/suggest"

	"github.com/google/uuid"
)

// State holds the four entity collections. Mutations replace collections with
// derived copies; nothing is edited in place.
type State struct {
	Ingredients []pantry.Ingredient
	Recipes     []recipe.Recipe
	Shopping    []shopping.Item
	Stores      shopping.Registry
}

// App wires the entity collections to persistence and the generative-text
// collaborator, and exposes every mutation operation the presentation layer
// invokes.
type App struct {
	kv           *storage.KVStore
	textGen      llm.TextGenerator
	metricsStore *metrics.Store
	clip         *clipper.Clipper
	gate         *suggest.Gate
	rng          *rand.Rand

	state State
}

// NewApp creates and initializes a new App instance. rng is the injected
// randomness source for symbol selection; seed it for reproducible outcomes.
func NewApp(
	kv *storage.KVStore,
	textGen llm.TextGenerator,
	metricsStore *metrics.Store,
	clip *clipper.Clipper,
	rng *rand.Rand,
) *App {
	return &App{
		kv:           kv,
		textGen:      textGen,
		metricsStore: metricsStore,
		clip:         clip,
		gate:         suggest.NewGate(),
		rng:          rng,
	}
}

// Load restores the four collections from their stable keys. An absent key or
// a value that fails to unmarshal loads as an empty collection.
func (a *App) Load(ctx context.Context) error {
	a.state.Ingredients = loadCollection[pantry.Ingredient](ctx, a.kv, storage.KeyIngredients)
	a.state.Recipes = loadCollection[recipe.Recipe](ctx, a.kv, storage.KeyRecipes)
	a.state.Shopping = loadCollection[shopping.Item](ctx, a.kv, storage.KeyShoppingItems)
	a.state.Stores = shopping.Registry(loadCollection[string](ctx, a.kv, storage.KeyStoreRegistry))
	return nil
}

func loadCollection[T any](ctx context.Context, kv *storage.KVStore, key string) []T {
	raw, err := kv.Load(ctx, key)
	if err != nil {
		log.Printf("Warning: failed to load %s, starting empty: %v", key, err)
		return []T{}
	}
	if raw == "" {
		return []T{}
	}

	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		log.Printf("Warning: malformed %s snapshot, starting empty: %v", key, err)
		return []T{}
	}
	return out
}

func (a *App) save(ctx context.Context, key string, collection any) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return a.kv.Save(ctx, key, string(data))
}

// Ingredients returns the current ingredient store.
func (a *App) Ingredients() []pantry.Ingredient { return a.state.Ingredients }

// Recipes returns the current recipe catalog.
func (a *App) Recipes() []recipe.Recipe { return a.state.Recipes }

// ShoppingItems returns the current flat shopping list.
func (a *App) ShoppingItems() []shopping.Item { return a.state.Shopping }

// Stores returns the store labels ever used, for entry suggestions.
func (a *App) Stores() shopping.Registry { return a.state.Stores }

// ClassifyRecipes runs the classifier over the current collections.
func (a *App) ClassifyRecipes(filter recipe.Filter) []recipe.Match {
	return recipe.Classify(a.state.Recipes, a.state.Ingredients, filter)
}

// ShoppingByStore returns the grouped shopping view.
func (a *App) ShoppingByStore() []shopping.StoreGroup {
	return shopping.GroupByStore(a.state.Shopping)
}

// AddIngredient validates and stores a new ingredient.
func (a *App) AddIngredient(ctx context.Context, ing pantry.Ingredient) error {
	if ing.ID == "" {
		ing.ID = uuid.NewString()
	}
	next, err := pantry.Add(a.state.Ingredients, ing)
	if err != nil {
		return err
	}
	a.state.Ingredients = next
	return a.save(ctx, storage.KeyIngredients, next)
}

// UpdateIngredient replaces an ingredient by ID.
func (a *App) UpdateIngredient(ctx context.Context, ing pantry.Ingredient) error {
	next, err := pantry.Update(a.state.Ingredients, ing)
	if err != nil {
		return err
	}
	a.state.Ingredients = next
	return a.save(ctx, storage.KeyIngredients, next)
}

// RemoveIngredient deletes an ingredient by ID.
func (a *App) RemoveIngredient(ctx context.Context, id string) error {
	next := pantry.Remove(a.state.Ingredients, id)
	a.state.Ingredients = next
	return a.save(ctx, storage.KeyIngredients, next)
}

// AddRecipe validates a user-submitted recipe, applies the duplicate rule,
// and appends it to the catalog.
func (a *App) AddRecipe(ctx context.Context, r recipe.Recipe) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	next, err := recipe.Add(a.state.Recipes, r)
	if err != nil {
		return err
	}
	a.state.Recipes = next
	return a.save(ctx, storage.KeyRecipes, next)
}

// UpdateRecipe replaces a recipe by ID, re-applying the duplicate rule.
func (a *App) UpdateRecipe(ctx context.Context, r recipe.Recipe) error {
	next, err := recipe.Update(a.state.Recipes, r)
	if err != nil {
		return err
	}
	a.state.Recipes = next
	return a.save(ctx, storage.KeyRecipes, next)
}

// RemoveRecipe deletes a recipe by ID.
func (a *App) RemoveRecipe(ctx context.Context, id string) error {
	next := recipe.Remove(a.state.Recipes, id)
	a.state.Recipes = next
	return a.save(ctx, storage.KeyRecipes, next)
}

// SetRecipeStatus changes the status tag of a recipe.
func (a *App) SetRecipeStatus(ctx context.Context, id string, status recipe.Status) error {
	for _, r := range a.state.Recipes {
		if r.ID == id {
			r.Status = status
			return a.UpdateRecipe(ctx, r)
		}
	}
	return fmt.Errorf("recipe %s not found", id)
}

// AddShoppingItem validates and stores a new shopping entry, recording its
// store label in the registry.
func (a *App) AddShoppingItem(ctx context.Context, name, store, priceText string) error {
	it, err := shopping.NewItem(uuid.NewString(), name, store, priceText)
	if err != nil {
		return err
	}

	a.state.Shopping = shopping.Add(a.state.Shopping, it)
	if err := a.save(ctx, storage.KeyShoppingItems, a.state.Shopping); err != nil {
		return err
	}

	a.state.Stores = a.state.Stores.Register(it.Store)
	return a.save(ctx, storage.KeyStoreRegistry, a.state.Stores)
}

// ToggleShoppingDone flips an item's completed flag.
func (a *App) ToggleShoppingDone(ctx context.Context, id string) error {
	a.state.Shopping = shopping.ToggleDone(a.state.Shopping, id)
	return a.save(ctx, storage.KeyShoppingItems, a.state.Shopping)
}

// RemoveShoppingItem deletes an item by ID.
func (a *App) RemoveShoppingItem(ctx context.Context, id string) error {
	a.state.Shopping = shopping.Remove(a.state.Shopping, id)
	return a.save(ctx, storage.KeyShoppingItems, a.state.Shopping)
}

// AddMissingToShopping pre-fills shopping entries from a recipe's missing
// ingredients, one zero-priced unspecified-store item per missing requirement.
func (a *App) AddMissingToShopping(ctx context.Context, recipeID string) error {
	for _, r := range a.state.Recipes {
		if r.ID != recipeID {
			continue
		}
		for _, name := range pantry.Missing(a.state.Ingredients, r.Ingredients) {
			if err := a.AddShoppingItem(ctx, name, "", ""); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("recipe %s not found", recipeID)
}

// EstimateExpiry asks the collaborator for a use-by date for the ingredient
// and applies it when one is found. A no-date response leaves the ingredient
// untouched.
func (a *App) EstimateExpiry(ctx context.Context, ingredientID string) (string, error) {
	if err := a.gate.TryAcquire(suggest.KindExpiry); err != nil {
		return "", err
	}
	defer a.gate.Release(suggest.KindExpiry)

	var target *pantry.Ingredient
	for i := range a.state.Ingredients {
		if a.state.Ingredients[i].ID == ingredientID {
			target = &a.state.Ingredients[i]
			break
		}
	}
	if target == nil {
		return "", fmt.Errorf("ingredient %s not found", ingredientID)
	}

	date, meta, err := suggest.EstimateExpiry(ctx, a.textGen, *target)
	a.recordMeta(ctx, meta)
	if err != nil {
		return "", err
	}
	if date == "" {
		return "", nil
	}

	updated := *target
	updated.ExpiresAt = date
	return date, a.UpdateIngredient(ctx, updated)
}

// DiscoverRecipe asks the collaborator for one recipe over the selected
// ingredient names. The result is provisional: it lives outside the catalog
// until AcceptSuggestion or RejectSuggestion.
func (a *App) DiscoverRecipe(ctx context.Context, selected []string) (recipe.Recipe, error) {
	if err := a.gate.TryAcquire(suggest.KindDiscovery); err != nil {
		return recipe.Recipe{}, err
	}
	defer a.gate.Release(suggest.KindDiscovery)

	prov, meta, err := suggest.DiscoverRecipe(ctx, a.textGen, selected, a.rng)
	a.recordMeta(ctx, meta)
	return prov, err
}

// ImportRecipe fetches a web page and extracts a provisional recipe from it.
func (a *App) ImportRecipe(ctx context.Context, url string) (recipe.Recipe, error) {
	if err := a.gate.TryAcquire(suggest.KindImport); err != nil {
		return recipe.Recipe{}, err
	}
	defer a.gate.Release(suggest.KindImport)

	prov, meta, err := a.clip.ImportFromURL(ctx, url, a.rng)
	a.recordMeta(ctx, meta)
	return prov, err
}

// AcceptSuggestion confirms a provisional recipe: it gets a permanent
// identity and the chosen disposition, passes the same duplicate rule as
// manual creation, and is inserted at the front of the catalog.
func (a *App) AcceptSuggestion(ctx context.Context, prov recipe.Recipe, disposition recipe.Status) (recipe.Recipe, error) {
	prov.ID = uuid.NewString()
	prov.Status = disposition

	next, err := recipe.Prepend(a.state.Recipes, prov)
	if err != nil {
		return recipe.Recipe{}, err
	}
	a.state.Recipes = next
	return next[0], a.save(ctx, storage.KeyRecipes, next)
}

// RejectSuggestion discards a provisional recipe. The catalog is untouched;
// the method exists so the presentation layer has an explicit disposition for
// both outcomes.
func (a *App) RejectSuggestion(prov recipe.Recipe) {
	// Provisional recipes are never in the catalog, so there is nothing to
	// remove.
}

func (a *App) recordMeta(ctx context.Context, meta shared.CallMeta) {
	if a.metricsStore == nil || meta.Operation == "" {
		return
	}
	if err := a.metricsStore.RecordMeta(ctx, meta); err != nil {
		log.Printf("Warning: failed to record call metrics: %v", err)
	}
}
