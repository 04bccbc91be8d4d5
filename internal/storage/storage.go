package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Stable keys under which the four entity collections are persisted.
const (
	KeyIngredients   = "ingredients"
	KeyRecipes       = "recipes"
	KeyShoppingItems = "shopping_items"
	KeyStoreRegistry = "store_registry"
)

// KVStore persists serialized collection snapshots in the kv_store table.
type KVStore struct {
	db *sql.DB
}

// NewKVStore creates a new KVStore on an existing database connection.
func NewKVStore(db *sql.DB) *KVStore {
	return &KVStore{db: db}
}

// Load returns the serialized value stored under key, or the empty string
// when the key has never been saved.
func (s *KVStore) Load(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to load key %q: %w", key, err)
	}
	return value, nil
}

// Save stores the serialized value under key, replacing any previous value.
func (s *KVStore) Save(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save key %q: %w", key, err)
	}
	return nil
}
