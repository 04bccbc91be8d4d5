package config

import (
	"testing"
)

func TestNewFromEnv(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		t.Setenv("PANTRY_LLM_BACKEND", "")
		t.Setenv("GEMINI_API_KEY", "gemini_key")
		t.Setenv("PANTRY_DB_PATH", "/tmp/pantry-test.db")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.GeminiAPIKey != "gemini_key" {
			t.Errorf("Expected GeminiAPIKey to be 'gemini_key', got '%s'", cfg.GeminiAPIKey)
		}
		if cfg.LLMBackend != "gemini" {
			t.Errorf("Expected default backend 'gemini', got '%s'", cfg.LLMBackend)
		}
		if cfg.DatabasePath != "/tmp/pantry-test.db" {
			t.Errorf("Expected DatabasePath '/tmp/pantry-test.db', got '%s'", cfg.DatabasePath)
		}
	})

	t.Run("MissingGeminiKey", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("PANTRY_LLM_BACKEND", "gemini")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing GEMINI_API_KEY, got nil")
		}
	})

	t.Run("GroqBackend", func(t *testing.T) {
		t.Setenv("PANTRY_LLM_BACKEND", "groq")
		t.Setenv("GROQ_API_KEY", "groq_key")
		t.Setenv("PANTRY_DB_PATH", "/tmp/pantry-test.db")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.GroqAPIKey != "groq_key" {
			t.Errorf("Expected GroqAPIKey to be 'groq_key', got '%s'", cfg.GroqAPIKey)
		}
	})

	t.Run("UnknownBackend", func(t *testing.T) {
		t.Setenv("PANTRY_LLM_BACKEND", "openai")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for unknown backend, got nil")
		}
	})

	t.Run("DefaultDatabasePath", func(t *testing.T) {
		t.Setenv("PANTRY_LLM_BACKEND", "")
		t.Setenv("GEMINI_API_KEY", "gemini_key")
		t.Setenv("PANTRY_DB_PATH", "")
		t.Setenv("HOME", "/tmp/pantry-home")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "/tmp/pantry-home/.pantry-keeper/pantry.db" {
			t.Errorf("Unexpected default DatabasePath: %s", cfg.DatabasePath)
		}
	})
}
