package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the configuration for the application.
type Config struct {
	GeminiAPIKey string
	GroqAPIKey   string

	// LLMBackend selects the text generator: "gemini" (default) or "groq".
	LLMBackend string

	// DatabasePath is the location of the local SQLite store.
	DatabasePath string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	backend := os.Getenv("PANTRY_LLM_BACKEND")
	if backend == "" {
		backend = "gemini"
	}

	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	groqAPIKey := os.Getenv("GROQ_API_KEY")

	switch backend {
	case "gemini":
		if geminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	case "groq":
		if groqAPIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY environment variable not set")
		}
	default:
		return nil, fmt.Errorf("unknown PANTRY_LLM_BACKEND %q (expected gemini or groq)", backend)
	}

	dbPath := os.Getenv("PANTRY_DB_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory for default database path: %w", err)
		}
		dbPath = filepath.Join(home, ".pantry-keeper", "pantry.db")
	}

	return &Config{
		GeminiAPIKey: geminiAPIKey,
		GroqAPIKey:   groqAPIKey,
		LLMBackend:   backend,
		DatabasePath: dbPath,
	}, nil
}
