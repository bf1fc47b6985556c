package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/studio27se/ehub/internal/logfields"
)

// envFiles in precedence order. godotenv never overrides variables that are
// already set, so earlier files win and the process environment beats both.
var envFiles = []string{".env.local", ".env"}

// loadEnvFiles loads every env file that exists in the working directory.
func loadEnvFiles() error {
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		slog.Debug("Loaded environment variables", logfields.File(name))
	}
	return nil
}
