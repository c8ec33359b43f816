package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// envFiles are loaded in order. godotenv never overrides a variable that is
// already set, so earlier files take precedence over later ones.
var envFiles = []string{".env.local", ".env"}

func loadEnvFiles() error {
	var errs []error
	for _, name := range envFiles {
		if _, err := os.Stat(name); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		slog.Debug("Loaded environment variables", slog.String("file", name))
	}
	return errors.Join(errs...)
}
