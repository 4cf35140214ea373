package config

import (
	"fmt"
	"os"
	"strings"
)

// LoadSecret resolves a credential-bearing setting such as the cache DSN.
// The variable itself wins, then the file named by <envVar>_FILE (Docker
// secrets), then fallback. A _FILE that cannot be read or is empty is an
// error rather than a silent fallback.
func LoadSecret(envVar, fallback string) (string, error) {
	if value := os.Getenv(envVar); value != "" {
		return value, nil
	}

	fileVar := envVar + "_FILE"
	path := os.Getenv(fileVar)
	if path == "" {
		return fallback, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%s: failed to read secret file: %w", fileVar, err)
	}
	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", fmt.Errorf("%s: secret file %s is empty", fileVar, path)
	}
	return value, nil
}
