package config

import (
	"os"
	"path/filepath"
)

// GetRuntimePath resolves the runtime directory before any config is parsed,
// so the .env file inside it can be loaded first.
func GetRuntimePath() string {
	path := os.Getenv("INTAKE_RUNTIME_PATH")
	if path == "" {
		path = ".intake"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
