package env

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Dir holds the per environment .env files.
var Dir = filepath.Join("internal", "config", "env")

// LoadEnv loads the first .env file found for the current ENV and returns its
// path, or "" when none exists. Variables already set in the process win.
func LoadEnv() string {
	name := os.Getenv("ENV")
	if name == "" {
		name = "development"
	}

	candidates := []string{
		filepath.Join(Dir, fmt.Sprintf(".env.%s", name)),
		".env",
	}
	for _, path := range candidates {
		if err := godotenv.Load(path); err == nil {
			return path
		}
	}
	return ""
}
