package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads .env.local, .env.<appEnv> and .env in that priority.
// godotenv never overwrites variables that are already set, so the real
// environment always wins. Returns the files actually loaded.
func LoadDotEnv(appEnv string) []string {
	candidates := []string{".env.local"}
	if appEnv != "" && appEnv != "local" {
		candidates = append(candidates, ".env."+appEnv)
	}
	candidates = append(candidates, ".env")

	var loaded []string
	for _, f := range candidates {
		if _, err := os.Stat(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...)
	}
	return loaded
}

// AppEnv returns APP_ENV, defaulting to local
func AppEnv() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	return "local"
}

// PathFor returns the config file for env
func PathFor(env string) string {
	return "configs/config." + env + ".yaml"
}
