package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv loads <environment>.env into the process environment. Variables
// already set win over the file. An empty environment name is a no-op.
func LoadEnv(environment string) error {
	if environment == "" {
		return nil
	}
	if err := godotenv.Load(environment + ".env"); err != nil {
		return fmt.Errorf("error loading %s.env file: %w", environment, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func getHexEnv(key string, fallback uint64) uint64 {
	value, err := strconv.ParseUint(os.Getenv(key), 16, 64)
	if err != nil {
		return fallback
	}
	return value
}

// getListEnv splits a comma separated variable, dropping empty items
func getListEnv(key string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
