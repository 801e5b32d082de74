package config

import (
	"os"
	"time"
)

type JwtConfig struct {
	Secret string
	TTL    time.Duration
}

func NewJwtConfig() *JwtConfig {
	return &JwtConfig{
		Secret: os.Getenv("JWT_SECRET"),
		TTL:    time.Duration(getIntEnv("JWT_TTL_MIN", 60)) * time.Minute,
	}
}

// AuthConfig holds the single API account of the results service
type AuthConfig struct {
	User         string
	PasswordHash string
}

func NewAuthConfig() *AuthConfig {
	return &AuthConfig{
		User:         getEnv("API_USER", "harness"),
		PasswordHash: os.Getenv("API_PASSWORD_HASH"),
	}
}
