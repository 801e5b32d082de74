package config

import "os"

type AppConfig struct {
	DebugMode      bool
	LogLevel       string
	HarnessConfig  *HarnessConfig
	HTTPConfig     *HTTPConfig
	RedisConfig    *RedisConfig
	PostgresConfig *PostgresConfig
	JwtConfig      *JwtConfig
	AuthConfig     *AuthConfig
}

func NewSystemConfig() *AppConfig {
	logLevel := os.Getenv("LOG_LEVEL")
	debug := os.Getenv("DEBUG_MODE") == "true"
	if logLevel == "" && debug {
		logLevel = "debug"
	}
	return &AppConfig{
		DebugMode:      debug,
		LogLevel:       logLevel,
		HarnessConfig:  NewHarnessConfig(),
		HTTPConfig:     NewHTTPConfig(),
		RedisConfig:    NewRedisConfig(),
		PostgresConfig: NewPostgresConfig(),
		JwtConfig:      NewJwtConfig(),
		AuthConfig:     NewAuthConfig(),
	}
}
