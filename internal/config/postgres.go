package config

// PostgresConfig points at the results database. An empty Url turns
// persistence off.
type PostgresConfig struct {
	Url string
}

func NewPostgresConfig() *PostgresConfig {
	return &PostgresConfig{
		Url: getEnv("DATABASE_URL", ""),
	}
}

func (c *PostgresConfig) Enabled() bool {
	return c.Url != ""
}
