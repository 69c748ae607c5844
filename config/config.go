package config

import "os"

type Config struct {
	Port        string
	DatabaseDSN string
}

// Load reads the configuration from the environment, falling back to
// development defaults.
func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost user=shop password=shop dbname=shop port=5432 sslmode=disable"
	}
	return Config{Port: port, DatabaseDSN: dsn}
}
