package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	Postgres Postgres

	RecommendMaxResults int
}

type Postgres struct {
	Host    string
	Port    int
	User    string
	Pass    string
	DB      string
	SSLMode string
}

func Load() Config {
	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		Postgres: Postgres{
			Host:    getEnv("POSTGRES_HOST", "localhost"),
			Port:    getEnvInt("POSTGRES_PORT", 5432),
			User:    getEnv("POSTGRES_USER", "fixshop"),
			Pass:    getEnv("POSTGRES_PASSWORD", "fixshoppassword"),
			DB:      getEnv("POSTGRES_DB", "fixshop_db"),
			SSLMode: getEnv("POSTGRES_SSLMODE", "disable"),
		},
		RecommendMaxResults: getEnvInt("RECOMMEND_MAX_RESULTS", 5),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}
