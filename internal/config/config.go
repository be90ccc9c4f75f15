package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DatabaseURL           string
	LocaleRoot            string
	AuthoritativeLanguage string
	LicenseVersion        string
	WorkerCount           int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	return &Config{
		DatabaseURL:           getEnv("DATABASE_URL", "postgres://localhost:5432/legalcode_catalog?sslmode=disable"),
		LocaleRoot:            getEnv("LOCALE_ROOT", "locale.licenses"),
		AuthoritativeLanguage: getEnv("AUTHORITATIVE_LANGUAGE", "en"),
		LicenseVersion:        getEnv("LICENSE_VERSION", "4.0"),
		WorkerCount:           getEnvInt("WORKER_COUNT", 4),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
