package config

import (
	"os"
	"strconv"
)

type Config struct {
	// App
	AppName    string
	AppVersion string
	Debug      bool

	// Database
	DatabaseURL string

	// Security (kept for parity with deployments that set them; nothing
	// reads these yet — there is no auth layer)
	SecretKey                string
	Algorithm                string
	AccessTokenExpireMinutes int

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		AppName:    getEnv("APP_NAME", "Consultorio Management System"),
		AppVersion: getEnv("APP_VERSION", "0.1.0"),
		Debug:      parseBool(getEnv("DEBUG", "false")),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		SecretKey:                getEnv("SECRET_KEY", ""),
		Algorithm:                getEnv("ALGORITHM", "HS256"),
		AccessTokenExpireMinutes: parseInt(getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "30"), 30),

		Port:        getEnv("PORT", "8000"),
		CORSOrigins: getEnv("BACKEND_CORS_ORIGINS", "*"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
