package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort     = "4001"
	defaultMongoDB  = "flock"
	defaultTokenTTL = 4 * time.Hour
)

type Config struct {
	Port      string
	JWTSecret string
	TokenTTL  time.Duration

	MongoURI string
	MongoDB  string

	SQLitePath string
}

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env file not found")
	}
}

func GetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("environment variable %s is not set", key)
	}
	return value
}

// GetEnvDefault возвращает значение переменной или fallback, если она пустая
func GetEnvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

// Load собирает конфиг из окружения (после LoadEnv)
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("environment variable JWT_SECRET is not set")
	}

	ttl := defaultTokenTTL
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", raw, err)
		}
		ttl = parsed
	}

	return &Config{
		Port:       GetEnvDefault("PORT", defaultPort),
		JWTSecret:  secret,
		TokenTTL:   ttl,
		MongoURI:   os.Getenv("MONGO_URI"),
		MongoDB:    GetEnvDefault("MONGO_DB", defaultMongoDB),
		SQLitePath: GetEnvDefault("SQLITE_PATH", "flock.db"),
	}, nil
}

// PostgresDSN строка подключения к PostgreSQL из DB_* переменных
func PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		GetEnv("DB_HOST"),
		GetEnv("DB_USER"),
		GetEnv("DB_PASSWORD"),
		GetEnv("DB_NAME"),
		GetEnvDefault("DB_PORT", "5432"),
		GetEnvDefault("DB_SSLMODE", "disable"),
	)
}
