package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Supported values of STORE_DRIVER.
const (
	DriverMongo = "mongo"
	DriverMySQL = "mysql"
)

// Config holds the process settings read from the environment.
type Config struct {
	Port          string
	Env           string
	StoreDriver   string
	MongoURI      string
	MongoDatabase string
	DatabaseDSN   string
	JWTSecret     string
	BcryptCost    int
	LogLevel      slog.Level
}

// Load reads the configuration from the environment. It exits the process on an
// unsupported store driver, or on a missing JWT_SECRET in production.
func Load() Config {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", getEnv("NAME_DB", "lifeline")),
		DatabaseDSN:   getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/lifeline?parseTime=true"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		BcryptCost:    getEnvInt("BCRYPT_COST", 10),
		LogLevel:      getEnvLevel("LOG_LEVEL", slog.LevelInfo),
	}

	if cfg.StoreDriver != DriverMongo && cfg.StoreDriver != DriverMySQL {
		slog.Error("unsupported STORE_DRIVER", "driver", cfg.StoreDriver)
		os.Exit(1)
	}

	if cfg.JWTSecret == "" {
		if cfg.Env == "production" {
			slog.Error("JWT_SECRET must be set in production environment")
			os.Exit(1)
		}
		slog.Warn("JWT_SECRET is not set; signup, login and authenticated routes will fail")
	}

	return cfg
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
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v)
		return fallback
	}
	return n
}

func getEnvLevel(key string, fallback slog.Level) slog.Level {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		slog.Warn("invalid log level, using default", "key", key, "value", v)
		return fallback
	}
	return level
}
