package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Config holds process settings read from the environment.
type Config struct {
	Port     string
	LogLevel string

	StoreDriver string
	MongoURI    string
	MongoDB     string
	PostgresURI string

	RedisAddr string
	CacheTTL  time.Duration

	JWTSecret string
	JWTTTL    time.Duration

	CORSOrigins []string
}

// Load reads the environment. Call godotenv.Load first if a .env file should be honored.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getenv("PORT", "5000"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		StoreDriver: strings.ToLower(getenv("STORE_DRIVER", DriverMongo)),
		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDB:     getenv("MONGO_DB", "devconnector"),
		PostgresURI: os.Getenv("POSTGRES_URI"),
		RedisAddr:   firstEnv("REDIS_ADDR", "REDIS_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		CORSOrigins: splitList(getenv("CORS_ORIGINS", "*")),
	}

	var err error
	if cfg.CacheTTL, err = durationEnv("CACHE_TTL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.JWTTTL, err = durationEnv("JWT_TTL", 100*time.Hour); err != nil {
		return nil, err
	}

	switch cfg.StoreDriver {
	case DriverMongo:
		if cfg.MongoURI == "" {
			return nil, errors.New("MONGO_URI environment variable is not set")
		}
	case DriverPostgres:
		if cfg.PostgresURI == "" {
			return nil, errors.New("POSTGRES_URI environment variable is not set")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is not set")
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
