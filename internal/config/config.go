package config

import (
	"os"
	"strconv"
	"strings"

	"rpsduel/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// InstanceTag binds commitments to this deployment.
	InstanceTag string
	// AdminAddresses may mutate engine policy and mint dev funds.
	AdminAddresses []string

	// Engine policy defaults (admin-tunable at runtime)
	EntryFee             int64
	RevealWindowSeconds  int64
	StartingBalance      int64 // granted to accounts on first auth, 0 disables
	APIRateLimit         int
	APIRateWindowSeconds int

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment, .env included.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	instance := os.Getenv("INSTANCE_TAG")
	if instance == "" {
		instance = "rpsduel-v1"
	}

	var admins []string
	if v := os.Getenv("ADMIN_ADDRESSES"); v != "" {
		for _, a := range strings.Split(v, ",") {
			if a = strings.TrimSpace(a); a != "" {
				admins = append(admins, a)
			}
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		AppPort:              port,
		DatabaseURL:          dbURL,
		JWTSecret:            jwtSecret,
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RedisDB:              redisDB,
		InstanceTag:          instance,
		AdminAddresses:       admins,
		EntryFee:             envInt64("ENTRY_FEE", 100),
		RevealWindowSeconds:  envInt64("REVEAL_WINDOW_SECONDS", 600),
		StartingBalance:      envInt64("STARTING_BALANCE", 10000),
		APIRateLimit:         envInt("API_RATE_LIMIT", 60),
		APIRateWindowSeconds: envInt("API_RATE_WINDOW_SECONDS", 60),
		LogLevel:             envDefault("LOG_LEVEL", "info"),
		LogJSON:              os.Getenv("LOG_JSON") == "true",
	}
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
