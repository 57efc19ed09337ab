package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Upstream ERP API
	ERPBaseURL    string
	ERPAPITimeout time.Duration

	// Redis session store
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration

	// Debounce window for upstream product searches
	SearchDebounceInterval time.Duration

	// Requests per minute per client
	RateLimit int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ERP_API_BASE_URL", "")
	viper.SetDefault("ERP_API_TIMEOUT", "15s")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SESSION_TTL", "2h")
	viper.SetDefault("SEARCH_DEBOUNCE_INTERVAL", "500ms")
	viper.SetDefault("RATE_LIMIT", 120)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.ERPBaseURL = viper.GetString("ERP_API_BASE_URL")
	if cfg.ERPBaseURL == "" {
		log.Println("Warning: ERP_API_BASE_URL environment variable not set.")
	}

	cfg.ERPAPITimeout = parseDurationOr("ERP_API_TIMEOUT", 15*time.Second)

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")
	cfg.SessionTTL = parseDurationOr("SESSION_TTL", 2*time.Hour)

	cfg.SearchDebounceInterval = parseDurationOr("SEARCH_DEBOUNCE_INTERVAL", 500*time.Millisecond)

	cfg.RateLimit = viper.GetInt("RATE_LIMIT")
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 120
		log.Printf("Warning: Invalid value for RATE_LIMIT. Defaulting to %d.\n", cfg.RateLimit)
	}

	return cfg, nil
}

func parseDurationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
