package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string
	RedisAddr   string
	RedisDB     int
	JWTSecret   string
	StorageRoot string

	DiscordBotToken string

	PayoutSettingsCooldown time.Duration

	EnableRealtimeMessages bool
	EnableSessionExpirer   bool
	EnableOutboxRelay      bool
}

func Load() (Config, error) {
	// Missing .env is fine in deployed environments.
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "clipcast"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	storageRoot := os.Getenv("STORAGE_ROOT")
	if storageRoot == "" {
		storageRoot = "./data/uploads"
	}

	cooldown := 24 * time.Hour
	if raw := strings.TrimSpace(os.Getenv("PAYOUT_SETTINGS_COOLDOWN")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			cooldown = parsed
		}
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		RedisAddr:   redisAddr,
		RedisDB:     0,
		JWTSecret:   os.Getenv("JWT_SECRET"),
		StorageRoot: storageRoot,

		DiscordBotToken: os.Getenv("DISCORD_BOT_TOKEN"),

		PayoutSettingsCooldown: cooldown,

		EnableRealtimeMessages: envBool("ENABLE_REALTIME_MESSAGES", true),
		EnableSessionExpirer:   envBool("ENABLE_SESSION_EXPIRER", true),
		EnableOutboxRelay:      envBool("ENABLE_OUTBOX_RELAY", true),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
