package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	BotToken      string `env:"BOT_TOKEN,required"`
	ChannelLink   string `env:"TELEGRAM_CHANNEL_LINK" envDefault:"https://t.me/your_channel"`
	OwnerUsername string `env:"OWNER_USERNAME"`
	// Chat id the daily digest is delivered to; zero disables the digest.
	OwnerChatID int64 `env:"OWNER_CHAT_ID"`

	// Storage
	PostgresDSN   string `env:"POSTGRES_DSN"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	SessionTTL    int    `env:"SESSION_TTL_HOURS" envDefault:"24"`

	// Draw cooldown ledger: "events" reads the lock from the event log,
	// "file" keeps the legacy usage.json next to the binary.
	LedgerBackend string `env:"LEDGER_BACKEND" envDefault:"events"`
	UsageFilePath string `env:"USAGE_FILE_PATH" envDefault:"data/usage.json"`

	WelcomePhotoPath string        `env:"WELCOME_PHOTO_PATH" envDefault:"welcome.jpg"`
	BroadcastDelay   time.Duration `env:"BROADCAST_DELAY" envDefault:"100ms"`

	// Cron spec for the daily owner digest; empty disables it.
	DigestCron string `env:"DIGEST_CRON"`
}

func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
