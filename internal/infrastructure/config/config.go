package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`

	OTP   OTPConfig
	Mongo MongoConfig
	Redis RedisConfig
	SMS   SMSConfig
}

type OTPConfig struct {
	// Cooldown is the minimum interval between two codes for the same
	// (phone, purpose).
	Cooldown time.Duration `env:"OTP_COOLDOWN, default=60s"`
	// SendRate / SendBurst throttle the OTP endpoints per client IP.
	SendRate  float64 `env:"OTP_SEND_RATE,  default=1"`
	SendBurst int     `env:"OTP_SEND_BURST, default=5"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=plant_care"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMSConfig struct {
	// Region enables the SNS sender; when empty, messages are logged
	// instead of sent.
	Region   string `env:"SNS_REGION"`
	SenderID string `env:"SNS_SENDER_ID, default=BloomBuddy"`
	Workers  int    `env:"SMS_WORKERS,   default=4"`
}

// Production reports whether the service runs with production hardening
// (no devCode echo, secure cookies).
func (c *Config) Production() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
