package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the binaries read from the environment.
type Config struct {
	Env  string `envconfig:"env" default:"development"`
	Port int    `envconfig:"port" default:"8080"`

	PostgresHost     string `envconfig:"postgres_host" default:"localhost"`
	PostgresPort     int    `envconfig:"postgres_port" default:"5432"`
	PostgresUser     string `envconfig:"postgres_user" default:"user"`
	PostgresPassword string `envconfig:"postgres_password"`
	PostgresDB       string `envconfig:"postgres_db" default:"careline"`

	RedisAddr     string `envconfig:"redis_addr" default:"localhost:6379"`
	RedisPassword string `envconfig:"redis_password"`
	RedisDB       int    `envconfig:"redis_db"`

	JWTSecret      string `envconfig:"jwt_secret"`
	AllowedOrigins string `envconfig:"allowed_origins" default:"http://localhost:3000"`

	// Telegram admin alerts are optional; the bot stays off without a token.
	TelegramBotToken    string `envconfig:"telegram_bot_token"`
	TelegramAdminChatID int64  `envconfig:"telegram_admin_chat_id"`
}

// Load reads .env (outside release mode) and processes CARELINE_* vars.
func Load() (*Config, error) {
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Printf("couldn't load env vars: %v", err)
		}
	}

	c := &Config{}
	if err := envconfig.Process("careline", c); err != nil {
		return nil, err
	}
	return c, nil
}

// Production reports whether the service runs in production mode. Error
// details are stripped from API responses when it does.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// PostgresDSN assembles the gorm connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort)
}
