package util

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultRoomTTL = 12 * time.Hour

type Config struct {
	TokenSecret    string        `mapstructure:"TOKEN_SECRET" validate:"required,min=32"`
	TokenKind      string        `mapstructure:"TOKEN_KIND" validate:"oneof=jwt paseto"`
	RedisAddress   string        `mapstructure:"REDIS_ADDR" validate:"required"`
	RedisPassword  string        `mapstructure:"REDIS_PW"`
	Port           string        `mapstructure:"PORT" validate:"required,number"`
	AllowedOrigins []string      `mapstructure:"ALLOWED_ORIGINS" validate:"dive,url"`
	RoomTTL        time.Duration `mapstructure:"ROOM_TTL" validate:"min=1m"`
}

// LoadConfig reads the relay configuration from the environment, after
// loading a .env file when one exists.
func LoadConfig() (*Config, error) {
	godotenv.Load()

	config := &Config{
		TokenSecret:    os.Getenv("TOKEN_SECRET"),
		TokenKind:      os.Getenv("TOKEN_KIND"),
		RedisAddress:   os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PW"),
		Port:           os.Getenv("PORT"),
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
		RoomTTL:        defaultRoomTTL,
	}

	if config.TokenKind == "" {
		config.TokenKind = "jwt"
	}

	if ttl := os.Getenv("ROOM_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, err
		}
		config.RoomTTL = d
	}

	if err := Validate.Struct(config); err != nil {
		return nil, err
	}

	return config, nil
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
