package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, env map[string]string) {
	for k, v := range env {
		t.Setenv(k, v)
	}
}

func TestLoadConfig(t *testing.T) {
	base := map[string]string{
		"TOKEN_SECRET":    "YELLOW SUBMARINE, BLACK WIZARDRY",
		"REDIS_ADDR":      "localhost:6379",
		"PORT":            "3000",
		"TOKEN_KIND":      "",
		"ALLOWED_ORIGINS": "http://localhost:3000, http://localhost:8080",
		"ROOM_TTL":        "",
	}

	t.Run("happy case", func(t *testing.T) {
		setEnv(t, base)

		config, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, "jwt", config.TokenKind)
		require.Equal(t, []string{"http://localhost:3000", "http://localhost:8080"}, config.AllowedOrigins)
		require.Equal(t, 12*time.Hour, config.RoomTTL)
	})

	t.Run("room ttl", func(t *testing.T) {
		setEnv(t, base)
		t.Setenv("ROOM_TTL", "30m")

		config, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, 30*time.Minute, config.RoomTTL)

		t.Setenv("ROOM_TTL", "soon")
		_, err = LoadConfig()
		require.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		cases := map[string]string{
			"PORT":         "http",
			"TOKEN_KIND":   "cookie",
			"TOKEN_SECRET": "short",
			"REDIS_ADDR":   "",
		}

		for key, value := range cases {
			setEnv(t, base)
			t.Setenv(key, value)

			_, err := LoadConfig()
			require.Error(t, err, key)
		}
	})
}
