package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "YELLOW SUBMARINE, BLACK WIZARDRY"

func makers(t *testing.T) map[string]Maker {
	jwtMaker, err := NewMaker("jwt", testSecret)
	require.NoError(t, err)

	pasetoMaker, err := NewMaker("paseto", testSecret)
	require.NoError(t, err)

	return map[string]Maker{"jwt": jwtMaker, "paseto": pasetoMaker}
}

func TestMakers(t *testing.T) {
	for name, maker := range makers(t) {
		maker := maker

		t.Run(name+" round trip", func(t *testing.T) {
			token, payload, err := maker.CreateToken("judge", time.Minute)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			verified, err := maker.VerifyToken(token)
			require.NoError(t, err)
			require.Equal(t, payload.ID, verified.ID)
			require.Equal(t, "judge", verified.Username)
			require.WithinDuration(t, payload.ExpiredAt, verified.ExpiredAt, time.Second)
		})

		t.Run(name+" expired", func(t *testing.T) {
			token, _, err := maker.CreateToken("judge", -time.Minute)
			require.NoError(t, err)

			_, err = maker.VerifyToken(token)
			require.ErrorIs(t, err, ErrExpiredToken)
		})

		t.Run(name+" tampered", func(t *testing.T) {
			token, _, err := maker.CreateToken("judge", time.Minute)
			require.NoError(t, err)

			_, err = maker.VerifyToken(token + "hhh")
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewMaker(t *testing.T) {
	_, err := NewMaker("cookie", testSecret)
	require.Error(t, err)

	_, err = NewMaker("jwt", "short")
	require.Error(t, err)

	_, err = NewMaker("paseto", testSecret+"extra")
	require.Error(t, err)
}
