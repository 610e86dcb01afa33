package utils_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/glutenfreeeats/booking-api/internal/utils"
)

func TestNewAccessToken(t *testing.T) {
	const secret = "test-secret"
	at, err := utils.NewAccessToken(secret, 42, "OWNER", 15)
	require.NoError(t, err)
	require.NotEmpty(t, at.Token)
	require.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), at.Exp, 5*time.Second)

	tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, float64(42), claims["sub"])
	require.Equal(t, "OWNER", claims["role"])
}

func TestNewAccessToken_WrongSecretRejected(t *testing.T) {
	at, err := utils.NewAccessToken("secret-a", 1, "CUSTOMER", 15)
	require.NoError(t, err)

	_, err = jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("secret-b"), nil
	})
	require.Error(t, err)
}

func TestNewRefreshToken(t *testing.T) {
	rt, err := utils.NewRefreshToken(30)
	require.NoError(t, err)
	require.Len(t, rt.Raw, 96) // 48 random bytes hex-encoded
	require.WithinDuration(t, time.Now().UTC().Add(30*24*time.Hour), rt.Exp, 5*time.Second)

	other, err := utils.NewRefreshToken(30)
	require.NoError(t, err)
	require.NotEqual(t, rt.Raw, other.Raw)
}

func TestHashRefreshRaw(t *testing.T) {
	h1 := utils.HashRefreshRaw("token-a")
	h2 := utils.HashRefreshRaw("token-a")
	require.Equal(t, h1, h2)
	require.Len(t, h1, 64) // sha256 hex
	require.NotEqual(t, h1, utils.HashRefreshRaw("token-b"))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := utils.HashPassword("hunter2", 4)
	require.NoError(t, err)
	require.True(t, utils.VerifyPassword(hash, "hunter2"))
	require.False(t, utils.VerifyPassword(hash, "hunter3"))
}
