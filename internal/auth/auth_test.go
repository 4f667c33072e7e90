package auth

import (
	"testing"
	"time"

	"dining-reviews/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	password := "mySecretPassword123"
	hash, err := HashPassword(password)

	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, password, hash)
}

func TestCheckPasswordHash(t *testing.T) {
	password := "mySecretPassword123"
	hash, err := HashPassword(password)
	require.NoError(t, err)

	require.True(t, CheckPasswordHash(password, hash), "Password should match the hash")
	require.False(t, CheckPasswordHash("wrongPassword", hash), "Wrong password should not match the hash")
}

func TestGenerateAndVerifyJWT(t *testing.T) {
	secret := "my_super_secret_key_for_testing"
	user := &models.User{ID: 123, Username: "testuser"}

	tokenString, err := GenerateJWT(user, secret, 0)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := VerifyJWT(tokenString, secret)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, user.Username, claims.Username)
	require.Nil(t, claims.ExpiresAt, "zero ttl must not set an expiry")
	require.WithinDuration(t, time.Now(), claims.IssuedAt.Time, 5*time.Second)
	require.NotEmpty(t, claims.ID)

	_, err = VerifyJWT(tokenString, "wrong_secret")
	require.ErrorIs(t, err, jwt.ErrSignatureInvalid)
}

func TestGenerateJWT_WithTTL(t *testing.T) {
	secret := "ttl_secret"
	user := &models.User{ID: 7, Username: "ttl"}

	tokenString, err := GenerateJWT(user, secret, time.Hour)
	require.NoError(t, err)

	claims, err := VerifyJWT(tokenString, secret)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestVerifyJWT_Expired(t *testing.T) {
	secret := "expired_secret"
	claimsExpired := &AppClaims{
		UserID:   1,
		Username: "old",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Minute)),
		},
	}
	tokenExpired := jwt.NewWithClaims(jwt.SigningMethodHS256, claimsExpired)
	tokenStringExpired, err := tokenExpired.SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = VerifyJWT(tokenStringExpired, secret)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyJWT_Malformed(t *testing.T) {
	_, err := VerifyJWT("not-a-token", "secret")
	require.ErrorIs(t, err, jwt.ErrTokenMalformed)
}

func TestGenerateJWT_EmptySecret(t *testing.T) {
	_, err := GenerateJWT(&models.User{ID: 1}, "", 0)
	require.Error(t, err)
}
