package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	SetJWTSecret("unit-test-secret")

	token, err := GenerateToken(7, "staff")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "staff", claims.Role)
	assert.Equal(t, "table-booking", claims.Issuer)
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	SetJWTSecret("first-secret")
	token, err := GenerateToken(1, "admin")
	require.NoError(t, err)

	SetJWTSecret("second-secret")
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpiredAndUnsigned(t *testing.T) {
	SetJWTSecret("unit-test-secret")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &CustomClaims{
		UserID: 1,
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := expired.SignedString([]byte("unit-test-secret"))
	require.NoError(t, err)
	_, err = ParseToken(signed)
	assert.Error(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &CustomClaims{UserID: 1, Role: "admin"})
	none, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseToken(none)
	assert.Error(t, err)
}

func TestSetJWTSecretIgnoresEmpty(t *testing.T) {
	InitLogger("error")
	SetJWTSecret("kept-secret")
	SetJWTSecret("")

	token, err := GenerateToken(3, "staff")
	require.NoError(t, err)

	SetJWTSecret("kept-secret")
	_, err = ParseToken(token)
	assert.NoError(t, err)
}
