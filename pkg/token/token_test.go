package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestGenerateAndValidateJWT(t *testing.T) {
	tokenString, err := GenerateJWT(42, "player", testSecret, 15)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := ValidateJWT(tokenString, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "player", claims.Role)
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	tokenString, err := GenerateJWT(42, "player", testSecret, 15)
	require.NoError(t, err)

	_, err = ValidateJWT(tokenString, "another-secret")
	assert.Error(t, err)
}

func TestValidateJWT_Expired(t *testing.T) {
	tokenString, err := GenerateJWT(42, "player", testSecret, -1)
	require.NoError(t, err)

	_, err = ValidateJWT(tokenString, testSecret)
	assert.Error(t, err)
}

func TestValidateJWT_Garbage(t *testing.T) {
	_, err := ValidateJWT("not-a-token", testSecret)
	assert.Error(t, err)
}

func TestValidateJWT_RejectsMissingUserID(t *testing.T) {
	claims := Claims{
		Role: "player",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ValidateJWT(signed, testSecret)
	assert.Error(t, err)
}

func TestValidateJWT_RejectsUnexpectedSigningMethod(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1})
	signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateJWT(signed, testSecret)
	assert.Error(t, err)
}
