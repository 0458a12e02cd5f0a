package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-key"

func newTestGenerator(t *testing.T, expiry time.Duration) *JWTGenerator {
	t.Helper()
	gen, err := NewJWTGenerator(JWTGeneratorConfig{
		SigningMethod: "HS256",
		SecretKey:     testSecret,
		Issuer:        "insight-backend",
		ExpiryTime:    expiry,
	})
	require.NoError(t, err)
	return gen
}

func newTestValidator(t *testing.T, secret, issuer string) *JWTValidator {
	t.Helper()
	validator, err := NewJWTValidator(JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     secret,
		Issuer:        issuer,
	})
	require.NoError(t, err)
	return validator
}

func TestJWT_GenerateAndValidateRoundtrip(t *testing.T) {
	// Arrange
	gen := newTestGenerator(t, time.Hour)
	validator := newTestValidator(t, testSecret, "insight-backend")

	token, err := gen.GenerateToken("user-123", "user@example.com", []string{"editor"})
	require.NoError(t, err)

	// Act
	claims, err := validator.ValidateToken(token)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, []string{"editor"}, claims.Roles)
}

func TestJWT_ValidateToken_Expired(t *testing.T) {
	// Arrange: NewJWTGenerator defaults non-positive expiry to a day, so
	// sign an already-expired token with the smallest positive duration
	gen := newTestGenerator(t, time.Nanosecond)
	validator := newTestValidator(t, testSecret, "insight-backend")

	token, err := gen.GenerateToken("user-123", "user@example.com", nil)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	// Act
	claims, err := validator.ValidateToken(token)

	// Assert
	require.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestJWT_ValidateToken_WrongSecret(t *testing.T) {
	// Arrange
	gen := newTestGenerator(t, time.Hour)
	validator := newTestValidator(t, "a-different-secret", "insight-backend")

	token, err := gen.GenerateToken("user-123", "user@example.com", nil)
	require.NoError(t, err)

	// Act
	claims, err := validator.ValidateToken(token)

	// Assert
	require.ErrorIs(t, err, ErrInvalidSignature)
	assert.Nil(t, claims)
}

func TestJWT_ValidateToken_WrongIssuer(t *testing.T) {
	// Arrange
	gen := newTestGenerator(t, time.Hour)
	validator := newTestValidator(t, testSecret, "somebody-else")

	token, err := gen.GenerateToken("user-123", "user@example.com", nil)
	require.NoError(t, err)

	// Act
	claims, err := validator.ValidateToken(token)

	// Assert
	require.ErrorIs(t, err, ErrInvalidIssuer)
	assert.Nil(t, claims)
}

func TestJWT_ValidateToken_Garbage(t *testing.T) {
	// Arrange
	validator := newTestValidator(t, testSecret, "insight-backend")

	// Act
	claims, err := validator.ValidateToken("not.a.token")

	// Assert
	require.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWT_ValidateToken_MissingSubject(t *testing.T) {
	// Arrange
	gen := newTestGenerator(t, time.Hour)
	validator := newTestValidator(t, testSecret, "insight-backend")

	token, err := gen.GenerateToken("", "user@example.com", nil)
	require.NoError(t, err)

	// Act
	claims, err := validator.ValidateToken(token)

	// Assert
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestNewJWTValidator_RejectsNonHMAC(t *testing.T) {
	// Act
	validator, err := NewJWTValidator(JWTConfig{
		SigningMethod: "RS256",
		SecretKey:     testSecret,
	})

	// Assert
	require.Error(t, err)
	assert.Nil(t, validator)
}
