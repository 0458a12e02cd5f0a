package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"insight-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "unit-test-secret-at-least-32-bytes-long"

func newTestValidator(t *testing.T) *auth.JWTValidator {
	t.Helper()
	validator, err := auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     testSecret,
		Issuer:        "insight-backend",
		Audience:      []string{"insight-api"},
	})
	require.NoError(t, err)
	return validator
}

func newSignedToken(t *testing.T, userID string) string {
	t.Helper()
	generator, err := auth.NewJWTGenerator(auth.JWTGeneratorConfig{
		SigningMethod: "HS256",
		SecretKey:     testSecret,
		Issuer:        "insight-backend",
		Audience:      []string{"insight-api"},
	})
	require.NoError(t, err)
	token, err := generator.GenerateToken(userID, userID+"@example.com", []string{"authenticated"})
	require.NoError(t, err)
	return token
}

// captureUser records what identity, if any, reached the inner handler.
func captureUser(called *bool, user **auth.UserContext) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if u, err := auth.GetUserFromContext(r.Context()); err == nil {
			*user = u
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestOptionalAuthenticate_AttachesIdentityFromBearerToken(t *testing.T) {
	// Arrange
	var called bool
	var user *auth.UserContext
	handler := OptionalAuthenticate(newTestValidator(t), zap.NewNop())(captureUser(&called, &user))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/evt-1/access", nil)
	req.Header.Set("Authorization", "Bearer "+newSignedToken(t, "user-1"))
	rec := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
	require.NotNil(t, user)
	assert.Equal(t, "user-1", user.UserID)
}

func TestOptionalAuthenticate_PassesThroughWithoutToken(t *testing.T) {
	// Arrange
	var called bool
	var user *auth.UserContext
	handler := OptionalAuthenticate(newTestValidator(t), zap.NewNop())(captureUser(&called, &user))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/evt-1/access", nil)
	rec := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rec, req)

	// Assert: anonymous but never rejected
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
	assert.Nil(t, user)
}

func TestOptionalAuthenticate_IgnoresUnusableToken(t *testing.T) {
	// Arrange
	var called bool
	var user *auth.UserContext
	handler := OptionalAuthenticate(newTestValidator(t), zap.NewNop())(captureUser(&called, &user))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/content", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rec, req)

	// Assert: a bad token on a public route degrades to anonymous
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
	assert.Nil(t, user)
}

func TestOptionalAuthenticate_NilValidatorStaysAnonymous(t *testing.T) {
	// Arrange
	var called bool
	var user *auth.UserContext
	handler := OptionalAuthenticate(nil, zap.NewNop())(captureUser(&called, &user))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/content", nil)
	req.Header.Set("Authorization", "Bearer "+newSignedToken(t, "user-1"))
	rec := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
	assert.Nil(t, user)
}

func TestOptionalAuthenticate_HonorsGatewayIdentityHeaders(t *testing.T) {
	// Arrange
	var called bool
	var user *auth.UserContext
	handler := OptionalAuthenticate(nil, zap.NewNop())(captureUser(&called, &user))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/evt-1/access", nil)
	req.Header.Set("X-API-Gateway-Authorized", "true")
	req.Header.Set("X-User-ID", "user-7")
	req.Header.Set("X-User-Email", "user-7@example.com")
	rec := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rec, req)

	// Assert
	require.NotNil(t, user)
	assert.Equal(t, "user-7", user.UserID)
	assert.Equal(t, "user-7@example.com", user.Email)
}

func TestAuthenticateWithConfig_RejectsMissingToken(t *testing.T) {
	// Arrange
	var called bool
	var user *auth.UserContext
	handler := AuthenticateWithConfig(newTestValidator(t), zap.NewNop())(captureUser(&called, &user))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/snapshot", nil)
	rec := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticateWithConfig_AcceptsValidToken(t *testing.T) {
	// Arrange
	var called bool
	var user *auth.UserContext
	handler := AuthenticateWithConfig(newTestValidator(t), zap.NewNop())(captureUser(&called, &user))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/content", nil)
	req.Header.Set("Authorization", "Bearer "+newSignedToken(t, "author-1"))
	rec := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, user)
	assert.Equal(t, "author-1", user.UserID)
}

// stubLimiter scripts the rate-limit decision.
type stubLimiter struct {
	allowed bool
	err     error
	lastKey string
}

func (s *stubLimiter) Allow(ctx context.Context, key string) (bool, error) {
	s.lastKey = key
	return s.allowed, s.err
}

func TestRateLimit_BlocksWhenExhausted(t *testing.T) {
	// Arrange
	limiter := &stubLimiter{allowed: false}
	handler := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/content", nil)
	req.Header.Set("X-Real-IP", "203.0.113.9")
	rec := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rec, req)

	// Assert: keyed by client IP, rejected when over budget
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "203.0.113.9", limiter.lastKey)
}

func TestRateLimit_BackendErrorDoesNotBlock(t *testing.T) {
	// Arrange
	limiter := &stubLimiter{allowed: false, err: errors.New("backend unavailable")}
	handler := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/content", nil)
	rec := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
}
