package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"insight-backend/application/commands"
	commandbus "insight-backend/application/commands/bus"
	domainconfig "insight-backend/domain/config"
	"insight-backend/infrastructure/di"
	"insight-backend/infrastructure/persistence/memory"
	"insight-backend/pkg/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const routerTestSecret = "router-test-secret-at-least-32-bytes"

// newTestServer wires the router over in-memory storage with a known
// JWT secret, returning the handler, the command bus for seeding and a
// token signer.
func newTestServer(t *testing.T) (http.Handler, *commandbus.CommandBus, func(userID, email string) string) {
	t.Helper()

	contentRepo := memory.NewContentRepository()
	commentRepo := memory.NewCommentRepository()
	reactionRepo := memory.NewReactionRepository()
	eventRepo := memory.NewEventRepository()
	publisher := memory.NewEventPublisher()
	logger := zap.NewNop()

	commandBus := di.ProvideCommandBus(contentRepo, commentRepo, reactionRepo, eventRepo, publisher, memory.NewResourceLocker(), domainconfig.DefaultDomainConfig(), logger)
	queryBus := di.ProvideQueryBus(contentRepo, commentRepo, reactionRepo, eventRepo, publisher, domainconfig.DefaultDomainConfig(), nil, 0, logger)

	validator, err := auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     routerTestSecret,
		Issuer:        "insight-backend",
		Audience:      []string{"insight-api"},
	})
	require.NoError(t, err)

	generator, err := auth.NewJWTGenerator(auth.JWTGeneratorConfig{
		SigningMethod: "HS256",
		SecretKey:     routerTestSecret,
		Issuer:        "insight-backend",
		Audience:      []string{"insight-api"},
	})
	require.NoError(t, err)

	sign := func(userID, email string) string {
		token, err := generator.GenerateToken(userID, email, []string{"authenticated"})
		require.NoError(t, err)
		return token
	}

	handler := NewRouter(commandBus, queryBus, validator, nil, nil, logger).Setup()
	return handler, commandBus, sign
}

func TestRouter_PrivateEventAccessForAuthenticatedGuest(t *testing.T) {
	// Arrange
	handler, commandBus, sign := newTestServer(t)

	eventID := uuid.New().String()
	ctx := context.Background()
	require.NoError(t, commandBus.Send(ctx, commands.CreateEventCommand{
		EventID:   eventID,
		Title:     "Private launch",
		StartDate: "2099-06-01",
		EndDate:   "2099-06-02",
	}))
	require.NoError(t, commandBus.Send(ctx, commands.UpdateEventVisibilityCommand{
		EventID:       eventID,
		Visibility:    "private",
		AllowedEmails: []string{"guest@example.com"},
	}))

	// Act: anonymous first
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/events/"+eventID+"/access", nil))

	// Assert: denied
	assert.Equal(t, http.StatusForbidden, rec.Code)
	var denied struct {
		Granted bool `json:"granted"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &denied))
	assert.False(t, denied.Granted)

	// Act: the same public route with an allow-listed session token
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/"+eventID+"/access", nil)
	req.Header.Set("Authorization", "Bearer "+sign("user-1", "guest@example.com"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// Assert: the session is honored and access granted
	assert.Equal(t, http.StatusOK, rec.Code)
	var granted struct {
		Granted bool `json:"granted"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &granted))
	assert.True(t, granted.Granted)
}

func TestRouter_AuthenticatedRoutesRejectAnonymous(t *testing.T) {
	// Arrange
	handler, _, sign := newTestServer(t)

	// Act: no token
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/snapshot", nil))

	// Assert
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Act: a signed session token passes
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/snapshot", nil)
	req.Header.Set("Authorization", "Bearer "+sign("analyst-1", "analyst@example.com"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
}
