package handlers

import (
	"context"
	"testing"

	"insight-backend/application/queries"
	"insight-backend/domain/access"
	"insight-backend/domain/core/entities"
	"insight-backend/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedEvent(t *testing.T, repo *memory.EventRepository, visibility access.Visibility, allowed []string) *entities.Event {
	t.Helper()
	event, err := entities.NewEvent("Launch party", "Celebrating the release", "Rooftop", "2099-06-01", "2099-06-02")
	require.NoError(t, err)
	if visibility != access.VisibilityUnset {
		require.NoError(t, event.SetVisibility(visibility, allowed))
	}
	require.NoError(t, repo.Save(context.Background(), event))
	return event
}

func TestEventAccessHandler_Handle_PublicEventGrantsAnonymous(t *testing.T) {
	// Arrange
	repo := memory.NewEventRepository()
	event := seedEvent(t, repo, access.VisibilityPublic, nil)
	handler := NewEventAccessHandler(repo, zap.NewNop())

	// Act
	result, err := handler.Handle(context.Background(), queries.GetEventAccessQuery{
		EventID: event.ID().String(),
	})

	// Assert
	require.NoError(t, err)
	assert.True(t, result.Granted)
	assert.Equal(t, "Launch party", result.Title)
	assert.Equal(t, "2099-06-01", result.StartDate)
	assert.Equal(t, string(access.StatusUpcoming), result.Status)
	assert.True(t, result.RegistrationOpen)
}

func TestEventAccessHandler_Handle_UnsetVisibilityBehavesAsPublic(t *testing.T) {
	// Arrange
	repo := memory.NewEventRepository()
	event := seedEvent(t, repo, access.VisibilityUnset, nil)
	handler := NewEventAccessHandler(repo, zap.NewNop())

	// Act
	result, err := handler.Handle(context.Background(), queries.GetEventAccessQuery{
		EventID: event.ID().String(),
	})

	// Assert
	require.NoError(t, err)
	assert.True(t, result.Granted)
}

func TestEventAccessHandler_Handle_PrivateEventDeniesAnonymous(t *testing.T) {
	// Arrange
	repo := memory.NewEventRepository()
	event := seedEvent(t, repo, access.VisibilityPrivate, []string{"guest@example.com"})
	handler := NewEventAccessHandler(repo, zap.NewNop())

	// Act
	result, err := handler.Handle(context.Background(), queries.GetEventAccessQuery{
		EventID: event.ID().String(),
	})

	// Assert: existence is acknowledged, details are withheld
	require.NoError(t, err)
	assert.False(t, result.Granted)
	assert.Equal(t, string(access.ReasonPrivateEvent), result.Reason)
	assert.Empty(t, result.Title)
	assert.Empty(t, result.StartDate)
	assert.NotEmpty(t, result.Status)
}

func TestEventAccessHandler_Handle_PrivateEventGrantsListedViewer(t *testing.T) {
	// Arrange
	repo := memory.NewEventRepository()
	event := seedEvent(t, repo, access.VisibilityPrivate, []string{"guest@example.com"})
	handler := NewEventAccessHandler(repo, zap.NewNop())

	// Act
	result, err := handler.Handle(context.Background(), queries.GetEventAccessQuery{
		EventID:       event.ID().String(),
		ViewerEmail:   "Guest@Example.COM",
		Authenticated: true,
	})

	// Assert
	require.NoError(t, err)
	assert.True(t, result.Granted)
	assert.Equal(t, "Launch party", result.Title)
}

func TestEventAccessHandler_Handle_PrivateEventDeniesUnlistedViewer(t *testing.T) {
	// Arrange
	repo := memory.NewEventRepository()
	event := seedEvent(t, repo, access.VisibilityPrivate, []string{"guest@example.com"})
	handler := NewEventAccessHandler(repo, zap.NewNop())

	// Act
	result, err := handler.Handle(context.Background(), queries.GetEventAccessQuery{
		EventID:       event.ID().String(),
		ViewerEmail:   "stranger@example.com",
		Authenticated: true,
	})

	// Assert
	require.NoError(t, err)
	assert.False(t, result.Granted)
	assert.Equal(t, string(access.ReasonPrivateEvent), result.Reason)
}

func TestEventAccessHandler_Handle_EventMissing(t *testing.T) {
	// Arrange
	handler := NewEventAccessHandler(memory.NewEventRepository(), zap.NewNop())

	// Act
	result, err := handler.Handle(context.Background(), queries.GetEventAccessQuery{
		EventID: "00000000-0000-0000-0000-000000000001",
	})

	// Assert
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestVerifyGuestHandler_Handle_GrantsListedGuest(t *testing.T) {
	// Arrange
	repo := memory.NewEventRepository()
	publisher := memory.NewEventPublisher()
	event := seedEvent(t, repo, access.VisibilityPrivate, []string{"guest@example.com"})
	handler := NewVerifyGuestHandler(repo, publisher, zap.NewNop())

	// Act
	result, err := handler.Handle(context.Background(), queries.VerifyGuestAccessQuery{
		EventID: event.ID().String(),
		Email:   "  GUEST@example.com  ",
	})

	// Assert
	require.NoError(t, err)
	assert.True(t, result.Granted)
	assert.False(t, result.ValidationFailure)
	assert.Len(t, publisher.Published(), 1)
}

func TestVerifyGuestHandler_Handle_DeniesUnlistedGuest(t *testing.T) {
	// Arrange
	repo := memory.NewEventRepository()
	publisher := memory.NewEventPublisher()
	event := seedEvent(t, repo, access.VisibilityPrivate, []string{"guest@example.com"})
	handler := NewVerifyGuestHandler(repo, publisher, zap.NewNop())

	// Act
	result, err := handler.Handle(context.Background(), queries.VerifyGuestAccessQuery{
		EventID: event.ID().String(),
		Email:   "stranger@example.com",
	})

	// Assert: a denial is not a validation failure
	require.NoError(t, err)
	assert.False(t, result.Granted)
	assert.Equal(t, string(access.ReasonNotOnGuestList), result.Reason)
	assert.False(t, result.ValidationFailure)
	assert.Empty(t, publisher.Published())
}

func TestVerifyGuestHandler_Handle_BlankEmailIsValidationFailure(t *testing.T) {
	// Arrange
	repo := memory.NewEventRepository()
	publisher := memory.NewEventPublisher()
	event := seedEvent(t, repo, access.VisibilityPrivate, []string{"guest@example.com"})
	handler := NewVerifyGuestHandler(repo, publisher, zap.NewNop())

	// Act
	result, err := handler.Handle(context.Background(), queries.VerifyGuestAccessQuery{
		EventID: event.ID().String(),
		Email:   "   ",
	})

	// Assert
	require.NoError(t, err)
	assert.False(t, result.Granted)
	assert.Equal(t, string(access.ReasonEmptyEmail), result.Reason)
	assert.True(t, result.ValidationFailure)
	assert.Empty(t, publisher.Published())
}
