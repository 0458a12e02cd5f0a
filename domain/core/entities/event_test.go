package entities

import (
	"testing"
	"time"

	"insight-backend/domain/access"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEvent(t *testing.T) *Event {
	t.Helper()
	event, err := NewEvent("Team offsite", "Two days in the mountains", "Lodge", "2030-09-10", "2030-09-11")
	require.NoError(t, err)
	return event
}

func TestNewEvent(t *testing.T) {
	// Act
	event := mustEvent(t)

	// Assert
	assert.False(t, event.ID().IsZero())
	assert.Equal(t, "Team offsite", event.Title())
	assert.Equal(t, "2030-09-10", event.StartDate())
	assert.Equal(t, "2030-09-11", event.EndDate())
	assert.Equal(t, 1, event.Version())
	assert.Equal(t, access.VisibilityUnset, event.Policy().Visibility)
	assert.Empty(t, event.GetUncommittedEvents())
}

func TestNewEvent_Validation(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		startDate string
		endDate   string
	}{
		{"empty title", "", "2030-09-10", "2030-09-11"},
		{"malformed start date", "Offsite", "10/09/2030", ""},
		{"malformed end date", "Offsite", "", "not-a-date"},
		{"end precedes start", "Offsite", "2030-09-11", "2030-09-10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := NewEvent(tt.title, "", "", tt.startDate, tt.endDate)
			require.Error(t, err)
			assert.Nil(t, event)
		})
	}
}

func TestNewEvent_DatesAreOptional(t *testing.T) {
	// Act
	event, err := NewEvent("Sometime soon", "", "", "", "")

	// Assert
	require.NoError(t, err)
	assert.Empty(t, event.StartDate())
	assert.Empty(t, event.EndDate())
}

func TestEvent_SetVisibility(t *testing.T) {
	// Arrange
	event := mustEvent(t)

	// Act: entries are normalized and de-duplicated at rest
	err := event.SetVisibility(access.VisibilityPrivate, []string{
		"  Guest@Example.COM ",
		"guest@example.com",
		"other@example.com",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, access.VisibilityPrivate, event.Policy().Visibility)
	assert.Equal(t, []string{"guest@example.com", "other@example.com"}, event.Policy().AllowedEmails)
	assert.Equal(t, 2, event.Version())
	assert.Len(t, event.GetUncommittedEvents(), 1)
}

func TestEvent_SetVisibility_RejectsInvalidInput(t *testing.T) {
	// Arrange
	event := mustEvent(t)

	// Act + Assert
	assert.Error(t, event.SetVisibility("friends-only", nil))
	assert.Error(t, event.SetVisibility(access.VisibilityPrivate, []string{"not an email"}))

	// A failed update leaves the policy untouched
	assert.Equal(t, access.VisibilityUnset, event.Policy().Visibility)
	assert.Equal(t, 1, event.Version())
}

func TestEvent_SetStaticStatus(t *testing.T) {
	// Arrange
	event, err := NewEvent("Undated gathering", "", "", "", "")
	require.NoError(t, err)

	// Act
	require.NoError(t, event.SetStaticStatus("closed"))

	// Assert
	assert.Equal(t, "closed", event.StaticStatus())
	assert.Equal(t, 2, event.Version())
	assert.Equal(t, access.StatusClosed, event.StatusOn(time.Now()))
}

func TestEvent_SetStaticStatus_RejectsUnknownStatus(t *testing.T) {
	// Arrange
	event := mustEvent(t)

	// Act
	err := event.SetStaticStatus("postponed")

	// Assert
	require.Error(t, err)
	assert.Empty(t, event.StaticStatus())
}

func TestEvent_StatusOn_DatesWinOverStaticStatus(t *testing.T) {
	// Arrange
	event := mustEvent(t)
	require.NoError(t, event.SetStaticStatus("closed"))

	// Act
	status := event.StatusOn(time.Date(2030, 9, 10, 12, 0, 0, 0, time.UTC))

	// Assert
	assert.Equal(t, access.StatusOngoing, status)
}

func TestEvent_MarkEventsAsCommitted(t *testing.T) {
	// Arrange
	event := mustEvent(t)
	require.NoError(t, event.SetVisibility(access.VisibilityPublic, nil))
	require.Len(t, event.GetUncommittedEvents(), 1)

	// Act
	event.MarkEventsAsCommitted()

	// Assert
	assert.Empty(t, event.GetUncommittedEvents())
}
