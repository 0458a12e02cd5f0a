package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeStatus_DateRange(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		endDate   string
		today     string
		want      EventStatus
	}{
		{"before the range", "2025-06-10", "2025-06-12", "2025-06-09", StatusUpcoming},
		{"on the start date", "2025-06-10", "2025-06-12", "2025-06-10", StatusOngoing},
		{"inside the range", "2025-06-10", "2025-06-12", "2025-06-11", StatusOngoing},
		{"on the end date", "2025-06-10", "2025-06-12", "2025-06-12", StatusOngoing},
		{"after the range", "2025-06-10", "2025-06-12", "2025-06-13", StatusClosed},
		{"single-day event on its day", "2025-06-10", "2025-06-10", "2025-06-10", StatusOngoing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			today, err := time.Parse("2006-01-02", tt.today)
			assert.NoError(t, err)

			got := ComputeStatus(tt.startDate, tt.endDate, "", today)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeStatus_OneSidedDates(t *testing.T) {
	today := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)

	t.Run("start only is a single-day event", func(t *testing.T) {
		assert.Equal(t, StatusClosed, ComputeStatus("2025-06-10", "", "", today))
		assert.Equal(t, StatusOngoing, ComputeStatus("2025-06-11", "", "", today))
		assert.Equal(t, StatusUpcoming, ComputeStatus("2025-06-12", "", "", today))
	})

	t.Run("end only is a single-day event", func(t *testing.T) {
		assert.Equal(t, StatusClosed, ComputeStatus("", "2025-06-10", "", today))
		assert.Equal(t, StatusOngoing, ComputeStatus("", "2025-06-11", "", today))
		assert.Equal(t, StatusUpcoming, ComputeStatus("", "2025-06-12", "", today))
	})
}

func TestComputeStatus_StaticFallback(t *testing.T) {
	today := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)

	t.Run("static status is authoritative without dates", func(t *testing.T) {
		assert.Equal(t, StatusOngoing, ComputeStatus("", "", "ongoing", today))
		assert.Equal(t, StatusClosed, ComputeStatus("", "", "closed", today))
		assert.Equal(t, StatusUpcoming, ComputeStatus("", "", "upcoming", today))
	})

	t.Run("static status is normalized", func(t *testing.T) {
		assert.Equal(t, StatusClosed, ComputeStatus("", "", " Closed ", today))
	})

	t.Run("unknown static status defaults to upcoming", func(t *testing.T) {
		assert.Equal(t, StatusUpcoming, ComputeStatus("", "", "cancelled", today))
		assert.Equal(t, StatusUpcoming, ComputeStatus("", "", "", today))
	})

	t.Run("dates win over static status", func(t *testing.T) {
		assert.Equal(t, StatusOngoing, ComputeStatus("2025-06-11", "2025-06-11", "closed", today))
	})
}

func TestRegistrationOpen(t *testing.T) {
	assert.True(t, StatusUpcoming.RegistrationOpen())
	assert.True(t, StatusOngoing.RegistrationOpen())
	assert.False(t, StatusClosed.RegistrationOpen())
}
