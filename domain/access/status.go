package access

import (
	"strings"
	"time"

	"insight-backend/pkg/utils"
)

// EventStatus is the derived lifecycle phase of an event. It gates
// whether a registration action is offered; Closed events never do.
// Status is independent of the access decision and only consulted by
// callers once access is granted.
type EventStatus string

const (
	StatusUpcoming EventStatus = "upcoming"
	StatusOngoing  EventStatus = "ongoing"
	StatusClosed   EventStatus = "closed"
)

// ComputeStatus derives the status of an event from its date range on a
// given day. Comparisons are by calendar date only; date-only ISO strings
// order lexicographically, so no time-of-day parsing is needed. When the
// record carries no dates at all, the static status field is treated as
// authoritative, defaulting to Upcoming. A record with only one of the
// two dates is treated as a single-day event on that date.
func ComputeStatus(startDate, endDate, staticStatus string, today time.Time) EventStatus {
	start := strings.TrimSpace(startDate)
	end := strings.TrimSpace(endDate)

	if start == "" && end == "" {
		return parseStaticStatus(staticStatus)
	}
	if start == "" {
		start = end
	}
	if end == "" {
		end = start
	}

	day := utils.Day(today)
	switch {
	case day > end:
		return StatusClosed
	case day < start:
		return StatusUpcoming
	default:
		return StatusOngoing
	}
}

// RegistrationOpen reports whether a registration affordance may be shown
func (s EventStatus) RegistrationOpen() bool {
	return s != StatusClosed
}

func parseStaticStatus(s string) EventStatus {
	switch EventStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusOngoing:
		return StatusOngoing
	case StatusClosed:
		return StatusClosed
	default:
		return StatusUpcoming
	}
}
