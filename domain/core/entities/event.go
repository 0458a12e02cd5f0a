package entities

import (
	"time"

	"insight-backend/domain/access"
	"insight-backend/domain/core/valueobjects"
	"insight-backend/domain/events"
	pkgerrors "insight-backend/pkg/errors"
	"insight-backend/pkg/utils"
)

// Event is the entity for a site event (talk, workshop, conference).
// Its visibility policy and date range are set by an administrator and
// read-only everywhere else; the access and status decisions over them
// live in domain/access.
type Event struct {
	id           valueobjects.ContentID
	title        string
	description  string
	location     string
	startDate    string // date-only, may be empty
	endDate      string // date-only, may be empty
	staticStatus string // fallback status for records without dates
	policy       access.VisibilityPolicy
	createdAt    time.Time
	updatedAt    time.Time
	version      int

	events []events.DomainEvent
}

// NewEvent creates an event with business rule validation. Dates are
// optional but must be valid calendar dates when present.
func NewEvent(title, description, location, startDate, endDate string) (*Event, error) {
	if title == "" {
		return nil, pkgerrors.NewValidationError("title cannot be empty")
	}
	if startDate != "" && !utils.IsValidDay(startDate) {
		return nil, pkgerrors.NewValidationError("startDate must be a calendar date")
	}
	if endDate != "" && !utils.IsValidDay(endDate) {
		return nil, pkgerrors.NewValidationError("endDate must be a calendar date")
	}
	if startDate != "" && endDate != "" && endDate < startDate {
		return nil, pkgerrors.NewValidationError("endDate cannot precede startDate")
	}

	now := time.Now()
	return &Event{
		id:          valueobjects.NewContentID(),
		title:       title,
		description: description,
		location:    location,
		startDate:   startDate,
		endDate:     endDate,
		createdAt:   now,
		updatedAt:   now,
		version:     1,
		events:      []events.DomainEvent{},
	}, nil
}

// NewEventWithID creates an event under a caller-supplied identifier
func NewEventWithID(id valueobjects.ContentID, title, description, location, startDate, endDate string) (*Event, error) {
	event, err := NewEvent(title, description, location, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if !id.IsZero() {
		event.id = id
	}
	return event, nil
}

// ReconstructEvent reconstructs an event from repository data
func ReconstructEvent(
	id valueobjects.ContentID,
	title, description, location string,
	startDate, endDate, staticStatus string,
	policy access.VisibilityPolicy,
	createdAt, updatedAt time.Time,
	version int,
) (*Event, error) {
	if title == "" {
		return nil, pkgerrors.NewValidationError("title cannot be empty")
	}

	return &Event{
		id:           id,
		title:        title,
		description:  description,
		location:     location,
		startDate:    startDate,
		endDate:      endDate,
		staticStatus: staticStatus,
		policy:       policy,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		version:      version,
		events:       []events.DomainEvent{},
	}, nil
}

// ID returns the event's unique identifier
func (e *Event) ID() valueobjects.ContentID { return e.id }

// Title returns the event title
func (e *Event) Title() string { return e.title }

// Description returns the event description
func (e *Event) Description() string { return e.description }

// Location returns the event location
func (e *Event) Location() string { return e.location }

// StartDate returns the date-only start, or "" when unset
func (e *Event) StartDate() string { return e.startDate }

// EndDate returns the date-only end, or "" when unset
func (e *Event) EndDate() string { return e.endDate }

// Policy returns the visibility policy
func (e *Event) Policy() access.VisibilityPolicy { return e.policy }

// Version returns the event's version for optimistic locking
func (e *Event) Version() int { return e.version }

// CreatedAt returns when the event was created
func (e *Event) CreatedAt() time.Time { return e.createdAt }

// UpdatedAt returns when the event was last updated
func (e *Event) UpdatedAt() time.Time { return e.updatedAt }

// StaticStatus returns the stored fallback status
func (e *Event) StaticStatus() string { return e.staticStatus }

// StatusOn derives the event's lifecycle status for a given day
func (e *Event) StatusOn(today time.Time) access.EventStatus {
	return access.ComputeStatus(e.startDate, e.endDate, e.staticStatus, today)
}

// SetVisibility replaces the visibility policy. Allow-list entries are
// normalized at rest so the stored record compares cheaply.
func (e *Event) SetVisibility(visibility access.Visibility, allowedEmails []string) error {
	switch visibility {
	case access.VisibilityPublic, access.VisibilityPrivate, access.VisibilityUnset:
	default:
		return pkgerrors.NewValidationError("visibility must be public or private")
	}

	normalized := make([]string, 0, len(allowedEmails))
	seen := make(map[string]bool, len(allowedEmails))
	for _, raw := range allowedEmails {
		email, err := valueobjects.NewEmail(raw)
		if err != nil {
			return pkgerrors.NewValidationError("allow-list contains an invalid email: " + raw)
		}
		if !seen[email.String()] {
			normalized = append(normalized, email.String())
			seen[email.String()] = true
		}
	}

	e.policy = access.VisibilityPolicy{
		Visibility:    visibility,
		AllowedEmails: normalized,
	}
	e.updatedAt = time.Now()
	e.version++

	e.addEvent(events.NewEventVisibilityChanged(e.id, string(visibility), len(normalized), e.updatedAt))
	return nil
}

// SetStaticStatus sets the organizer-pinned status used when the event
// carries no dates to derive one from
func (e *Event) SetStaticStatus(status string) error {
	if status != "" {
		switch access.EventStatus(status) {
		case access.StatusUpcoming, access.StatusOngoing, access.StatusClosed:
		default:
			return pkgerrors.NewValidationError("unknown event status")
		}
	}
	e.staticStatus = status
	e.updatedAt = time.Now()
	e.version++
	return nil
}

// GetUncommittedEvents returns all uncommitted domain events
func (e *Event) GetUncommittedEvents() []events.DomainEvent {
	return e.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (e *Event) MarkEventsAsCommitted() {
	e.events = []events.DomainEvent{}
}

func (e *Event) addEvent(event events.DomainEvent) {
	e.events = append(e.events, event)
}
