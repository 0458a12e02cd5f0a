package handlers

import (
	"context"
	"fmt"
	"time"

	"insight-backend/application/ports"
	"insight-backend/application/queries"
	"insight-backend/domain/access"
	"insight-backend/domain/core/valueobjects"
	domainEvents "insight-backend/domain/events"
	"go.uber.org/zap"
)

// EventAccessHandler handles event access evaluation queries
type EventAccessHandler struct {
	eventRepo ports.EventRepository
	logger    *zap.Logger
}

// NewEventAccessHandler creates a new event access handler
func NewEventAccessHandler(eventRepo ports.EventRepository, logger *zap.Logger) *EventAccessHandler {
	return &EventAccessHandler{eventRepo: eventRepo, logger: logger}
}

// Handle executes the event access query
func (h *EventAccessHandler) Handle(ctx context.Context, query queries.GetEventAccessQuery) (*queries.GetEventAccessResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	eventID, err := valueobjects.NewContentIDFromString(query.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	event, err := h.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	var identity *access.Identity
	if query.Authenticated || query.ViewerEmail != "" {
		identity = &access.Identity{
			Email:           query.ViewerEmail,
			IsAuthenticated: query.Authenticated,
		}
	}

	decision := access.Evaluate(event.Policy(), identity)
	status := event.StatusOn(time.Now())

	result := &queries.GetEventAccessResult{
		EventID:          query.EventID,
		Granted:          decision.Granted,
		Reason:           string(decision.Reason),
		Status:           string(status),
		RegistrationOpen: status.RegistrationOpen(),
	}

	// Denied viewers learn only that the event exists, not its details
	if decision.Granted {
		result.Title = event.Title()
		result.StartDate = event.StartDate()
		result.EndDate = event.EndDate()
	}

	return result, nil
}

// VerifyGuestHandler handles guest allow-list verification queries
type VerifyGuestHandler struct {
	eventRepo ports.EventRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewVerifyGuestHandler creates a new guest verification handler
func NewVerifyGuestHandler(
	eventRepo ports.EventRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *VerifyGuestHandler {
	return &VerifyGuestHandler{eventRepo: eventRepo, publisher: publisher, logger: logger}
}

// Handle executes the guest verification query
func (h *VerifyGuestHandler) Handle(ctx context.Context, query queries.VerifyGuestAccessQuery) (*queries.VerifyGuestAccessResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	eventID, err := valueobjects.NewContentIDFromString(query.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	event, err := h.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	decision := access.VerifyGuest(event.Policy(), query.Email)

	if decision.Granted {
		verified := domainEvents.NewGuestVerified(query.EventID, valueobjects.NormalizeEmail(query.Email), time.Now())
		if err := h.publisher.Publish(ctx, verified); err != nil {
			h.logger.Warn("failed to publish guest verified event",
				zap.String("eventId", query.EventID),
				zap.Error(err))
		}
	}

	return &queries.VerifyGuestAccessResult{
		EventID:           query.EventID,
		Granted:           decision.Granted,
		Reason:            string(decision.Reason),
		ValidationFailure: decision.IsValidationFailure(),
	}, nil
}
