package handlers

import (
	"context"
	"fmt"

	"insight-backend/application/commands"
	"insight-backend/application/ports"
	"insight-backend/domain/access"
	"insight-backend/domain/core/entities"
	"insight-backend/domain/core/validators"
	"insight-backend/domain/core/valueobjects"
	"go.uber.org/zap"
)

// CreateEventHandler handles event creation commands
type CreateEventHandler struct {
	eventRepo ports.EventRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewCreateEventHandler creates a new create event handler
func NewCreateEventHandler(
	eventRepo ports.EventRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *CreateEventHandler {
	return &CreateEventHandler{
		eventRepo: eventRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle executes the create event command
func (h *CreateEventHandler) Handle(ctx context.Context, cmd commands.CreateEventCommand) (*entities.Event, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("invalid command: %w", err)
	}

	var eventID valueobjects.ContentID
	if cmd.EventID != "" {
		id, err := valueobjects.NewContentIDFromString(cmd.EventID)
		if err != nil {
			return nil, fmt.Errorf("invalid event ID: %w", err)
		}
		eventID = id
	}

	event, err := entities.NewEventWithID(eventID, cmd.Title, cmd.Description, cmd.Location, cmd.StartDate, cmd.EndDate)
	if err != nil {
		return nil, err
	}

	if cmd.StaticStatus != "" {
		if err := event.SetStaticStatus(cmd.StaticStatus); err != nil {
			return nil, err
		}
	}

	if cmd.Visibility != "" {
		if err := event.SetVisibility(access.Visibility(cmd.Visibility), cmd.AllowedEmails); err != nil {
			return nil, err
		}
	}

	if err := h.eventRepo.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to save event: %w", err)
	}
	event.MarkEventsAsCommitted()

	h.logger.Info("event created",
		zap.String("eventId", event.ID().String()),
		zap.String("title", event.Title()))

	return event, nil
}

// UpdateEventVisibilityHandler handles visibility policy changes on events
type UpdateEventVisibilityHandler struct {
	eventRepo ports.EventRepository
	publisher ports.EventPublisher
	validator *validators.EventValidator
	logger    *zap.Logger
}

// NewUpdateEventVisibilityHandler creates a new visibility handler
func NewUpdateEventVisibilityHandler(
	eventRepo ports.EventRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *UpdateEventVisibilityHandler {
	return &UpdateEventVisibilityHandler{
		eventRepo: eventRepo,
		publisher: publisher,
		validator: validators.NewEventValidator(),
		logger:    logger,
	}
}

// Handle executes the update event visibility command
func (h *UpdateEventVisibilityHandler) Handle(ctx context.Context, cmd commands.UpdateEventVisibilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return fmt.Errorf("invalid command: %w", err)
	}

	// Bounds the allow-list before touching storage
	if err := h.validator.ValidateAllowList(cmd.AllowedEmails); err != nil {
		return err
	}

	eventID, err := valueobjects.NewContentIDFromString(cmd.EventID)
	if err != nil {
		return fmt.Errorf("invalid event ID: %w", err)
	}

	event, err := h.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}

	if err := event.SetVisibility(access.Visibility(cmd.Visibility), cmd.AllowedEmails); err != nil {
		return err
	}

	if err := h.eventRepo.Save(ctx, event); err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}

	pending := event.GetUncommittedEvents()
	if len(pending) > 0 {
		if err := h.publisher.PublishBatch(ctx, pending); err != nil {
			h.logger.Warn("failed to publish visibility events",
				zap.String("eventId", event.ID().String()),
				zap.Error(err))
		} else {
			event.MarkEventsAsCommitted()
		}
	}

	return nil
}
