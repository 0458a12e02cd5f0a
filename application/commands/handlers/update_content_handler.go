package handlers

import (
	"context"
	"fmt"

	"insight-backend/application/commands"
	"insight-backend/application/ports"
	"insight-backend/domain/config"
	"insight-backend/domain/core/valueobjects"
	appErrors "insight-backend/pkg/errors"
	"go.uber.org/zap"
)

// UpdateContentHandler handles content update and archive commands
type UpdateContentHandler struct {
	contentRepo ports.ContentRepository
	publisher   ports.EventPublisher
	cfg         *config.DomainConfig
	logger      *zap.Logger
}

// NewUpdateContentHandler creates a new update content handler
func NewUpdateContentHandler(
	contentRepo ports.ContentRepository,
	publisher ports.EventPublisher,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *UpdateContentHandler {
	return &UpdateContentHandler{
		contentRepo: contentRepo,
		publisher:   publisher,
		cfg:         cfg,
		logger:      logger,
	}
}

// Handle executes the update content command
func (h *UpdateContentHandler) Handle(ctx context.Context, cmd commands.UpdateContentCommand) error {
	if err := cmd.Validate(); err != nil {
		return fmt.Errorf("invalid command: %w", err)
	}

	contentID, err := valueobjects.NewContentIDFromString(cmd.ContentID)
	if err != nil {
		return fmt.Errorf("invalid content ID: %w", err)
	}

	item, err := h.contentRepo.GetByID(ctx, contentID)
	if err != nil {
		return fmt.Errorf("failed to get content item: %w", err)
	}

	if item.AuthorID() != cmd.UserID {
		return appErrors.ErrUserNotAuthorized
	}

	format := item.Content().Format()
	if cmd.Format != "" {
		format = valueobjects.ContentFormat(cmd.Format)
	}

	content, err := valueobjects.NewItemContentWithConfig(cmd.Title, cmd.Body, format, h.cfg)
	if err != nil {
		return err
	}

	if err := item.UpdateContent(content); err != nil {
		return err
	}

	if err := h.contentRepo.Save(ctx, item); err != nil {
		return fmt.Errorf("failed to save content item: %w", err)
	}

	item.MarkEventsAsCommitted()
	return nil
}

// HandleArchive executes the archive content command
func (h *UpdateContentHandler) HandleArchive(ctx context.Context, cmd commands.ArchiveContentCommand) error {
	if err := cmd.Validate(); err != nil {
		return fmt.Errorf("invalid command: %w", err)
	}

	contentID, err := valueobjects.NewContentIDFromString(cmd.ContentID)
	if err != nil {
		return fmt.Errorf("invalid content ID: %w", err)
	}

	item, err := h.contentRepo.GetByID(ctx, contentID)
	if err != nil {
		return fmt.Errorf("failed to get content item: %w", err)
	}

	if item.AuthorID() != cmd.UserID {
		return appErrors.ErrUserNotAuthorized
	}

	if err := item.Archive(); err != nil {
		return err
	}

	if err := h.contentRepo.Save(ctx, item); err != nil {
		return fmt.Errorf("failed to save content item: %w", err)
	}

	pending := item.GetUncommittedEvents()
	if len(pending) > 0 {
		if err := h.publisher.PublishBatch(ctx, pending); err != nil {
			h.logger.Warn("failed to publish content events",
				zap.String("contentId", item.ID().String()),
				zap.Error(err))
		} else {
			item.MarkEventsAsCommitted()
		}
	}

	return nil
}
