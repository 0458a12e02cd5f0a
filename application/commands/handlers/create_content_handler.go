package handlers

import (
	"context"
	"fmt"

	"insight-backend/application/commands"
	"insight-backend/application/ports"
	"insight-backend/domain/config"
	"insight-backend/domain/core/entities"
	"insight-backend/domain/core/valueobjects"
	"go.uber.org/zap"
)

// CreateContentHandler handles content creation commands
type CreateContentHandler struct {
	contentRepo ports.ContentRepository
	publisher   ports.EventPublisher
	cfg         *config.DomainConfig
	logger      *zap.Logger
}

// NewCreateContentHandler creates a new create content handler
func NewCreateContentHandler(
	contentRepo ports.ContentRepository,
	publisher ports.EventPublisher,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *CreateContentHandler {
	return &CreateContentHandler{
		contentRepo: contentRepo,
		publisher:   publisher,
		cfg:         cfg,
		logger:      logger,
	}
}

// Handle executes the create content command
func (h *CreateContentHandler) Handle(ctx context.Context, cmd commands.CreateContentCommand) (*entities.ContentItem, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("invalid command: %w", err)
	}

	format := valueobjects.ContentFormat(cmd.Format)
	if cmd.Format == "" {
		format = valueobjects.FormatPlainText
	}

	content, err := valueobjects.NewItemContentWithConfig(cmd.Title, cmd.Body, format, h.cfg)
	if err != nil {
		return nil, err
	}

	var contentID valueobjects.ContentID
	if cmd.ContentID != "" {
		if contentID, err = valueobjects.NewContentIDFromString(cmd.ContentID); err != nil {
			return nil, fmt.Errorf("invalid content ID: %w", err)
		}
	}

	item, err := entities.NewContentItemWithID(contentID, entities.ContentKind(cmd.Kind), content, cmd.AuthorID)
	if err != nil {
		return nil, err
	}

	if cmd.Publish {
		if err := item.Publish(); err != nil {
			return nil, err
		}
	}

	if err := h.contentRepo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save content item: %w", err)
	}

	h.publishEvents(ctx, item)

	h.logger.Info("content item created",
		zap.String("contentId", item.ID().String()),
		zap.String("kind", string(item.Kind())))

	return item, nil
}

func (h *CreateContentHandler) publishEvents(ctx context.Context, item *entities.ContentItem) {
	pending := item.GetUncommittedEvents()
	if len(pending) == 0 {
		return
	}
	if err := h.publisher.PublishBatch(ctx, pending); err != nil {
		h.logger.Warn("failed to publish content events",
			zap.String("contentId", item.ID().String()),
			zap.Error(err))
		return
	}
	item.MarkEventsAsCommitted()
}
