package handlers

import (
	"context"
	"fmt"

	"insight-backend/application/commands"
	"insight-backend/application/ports"
	"insight-backend/domain/config"
	"insight-backend/domain/core/entities"
	"insight-backend/domain/core/validators"
	"insight-backend/domain/core/valueobjects"
	domainEvents "insight-backend/domain/events"
	"go.uber.org/zap"
)

// AddCommentHandler handles comment creation commands
type AddCommentHandler struct {
	commentRepo ports.CommentRepository
	contentRepo ports.ContentRepository
	publisher   ports.EventPublisher
	validator   *validators.InteractionValidator
	cfg         *config.DomainConfig
	logger      *zap.Logger
}

// NewAddCommentHandler creates a new add comment handler
func NewAddCommentHandler(
	commentRepo ports.CommentRepository,
	contentRepo ports.ContentRepository,
	publisher ports.EventPublisher,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *AddCommentHandler {
	return &AddCommentHandler{
		commentRepo: commentRepo,
		contentRepo: contentRepo,
		publisher:   publisher,
		validator:   validators.NewInteractionValidator(),
		cfg:         cfg,
		logger:      logger,
	}
}

// Handle executes the add comment command
func (h *AddCommentHandler) Handle(ctx context.Context, cmd commands.AddCommentCommand) (*entities.Comment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("invalid command: %w", err)
	}

	// Content screening beyond the structural checks the entity enforces
	if err := h.validator.ValidateCommentBody(cmd.Body); err != nil {
		return nil, err
	}

	parentID, err := valueobjects.NewContentIDFromString(cmd.ParentID)
	if err != nil {
		return nil, fmt.Errorf("invalid parent ID: %w", err)
	}

	// The parent item must exist before accepting engagement on it
	if _, err := h.contentRepo.GetByID(ctx, parentID); err != nil {
		return nil, fmt.Errorf("failed to get parent item: %w", err)
	}

	var commentID valueobjects.ContentID
	if cmd.CommentID != "" {
		if commentID, err = valueobjects.NewContentIDFromString(cmd.CommentID); err != nil {
			return nil, fmt.Errorf("invalid comment ID: %w", err)
		}
	}

	comment, err := entities.NewCommentWithID(commentID, cmd.ParentID, cmd.AuthorID, cmd.Body, h.cfg)
	if err != nil {
		return nil, err
	}

	if err := h.commentRepo.Save(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	event := domainEvents.NewCommentAdded(comment.ID(), comment.ParentID(), comment.AuthorID(), comment.CreatedAt())
	if err := h.publisher.Publish(ctx, event); err != nil {
		// Event delivery is best-effort; the comment is already durable
		h.logger.Warn("failed to publish comment added event",
			zap.String("commentId", comment.ID().String()),
			zap.Error(err))
	}

	h.logger.Info("comment added",
		zap.String("commentId", comment.ID().String()),
		zap.String("parentId", comment.ParentID()))

	return comment, nil
}
