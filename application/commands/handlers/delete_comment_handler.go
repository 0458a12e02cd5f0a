package handlers

import (
	"context"
	"fmt"
	"time"

	"insight-backend/application/commands"
	"insight-backend/application/ports"
	"insight-backend/domain/core/valueobjects"
	domainEvents "insight-backend/domain/events"
	appErrors "insight-backend/pkg/errors"
	"go.uber.org/zap"
)

// DeleteCommentHandler handles comment deletion commands
type DeleteCommentHandler struct {
	commentRepo ports.CommentRepository
	publisher   ports.EventPublisher
	logger      *zap.Logger
}

// NewDeleteCommentHandler creates a new delete comment handler
func NewDeleteCommentHandler(
	commentRepo ports.CommentRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *DeleteCommentHandler {
	return &DeleteCommentHandler{
		commentRepo: commentRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// Handle executes the delete comment command
func (h *DeleteCommentHandler) Handle(ctx context.Context, cmd commands.DeleteCommentCommand) error {
	if err := cmd.Validate(); err != nil {
		return fmt.Errorf("invalid command: %w", err)
	}

	commentID, err := valueobjects.NewContentIDFromString(cmd.CommentID)
	if err != nil {
		return fmt.Errorf("invalid comment ID: %w", err)
	}

	comment, err := h.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("failed to get comment: %w", err)
	}

	// Only the author may remove their own comment
	if comment.AuthorID() != cmd.UserID {
		return appErrors.ErrUserNotAuthorized
	}

	if err := h.commentRepo.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	event := domainEvents.NewCommentDeleted(commentID, comment.ParentID(), time.Now())
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish comment deleted event",
			zap.String("commentId", commentID.String()),
			zap.Error(err))
	}

	return nil
}
