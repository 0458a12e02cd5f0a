package handlers

import (
	"context"
	"fmt"
	"time"

	"insight-backend/application/commands"
	"insight-backend/application/ports"
	"insight-backend/domain/config"
	"insight-backend/domain/core/entities"
	"insight-backend/domain/core/valueobjects"
	domainEvents "insight-backend/domain/events"
	"go.uber.org/zap"
)

// Toggle outcomes reported back to callers and emitted on the event bus.
const (
	ToggleActionAdded    = "added"
	ToggleActionReplaced = "replaced"
	ToggleActionRemoved  = "removed"
)

// ToggleReactionResult describes what the toggle did
type ToggleReactionResult struct {
	Action   string             `json:"action"`
	Reaction *entities.Reaction `json:"-"`
}

// ToggleReactionHandler handles reaction toggle commands. It maintains the
// invariant that a user holds at most one reaction per content item.
type ToggleReactionHandler struct {
	reactionRepo ports.ReactionRepository
	contentRepo  ports.ContentRepository
	publisher    ports.EventPublisher
	locker       ports.ResourceLocker
	cfg          *config.DomainConfig
	logger       *zap.Logger
}

// NewToggleReactionHandler creates a new toggle reaction handler
func NewToggleReactionHandler(
	reactionRepo ports.ReactionRepository,
	contentRepo ports.ContentRepository,
	publisher ports.EventPublisher,
	locker ports.ResourceLocker,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *ToggleReactionHandler {
	return &ToggleReactionHandler{
		reactionRepo: reactionRepo,
		contentRepo:  contentRepo,
		publisher:    publisher,
		locker:       locker,
		cfg:          cfg,
		logger:       logger,
	}
}

// Handle executes the toggle reaction command
func (h *ToggleReactionHandler) Handle(ctx context.Context, cmd commands.ToggleReactionCommand) (*ToggleReactionResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("invalid command: %w", err)
	}

	parentID, err := valueobjects.NewContentIDFromString(cmd.ParentID)
	if err != nil {
		return nil, fmt.Errorf("invalid parent ID: %w", err)
	}

	if _, err := h.contentRepo.GetByID(ctx, parentID); err != nil {
		return nil, fmt.Errorf("failed to get parent item: %w", err)
	}

	// The toggle is a read-modify-write on the (parent, user) pair, so
	// concurrent requests from the same user must be serialized.
	lock, err := h.locker.AcquireLock(ctx, fmt.Sprintf("reaction#%s#%s", cmd.ParentID, cmd.UserID), cmd.UserID, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to lock reaction: %w", err)
	}
	defer func() {
		if err := lock.Release(ctx); err != nil {
			h.logger.Warn("failed to release reaction lock",
				zap.String("parentId", cmd.ParentID),
				zap.Error(err))
		}
	}()

	existing, err := h.reactionRepo.GetByParentAndUser(ctx, cmd.ParentID, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up existing reaction: %w", err)
	}

	result := &ToggleReactionResult{}
	switch {
	case existing == nil:
		// First reaction from this user on this item
		reaction, err := entities.NewReactionWithConfig(cmd.ParentID, cmd.UserID, cmd.Type, h.cfg)
		if err != nil {
			return nil, err
		}
		if err := h.reactionRepo.Save(ctx, reaction); err != nil {
			return nil, fmt.Errorf("failed to save reaction: %w", err)
		}
		result.Action = ToggleActionAdded
		result.Reaction = reaction

	case existing.IsSame(cmd.Type):
		// Same type again: undo
		if err := h.reactionRepo.Delete(ctx, existing.ID()); err != nil {
			return nil, fmt.Errorf("failed to remove reaction: %w", err)
		}
		result.Action = ToggleActionRemoved

	default:
		// Different type: overwrite in place under the existing ID, so a
		// failed write cannot leave the pair reaction-less.
		reaction, err := entities.NewReactionWithID(existing.ID(), cmd.ParentID, cmd.UserID, cmd.Type, h.cfg)
		if err != nil {
			return nil, err
		}
		if err := h.reactionRepo.Save(ctx, reaction); err != nil {
			return nil, fmt.Errorf("failed to save reaction: %w", err)
		}
		result.Action = ToggleActionReplaced
		result.Reaction = reaction
	}

	event := domainEvents.NewReactionToggled(cmd.ParentID, cmd.UserID, cmd.Type, result.Action, time.Now())
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish reaction toggled event",
			zap.String("parentId", cmd.ParentID),
			zap.Error(err))
	}

	h.logger.Info("reaction toggled",
		zap.String("parentId", cmd.ParentID),
		zap.String("action", result.Action))

	return result, nil
}
