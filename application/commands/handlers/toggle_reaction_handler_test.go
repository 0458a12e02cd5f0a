package handlers

import (
	"context"
	"errors"
	"testing"

	"insight-backend/application/commands"
	"insight-backend/domain/config"
	"insight-backend/domain/core/entities"
	"insight-backend/domain/core/valueobjects"
	"insight-backend/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedContentItem(t *testing.T, repo *memory.ContentRepository) *entities.ContentItem {
	t.Helper()
	content, err := valueobjects.NewItemContent("A title", "A body", valueobjects.FormatPlainText)
	require.NoError(t, err)
	item, err := entities.NewContentItem(entities.KindArticle, content, "author-1")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), item))
	return item
}

func newToggleFixture(t *testing.T) (*ToggleReactionHandler, *memory.ContentRepository, *memory.ReactionRepository, *memory.EventPublisher) {
	t.Helper()
	contentRepo := memory.NewContentRepository()
	reactionRepo := memory.NewReactionRepository()
	publisher := memory.NewEventPublisher()
	handler := NewToggleReactionHandler(
		reactionRepo,
		contentRepo,
		publisher,
		memory.NewResourceLocker(),
		config.DefaultDomainConfig(),
		zap.NewNop(),
	)
	return handler, contentRepo, reactionRepo, publisher
}

func TestToggleReactionHandler_Add(t *testing.T) {
	// Arrange
	ctx := context.Background()
	handler, contentRepo, reactionRepo, publisher := newToggleFixture(t)
	item := seedContentItem(t, contentRepo)

	cmd := commands.ToggleReactionCommand{
		ParentID: item.ID().String(),
		UserID:   "user-1",
		Type:     "like",
	}

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, ToggleActionAdded, result.Action)
	require.NotNil(t, result.Reaction)
	assert.Equal(t, "like", result.Reaction.Kind())

	stored, err := reactionRepo.GetByParentAndUser(ctx, item.ID().String(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "like", stored.Kind())
	assert.Len(t, publisher.Published(), 1)
}

func TestToggleReactionHandler_RemoveOnRepeat(t *testing.T) {
	// Arrange
	ctx := context.Background()
	handler, contentRepo, reactionRepo, _ := newToggleFixture(t)
	item := seedContentItem(t, contentRepo)

	cmd := commands.ToggleReactionCommand{
		ParentID: item.ID().String(),
		UserID:   "user-1",
		Type:     "like",
	}
	_, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)

	// Act: the same reaction again undoes it
	result, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, ToggleActionRemoved, result.Action)
	assert.Nil(t, result.Reaction)

	stored, err := reactionRepo.GetByParentAndUser(ctx, item.ID().String(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestToggleReactionHandler_ReplaceOnDifferentType(t *testing.T) {
	// Arrange
	ctx := context.Background()
	handler, contentRepo, reactionRepo, _ := newToggleFixture(t)
	item := seedContentItem(t, contentRepo)

	_, err := handler.Handle(ctx, commands.ToggleReactionCommand{
		ParentID: item.ID().String(),
		UserID:   "user-1",
		Type:     "like",
	})
	require.NoError(t, err)

	original, err := reactionRepo.GetByParentAndUser(ctx, item.ID().String(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, original)

	// Act: a different type replaces the existing reaction
	result, err := handler.Handle(ctx, commands.ToggleReactionCommand{
		ParentID: item.ID().String(),
		UserID:   "user-1",
		Type:     "dislike",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, ToggleActionReplaced, result.Action)

	stored, err := reactionRepo.GetByParentAndUser(ctx, item.ID().String(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "dislike", stored.Kind())
	// Overwritten in place: the identifier survives the type change
	assert.Equal(t, original.ID(), stored.ID())

	// The invariant holds: one reaction per (parent, user)
	all, err := reactionRepo.ListByParentID(ctx, item.ID().String())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

// brokenSaveReactionRepo rejects writes once armed, leaving reads intact.
type brokenSaveReactionRepo struct {
	*memory.ReactionRepository
	failSaves bool
}

func (r *brokenSaveReactionRepo) Save(ctx context.Context, reaction *entities.Reaction) error {
	if r.failSaves {
		return errors.New("storage unavailable")
	}
	return r.ReactionRepository.Save(ctx, reaction)
}

func TestToggleReactionHandler_ReplaceSaveFailureKeepsOriginal(t *testing.T) {
	// Arrange
	ctx := context.Background()
	contentRepo := memory.NewContentRepository()
	reactionRepo := &brokenSaveReactionRepo{ReactionRepository: memory.NewReactionRepository()}
	handler := NewToggleReactionHandler(
		reactionRepo,
		contentRepo,
		memory.NewEventPublisher(),
		memory.NewResourceLocker(),
		config.DefaultDomainConfig(),
		zap.NewNop(),
	)
	item := seedContentItem(t, contentRepo)

	_, err := handler.Handle(ctx, commands.ToggleReactionCommand{
		ParentID: item.ID().String(),
		UserID:   "user-1",
		Type:     "like",
	})
	require.NoError(t, err)
	reactionRepo.failSaves = true

	// Act: the replacement write fails mid-toggle
	_, err = handler.Handle(ctx, commands.ToggleReactionCommand{
		ParentID: item.ID().String(),
		UserID:   "user-1",
		Type:     "dislike",
	})

	// Assert: the user's reaction is not lost to the failed write
	require.Error(t, err)
	stored, err := reactionRepo.GetByParentAndUser(ctx, item.ID().String(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "like", stored.Kind())
}

func TestToggleReactionHandler_UsersAreIndependent(t *testing.T) {
	// Arrange
	ctx := context.Background()
	handler, contentRepo, reactionRepo, _ := newToggleFixture(t)
	item := seedContentItem(t, contentRepo)

	// Act
	_, err := handler.Handle(ctx, commands.ToggleReactionCommand{
		ParentID: item.ID().String(), UserID: "user-1", Type: "like",
	})
	require.NoError(t, err)
	_, err = handler.Handle(ctx, commands.ToggleReactionCommand{
		ParentID: item.ID().String(), UserID: "user-2", Type: "dislike",
	})
	require.NoError(t, err)

	// Assert
	all, err := reactionRepo.ListByParentID(ctx, item.ID().String())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestToggleReactionHandler_ParentMissing(t *testing.T) {
	// Arrange
	ctx := context.Background()
	handler, _, _, _ := newToggleFixture(t)

	// Act
	_, err := handler.Handle(ctx, commands.ToggleReactionCommand{
		ParentID: valueobjects.NewContentID().String(),
		UserID:   "user-1",
		Type:     "like",
	})

	// Assert
	assert.Error(t, err)
}

func TestToggleReactionHandler_InvalidType(t *testing.T) {
	// Arrange
	ctx := context.Background()
	handler, contentRepo, _, _ := newToggleFixture(t)
	item := seedContentItem(t, contentRepo)

	// Act
	_, err := handler.Handle(ctx, commands.ToggleReactionCommand{
		ParentID: item.ID().String(),
		UserID:   "user-1",
		Type:     "heart",
	})

	// Assert
	assert.Error(t, err)
}
