package handlers

import (
	"context"
	"testing"

	"insight-backend/application/commands"
	"insight-backend/domain/config"
	"insight-backend/infrastructure/persistence/memory"
	appErrors "insight-backend/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCommentFixture(t *testing.T) (*AddCommentHandler, *DeleteCommentHandler, *memory.ContentRepository, *memory.CommentRepository, *memory.EventPublisher) {
	t.Helper()
	contentRepo := memory.NewContentRepository()
	commentRepo := memory.NewCommentRepository()
	publisher := memory.NewEventPublisher()
	add := NewAddCommentHandler(commentRepo, contentRepo, publisher, config.DefaultDomainConfig(), zap.NewNop())
	del := NewDeleteCommentHandler(commentRepo, publisher, zap.NewNop())
	return add, del, contentRepo, commentRepo, publisher
}

func TestAddCommentHandler_Handle_Success(t *testing.T) {
	// Arrange
	add, _, contentRepo, commentRepo, publisher := newCommentFixture(t)
	parent := seedContentItem(t, contentRepo)
	ctx := context.Background()

	cmd := commands.AddCommentCommand{
		ParentID: parent.ID().String(),
		AuthorID: "commenter-1",
		Body:     "Great write-up, thanks for sharing.",
	}

	// Act
	comment, err := add.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, comment)
	assert.Equal(t, parent.ID().String(), comment.ParentID())
	assert.Equal(t, "commenter-1", comment.AuthorID())
	assert.Equal(t, cmd.Body, comment.Body())

	stored, err := commentRepo.GetByID(ctx, comment.ID())
	require.NoError(t, err)
	assert.Equal(t, comment.ID(), stored.ID())

	assert.Len(t, publisher.Published(), 1)
}

func TestAddCommentHandler_Handle_HonorsSuppliedCommentID(t *testing.T) {
	// Arrange
	add, _, contentRepo, _, _ := newCommentFixture(t)
	parent := seedContentItem(t, contentRepo)
	commentID := uuid.New().String()

	cmd := commands.AddCommentCommand{
		CommentID: commentID,
		ParentID:  parent.ID().String(),
		AuthorID:  "commenter-1",
		Body:      "First!",
	}

	// Act
	comment, err := add.Handle(context.Background(), cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, commentID, comment.ID().String())
}

func TestAddCommentHandler_Handle_ParentMissing(t *testing.T) {
	// Arrange
	add, _, _, _, publisher := newCommentFixture(t)

	cmd := commands.AddCommentCommand{
		ParentID: uuid.New().String(),
		AuthorID: "commenter-1",
		Body:     "Orphaned comment",
	}

	// Act
	comment, err := add.Handle(context.Background(), cmd)

	// Assert
	require.Error(t, err)
	assert.Nil(t, comment)
	assert.Empty(t, publisher.Published())
}

func TestAddCommentHandler_Handle_RejectsEmptyBody(t *testing.T) {
	// Arrange
	add, _, contentRepo, _, _ := newCommentFixture(t)
	parent := seedContentItem(t, contentRepo)

	cmd := commands.AddCommentCommand{
		ParentID: parent.ID().String(),
		AuthorID: "commenter-1",
		Body:     "",
	}

	// Act
	_, err := add.Handle(context.Background(), cmd)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid command")
}

func TestDeleteCommentHandler_Handle_AuthorCanDelete(t *testing.T) {
	// Arrange
	add, del, contentRepo, commentRepo, _ := newCommentFixture(t)
	parent := seedContentItem(t, contentRepo)
	ctx := context.Background()

	comment, err := add.Handle(ctx, commands.AddCommentCommand{
		ParentID: parent.ID().String(),
		AuthorID: "commenter-1",
		Body:     "To be removed",
	})
	require.NoError(t, err)

	// Act
	err = del.Handle(ctx, commands.DeleteCommentCommand{
		CommentID: comment.ID().String(),
		UserID:    "commenter-1",
	})

	// Assert
	require.NoError(t, err)
	_, err = commentRepo.GetByID(ctx, comment.ID())
	assert.Error(t, err)
}

func TestDeleteCommentHandler_Handle_RejectsNonAuthor(t *testing.T) {
	// Arrange
	add, del, contentRepo, commentRepo, _ := newCommentFixture(t)
	parent := seedContentItem(t, contentRepo)
	ctx := context.Background()

	comment, err := add.Handle(ctx, commands.AddCommentCommand{
		ParentID: parent.ID().String(),
		AuthorID: "commenter-1",
		Body:     "Not yours to remove",
	})
	require.NoError(t, err)

	// Act
	err = del.Handle(ctx, commands.DeleteCommentCommand{
		CommentID: comment.ID().String(),
		UserID:    "somebody-else",
	})

	// Assert
	require.ErrorIs(t, err, appErrors.ErrUserNotAuthorized)

	// The comment must survive the rejected attempt
	stored, err := commentRepo.GetByID(ctx, comment.ID())
	require.NoError(t, err)
	assert.Equal(t, comment.ID(), stored.ID())
}
