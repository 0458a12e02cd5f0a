package handlers

import (
	"context"
	"testing"

	"insight-backend/application/queries"
	"insight-backend/domain/core/entities"
	"insight-backend/domain/core/valueobjects"
	"insight-backend/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedItemOfKind(t *testing.T, repo *memory.ContentRepository, kind entities.ContentKind, title string) *entities.ContentItem {
	t.Helper()
	content, err := valueobjects.NewItemContent(title, "Body of "+title, valueobjects.FormatPlainText)
	require.NoError(t, err)
	item, err := entities.NewContentItem(kind, content, "author-1")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), item))
	return item
}

func TestListContentHandler_Handle_ListsAll(t *testing.T) {
	// Arrange
	repo := memory.NewContentRepository()
	seedItemOfKind(t, repo, entities.KindArticle, "Go concurrency patterns")
	seedItemOfKind(t, repo, entities.KindPaper, "Consensus in practice")
	handler := NewListContentHandler(repo, zap.NewNop())

	// Act
	result, err := handler.Handle(context.Background(), queries.ListContentQuery{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Items, 2)

	// Listings carry summaries, never full bodies
	for _, item := range result.Items {
		assert.Empty(t, item.Body)
		assert.NotEmpty(t, item.Summary)
	}
}

func TestListContentHandler_Handle_FiltersByKind(t *testing.T) {
	// Arrange
	repo := memory.NewContentRepository()
	seedItemOfKind(t, repo, entities.KindArticle, "Go concurrency patterns")
	paper := seedItemOfKind(t, repo, entities.KindPaper, "Consensus in practice")
	handler := NewListContentHandler(repo, zap.NewNop())

	// Act
	result, err := handler.Handle(context.Background(), queries.ListContentQuery{Kind: "paper"})

	// Assert
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, paper.ID().String(), result.Items[0].ID)
}

func TestListContentHandler_Handle_RejectsUnknownKind(t *testing.T) {
	// Arrange
	handler := NewListContentHandler(memory.NewContentRepository(), zap.NewNop())

	// Act
	result, err := handler.Handle(context.Background(), queries.ListContentQuery{Kind: "podcast"})

	// Assert
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestListContentHandler_Handle_SearchIsCaseInsensitive(t *testing.T) {
	// Arrange
	repo := memory.NewContentRepository()
	match := seedItemOfKind(t, repo, entities.KindArticle, "Designing Data Pipelines")
	seedItemOfKind(t, repo, entities.KindArticle, "Unrelated musings")
	handler := NewListContentHandler(repo, zap.NewNop())

	// Act
	result, err := handler.Handle(context.Background(), queries.ListContentQuery{Search: "  data pipelines "})

	// Assert
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, match.ID().String(), result.Items[0].ID)
	assert.Equal(t, 1, result.Total)
}

func TestListContentHandler_Handle_Paginates(t *testing.T) {
	// Arrange
	repo := memory.NewContentRepository()
	for _, title := range []string{"One", "Two", "Three", "Four", "Five"} {
		seedItemOfKind(t, repo, entities.KindArticle, title)
	}
	handler := NewListContentHandler(repo, zap.NewNop())

	// Act
	result, err := handler.Handle(context.Background(), queries.ListContentQuery{Page: 2, PageSize: 2})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 5, result.Total)
	assert.Len(t, result.Items, 2)
	require.NotNil(t, result.Pagination)
	assert.Equal(t, 2, result.Pagination.Page)
	assert.Equal(t, 3, result.Pagination.TotalPages)
	assert.True(t, result.Pagination.HasNext)
	assert.True(t, result.Pagination.HasPrev)
}

func TestListContentHandler_Handle_PageBeyondEndIsEmpty(t *testing.T) {
	// Arrange
	repo := memory.NewContentRepository()
	seedItemOfKind(t, repo, entities.KindArticle, "Only one")
	handler := NewListContentHandler(repo, zap.NewNop())

	// Act
	result, err := handler.Handle(context.Background(), queries.ListContentQuery{Page: 4, PageSize: 10})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Empty(t, result.Items)
}

func TestGetContentHandler_Handle_ReturnsItemWithEngagement(t *testing.T) {
	// Arrange
	contentRepo := memory.NewContentRepository()
	commentRepo := memory.NewCommentRepository()
	reactionRepo := memory.NewReactionRepository()

	item := seedItemOfKind(t, contentRepo, entities.KindArticle, "Annotated item")
	seedComment(t, commentRepo, item.ID().String())
	seedReaction(t, reactionRepo, item.ID().String(), "user-1")
	seedReaction(t, reactionRepo, item.ID().String(), "user-2")

	handler := NewGetContentHandler(contentRepo, commentRepo, reactionRepo, zap.NewNop())

	// Act
	result, err := handler.Handle(context.Background(), queries.GetContentQuery{ContentID: item.ID().String()})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, item.ID().String(), result.Item.ID)
	assert.Equal(t, "Body of Annotated item", result.Item.Body)
	require.Len(t, result.Comments, 1)
	assert.Equal(t, "A comment", result.Comments[0].Body)
	assert.Equal(t, map[string]int{"like": 2}, result.Reactions)
}

func TestGetContentHandler_Handle_DegradesOnEngagementFetchFailure(t *testing.T) {
	// Arrange
	contentRepo := memory.NewContentRepository()
	item := seedItemOfKind(t, contentRepo, entities.KindArticle, "Sturdy item")

	handler := NewGetContentHandler(contentRepo, failingCommentRepo{}, memory.NewReactionRepository(), zap.NewNop())

	// Act
	result, err := handler.Handle(context.Background(), queries.GetContentQuery{ContentID: item.ID().String()})

	// Assert: the item still renders with empty engagement
	require.NoError(t, err)
	assert.Equal(t, item.ID().String(), result.Item.ID)
	assert.Empty(t, result.Comments)
	assert.Empty(t, result.Reactions)
}

func TestGetContentHandler_Handle_ItemMissing(t *testing.T) {
	// Arrange
	handler := NewGetContentHandler(
		memory.NewContentRepository(),
		memory.NewCommentRepository(),
		memory.NewReactionRepository(),
		zap.NewNop(),
	)

	// Act
	result, err := handler.Handle(context.Background(), queries.GetContentQuery{
		ContentID: "00000000-0000-0000-0000-000000000002",
	})

	// Assert
	require.Error(t, err)
	assert.Nil(t, result)
}
