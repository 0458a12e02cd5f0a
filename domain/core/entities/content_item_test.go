package entities

import (
	"testing"

	"insight-backend/domain/core/valueobjects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustContent(t *testing.T, title, body string) valueobjects.ItemContent {
	t.Helper()
	content, err := valueobjects.NewItemContent(title, body, valueobjects.FormatPlainText)
	require.NoError(t, err)
	return content
}

func TestNewContentItem(t *testing.T) {
	content := mustContent(t, "A title", "Some body")

	t.Run("creates a draft", func(t *testing.T) {
		item, err := NewContentItem(KindArticle, content, "author-1")

		require.NoError(t, err)
		assert.Equal(t, StatusDraft, item.Status())
		assert.Equal(t, KindArticle, item.Kind())
		assert.Equal(t, "author-1", item.AuthorID())
		assert.Equal(t, 1, item.Version())
		assert.False(t, item.ID().IsZero())
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := NewContentItem(ContentKind("video"), content, "author-1")
		assert.Error(t, err)
	})

	t.Run("rejects missing author", func(t *testing.T) {
		_, err := NewContentItem(KindPaper, content, "")
		assert.Error(t, err)
	})
}

func TestNewContentItemWithID(t *testing.T) {
	content := mustContent(t, "A title", "Some body")

	t.Run("honors a caller-supplied ID", func(t *testing.T) {
		id := valueobjects.NewContentID()

		item, err := NewContentItemWithID(id, KindArticle, content, "author-1")

		require.NoError(t, err)
		assert.Equal(t, id, item.ID())
	})

	t.Run("generates an ID when given a zero value", func(t *testing.T) {
		item, err := NewContentItemWithID(valueobjects.ContentID{}, KindArticle, content, "author-1")

		require.NoError(t, err)
		assert.False(t, item.ID().IsZero())
	})
}

func TestContentItem_Publish(t *testing.T) {
	item, err := NewContentItem(KindArticle, mustContent(t, "T", "B"), "author-1")
	require.NoError(t, err)

	// Act
	err = item.Publish()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, StatusPublished, item.Status())
	assert.Equal(t, 2, item.Version())
	assert.Len(t, item.GetUncommittedEvents(), 1)

	// Publishing again is a no-op
	require.NoError(t, item.Publish())
	assert.Equal(t, 2, item.Version())
	assert.Len(t, item.GetUncommittedEvents(), 1)
}

func TestContentItem_Archive(t *testing.T) {
	item, err := NewContentItem(KindArticle, mustContent(t, "T", "B"), "author-1")
	require.NoError(t, err)
	require.NoError(t, item.Publish())

	// Act
	err = item.Archive()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, StatusArchived, item.Status())

	// Archived items refuse further editorial changes
	assert.Error(t, item.Publish())
	assert.Error(t, item.UpdateContent(mustContent(t, "New", "Body")))
}

func TestContentItem_UpdateContent(t *testing.T) {
	item, err := NewContentItem(KindArticle, mustContent(t, "T", "B"), "author-1")
	require.NoError(t, err)

	t.Run("bumps version on change", func(t *testing.T) {
		require.NoError(t, item.UpdateContent(mustContent(t, "T2", "B2")))
		assert.Equal(t, "T2", item.Content().Title())
		assert.Equal(t, 2, item.Version())
	})

	t.Run("identical content is a no-op", func(t *testing.T) {
		require.NoError(t, item.UpdateContent(mustContent(t, "T2", "B2")))
		assert.Equal(t, 2, item.Version())
	})
}

func TestContentItem_EventLifecycle(t *testing.T) {
	item, err := NewContentItem(KindArticle, mustContent(t, "T", "B"), "author-1")
	require.NoError(t, err)
	require.NoError(t, item.Publish())
	require.Len(t, item.GetUncommittedEvents(), 1)

	item.MarkEventsAsCommitted()

	assert.Empty(t, item.GetUncommittedEvents())
}
