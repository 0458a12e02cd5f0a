package entities

import (
	"strings"
	"testing"

	"insight-backend/domain/config"
	"insight-backend/domain/core/valueobjects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComment(t *testing.T) {
	// Act
	comment, err := NewComment("parent-1", "author-1", "Nice work")

	// Assert
	require.NoError(t, err)
	assert.False(t, comment.ID().IsZero())
	assert.Equal(t, "parent-1", comment.ParentID())
	assert.Equal(t, "author-1", comment.AuthorID())
	assert.Equal(t, "Nice work", comment.Body())
	assert.False(t, comment.CreatedAt().IsZero())
}

func TestNewComment_Validation(t *testing.T) {
	tests := []struct {
		name     string
		parentID string
		authorID string
		body     string
	}{
		{"empty parent", "", "author-1", "text"},
		{"empty author", "parent-1", "", "text"},
		{"empty body", "parent-1", "author-1", ""},
		{"body too long", "parent-1", "author-1", strings.Repeat("x", 2001)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comment, err := NewComment(tt.parentID, tt.authorID, tt.body)
			require.Error(t, err)
			assert.Nil(t, comment)
		})
	}
}

func TestNewCommentWithConfig_AllowsEmptyAuthorWhenConfigured(t *testing.T) {
	// Arrange
	cfg := config.DefaultDomainConfig()
	cfg.AllowEmptyCommentAuthor = true

	// Act
	comment, err := NewCommentWithConfig("parent-1", "", "anonymous note", cfg)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, comment.AuthorID())
}

func TestNewCommentWithID(t *testing.T) {
	// Arrange
	id := valueobjects.NewContentID()

	// Act
	withID, err := NewCommentWithID(id, "parent-1", "author-1", "pinned id", config.DefaultDomainConfig())
	require.NoError(t, err)
	generated, err := NewCommentWithID(valueobjects.ContentID{}, "parent-1", "author-1", "fresh id", config.DefaultDomainConfig())
	require.NoError(t, err)

	// Assert
	assert.Equal(t, id, withID.ID())
	assert.False(t, generated.ID().IsZero())
	assert.NotEqual(t, id, generated.ID())
}

func TestNewReaction(t *testing.T) {
	// Act
	reaction, err := NewReaction("parent-1", "user-1", "like")

	// Assert
	require.NoError(t, err)
	assert.False(t, reaction.ID().IsZero())
	assert.Equal(t, "parent-1", reaction.ParentID())
	assert.Equal(t, "user-1", reaction.UserID())
	assert.Equal(t, "like", reaction.Kind())
}

func TestNewReaction_Validation(t *testing.T) {
	tests := []struct {
		name     string
		parentID string
		userID   string
		kind     string
	}{
		{"empty parent", "", "user-1", "like"},
		{"empty user", "parent-1", "", "like"},
		{"unknown type", "parent-1", "user-1", "heart"},
		{"empty type", "parent-1", "user-1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reaction, err := NewReaction(tt.parentID, tt.userID, tt.kind)
			require.Error(t, err)
			assert.Nil(t, reaction)
		})
	}
}

func TestReaction_IsSame(t *testing.T) {
	// Arrange
	reaction, err := NewReaction("parent-1", "user-1", "like")
	require.NoError(t, err)

	// Assert
	assert.True(t, reaction.IsSame("like"))
	assert.False(t, reaction.IsSame("dislike"))
}
