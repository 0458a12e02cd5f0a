package queries

import (
	"errors"

	"insight-backend/domain/core/entities"
	"insight-backend/pkg/common"
)

// ListContentQuery represents a query listing content items, optionally
// narrowed by kind or a case-insensitive title search.
type ListContentQuery struct {
	Kind   string
	Search string

	// Page and PageSize window the result set; non-positive values fall
	// back to the defaults in pkg/common.
	Page     int
	PageSize int
}

// Validate validates the ListContentQuery
func (q ListContentQuery) Validate() error {
	switch entities.ContentKind(q.Kind) {
	case "", entities.KindArticle, entities.KindPaper:
		return nil
	default:
		return errors.New("kind must be article or paper")
	}
}

// ContentView is the read-model projection of a content item
type ContentView struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Body      string `json:"body,omitempty"`
	Summary   string `json:"summary,omitempty"`
	Format    string `json:"format"`
	AuthorID  string `json:"authorId"`
	Status    string `json:"status"`
	Version   int    `json:"version"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ListContentResult represents the result of listing content
type ListContentResult struct {
	Items      []ContentView          `json:"items"`
	Total      int                    `json:"total"`
	Pagination *common.PaginationInfo `json:"pagination,omitempty"`
}

// GetContentQuery represents a query for a single content item with its
// comments and reaction tallies
type GetContentQuery struct {
	ContentID string
}

// Validate validates the GetContentQuery
func (q GetContentQuery) Validate() error {
	if q.ContentID == "" {
		return errors.New("content ID is required")
	}
	return nil
}

// CommentView is the read-model projection of a comment
type CommentView struct {
	ID        string `json:"id"`
	AuthorID  string `json:"authorId"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
}

// GetContentResult represents a content item with its engagement
type GetContentResult struct {
	Item      ContentView    `json:"item"`
	Comments  []CommentView  `json:"comments"`
	Reactions map[string]int `json:"reactions"`
}
