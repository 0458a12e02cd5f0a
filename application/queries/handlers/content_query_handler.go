package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"insight-backend/application/ports"
	"insight-backend/application/queries"
	"insight-backend/domain/core/entities"
	"insight-backend/domain/core/valueobjects"
	"insight-backend/pkg/common"
	"go.uber.org/zap"
)

const summaryLength = 160

// ListContentHandler handles content listing queries
type ListContentHandler struct {
	contentRepo ports.ContentRepository
	logger      *zap.Logger
}

// NewListContentHandler creates a new list content handler
func NewListContentHandler(contentRepo ports.ContentRepository, logger *zap.Logger) *ListContentHandler {
	return &ListContentHandler{contentRepo: contentRepo, logger: logger}
}

// Handle executes the list content query
func (h *ListContentHandler) Handle(ctx context.Context, query queries.ListContentQuery) (*queries.ListContentResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	var (
		items []*entities.ContentItem
		err   error
	)
	if query.Kind != "" {
		items, err = h.contentRepo.ListByKind(ctx, entities.ContentKind(query.Kind))
	} else {
		items, err = h.contentRepo.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(query.Search))
	views := make([]queries.ContentView, 0, len(items))
	for _, item := range items {
		if needle != "" && !strings.Contains(strings.ToLower(item.Content().Title()), needle) {
			continue
		}
		view := toContentView(item)
		view.Body = ""
		view.Summary = item.Content().Summary(summaryLength)
		views = append(views, view)
	}

	total := len(views)

	// Window the filtered set
	params := common.DefaultPaginationParams()
	if query.Page > 0 {
		params.Page = query.Page
	}
	if query.PageSize > 0 {
		params.PageSize = query.PageSize
	}
	offset := params.CalculateOffset()
	if offset > total {
		offset = total
	}
	end := offset + params.PageSize
	if end > total {
		end = total
	}
	views = views[offset:end]

	return &queries.ListContentResult{
		Items:      views,
		Total:      total,
		Pagination: common.BuildPaginationMeta(params.Page, params.PageSize, total),
	}, nil
}

// GetContentHandler handles single content item queries
type GetContentHandler struct {
	contentRepo  ports.ContentRepository
	commentRepo  ports.CommentRepository
	reactionRepo ports.ReactionRepository
	logger       *zap.Logger
}

// NewGetContentHandler creates a new get content handler
func NewGetContentHandler(
	contentRepo ports.ContentRepository,
	commentRepo ports.CommentRepository,
	reactionRepo ports.ReactionRepository,
	logger *zap.Logger,
) *GetContentHandler {
	return &GetContentHandler{
		contentRepo:  contentRepo,
		commentRepo:  commentRepo,
		reactionRepo: reactionRepo,
		logger:       logger,
	}
}

// Handle executes the get content query
func (h *GetContentHandler) Handle(ctx context.Context, query queries.GetContentQuery) (*queries.GetContentResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	contentID, err := valueobjects.NewContentIDFromString(query.ContentID)
	if err != nil {
		return nil, fmt.Errorf("invalid content ID: %w", err)
	}

	item, err := h.contentRepo.GetByID(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get content item: %w", err)
	}

	comments, err := h.commentRepo.ListByParentID(ctx, query.ContentID)
	if err != nil {
		h.logger.Error("failed to list comments", zap.String("contentId", query.ContentID), zap.Error(err))
		comments = nil
	}

	reactions, err := h.reactionRepo.ListByParentID(ctx, query.ContentID)
	if err != nil {
		h.logger.Error("failed to list reactions", zap.String("contentId", query.ContentID), zap.Error(err))
		reactions = nil
	}

	commentViews := make([]queries.CommentView, 0, len(comments))
	for _, c := range comments {
		commentViews = append(commentViews, queries.CommentView{
			ID:        c.ID().String(),
			AuthorID:  c.AuthorID(),
			Body:      c.Body(),
			CreatedAt: c.CreatedAt().UTC().Format(time.RFC3339),
		})
	}

	tally := make(map[string]int)
	for _, r := range reactions {
		tally[r.Kind()]++
	}

	return &queries.GetContentResult{
		Item:      toContentView(item),
		Comments:  commentViews,
		Reactions: tally,
	}, nil
}

func toContentView(item *entities.ContentItem) queries.ContentView {
	return queries.ContentView{
		ID:        item.ID().String(),
		Kind:      string(item.Kind()),
		Title:     item.Content().Title(),
		Body:      item.Content().Body(),
		Format:    string(item.Content().Format()),
		AuthorID:  item.AuthorID(),
		Status:    string(item.Status()),
		Version:   item.Version(),
		CreatedAt: item.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt: item.UpdatedAt().UTC().Format(time.RFC3339),
	}
}
