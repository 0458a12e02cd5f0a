package handlers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"insight-backend/application/ports"
	"insight-backend/application/queries"
	"insight-backend/domain/analytics"
	domainconfig "insight-backend/domain/config"
	"insight-backend/domain/core/entities"
	"go.uber.org/zap"
)

// EngagementSnapshotHandler handles engagement snapshot queries. The three
// source collections are fetched concurrently and any fetch failure
// degrades to an empty collection so the dashboard always renders.
type EngagementSnapshotHandler struct {
	contentRepo  ports.ContentRepository
	commentRepo  ports.CommentRepository
	reactionRepo ports.ReactionRepository
	cfg          *domainconfig.DomainConfig
	logger       *zap.Logger
}

// NewEngagementSnapshotHandler creates a new engagement snapshot handler.
// The domain config supplies the deployment's window defaults; queries
// that carry explicit parameters override it.
func NewEngagementSnapshotHandler(
	contentRepo ports.ContentRepository,
	commentRepo ports.CommentRepository,
	reactionRepo ports.ReactionRepository,
	cfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *EngagementSnapshotHandler {
	return &EngagementSnapshotHandler{
		contentRepo:  contentRepo,
		commentRepo:  commentRepo,
		reactionRepo: reactionRepo,
		cfg:          cfg,
		logger:       logger,
	}
}

// Handle executes the engagement snapshot query
func (h *EngagementSnapshotHandler) Handle(ctx context.Context, query queries.GetEngagementSnapshotQuery) (*queries.GetEngagementSnapshotResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	var (
		wg        sync.WaitGroup
		items     []*entities.ContentItem
		comments  []*entities.Comment
		reactions []*entities.Reaction
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		var err error
		items, err = h.contentRepo.List(ctx)
		if err != nil {
			h.logger.Error("failed to list content for snapshot", zap.Error(err))
			items = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		comments, err = h.commentRepo.List(ctx)
		if err != nil {
			h.logger.Error("failed to list comments for snapshot", zap.Error(err))
			comments = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		reactions, err = h.reactionRepo.List(ctx)
		if err != nil {
			h.logger.Error("failed to list reactions for snapshot", zap.Error(err))
			reactions = nil
		}
	}()
	wg.Wait()

	windowDays, topN := h.resolveParams(query)

	now := time.Now()
	snapshot := analytics.Compute(
		mapItems(items),
		mapComments(comments),
		mapReactions(reactions),
		now,
		windowDays,
		topN,
	)

	return &queries.GetEngagementSnapshotResult{
		Snapshot:   snapshot,
		WindowDays: windowDays,
		TopN:       topN,
		ComputedAt: now.UTC().Format(time.RFC3339),
	}, nil
}

// resolveParams layers the window parameters: explicit query values win,
// then the configured deployment defaults, then the aggregator defaults.
// Oversized requests are clamped so a caller cannot ask for an unbounded
// series.
func (h *EngagementSnapshotHandler) resolveParams(query queries.GetEngagementSnapshotQuery) (int, int) {
	windowDays := query.WindowDays
	topN := query.TopN
	if h.cfg != nil {
		if windowDays <= 0 {
			windowDays = h.cfg.WindowDays
		}
		if topN <= 0 {
			topN = h.cfg.TopN
		}
	}
	return analytics.NormalizeParams(windowDays, topN)
}

func mapItems(items []*entities.ContentItem) []analytics.ContentItem {
	out := make([]analytics.ContentItem, 0, len(items))
	for _, item := range items {
		out = append(out, analytics.ContentItem{
			ID:    item.ID().String(),
			Title: item.Content().Title(),
			Kind:  string(item.Kind()),
		})
	}
	return out
}

func mapComments(comments []*entities.Comment) []analytics.Comment {
	out := make([]analytics.Comment, 0, len(comments))
	for _, c := range comments {
		out = append(out, analytics.Comment{
			ID:        c.ID().String(),
			ParentID:  c.ParentID(),
			AuthorID:  c.AuthorID(),
			CreatedAt: c.CreatedAt().UTC().Format(time.RFC3339),
		})
	}
	return out
}

func mapReactions(reactions []*entities.Reaction) []analytics.Reaction {
	out := make([]analytics.Reaction, 0, len(reactions))
	for _, r := range reactions {
		out = append(out, analytics.Reaction{
			ID:        r.ID().String(),
			ParentID:  r.ParentID(),
			UserID:    r.UserID(),
			Type:      r.Kind(),
			CreatedAt: r.CreatedAt().UTC().Format(time.RFC3339),
		})
	}
	return out
}
