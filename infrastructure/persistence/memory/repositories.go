package memory

import (
	"context"
	"sort"
	"sync"

	"insight-backend/application/ports"
	"insight-backend/domain/core/entities"
	"insight-backend/domain/core/valueobjects"
	appErrors "insight-backend/pkg/errors"
)

// In-memory repositories backing local development and tests. Listings
// are returned in insertion order so reads are deterministic.

// ContentRepository provides an in-memory implementation of
// ports.ContentRepository
type ContentRepository struct {
	mu    sync.RWMutex
	items map[string]*entities.ContentItem
	order []string
}

// NewContentRepository creates a new in-memory content repository
func NewContentRepository() *ContentRepository {
	return &ContentRepository{items: make(map[string]*entities.ContentItem)}
}

// Save persists a content item
func (r *ContentRepository) Save(ctx context.Context, item *entities.ContentItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := item.ID().String()
	if _, exists := r.items[key]; !exists {
		r.order = append(r.order, key)
	}
	r.items[key] = item
	return nil
}

// GetByID retrieves a content item by its ID
func (r *ContentRepository) GetByID(ctx context.Context, id valueobjects.ContentID) (*entities.ContentItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id.String()]
	if !exists {
		return nil, appErrors.ErrContentNotFound
	}
	return item, nil
}

// List retrieves all content items in insertion order
func (r *ContentRepository) List(ctx context.Context) ([]*entities.ContentItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.ContentItem, 0, len(r.order))
	for _, key := range r.order {
		if item, exists := r.items[key]; exists {
			out = append(out, item)
		}
	}
	return out, nil
}

// ListByKind retrieves all content items of one kind
func (r *ContentRepository) ListByKind(ctx context.Context, kind entities.ContentKind) ([]*entities.ContentItem, error) {
	all, _ := r.List(ctx)
	out := make([]*entities.ContentItem, 0, len(all))
	for _, item := range all {
		if item.Kind() == kind {
			out = append(out, item)
		}
	}
	return out, nil
}

// Delete removes a content item
func (r *ContentRepository) Delete(ctx context.Context, id valueobjects.ContentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := id.String()
	if _, exists := r.items[key]; !exists {
		return appErrors.ErrContentNotFound
	}
	delete(r.items, key)
	r.removeFromOrder(key)
	return nil
}

func (r *ContentRepository) removeFromOrder(key string) {
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

// CommentRepository provides an in-memory implementation of
// ports.CommentRepository
type CommentRepository struct {
	mu       sync.RWMutex
	comments map[string]*entities.Comment
	order    []string
}

// NewCommentRepository creates a new in-memory comment repository
func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[string]*entities.Comment)}
}

// Save persists a comment
func (r *CommentRepository) Save(ctx context.Context, comment *entities.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := comment.ID().String()
	if _, exists := r.comments[key]; !exists {
		r.order = append(r.order, key)
	}
	r.comments[key] = comment
	return nil
}

// GetByID retrieves a comment by its ID
func (r *CommentRepository) GetByID(ctx context.Context, id valueobjects.ContentID) (*entities.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comment, exists := r.comments[id.String()]
	if !exists {
		return nil, appErrors.ErrCommentNotFound
	}
	return comment, nil
}

// List retrieves all comments in insertion order
func (r *CommentRepository) List(ctx context.Context) ([]*entities.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Comment, 0, len(r.order))
	for _, key := range r.order {
		if comment, exists := r.comments[key]; exists {
			out = append(out, comment)
		}
	}
	return out, nil
}

// ListByParentID retrieves the comments correlated to one item
func (r *CommentRepository) ListByParentID(ctx context.Context, parentID string) ([]*entities.Comment, error) {
	all, _ := r.List(ctx)
	out := make([]*entities.Comment, 0, len(all))
	for _, comment := range all {
		if comment.ParentID() == parentID {
			out = append(out, comment)
		}
	}
	return out, nil
}

// Delete removes a comment
func (r *CommentRepository) Delete(ctx context.Context, id valueobjects.ContentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := id.String()
	if _, exists := r.comments[key]; !exists {
		return appErrors.ErrCommentNotFound
	}
	delete(r.comments, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// ReactionRepository provides an in-memory implementation of
// ports.ReactionRepository
type ReactionRepository struct {
	mu        sync.RWMutex
	reactions map[string]*entities.Reaction
}

// NewReactionRepository creates a new in-memory reaction repository
func NewReactionRepository() *ReactionRepository {
	return &ReactionRepository{reactions: make(map[string]*entities.Reaction)}
}

// Save persists a reaction
func (r *ReactionRepository) Save(ctx context.Context, reaction *entities.Reaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reactions[reaction.ID().String()] = reaction
	return nil
}

// List retrieves all reactions ordered by creation time
func (r *ReactionRepository) List(ctx context.Context) ([]*entities.Reaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Reaction, 0, len(r.reactions))
	for _, reaction := range r.reactions {
		out = append(out, reaction)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].ID().String() < out[j].ID().String()
		}
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out, nil
}

// ListByParentID retrieves the reactions correlated to one item
func (r *ReactionRepository) ListByParentID(ctx context.Context, parentID string) ([]*entities.Reaction, error) {
	all, _ := r.List(ctx)
	out := make([]*entities.Reaction, 0, len(all))
	for _, reaction := range all {
		if reaction.ParentID() == parentID {
			out = append(out, reaction)
		}
	}
	return out, nil
}

// GetByParentAndUser retrieves a user's current reaction on an item, or
// nil when none exists
func (r *ReactionRepository) GetByParentAndUser(ctx context.Context, parentID, userID string) (*entities.Reaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, reaction := range r.reactions {
		if reaction.ParentID() == parentID && reaction.UserID() == userID {
			return reaction, nil
		}
	}
	return nil, nil
}

// Delete removes a reaction
func (r *ReactionRepository) Delete(ctx context.Context, id valueobjects.ContentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.reactions, id.String())
	return nil
}

// EventRepository provides an in-memory implementation of
// ports.EventRepository
type EventRepository struct {
	mu     sync.RWMutex
	events map[string]*entities.Event
	order  []string
}

// NewEventRepository creates a new in-memory event repository
func NewEventRepository() *EventRepository {
	return &EventRepository{events: make(map[string]*entities.Event)}
}

// Save persists an event
func (r *EventRepository) Save(ctx context.Context, event *entities.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := event.ID().String()
	if _, exists := r.events[key]; !exists {
		r.order = append(r.order, key)
	}
	r.events[key] = event
	return nil
}

// GetByID retrieves an event by its ID
func (r *EventRepository) GetByID(ctx context.Context, id valueobjects.ContentID) (*entities.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, exists := r.events[id.String()]
	if !exists {
		return nil, appErrors.ErrEventNotFound
	}
	return event, nil
}

// List retrieves all events in insertion order
func (r *EventRepository) List(ctx context.Context) ([]*entities.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Event, 0, len(r.order))
	for _, key := range r.order {
		if event, exists := r.events[key]; exists {
			out = append(out, event)
		}
	}
	return out, nil
}

// Delete removes an event
func (r *EventRepository) Delete(ctx context.Context, id valueobjects.ContentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := id.String()
	if _, exists := r.events[key]; !exists {
		return appErrors.ErrEventNotFound
	}
	delete(r.events, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// compile-time interface checks
var (
	_ ports.ContentRepository  = (*ContentRepository)(nil)
	_ ports.CommentRepository  = (*CommentRepository)(nil)
	_ ports.ReactionRepository = (*ReactionRepository)(nil)
	_ ports.EventRepository    = (*EventRepository)(nil)
)
