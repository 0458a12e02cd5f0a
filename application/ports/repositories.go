package ports

import (
	"context"
	"time"

	"insight-backend/domain/core/entities"
	"insight-backend/domain/core/valueobjects"
	"insight-backend/domain/events"
)

// ContentRepository defines the interface for content item persistence.
// This is a port in hexagonal architecture - the domain doesn't know
// about the implementation. Any substitute backend must honor the
// list / get / query-by-equality / insert / update / delete shapes.
type ContentRepository interface {
	// Save persists an item (create or update)
	Save(ctx context.Context, item *entities.ContentItem) error

	// GetByID retrieves an item by its ID
	GetByID(ctx context.Context, id valueobjects.ContentID) (*entities.ContentItem, error)

	// List retrieves all items, in stable storage order
	List(ctx context.Context) ([]*entities.ContentItem, error)

	// ListByKind retrieves all items of one kind
	ListByKind(ctx context.Context, kind entities.ContentKind) ([]*entities.ContentItem, error)

	// Delete removes an item
	Delete(ctx context.Context, id valueobjects.ContentID) error
}

// CommentRepository defines the interface for comment persistence
type CommentRepository interface {
	// Save persists a comment
	Save(ctx context.Context, comment *entities.Comment) error

	// GetByID retrieves a comment by its ID
	GetByID(ctx context.Context, id valueobjects.ContentID) (*entities.Comment, error)

	// List retrieves all comments
	List(ctx context.Context) ([]*entities.Comment, error)

	// ListByParentID retrieves the comments correlated to one item
	ListByParentID(ctx context.Context, parentID string) ([]*entities.Comment, error)

	// Delete removes a comment
	Delete(ctx context.Context, id valueobjects.ContentID) error
}

// ReactionRepository defines the interface for reaction persistence
type ReactionRepository interface {
	// Save persists a reaction
	Save(ctx context.Context, reaction *entities.Reaction) error

	// List retrieves all reactions
	List(ctx context.Context) ([]*entities.Reaction, error)

	// ListByParentID retrieves the reactions correlated to one item
	ListByParentID(ctx context.Context, parentID string) ([]*entities.Reaction, error)

	// GetByParentAndUser retrieves a user's current reaction on an item,
	// or nil when none exists. Backs the one-reaction-per-pair invariant.
	GetByParentAndUser(ctx context.Context, parentID, userID string) (*entities.Reaction, error)

	// Delete removes a reaction
	Delete(ctx context.Context, id valueobjects.ContentID) error
}

// EventRepository defines the interface for event persistence
type EventRepository interface {
	// Save persists an event (create or update)
	Save(ctx context.Context, event *entities.Event) error

	// GetByID retrieves an event by its ID
	GetByID(ctx context.Context, id valueobjects.ContentID) (*entities.Event, error)

	// List retrieves all events
	List(ctx context.Context) ([]*entities.Event, error)

	// Delete removes an event
	Delete(ctx context.Context, id valueobjects.ContentID) error
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// Cache defines the interface for caching
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set stores a value in cache with TTL in seconds
	Set(ctx context.Context, key string, value interface{}, ttl int) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error

	// Clear removes all values from cache
	Clear(ctx context.Context) error
}

// ResourceLock is a held lock that must be released by its owner
type ResourceLock interface {
	// Release gives the lock back
	Release(ctx context.Context) error
}

// ResourceLocker serializes writers contending for the same resource
type ResourceLocker interface {
	// AcquireLock acquires an exclusive lock on the named resource. It
	// fails if another owner currently holds the lock.
	AcquireLock(ctx context.Context, resourceName, ownerID string, lockDuration time.Duration) (ResourceLock, error)
}
