package entities

import (
	"time"

	"insight-backend/domain/core/valueobjects"
	"insight-backend/domain/events"
	pkgerrors "insight-backend/pkg/errors"
)

// ContentKind distinguishes the two published unit types
type ContentKind string

const (
	KindArticle ContentKind = "article"
	KindPaper   ContentKind = "paper"
)

// ContentStatus represents the editorial state of an item
type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusPublished ContentStatus = "published"
	StatusArchived  ContentStatus = "archived"
)

// ContentItem is the entity for a published unit (article or paper).
// The analytics layer treats items as immutable; editorial mutations
// happen here, behind the entity's methods.
type ContentItem struct {
	id        valueobjects.ContentID
	kind      ContentKind
	content   valueobjects.ItemContent
	authorID  string
	status    ContentStatus
	createdAt time.Time
	updatedAt time.Time
	version   int

	// Domain events that occurred during this aggregate's lifetime
	events []events.DomainEvent
}

// NewContentItem creates a new draft item with business rule validation
func NewContentItem(kind ContentKind, content valueobjects.ItemContent, authorID string) (*ContentItem, error) {
	if !isValidKind(kind) {
		return nil, pkgerrors.NewValidationError("kind must be article or paper")
	}
	if content.IsEmpty() {
		return nil, pkgerrors.NewValidationError("content cannot be empty")
	}
	if authorID == "" {
		return nil, pkgerrors.NewValidationError("authorID cannot be empty")
	}

	now := time.Now()
	return &ContentItem{
		id:        valueobjects.NewContentID(),
		kind:      kind,
		content:   content,
		authorID:  authorID,
		status:    StatusDraft,
		createdAt: now,
		updatedAt: now,
		version:   1,
		events:    []events.DomainEvent{},
	}, nil
}

// NewContentItemWithID creates a new draft item under a caller-supplied
// identifier. Callers that respond before the write settles pre-generate
// the ID.
func NewContentItemWithID(id valueobjects.ContentID, kind ContentKind, content valueobjects.ItemContent, authorID string) (*ContentItem, error) {
	item, err := NewContentItem(kind, content, authorID)
	if err != nil {
		return nil, err
	}
	if !id.IsZero() {
		item.id = id
	}
	return item, nil
}

// ReconstructContentItem reconstructs an item from repository data with
// preserved timestamps
func ReconstructContentItem(
	id valueobjects.ContentID,
	kind ContentKind,
	content valueobjects.ItemContent,
	authorID string,
	status ContentStatus,
	createdAt, updatedAt time.Time,
	version int,
) (*ContentItem, error) {
	if !isValidKind(kind) {
		return nil, pkgerrors.NewValidationError("kind must be article or paper")
	}
	if content.IsEmpty() {
		return nil, pkgerrors.NewValidationError("content cannot be empty")
	}

	return &ContentItem{
		id:        id,
		kind:      kind,
		content:   content,
		authorID:  authorID,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
		version:   version,
		events:    []events.DomainEvent{},
	}, nil
}

// ID returns the item's unique identifier
func (c *ContentItem) ID() valueobjects.ContentID {
	return c.id
}

// Kind returns the item's kind
func (c *ContentItem) Kind() ContentKind {
	return c.kind
}

// Content returns the item's editorial content
func (c *ContentItem) Content() valueobjects.ItemContent {
	return c.content
}

// AuthorID returns the author's ID
func (c *ContentItem) AuthorID() string {
	return c.authorID
}

// Status returns the item's editorial status
func (c *ContentItem) Status() ContentStatus {
	return c.status
}

// Version returns the item's version for optimistic locking
func (c *ContentItem) Version() int {
	return c.version
}

// CreatedAt returns when the item was created
func (c *ContentItem) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt returns when the item was last updated
func (c *ContentItem) UpdatedAt() time.Time {
	return c.updatedAt
}

// UpdateContent replaces the editorial content with validation
func (c *ContentItem) UpdateContent(content valueobjects.ItemContent) error {
	if c.status == StatusArchived {
		return pkgerrors.NewValidationError("cannot update archived content")
	}
	if content.IsEmpty() {
		return pkgerrors.NewValidationError("content cannot be empty")
	}
	if content.Equals(c.content) {
		return nil // No change needed
	}

	c.content = content
	c.updatedAt = time.Now()
	c.version++
	return nil
}

// Publish changes the item status to published
func (c *ContentItem) Publish() error {
	if c.status == StatusArchived {
		return pkgerrors.NewValidationError("cannot publish archived content")
	}
	if c.status == StatusPublished {
		return nil // Already published
	}

	c.status = StatusPublished
	c.updatedAt = time.Now()
	c.version++

	c.addEvent(events.NewContentPublished(c.id, string(c.kind), c.content.Title(), c.updatedAt))
	return nil
}

// Archive moves the item to archived status. Interactions referencing an
// archived item become orphans; the analytics layer tolerates them.
func (c *ContentItem) Archive() error {
	if c.status == StatusArchived {
		return nil // Already archived
	}

	c.status = StatusArchived
	c.updatedAt = time.Now()
	c.version++

	c.addEvent(events.NewContentArchived(c.id, c.updatedAt))
	return nil
}

// GetUncommittedEvents returns all uncommitted domain events
func (c *ContentItem) GetUncommittedEvents() []events.DomainEvent {
	return c.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (c *ContentItem) MarkEventsAsCommitted() {
	c.events = []events.DomainEvent{}
}

func (c *ContentItem) addEvent(event events.DomainEvent) {
	c.events = append(c.events, event)
}

func isValidKind(kind ContentKind) bool {
	return kind == KindArticle || kind == KindPaper
}
