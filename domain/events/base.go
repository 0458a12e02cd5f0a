package events

import (
	"time"

	"insight-backend/domain/core/valueobjects"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// Content events

// ContentPublished is raised when an item becomes publicly visible
type ContentPublished struct {
	BaseEvent
	ItemID valueobjects.ContentID `json:"item_id"`
	Kind   string                 `json:"kind"`
	Title  string                 `json:"title"`
}

// NewContentPublished creates a ContentPublished event
func NewContentPublished(itemID valueobjects.ContentID, kind, title string, timestamp time.Time) ContentPublished {
	return ContentPublished{
		BaseEvent: BaseEvent{
			AggregateID: itemID.String(),
			EventType:   "content.published",
			Timestamp:   timestamp,
			Version:     1,
		},
		ItemID: itemID,
		Kind:   kind,
		Title:  title,
	}
}

// ContentArchived is raised when an item is taken off the site
type ContentArchived struct {
	BaseEvent
	ItemID valueobjects.ContentID `json:"item_id"`
}

// NewContentArchived creates a ContentArchived event
func NewContentArchived(itemID valueobjects.ContentID, timestamp time.Time) ContentArchived {
	return ContentArchived{
		BaseEvent: BaseEvent{
			AggregateID: itemID.String(),
			EventType:   "content.archived",
			Timestamp:   timestamp,
			Version:     1,
		},
		ItemID: itemID,
	}
}

// Interaction events

// CommentAdded is raised when a comment is attached to an item
type CommentAdded struct {
	BaseEvent
	CommentID valueobjects.ContentID `json:"comment_id"`
	ParentID  string                 `json:"parent_id"`
	AuthorID  string                 `json:"author_id"`
}

// NewCommentAdded creates a CommentAdded event
func NewCommentAdded(commentID valueobjects.ContentID, parentID, authorID string, timestamp time.Time) CommentAdded {
	return CommentAdded{
		BaseEvent: BaseEvent{
			AggregateID: commentID.String(),
			EventType:   "interaction.comment_added",
			Timestamp:   timestamp,
			Version:     1,
		},
		CommentID: commentID,
		ParentID:  parentID,
		AuthorID:  authorID,
	}
}

// CommentDeleted is raised when a comment is removed
type CommentDeleted struct {
	BaseEvent
	CommentID valueobjects.ContentID `json:"comment_id"`
	ParentID  string                 `json:"parent_id"`
}

// NewCommentDeleted creates a CommentDeleted event
func NewCommentDeleted(commentID valueobjects.ContentID, parentID string, timestamp time.Time) CommentDeleted {
	return CommentDeleted{
		BaseEvent: BaseEvent{
			AggregateID: commentID.String(),
			EventType:   "interaction.comment_deleted",
			Timestamp:   timestamp,
			Version:     1,
		},
		CommentID: commentID,
		ParentID:  parentID,
	}
}

// ReactionToggled is raised when a user's reaction on an item changes.
// Action is one of "added", "replaced" or "removed".
type ReactionToggled struct {
	BaseEvent
	ParentID     string `json:"parent_id"`
	UserID       string `json:"user_id"`
	ReactionType string `json:"reaction_type"`
	Action       string `json:"action"`
}

// NewReactionToggled creates a ReactionToggled event
func NewReactionToggled(parentID, userID, reactionType, action string, timestamp time.Time) ReactionToggled {
	return ReactionToggled{
		BaseEvent: BaseEvent{
			AggregateID: parentID,
			EventType:   "interaction.reaction_toggled",
			Timestamp:   timestamp,
			Version:     1,
		},
		ParentID:     parentID,
		UserID:       userID,
		ReactionType: reactionType,
		Action:       action,
	}
}

// Event access events

// EventVisibilityChanged is raised when an administrator edits the policy
type EventVisibilityChanged struct {
	BaseEvent
	EventID       valueobjects.ContentID `json:"event_id"`
	Visibility    string                 `json:"visibility"`
	AllowedEmails int                    `json:"allowed_emails"`
}

// NewEventVisibilityChanged creates an EventVisibilityChanged event
func NewEventVisibilityChanged(eventID valueobjects.ContentID, visibility string, allowedEmails int, timestamp time.Time) EventVisibilityChanged {
	return EventVisibilityChanged{
		BaseEvent: BaseEvent{
			AggregateID: eventID.String(),
			EventType:   "event.visibility_changed",
			Timestamp:   timestamp,
			Version:     1,
		},
		EventID:       eventID,
		Visibility:    visibility,
		AllowedEmails: allowedEmails,
	}
}

// GuestVerified is raised when a guest email passes the allow-list check
type GuestVerified struct {
	BaseEvent
	EventID string `json:"event_id"`
	Email   string `json:"email"`
}

// NewGuestVerified creates a GuestVerified event
func NewGuestVerified(eventID, email string, timestamp time.Time) GuestVerified {
	return GuestVerified{
		BaseEvent: BaseEvent{
			AggregateID: eventID,
			EventType:   "event.guest_verified",
			Timestamp:   timestamp,
			Version:     1,
		},
		EventID: eventID,
		Email:   email,
	}
}
