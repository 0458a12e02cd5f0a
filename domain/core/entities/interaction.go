package entities

import (
	"time"

	"insight-backend/domain/config"
	"insight-backend/domain/core/valueobjects"
	pkgerrors "insight-backend/pkg/errors"
)

// Comment is an interaction entity tied to a ContentItem via parentID.
// The correlation is a plain foreign key with no referential-integrity
// enforcement; a comment may outlive its parent.
type Comment struct {
	id        valueobjects.ContentID
	parentID  string
	authorID  string
	body      string
	createdAt time.Time
}

// NewComment creates a comment with default configuration
func NewComment(parentID, authorID, body string) (*Comment, error) {
	return NewCommentWithConfig(parentID, authorID, body, config.DefaultDomainConfig())
}

// NewCommentWithConfig creates a comment with business rule validation
func NewCommentWithConfig(parentID, authorID, body string, cfg *config.DomainConfig) (*Comment, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if parentID == "" {
		return nil, pkgerrors.NewValidationError("parentID cannot be empty")
	}
	if authorID == "" && !cfg.AllowEmptyCommentAuthor {
		return nil, pkgerrors.NewValidationError("authorID cannot be empty")
	}
	if body == "" {
		return nil, pkgerrors.NewValidationError("comment body cannot be empty")
	}
	if len(body) > cfg.MaxCommentLength {
		return nil, pkgerrors.NewValidationError("comment body exceeds maximum length")
	}

	return &Comment{
		id:        valueobjects.NewContentID(),
		parentID:  parentID,
		authorID:  authorID,
		body:      body,
		createdAt: time.Now(),
	}, nil
}

// NewCommentWithID creates a comment under a caller-supplied identifier
func NewCommentWithID(id valueobjects.ContentID, parentID, authorID, body string, cfg *config.DomainConfig) (*Comment, error) {
	comment, err := NewCommentWithConfig(parentID, authorID, body, cfg)
	if err != nil {
		return nil, err
	}
	if !id.IsZero() {
		comment.id = id
	}
	return comment, nil
}

// ReconstructComment reconstructs a comment from repository data
func ReconstructComment(id valueobjects.ContentID, parentID, authorID, body string, createdAt time.Time) *Comment {
	return &Comment{
		id:        id,
		parentID:  parentID,
		authorID:  authorID,
		body:      body,
		createdAt: createdAt,
	}
}

// ID returns the comment's unique identifier
func (c *Comment) ID() valueobjects.ContentID { return c.id }

// ParentID returns the ID of the item this comment belongs to
func (c *Comment) ParentID() string { return c.parentID }

// AuthorID returns the commenting user's ID
func (c *Comment) AuthorID() string { return c.authorID }

// Body returns the comment text
func (c *Comment) Body() string { return c.body }

// CreatedAt returns when the comment was written
func (c *Comment) CreatedAt() time.Time { return c.createdAt }

// Reaction is an interaction entity recording one user's reaction to one
// item. At most one reaction per (parentID, userID) pair is current;
// the toggle command enforces the invariant at the application layer.
type Reaction struct {
	id        valueobjects.ContentID
	parentID  string
	userID    string
	kind      string
	createdAt time.Time
}

// NewReaction creates a reaction with default configuration
func NewReaction(parentID, userID, kind string) (*Reaction, error) {
	return NewReactionWithConfig(parentID, userID, kind, config.DefaultDomainConfig())
}

// NewReactionWithConfig creates a reaction with business rule validation
func NewReactionWithConfig(parentID, userID, kind string, cfg *config.DomainConfig) (*Reaction, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if parentID == "" {
		return nil, pkgerrors.NewValidationError("parentID cannot be empty")
	}
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if !cfg.IsReactionType(kind) {
		return nil, pkgerrors.NewValidationError("unknown reaction type")
	}

	return &Reaction{
		id:        valueobjects.NewContentID(),
		parentID:  parentID,
		userID:    userID,
		kind:      kind,
		createdAt: time.Now(),
	}, nil
}

// NewReactionWithID creates a reaction under a caller-supplied identifier.
// Reusing an existing reaction's ID turns a type change into a single
// overwriting write.
func NewReactionWithID(id valueobjects.ContentID, parentID, userID, kind string, cfg *config.DomainConfig) (*Reaction, error) {
	reaction, err := NewReactionWithConfig(parentID, userID, kind, cfg)
	if err != nil {
		return nil, err
	}
	if !id.IsZero() {
		reaction.id = id
	}
	return reaction, nil
}

// ReconstructReaction reconstructs a reaction from repository data
func ReconstructReaction(id valueobjects.ContentID, parentID, userID, kind string, createdAt time.Time) *Reaction {
	return &Reaction{
		id:        id,
		parentID:  parentID,
		userID:    userID,
		kind:      kind,
		createdAt: createdAt,
	}
}

// ID returns the reaction's unique identifier
func (r *Reaction) ID() valueobjects.ContentID { return r.id }

// ParentID returns the ID of the item this reaction belongs to
func (r *Reaction) ParentID() string { return r.parentID }

// UserID returns the reacting user's ID
func (r *Reaction) UserID() string { return r.userID }

// Kind returns the reaction type
func (r *Reaction) Kind() string { return r.kind }

// CreatedAt returns when the reaction was recorded
func (r *Reaction) CreatedAt() time.Time { return r.createdAt }

// IsSame reports whether the reaction carries the given type
func (r *Reaction) IsSame(kind string) bool { return r.kind == kind }
