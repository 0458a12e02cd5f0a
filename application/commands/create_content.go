package commands

import (
	"insight-backend/pkg/utils"
)

// CreateContentCommand represents the command to create a new content item
type CreateContentCommand struct {
	ContentID string `json:"content_id" validate:"omitempty,uuid"`
	AuthorID  string `json:"author_id" validate:"required"`
	Kind      string `json:"kind" validate:"required,oneof=article paper"`
	Title     string `json:"title" validate:"required,min=1,max=200"`
	Body      string `json:"body" validate:"max=50000"`
	Format    string `json:"format" validate:"omitempty,oneof=text markdown html"`
	Publish   bool   `json:"publish"`
}

// Validate validates the command
func (c CreateContentCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// UpdateContentCommand represents the command to update an existing content item
type UpdateContentCommand struct {
	ContentID string `json:"content_id" validate:"required,uuid"`
	UserID    string `json:"user_id" validate:"required"`
	Title     string `json:"title" validate:"required,min=1,max=200"`
	Body      string `json:"body" validate:"max=50000"`
	Format    string `json:"format" validate:"omitempty,oneof=text markdown html"`
}

// Validate validates the command
func (c UpdateContentCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// ArchiveContentCommand represents the command to archive a content item
type ArchiveContentCommand struct {
	ContentID string `json:"content_id" validate:"required,uuid"`
	UserID    string `json:"user_id" validate:"required"`
}

// Validate validates the command
func (c ArchiveContentCommand) Validate() error {
	return utils.ValidateStruct(c)
}
