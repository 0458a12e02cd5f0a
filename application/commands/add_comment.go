package commands

import (
	"insight-backend/pkg/utils"
)

// AddCommentCommand represents the command to attach a comment to a content item
type AddCommentCommand struct {
	CommentID string `json:"comment_id" validate:"omitempty,uuid"`
	ParentID  string `json:"parent_id" validate:"required,uuid"`
	AuthorID  string `json:"author_id" validate:"required"`
	Body      string `json:"body" validate:"required,min=1,max=2000"`
}

// Validate validates the command
func (c AddCommentCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// DeleteCommentCommand represents the command to remove a comment
type DeleteCommentCommand struct {
	CommentID string `json:"comment_id" validate:"required,uuid"`
	UserID    string `json:"user_id" validate:"required"`
}

// Validate validates the command
func (c DeleteCommentCommand) Validate() error {
	return utils.ValidateStruct(c)
}
