package commands

import (
	"insight-backend/pkg/utils"
)

// ToggleReactionCommand represents the command to toggle a user's reaction on a
// content item. A repeated reaction of the same type removes it; a reaction of
// a different type replaces the existing one.
type ToggleReactionCommand struct {
	ParentID string `json:"parent_id" validate:"required,uuid"`
	UserID   string `json:"user_id" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=like dislike"`
}

// Validate validates the command
func (c ToggleReactionCommand) Validate() error {
	return utils.ValidateStruct(c)
}
