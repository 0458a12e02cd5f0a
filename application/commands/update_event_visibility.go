package commands

import (
	"insight-backend/pkg/utils"
)

// CreateEventCommand represents the command to create a new event
type CreateEventCommand struct {
	EventID      string   `json:"event_id" validate:"omitempty,uuid"`
	Title        string   `json:"title" validate:"required,min=1,max=200"`
	Description  string   `json:"description" validate:"max=50000"`
	Location     string   `json:"location" validate:"max=500"`
	StartDate    string   `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string   `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	StaticStatus string   `json:"static_status" validate:"omitempty,oneof=upcoming ongoing closed"`
	Visibility   string   `json:"visibility" validate:"omitempty,oneof=public private"`
	AllowedEmails []string `json:"allowed_emails" validate:"omitempty,dive,email"`
}

// Validate validates the command
func (c CreateEventCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// UpdateEventVisibilityCommand represents the command to change an event's
// visibility policy and guest allow-list
type UpdateEventVisibilityCommand struct {
	EventID       string   `json:"event_id" validate:"required,uuid"`
	Visibility    string   `json:"visibility" validate:"required,oneof=public private"`
	AllowedEmails []string `json:"allowed_emails" validate:"omitempty,dive,email"`
}

// Validate validates the command
func (c UpdateEventVisibilityCommand) Validate() error {
	return utils.ValidateStruct(c)
}
