package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

// ContentID is a value object representing a unique record identifier.
// It is shared by content items, interactions and events; value objects
// are immutable and have no identity beyond their value.
type ContentID struct {
	value string
}

// NewContentID creates a new random ContentID
func NewContentID() ContentID {
	return ContentID{value: uuid.New().String()}
}

// NewContentIDFromString creates a ContentID from an existing string
func NewContentIDFromString(id string) (ContentID, error) {
	if id == "" {
		return ContentID{}, errors.New("content ID cannot be empty")
	}
	if !isValidUUID(id) {
		return ContentID{}, errors.New("content ID must be a valid UUID")
	}
	return ContentID{value: id}, nil
}

// String returns the string representation of the ContentID
func (id ContentID) String() string {
	return id.value
}

// Equals checks if two ContentIDs are equal
func (id ContentID) Equals(other ContentID) bool {
	return id.value == other.value
}

// IsZero checks if the ContentID is the zero value
func (id ContentID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id ContentID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *ContentID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("ContentID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}

// isValidUUID validates if a string is a valid UUID
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
