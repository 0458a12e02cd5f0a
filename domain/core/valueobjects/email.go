package valueobjects

import (
	"errors"
	"strings"
)

// Email is a value object for a normalized email address. Normalization
// (trim, lower-case) happens at construction so comparisons anywhere in
// the domain are case-insensitive by construction.
type Email struct {
	value string
}

// NewEmail creates a normalized email with minimal shape validation
func NewEmail(raw string) (Email, error) {
	normalized := NormalizeEmail(raw)
	if normalized == "" {
		return Email{}, errors.New("email cannot be empty")
	}
	at := strings.Index(normalized, "@")
	if at <= 0 || at == len(normalized)-1 {
		return Email{}, errors.New("email must contain a local part and a domain")
	}
	return Email{value: normalized}, nil
}

// NormalizeEmail trims surrounding whitespace and lower-cases an address.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// String returns the normalized address
func (e Email) String() string {
	return e.value
}

// Equals checks if two emails are equal
func (e Email) Equals(other Email) bool {
	return e.value == other.value
}

// EqualsRaw compares against an unnormalized address
func (e Email) EqualsRaw(raw string) bool {
	return e.value == NormalizeEmail(raw)
}

// IsZero checks if the Email is the zero value
func (e Email) IsZero() bool {
	return e.value == ""
}
