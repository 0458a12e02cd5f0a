package validators

import (
	"fmt"
	"regexp"
	"strings"

	"insight-backend/domain/core/valueobjects"
	"insight-backend/pkg/errors"
)

// InteractionValidator validates comment and reaction domain rules
type InteractionValidator struct {
	bodyMinLength  int
	bodyMaxLength  int
	reactionTypes  []string
	forbiddenWords []string
}

// NewInteractionValidator creates a validator with default rules
func NewInteractionValidator() *InteractionValidator {
	return &InteractionValidator{
		bodyMinLength:  1,
		bodyMaxLength:  2000,
		reactionTypes:  []string{"like", "dislike"},
		forbiddenWords: []string{}, // Can be configured with inappropriate content filters
	}
}

// ValidateCommentBody validates a comment body
func (v *InteractionValidator) ValidateCommentBody(body string) error {
	body = strings.TrimSpace(body)

	if len(body) < v.bodyMinLength {
		return errors.ErrCommentBodyRequired
	}

	if len(body) > v.bodyMaxLength {
		return errors.ErrCommentBodyTooLong.
			WithDetail("actual_length", len(body)).
			WithDetail("max_length", v.bodyMaxLength)
	}

	// Check for potentially malicious content
	if strings.Contains(body, "<script>") || strings.Contains(body, "javascript:") {
		return errors.NewDomainError(
			errors.DomainValidationError,
			"MALICIOUS_CONTENT",
			"Comment contains potentially malicious code",
		).WithDetail("field", "body")
	}

	if v.containsForbiddenWords(body) {
		return errors.NewDomainError(
			errors.DomainValidationError,
			"INAPPROPRIATE_CONTENT",
			"Comment contains inappropriate material",
		).WithDetail("field", "body")
	}

	return nil
}

// ValidateReactionType validates a reaction type against the closed set
func (v *InteractionValidator) ValidateReactionType(kind string) error {
	for _, valid := range v.reactionTypes {
		if kind == valid {
			return nil
		}
	}
	return errors.ErrUnknownReactionType.
		WithDetail("field", "type").
		WithDetail("value", kind)
}

// containsForbiddenWords checks if text contains forbidden words
func (v *InteractionValidator) containsForbiddenWords(text string) bool {
	lowerText := strings.ToLower(text)
	for _, word := range v.forbiddenWords {
		if strings.Contains(lowerText, strings.ToLower(word)) {
			return true
		}
	}
	return false
}

// EventValidator validates event-related domain rules
type EventValidator struct {
	titleMinLength   int
	titleMaxLength   int
	descMaxLength    int
	maxAllowedEmails int
	datePattern      *regexp.Regexp
}

// NewEventValidator creates a new event validator
func NewEventValidator() *EventValidator {
	return &EventValidator{
		titleMinLength:   1,
		titleMaxLength:   255,
		descMaxLength:    5000,
		maxAllowedEmails: 500,
		datePattern:      regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
	}
}

// ValidateTitle validates the event title
func (v *EventValidator) ValidateTitle(title string) error {
	title = strings.TrimSpace(title)

	if len(title) < v.titleMinLength {
		return errors.NewDomainError(
			errors.DomainValidationError,
			"EVENT_TITLE_REQUIRED",
			"Event title is required",
		)
	}

	if len(title) > v.titleMaxLength {
		return errors.NewDomainError(
			errors.DomainValidationError,
			"EVENT_TITLE_TOO_LONG",
			"Event title exceeds maximum length",
		).WithDetail("max_length", v.titleMaxLength)
	}

	return nil
}

// ValidateDate validates an optional date-only field
func (v *EventValidator) ValidateDate(field, value string) error {
	if value == "" {
		return nil // Dates are optional
	}

	if !v.datePattern.MatchString(value) {
		return errors.NewDomainError(
			errors.DomainValidationError,
			"INVALID_DATE_FORMAT",
			fmt.Sprintf("%s must be a YYYY-MM-DD calendar date", field),
		).WithDetail("field", field).WithDetail("value", value)
	}

	return nil
}

// ValidateAllowList validates a guest allow-list
func (v *EventValidator) ValidateAllowList(emails []string) error {
	if len(emails) > v.maxAllowedEmails {
		return errors.NewDomainError(
			errors.DomainValidationError,
			"ALLOW_LIST_TOO_LARGE",
			fmt.Sprintf("Cannot allow more than %d emails", v.maxAllowedEmails),
		).WithDetail("field", "allowedEmails").WithDetail("count", len(emails))
	}

	validationErrors := errors.NewValidationErrors()
	for _, raw := range emails {
		if _, err := valueobjects.NewEmail(raw); err != nil {
			validationErrors.Add("allowedEmails", fmt.Sprintf("invalid email: %s", raw))
		}
	}

	if validationErrors.HasErrors() {
		return validationErrors
	}
	return nil
}
