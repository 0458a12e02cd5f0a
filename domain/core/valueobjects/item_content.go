package valueobjects

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"insight-backend/domain/config"
	pkgerrors "insight-backend/pkg/errors"
)

// ContentFormat represents the format of an item body
type ContentFormat string

const (
	FormatPlainText ContentFormat = "text"
	FormatMarkdown  ContentFormat = "markdown"
	FormatHTML      ContentFormat = "html"
)

// ItemContent is a value object for the editorial content of an item
type ItemContent struct {
	title  string
	body   string
	format ContentFormat
}

// NewItemContent creates content with validation using default configuration
func NewItemContent(title, body string, format ContentFormat) (ItemContent, error) {
	return NewItemContentWithConfig(title, body, format, config.DefaultDomainConfig())
}

// NewItemContentWithConfig creates content with validation and configuration
func NewItemContentWithConfig(title, body string, format ContentFormat, cfg *config.DomainConfig) (ItemContent, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)

	if title == "" {
		return ItemContent{}, pkgerrors.NewValidationError("title cannot be empty")
	}

	titleLength := utf8.RuneCountInString(title)
	if titleLength > cfg.MaxTitleLength {
		return ItemContent{}, fmt.Errorf("title exceeds maximum length of %d characters", cfg.MaxTitleLength)
	}

	if utf8.RuneCountInString(body) > cfg.MaxBodyLength {
		return ItemContent{}, fmt.Errorf("content body exceeds maximum length of %d characters", cfg.MaxBodyLength)
	}

	if !isValidFormat(format) {
		return ItemContent{}, pkgerrors.NewValidationError("invalid content format")
	}

	return ItemContent{
		title:  title,
		body:   body,
		format: format,
	}, nil
}

// Title returns the content title
func (c ItemContent) Title() string {
	return c.title
}

// Body returns the content body
func (c ItemContent) Body() string {
	return c.body
}

// Format returns the content format
func (c ItemContent) Format() ContentFormat {
	return c.format
}

// IsEmpty checks if content is empty
func (c ItemContent) IsEmpty() bool {
	return c.title == "" && c.body == ""
}

// Equals checks if two contents are equal
func (c ItemContent) Equals(other ItemContent) bool {
	return c.title == other.title &&
		c.body == other.body &&
		c.format == other.format
}

// Summary returns a truncated summary of the content
func (c ItemContent) Summary(maxLength int) string {
	if maxLength <= 0 {
		return ""
	}

	combined := c.title
	if c.body != "" {
		combined += ": " + c.body
	}

	if utf8.RuneCountInString(combined) <= maxLength {
		return combined
	}

	runes := []rune(combined)
	return string(runes[:maxLength-3]) + "..."
}

func isValidFormat(format ContentFormat) bool {
	switch format {
	case FormatPlainText, FormatMarkdown, FormatHTML:
		return true
	default:
		return false
	}
}
