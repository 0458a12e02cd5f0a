package config

import "time"

// DomainConfig holds all configurable business rules and constraints
type DomainConfig struct {
	// Dashboard analytics
	WindowDays int
	TopN       int

	// Content constraints
	MaxTitleLength   int
	MinTitleLength   int
	MaxBodyLength    int
	MaxCommentLength int

	// Interaction constraints
	ReactionTypes       []string
	MaxCommentsPerFetch int

	// Event constraints
	MaxAllowedEmails int

	// Time constraints
	SessionTimeout    time.Duration
	ConnectionTimeout time.Duration

	// Validation settings
	AllowEmptyCommentAuthor bool

	// Feature flags
	EnableGuestVerification bool
	EnableReactionToggling  bool
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		// Dashboard analytics
		WindowDays: 7,
		TopN:       5,

		// Content constraints
		MaxTitleLength:   200,
		MinTitleLength:   1,
		MaxBodyLength:    50000,
		MaxCommentLength: 2000,

		// Interaction constraints
		ReactionTypes:       []string{"like", "dislike"},
		MaxCommentsPerFetch: 1000,

		// Event constraints
		MaxAllowedEmails: 500,

		// Time constraints
		SessionTimeout:    24 * time.Hour,
		ConnectionTimeout: 30 * time.Second,

		// Validation settings
		AllowEmptyCommentAuthor: false,

		// Feature flags
		EnableGuestVerification: true,
		EnableReactionToggling:  true,
	}
}

// ProductionDomainConfig returns production-specific configuration
func ProductionDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	// More restrictive limits for production
	config.MaxBodyLength = 20000
	config.MaxCommentLength = 1000
	config.MaxCommentsPerFetch = 500

	return config
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	// More permissive for development
	config.MaxBodyLength = 100000
	config.AllowEmptyCommentAuthor = true

	return config
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "production":
		return ProductionDomainConfig()
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}

// IsReactionType reports whether t is one of the configured reaction types
func (c *DomainConfig) IsReactionType(t string) bool {
	for _, rt := range c.ReactionTypes {
		if rt == t {
			return true
		}
	}
	return false
}
