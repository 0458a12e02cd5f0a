// Package access decides whether a viewer may see an event's detail
// content. Access is evaluated over already-fetched data: the gate is a
// pure predicate, holds no state between calls and never fails. The only
// legal transition within a viewing session is Denied to Granted (a guest
// verifies successfully); content once shown is never withdrawn.
package access

import (
	"insight-backend/domain/core/valueobjects"
)

// Visibility is an event's visibility policy value. Records predating the
// visibility field carry VisibilityUnset and are treated as public.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
	VisibilityUnset   Visibility = ""
)

// VisibilityPolicy is the access-relevant slice of an event record.
// AllowedEmails may be stored in any case; comparisons are normalized.
type VisibilityPolicy struct {
	Visibility    Visibility
	AllowedEmails []string
}

// IsPrivate reports whether the policy restricts viewing
func (p VisibilityPolicy) IsPrivate() bool {
	return p.Visibility == VisibilityPrivate
}

// Allows reports whether email is on the allow-list, case-insensitively
func (p VisibilityPolicy) Allows(email string) bool {
	normalized := valueobjects.NormalizeEmail(email)
	if normalized == "" {
		return false
	}
	for _, allowed := range p.AllowedEmails {
		if valueobjects.NormalizeEmail(allowed) == normalized {
			return true
		}
	}
	return false
}

// Identity is the verified current user supplied by the identity
// provider, or a nil pointer when nobody is signed in.
type Identity struct {
	Email           string
	IsAuthenticated bool
}

// DenialReason labels why a decision was not granted
type DenialReason string

const (
	// ReasonPrivateEvent: the event is private and the viewer holds no
	// allow-listed authenticated identity.
	ReasonPrivateEvent DenialReason = "PRIVATE_EVENT"

	// ReasonNotOnGuestList: a well-formed guest email missed the allow-list.
	ReasonNotOnGuestList DenialReason = "NOT_ON_GUEST_LIST"

	// ReasonEmptyEmail: the guest submitted a blank address. This is a
	// validation failure, reported before the allow-list is consulted so
	// blank input is distinguishable from a real miss.
	ReasonEmptyEmail DenialReason = "EMPTY_EMAIL"
)

// Decision is the transient outcome of an access check. It is a value,
// recomputed per page view or guest attempt, never persisted.
type Decision struct {
	Granted bool
	Reason  DenialReason
}

// IsValidationFailure reports whether the denial came from bad input
// rather than a genuine allow-list miss.
func (d Decision) IsValidationFailure() bool {
	return !d.Granted && d.Reason == ReasonEmptyEmail
}

func granted() Decision {
	return Decision{Granted: true}
}

func denied(reason DenialReason) Decision {
	return Decision{Granted: false, Reason: reason}
}

// Evaluate authorizes viewing of an event against its policy. Non-private
// visibility, including unset, grants unconditionally. Private events
// grant only to an authenticated identity whose email is allow-listed;
// a missing identity is always denied.
func Evaluate(policy VisibilityPolicy, identity *Identity) Decision {
	if !policy.IsPrivate() {
		return granted()
	}
	if identity == nil || !identity.IsAuthenticated {
		return denied(ReasonPrivateEvent)
	}
	if policy.Allows(identity.Email) {
		return granted()
	}
	return denied(ReasonPrivateEvent)
}

// VerifyGuest performs the one-shot unauthenticated allow-list check.
// The submitted address is normalized before comparison. Blank input is
// rejected before anything else. Non-private events grant without
// consulting the allow-list. Attempts are not counted or throttled here; callers may
// layer throttling outside.
func VerifyGuest(policy VisibilityPolicy, submittedEmail string) Decision {
	normalized := valueobjects.NormalizeEmail(submittedEmail)
	if normalized == "" {
		return denied(ReasonEmptyEmail)
	}
	if !policy.IsPrivate() {
		return granted()
	}
	if policy.Allows(normalized) {
		return granted()
	}
	return denied(ReasonNotOnGuestList)
}
