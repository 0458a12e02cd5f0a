package queries

import "errors"

// GetEventAccessQuery represents a query evaluating whether a viewer may
// see an event, together with the event's derived lifecycle status.
type GetEventAccessQuery struct {
	EventID string

	// ViewerEmail is empty for anonymous viewers
	ViewerEmail string

	// Authenticated reports whether the viewer carries a verified identity
	Authenticated bool
}

// Validate validates the GetEventAccessQuery
func (q GetEventAccessQuery) Validate() error {
	if q.EventID == "" {
		return errors.New("event ID is required")
	}
	return nil
}

// GetEventAccessResult represents the outcome of an access evaluation
type GetEventAccessResult struct {
	EventID          string `json:"eventId"`
	Granted          bool   `json:"granted"`
	Reason           string `json:"reason,omitempty"`
	Status           string `json:"status"`
	RegistrationOpen bool   `json:"registrationOpen"`
	Title            string `json:"title,omitempty"`
	StartDate        string `json:"startDate,omitempty"`
	EndDate          string `json:"endDate,omitempty"`
}

// VerifyGuestAccessQuery represents a guest checking their email against
// a private event's allow-list
type VerifyGuestAccessQuery struct {
	EventID string

	// Email is the guest-submitted address. It may be blank; blankness is
	// reported as a validation failure rather than a denial.
	Email string
}

// Validate validates the VerifyGuestAccessQuery. The email field is
// deliberately not validated here: an empty submission must flow through
// to the gate so callers can distinguish bad input from denial.
func (q VerifyGuestAccessQuery) Validate() error {
	if q.EventID == "" {
		return errors.New("event ID is required")
	}
	return nil
}

// VerifyGuestAccessResult represents the outcome of a guest verification
type VerifyGuestAccessResult struct {
	EventID           string `json:"eventId"`
	Granted           bool   `json:"granted"`
	Reason            string `json:"reason,omitempty"`
	ValidationFailure bool   `json:"validationFailure"`
}
