package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"insight-backend/application/commands"
	"insight-backend/application/commands/bus"
	"insight-backend/application/queries"
	querybus "insight-backend/application/queries/bus"
	"insight-backend/pkg/auth"
	"insight-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventHandler handles event-related HTTP requests
type EventHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *EventHandler {
	return &EventHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// CreateEventRequest represents the request body for creating an event
type CreateEventRequest struct {
	Title         string   `json:"title" validate:"required,min=1,max=200"`
	Description   string   `json:"description,omitempty" validate:"max=50000"`
	Location      string   `json:"location,omitempty" validate:"max=500"`
	StartDate     string   `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate       string   `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StaticStatus  string   `json:"staticStatus,omitempty" validate:"omitempty,oneof=upcoming ongoing closed"`
	Visibility    string   `json:"visibility,omitempty" validate:"omitempty,oneof=public private"`
	AllowedEmails []string `json:"allowedEmails,omitempty" validate:"omitempty,dive,email"`
}

// UpdateVisibilityRequest represents the request body for changing an
// event's visibility policy
type UpdateVisibilityRequest struct {
	Visibility    string   `json:"visibility" validate:"required,oneof=public private"`
	AllowedEmails []string `json:"allowedEmails,omitempty" validate:"omitempty,dive,email"`
}

// VerifyGuestRequest represents the request body for guest verification.
// The email is deliberately unvalidated here: a blank submission must
// reach the access gate so it is reported as a validation failure rather
// than a denial.
type VerifyGuestRequest struct {
	Email string `json:"email"`
}

// CreateEventResponse represents the response for creating an event
type CreateEventResponse struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

// CreateEvent handles POST /events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	// Get user context from auth middleware
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	// Pre-generate the event ID so the response can carry it
	eventID := uuid.New().String()

	cmd := commands.CreateEventCommand{
		EventID:       eventID,
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		StaticStatus:  req.StaticStatus,
		Visibility:    req.Visibility,
		AllowedEmails: req.AllowedEmails,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to create event",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		if strings.Contains(err.Error(), "validation") {
			h.respondError(w, http.StatusBadRequest, err.Error())
		} else {
			h.respondError(w, http.StatusInternalServerError, "Failed to create event")
		}
		return
	}

	response := CreateEventResponse{
		ID:        eventID,
		Message:   "Event created successfully",
		CreatedAt: utils.NowRFC3339(),
	}

	h.respondJSON(w, http.StatusCreated, response)
}

// UpdateVisibility handles PUT /events/{eventID}/visibility
func (h *EventHandler) UpdateVisibility(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	if eventID == "" {
		h.respondError(w, http.StatusBadRequest, "Event ID is required")
		return
	}

	// Validate UUID format
	if _, err := uuid.Parse(eventID); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	var req UpdateVisibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	// Get user context
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cmd := commands.UpdateEventVisibilityCommand{
		EventID:       eventID,
		Visibility:    req.Visibility,
		AllowedEmails: req.AllowedEmails,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to update event visibility",
			zap.String("eventID", eventID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		if strings.Contains(err.Error(), "NOT_FOUND") {
			h.respondError(w, http.StatusNotFound, "Event not found")
		} else if strings.Contains(err.Error(), "validation") {
			h.respondError(w, http.StatusBadRequest, err.Error())
		} else {
			h.respondError(w, http.StatusInternalServerError, "Failed to update event visibility")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"message": "Event visibility updated successfully",
		"id":      eventID,
	})
}

// GetAccess handles GET /events/{eventID}/access. The route is public:
// anonymous viewers get an access decision too, they just never see
// private event details.
func (h *EventHandler) GetAccess(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	if eventID == "" {
		h.respondError(w, http.StatusBadRequest, "Event ID is required")
		return
	}

	// Validate UUID format
	if _, err := uuid.Parse(eventID); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	query := queries.GetEventAccessQuery{
		EventID: eventID,
	}

	// An authenticated session carries a verified email; otherwise the
	// viewer is anonymous.
	if userCtx, err := auth.GetUserFromContext(r.Context()); err == nil {
		query.ViewerEmail = userCtx.Email
		query.Authenticated = true
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Failed to evaluate event access",
			zap.String("eventID", eventID),
			zap.Error(err),
		)
		if strings.Contains(err.Error(), "NOT_FOUND") {
			h.respondError(w, http.StatusNotFound, "Event not found")
		} else {
			h.respondError(w, http.StatusInternalServerError, "Failed to evaluate event access")
		}
		return
	}

	access, ok := result.(*queries.GetEventAccessResult)
	if !ok {
		h.respondError(w, http.StatusInternalServerError, "Failed to evaluate event access")
		return
	}

	status := http.StatusOK
	if !access.Granted {
		status = http.StatusForbidden
	}
	h.respondJSON(w, status, access)
}

// VerifyGuest handles POST /events/{eventID}/verify-guest. Guests check
// their own email against a private event's allow-list.
func (h *EventHandler) VerifyGuest(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	if eventID == "" {
		h.respondError(w, http.StatusBadRequest, "Event ID is required")
		return
	}

	// Validate UUID format
	if _, err := uuid.Parse(eventID); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	var req VerifyGuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	query := queries.VerifyGuestAccessQuery{
		EventID: eventID,
		Email:   req.Email,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Failed to verify guest",
			zap.String("eventID", eventID),
			zap.Error(err),
		)
		if strings.Contains(err.Error(), "NOT_FOUND") {
			h.respondError(w, http.StatusNotFound, "Event not found")
		} else {
			h.respondError(w, http.StatusInternalServerError, "Failed to verify guest")
		}
		return
	}

	verification, ok := result.(*queries.VerifyGuestAccessResult)
	if !ok {
		h.respondError(w, http.StatusInternalServerError, "Failed to verify guest")
		return
	}

	// A blank email is a malformed request, not a denial.
	status := http.StatusOK
	switch {
	case verification.ValidationFailure:
		status = http.StatusBadRequest
	case !verification.Granted:
		status = http.StatusForbidden
	}
	h.respondJSON(w, status, verification)
}

// Helper methods

func (h *EventHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *EventHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}
