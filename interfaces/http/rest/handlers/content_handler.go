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
	"insight-backend/pkg/common"
	"insight-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContentHandler handles content-related HTTP requests
type ContentHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *ContentHandler {
	return &ContentHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// CreateContentRequest represents the request body for creating a content item
type CreateContentRequest struct {
	Kind    string `json:"kind" validate:"required,oneof=article paper"`
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Body    string `json:"body" validate:"max=50000"`
	Format  string `json:"format,omitempty" validate:"omitempty,oneof=text markdown html"`
	Publish bool   `json:"publish,omitempty"`
}

// UpdateContentRequest represents the request body for updating a content item
type UpdateContentRequest struct {
	Title  string `json:"title" validate:"required,min=1,max=200"`
	Body   string `json:"body" validate:"max=50000"`
	Format string `json:"format,omitempty" validate:"omitempty,oneof=text markdown html"`
}

// CreateContentResponse represents the response for creating a content item
type CreateContentResponse struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

// CreateContent handles POST /content
func (h *ContentHandler) CreateContent(w http.ResponseWriter, r *http.Request) {
	var req CreateContentRequest
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

	// Pre-generate the content ID so the response can carry it; the
	// command bus discards handler results.
	contentID := uuid.New().String()

	cmd := commands.CreateContentCommand{
		ContentID: contentID,
		AuthorID:  userCtx.UserID,
		Kind:      req.Kind,
		Title:     req.Title,
		Body:      req.Body,
		Format:    req.Format,
		Publish:   req.Publish,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to create content",
			zap.String("userID", userCtx.UserID),
			zap.String("kind", req.Kind),
			zap.Error(err),
		)
		if strings.Contains(err.Error(), "validation") {
			h.respondError(w, http.StatusBadRequest, err.Error())
		} else {
			h.respondError(w, http.StatusInternalServerError, "Failed to create content")
		}
		return
	}

	response := CreateContentResponse{
		ID:        contentID,
		Message:   "Content created successfully",
		CreatedAt: utils.NowRFC3339(),
	}

	h.respondJSON(w, http.StatusCreated, response)
}

// GetContent handles GET /content/{contentID}
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	contentID := chi.URLParam(r, "contentID")
	if contentID == "" {
		h.respondError(w, http.StatusBadRequest, "Content ID is required")
		return
	}

	// Validate UUID format
	if _, err := uuid.Parse(contentID); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid content ID format")
		return
	}

	query := queries.GetContentQuery{
		ContentID: contentID,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Failed to get content",
			zap.String("contentID", contentID),
			zap.Error(err),
		)
		if strings.Contains(err.Error(), "NOT_FOUND") {
			h.respondError(w, http.StatusNotFound, "Content not found")
		} else {
			h.respondError(w, http.StatusInternalServerError, "Failed to retrieve content")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// ListContent handles GET /content
func (h *ContentHandler) ListContent(w http.ResponseWriter, r *http.Request) {
	pagination := common.ExtractPaginationParams(r)

	query := queries.ListContentQuery{
		Kind:     r.URL.Query().Get("kind"),
		Search:   r.URL.Query().Get("search"),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}

	if err := query.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Failed to list content",
			zap.String("kind", query.Kind),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, "Failed to list content")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// UpdateContent handles PUT /content/{contentID}
func (h *ContentHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	contentID := chi.URLParam(r, "contentID")
	if contentID == "" {
		h.respondError(w, http.StatusBadRequest, "Content ID is required")
		return
	}

	// Validate UUID format
	if _, err := uuid.Parse(contentID); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid content ID format")
		return
	}

	var req UpdateContentRequest
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

	cmd := commands.UpdateContentCommand{
		ContentID: contentID,
		UserID:    userCtx.UserID,
		Title:     req.Title,
		Body:      req.Body,
		Format:    req.Format,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to update content",
			zap.String("contentID", contentID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		if strings.Contains(err.Error(), "NOT_FOUND") {
			h.respondError(w, http.StatusNotFound, "Content not found")
		} else if strings.Contains(err.Error(), "NOT_AUTHORIZED") {
			h.respondError(w, http.StatusForbidden, "Not the content author")
		} else if strings.Contains(err.Error(), "validation") {
			h.respondError(w, http.StatusBadRequest, err.Error())
		} else {
			h.respondError(w, http.StatusInternalServerError, "Failed to update content")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"message": "Content updated successfully",
		"id":      contentID,
	})
}

// ArchiveContent handles DELETE /content/{contentID}
func (h *ContentHandler) ArchiveContent(w http.ResponseWriter, r *http.Request) {
	contentID := chi.URLParam(r, "contentID")
	if contentID == "" {
		h.respondError(w, http.StatusBadRequest, "Content ID is required")
		return
	}

	// Validate UUID format
	if _, err := uuid.Parse(contentID); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid content ID format")
		return
	}

	// Get user context
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cmd := commands.ArchiveContentCommand{
		ContentID: contentID,
		UserID:    userCtx.UserID,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to archive content",
			zap.String("contentID", contentID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		if strings.Contains(err.Error(), "NOT_FOUND") {
			h.respondError(w, http.StatusNotFound, "Content not found")
		} else if strings.Contains(err.Error(), "NOT_AUTHORIZED") {
			h.respondError(w, http.StatusForbidden, "Not the content author")
		} else {
			h.respondError(w, http.StatusInternalServerError, "Failed to archive content")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Helper methods

func (h *ContentHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *ContentHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}
