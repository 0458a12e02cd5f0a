package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"insight-backend/application/commands"
	"insight-backend/application/commands/bus"
	"insight-backend/pkg/auth"
	"insight-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InteractionHandler handles comment and reaction HTTP requests
type InteractionHandler struct {
	commandBus *bus.CommandBus
	logger     *zap.Logger
}

// NewInteractionHandler creates a new interaction handler
func NewInteractionHandler(commandBus *bus.CommandBus, logger *zap.Logger) *InteractionHandler {
	return &InteractionHandler{
		commandBus: commandBus,
		logger:     logger,
	}
}

// AddCommentRequest represents the request body for adding a comment
type AddCommentRequest struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}

// AddCommentResponse represents the response for adding a comment
type AddCommentResponse struct {
	ID        string `json:"id"`
	ParentID  string `json:"parentId"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

// ToggleReactionRequest represents the request body for toggling a reaction
type ToggleReactionRequest struct {
	Type string `json:"type" validate:"required,oneof=like dislike"`
}

// AddComment handles POST /content/{contentID}/comments
func (h *InteractionHandler) AddComment(w http.ResponseWriter, r *http.Request) {
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

	var req AddCommentRequest
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

	// Pre-generate the comment ID so the response can carry it
	commentID := uuid.New().String()

	cmd := commands.AddCommentCommand{
		CommentID: commentID,
		ParentID:  contentID,
		AuthorID:  userCtx.UserID,
		Body:      req.Body,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to add comment",
			zap.String("contentID", contentID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		if strings.Contains(err.Error(), "NOT_FOUND") {
			h.respondError(w, http.StatusNotFound, "Content not found")
		} else if strings.Contains(err.Error(), "validation") {
			h.respondError(w, http.StatusBadRequest, err.Error())
		} else {
			h.respondError(w, http.StatusInternalServerError, "Failed to add comment")
		}
		return
	}

	response := AddCommentResponse{
		ID:        commentID,
		ParentID:  contentID,
		Message:   "Comment added successfully",
		CreatedAt: utils.NowRFC3339(),
	}

	h.respondJSON(w, http.StatusCreated, response)
}

// DeleteComment handles DELETE /comments/{commentID}
func (h *InteractionHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "commentID")
	if commentID == "" {
		h.respondError(w, http.StatusBadRequest, "Comment ID is required")
		return
	}

	// Validate UUID format
	if _, err := uuid.Parse(commentID); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid comment ID format")
		return
	}

	// Get user context
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cmd := commands.DeleteCommentCommand{
		CommentID: commentID,
		UserID:    userCtx.UserID,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to delete comment",
			zap.String("commentID", commentID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		if strings.Contains(err.Error(), "NOT_FOUND") {
			h.respondError(w, http.StatusNotFound, "Comment not found")
		} else if strings.Contains(err.Error(), "NOT_AUTHORIZED") {
			h.respondError(w, http.StatusForbidden, "Not the comment author")
		} else {
			h.respondError(w, http.StatusInternalServerError, "Failed to delete comment")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleReaction handles POST /content/{contentID}/reactions
func (h *InteractionHandler) ToggleReaction(w http.ResponseWriter, r *http.Request) {
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

	var req ToggleReactionRequest
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

	cmd := commands.ToggleReactionCommand{
		ParentID: contentID,
		UserID:   userCtx.UserID,
		Type:     req.Type,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to toggle reaction",
			zap.String("contentID", contentID),
			zap.String("userID", userCtx.UserID),
			zap.String("type", req.Type),
			zap.Error(err),
		)
		if strings.Contains(err.Error(), "NOT_FOUND") {
			h.respondError(w, http.StatusNotFound, "Content not found")
		} else if strings.Contains(err.Error(), "validation") {
			h.respondError(w, http.StatusBadRequest, err.Error())
		} else {
			h.respondError(w, http.StatusInternalServerError, "Failed to toggle reaction")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"message":  "Reaction toggled successfully",
		"parentId": contentID,
		"type":     req.Type,
	})
}

// Helper methods

func (h *InteractionHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *InteractionHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}
