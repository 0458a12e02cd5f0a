package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"insight-backend/application/queries"
	querybus "insight-backend/application/queries/bus"

	"go.uber.org/zap"
)

// AnalyticsHandler handles engagement analytics HTTP requests
type AnalyticsHandler struct {
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		queryBus: queryBus,
		logger:   logger,
	}
}

// GetSnapshot handles GET /analytics/snapshot
func (h *AnalyticsHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	// Non-positive or malformed parameters fall back to the aggregator
	// defaults rather than failing the request.
	windowDays, _ := strconv.Atoi(r.URL.Query().Get("windowDays"))
	topN, _ := strconv.Atoi(r.URL.Query().Get("topN"))

	query := queries.GetEngagementSnapshotQuery{
		WindowDays: windowDays,
		TopN:       topN,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Failed to compute engagement snapshot",
			zap.Int("windowDays", windowDays),
			zap.Int("topN", topN),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, "Failed to compute engagement snapshot")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// Helper methods

func (h *AnalyticsHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *AnalyticsHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}
