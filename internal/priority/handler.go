package priority

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/exam-prep/backend/internal/models"
	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SubmitResults accepts a pre-analyzed result batch directly. Confidence
// is clamped into [0, 1] and blank topic names dropped before the batch
// reaches the engine.
func (h *Handler) SubmitResults(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req models.SubmitResultsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	results := sanitizeResults(req.Results)

	if err := h.service.SubmitResults(sessionID, results); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update priorities"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetPriorities(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	priorities, err := h.service.GetPriorities(sessionID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get priorities"})
		return
	}

	writeJSON(w, http.StatusOK, models.PrioritiesResponse{Priorities: priorities})
}

func (h *Handler) ResetPriorities(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := h.service.ResetPriorities(sessionID); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to reset priorities"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func sanitizeResults(results []models.QuestionResult) []models.QuestionResult {
	sanitized := make([]models.QuestionResult, 0, len(results))
	for _, result := range results {
		var topics []string
		for _, name := range result.Topics {
			if name = strings.TrimSpace(name); name != "" {
				topics = append(topics, name)
			}
		}
		if result.Confidence < 0 {
			result.Confidence = 0
		}
		if result.Confidence > 1 {
			result.Confidence = 1
		}
		result.Topics = topics
		sanitized = append(sanitized, result)
	}
	return sanitized
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
