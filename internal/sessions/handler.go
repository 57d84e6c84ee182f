package sessions

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/exam-prep/backend/internal/models"
	"github.com/exam-prep/backend/internal/priority"
	"github.com/gorilla/mux"
)

type Handler struct {
	store           *Store
	priorityService *priority.Service
}

func NewHandler(store *Store, priorityService *priority.Service) *Handler {
	return &Handler{store: store, priorityService: priorityService}
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.CourseName = strings.TrimSpace(req.CourseName)
	req.ExamDate = strings.TrimSpace(req.ExamDate)
	if req.CourseName == "" || req.ExamDate == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "course_name and exam_date are required"})
		return
	}

	session, err := h.store.CreateSession(req.CourseName, req.ExamDate)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create session"})
		return
	}

	writeJSON(w, http.StatusCreated, models.CreateSessionResponse{
		SessionID: session.ID,
		Message:   "Exam session started!",
	})
}

// GetSessionSummary returns the session, its analyzed questions, and the
// current study priorities in one view.
func (h *Handler) GetSessionSummary(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	session, err := h.store.GetSession(sessionID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load session"})
		return
	}
	if session == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Session not found"})
		return
	}

	questions, err := h.store.ListQuestions(sessionID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load questions"})
		return
	}
	if questions == nil {
		questions = []models.Question{}
	}

	priorities, err := h.priorityService.GetPriorities(sessionID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load priorities"})
		return
	}

	writeJSON(w, http.StatusOK, models.SessionSummary{
		Session:    *session,
		Questions:  questions,
		Priorities: priorities,
	})
}

// UploadMaterials stores metadata for the course materials attached to a
// session. Each multipart field name is a material kind.
func (h *Handler) UploadMaterials(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	session, err := h.store.GetSession(sessionID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load session"})
		return
	}
	if session == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Session not found"})
		return
	}

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid multipart form"})
		return
	}

	var stored []string
	for field, headers := range r.MultipartForm.File {
		kind := models.MaterialKind(field)
		if !models.ValidMaterialKinds[kind] {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Unknown material kind: " + field})
			return
		}
		if len(headers) == 0 {
			continue
		}
		header := headers[0]

		info := models.MaterialInfo{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			SizeBytes:   header.Size,
			UploadedAt:  time.Now(),
		}
		if err := h.store.SetMaterial(sessionID, kind, info); err != nil {
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to store material"})
			return
		}
		stored = append(stored, field)
	}

	if stored == nil {
		stored = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Materials uploaded successfully!",
		"materials": stored,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
