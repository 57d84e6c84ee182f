package uploads

import (
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/exam-prep/backend/internal/analysis"
	"github.com/exam-prep/backend/internal/models"
	"github.com/exam-prep/backend/internal/priority"
	"github.com/exam-prep/backend/internal/sessions"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// maxUploadBytes caps one practice-work request at 64 MB.
const maxUploadBytes = 64 << 20

var validPracticeTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/gif":       true,
	"image/bmp":       true,
	"image/webp":      true,
	"image/tiff":      true,
}

// Handler runs uploaded practice work through transcription and analysis,
// persists each question, and feeds the outcome batch to the priority
// engine.
type Handler struct {
	sessionStore    *sessions.Store
	analyzer        *analysis.Analyzer
	priorityService *priority.Service
}

func NewHandler(sessionStore *sessions.Store, analyzer *analysis.Analyzer, priorityService *priority.Service) *Handler {
	return &Handler{
		sessionStore:    sessionStore,
		analyzer:        analyzer,
		priorityService: priorityService,
	}
}

func (h *Handler) UploadPracticeWork(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	session, err := h.sessionStore.GetSession(sessionID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load session"})
		return
	}
	if session == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Session not found"})
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid multipart form"})
		return
	}

	files := r.MultipartForm.File["work_files"]
	if len(files) == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "No work_files provided"})
		return
	}

	for _, header := range files {
		if !validPracticeTypes[header.Header.Get("Content-Type")] {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
				Error: "Unsupported file type: " + header.Header.Get("Content-Type") + ". Supported: PDF, PNG, JPG, JPEG, GIF, BMP, WebP, TIFF",
			})
			return
		}
	}

	var fileResults []models.PracticeFileResult
	var batch []models.QuestionResult

	for _, header := range files {
		fileResult, err := h.processFile(r, header, sessionID)
		if err != nil {
			log.Printf("Failed to process %s: %v", header.Filename, err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Analysis failed: " + err.Error()})
			return
		}

		fileResults = append(fileResults, *fileResult)
		batch = append(batch, models.QuestionResult{
			Topics:     fileResult.Analysis.Topics,
			IsCorrect:  fileResult.Analysis.IsCorrect,
			Confidence: fileResult.Analysis.Confidence,
		})
	}

	if err := h.priorityService.SubmitResults(sessionID, batch); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update priorities"})
		return
	}

	writeJSON(w, http.StatusOK, models.PracticeUploadResponse{
		Message: "Practice work analyzed!",
		Results: fileResults,
	})
}

func (h *Handler) processFile(r *http.Request, header *multipart.FileHeader, sessionID string) (*models.PracticeFileResult, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	contentType := header.Header.Get("Content-Type")

	extractedText, err := h.analyzer.Transcribe(r.Context(), data, contentType)
	if err != nil {
		return nil, err
	}

	workAnalysis, err := h.analyzer.Analyze(r.Context(), extractedText)
	if err != nil {
		return nil, err
	}

	question := &models.Question{
		ID:            uuid.NewString(),
		SessionID:     sessionID,
		ExtractedText: extractedText,
		IsCorrect:     workAnalysis.IsCorrect,
		Feedback:      workAnalysis.Feedback,
		Topics:        workAnalysis.Topics,
		Confidence:    workAnalysis.Confidence,
		CreatedAt:     time.Now(),
	}
	if err := h.sessionStore.CreateQuestion(question); err != nil {
		return nil, err
	}

	return &models.PracticeFileResult{
		QuestionID:    question.ID,
		Filename:      header.Filename,
		FileType:      contentType,
		ExtractedText: extractedText,
		Analysis:      *workAnalysis,
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
