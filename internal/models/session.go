package models

import "time"

type ExamSession struct {
	ID         string                  `json:"id"`
	CourseName string                  `json:"course_name"`
	ExamDate   string                  `json:"exam_date"`
	Materials  map[string]MaterialInfo `json:"materials"`
	CreatedAt  time.Time               `json:"created_at"`
}

// MaterialInfo describes one uploaded course material. The raw bytes are
// not retained; only what the analysis prompts need.
type MaterialInfo struct {
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type MaterialKind string

const (
	MaterialTextbook  MaterialKind = "textbook"
	MaterialSlides    MaterialKind = "slides"
	MaterialHomework  MaterialKind = "homework"
	MaterialPastExams MaterialKind = "past_exams"
	MaterialSyllabus  MaterialKind = "syllabus"
)

var ValidMaterialKinds = map[MaterialKind]bool{
	MaterialTextbook:  true,
	MaterialSlides:    true,
	MaterialHomework:  true,
	MaterialPastExams: true,
	MaterialSyllabus:  true,
}

type CreateSessionRequest struct {
	CourseName string `json:"course_name"`
	ExamDate   string `json:"exam_date"`
}

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type SessionSummary struct {
	Session    ExamSession     `json:"session"`
	Questions  []Question      `json:"questions"`
	Priorities []TopicPriority `json:"priorities"`
}
