package models

import "time"

// Question is one analyzed piece of practice work within a session.
type Question struct {
	ID            string    `json:"id"`
	SessionID     string    `json:"session_id"`
	ExtractedText string    `json:"extracted_text"`
	IsCorrect     bool      `json:"is_correct"`
	Feedback      string    `json:"feedback"`
	Topics        []string  `json:"topics"`
	Confidence    float64   `json:"confidence"`
	CreatedAt     time.Time `json:"created_at"`
}

// WorkAnalysis is the judgment the analysis model returns for one piece
// of transcribed work.
type WorkAnalysis struct {
	IsCorrect   bool     `json:"is_correct"`
	Feedback    string   `json:"feedback"`
	Topics      []string `json:"topics"`
	Confidence  float64  `json:"confidence"`
	Suggestions []string `json:"suggestions"`
}

// PracticeFileResult echoes what happened to one uploaded file.
type PracticeFileResult struct {
	QuestionID    string       `json:"question_id"`
	Filename      string       `json:"filename"`
	FileType      string       `json:"file_type"`
	ExtractedText string       `json:"extracted_text"`
	Analysis      WorkAnalysis `json:"analysis"`
}

type PracticeUploadResponse struct {
	Message string               `json:"message"`
	Results []PracticeFileResult `json:"results"`
}
