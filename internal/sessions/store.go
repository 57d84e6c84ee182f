package sessions

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/exam-prep/backend/internal/models"
	"github.com/google/uuid"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Exam Sessions ───────────────────────────────────────

func (s *Store) CreateSession(courseName, examDate string) (*models.ExamSession, error) {
	session := &models.ExamSession{
		ID:         uuid.NewString(),
		CourseName: courseName,
		ExamDate:   examDate,
		Materials:  map[string]models.MaterialInfo{},
		CreatedAt:  time.Now(),
	}

	_, err := s.db.Exec(
		`INSERT INTO exam_sessions (id, course_name, exam_date, materials, created_at)
		 VALUES ($1, $2, $3, '{}', $4)`,
		session.ID, session.CourseName, session.ExamDate, session.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// GetSession returns nil, nil when the session does not exist.
func (s *Store) GetSession(sessionID string) (*models.ExamSession, error) {
	var session models.ExamSession
	var materialsJSON []byte
	err := s.db.QueryRow(
		`SELECT id, course_name, exam_date, materials, created_at
		 FROM exam_sessions WHERE id = $1`,
		sessionID,
	).Scan(&session.ID, &session.CourseName, &session.ExamDate, &materialsJSON, &session.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	session.Materials = map[string]models.MaterialInfo{}
	if len(materialsJSON) > 0 {
		if err := json.Unmarshal(materialsJSON, &session.Materials); err != nil {
			return nil, fmt.Errorf("decode materials: %w", err)
		}
	}
	return &session, nil
}

// SetMaterial records one uploaded course material on the session,
// merging into whatever was stored before.
func (s *Store) SetMaterial(sessionID string, kind models.MaterialKind, info models.MaterialInfo) error {
	infoJSON, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("encode material: %w", err)
	}

	result, err := s.db.Exec(
		`UPDATE exam_sessions
		 SET materials = materials || jsonb_build_object($2::text, $3::jsonb)
		 WHERE id = $1`,
		sessionID, string(kind), infoJSON,
	)
	if err != nil {
		return fmt.Errorf("set material: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("session not found")
	}
	return nil
}

// ── Questions ───────────────────────────────────────────

func (s *Store) CreateQuestion(question *models.Question) error {
	topicsJSON, err := json.Marshal(question.Topics)
	if err != nil {
		return fmt.Errorf("encode topics: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO questions (id, session_id, extracted_text, is_correct, feedback, topics, confidence, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		question.ID, question.SessionID, question.ExtractedText, question.IsCorrect,
		question.Feedback, topicsJSON, question.Confidence, question.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	return nil
}

func (s *Store) ListQuestions(sessionID string) ([]models.Question, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, extracted_text, is_correct, feedback, topics, confidence, created_at
		 FROM questions WHERE session_id = $1
		 ORDER BY created_at`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		var topicsJSON []byte
		if err := rows.Scan(&q.ID, &q.SessionID, &q.ExtractedText, &q.IsCorrect,
			&q.Feedback, &topicsJSON, &q.Confidence, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if len(topicsJSON) > 0 {
			if err := json.Unmarshal(topicsJSON, &q.Topics); err != nil {
				return nil, fmt.Errorf("decode topics: %w", err)
			}
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
