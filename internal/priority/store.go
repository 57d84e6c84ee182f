package priority

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/exam-prep/backend/internal/models"
)

// TopicStore holds the engine's topic records keyed by (session, name).
// ListTopics returns records ranked by priority score descending; equal
// scores break ties by topic name ascending.
type TopicStore interface {
	// GetTopic returns nil, nil when no record exists for the pair.
	GetTopic(sessionID, name string) (*models.Topic, error)
	UpsertTopic(topic *models.Topic) error
	ListTopics(sessionID string) ([]models.Topic, error)
	// ResetTopics restores defaults for every record in the session,
	// preserving record identity.
	ResetTopics(sessionID string, now time.Time) error
}

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetTopic(sessionID, name string) (*models.Topic, error) {
	var t models.Topic
	err := s.db.QueryRow(
		`SELECT id, session_id, name, priority_score, questions_attempted, questions_correct, last_practiced
		 FROM topics WHERE session_id = $1 AND name = $2`,
		sessionID, name,
	).Scan(&t.ID, &t.SessionID, &t.Name, &t.PriorityScore,
		&t.QuestionsAttempted, &t.QuestionsCorrect, &t.LastPracticed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}
	return &t, nil
}

func (s *PostgresStore) UpsertTopic(topic *models.Topic) error {
	_, err := s.db.Exec(
		`INSERT INTO topics (id, session_id, name, priority_score, questions_attempted, questions_correct, last_practiced)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (session_id, name) DO UPDATE SET
		    priority_score = EXCLUDED.priority_score,
		    questions_attempted = EXCLUDED.questions_attempted,
		    questions_correct = EXCLUDED.questions_correct,
		    last_practiced = EXCLUDED.last_practiced`,
		topic.ID, topic.SessionID, topic.Name, topic.PriorityScore,
		topic.QuestionsAttempted, topic.QuestionsCorrect, topic.LastPracticed,
	)
	if err != nil {
		return fmt.Errorf("upsert topic: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListTopics(sessionID string) ([]models.Topic, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, name, priority_score, questions_attempted, questions_correct, last_practiced
		 FROM topics WHERE session_id = $1
		 ORDER BY priority_score DESC, name ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	var topics []models.Topic
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.SessionID, &t.Name, &t.PriorityScore,
			&t.QuestionsAttempted, &t.QuestionsCorrect, &t.LastPracticed); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

func (s *PostgresStore) ResetTopics(sessionID string, now time.Time) error {
	_, err := s.db.Exec(
		`UPDATE topics SET
		    priority_score = $2,
		    questions_attempted = 0,
		    questions_correct = 0,
		    last_practiced = $3
		 WHERE session_id = $1`,
		sessionID, InitialScore, now,
	)
	if err != nil {
		return fmt.Errorf("reset topics: %w", err)
	}
	return nil
}
