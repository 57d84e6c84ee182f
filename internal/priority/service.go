package priority

import (
	"fmt"
	"sync"
	"time"

	"github.com/exam-prep/backend/internal/models"
	"github.com/google/uuid"
)

// Service owns topic priority state. All writes for a session go through
// that session's lock so concurrent submissions cannot lose updates;
// reads take the same lock shared, so a reader sees either the state
// before a batch or after it, never a half-applied batch. Sessions are
// independent of each other.
type Service struct {
	store TopicStore

	mu    sync.Mutex
	locks map[string]*sync.RWMutex

	now func() time.Time
}

func NewService(store TopicStore) *Service {
	return &Service{
		store: store,
		locks: make(map[string]*sync.RWMutex),
		now:   time.Now,
	}
}

func (s *Service) sessionLock(sessionID string) *sync.RWMutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.RWMutex{}
		s.locks[sessionID] = lock
	}
	return lock
}

// SubmitResults applies a batch of question outcomes to the session's
// topic records. Each outcome updates every topic it names with the same
// correctness and confidence inputs.
func (s *Service) SubmitResults(sessionID string, results []models.QuestionResult) error {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	for _, result := range results {
		for _, topicName := range result.Topics {
			if err := s.applyOutcome(sessionID, topicName, result.IsCorrect, result.Confidence); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Service) applyOutcome(sessionID, topicName string, isCorrect bool, confidence float64) error {
	topic, err := s.store.GetTopic(sessionID, topicName)
	if err != nil {
		return fmt.Errorf("fetch topic %q: %w", topicName, err)
	}
	if topic == nil {
		topic = &models.Topic{
			ID:            uuid.NewString(),
			SessionID:     sessionID,
			Name:          topicName,
			PriorityScore: InitialScore,
		}
	}

	topic.PriorityScore = ComputeScore(
		topic.PriorityScore,
		topic.QuestionsAttempted,
		topic.QuestionsCorrect,
		isCorrect,
		confidence,
	)
	topic.QuestionsAttempted++
	if isCorrect {
		topic.QuestionsCorrect++
	}
	topic.LastPracticed = s.now()

	if err := s.store.UpsertTopic(topic); err != nil {
		return fmt.Errorf("store topic %q: %w", topicName, err)
	}
	return nil
}

// GetPriorities returns the session's topics ranked most-urgent first,
// each annotated with a study recommendation. A session with no records
// yields an empty slice.
func (s *Service) GetPriorities(sessionID string) ([]models.TopicPriority, error) {
	lock := s.sessionLock(sessionID)
	lock.RLock()
	defer lock.RUnlock()

	topics, err := s.store.ListTopics(sessionID)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}

	priorities := make([]models.TopicPriority, 0, len(topics))
	for _, t := range topics {
		priorities = append(priorities, models.TopicPriority{
			Topic:               t,
			StudyRecommendation: Recommendation(t.QuestionsAttempted, t.QuestionsCorrect),
		})
	}
	return priorities, nil
}

// ResetPriorities restores every topic in the session to defaults while
// keeping record identity. Calling it again is a no-op beyond refreshing
// the last-practiced timestamp.
func (s *Service) ResetPriorities(sessionID string) error {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.store.ResetTopics(sessionID, s.now()); err != nil {
		return fmt.Errorf("reset session %q: %w", sessionID, err)
	}
	return nil
}
