package priority

import (
	"sort"
	"sync"
	"time"

	"github.com/exam-prep/backend/internal/models"
)

type topicKey struct {
	sessionID string
	name      string
}

// MemoryStore is an in-memory TopicStore. Unit tests run on it; the
// server runs on PostgresStore so priority state survives restarts.
type MemoryStore struct {
	mu     sync.RWMutex
	topics map[topicKey]models.Topic
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{topics: make(map[topicKey]models.Topic)}
}

func (s *MemoryStore) GetTopic(sessionID, name string) (*models.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.topics[topicKey{sessionID, name}]
	if !ok {
		return nil, nil
	}
	copied := t
	return &copied, nil
}

func (s *MemoryStore) UpsertTopic(topic *models.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.topics[topicKey{topic.SessionID, topic.Name}] = *topic
	return nil
}

func (s *MemoryStore) ListTopics(sessionID string) ([]models.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var topics []models.Topic
	for key, t := range s.topics {
		if key.sessionID == sessionID {
			topics = append(topics, t)
		}
	}

	sort.Slice(topics, func(i, j int) bool {
		if topics[i].PriorityScore != topics[j].PriorityScore {
			return topics[i].PriorityScore > topics[j].PriorityScore
		}
		return topics[i].Name < topics[j].Name
	})
	return topics, nil
}

func (s *MemoryStore) ResetTopics(sessionID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, t := range s.topics {
		if key.sessionID != sessionID {
			continue
		}
		t.PriorityScore = InitialScore
		t.QuestionsAttempted = 0
		t.QuestionsCorrect = 0
		t.LastPracticed = now
		s.topics[key] = t
	}
	return nil
}
