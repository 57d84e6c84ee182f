package priority

import (
	"sync"
	"testing"

	"github.com/exam-prep/backend/internal/models"
)

func newTestService() *Service {
	return NewService(NewMemoryStore())
}

func submit(t *testing.T, s *Service, sessionID string, results ...models.QuestionResult) {
	t.Helper()
	if err := s.SubmitResults(sessionID, results); err != nil {
		t.Fatalf("SubmitResults: %v", err)
	}
}

func result(topics []string, correct bool, confidence float64) models.QuestionResult {
	return models.QuestionResult{Topics: topics, IsCorrect: correct, Confidence: confidence}
}

func TestSubmitResultsCreatesTopics(t *testing.T) {
	s := newTestService()

	submit(t, s, "sess-1", result([]string{"algebra", "calculus"}, true, 0.9))

	priorities, err := s.GetPriorities("sess-1")
	if err != nil {
		t.Fatalf("GetPriorities: %v", err)
	}
	if len(priorities) != 2 {
		t.Fatalf("got %d topics, want 2", len(priorities))
	}

	for _, p := range priorities {
		if p.PriorityScore != InitialScore {
			t.Errorf("topic %q first-attempt score = %f, want %f", p.Name, p.PriorityScore, InitialScore)
		}
		if p.QuestionsAttempted != 1 || p.QuestionsCorrect != 1 {
			t.Errorf("topic %q counters = %d/%d, want 1/1", p.Name, p.QuestionsCorrect, p.QuestionsAttempted)
		}
		if p.ID == "" {
			t.Errorf("topic %q has no ID", p.Name)
		}
		if p.LastPracticed.IsZero() {
			t.Errorf("topic %q has zero last_practiced", p.Name)
		}
	}
}

func TestSubmitResultsEmptyTopics(t *testing.T) {
	s := newTestService()

	submit(t, s, "sess-1", result(nil, true, 0.9))

	priorities, err := s.GetPriorities("sess-1")
	if err != nil {
		t.Fatalf("GetPriorities: %v", err)
	}
	if len(priorities) != 0 {
		t.Errorf("outcome with no topics created %d records, want 0", len(priorities))
	}
}

func TestCountersMonotonic(t *testing.T) {
	s := newTestService()

	outcomes := []bool{true, false, true, true, false, false, true}
	prevAttempted := 0
	for _, correct := range outcomes {
		submit(t, s, "sess-1", result([]string{"geometry"}, correct, 0.9))

		priorities, err := s.GetPriorities("sess-1")
		if err != nil {
			t.Fatalf("GetPriorities: %v", err)
		}
		p := priorities[0]
		if p.QuestionsAttempted <= prevAttempted {
			t.Errorf("questions_attempted %d not increasing past %d", p.QuestionsAttempted, prevAttempted)
		}
		if p.QuestionsCorrect > p.QuestionsAttempted {
			t.Errorf("questions_correct %d exceeds attempted %d", p.QuestionsCorrect, p.QuestionsAttempted)
		}
		if p.PriorityScore < MinScore {
			t.Errorf("priority_score %f below floor", p.PriorityScore)
		}
		prevAttempted = p.QuestionsAttempted
	}
}

func TestWrongAnswersRaisePriority(t *testing.T) {
	s := newTestService()

	// First attempt anchors at 1.0; the next two misses have rate < 0.3.
	submit(t, s, "sess-1", result([]string{"probability"}, false, 0.9))
	submit(t, s, "sess-1", result([]string{"probability"}, false, 0.9))
	submit(t, s, "sess-1", result([]string{"probability"}, false, 0.9))

	priorities, _ := s.GetPriorities("sess-1")
	want := 1.0 * 1.5 * 1.5
	if !almostEqual(priorities[0].PriorityScore, want) {
		t.Errorf("score after three misses = %f, want %f", priorities[0].PriorityScore, want)
	}
}

func TestOrderingAndTieBreak(t *testing.T) {
	s := newTestService()

	// Build distinct scores: misses raise "weak", hits on a strong record
	// lower "strong", "middle" stays at 1.0.
	for i := 0; i < 3; i++ {
		submit(t, s, "sess-1", result([]string{"weak"}, false, 0.9))
	}
	for i := 0; i < 6; i++ {
		submit(t, s, "sess-1", result([]string{"strong"}, true, 0.9))
	}
	submit(t, s, "sess-1", result([]string{"middle"}, true, 0.9))

	// Two topics with identical histories tie on score.
	submit(t, s, "sess-1", result([]string{"zeta", "alpha"}, true, 0.9))

	priorities, err := s.GetPriorities("sess-1")
	if err != nil {
		t.Fatalf("GetPriorities: %v", err)
	}

	for i := 1; i < len(priorities); i++ {
		prev, cur := priorities[i-1], priorities[i]
		if cur.PriorityScore > prev.PriorityScore {
			t.Errorf("priorities out of order: %q (%f) after %q (%f)",
				cur.Name, cur.PriorityScore, prev.Name, prev.PriorityScore)
		}
		if cur.PriorityScore == prev.PriorityScore && cur.Name < prev.Name {
			t.Errorf("tie between %q and %q not broken by name", prev.Name, cur.Name)
		}
	}

	if priorities[0].Name != "weak" {
		t.Errorf("most urgent topic = %q, want weak", priorities[0].Name)
	}
	if last := priorities[len(priorities)-1]; last.Name != "strong" {
		t.Errorf("least urgent topic = %q, want strong", last.Name)
	}
}

func TestSessionIsolation(t *testing.T) {
	s := newTestService()

	submit(t, s, "sess-a", result([]string{"algebra"}, false, 0.5))
	submit(t, s, "sess-a", result([]string{"algebra"}, false, 0.5))
	submit(t, s, "sess-b", result([]string{"algebra"}, true, 0.9))

	aPriorities, _ := s.GetPriorities("sess-a")
	bPriorities, _ := s.GetPriorities("sess-b")

	if len(aPriorities) != 1 || len(bPriorities) != 1 {
		t.Fatalf("got %d/%d records, want 1/1", len(aPriorities), len(bPriorities))
	}
	if aPriorities[0].QuestionsAttempted != 2 {
		t.Errorf("session A attempted = %d, want 2", aPriorities[0].QuestionsAttempted)
	}
	if bPriorities[0].QuestionsAttempted != 1 {
		t.Errorf("session B attempted = %d, want 1", bPriorities[0].QuestionsAttempted)
	}
	if aPriorities[0].ID == bPriorities[0].ID {
		t.Error("same topic name across sessions shares a record ID")
	}
}

func TestEmptySessionQuery(t *testing.T) {
	s := newTestService()

	priorities, err := s.GetPriorities("never-seen")
	if err != nil {
		t.Fatalf("GetPriorities on empty session: %v", err)
	}
	if priorities == nil {
		t.Error("GetPriorities returned nil, want empty slice")
	}
	if len(priorities) != 0 {
		t.Errorf("got %d records, want 0", len(priorities))
	}
}

func TestResetPriorities(t *testing.T) {
	s := newTestService()

	submit(t, s, "sess-1", result([]string{"algebra"}, false, 0.5))
	submit(t, s, "sess-1", result([]string{"algebra"}, false, 0.5))

	before, _ := s.GetPriorities("sess-1")
	originalID := before[0].ID

	if err := s.ResetPriorities("sess-1"); err != nil {
		t.Fatalf("ResetPriorities: %v", err)
	}

	after, _ := s.GetPriorities("sess-1")
	if len(after) != 1 {
		t.Fatalf("reset destroyed records: got %d, want 1", len(after))
	}
	p := after[0]
	if p.ID != originalID {
		t.Errorf("reset changed topic ID from %s to %s", originalID, p.ID)
	}
	if p.PriorityScore != InitialScore || p.QuestionsAttempted != 0 || p.QuestionsCorrect != 0 {
		t.Errorf("reset state = score %f, counters %d/%d; want 1.0, 0/0",
			p.PriorityScore, p.QuestionsCorrect, p.QuestionsAttempted)
	}

	// Idempotent: a second reset leaves identical state.
	if err := s.ResetPriorities("sess-1"); err != nil {
		t.Fatalf("second ResetPriorities: %v", err)
	}
	again, _ := s.GetPriorities("sess-1")
	q := again[0]
	if q.ID != p.ID || q.PriorityScore != p.PriorityScore ||
		q.QuestionsAttempted != p.QuestionsAttempted || q.QuestionsCorrect != p.QuestionsCorrect {
		t.Error("second reset changed state beyond last_practiced")
	}
}

func TestResetEmptySession(t *testing.T) {
	s := newTestService()
	if err := s.ResetPriorities("never-seen"); err != nil {
		t.Errorf("ResetPriorities on empty session: %v", err)
	}
}

func TestConcurrentSubmissionsSameSession(t *testing.T) {
	s := newTestService()

	const workers = 8
	const perWorker = 25

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				submitErr := s.SubmitResults("sess-1", []models.QuestionResult{
					result([]string{"algebra"}, i%2 == 0, 0.9),
				})
				if submitErr != nil {
					t.Errorf("SubmitResults: %v", submitErr)
				}
			}
		}()
	}
	wg.Wait()

	priorities, err := s.GetPriorities("sess-1")
	if err != nil {
		t.Fatalf("GetPriorities: %v", err)
	}
	if got := priorities[0].QuestionsAttempted; got != workers*perWorker {
		t.Errorf("questions_attempted = %d after concurrent submissions, want %d", got, workers*perWorker)
	}
}
