package models

import "time"

// Topic is the per-(session, topic name) priority record. The pair
// (SessionID, Name) identifies at most one Topic; both are immutable
// once the record exists.
type Topic struct {
	ID                 string    `json:"id"`
	SessionID          string    `json:"session_id"`
	Name               string    `json:"name"`
	PriorityScore      float64   `json:"priority_score"`
	QuestionsAttempted int       `json:"questions_attempted"`
	QuestionsCorrect   int       `json:"questions_correct"`
	LastPracticed      time.Time `json:"last_practiced"`
}

// TopicPriority is a Topic annotated with a derived recommendation.
// The recommendation is computed at read time and never persisted.
type TopicPriority struct {
	Topic
	StudyRecommendation string `json:"study_recommendation"`
}

// QuestionResult is the per-question outcome the engine consumes from
// the analysis layer. An empty Topics slice contributes nothing.
type QuestionResult struct {
	Topics     []string `json:"topics"`
	IsCorrect  bool     `json:"is_correct"`
	Confidence float64  `json:"confidence"`
}

type SubmitResultsRequest struct {
	Results []QuestionResult `json:"results"`
}

type PrioritiesResponse struct {
	Priorities []TopicPriority `json:"priorities"`
}
