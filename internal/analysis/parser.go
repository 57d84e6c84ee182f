package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/exam-prep/backend/internal/models"
)

// ParseAnalysis decodes the model's JSON judgment of one piece of work.
func ParseAnalysis(responseBody string) (*models.WorkAnalysis, error) {
	cleaned := stripCodeFences(responseBody)

	var analysis models.WorkAnalysis
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateAnalysis(&analysis); err != nil {
		return nil, err
	}

	return &analysis, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

func validateAnalysis(analysis *models.WorkAnalysis) error {
	if analysis.Feedback == "" {
		return fmt.Errorf("analysis missing feedback")
	}
	if len(analysis.Topics) == 0 {
		return fmt.Errorf("analysis missing topics")
	}
	if analysis.Confidence < 0 || analysis.Confidence > 1 {
		return fmt.Errorf("analysis confidence %f outside [0, 1]", analysis.Confidence)
	}

	var topics []string
	for _, topic := range analysis.Topics {
		if topic = strings.TrimSpace(topic); topic != "" {
			topics = append(topics, topic)
		}
	}
	if len(topics) == 0 {
		return fmt.Errorf("analysis topics all blank")
	}
	analysis.Topics = topics

	return nil
}

// FallbackAnalysis is returned when the model's response cannot be parsed.
// Marked incorrect at middling confidence so the topic still surfaces in
// the study plan instead of being silently dropped.
func FallbackAnalysis() *models.WorkAnalysis {
	return &models.WorkAnalysis{
		IsCorrect:   false,
		Feedback:    "Unable to analyze work completely",
		Topics:      []string{"Unknown Topic"},
		Confidence:  0.5,
		Suggestions: []string{"Please upload a clearer image of your work"},
	}
}
