package analysis

import (
	"strings"
	"testing"
)

const validAnalysisJSON = `{
  "is_correct": true,
  "feedback": "Correct use of the quadratic formula.",
  "topics": ["Quadratic Equations", "Algebra"],
  "confidence": 0.92,
  "suggestions": ["Check the discriminant sign earlier"]
}`

func TestParseAnalysis(t *testing.T) {
	analysis, err := ParseAnalysis(validAnalysisJSON)
	if err != nil {
		t.Fatalf("ParseAnalysis: %v", err)
	}

	if !analysis.IsCorrect {
		t.Error("is_correct = false, want true")
	}
	if len(analysis.Topics) != 2 || analysis.Topics[0] != "Quadratic Equations" {
		t.Errorf("topics = %v, want [Quadratic Equations Algebra]", analysis.Topics)
	}
	if analysis.Confidence != 0.92 {
		t.Errorf("confidence = %f, want 0.92", analysis.Confidence)
	}
}

func TestParseAnalysisCodeFences(t *testing.T) {
	fenced := "```json\n" + validAnalysisJSON + "\n```"
	analysis, err := ParseAnalysis(fenced)
	if err != nil {
		t.Fatalf("ParseAnalysis with fences: %v", err)
	}
	if !analysis.IsCorrect {
		t.Error("is_correct = false, want true")
	}

	bareFence := "```\n" + validAnalysisJSON + "\n```"
	if _, err := ParseAnalysis(bareFence); err != nil {
		t.Fatalf("ParseAnalysis with bare fences: %v", err)
	}
}

func TestParseAnalysisInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not JSON", "I think the answer looks right."},
		{"missing feedback", `{"is_correct": true, "topics": ["Algebra"], "confidence": 0.9}`},
		{"missing topics", `{"is_correct": true, "feedback": "ok", "confidence": 0.9}`},
		{"blank topics", `{"is_correct": true, "feedback": "ok", "topics": ["  ", ""], "confidence": 0.9}`},
		{"confidence out of range", `{"is_correct": true, "feedback": "ok", "topics": ["Algebra"], "confidence": 1.4}`},
	}

	for _, tt := range tests {
		if _, err := ParseAnalysis(tt.body); err == nil {
			t.Errorf("%s: ParseAnalysis succeeded, want error", tt.name)
		}
	}
}

func TestParseAnalysisTrimsBlankTopics(t *testing.T) {
	body := `{"is_correct": false, "feedback": "wrong sign", "topics": [" Integrals ", "", "Calculus"], "confidence": 0.8}`
	analysis, err := ParseAnalysis(body)
	if err != nil {
		t.Fatalf("ParseAnalysis: %v", err)
	}
	if len(analysis.Topics) != 2 {
		t.Fatalf("topics = %v, want 2 entries", analysis.Topics)
	}
	for _, topic := range analysis.Topics {
		if topic != strings.TrimSpace(topic) || topic == "" {
			t.Errorf("topic %q not trimmed", topic)
		}
	}
}

func TestFallbackAnalysis(t *testing.T) {
	fallback := FallbackAnalysis()
	if fallback.IsCorrect {
		t.Error("fallback marked correct")
	}
	if len(fallback.Topics) == 0 {
		t.Error("fallback has no topics")
	}
	if fallback.Confidence != 0.5 {
		t.Errorf("fallback confidence = %f, want 0.5", fallback.Confidence)
	}
}
