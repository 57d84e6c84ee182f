package priority

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeScoreFirstAttempt(t *testing.T) {
	// No history: the score just anchors the baseline, regardless of
	// correctness, so long as confidence is high.
	got := ComputeScore(InitialScore, 0, 0, true, 0.9)
	if !almostEqual(got, InitialScore) {
		t.Errorf("ComputeScore first attempt correct = %f, want %f", got, InitialScore)
	}

	got = ComputeScore(InitialScore, 0, 0, false, 0.9)
	if !almostEqual(got, InitialScore) {
		t.Errorf("ComputeScore first attempt incorrect = %f, want %f", got, InitialScore)
	}

	// Neutral even at low confidence.
	got = ComputeScore(InitialScore, 0, 0, false, 0.2)
	if !almostEqual(got, InitialScore) {
		t.Errorf("ComputeScore first attempt low confidence = %f, want %f", got, InitialScore)
	}
}

func TestComputeScoreCorrect(t *testing.T) {
	tests := []struct {
		name      string
		attempted int
		correct   int
		want      float64
	}{
		{"high success rate", 10, 9, 0.7}, // rate 0.9 > 0.8 → ×0.7
		{"moderate success rate", 10, 7, 0.9}, // rate 0.7 > 0.6 → ×0.9
		{"low success rate", 10, 5, 1.0},  // rate 0.5 → unchanged
		{"boundary 0.8 not exceeded", 10, 8, 0.9},
		{"boundary 0.6 not exceeded", 10, 6, 1.0},
	}

	for _, tt := range tests {
		got := ComputeScore(1.0, tt.attempted, tt.correct, true, 0.9)
		if !almostEqual(got, tt.want) {
			t.Errorf("%s: ComputeScore = %f, want %f", tt.name, got, tt.want)
		}
	}
}

func TestComputeScoreIncorrect(t *testing.T) {
	tests := []struct {
		name      string
		attempted int
		correct   int
		want      float64
	}{
		{"low success rate", 10, 2, 1.5},      // rate 0.2 < 0.3 → ×1.5
		{"moderate success rate", 10, 5, 1.2}, // rate 0.5 < 0.6 → ×1.2
		{"high success rate", 10, 8, 1.1},     // rate 0.8 → ×1.1
		{"boundary 0.3 not below", 10, 3, 1.2},
		{"boundary 0.6 not below", 10, 6, 1.1},
	}

	for _, tt := range tests {
		got := ComputeScore(1.0, tt.attempted, tt.correct, false, 0.9)
		if !almostEqual(got, tt.want) {
			t.Errorf("%s: ComputeScore = %f, want %f", tt.name, got, tt.want)
		}
	}
}

func TestComputeScoreLowConfidence(t *testing.T) {
	// Low-confidence incorrect answer compounds: 1.0 × 1.5 × 1.1.
	got := ComputeScore(1.0, 10, 2, false, 0.5)
	if !almostEqual(got, 1.65) {
		t.Errorf("ComputeScore low confidence incorrect = %f, want 1.65", got)
	}

	// Low confidence nudges upward even on a correct answer.
	got = ComputeScore(1.0, 10, 5, true, 0.5)
	if !almostEqual(got, 1.1) {
		t.Errorf("ComputeScore low confidence correct = %f, want 1.1", got)
	}

	// Threshold itself counts as confident.
	got = ComputeScore(1.0, 10, 5, true, ConfidenceThreshold)
	if !almostEqual(got, 1.0) {
		t.Errorf("ComputeScore at threshold = %f, want 1.0", got)
	}
}

func TestComputeScoreClamping(t *testing.T) {
	// Floor: a long correct streak never drives the score below 0.1.
	score := InitialScore
	for i := 0; i < 20; i++ {
		score = ComputeScore(score, 10, 9, true, 0.9)
	}
	if !almostEqual(score, MinScore) {
		t.Errorf("score after correct streak = %f, want floor %f", score, MinScore)
	}

	// Ceiling: a long wrong streak stops at the cap.
	score = InitialScore
	for i := 0; i < 20; i++ {
		score = ComputeScore(score, 10, 1, false, 0.5)
	}
	if !almostEqual(score, MaxScore) {
		t.Errorf("score after wrong streak = %f, want ceiling %f", score, MaxScore)
	}
}

func TestSuccessRate(t *testing.T) {
	if got := SuccessRate(0, 0); got != 0 {
		t.Errorf("SuccessRate(0, 0) = %f, want 0", got)
	}
	if got := SuccessRate(4, 3); !almostEqual(got, 0.75) {
		t.Errorf("SuccessRate(4, 3) = %f, want 0.75", got)
	}
}

func TestRecommendation(t *testing.T) {
	tests := []struct {
		attempted int
		correct   int
		want      string
	}{
		{10, 9, "Review briefly - you're doing well!"},
		{10, 8, "Review briefly - you're doing well!"},
		{10, 7, "Practice more problems - you're on the right track"},
		{10, 6, "Practice more problems - you're on the right track"},
		{10, 5, "Focus on this topic - review concepts and practice"},
		{10, 4, "Focus on this topic - review concepts and practice"},
		{10, 3, "High priority - review fundamentals and practice extensively"},
		{0, 0, "High priority - review fundamentals and practice extensively"},
	}

	for _, tt := range tests {
		got := Recommendation(tt.attempted, tt.correct)
		if got != tt.want {
			t.Errorf("Recommendation(%d, %d) = %q, want %q", tt.attempted, tt.correct, got, tt.want)
		}
	}
}
