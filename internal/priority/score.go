package priority

// Priority scores are clamped into [MinScore, MaxScore]: the floor keeps a
// mastered topic resurfacing occasionally, the ceiling stops a wrong streak
// from growing the score without bound.
const (
	MinScore     = 0.1
	MaxScore     = 10.0
	InitialScore = 1.0
)

// ConfidenceThreshold is the analysis confidence below which an outcome is
// treated as uncertain evidence and the priority nudged upward.
const ConfidenceThreshold = 0.7

// SuccessRate returns correct/attempted, or 0 when nothing was attempted.
func SuccessRate(attempted, correct int) float64 {
	if attempted == 0 {
		return 0
	}
	return float64(correct) / float64(attempted)
}

// ComputeScore returns the updated priority score for one question outcome.
// attempted and correct are the counters BEFORE this outcome is committed;
// the very first attempt leaves the score untouched since there is no
// history to judge against.
func ComputeScore(base float64, attempted, correct int, isCorrect bool, confidence float64) float64 {
	if attempted == 0 {
		return clampScore(base)
	}

	newScore := base
	rate := SuccessRate(attempted, correct)
	if isCorrect {
		switch {
		case rate > 0.8:
			newScore = base * 0.7
		case rate > 0.6:
			newScore = base * 0.9
		}
	} else {
		switch {
		case rate < 0.3:
			newScore = base * 1.5
		case rate < 0.6:
			newScore = base * 1.2
		default:
			newScore = base * 1.1
		}
	}

	if confidence < ConfidenceThreshold {
		newScore *= 1.1
	}

	return clampScore(newScore)
}

func clampScore(score float64) float64 {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// Recommendation maps a topic's success rate to a study recommendation.
func Recommendation(attempted, correct int) string {
	rate := SuccessRate(attempted, correct)
	switch {
	case rate >= 0.8:
		return "Review briefly - you're doing well!"
	case rate >= 0.6:
		return "Practice more problems - you're on the right track"
	case rate >= 0.4:
		return "Focus on this topic - review concepts and practice"
	default:
		return "High priority - review fundamentals and practice extensively"
	}
}
