package analysis

import "fmt"

func TranscribeSystemPrompt() string {
	return `You are an expert at reading handwritten and typed student work.
Transcribe everything written in the provided file: the problem statement if
visible, every step of the student's work, and the final answer. Preserve
mathematical notation in plain text. Output only the transcription.`
}

func TranscribeUserPrompt() string {
	return "Transcribe all student work in this file."
}

func AnalyzeSystemPrompt() string {
	return `You are an expert tutor grading a student's practice work before an
exam. Given transcribed work, judge whether the final answer and reasoning are
correct, and identify the topics the question covers.

Respond with ONLY a JSON object in this exact shape:
{
  "is_correct": boolean,
  "feedback": "detailed explanation of what is right or wrong",
  "topics": ["topic1", "topic2"],
  "confidence": 0.95,
  "suggestions": ["specific improvement 1"]
}

confidence is your certainty in the judgment, between 0.0 and 1.0. List the
3-5 most relevant topics. No markdown, no prose outside the JSON.`
}

func BuildAnalyzeUserPrompt(extractedText string) string {
	return fmt.Sprintf("Grade the following transcribed student work:\n\n%s", extractedText)
}
