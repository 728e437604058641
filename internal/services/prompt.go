package services

import (
	"fmt"

	"alfredoptarigan/interview-assessor/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildQuestionGenerationPrompt asks for the six-question set as a bare JSON array
func (pb *PromptBuilder) BuildQuestionGenerationPrompt(role string) string {
	return fmt.Sprintf(`You are an interview question generator for the role: %s.
Return EXACTLY 6 questions as a JSON array ONLY, nothing else.
Each question must have: id, difficulty, text, time_limit.
Order: 2 easy (%ds), 2 medium (%ds), 2 hard (%ds).
Do NOT include explanations, text, or Markdown.
The output must start with '[' and end with ']'.`,
		role, easyTimeLimit, mediumTimeLimit, hardTimeLimit)
}

// BuildAnswerEvaluationPrompt asks for a {score, feedback} object for one answer
func (pb *PromptBuilder) BuildAnswerEvaluationPrompt(questionText, answerText string, difficulty models.Difficulty) string {
	return fmt.Sprintf(`You are a senior interviewer evaluating candidate answers.
Question: %s
Candidate answer: %s
Difficulty: %s

Return ONLY valid JSON with exactly two fields:
 - score (integer from 0 to 10)
 - feedback (strictly one short sentence, max 15 words)
Example: {"score": 7, "feedback": "Good explanation but missing error handling."}
`,
		questionText, answerText, difficulty)
}
