package models

import "encoding/json"

type GenerateQuestionsRequest struct {
	Role string `json:"role"`
}

// GenerateQuestionsResponse carries model-generated questions untouched, or the
// static bank when generation fell back.
type GenerateQuestionsResponse struct {
	Questions []json.RawMessage `json:"questions"`
}

// EvaluateAnswerRequest requires answer_text to be present; an empty string is a
// valid (unanswered) value, hence the pointer.
type EvaluateAnswerRequest struct {
	QuestionID   string     `json:"question_id"`
	QuestionText string     `json:"question_text" validate:"required"`
	AnswerText   *string    `json:"answer_text" validate:"required"`
	Difficulty   Difficulty `json:"difficulty" validate:"required"`
}

func (r EvaluateAnswerRequest) Answer() string {
	if r.AnswerText == nil {
		return ""
	}
	return *r.AnswerText
}

type FinalSummaryRequest struct {
	CandidateName string         `json:"candidate_name"`
	Answers       []AnswerRecord `json:"answers"`
}
