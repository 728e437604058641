package models

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Weight is the multiplier used by the final summary. Unknown difficulties weigh 1.
func (d Difficulty) Weight() float64 {
	switch d {
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	default:
		return 1
	}
}

type Question struct {
	ID         string     `json:"id"`
	Difficulty Difficulty `json:"difficulty"`
	Text       string     `json:"text"`
	TimeLimit  int        `json:"time_limit"`
}

type AnswerEvaluation struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// AnswerRecord is one scored answer fed into the final summary. Extra keys sent by
// clients (question_id, answer_text, ...) are ignored.
type AnswerRecord struct {
	Score      float64    `json:"score"`
	Difficulty Difficulty `json:"difficulty"`
}

type FinalSummary struct {
	FinalScore   float64 `json:"final_score"`
	FinalPercent float64 `json:"final_percent"`
	Summary      string  `json:"summary"`
}
