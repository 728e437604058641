package services

import (
	"encoding/json"

	"alfredoptarigan/interview-assessor/internal/models"
)

const (
	easyTimeLimit   = 20
	mediumTimeLimit = 60
	hardTimeLimit   = 120
)

var staticQuestionBank = [...]models.Question{
	{ID: "q1", Difficulty: models.DifficultyEasy, Text: "What is JSX in React?", TimeLimit: easyTimeLimit},
	{ID: "q2", Difficulty: models.DifficultyEasy, Text: "Difference between let and var in JavaScript?", TimeLimit: easyTimeLimit},
	{ID: "q3", Difficulty: models.DifficultyMedium, Text: "Explain the Virtual DOM in React and how reconciliation works.", TimeLimit: mediumTimeLimit},
	{ID: "q4", Difficulty: models.DifficultyMedium, Text: "How do you design RESTful APIs in Node.js? Give an example flow.", TimeLimit: mediumTimeLimit},
	{ID: "q5", Difficulty: models.DifficultyHard, Text: "How would you optimize a Node.js application handling heavy I/O and CPU-bound tasks?", TimeLimit: hardTimeLimit},
	{ID: "q6", Difficulty: models.DifficultyHard, Text: "Explain tradeoffs of SSR vs CSR vs ISR for a React app and when you'd choose each.", TimeLimit: hardTimeLimit},
}

// StaticQuestionBank returns a copy of the fallback question set, ordered easy to hard.
func StaticQuestionBank() []models.Question {
	bank := staticQuestionBank
	return bank[:]
}

// staticQuestionsJSON is the bank in the same raw form generated questions take.
func staticQuestionsJSON() []json.RawMessage {
	bank := StaticQuestionBank()
	out := make([]json.RawMessage, 0, len(bank))
	for _, q := range bank {
		b, err := json.Marshal(q)
		if err != nil {
			panic(err)
		}
		out = append(out, b)
	}
	return out
}
