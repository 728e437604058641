package services

import (
	"fmt"
	"strconv"

	"alfredoptarigan/interview-assessor/internal/models"
)

const maxAnswerScore = 10

// Summarize computes the difficulty-weighted final score. It makes no external calls.
// candidateName is accepted for request parity and does not affect the result.
func Summarize(candidateName string, answers []models.AnswerRecord) models.FinalSummary {
	var totalWeighted, totalMaxWeighted float64
	for _, a := range answers {
		w := a.Difficulty.Weight()
		totalWeighted += a.Score * w
		totalMaxWeighted += maxAnswerScore * w
	}

	var finalPercent, finalScore float64
	if totalMaxWeighted > 0 {
		ratio := totalWeighted / totalMaxWeighted
		finalPercent = roundOneDecimal(ratio * 100)
		finalScore = roundOneDecimal(ratio * 10)
	}

	return models.FinalSummary{
		FinalScore:   finalScore,
		FinalPercent: finalPercent,
		Summary: fmt.Sprintf("Candidate answered %d questions. Final Score: %s/10 (%s%%).",
			len(answers), formatOneDecimal(finalScore), formatOneDecimal(finalPercent)),
	}
}

// roundOneDecimal rounds the exact binary value half-to-even, via strconv's
// correctly rounded formatting.
func roundOneDecimal(v float64) float64 {
	rounded, _ := strconv.ParseFloat(formatOneDecimal(v), 64)
	return rounded
}

func formatOneDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
