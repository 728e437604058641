package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-assessor/internal/models"
	"alfredoptarigan/interview-assessor/internal/services"
)

// HandleHealth handles GET /health/
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// HandleFinalSummary handles POST /final-summary
func HandleFinalSummary(c *fiber.Ctx) error {
	var req models.FinalSummaryRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": "Invalid request payload",
		})
	}

	return c.JSON(services.Summarize(req.CandidateName, req.Answers))
}
