package handlers

import "github.com/gofiber/fiber/v2"

// Register mounts the public API on app.
func Register(app *fiber.App, uploadHandler *UploadHandler, interviewHandler *InterviewHandler) {
	app.Get("/health/", HandleHealth)

	app.Post("/parse-resume/", uploadHandler.HandleParseResume)
	app.Post("/generate-questions", interviewHandler.HandleGenerateQuestions)
	app.Post("/evaluate-answer", interviewHandler.HandleEvaluateAnswer)
	app.Post("/final-summary", HandleFinalSummary)
}

// ErrorHandler renders fiber errors as {detail, code}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"detail": err.Error(),
		"code":   code,
	})
}
