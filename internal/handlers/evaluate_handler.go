package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-assessor/internal/models"
	"alfredoptarigan/interview-assessor/internal/services"
)

var validate = newValidator()

// newValidator reports fields by their json names so error details match the wire keys.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type InterviewHandler struct {
	interviewService services.InterviewService
}

func NewInterviewHandler(interviewService services.InterviewService) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
	}
}

// HandleGenerateQuestions handles POST /generate-questions. An empty or missing body
// means the default role.
func (h *InterviewHandler) HandleGenerateQuestions(c *fiber.Ctx) error {
	var req models.GenerateQuestionsRequest

	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"detail": "Invalid request payload",
			})
		}
	}

	set := h.interviewService.GenerateQuestions(c.UserContext(), req.Role)

	return c.JSON(models.GenerateQuestionsResponse{Questions: set.Questions})
}

// HandleEvaluateAnswer handles POST /evaluate-answer
func (h *InterviewHandler) HandleEvaluateAnswer(c *fiber.Ctx) error {
	var req models.EvaluateAnswerRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": "Invalid request payload",
		})
	}

	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": validationDetail(err),
		})
	}

	evaluation := h.interviewService.EvaluateAnswer(c.UserContext(), req)

	return c.JSON(evaluation)
}

func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return "Missing required fields: " + strings.Join(fields, ", ")
}
