package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-assessor/internal/services"
)

type UploadHandler struct {
	resumeService services.ResumeService
	uploadReader  services.UploadReader
}

func NewUploadHandler(
	resumeService services.ResumeService,
	uploadReader services.UploadReader,
) *UploadHandler {
	return &UploadHandler{
		resumeService: resumeService,
		uploadReader:  uploadReader,
	}
}

// HandleParseResume handles POST /parse-resume/
func (h *UploadHandler) HandleParseResume(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "No file uploaded. Send a multipart 'file' field.",
		})
	}

	if _, err := services.FormatFromFilename(file.Filename); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Unsupported file type. Upload PDF or DOCX.",
		})
	}

	data, err := h.uploadReader.ReadUpload(file)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, services.ErrFileTooLarge) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"detail": fmt.Sprintf("Failed to read upload: %v", err),
		})
	}

	result, err := h.resumeService.ParseResume(file.Filename, data)
	if err != nil {
		var parseErr *services.DocumentParseError
		if errors.As(err, &parseErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"detail": fmt.Sprintf("Error parsing %s: %v", parseErr.Format, parseErr.Err),
			})
		}
		if errors.Is(err, services.ErrUnsupportedFormat) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"detail": "Unsupported file type. Upload PDF or DOCX.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Failed to parse resume",
		})
	}

	return c.JSON(result)
}
