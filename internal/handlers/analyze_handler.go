package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type AnalyzeHandler struct {
	analyzer services.AnalyzerService
	uploads  services.UploadService
	timeout  time.Duration
}

func NewAnalyzeHandler(
	analyzer services.AnalyzerService,
	uploads services.UploadService,
	timeout time.Duration,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		uploads:  uploads,
		timeout:  timeout,
	}
}

// HandleAnalyze handles POST /analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	requestID, _ := c.Locals("requestid").(string)

	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "failed to parse multipart form")
	}

	resumeFiles := form.File["resume"]
	if len(resumeFiles) == 0 {
		return badRequest(c, "resume file is required")
	}

	useGPT := false
	if values := form.Value["use_gpt"]; len(values) > 0 && values[0] != "" {
		useGPT, err = strconv.ParseBool(values[0])
		if err != nil {
			return badRequest(c, "use_gpt must be a boolean")
		}
	}

	resume, err := h.uploads.ReadUpload(resumeFiles[0])
	if err != nil {
		return uploadError(c, requestID, err)
	}

	var jd *models.Document
	if jdFiles := form.File["job_description"]; len(jdFiles) > 0 {
		doc, err := h.uploads.ReadUpload(jdFiles[0])
		if err != nil {
			return uploadError(c, requestID, err)
		}
		jd = &doc
	}

	ctx := c.UserContext()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	log.Printf("🔄 [%s] Analyzing %s (job description: %t)", requestID, resume.Filename, jd != nil)

	result, err := h.analyzer.AnalyzeDocuments(ctx, resume, jd, useGPT)
	if err != nil {
		log.Printf("❌ [%s] Analysis failed: %v", requestID, err)
		return c.Status(services.HTTPStatus(err)).JSON(models.ErrorResponse{
			Success: false,
			Error:   services.ClientMessage(err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(models.AnalyzeResponse{
		Success:        true,
		AnalysisResult: *result,
	})
}

func uploadError(c *fiber.Ctx, requestID string, err error) error {
	if errors.Is(err, services.ErrUnsupportedFileType) || errors.Is(err, services.ErrFileTooLarge) {
		return badRequest(c, err.Error())
	}

	log.Printf("❌ [%s] Failed to read upload: %v", requestID, err)
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Success: false,
		Error:   "internal server error",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
		Success: false,
		Error:   message,
	})
}
