package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
)

func SetupRoutes(app *fiber.App, analyzeHandler *AnalyzeHandler) {
	app.Post("/analyze", analyzeHandler.HandleAnalyze)

	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/analyze", analyzeHandler.HandleAnalyze)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Analyzer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /analyze",
				"POST /api/v1/analyze",
				"GET /api/v1/health",
			},
		})
	})
}

// ErrorHandler answers errors that escape a handler, such as unknown routes or
// oversized bodies, in the same shape as analysis failures.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Success: false,
		Error:   message,
	})
}
