package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/curbwatch/internal/dto"
	"github.com/ahmetcoskunkizilkaya/curbwatch/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) CreateReport(c *fiber.Ctx) error {
	start := time.Now()

	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	report, err := h.reportService.CreateReport(c.UserContext(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: "Missing required fields",
			})
		case errors.Is(err, services.ErrInvalidPhoto):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: "Invalid photo",
			})
		case errors.Is(err, services.ErrInvalidField):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		}

		attrs := []any{
			"request_id", requestID(c),
			"action", "create_report",
			"path", c.Path(),
			"error", err.Error(),
			"latency_ms", time.Since(start).Milliseconds(),
		}
		var perr *services.PersistenceError
		if errors.As(err, &perr) {
			attrs = append(attrs, "report_id", perr.ReportID.String())
		}
		slog.Error("failed to create report", attrs...)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to create report",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateReportResponse{
		Success: true,
		Report:  report,
	})
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.Get(fiber.HeaderXRequestID)
}
