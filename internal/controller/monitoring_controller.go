// FILE: internal/controller/monitoring_controller.go
package controller

import (
	"errors"
	"fmt"

	"github.com/mrayan007/MonitoringLitterDetection/internal/dto"
	"github.com/mrayan007/MonitoringLitterDetection/internal/pkg/serverutils"
	"github.com/mrayan007/MonitoringLitterDetection/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IMonitoringController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	FetchAndStore(ctx *fiber.Ctx) error
	GetRecords(ctx *fiber.Ctx) error
	GetRecordById(ctx *fiber.Ctx) error
	PredictLocation(ctx *fiber.Ctx) error
	PredictTemperature(ctx *fiber.Ctx) error
}

type monitoringController struct {
	monitoring service.IMonitoringService
	prediction service.IPredictionService
	validate   *validator.Validate
}

func NewMonitoringController(monitoring service.IMonitoringService, prediction service.IPredictionService) IMonitoringController {
	return &monitoringController{
		monitoring: monitoring,
		prediction: prediction,
		validate:   validator.New(),
	}
}

func (c *monitoringController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/monitoring")
	h.Post("/fetch-and-store", c.FetchAndStore)
	h.Get("/records", c.GetRecords)
	h.Get("/records/:id", c.GetRecordById)
	h.Post("/predict/location", jwtMiddleware, c.PredictLocation)
	h.Post("/predict/temperature", jwtMiddleware, c.PredictTemperature)
}

func (c *monitoringController) FetchAndStore(ctx *fiber.Ctx) error {
	report, err := c.monitoring.FetchAndStore(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).
			SendString(fmt.Sprintf("Fetch-and-store failed: %v", err))
	}
	return ctx.SendString(fmt.Sprintf(
		"Stored %d new litter records (%d fetched, %d skipped as duplicates)",
		report.Inserted, report.Fetched, report.Skipped,
	))
}

func (c *monitoringController) GetRecords(ctx *fiber.Ctx) error {
	records, err := c.monitoring.GetEnrichedLitters(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(records)
}

func (c *monitoringController) GetRecordById(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid record id"))
	}

	record, err := c.monitoring.GetEnrichedLitterById(ctx.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "record not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(record)
}

func (c *monitoringController) PredictLocation(ctx *fiber.Ctx) error {
	var req dto.PredictionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "category and dayOfWeek are required"))
	}

	res, err := c.prediction.PredictLocation(ctx.Context(), &req)
	if err != nil {
		return c.predictionError(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *monitoringController) PredictTemperature(ctx *fiber.Ctx) error {
	var req dto.PredictionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "category and dayOfWeek are required"))
	}

	res, err := c.prediction.PredictTemperature(ctx.Context(), &req)
	if err != nil {
		return c.predictionError(ctx, err)
	}
	return ctx.JSON(res)
}

// predictionError relays inference-service failures verbatim; everything
// else becomes a 500 diagnostic.
func (c *monitoringController) predictionError(ctx *fiber.Ctx, err error) error {
	var downstream *service.DownstreamError
	if errors.As(err, &downstream) {
		return ctx.Status(downstream.StatusCode).Send(downstream.Body)
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
}
