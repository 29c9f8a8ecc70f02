package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/process-hub/internal/application/dto"
	"github.com/jhoicas/process-hub/internal/application/tracking"
)

// TimeHandler registro y consulta de tiempos.
type TimeHandler struct {
	uc *tracking.TimeTrackingUseCase
}

// NewTimeHandler construye el handler.
func NewTimeHandler(uc *tracking.TimeTrackingUseCase) *TimeHandler {
	return &TimeHandler{uc: uc}
}

// Log godoc
// @Summary      Registrar tiempo sobre un paso
// @Tags         time-tracking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LogTimeRequest  true  "categoryId, phaseId, stepId, seconds, date"
// @Success      201   {object}  dto.LogTimeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/time-tracking/log [post]
func (h *TimeHandler) Log(c *fiber.Ctx) error {
	var in dto.LogTimeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.LogTime(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err, errText{
			fiber.StatusBadRequest:          "Invalid time log",
			fiber.StatusInternalServerError: "Failed to log time",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Summary godoc
// @Summary      Resumen de tiempos por categoría, fase, paso, cliente y fecha
// @Tags         time-tracking
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  false  "YYYY-MM-DD"
// @Param        endDate    query  string  false  "YYYY-MM-DD"
// @Param        userId     query  string  false  "usuario"
// @Success      200  {object}  dto.TimeSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/time-tracking/summary [get]
func (h *TimeHandler) Summary(c *fiber.Ctx) error {
	var f dto.TimeFilterRequest
	if err := c.QueryParser(&f); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Summary(c.UserContext(), f)
	if err != nil {
		return writeError(c, err, errText{
			fiber.StatusBadRequest:          "Invalid date filter",
			fiber.StatusInternalServerError: "Failed to fetch time summary",
		})
	}
	return c.JSON(out)
}

// Logs godoc
// @Summary      Listar registros de tiempo (más recientes primero)
// @Tags         time-tracking
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  false  "YYYY-MM-DD"
// @Param        endDate    query  string  false  "YYYY-MM-DD"
// @Param        userId     query  string  false  "usuario"
// @Success      200  {array}  dto.TimeLogResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/time-tracking/logs [get]
func (h *TimeHandler) Logs(c *fiber.Ctx) error {
	var f dto.TimeFilterRequest
	if err := c.QueryParser(&f); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Logs(c.UserContext(), f)
	if err != nil {
		return writeError(c, err, errText{
			fiber.StatusBadRequest:          "Invalid date filter",
			fiber.StatusInternalServerError: "Failed to fetch time logs",
		})
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF de tiempos
// @Tags         time-tracking
// @Security     Bearer
// @Produce      application/pdf
// @Param        startDate  query  string  false  "YYYY-MM-DD"
// @Param        endDate    query  string  false  "YYYY-MM-DD"
// @Param        userId     query  string  false  "usuario"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/time-tracking/report.pdf [get]
func (h *TimeHandler) Report(c *fiber.Ctx) error {
	var f dto.TimeFilterRequest
	if err := c.QueryParser(&f); err != nil {
		return badBody(c)
	}
	pdf, name, err := h.uc.Report(c.UserContext(), f)
	if err != nil {
		return writeError(c, err, errText{
			fiber.StatusBadRequest:          "Invalid date filter",
			fiber.StatusInternalServerError: "Failed to generate report",
		})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(pdf)
}
