package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/process-hub/internal/application/dto"
	"github.com/jhoicas/process-hub/internal/application/usecase"
	"github.com/jhoicas/process-hub/internal/domain"
)

// RecordsHandler proxy de lectura a la tabla externa (Airtable).
type RecordsHandler struct {
	uc *usecase.RecordsUseCase
}

// NewRecordsHandler construye el handler.
func NewRecordsHandler(uc *usecase.RecordsUseCase) *RecordsHandler {
	return &RecordsHandler{uc: uc}
}

// List godoc
// @Summary      Todos los registros de la tabla externa
// @Tags         airtable
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RecordsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/airtable [get]
func (h *RecordsHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.Records(c.UserContext())
	if err != nil {
		if errors.Is(err, domain.ErrNotConfigured) {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error:   "Airtable not configured",
				Message: "AIRTABLE_SECRET_TOKEN, AIRTABLE_BASE_ID, and AIRTABLE_TABLE_ID must be set in environment variables",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:   "Failed to fetch Airtable data",
			Message: "Unable to retrieve data from Airtable",
		})
	}
	return c.JSON(out)
}
