package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/process-hub/internal/application/dto"
	"github.com/jhoicas/process-hub/internal/application/process"
)

// CatalogHandler maneja categorías, fases y pasos.
type CatalogHandler struct {
	uc *process.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *process.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListCategories godoc
// @Summary      Listar categorías con fases y pasos anidados
// @Tags         categories
// @Produce      json
// @Success      200  {array}   dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.uc.ListCategories(c.UserContext())
	if err != nil {
		return writeError(c, err, errText{fiber.StatusInternalServerError: "Failed to fetch categories"})
	}
	return c.JSON(out)
}

// GetCategory godoc
// @Summary      Obtener una categoría anidada
// @Tags         categories
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	out, err := h.uc.GetCategory(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, errText{
			fiber.StatusNotFound:            "Category not found",
			fiber.StatusInternalServerError: "Failed to fetch category",
		})
	}
	return c.JSON(out)
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "title, icon, description"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateCategory(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, errText{
			fiber.StatusBadRequest:          "Missing required fields",
			fiber.StatusConflict:            "Category already exists",
			fiber.StatusInternalServerError: "Failed to create category",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreatePhase godoc
// @Summary      Crear fase
// @Tags         phases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePhaseRequest  true  "categoryId, title, phaseNumber"
// @Success      201   {object}  dto.CreatePhaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/phases [post]
func (h *CatalogHandler) CreatePhase(c *fiber.Ctx) error {
	var in dto.CreatePhaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreatePhase(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, errText{
			fiber.StatusBadRequest:          "Missing required fields",
			fiber.StatusNotFound:            "Category not found",
			fiber.StatusConflict:            "Phase with this number already exists in this category",
			fiber.StatusInternalServerError: "Failed to create phase",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateStep godoc
// @Summary      Crear paso
// @Tags         steps
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStepRequest  true  "phaseId, code, title"
// @Success      201   {object}  dto.CreateStepResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/steps [post]
func (h *CatalogHandler) CreateStep(c *fiber.Ctx) error {
	var in dto.CreateStepRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateStep(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, errText{
			fiber.StatusBadRequest:          "Missing required fields",
			fiber.StatusNotFound:            "Phase not found",
			fiber.StatusConflict:            "Step with this code already exists in this phase",
			fiber.StatusInternalServerError: "Failed to create step",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStep godoc
// @Summary      Actualizar paso (parcial)
// @Tags         steps
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        stepId  path  string                 true  "ID del paso"
// @Param        body    body  dto.UpdateStepRequest  true  "title, content, status, notes"
// @Success      200     {object}  dto.UpdateStepResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/steps/{stepId} [put]
func (h *CatalogHandler) UpdateStep(c *fiber.Ctx) error {
	var in dto.UpdateStepRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStep(c.UserContext(), c.Params("stepId"), in)
	if err != nil {
		return writeError(c, err, errText{
			fiber.StatusBadRequest:          "Invalid step update",
			fiber.StatusNotFound:            "Step not found",
			fiber.StatusInternalServerError: "Failed to update step",
		})
	}
	return c.JSON(out)
}
