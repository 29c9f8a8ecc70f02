package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/process-hub/internal/application/dto"
	"github.com/jhoicas/process-hub/internal/application/tracking"
)

// SessionHandler cronómetros de edición de pasos. Cada usuario ve solo sus sesiones.
type SessionHandler struct {
	sessions *tracking.SessionManager
}

// NewSessionHandler construye el handler.
func NewSessionHandler(sessions *tracking.SessionManager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

var sessionErrors = errText{
	fiber.StatusBadRequest:          "Missing required fields",
	fiber.StatusNotFound:            "Session not found",
	fiber.StatusConflict:            "Invalid stopwatch transition",
	fiber.StatusInternalServerError: "Failed to update session",
}

// Open godoc
// @Summary      Abrir sesión de cronómetro sobre un paso
// @Tags         time-tracking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenSessionRequest  true  "paso y cliente"
// @Success      201   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/time-tracking/sessions [post]
func (h *SessionHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.sessions.Open(GetUserID(c), in)
	if err != nil {
		return writeError(c, err, sessionErrors)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Sesiones abiertas del usuario
// @Tags         time-tracking
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SessionResponse
// @Router       /api/time-tracking/sessions [get]
func (h *SessionHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.sessions.List(GetUserID(c)))
}

// Get godoc
// @Summary      Estado de una sesión
// @Tags         time-tracking
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/time-tracking/sessions/{id} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	out, err := h.sessions.Get(GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err, sessionErrors)
	}
	return c.JSON(out)
}

// Start godoc
// @Summary      Iniciar o reanudar el cronómetro
// @Tags         time-tracking
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/time-tracking/sessions/{id}/start [post]
func (h *SessionHandler) Start(c *fiber.Ctx) error {
	return h.transition(c, h.sessions.Start)
}

// Pause godoc
// @Summary      Pausar el cronómetro
// @Tags         time-tracking
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/time-tracking/sessions/{id}/pause [post]
func (h *SessionHandler) Pause(c *fiber.Ctx) error {
	return h.transition(c, h.sessions.Pause)
}

// Reset godoc
// @Summary      Reiniciar el cronómetro (descarta lo acumulado)
// @Tags         time-tracking
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/time-tracking/sessions/{id}/reset [post]
func (h *SessionHandler) Reset(c *fiber.Ctx) error {
	return h.transition(c, h.sessions.Reset)
}

// Close godoc
// @Summary      Cerrar la sesión y registrar su tiempo
// @Tags         time-tracking
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.CloseSessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/time-tracking/sessions/{id}/close [post]
func (h *SessionHandler) Close(c *fiber.Ctx) error {
	out, err := h.sessions.Close(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err, sessionErrors)
	}
	return c.JSON(out)
}

func (h *SessionHandler) transition(c *fiber.Ctx, fn func(userID, id string) (*dto.SessionResponse, error)) error {
	out, err := fn(GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err, sessionErrors)
	}
	return c.JSON(out)
}
