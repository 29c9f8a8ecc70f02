package dto

// ErrorResponse cuerpo de error HTTP: error breve + detalle opcional.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse respuesta mínima de operaciones sin cuerpo propio.
type SuccessResponse struct {
	Success bool `json:"success"`
}
