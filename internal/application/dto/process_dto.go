package dto

// CategoryResponse categoría con sus fases y pasos ya ordenados.
type CategoryResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Icon        string          `json:"icon"`
	Description string          `json:"description"`
	UpdatedAt   string          `json:"updatedAt"` // RFC 3339
	Phases      []PhaseResponse `json:"phases"`
}

// PhaseResponse fase dentro de una categoría.
type PhaseResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	PhaseNumber int            `json:"phaseNumber"`
	Description string         `json:"description"`
	Steps       []StepResponse `json:"steps"`
}

// StepResponse paso de una fase.
type StepResponse struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Icon    string `json:"icon,omitempty"`
	Status  string `json:"status"`
	Notes   string `json:"notes"`
}

// CreateCategoryRequest entrada para crear una categoría (solo admin). ID opcional: se deriva del título.
type CreateCategoryRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// CreatePhaseRequest entrada para crear una fase.
// PhaseNumber es puntero para distinguir "no enviado" de 0.
type CreatePhaseRequest struct {
	CategoryID  string `json:"categoryId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PhaseNumber *int   `json:"phaseNumber"`
}

// PhaseCreated fase recién creada.
type PhaseCreated struct {
	ID          string `json:"id"`
	CategoryID  string `json:"categoryId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PhaseNumber int    `json:"phaseNumber"`
}

// CreatePhaseResponse salida de POST /api/phases.
type CreatePhaseResponse struct {
	Success bool         `json:"success"`
	Phase   PhaseCreated `json:"phase"`
}

// CreateStepRequest entrada para crear un paso.
type CreateStepRequest struct {
	PhaseID string `json:"phaseId"`
	Code    string `json:"code"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status"`
	Notes   string `json:"notes"`
}

// CreateStepResponse salida de POST /api/steps.
type CreateStepResponse struct {
	Success bool         `json:"success"`
	Step    StepResponse `json:"step"`
}

// UpdateStepRequest actualización parcial de un paso; campos ausentes no se tocan.
type UpdateStepRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Status  *string `json:"status"`
	Notes   *string `json:"notes"`
}

// UpdateStepResponse salida de PUT /api/steps/:stepId.
type UpdateStepResponse struct {
	Success       bool `json:"success"`
	ModifiedCount int  `json:"modifiedCount"`
}
