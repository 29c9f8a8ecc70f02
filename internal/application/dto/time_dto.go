package dto

import "time"

// LogTimeRequest entrada para registrar tiempo. UserID se toma del token cuando existe.
type LogTimeRequest struct {
	UserID        string `json:"userId"`
	ClientID      string `json:"clientId"`
	CategoryID    string `json:"categoryId"`
	CategoryTitle string `json:"categoryTitle"`
	PhaseID       string `json:"phaseId"`
	PhaseTitle    string `json:"phaseTitle"`
	StepID        string `json:"stepId"`
	StepTitle     string `json:"stepTitle"`
	StepCode      string `json:"stepCode"`
	Seconds       *int   `json:"seconds"`
	Date          string `json:"date"` // YYYY-MM-DD; vacío = hoy (UTC)
}

// LogTimeResponse salida de POST /api/time-tracking/log.
type LogTimeResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// TimeLogResponse registro de tiempo tal como se almacenó.
type TimeLogResponse struct {
	ID            string    `json:"_id"`
	UserID        string    `json:"userId"`
	ClientID      string    `json:"clientId,omitempty"`
	CategoryID    string    `json:"categoryId"`
	CategoryTitle string    `json:"categoryTitle"`
	PhaseID       string    `json:"phaseId"`
	PhaseTitle    string    `json:"phaseTitle"`
	StepID        string    `json:"stepId"`
	StepTitle     string    `json:"stepTitle"`
	StepCode      string    `json:"stepCode"`
	Seconds       int       `json:"seconds"`
	Date          string    `json:"date"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TimeFilterRequest parámetros de consulta para summary, logs y reporte.
type TimeFilterRequest struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	UserID    string `query:"userId"`
}

// CategoryTotal total por categoría.
type CategoryTotal struct {
	Seconds       int     `json:"seconds"`
	Hours         float64 `json:"hours"`
	CategoryTitle string  `json:"categoryTitle"`
}

// PhaseTotal total por fase.
type PhaseTotal struct {
	Seconds    int     `json:"seconds"`
	Hours      float64 `json:"hours"`
	PhaseTitle string  `json:"phaseTitle"`
}

// StepTotal total por paso.
type StepTotal struct {
	Seconds   int     `json:"seconds"`
	Hours     float64 `json:"hours"`
	StepTitle string  `json:"stepTitle"`
}

// ClientTotal total por cliente.
type ClientTotal struct {
	Seconds    int     `json:"seconds"`
	Hours      float64 `json:"hours"`
	ClientName string  `json:"clientName"`
}

// DateTotal total por día.
type DateTotal struct {
	Seconds int     `json:"seconds"`
	Hours   float64 `json:"hours"`
}

// TimeSummaryResponse salida de GET /api/time-tracking/summary.
type TimeSummaryResponse struct {
	TotalSeconds int                      `json:"totalSeconds"`
	TotalHours   float64                  `json:"totalHours"`
	ByCategory   map[string]CategoryTotal `json:"byCategory"`
	ByPhase      map[string]PhaseTotal    `json:"byPhase"`
	ByStep       map[string]StepTotal     `json:"byStep"`
	ByClient     map[string]ClientTotal   `json:"byClient"`
	ByDate       map[string]DateTotal     `json:"byDate"`
}

// OpenSessionRequest abre una sesión de cronómetro sobre un paso.
type OpenSessionRequest struct {
	ClientID      string `json:"clientId"`
	CategoryID    string `json:"categoryId"`
	CategoryTitle string `json:"categoryTitle"`
	PhaseID       string `json:"phaseId"`
	PhaseTitle    string `json:"phaseTitle"`
	StepID        string `json:"stepId"`
	StepTitle     string `json:"stepTitle"`
	StepCode      string `json:"stepCode"`
}

// SessionResponse estado de una sesión de cronómetro.
type SessionResponse struct {
	ID                 string    `json:"id"`
	State              string    `json:"state"`
	AccumulatedSeconds int       `json:"accumulatedSeconds"`
	LiveSeconds        int       `json:"liveSeconds"`
	TotalSeconds       int       `json:"totalSeconds"`
	ClientID           string    `json:"clientId,omitempty"`
	CategoryID         string    `json:"categoryId"`
	PhaseID            string    `json:"phaseId"`
	StepID             string    `json:"stepId"`
	StepCode           string    `json:"stepCode"`
	OpenedAt           time.Time `json:"openedAt"`
}

// CloseSessionResponse resultado de cerrar una sesión.
type CloseSessionResponse struct {
	Success bool   `json:"success"`
	Logged  bool   `json:"logged"`
	Seconds int    `json:"seconds"`
	LogID   string `json:"logId,omitempty"`
}
