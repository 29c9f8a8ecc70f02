package entity

import "time"

// TimeLogEntry registro de tiempo dedicado a un paso. Solo se agrega; nunca se modifica ni se borra.
// Los títulos se guardan desnormalizados para que los reportes no dependan del catálogo actual.
type TimeLogEntry struct {
	ID            string
	UserID        string
	ClientID      string // vacío = sin cliente
	CategoryID    string
	CategoryTitle string
	PhaseID       string
	PhaseTitle    string
	StepID        string
	StepTitle     string
	StepCode      string
	Seconds       int
	Date          string // YYYY-MM-DD
	CreatedAt     time.Time
}
