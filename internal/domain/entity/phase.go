package entity

import "time"

// Phase es una etapa ordenada dentro de una categoría.
// PhaseNumber es único por categoría.
type Phase struct {
	ID          string
	CategoryID  string
	Title       string
	PhaseNumber int
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
