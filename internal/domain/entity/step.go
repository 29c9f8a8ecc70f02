package entity

import "time"

// StepStatus estado de avance de un paso.
type StepStatus string

// Estados válidos para Step.
const (
	StepPending    StepStatus = "pending"
	StepInProgress StepStatus = "in-progress"
	StepCompleted  StepStatus = "completed"
)

// Valid indica si el estado pertenece al conjunto permitido.
func (s StepStatus) Valid() bool {
	switch s {
	case StepPending, StepInProgress, StepCompleted:
		return true
	}
	return false
}

// Step es la tarea atómica de una fase, identificada por un código con puntos ("2.3").
// Code es único por fase; ID suele coincidir con Code.
type Step struct {
	ID        string
	PhaseID   string
	Code      string
	Title     string
	Content   string // markdown del procedimiento
	Icon      string
	Status    StepStatus
	Notes     string // notas de mejora
	CreatedAt time.Time
	UpdatedAt time.Time
}
