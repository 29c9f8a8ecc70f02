package repository

import (
	"context"
	"time"

	"github.com/jhoicas/process-hub/internal/domain/entity"
)

// StepPatch campos actualizables de un paso; nil = sin cambio.
type StepPatch struct {
	Title     *string
	Content   *string
	Status    *entity.StepStatus
	Notes     *string
	UpdatedAt time.Time
}

// StepRepository define el puerto de persistencia para Step.
// Create devuelve domain.ErrDuplicate si el código ya existe en la fase o el ID está tomado.
type StepRepository interface {
	Create(ctx context.Context, step *entity.Step) error
	GetByID(ctx context.Context, id string) (*entity.Step, error)
	GetByPhaseAndCode(ctx context.Context, phaseID, code string) (*entity.Step, error)
	List(ctx context.Context) ([]*entity.Step, error)
	ListByPhases(ctx context.Context, phaseIDs []string) ([]*entity.Step, error)
	// Update aplica el patch; devuelve (encontrado, modificado).
	Update(ctx context.Context, id string, patch StepPatch) (matched bool, modified bool, err error)
}
