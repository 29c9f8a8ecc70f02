package repository

import (
	"context"

	"github.com/jhoicas/process-hub/internal/domain/entity"
)

// PhaseRepository define el puerto de persistencia para Phase.
// Create devuelve domain.ErrDuplicate si ya existe el mismo PhaseNumber en la categoría.
type PhaseRepository interface {
	Create(ctx context.Context, phase *entity.Phase) error
	GetByID(ctx context.Context, id string) (*entity.Phase, error)
	GetByCategoryAndNumber(ctx context.Context, categoryID string, number int) (*entity.Phase, error)
	List(ctx context.Context) ([]*entity.Phase, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*entity.Phase, error)
}
