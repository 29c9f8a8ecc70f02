package repository

import (
	"context"
	"time"

	"github.com/jhoicas/process-hub/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	// Touch actualiza UpdatedAt; se usa cuando cambia un paso de la categoría.
	Touch(ctx context.Context, id string, at time.Time) error
}
