package repository

import (
	"context"

	"github.com/jhoicas/process-hub/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	// List devuelve los clientes ordenados por nombre.
	List(ctx context.Context) ([]*entity.Client, error)
}
