package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/process-hub/internal/application/dto"
	"github.com/jhoicas/process-hub/internal/domain"
	"github.com/jhoicas/process-hub/internal/domain/entity"
	"github.com/jhoicas/process-hub/internal/domain/repository"
	"github.com/jhoicas/process-hub/pkg/slug"
)

// ClientUseCase casos de uso de clientes de la agencia.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// List devuelve los clientes ordenados por nombre.
func (uc *ClientUseCase) List(ctx context.Context) ([]dto.ClientResponse, error) {
	clients, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, dto.ClientResponse{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

// Create crea un cliente. Sin ID explícito se usa el slug del nombre, o un UUID si ya está tomado.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	explicit := strings.TrimSpace(in.ID)
	id := explicit
	if id == "" {
		id = slug.Make(name)
	}
	if id == "" {
		id = uuid.New().String()
	}

	client := &entity.Client{ID: id, Name: name}
	err := uc.repo.Create(ctx, client)
	if errors.Is(err, domain.ErrDuplicate) && explicit == "" {
		client.ID = uuid.New().String()
		err = uc.repo.Create(ctx, client)
	}
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: cliente %s", domain.ErrDuplicate, client.ID)
		}
		return nil, err
	}
	return &dto.ClientResponse{ID: client.ID, Name: client.Name}, nil
}
