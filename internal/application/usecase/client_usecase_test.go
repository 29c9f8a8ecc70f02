package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/process-hub/internal/application/dto"
	"github.com/jhoicas/process-hub/internal/application/usecase"
	"github.com/jhoicas/process-hub/internal/domain"
	"github.com/jhoicas/process-hub/internal/infrastructure/memory"
)

func TestClientUseCase_CreateYList(t *testing.T) {
	uc := usecase.NewClientUseCase(memory.NewStore().Clients())
	ctx := context.Background()

	a, err := uc.Create(ctx, dto.CreateClientRequest{Name: "Zeta Café"})
	require.NoError(t, err)
	assert.Equal(t, "zeta-cafe", a.ID)

	b, err := uc.Create(ctx, dto.CreateClientRequest{Name: "Zeta Cafe"})
	require.NoError(t, err)
	assert.NotEqual(t, "zeta-cafe", b.ID, "colisión de slug genera un ID nuevo")

	_, err = uc.Create(ctx, dto.CreateClientRequest{ID: "zeta-cafe", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateClientRequest{Name: "Acme"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateClientRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Acme", list[0].Name)
}
