package process_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/process-hub/internal/application/dto"
	"github.com/jhoicas/process-hub/internal/application/process"
	"github.com/jhoicas/process-hub/internal/domain"
	"github.com/jhoicas/process-hub/internal/domain/entity"
	"github.com/jhoicas/process-hub/internal/infrastructure/memory"
)

func newCatalog(t *testing.T) (*process.CatalogUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := process.NewCatalogUseCase(store.Categories(), store.Phases(), store.Steps())
	_, err := uc.CreateCategory(context.Background(), dto.CreateCategoryRequest{Title: "SEO", Icon: "Search"})
	require.NoError(t, err)
	return uc, store
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func TestCreatePhase_IDConvencionYDuplicado(t *testing.T) {
	uc, _ := newCatalog(t)
	ctx := context.Background()

	out, err := uc.CreatePhase(ctx, dto.CreatePhaseRequest{CategoryID: "seo", Title: "Learning", PhaseNumber: intPtr(1)})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "seo-p1", out.Phase.ID)

	_, err = uc.CreatePhase(ctx, dto.CreatePhaseRequest{CategoryID: "seo", Title: "Otra", PhaseNumber: intPtr(1)})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "número de fase repetido en la categoría")
}

func TestCreatePhase_Validaciones(t *testing.T) {
	uc, _ := newCatalog(t)
	ctx := context.Background()

	_, err := uc.CreatePhase(ctx, dto.CreatePhaseRequest{CategoryID: "seo", Title: "Sin número"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreatePhase(ctx, dto.CreatePhaseRequest{CategoryID: "seo", Title: "Cero", PhaseNumber: intPtr(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreatePhase(ctx, dto.CreatePhaseRequest{CategoryID: "nope", Title: "X", PhaseNumber: intPtr(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateStep_DuplicadoEnFaseYColisionDeID(t *testing.T) {
	uc, _ := newCatalog(t)
	ctx := context.Background()
	_, err := uc.CreatePhase(ctx, dto.CreatePhaseRequest{CategoryID: "seo", Title: "Uno", PhaseNumber: intPtr(1)})
	require.NoError(t, err)
	_, err = uc.CreatePhase(ctx, dto.CreatePhaseRequest{CategoryID: "seo", Title: "Dos", PhaseNumber: intPtr(2)})
	require.NoError(t, err)

	first, err := uc.CreateStep(ctx, dto.CreateStepRequest{PhaseID: "seo-p1", Code: "1.1", Title: "Questions"})
	require.NoError(t, err)
	assert.Equal(t, "1.1", first.Step.ID)
	assert.Equal(t, "pending", first.Step.Status)

	_, err = uc.CreateStep(ctx, dto.CreateStepRequest{PhaseID: "seo-p1", Code: "1.1", Title: "Repetido"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// mismo código en otra fase: permitido, con ID calificado
	other, err := uc.CreateStep(ctx, dto.CreateStepRequest{PhaseID: "seo-p2", Code: "1.1", Title: "Otro"})
	require.NoError(t, err)
	assert.Equal(t, "seo-p2-1.1", other.Step.ID)
}

func TestCreateStep_IDCalificadoTambienOcupado(t *testing.T) {
	uc, store := newCatalog(t)
	ctx := context.Background()
	for _, n := range []int{1, 2} {
		_, err := uc.CreatePhase(ctx, dto.CreatePhaseRequest{CategoryID: "seo", Title: "F", PhaseNumber: intPtr(n)})
		require.NoError(t, err)
	}
	_, err := uc.CreateStep(ctx, dto.CreateStepRequest{PhaseID: "seo-p1", Code: "1.1", Title: "Questions"})
	require.NoError(t, err)
	// un paso de otra fase ya usa el ID calificado que le tocaría a seo-p2
	require.NoError(t, store.Steps().Create(ctx, &entity.Step{
		ID: "seo-p2-1.1", PhaseID: "seo-p1", Code: "9.9", Title: "Importado", Status: entity.StepPending,
	}))

	out, err := uc.CreateStep(ctx, dto.CreateStepRequest{PhaseID: "seo-p2", Code: "1.1", Title: "Otro"})
	require.NoError(t, err, "no es un duplicado en la fase")
	assert.NotEmpty(t, out.Step.ID)
	assert.NotEqual(t, "1.1", out.Step.ID)
	assert.NotEqual(t, "seo-p2-1.1", out.Step.ID)
	assert.Equal(t, "1.1", out.Step.Code)
}

func TestCreateStep_Validaciones(t *testing.T) {
	uc, _ := newCatalog(t)
	ctx := context.Background()
	_, err := uc.CreatePhase(ctx, dto.CreatePhaseRequest{CategoryID: "seo", Title: "Uno", PhaseNumber: intPtr(1)})
	require.NoError(t, err)

	_, err = uc.CreateStep(ctx, dto.CreateStepRequest{PhaseID: "seo-p1", Code: "abc", Title: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CreateStep(ctx, dto.CreateStepRequest{PhaseID: "seo-p1", Code: "1.2", Title: "X", Status: "done"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CreateStep(ctx, dto.CreateStepRequest{PhaseID: "missing", Code: "1.2", Title: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListCategories_OrdenNumerico(t *testing.T) {
	uc, _ := newCatalog(t)
	ctx := context.Background()
	for _, n := range []int{3, 1, 2} {
		_, err := uc.CreatePhase(ctx, dto.CreatePhaseRequest{CategoryID: "seo", Title: "F", PhaseNumber: intPtr(n)})
		require.NoError(t, err)
	}
	for _, code := range []string{"1.10", "1.2", "1.1"} {
		_, err := uc.CreateStep(ctx, dto.CreateStepRequest{PhaseID: "seo-p1", Code: code, Title: code})
		require.NoError(t, err)
	}

	cats, err := uc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	require.Len(t, cats[0].Phases, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{cats[0].Phases[0].PhaseNumber, cats[0].Phases[1].PhaseNumber, cats[0].Phases[2].PhaseNumber})

	var codes []string
	for _, s := range cats[0].Phases[0].Steps {
		codes = append(codes, s.Code)
	}
	assert.Equal(t, []string{"1.1", "1.2", "1.10"}, codes)
	assert.NotNil(t, cats[0].Phases[1].Steps, "fase sin pasos serializa []")
}

func TestUpdateStep_Parcial(t *testing.T) {
	uc, store := newCatalog(t)
	ctx := context.Background()
	_, err := uc.CreatePhase(ctx, dto.CreatePhaseRequest{CategoryID: "seo", Title: "Uno", PhaseNumber: intPtr(1)})
	require.NoError(t, err)
	_, err = uc.CreateStep(ctx, dto.CreateStepRequest{PhaseID: "seo-p1", Code: "1.1", Title: "Questions", Content: "original"})
	require.NoError(t, err)

	out, err := uc.UpdateStep(ctx, "1.1", dto.UpdateStepRequest{Status: strPtr("completed"), Notes: strPtr("ok")})
	require.NoError(t, err)
	assert.Equal(t, 1, out.ModifiedCount)

	step, err := store.Steps().GetByID(ctx, "1.1")
	require.NoError(t, err)
	assert.Equal(t, "completed", string(step.Status))
	assert.Equal(t, "ok", step.Notes)
	assert.Equal(t, "original", step.Content, "los campos no enviados no cambian")

	again, err := uc.UpdateStep(ctx, "1.1", dto.UpdateStepRequest{Status: strPtr("completed")})
	require.NoError(t, err)
	assert.Equal(t, 0, again.ModifiedCount)

	_, err = uc.UpdateStep(ctx, "1.1", dto.UpdateStepRequest{Status: strPtr("archived")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateStep(ctx, "9.9", dto.UpdateStepRequest{Notes: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetCategory_NoExiste(t *testing.T) {
	uc, _ := newCatalog(t)
	_, err := uc.GetCategory(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateCategory_Duplicada(t *testing.T) {
	uc, _ := newCatalog(t)
	_, err := uc.CreateCategory(context.Background(), dto.CreateCategoryRequest{Title: "seo"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestGetCategory_UpdatedAtSinEdicionUsaCreacion(t *testing.T) {
	uc, store := newCatalog(t)
	ctx := context.Background()
	created := time.Date(2025, 11, 4, 8, 30, 0, 0, time.UTC)
	require.NoError(t, store.Categories().Create(ctx, &entity.Category{ID: "ads", Title: "Ads", CreatedAt: created}))
	require.NoError(t, store.Categories().Create(ctx, &entity.Category{ID: "bare", Title: "Bare"}))

	ads, err := uc.GetCategory(ctx, "ads")
	require.NoError(t, err)
	assert.Equal(t, "2025-11-04T08:30:00Z", ads.UpdatedAt)

	bare, err := uc.GetCategory(ctx, "bare")
	require.NoError(t, err)
	assert.Empty(t, bare.UpdatedAt, "sin fechas no se inventa una")
}
