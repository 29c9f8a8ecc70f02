// Package process contiene los casos de uso del catálogo de procedimientos
// (categorías → fases → pasos).
package process

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/process-hub/internal/application/dto"
	"github.com/jhoicas/process-hub/internal/domain"
	"github.com/jhoicas/process-hub/internal/domain/entity"
	domainprocess "github.com/jhoicas/process-hub/internal/domain/process"
	"github.com/jhoicas/process-hub/internal/domain/repository"
	"github.com/jhoicas/process-hub/pkg/slug"
)

// CatalogUseCase lectura del catálogo anidado y altas/ediciones de fases y pasos.
type CatalogUseCase struct {
	categoryRepo repository.CategoryRepository
	phaseRepo    repository.PhaseRepository
	stepRepo     repository.StepRepository
	now          func() time.Time
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	categoryRepo repository.CategoryRepository,
	phaseRepo repository.PhaseRepository,
	stepRepo repository.StepRepository,
) *CatalogUseCase {
	return &CatalogUseCase{
		categoryRepo: categoryRepo,
		phaseRepo:    phaseRepo,
		stepRepo:     stepRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// ListCategories devuelve todas las categorías con fases y pasos anidados y ordenados.
func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("catálogo: listar categorías: %w", err)
	}
	phases, err := uc.phaseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("catálogo: listar fases: %w", err)
	}
	steps, err := uc.stepRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("catálogo: listar pasos: %w", err)
	}
	if len(categories) == 0 {
		log.Warn().Msg("catálogo vacío: no hay categorías")
	}

	trees := domainprocess.AssembleCatalog(categories, phases, steps)
	out := make([]dto.CategoryResponse, 0, len(trees))
	for _, t := range trees {
		out = append(out, toCategoryResponse(t))
	}
	return out, nil
}

// GetCategory devuelve una categoría anidada. ErrNotFound si no existe.
func (uc *CatalogUseCase) GetCategory(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catálogo: obtener categoría: %w", err)
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	phases, err := uc.phaseRepo.ListByCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catálogo: listar fases: %w", err)
	}
	phaseIDs := make([]string, 0, len(phases))
	for _, p := range phases {
		phaseIDs = append(phaseIDs, p.ID)
	}
	steps, err := uc.stepRepo.ListByPhases(ctx, phaseIDs)
	if err != nil {
		return nil, fmt.Errorf("catálogo: listar pasos: %w", err)
	}
	out := toCategoryResponse(domainprocess.AssembleCategory(category, phases, steps))
	return &out, nil
}

// CreateCategory crea una categoría. El ID se deriva del título si no se envía.
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title es requerido", domain.ErrInvalidInput)
	}
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = slug.Make(title)
	}
	if id == "" {
		return nil, fmt.Errorf("%w: no se pudo derivar un id del título", domain.ErrInvalidInput)
	}
	existing, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catálogo: verificar categoría: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe la categoría %q", domain.ErrDuplicate, id)
	}
	now := uc.now()
	category := &entity.Category{
		ID:          id,
		Title:       title,
		Icon:        in.Icon,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	out := toCategoryResponse(&domainprocess.CategoryTree{Category: category})
	return &out, nil
}

// CreatePhase crea una fase. El número de fase es único por categoría (ErrDuplicate).
func (uc *CatalogUseCase) CreatePhase(ctx context.Context, in dto.CreatePhaseRequest) (*dto.CreatePhaseResponse, error) {
	if in.CategoryID == "" || strings.TrimSpace(in.Title) == "" || in.PhaseNumber == nil {
		return nil, fmt.Errorf("%w: categoryId, title y phaseNumber son requeridos", domain.ErrInvalidInput)
	}
	number := *in.PhaseNumber
	if number < 1 {
		return nil, fmt.Errorf("%w: phaseNumber debe ser mayor o igual a 1", domain.ErrInvalidInput)
	}
	category, err := uc.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("catálogo: obtener categoría: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("%w: categoría %q", domain.ErrNotFound, in.CategoryID)
	}
	existing, err := uc.phaseRepo.GetByCategoryAndNumber(ctx, in.CategoryID, number)
	if err != nil {
		return nil, fmt.Errorf("catálogo: verificar fase: %w", err)
	}
	if existing != nil {
		log.Debug().Str("category_id", in.CategoryID).Int("phase_number", number).Msg("fase duplicada rechazada")
		return nil, fmt.Errorf("%w: ya existe una fase con ese número en la categoría", domain.ErrDuplicate)
	}

	now := uc.now()
	phase := &entity.Phase{
		ID:          fmt.Sprintf("%s-p%d", in.CategoryID, number),
		CategoryID:  in.CategoryID,
		Title:       strings.TrimSpace(in.Title),
		PhaseNumber: number,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.phaseRepo.Create(ctx, phase); err != nil {
		return nil, err
	}
	uc.touch(ctx, category.ID, now)
	return &dto.CreatePhaseResponse{
		Success: true,
		Phase: dto.PhaseCreated{
			ID:          phase.ID,
			CategoryID:  phase.CategoryID,
			Title:       phase.Title,
			Description: phase.Description,
			PhaseNumber: phase.PhaseNumber,
		},
	}, nil
}

// CreateStep crea un paso. El código es único por fase (ErrDuplicate).
// El ID es el código; si ese ID ya lo usa un paso de otra fase se antepone el ID de la fase.
func (uc *CatalogUseCase) CreateStep(ctx context.Context, in dto.CreateStepRequest) (*dto.CreateStepResponse, error) {
	code := strings.TrimSpace(in.Code)
	if in.PhaseID == "" || code == "" || strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: phaseId, code y title son requeridos", domain.ErrInvalidInput)
	}
	if !domainprocess.ValidCode(code) {
		return nil, fmt.Errorf("%w: code debe ser numérico separado por puntos (ej. 2.3)", domain.ErrInvalidInput)
	}
	status := entity.StepPending
	if in.Status != "" {
		status = entity.StepStatus(in.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: status inválido %q", domain.ErrInvalidInput, in.Status)
		}
	}
	phase, err := uc.phaseRepo.GetByID(ctx, in.PhaseID)
	if err != nil {
		return nil, fmt.Errorf("catálogo: obtener fase: %w", err)
	}
	if phase == nil {
		return nil, fmt.Errorf("%w: fase %q", domain.ErrNotFound, in.PhaseID)
	}
	existing, err := uc.stepRepo.GetByPhaseAndCode(ctx, in.PhaseID, code)
	if err != nil {
		return nil, fmt.Errorf("catálogo: verificar paso: %w", err)
	}
	if existing != nil {
		log.Debug().Str("phase_id", in.PhaseID).Str("code", code).Msg("paso duplicado rechazado")
		return nil, fmt.Errorf("%w: ya existe un paso con ese código en la fase", domain.ErrDuplicate)
	}

	id := code
	taken, err := uc.stepRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catálogo: verificar id de paso: %w", err)
	}
	if taken != nil {
		id = in.PhaseID + "-" + code
		taken, err = uc.stepRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("catálogo: verificar id de paso: %w", err)
		}
		if taken != nil {
			id = uuid.New().String()
		}
	}

	now := uc.now()
	step := &entity.Step{
		ID:        id,
		PhaseID:   in.PhaseID,
		Code:      code,
		Title:     strings.TrimSpace(in.Title),
		Content:   in.Content,
		Status:    status,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.stepRepo.Create(ctx, step); err != nil {
		return nil, err
	}
	uc.touch(ctx, phase.CategoryID, now)
	return &dto.CreateStepResponse{Success: true, Step: toStepResponse(step)}, nil
}

// UpdateStep aplica una edición parcial (estado, contenido, notas, título). La última escritura gana.
func (uc *CatalogUseCase) UpdateStep(ctx context.Context, id string, in dto.UpdateStepRequest) (*dto.UpdateStepResponse, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: stepId es requerido", domain.ErrInvalidInput)
	}
	now := uc.now()
	patch := repository.StepPatch{
		Title:     in.Title,
		Content:   in.Content,
		Notes:     in.Notes,
		UpdatedAt: now,
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, fmt.Errorf("%w: title no puede quedar vacío", domain.ErrInvalidInput)
	}
	if in.Status != nil {
		status := entity.StepStatus(*in.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: status inválido %q", domain.ErrInvalidInput, *in.Status)
		}
		patch.Status = &status
	}

	matched, modified, err := uc.stepRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("catálogo: actualizar paso: %w", err)
	}
	if !matched {
		return nil, domain.ErrNotFound
	}
	count := 0
	if modified {
		count = 1
		uc.touchByStep(ctx, id, now)
	}
	return &dto.UpdateStepResponse{Success: true, ModifiedCount: count}, nil
}

// touch marca la categoría como actualizada; un fallo aquí no invalida la operación principal.
func (uc *CatalogUseCase) touch(ctx context.Context, categoryID string, at time.Time) {
	if err := uc.categoryRepo.Touch(ctx, categoryID, at); err != nil && !errors.Is(err, domain.ErrNotFound) {
		log.Warn().Err(err).Str("category_id", categoryID).Msg("no se pudo actualizar updatedAt de la categoría")
	}
}

func (uc *CatalogUseCase) touchByStep(ctx context.Context, stepID string, at time.Time) {
	step, err := uc.stepRepo.GetByID(ctx, stepID)
	if err != nil || step == nil {
		return
	}
	phase, err := uc.phaseRepo.GetByID(ctx, step.PhaseID)
	if err != nil || phase == nil {
		return
	}
	uc.touch(ctx, phase.CategoryID, at)
}

func toCategoryResponse(t *domainprocess.CategoryTree) dto.CategoryResponse {
	c := t.Category
	updated := c.UpdatedAt
	if updated.IsZero() {
		updated = c.CreatedAt
	}
	updatedAt := ""
	if !updated.IsZero() {
		updatedAt = updated.UTC().Format(time.RFC3339)
	}
	out := dto.CategoryResponse{
		ID:          c.ID,
		Title:       c.Title,
		Icon:        c.Icon,
		Description: c.Description,
		UpdatedAt:   updatedAt,
		Phases:      make([]dto.PhaseResponse, 0, len(t.Phases)),
	}
	for _, p := range t.Phases {
		phase := dto.PhaseResponse{
			ID:          p.Phase.ID,
			Title:       p.Phase.Title,
			PhaseNumber: p.Phase.PhaseNumber,
			Description: p.Phase.Description,
			Steps:       make([]dto.StepResponse, 0, len(p.Steps)),
		}
		for _, s := range p.Steps {
			phase.Steps = append(phase.Steps, toStepResponse(s))
		}
		out.Phases = append(out.Phases, phase)
	}
	return out
}

func toStepResponse(s *entity.Step) dto.StepResponse {
	status := s.Status
	if status == "" {
		status = entity.StepPending
	}
	return dto.StepResponse{
		ID:      s.ID,
		Code:    s.Code,
		Title:   s.Title,
		Content: s.Content,
		Icon:    s.Icon,
		Status:  string(status),
		Notes:   s.Notes,
	}
}
