package memory

import (
	"context"
	"time"

	"github.com/jhoicas/process-hub/internal/domain"
	"github.com/jhoicas/process-hub/internal/domain/entity"
	"github.com/jhoicas/process-hub/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.PhaseRepository    = (*PhaseRepo)(nil)
	_ repository.StepRepository     = (*StepRepo)(nil)
)

// CategoryRepo categorías en memoria.
type CategoryRepo struct{ s *Store }

// Create inserta una categoría; ErrDuplicate si el ID existe.
func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[c.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *c
	r.s.categories[c.ID] = &cp
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// List devuelve todas las categorías.
func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Category, 0, len(r.s.categories))
	for _, k := range sortedKeys(r.s.categories) {
		cp := *r.s.categories[k]
		out = append(out, &cp)
	}
	return out, nil
}

// Touch actualiza UpdatedAt.
func (r *CategoryRepo) Touch(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.UpdatedAt = at
	return nil
}

// PhaseRepo fases en memoria.
type PhaseRepo struct{ s *Store }

// Create inserta una fase; ErrDuplicate si el ID o el número en la categoría ya existen.
func (r *PhaseRepo) Create(_ context.Context, p *entity.Phase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.phases[p.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, other := range r.s.phases {
		if other.CategoryID == p.CategoryID && other.PhaseNumber == p.PhaseNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.s.phases[p.ID] = &cp
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *PhaseRepo) GetByID(_ context.Context, id string) (*entity.Phase, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.phases[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// GetByCategoryAndNumber busca por número de fase dentro de la categoría.
func (r *PhaseRepo) GetByCategoryAndNumber(_ context.Context, categoryID string, number int) (*entity.Phase, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.phases {
		if p.CategoryID == categoryID && p.PhaseNumber == number {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// List devuelve todas las fases.
func (r *PhaseRepo) List(_ context.Context) ([]*entity.Phase, error) {
	return r.filter(func(*entity.Phase) bool { return true }), nil
}

// ListByCategory devuelve las fases de una categoría.
func (r *PhaseRepo) ListByCategory(_ context.Context, categoryID string) ([]*entity.Phase, error) {
	return r.filter(func(p *entity.Phase) bool { return p.CategoryID == categoryID }), nil
}

func (r *PhaseRepo) filter(keep func(*entity.Phase) bool) []*entity.Phase {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Phase
	for _, k := range sortedKeys(r.s.phases) {
		if p := r.s.phases[k]; keep(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out
}

// StepRepo pasos en memoria.
type StepRepo struct{ s *Store }

// Create inserta un paso; ErrDuplicate si el ID o el código en la fase ya existen.
func (r *StepRepo) Create(_ context.Context, st *entity.Step) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.steps[st.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, other := range r.s.steps {
		if other.PhaseID == st.PhaseID && other.Code == st.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *st
	r.s.steps[st.ID] = &cp
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *StepRepo) GetByID(_ context.Context, id string) (*entity.Step, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.steps[id]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

// GetByPhaseAndCode busca por código dentro de la fase.
func (r *StepRepo) GetByPhaseAndCode(_ context.Context, phaseID, code string) (*entity.Step, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, st := range r.s.steps {
		if st.PhaseID == phaseID && st.Code == code {
			cp := *st
			return &cp, nil
		}
	}
	return nil, nil
}

// List devuelve todos los pasos.
func (r *StepRepo) List(_ context.Context) ([]*entity.Step, error) {
	return r.filter(func(*entity.Step) bool { return true }), nil
}

// ListByPhases devuelve los pasos de las fases indicadas.
func (r *StepRepo) ListByPhases(_ context.Context, phaseIDs []string) ([]*entity.Step, error) {
	set := make(map[string]bool, len(phaseIDs))
	for _, id := range phaseIDs {
		set[id] = true
	}
	return r.filter(func(st *entity.Step) bool { return set[st.PhaseID] }), nil
}

func (r *StepRepo) filter(keep func(*entity.Step) bool) []*entity.Step {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Step
	for _, k := range sortedKeys(r.s.steps) {
		if st := r.s.steps[k]; keep(st) {
			cp := *st
			out = append(out, &cp)
		}
	}
	return out
}

// Update aplica el patch. modified es false si ningún campo cambió de valor.
func (r *StepRepo) Update(_ context.Context, id string, patch repository.StepPatch) (bool, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.steps[id]
	if !ok {
		return false, false, nil
	}
	modified := false
	if patch.Title != nil && *patch.Title != st.Title {
		st.Title = *patch.Title
		modified = true
	}
	if patch.Content != nil && *patch.Content != st.Content {
		st.Content = *patch.Content
		modified = true
	}
	if patch.Status != nil && *patch.Status != st.Status {
		st.Status = *patch.Status
		modified = true
	}
	if patch.Notes != nil && *patch.Notes != st.Notes {
		st.Notes = *patch.Notes
		modified = true
	}
	if modified {
		st.UpdatedAt = patch.UpdatedAt
	}
	return true, modified, nil
}
