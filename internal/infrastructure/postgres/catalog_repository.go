package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/process-hub/internal/domain"
	"github.com/jhoicas/process-hub/internal/domain/entity"
	"github.com/jhoicas/process-hub/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.PhaseRepository    = (*PhaseRepo)(nil)
	_ repository.StepRepository     = (*StepRepo)(nil)
)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{pool: pool}
}

const categoryColumns = `id, title, icon, description, created_at, updated_at`

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO process_categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query, c.ID, c.Title, c.Icon, c.Description, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID; (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM process_categories WHERE id = $1`
	c, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// List devuelve todas las categorías.
func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+categoryColumns+` FROM process_categories ORDER BY title, id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var out []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Touch actualiza updated_at.
func (r *CategoryRepo) Touch(ctx context.Context, id string, at time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE process_categories SET updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("touch category: %w", err)
	}
	return nil
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.Title, &c.Icon, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// PhaseRepo implementación del puerto PhaseRepository sobre PostgreSQL.
type PhaseRepo struct {
	pool *pgxpool.Pool
}

// NewPhaseRepository construye el adaptador de persistencia para fases.
func NewPhaseRepository(pool *pgxpool.Pool) *PhaseRepo {
	return &PhaseRepo{pool: pool}
}

const phaseColumns = `id, category_id, title, phase_number, description, created_at, updated_at`

// Create persiste una fase. El constraint (category_id, phase_number) produce ErrDuplicate.
func (r *PhaseRepo) Create(ctx context.Context, p *entity.Phase) error {
	query := `
		INSERT INTO process_phases (` + phaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query,
		p.ID, p.CategoryID, p.Title, p.PhaseNumber, p.Description, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, p.CategoryID)
		}
		return fmt.Errorf("insert phase: %w", err)
	}
	return nil
}

// GetByID obtiene una fase por ID; (nil, nil) si no existe.
func (r *PhaseRepo) GetByID(ctx context.Context, id string) (*entity.Phase, error) {
	return r.one(ctx, `SELECT `+phaseColumns+` FROM process_phases WHERE id = $1`, id)
}

// GetByCategoryAndNumber busca la fase con ese número dentro de la categoría.
func (r *PhaseRepo) GetByCategoryAndNumber(ctx context.Context, categoryID string, number int) (*entity.Phase, error) {
	return r.one(ctx, `SELECT `+phaseColumns+` FROM process_phases WHERE category_id = $1 AND phase_number = $2`, categoryID, number)
}

// List devuelve todas las fases.
func (r *PhaseRepo) List(ctx context.Context) ([]*entity.Phase, error) {
	return r.many(ctx, `SELECT `+phaseColumns+` FROM process_phases ORDER BY category_id, phase_number`)
}

// ListByCategory devuelve las fases de una categoría.
func (r *PhaseRepo) ListByCategory(ctx context.Context, categoryID string) ([]*entity.Phase, error) {
	return r.many(ctx, `SELECT `+phaseColumns+` FROM process_phases WHERE category_id = $1 ORDER BY phase_number`, categoryID)
}

func (r *PhaseRepo) one(ctx context.Context, query string, args ...any) (*entity.Phase, error) {
	p, err := scanPhase(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get phase: %w", err)
	}
	return p, nil
}

func (r *PhaseRepo) many(ctx context.Context, query string, args ...any) ([]*entity.Phase, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list phases: %w", err)
	}
	defer rows.Close()
	var out []*entity.Phase
	for rows.Next() {
		p, err := scanPhase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan phase: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPhase(row pgx.Row) (*entity.Phase, error) {
	var p entity.Phase
	if err := row.Scan(&p.ID, &p.CategoryID, &p.Title, &p.PhaseNumber, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// StepRepo implementación del puerto StepRepository sobre PostgreSQL.
type StepRepo struct {
	pool *pgxpool.Pool
}

// NewStepRepository construye el adaptador de persistencia para pasos.
func NewStepRepository(pool *pgxpool.Pool) *StepRepo {
	return &StepRepo{pool: pool}
}

const stepColumns = `id, phase_id, code, title, content, icon, status, notes, created_at, updated_at`

// Create persiste un paso. El constraint (phase_id, code) o un ID repetido producen ErrDuplicate.
func (r *StepRepo) Create(ctx context.Context, st *entity.Step) error {
	query := `
		INSERT INTO process_steps (` + stepColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		st.ID, st.PhaseID, st.Code, st.Title, st.Content, st.Icon, string(st.Status), st.Notes,
		st.CreatedAt, st.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return fmt.Errorf("%w: fase %s", domain.ErrNotFound, st.PhaseID)
		}
		return fmt.Errorf("insert step: %w", err)
	}
	return nil
}

// GetByID obtiene un paso por ID; (nil, nil) si no existe.
func (r *StepRepo) GetByID(ctx context.Context, id string) (*entity.Step, error) {
	return r.one(ctx, `SELECT `+stepColumns+` FROM process_steps WHERE id = $1`, id)
}

// GetByPhaseAndCode busca el paso con ese código dentro de la fase.
func (r *StepRepo) GetByPhaseAndCode(ctx context.Context, phaseID, code string) (*entity.Step, error) {
	return r.one(ctx, `SELECT `+stepColumns+` FROM process_steps WHERE phase_id = $1 AND code = $2`, phaseID, code)
}

// List devuelve todos los pasos.
func (r *StepRepo) List(ctx context.Context) ([]*entity.Step, error) {
	return r.many(ctx, `SELECT `+stepColumns+` FROM process_steps`)
}

// ListByPhases devuelve los pasos de las fases indicadas.
func (r *StepRepo) ListByPhases(ctx context.Context, phaseIDs []string) ([]*entity.Step, error) {
	if len(phaseIDs) == 0 {
		return nil, nil
	}
	return r.many(ctx, `SELECT `+stepColumns+` FROM process_steps WHERE phase_id = ANY($1)`, phaseIDs)
}

// Update aplica solo los campos presentes. Si ningún valor cambia no toca updated_at y modified es false.
func (r *StepRepo) Update(ctx context.Context, id string, patch repository.StepPatch) (bool, bool, error) {
	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}
	query := `
		UPDATE process_steps SET
			title      = COALESCE($2, title),
			content    = COALESCE($3, content),
			status     = COALESCE($4, status),
			notes      = COALESCE($5, notes),
			updated_at = $6
		WHERE id = $1 AND (
			($2::text IS NOT NULL AND title   IS DISTINCT FROM $2) OR
			($3::text IS NOT NULL AND content IS DISTINCT FROM $3) OR
			($4::text IS NOT NULL AND status  IS DISTINCT FROM $4) OR
			($5::text IS NOT NULL AND notes   IS DISTINCT FROM $5)
		)`
	cmd, err := r.pool.Exec(ctx, query, id, patch.Title, patch.Content, status, patch.Notes, patch.UpdatedAt)
	if err != nil {
		return false, false, fmt.Errorf("update step: %w", err)
	}
	if cmd.RowsAffected() > 0 {
		return true, true, nil
	}
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM process_steps WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, false, fmt.Errorf("check step: %w", err)
	}
	return exists, false, nil
}

func (r *StepRepo) one(ctx context.Context, query string, args ...any) (*entity.Step, error) {
	st, err := scanStep(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get step: %w", err)
	}
	return st, nil
}

func (r *StepRepo) many(ctx context.Context, query string, args ...any) ([]*entity.Step, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	defer rows.Close()
	var out []*entity.Step
	for rows.Next() {
		st, err := scanStep(rows)
		if err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func scanStep(row pgx.Row) (*entity.Step, error) {
	var st entity.Step
	var status string
	if err := row.Scan(&st.ID, &st.PhaseID, &st.Code, &st.Title, &st.Content, &st.Icon, &status, &st.Notes, &st.CreatedAt, &st.UpdatedAt); err != nil {
		return nil, err
	}
	st.Status = entity.StepStatus(status)
	return &st, nil
}
