package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/process-hub/internal/domain"
	"github.com/jhoicas/process-hub/internal/domain/entity"
	"github.com/jhoicas/process-hub/internal/domain/repository"
)

var (
	_ repository.ClientRepository  = (*ClientRepo)(nil)
	_ repository.TimeLogRepository = (*TimeLogRepo)(nil)
)

// ClientRepo implementación del puerto ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	pool *pgxpool.Pool
}

// NewClientRepository construye el adaptador de persistencia para clientes.
func NewClientRepository(pool *pgxpool.Pool) *ClientRepo {
	return &ClientRepo{pool: pool}
}

// Create persiste un cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO process_clients (id, name) VALUES ($1, $2)`, c.ID, c.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente; (nil, nil) si no existe.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	var c entity.Client
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM process_clients WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// List devuelve los clientes ordenados por nombre.
func (r *ClientRepo) List(ctx context.Context) ([]*entity.Client, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM process_clients ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var out []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// TimeLogRepo registros de tiempo append-only sobre PostgreSQL.
type TimeLogRepo struct {
	pool *pgxpool.Pool
}

// NewTimeLogRepository construye el adaptador de persistencia para registros de tiempo.
func NewTimeLogRepository(pool *pgxpool.Pool) *TimeLogRepo {
	return &TimeLogRepo{pool: pool}
}

// Append inserta un registro.
func (r *TimeLogRepo) Append(ctx context.Context, e *entity.TimeLogEntry) error {
	query := `
		INSERT INTO process_time_logs (
			id, user_id, client_id, category_id, category_title, phase_id, phase_title,
			step_id, step_title, step_code, seconds, log_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12::date, $13)`
	_, err := r.pool.Exec(ctx, query,
		e.ID, e.UserID, e.ClientID, e.CategoryID, e.CategoryTitle, e.PhaseID, e.PhaseTitle,
		e.StepID, e.StepTitle, e.StepCode, e.Seconds, e.Date, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert time log: %w", err)
	}
	return nil
}

// List devuelve los registros filtrados, más recientes primero.
func (r *TimeLogRepo) List(ctx context.Context, f repository.TimeLogFilter) ([]*entity.TimeLogEntry, error) {
	var (
		conds []string
		args  []any
	)
	if f.StartDate != "" {
		args = append(args, f.StartDate)
		conds = append(conds, fmt.Sprintf("log_date >= $%d::date", len(args)))
	}
	if f.EndDate != "" {
		args = append(args, f.EndDate)
		conds = append(conds, fmt.Sprintf("log_date <= $%d::date", len(args)))
	}
	if f.UserID != "" {
		args = append(args, f.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	query := `
		SELECT id, user_id, client_id, category_id, category_title, phase_id, phase_title,
		       step_id, step_title, step_code, seconds, to_char(log_date, 'YYYY-MM-DD'), created_at
		FROM process_time_logs`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list time logs: %w", err)
	}
	defer rows.Close()
	var out []*entity.TimeLogEntry
	for rows.Next() {
		var e entity.TimeLogEntry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.ClientID, &e.CategoryID, &e.CategoryTitle, &e.PhaseID, &e.PhaseTitle,
			&e.StepID, &e.StepTitle, &e.StepCode, &e.Seconds, &e.Date, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan time log: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
