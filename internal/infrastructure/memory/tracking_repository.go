package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/process-hub/internal/domain"
	"github.com/jhoicas/process-hub/internal/domain/entity"
	"github.com/jhoicas/process-hub/internal/domain/repository"
)

var (
	_ repository.ClientRepository  = (*ClientRepo)(nil)
	_ repository.TimeLogRepository = (*TimeLogRepo)(nil)
	_ repository.UserRepository    = (*UserRepo)(nil)
)

// ClientRepo clientes en memoria.
type ClientRepo struct{ s *Store }

// Create inserta un cliente; ErrDuplicate si el ID existe.
func (r *ClientRepo) Create(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clients[c.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *c
	r.s.clients[c.ID] = &cp
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// List ordenados por nombre.
func (r *ClientRepo) List(_ context.Context) ([]*entity.Client, error) {
	r.s.mu.RLock()
	out := make([]*entity.Client, 0, len(r.s.clients))
	for _, c := range r.s.clients {
		cp := *c
		out = append(out, &cp)
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// TimeLogRepo registros de tiempo en memoria (append-only).
type TimeLogRepo struct{ s *Store }

// Append agrega un registro.
func (r *TimeLogRepo) Append(_ context.Context, e *entity.TimeLogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *e
	r.s.logs = append(r.s.logs, &cp)
	return nil
}

// List filtra y devuelve los más recientes primero.
func (r *TimeLogRepo) List(_ context.Context, filter repository.TimeLogFilter) ([]*entity.TimeLogEntry, error) {
	r.s.mu.RLock()
	var out []*entity.TimeLogEntry
	for i := len(r.s.logs) - 1; i >= 0; i-- {
		if e := r.s.logs[i]; filter.Matches(e) {
			cp := *e
			out = append(out, &cp)
		}
	}
	r.s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// UserRepo usuarios en memoria.
type UserRepo struct{ s *Store }

// Add registra o reemplaza un usuario (por email).
func (r *UserRepo) Add(u *entity.User) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *u
	r.s.users[strings.ToLower(u.Email)] = &cp
}

// FindByEmail busca sin distinguir mayúsculas; (nil, nil) si no existe.
func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}
