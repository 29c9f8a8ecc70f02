// Package memory implementa los puertos de persistencia en memoria (desarrollo local y tests).
// Cada repositorio devuelve copias: modificar una entidad leída no altera el almacén.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/process-hub/internal/domain/entity"
	"github.com/jhoicas/process-hub/internal/infrastructure/seedfile"
)

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu         sync.RWMutex
	categories map[string]*entity.Category
	phases     map[string]*entity.Phase
	steps      map[string]*entity.Step
	clients    map[string]*entity.Client
	users      map[string]*entity.User // por email
	logs       []*entity.TimeLogEntry
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		categories: make(map[string]*entity.Category),
		phases:     make(map[string]*entity.Phase),
		steps:      make(map[string]*entity.Step),
		clients:    make(map[string]*entity.Client),
		users:      make(map[string]*entity.User),
	}
}

// Load carga un catálogo YAML ya validado; las entradas existentes con el mismo ID se reemplazan.
func (s *Store) Load(f *seedfile.File) {
	e := f.Entities(time.Now().UTC())
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range e.Categories {
		s.categories[c.ID] = c
	}
	for _, p := range e.Phases {
		s.phases[p.ID] = p
	}
	for _, st := range e.Steps {
		s.steps[st.ID] = st
	}
	for _, c := range e.Clients {
		s.clients[c.ID] = c
	}
	for _, u := range e.Users {
		s.users[strings.ToLower(u.Email)] = u
	}
}

// Repositorios sobre el mismo almacén.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }
func (s *Store) Phases() *PhaseRepo        { return &PhaseRepo{s: s} }
func (s *Store) Steps() *StepRepo          { return &StepRepo{s: s} }
func (s *Store) Clients() *ClientRepo      { return &ClientRepo{s: s} }
func (s *Store) TimeLogs() *TimeLogRepo    { return &TimeLogRepo{s: s} }
func (s *Store) Users() *UserRepo          { return &UserRepo{s: s} }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
