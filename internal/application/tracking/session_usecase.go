package tracking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/process-hub/internal/application/dto"
	"github.com/jhoicas/process-hub/internal/domain"
	domaintracking "github.com/jhoicas/process-hub/internal/domain/tracking"
)

// TimeLogger destino de los totales al cerrar una sesión.
type TimeLogger interface {
	LogTime(ctx context.Context, userID string, in dto.LogTimeRequest) (*dto.LogTimeResponse, error)
}

type session struct {
	id       string
	userID   string
	target   dto.OpenSessionRequest
	openedAt time.Time
	watch    *domaintracking.Stopwatch
}

// SessionManager sesiones de cronómetro en memoria, una por edición de paso.
// Cada sesión pertenece al usuario que la abrió; las de otros usuarios no son visibles.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*session
	clock    domaintracking.Clock
	logger   TimeLogger
}

// NewSessionManager construye el gestor. clock nil usa el reloj del sistema.
func NewSessionManager(logger TimeLogger, clock domaintracking.Clock) *SessionManager {
	if clock == nil {
		clock = domaintracking.SystemClock{}
	}
	return &SessionManager{
		sessions: make(map[string]*session),
		clock:    clock,
		logger:   logger,
	}
}

// Open crea una sesión idle sobre el paso indicado.
func (m *SessionManager) Open(userID string, in dto.OpenSessionRequest) (*dto.SessionResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: usuario requerido", domain.ErrUnauthorized)
	}
	if in.CategoryID == "" || in.PhaseID == "" || in.StepID == "" {
		return nil, fmt.Errorf("%w: categoryId, phaseId y stepId son requeridos", domain.ErrInvalidInput)
	}
	s := &session{
		id:       uuid.New().String(),
		userID:   userID,
		target:   in,
		openedAt: m.clock.Now().UTC(),
		watch:    domaintracking.NewStopwatch(m.clock),
	}
	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
	return toSessionResponse(s), nil
}

// Get estado actual de una sesión.
func (m *SessionManager) Get(userID, id string) (*dto.SessionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.lookup(userID, id)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(s), nil
}

// List sesiones abiertas del usuario, más antiguas primero.
func (m *SessionManager) List(userID string) []dto.SessionResponse {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]dto.SessionResponse, 0)
	for _, s := range m.sessions {
		if s.userID == userID {
			out = append(out, *toSessionResponse(s))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OpenedAt.Equal(out[j].OpenedAt) {
			return out[i].OpenedAt.Before(out[j].OpenedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Start inicia o reanuda el cronómetro.
func (m *SessionManager) Start(userID, id string) (*dto.SessionResponse, error) {
	return m.transition(userID, id, (*domaintracking.Stopwatch).Start)
}

// Pause detiene el tramo en curso y lo acumula.
func (m *SessionManager) Pause(userID, id string) (*dto.SessionResponse, error) {
	return m.transition(userID, id, (*domaintracking.Stopwatch).Pause)
}

// Reset descarta lo acumulado y vuelve a idle.
func (m *SessionManager) Reset(userID, id string) (*dto.SessionResponse, error) {
	return m.transition(userID, id, (*domaintracking.Stopwatch).Reset)
}

// Close cierra la sesión y, si el total es mayor a cero, registra exactamente un TimeLogEntry.
// Si el registro falla la sesión sigue abierta, en pausa y con el total acumulado, para reintentar.
func (m *SessionManager) Close(ctx context.Context, userID, id string) (*dto.CloseSessionResponse, error) {
	m.mu.Lock()
	s, err := m.lookup(userID, id)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	total, err := s.watch.Close()
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out, err := m.flush(ctx, s, total)
	m.settle(s, total, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SweepIdle cierra las sesiones detenidas (idle o en pausa) sin actividad desde hace más de maxIdle,
// registrando su total. Un cronómetro en marcha nunca se considera inactivo.
// Devuelve cuántas sesiones se cerraron.
func (m *SessionManager) SweepIdle(ctx context.Context, maxIdle time.Duration) int {
	now := m.clock.Now()
	return m.sweep(ctx, func(s *session) bool {
		return s.watch.State() != domaintracking.StateRunning && now.Sub(s.watch.LastActivity()) > maxIdle
	})
}

// CloseAll cierra todas las sesiones abiertas registrando su total (apagado del servidor).
func (m *SessionManager) CloseAll(ctx context.Context) int {
	return m.sweep(ctx, func(*session) bool { return true })
}

func (m *SessionManager) sweep(ctx context.Context, expired func(*session) bool) int {
	type closing struct {
		s     *session
		total int
	}
	var pending []closing

	m.mu.Lock()
	for _, s := range m.sessions {
		if s.watch.Closed() || !expired(s) {
			continue
		}
		total, err := s.watch.Close()
		if err == nil {
			pending = append(pending, closing{s: s, total: total})
		}
	}
	m.mu.Unlock()

	closed := 0
	for _, c := range pending {
		_, err := m.flush(ctx, c.s, c.total)
		m.settle(c.s, c.total, err)
		if err != nil {
			log.Error().Err(err).Str("session_id", c.s.id).Msg("no se pudo registrar el tiempo de la sesión; queda abierta")
			continue
		}
		closed++
	}
	if closed > 0 {
		log.Info().Int("sessions", closed).Msg("sesiones cerradas")
	}
	return closed
}

// settle retira la sesión si su total quedó registrado; si no, la reabre con el total acumulado.
func (m *SessionManager) settle(s *session, total int, flushErr error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if flushErr == nil {
		delete(m.sessions, s.id)
		return
	}
	_ = s.watch.Reopen(total)
}

func (m *SessionManager) flush(ctx context.Context, s *session, total int) (*dto.CloseSessionResponse, error) {
	out := &dto.CloseSessionResponse{Success: true, Seconds: total}
	if total <= 0 {
		return out, nil
	}
	seconds := total
	res, err := m.logger.LogTime(ctx, s.userID, dto.LogTimeRequest{
		ClientID:      s.target.ClientID,
		CategoryID:    s.target.CategoryID,
		CategoryTitle: s.target.CategoryTitle,
		PhaseID:       s.target.PhaseID,
		PhaseTitle:    s.target.PhaseTitle,
		StepID:        s.target.StepID,
		StepTitle:     s.target.StepTitle,
		StepCode:      s.target.StepCode,
		Seconds:       &seconds,
	})
	if err != nil {
		return nil, err
	}
	out.Logged = true
	out.LogID = res.ID
	return out, nil
}

func (m *SessionManager) transition(userID, id string, fn func(*domaintracking.Stopwatch) error) (*dto.SessionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.lookup(userID, id)
	if err != nil {
		return nil, err
	}
	if err := fn(s.watch); err != nil {
		return nil, err
	}
	return toSessionResponse(s), nil
}

// lookup requiere m.mu tomado.
func (m *SessionManager) lookup(userID, id string) (*session, error) {
	s, ok := m.sessions[id]
	if !ok || s.userID != userID {
		return nil, fmt.Errorf("%w: sesión %s", domain.ErrNotFound, id)
	}
	return s, nil
}

func toSessionResponse(s *session) *dto.SessionResponse {
	return &dto.SessionResponse{
		ID:                 s.id,
		State:              string(s.watch.State()),
		AccumulatedSeconds: s.watch.Accumulated(),
		LiveSeconds:        s.watch.Live(),
		TotalSeconds:       s.watch.Total(),
		ClientID:           s.target.ClientID,
		CategoryID:         s.target.CategoryID,
		PhaseID:            s.target.PhaseID,
		StepID:             s.target.StepID,
		StepCode:           s.target.StepCode,
		OpenedAt:           s.openedAt,
	}
}
