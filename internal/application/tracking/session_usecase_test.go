package tracking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/process-hub/internal/application/dto"
	"github.com/jhoicas/process-hub/internal/domain"
	"github.com/jhoicas/process-hub/internal/domain/repository"
	domaintracking "github.com/jhoicas/process-hub/internal/domain/tracking"
	"github.com/jhoicas/process-hub/internal/infrastructure/memory"
)

type manualClock struct{ now time.Time }

func (c *manualClock) Now() time.Time          { return c.now }
func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newSessions(t *testing.T) (*SessionManager, *manualClock, *memory.Store) {
	t.Helper()
	uc, store := newTimeTracking(t, nil)
	clock := &manualClock{now: fixedNow}
	return NewSessionManager(uc, clock), clock, store
}

func openReq() dto.OpenSessionRequest {
	return dto.OpenSessionRequest{
		ClientID:   "acme",
		CategoryID: "seo", CategoryTitle: "SEO",
		PhaseID: "seo-p1", PhaseTitle: "Learning",
		StepID: "1.1", StepTitle: "Intro", StepCode: "1.1",
	}
}

func TestSession_PausaReanudaYCierraUnSoloRegistro(t *testing.T) {
	m, clock, store := newSessions(t)
	ctx := context.Background()

	s, err := m.Open("u1", openReq())
	require.NoError(t, err)
	assert.Equal(t, "idle", s.State)

	_, err = m.Start("u1", s.ID)
	require.NoError(t, err)
	clock.Advance(5 * time.Second)
	p, err := m.Pause("u1", s.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, p.AccumulatedSeconds)
	assert.Equal(t, 0, p.LiveSeconds)

	_, err = m.Start("u1", s.ID)
	require.NoError(t, err)
	clock.Advance(3 * time.Second)

	out, err := m.Close(ctx, "u1", s.ID)
	require.NoError(t, err)
	assert.True(t, out.Logged)
	assert.Equal(t, 8, out.Seconds)

	logs, err := store.TimeLogs().List(ctx, repository.TimeLogFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 8, logs[0].Seconds)
	assert.Equal(t, "u1", logs[0].UserID)
	assert.Equal(t, "acme", logs[0].ClientID)
	assert.Equal(t, out.LogID, logs[0].ID)

	_, err = m.Close(ctx, "u1", s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "una sesión cerrada ya no existe")
}

func TestSession_CerrarSinTiempoNoRegistra(t *testing.T) {
	m, _, store := newSessions(t)
	ctx := context.Background()

	s, err := m.Open("u1", openReq())
	require.NoError(t, err)
	out, err := m.Close(ctx, "u1", s.ID)
	require.NoError(t, err)
	assert.False(t, out.Logged)
	assert.Zero(t, out.Seconds)

	logs, err := store.TimeLogs().List(ctx, repository.TimeLogFilter{})
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestSession_ResetDescartaAcumulado(t *testing.T) {
	m, clock, _ := newSessions(t)
	s, err := m.Open("u1", openReq())
	require.NoError(t, err)
	_, err = m.Start("u1", s.ID)
	require.NoError(t, err)
	clock.Advance(40 * time.Second)

	r, err := m.Reset("u1", s.ID)
	require.NoError(t, err)
	assert.Equal(t, "idle", r.State)
	assert.Zero(t, r.TotalSeconds)
}

func TestSession_TransicionesInvalidas(t *testing.T) {
	m, _, _ := newSessions(t)
	s, err := m.Open("u1", openReq())
	require.NoError(t, err)

	_, err = m.Pause("u1", s.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = m.Start("u1", s.ID)
	require.NoError(t, err)
	_, err = m.Start("u1", s.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSession_AisladaPorUsuario(t *testing.T) {
	m, _, _ := newSessions(t)
	s, err := m.Open("u1", openReq())
	require.NoError(t, err)

	_, err = m.Get("u2", s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, m.List("u2"))
	assert.Len(t, m.List("u1"), 1)

	_, err = m.Open("u1", dto.OpenSessionRequest{CategoryID: "seo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSession_SweepIdleRegistraLoAcumulado(t *testing.T) {
	m, clock, store := newSessions(t)
	ctx := context.Background()

	s, err := m.Open("u1", openReq())
	require.NoError(t, err)
	_, err = m.Start("u1", s.ID)
	require.NoError(t, err)
	clock.Advance(30 * time.Second)
	_, err = m.Pause("u1", s.ID)
	require.NoError(t, err)

	fresh, err := m.Open("u2", openReq())
	require.NoError(t, err)

	clock.Advance(3 * time.Hour)
	_, err = m.Start("u2", fresh.ID) // actividad reciente: no se barre
	require.NoError(t, err)

	n := m.SweepIdle(ctx, 2*time.Hour)
	assert.Equal(t, 1, n)
	assert.Empty(t, m.List("u1"))
	assert.Len(t, m.List("u2"), 1)

	logs, err := store.TimeLogs().List(ctx, repository.TimeLogFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 30, logs[0].Seconds)
}

func TestSession_CloseAllRegistraSesionesEnMarcha(t *testing.T) {
	m, clock, store := newSessions(t)
	ctx := context.Background()

	s, err := m.Open("u1", openReq())
	require.NoError(t, err)
	_, err = m.Start("u1", s.ID)
	require.NoError(t, err)
	clock.Advance(45 * time.Second)
	_, err = m.Open("u2", openReq())
	require.NoError(t, err)

	assert.Equal(t, 2, m.CloseAll(ctx))
	assert.Empty(t, m.List("u1"))
	assert.Empty(t, m.List("u2"))

	logs, err := store.TimeLogs().List(ctx, repository.TimeLogFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 1, "la sesión sin tiempo no genera registro")
	assert.Equal(t, 45, logs[0].Seconds)
}

func TestSession_SweepIdleNoCierraCronometroEnMarcha(t *testing.T) {
	m, clock, store := newSessions(t)
	ctx := context.Background()

	s, err := m.Open("u1", openReq())
	require.NoError(t, err)
	_, err = m.Start("u1", s.ID)
	require.NoError(t, err)
	clock.Advance(150 * time.Minute)

	assert.Equal(t, 0, m.SweepIdle(ctx, 2*time.Hour), "un cronómetro en marcha está activo")

	paused, err := m.Pause("u1", s.ID)
	require.NoError(t, err)
	assert.Equal(t, 9000, paused.AccumulatedSeconds)

	clock.Advance(3 * time.Hour)
	assert.Equal(t, 1, m.SweepIdle(ctx, 2*time.Hour), "en pausa e inactivo sí se barre")

	logs, err := store.TimeLogs().List(ctx, repository.TimeLogFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 9000, logs[0].Seconds)
}

// flakyLogger falla mientras down sea true; luego delega en el caso de uso real.
type flakyLogger struct {
	down  bool
	calls int
	next  TimeLogger
}

func (l *flakyLogger) LogTime(ctx context.Context, userID string, in dto.LogTimeRequest) (*dto.LogTimeResponse, error) {
	l.calls++
	if l.down {
		return nil, errors.New("db down")
	}
	return l.next.LogTime(ctx, userID, in)
}

func newFlakySessions(t *testing.T) (*SessionManager, *flakyLogger, *manualClock, *memory.Store) {
	t.Helper()
	uc, store := newTimeTracking(t, nil)
	logger := &flakyLogger{down: true, next: uc}
	clock := &manualClock{now: fixedNow}
	return NewSessionManager(logger, clock), logger, clock, store
}

func TestSession_CloseFallidoConservaElTiempo(t *testing.T) {
	m, logger, clock, store := newFlakySessions(t)
	ctx := context.Background()

	s, err := m.Open("u1", openReq())
	require.NoError(t, err)
	_, err = m.Start("u1", s.ID)
	require.NoError(t, err)
	clock.Advance(90 * time.Second)

	_, err = m.Close(ctx, "u1", s.ID)
	require.Error(t, err)

	got, err := m.Get("u1", s.ID)
	require.NoError(t, err, "la sesión sigue abierta tras el fallo")
	assert.Equal(t, string(domaintracking.StatePaused), got.State)
	assert.Equal(t, 90, got.AccumulatedSeconds)

	logger.down = false
	out, err := m.Close(ctx, "u1", s.ID)
	require.NoError(t, err)
	assert.True(t, out.Logged)
	assert.Equal(t, 90, out.Seconds)

	logs, err := store.TimeLogs().List(ctx, repository.TimeLogFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 90, logs[0].Seconds)

	_, err = m.Get("u1", s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSession_CloseAllFallidoNoPierdeSesiones(t *testing.T) {
	m, logger, clock, store := newFlakySessions(t)
	ctx := context.Background()

	s, err := m.Open("u1", openReq())
	require.NoError(t, err)
	_, err = m.Start("u1", s.ID)
	require.NoError(t, err)
	clock.Advance(40 * time.Second)

	assert.Equal(t, 0, m.CloseAll(ctx))
	require.Len(t, m.List("u1"), 1)
	assert.Equal(t, 1, logger.calls)

	logger.down = false
	assert.Equal(t, 1, m.CloseAll(ctx))
	assert.Empty(t, m.List("u1"))

	logs, err := store.TimeLogs().List(ctx, repository.TimeLogFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 40, logs[0].Seconds)
}
