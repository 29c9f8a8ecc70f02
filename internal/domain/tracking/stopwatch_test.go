package tracking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/process-hub/internal/domain"
	"github.com/jhoicas/process-hub/internal/domain/tracking"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
}

// start → 5s → pause → start → 3s → close = 8 segundos.
func TestStopwatch_PausaYReanuda(t *testing.T) {
	clock := newClock()
	w := tracking.NewStopwatch(clock)

	require.NoError(t, w.Start())
	clock.Advance(5 * time.Second)
	require.NoError(t, w.Pause())
	assert.Equal(t, tracking.StatePaused, w.State())
	assert.Equal(t, 5, w.Accumulated())
	assert.Equal(t, 0, w.Live(), "el contador en vivo se reinicia al pausar")

	clock.Advance(time.Minute) // tiempo en pausa no cuenta
	require.NoError(t, w.Start())
	clock.Advance(3 * time.Second)

	total, err := w.Close()
	require.NoError(t, err)
	assert.Equal(t, 8, total)
}

func TestStopwatch_CloseSoloUnaVez(t *testing.T) {
	clock := newClock()
	w := tracking.NewStopwatch(clock)
	require.NoError(t, w.Start())
	clock.Advance(2 * time.Second)

	total, err := w.Close()
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	_, err = w.Close()
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.ErrorIs(t, w.Start(), domain.ErrInvalidTransition)
}

func TestStopwatch_CloseEnPausaNoSumaTiempoPausado(t *testing.T) {
	clock := newClock()
	w := tracking.NewStopwatch(clock)
	require.NoError(t, w.Start())
	clock.Advance(4 * time.Second)
	require.NoError(t, w.Pause())
	clock.Advance(10 * time.Second)

	total, err := w.Close()
	require.NoError(t, err)
	assert.Equal(t, 4, total)
}

func TestStopwatch_ResetDescartaTodo(t *testing.T) {
	clock := newClock()
	w := tracking.NewStopwatch(clock)
	require.NoError(t, w.Start())
	clock.Advance(7 * time.Second)
	require.NoError(t, w.Pause())
	require.NoError(t, w.Start())
	clock.Advance(time.Second)

	require.NoError(t, w.Reset())
	assert.Equal(t, tracking.StateIdle, w.State())
	assert.Equal(t, 0, w.Total())
}

func TestStopwatch_SegundosEnteros(t *testing.T) {
	clock := newClock()
	w := tracking.NewStopwatch(clock)
	require.NoError(t, w.Start())
	clock.Advance(2900 * time.Millisecond)
	assert.Equal(t, 2, w.Live())
}

func TestStopwatch_TransicionesInvalidas(t *testing.T) {
	w := tracking.NewStopwatch(newClock())
	assert.ErrorIs(t, w.Pause(), domain.ErrInvalidTransition, "no se pausa en idle")
	require.NoError(t, w.Start())
	assert.ErrorIs(t, w.Start(), domain.ErrInvalidTransition, "ya está corriendo")
	require.NoError(t, w.Pause())
	assert.ErrorIs(t, w.Pause(), domain.ErrInvalidTransition, "ya está en pausa")
}

func TestStopwatch_ReopenTrasCierre(t *testing.T) {
	clock := newClock()
	w := tracking.NewStopwatch(clock)

	assert.ErrorIs(t, w.Reopen(10), domain.ErrInvalidTransition, "solo se reabre un cronómetro cerrado")

	require.NoError(t, w.Start())
	clock.Advance(90 * time.Second)
	total, err := w.Close()
	require.NoError(t, err)
	require.Equal(t, 90, total)

	require.NoError(t, w.Reopen(total))
	assert.False(t, w.Closed())
	assert.Equal(t, tracking.StatePaused, w.State())
	assert.Equal(t, 90, w.Accumulated())

	require.NoError(t, w.Start())
	clock.Advance(10 * time.Second)
	total, err = w.Close()
	require.NoError(t, err)
	assert.Equal(t, 100, total)
}
