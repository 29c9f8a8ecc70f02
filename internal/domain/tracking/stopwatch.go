package tracking

import (
	"fmt"
	"time"

	"github.com/jhoicas/process-hub/internal/domain"
)

// Clock fuente de tiempo inyectable.
type Clock interface {
	Now() time.Time
}

// SystemClock usa time.Now.
type SystemClock struct{}

// Now devuelve la hora actual.
func (SystemClock) Now() time.Time { return time.Now() }

// State estado del cronómetro.
type State string

// Estados del cronómetro.
const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// Stopwatch cronómetro con pausa para una sesión de edición.
//
// El tramo en curso se cuenta en segundos enteros desde el último Start; al pausar se
// suma al acumulado y el contador en vivo vuelve a cero. Close entrega el total una sola vez.
// No es seguro para uso concurrente; quien lo comparta debe sincronizarlo.
type Stopwatch struct {
	clock        Clock
	state        State
	accumulated  int
	runStart     time.Time
	closed       bool
	lastActivity time.Time
}

// NewStopwatch crea un cronómetro en estado idle.
func NewStopwatch(clock Clock) *Stopwatch {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Stopwatch{clock: clock, state: StateIdle, lastActivity: clock.Now()}
}

// Start pasa de idle o paused a running.
func (w *Stopwatch) Start() error {
	if w.closed {
		return fmt.Errorf("%w: cronómetro cerrado", domain.ErrInvalidTransition)
	}
	if w.state == StateRunning {
		return fmt.Errorf("%w: el cronómetro ya está corriendo", domain.ErrInvalidTransition)
	}
	now := w.clock.Now()
	w.runStart = now
	w.state = StateRunning
	w.lastActivity = now
	return nil
}

// Pause pasa de running a paused y acumula el tramo en curso.
func (w *Stopwatch) Pause() error {
	if w.closed || w.state != StateRunning {
		return fmt.Errorf("%w: solo se puede pausar un cronómetro en marcha", domain.ErrInvalidTransition)
	}
	w.accumulated += w.Live()
	w.state = StatePaused
	w.runStart = time.Time{}
	w.lastActivity = w.clock.Now()
	return nil
}

// Reset vuelve a idle y descarta todo lo acumulado.
func (w *Stopwatch) Reset() error {
	if w.closed {
		return fmt.Errorf("%w: cronómetro cerrado", domain.ErrInvalidTransition)
	}
	w.state = StateIdle
	w.accumulated = 0
	w.runStart = time.Time{}
	w.lastActivity = w.clock.Now()
	return nil
}

// Live segundos enteros del tramo en curso (0 si no está corriendo).
func (w *Stopwatch) Live() int {
	if w.state != StateRunning {
		return 0
	}
	d := w.clock.Now().Sub(w.runStart)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

// Accumulated segundos de tramos ya pausados.
func (w *Stopwatch) Accumulated() int { return w.accumulated }

// Total acumulado más el tramo en curso.
func (w *Stopwatch) Total() int { return w.accumulated + w.Live() }

// State estado actual.
func (w *Stopwatch) State() State { return w.state }

// Closed indica si ya se entregó el total.
func (w *Stopwatch) Closed() bool { return w.closed }

// LastActivity instante de la última transición.
func (w *Stopwatch) LastActivity() time.Time { return w.lastActivity }

// Close entrega el total y cierra el cronómetro. Un segundo Close devuelve ErrInvalidTransition.
func (w *Stopwatch) Close() (int, error) {
	if w.closed {
		return 0, fmt.Errorf("%w: cronómetro ya cerrado", domain.ErrInvalidTransition)
	}
	total := w.Total()
	w.closed = true
	w.state = StateIdle
	w.accumulated = 0
	w.runStart = time.Time{}
	w.lastActivity = w.clock.Now()
	return total, nil
}

// Reopen deshace un Close cuyo total no pudo registrarse: el cronómetro queda en pausa
// con ese total como acumulado (idle si es cero).
func (w *Stopwatch) Reopen(total int) error {
	if !w.closed {
		return fmt.Errorf("%w: el cronómetro no está cerrado", domain.ErrInvalidTransition)
	}
	w.closed = false
	w.accumulated = total
	w.state = StateIdle
	if total > 0 {
		w.state = StatePaused
	}
	w.lastActivity = w.clock.Now()
	return nil
}
