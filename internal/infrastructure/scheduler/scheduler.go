// Package scheduler ejecuta tareas periódicas (refresco de caché, barrido de sesiones) con robfig/cron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Job tarea periódica. Recibe un contexto con el timeout de la ejecución.
type Job func(ctx context.Context) error

// Scheduler envuelve un cron con logging por ejecución.
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
}

// New crea el scheduler. Las expresiones aceptan el formato estándar de 5 campos y descriptores (@every 5m, @hourly).
func New() *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		timeout: time.Minute,
	}
}

// Add registra una tarea; una ejecución que sigue en curso hace que la siguiente se salte.
func (s *Scheduler) Add(name, spec string, job Job) error {
	wrapped := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		start := time.Now()
		if err := job(ctx); err != nil {
			log.Error().Err(err).Str("job", name).Msg("tarea programada fallida")
			return
		}
		log.Debug().Str("job", name).Dur("took", time.Since(start)).Msg("tarea programada completada")
	}))
	if _, err := s.cron.AddJob(spec, wrapped); err != nil {
		return fmt.Errorf("scheduler: %s: expresión %q: %w", name, spec, err)
	}
	log.Info().Str("job", name).Str("spec", spec).Msg("tarea programada")
	return nil
}

// Start arranca el cron en segundo plano.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop detiene el cron y espera a que terminen las ejecuciones en curso.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Interval estima el período de una expresión como la distancia entre sus dos próximas activaciones.
func Interval(spec string, from time.Time) (time.Duration, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return 0, fmt.Errorf("scheduler: expresión %q: %w", spec, err)
	}
	first := sched.Next(from)
	return sched.Next(first).Sub(first), nil
}
