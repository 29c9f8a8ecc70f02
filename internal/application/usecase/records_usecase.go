package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/process-hub/internal/application/dto"
	"github.com/jhoicas/process-hub/internal/application/ports"
	"github.com/jhoicas/process-hub/internal/domain"
)

// ErrUpstream la tabla externa respondió con error o no fue alcanzable.
var ErrUpstream = errors.New("no se pudo obtener datos de la tabla externa")

// RecordsUseCase expone los registros de la tabla externa, con caché opcional.
// Con cacheTTL = 0 cada lectura consulta al proveedor.
type RecordsUseCase struct {
	source   ports.TabularSource
	cacheTTL time.Duration
	timeout  time.Duration

	mu        sync.RWMutex
	records   []json.RawMessage
	fetchedAt time.Time
	now       func() time.Time
}

// NewRecordsUseCase construye el caso de uso. source nil significa integración no configurada.
func NewRecordsUseCase(source ports.TabularSource, cacheTTL time.Duration) *RecordsUseCase {
	return &RecordsUseCase{
		source:   source,
		cacheTTL: cacheTTL,
		timeout:  30 * time.Second,
		now:      time.Now,
	}
}

// Configured indica si hay proveedor configurado.
func (uc *RecordsUseCase) Configured() bool { return uc.source != nil }

// Records devuelve todos los registros. Si la caché está vigente la sirve sin consultar.
func (uc *RecordsUseCase) Records(ctx context.Context) (*dto.RecordsResponse, error) {
	if uc.source == nil {
		return nil, fmt.Errorf("%w: AIRTABLE_SECRET_TOKEN, AIRTABLE_BASE_ID, and AIRTABLE_TABLE_ID must be set in environment variables", domain.ErrNotConfigured)
	}
	if cached, ok := uc.cached(); ok {
		return &dto.RecordsResponse{Records: cached}, nil
	}
	records, err := uc.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.RecordsResponse{Records: records}, nil
}

// Refresh recarga la caché; lo invoca el scheduler.
func (uc *RecordsUseCase) Refresh(ctx context.Context) error {
	if uc.source == nil {
		return nil
	}
	records, err := uc.fetch(ctx)
	if err != nil {
		return err
	}
	log.Info().Int("records", len(records)).Msg("caché de tabla externa actualizada")
	return nil
}

func (uc *RecordsUseCase) fetch(ctx context.Context) ([]json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	records, err := uc.source.FetchAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("error consultando la tabla externa")
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if records == nil {
		records = []json.RawMessage{}
	}
	if uc.cacheTTL > 0 {
		uc.mu.Lock()
		uc.records = records
		uc.fetchedAt = uc.now()
		uc.mu.Unlock()
	}
	return records, nil
}

func (uc *RecordsUseCase) cached() ([]json.RawMessage, bool) {
	if uc.cacheTTL <= 0 {
		return nil, false
	}
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.records == nil || uc.now().Sub(uc.fetchedAt) > uc.cacheTTL {
		return nil, false
	}
	return uc.records, true
}
