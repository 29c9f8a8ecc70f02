package repository

import (
	"context"

	"github.com/jhoicas/process-hub/internal/domain/entity"
)

// TimeLogFilter filtro de lectura de registros de tiempo. Campos vacíos no filtran.
// Las fechas son YYYY-MM-DD inclusivas.
type TimeLogFilter struct {
	StartDate string
	EndDate   string
	UserID    string
}

// Matches aplica el filtro en memoria (adaptadores sin consulta nativa).
func (f TimeLogFilter) Matches(e *entity.TimeLogEntry) bool {
	if f.UserID != "" && e.UserID != f.UserID {
		return false
	}
	if f.StartDate != "" && e.Date < f.StartDate {
		return false
	}
	if f.EndDate != "" && e.Date > f.EndDate {
		return false
	}
	return true
}

// TimeLogRepository puerto de persistencia append-only para TimeLogEntry.
type TimeLogRepository interface {
	Append(ctx context.Context, entry *entity.TimeLogEntry) error
	// List devuelve los registros que cumplen el filtro, más recientes primero.
	List(ctx context.Context, filter TimeLogFilter) ([]*entity.TimeLogEntry, error)
}
