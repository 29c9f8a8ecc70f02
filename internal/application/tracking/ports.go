package tracking

import (
	"context"
	"time"

	"github.com/jhoicas/process-hub/internal/domain/entity"
	domaintracking "github.com/jhoicas/process-hub/internal/domain/tracking"
)

// TimeReport datos que necesita el generador del reporte PDF.
type TimeReport struct {
	StartDate   string // vacío = sin límite
	EndDate     string
	UserID      string
	GeneratedAt time.Time
	Summary     domaintracking.Summary
	Logs        []*entity.TimeLogEntry
}

// ReportGenerator puerto de salida para renderizar el reporte de tiempos.
type ReportGenerator interface {
	GenerateTimeReport(ctx context.Context, report TimeReport) ([]byte, error)
}
