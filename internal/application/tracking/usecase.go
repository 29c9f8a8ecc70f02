// Package tracking contiene los casos de uso de registro de tiempo: alta de registros,
// resumen agregado, listado, reporte PDF y sesiones de cronómetro.
package tracking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/process-hub/internal/application/dto"
	"github.com/jhoicas/process-hub/internal/domain"
	"github.com/jhoicas/process-hub/internal/domain/entity"
	"github.com/jhoicas/process-hub/internal/domain/repository"
	domaintracking "github.com/jhoicas/process-hub/internal/domain/tracking"
)

// DateLayout formato ISO de fecha de calendario.
const DateLayout = "2006-01-02"

// TimeTrackingUseCase registros de tiempo append-only y sus agregados.
type TimeTrackingUseCase struct {
	logRepo    repository.TimeLogRepository
	clientRepo repository.ClientRepository
	report     ReportGenerator
	now        func() time.Time
}

// NewTimeTrackingUseCase construye el caso de uso. report puede ser nil si no se exponen reportes.
func NewTimeTrackingUseCase(
	logRepo repository.TimeLogRepository,
	clientRepo repository.ClientRepository,
	report ReportGenerator,
) *TimeTrackingUseCase {
	return &TimeTrackingUseCase{
		logRepo:    logRepo,
		clientRepo: clientRepo,
		report:     report,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// LogTime agrega un registro. userID viene del token; si está vacío se usa el del cuerpo.
func (uc *TimeTrackingUseCase) LogTime(ctx context.Context, userID string, in dto.LogTimeRequest) (*dto.LogTimeResponse, error) {
	if userID == "" {
		userID = strings.TrimSpace(in.UserID)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: userId es requerido", domain.ErrInvalidInput)
	}
	if in.CategoryID == "" || in.PhaseID == "" || in.StepID == "" {
		return nil, fmt.Errorf("%w: categoryId, phaseId y stepId son requeridos", domain.ErrInvalidInput)
	}
	if in.Seconds == nil {
		return nil, fmt.Errorf("%w: seconds es requerido", domain.ErrInvalidInput)
	}
	if *in.Seconds < 0 {
		return nil, fmt.Errorf("%w: seconds no puede ser negativo", domain.ErrInvalidInput)
	}
	now := uc.now()
	date := in.Date
	if date == "" {
		date = now.Format(DateLayout)
	} else if err := validDate("date", date); err != nil {
		return nil, err
	}

	entry := &entity.TimeLogEntry{
		ID:            uuid.New().String(),
		UserID:        userID,
		ClientID:      in.ClientID,
		CategoryID:    in.CategoryID,
		CategoryTitle: in.CategoryTitle,
		PhaseID:       in.PhaseID,
		PhaseTitle:    in.PhaseTitle,
		StepID:        in.StepID,
		StepTitle:     in.StepTitle,
		StepCode:      in.StepCode,
		Seconds:       *in.Seconds,
		Date:          date,
		CreatedAt:     now,
	}
	if err := uc.logRepo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("tiempo: guardar registro: %w", err)
	}
	log.Info().
		Str("user_id", userID).
		Str("step_id", entry.StepID).
		Int("seconds", entry.Seconds).
		Msg("tiempo registrado")
	return &dto.LogTimeResponse{Success: true, ID: entry.ID}, nil
}

// Logs lista los registros filtrados, más recientes primero.
func (uc *TimeTrackingUseCase) Logs(ctx context.Context, in dto.TimeFilterRequest) ([]dto.TimeLogResponse, error) {
	filter, err := ParseFilter(in)
	if err != nil {
		return nil, err
	}
	logs, err := uc.logRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("tiempo: listar registros: %w", err)
	}
	out := make([]dto.TimeLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, toTimeLogResponse(l))
	}
	return out, nil
}

// Summary total y agrupaciones por categoría, fase, paso, cliente y fecha.
func (uc *TimeTrackingUseCase) Summary(ctx context.Context, in dto.TimeFilterRequest) (*dto.TimeSummaryResponse, error) {
	filter, err := ParseFilter(in)
	if err != nil {
		return nil, err
	}
	s, _, err := uc.summarize(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toSummaryResponse(s), nil
}

// Report genera el PDF del período. Devuelve los bytes y un nombre de archivo sugerido.
func (uc *TimeTrackingUseCase) Report(ctx context.Context, in dto.TimeFilterRequest) ([]byte, string, error) {
	if uc.report == nil {
		return nil, "", fmt.Errorf("%w: generador de reportes", domain.ErrNotConfigured)
	}
	filter, err := ParseFilter(in)
	if err != nil {
		return nil, "", err
	}
	s, logs, err := uc.summarize(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	now := uc.now()
	pdf, err := uc.report.GenerateTimeReport(ctx, TimeReport{
		StartDate:   filter.StartDate,
		EndDate:     filter.EndDate,
		UserID:      filter.UserID,
		GeneratedAt: now,
		Summary:     s,
		Logs:        logs,
	})
	if err != nil {
		return nil, "", fmt.Errorf("tiempo: generar reporte: %w", err)
	}
	return pdf, fmt.Sprintf("time-report-%s.pdf", now.Format(DateLayout)), nil
}

func (uc *TimeTrackingUseCase) summarize(ctx context.Context, filter repository.TimeLogFilter) (domaintracking.Summary, []*entity.TimeLogEntry, error) {
	logs, err := uc.logRepo.List(ctx, filter)
	if err != nil {
		return domaintracking.Summary{}, nil, fmt.Errorf("tiempo: listar registros: %w", err)
	}
	clients, err := uc.clientRepo.List(ctx)
	if err != nil {
		return domaintracking.Summary{}, nil, fmt.Errorf("tiempo: listar clientes: %w", err)
	}
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}
	return domaintracking.Summarize(logs, names), logs, nil
}

// ParseFilter valida las fechas (YYYY-MM-DD, inclusivas) y construye el filtro de repositorio.
func ParseFilter(in dto.TimeFilterRequest) (repository.TimeLogFilter, error) {
	f := repository.TimeLogFilter{
		StartDate: strings.TrimSpace(in.StartDate),
		EndDate:   strings.TrimSpace(in.EndDate),
		UserID:    strings.TrimSpace(in.UserID),
	}
	if f.StartDate != "" {
		if err := validDate("startDate", f.StartDate); err != nil {
			return f, err
		}
	}
	if f.EndDate != "" {
		if err := validDate("endDate", f.EndDate); err != nil {
			return f, err
		}
	}
	if f.StartDate != "" && f.EndDate != "" && f.StartDate > f.EndDate {
		return f, fmt.Errorf("%w: startDate posterior a endDate", domain.ErrInvalidInput)
	}
	return f, nil
}

func validDate(field, v string) error {
	if _, err := time.Parse(DateLayout, v); err != nil {
		return fmt.Errorf("%w: %s debe tener formato YYYY-MM-DD", domain.ErrInvalidInput, field)
	}
	return nil
}

func toTimeLogResponse(l *entity.TimeLogEntry) dto.TimeLogResponse {
	return dto.TimeLogResponse{
		ID:            l.ID,
		UserID:        l.UserID,
		ClientID:      l.ClientID,
		CategoryID:    l.CategoryID,
		CategoryTitle: l.CategoryTitle,
		PhaseID:       l.PhaseID,
		PhaseTitle:    l.PhaseTitle,
		StepID:        l.StepID,
		StepTitle:     l.StepTitle,
		StepCode:      l.StepCode,
		Seconds:       l.Seconds,
		Date:          l.Date,
		CreatedAt:     l.CreatedAt,
	}
}

func toSummaryResponse(s domaintracking.Summary) *dto.TimeSummaryResponse {
	out := &dto.TimeSummaryResponse{
		TotalSeconds: s.TotalSeconds,
		TotalHours:   s.TotalHours,
		ByCategory:   make(map[string]dto.CategoryTotal, len(s.ByCategory)),
		ByPhase:      make(map[string]dto.PhaseTotal, len(s.ByPhase)),
		ByStep:       make(map[string]dto.StepTotal, len(s.ByStep)),
		ByClient:     make(map[string]dto.ClientTotal, len(s.ByClient)),
		ByDate:       make(map[string]dto.DateTotal, len(s.ByDate)),
	}
	for k, b := range s.ByCategory {
		out.ByCategory[k] = dto.CategoryTotal{Seconds: b.Seconds, Hours: b.Hours, CategoryTitle: b.Title}
	}
	for k, b := range s.ByPhase {
		out.ByPhase[k] = dto.PhaseTotal{Seconds: b.Seconds, Hours: b.Hours, PhaseTitle: b.Title}
	}
	for k, b := range s.ByStep {
		out.ByStep[k] = dto.StepTotal{Seconds: b.Seconds, Hours: b.Hours, StepTitle: b.Title}
	}
	for k, b := range s.ByClient {
		out.ByClient[k] = dto.ClientTotal{Seconds: b.Seconds, Hours: b.Hours, ClientName: b.Title}
	}
	for k, b := range s.ByDate {
		out.ByDate[k] = dto.DateTotal{Seconds: b.Seconds, Hours: b.Hours}
	}
	return out
}
