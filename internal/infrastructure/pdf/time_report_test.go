package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/process-hub/internal/application/tracking"
	"github.com/jhoicas/process-hub/internal/domain/entity"
	domaintracking "github.com/jhoicas/process-hub/internal/domain/tracking"
	"github.com/jhoicas/process-hub/internal/infrastructure/pdf"
)

func TestHours(t *testing.T) {
	assert.Equal(t, "0.00", pdf.Hours(0))
	assert.Equal(t, "0.67", pdf.Hours(2400))
	assert.Equal(t, "1.50", pdf.Hours(5400))
	assert.Equal(t, "0.01", pdf.Hours(18))
}

func TestPeriod(t *testing.T) {
	assert.Equal(t, "todo el historial", pdf.Period("", ""))
	assert.Equal(t, "desde 2026-03-01", pdf.Period("2026-03-01", ""))
	assert.Equal(t, "hasta 2026-03-31", pdf.Period("", "2026-03-31"))
	assert.Equal(t, "2026-03-01 a 2026-03-31", pdf.Period("2026-03-01", "2026-03-31"))
}

func TestGenerateTimeReport(t *testing.T) {
	logs := []*entity.TimeLogEntry{
		{ID: "l1", UserID: "u1", ClientID: "acme", CategoryID: "seo", CategoryTitle: "SEO", PhaseID: "seo-p1", StepID: "1.1", StepCode: "1.1", StepTitle: "Intro", Seconds: 600, Date: "2026-03-01"},
		{ID: "l2", UserID: "u1", CategoryID: "seo", CategoryTitle: "SEO", PhaseID: "seo-p1", StepID: "1.2", StepCode: "1.2", StepTitle: "Keywords", Seconds: 1800, Date: "2026-03-02"},
	}
	gen := pdf.NewMarotoReportGenerator("process-hub")
	out, err := gen.GenerateTimeReport(context.Background(), tracking.TimeReport{
		StartDate:   "2026-03-01",
		GeneratedAt: time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC),
		Summary:     domaintracking.Summarize(logs, map[string]string{"acme": "Acme"}),
		Logs:        logs,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
