// Package pdf genera el reporte de tiempos en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la app + período  │  Fecha de generación │
//	│  TOTAL: horas del período                                    │
//	│  TABLAS: por categoría | por cliente | por fecha             │
//	│  DETALLE: Fecha | Usuario | Categoría / Paso | Horas         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/process-hub/internal/application/tracking"
	domaintracking "github.com/jhoicas/process-hub/internal/domain/tracking"
)

var _ tracking.ReportGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var secondsPerHour = decimal.NewFromInt(3600)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa tracking.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	appName string
}

// NewMarotoReportGenerator construye el generador; appName encabeza el documento.
func NewMarotoReportGenerator(appName string) *MarotoReportGenerator {
	return &MarotoReportGenerator{appName: appName}
}

// GenerateTimeReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateTimeReport(_ context.Context, r tracking.TimeReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de tiempos", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalRow(r.Summary))

	m.AddRows(sectionRows("Por categoría", bucketLines(r.Summary.ByCategory, titleOrKey))...)
	m.AddRows(sectionRows("Por cliente", bucketLines(r.Summary.ByClient, titleOrKey))...)
	m.AddRows(sectionRows("Por fecha", bucketLines(r.Summary.ByDate, keyOnly))...)

	if len(r.Logs) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(detailHeaderRow())
		for _, l := range r.Logs {
			m.AddRows(row.New(6).Add(
				col.New(2).Add(text.New(l.Date, props.Text{Size: 8, Top: 1})),
				col.New(2).Add(text.New(l.UserID, props.Text{Size: 8, Top: 1})),
				col.New(6).Add(text.New(fmt.Sprintf("%s / %s %s", l.CategoryTitle, l.StepCode, l.StepTitle), props.Text{Size: 8, Top: 1})),
				col.New(2).Add(text.New(Hours(l.Seconds), props.Text{Size: 8, Top: 1, Align: align.Right})),
			))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoReportGenerator) headerRow(r tracking.TimeReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(g.appName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Período: "+Period(r.StartDate, r.EndDate), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("REPORTE DE TIEMPOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+r.GeneratedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func totalRow(s domaintracking.Summary) core.Row {
	return row.New(12).Add(
		col.New(8).Add(text.New("TOTAL DEL PERÍODO", props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 3, Color: colorPrimary,
		})),
		col.New(4).Add(text.New(Hours(s.TotalSeconds)+" h", props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 3, Align: align.Right, Color: colorPrimary,
		})),
	)
}

type reportLine struct {
	label   string
	seconds int
}

func sectionRows(title string, lines []reportLine) []core.Row {
	if len(lines) == 0 {
		return nil
	}
	rows := []core.Row{
		line.NewRow(2),
		row.New(7).Add(col.New(12).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
		}))),
	}
	for _, l := range lines {
		rows = append(rows, row.New(5).Add(
			col.New(9).Add(text.New(l.label, props.Text{Size: 8, Left: 2})),
			col.New(3).Add(text.New(Hours(l.seconds)+" h", props.Text{Size: 8, Align: align.Right})),
		))
	}
	return rows
}

func detailHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(7).Add(
		h("Fecha", 2, align.Left),
		h("Usuario", 2, align.Left),
		h("Categoría / Paso", 6, align.Left),
		h("Horas", 2, align.Right),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func titleOrKey(key string, b *domaintracking.Bucket) string {
	if b.Title != "" {
		return b.Title
	}
	return key
}

func keyOnly(key string, _ *domaintracking.Bucket) string { return key }

// bucketLines ordena por clave para que el documento sea estable entre ejecuciones.
func bucketLines(m map[string]*domaintracking.Bucket, label func(string, *domaintracking.Bucket) string) []reportLine {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]reportLine, 0, len(keys))
	for _, k := range keys {
		out = append(out, reportLine{label: label(k, m[k]), seconds: m[k].Seconds})
	}
	return out
}

// Hours segundos a horas con dos decimales (redondeo half-up).
func Hours(seconds int) string {
	return decimal.NewFromInt(int64(seconds)).Div(secondsPerHour).StringFixed(2)
}

// Period describe el rango de fechas del filtro.
func Period(start, end string) string {
	switch {
	case start == "" && end == "":
		return "todo el historial"
	case start == "":
		return "hasta " + end
	case end == "":
		return "desde " + start
	}
	return start + " a " + end
}
