// Package tracking contiene la lógica de dominio del registro de tiempo:
// agregación de registros y el cronómetro con pausa.
package tracking

import "github.com/jhoicas/process-hub/internal/domain/entity"

// Clave y nombre del grupo de registros sin cliente.
const (
	NoClientKey  = "no-client"
	NoClientName = "No Client"
)

const secondsPerHour = 3600.0

// Bucket acumulado de un grupo. Title es el título desnormalizado del primer registro del grupo
// (o el nombre del cliente); vacío en los grupos por fecha.
type Bucket struct {
	Seconds int
	Hours   float64
	Title   string
}

func (b *Bucket) add(seconds int) {
	b.Seconds += seconds
	b.Hours = float64(b.Seconds) / secondsPerHour
}

// Summary total y cinco agrupaciones independientes.
type Summary struct {
	TotalSeconds int
	TotalHours   float64
	ByCategory   map[string]*Bucket
	ByPhase      map[string]*Bucket
	ByStep       map[string]*Bucket
	ByClient     map[string]*Bucket
	ByDate       map[string]*Bucket
}

// Summarize agrega los registros en una sola pasada.
// clientNames resuelve el nombre de cada cliente; los desconocidos quedan como NoClientName.
func Summarize(logs []*entity.TimeLogEntry, clientNames map[string]string) Summary {
	s := Summary{
		ByCategory: make(map[string]*Bucket),
		ByPhase:    make(map[string]*Bucket),
		ByStep:     make(map[string]*Bucket),
		ByClient:   make(map[string]*Bucket),
		ByDate:     make(map[string]*Bucket),
	}
	for _, l := range logs {
		if l == nil {
			continue
		}
		s.TotalSeconds += l.Seconds

		bucket(s.ByCategory, l.CategoryID, l.CategoryTitle).add(l.Seconds)
		bucket(s.ByPhase, l.PhaseID, l.PhaseTitle).add(l.Seconds)
		bucket(s.ByStep, l.StepID, l.StepTitle).add(l.Seconds)

		clientKey := l.ClientID
		if clientKey == "" {
			clientKey = NoClientKey
		}
		name, ok := clientNames[clientKey]
		if !ok {
			name = NoClientName
		}
		bucket(s.ByClient, clientKey, name).add(l.Seconds)

		bucket(s.ByDate, l.Date, "").add(l.Seconds)
	}
	s.TotalHours = float64(s.TotalSeconds) / secondsPerHour
	return s
}

func bucket(m map[string]*Bucket, key, title string) *Bucket {
	b, ok := m[key]
	if !ok {
		b = &Bucket{Title: title}
		m[key] = b
	}
	return b
}
