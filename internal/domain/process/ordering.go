// Package process contiene la lógica de dominio del catálogo de procedimientos:
// orden de fases y pasos y armado del árbol categoría → fases → pasos.
package process

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jhoicas/process-hub/internal/domain/entity"
)

// CompareCodes compara dos códigos de paso por segmentos numéricos separados por punto.
// El código más corto se completa con 0 y decide el primer segmento distinto.
// Un segmento no numérico vale 0. Devuelve -1, 0 o 1.
//
//	CompareCodes("1.2", "1.10") == -1
//	CompareCodes("2", "2.0")    ==  0
func CompareCodes(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		av, bv := segment(as, i), segment(bs, i)
		if av < bv {
			return -1
		}
		if av > bv {
			return 1
		}
	}
	return 0
}

func segment(parts []string, i int) int64 {
	if i >= len(parts) {
		return 0
	}
	v, err := strconv.ParseInt(strings.TrimSpace(parts[i]), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// ValidCode indica si el código es una secuencia de enteros no negativos separados por punto ("1", "2.3", "1.10.2").
func ValidCode(code string) bool {
	if code == "" {
		return false
	}
	for _, p := range strings.Split(code, ".") {
		if p == "" {
			return false
		}
		for _, r := range p {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// SortSteps ordena los pasos in place por CompareCodes.
// Empates numéricos ("1.1" y "1.01") se resuelven por el texto del código y luego por ID.
func SortSteps(steps []*entity.Step) {
	sort.SliceStable(steps, func(i, j int) bool {
		if c := CompareCodes(steps[i].Code, steps[j].Code); c != 0 {
			return c < 0
		}
		if steps[i].Code != steps[j].Code {
			return steps[i].Code < steps[j].Code
		}
		return steps[i].ID < steps[j].ID
	})
}

// SortPhases ordena las fases in place por PhaseNumber ascendente (empate por ID).
func SortPhases(phases []*entity.Phase) {
	sort.SliceStable(phases, func(i, j int) bool {
		if phases[i].PhaseNumber != phases[j].PhaseNumber {
			return phases[i].PhaseNumber < phases[j].PhaseNumber
		}
		return phases[i].ID < phases[j].ID
	})
}
