package process

import (
	"sort"

	"github.com/jhoicas/process-hub/internal/domain/entity"
)

// CategoryTree categoría con sus fases ordenadas.
type CategoryTree struct {
	Category *entity.Category
	Phases   []*PhaseTree
}

// PhaseTree fase con sus pasos ordenados.
type PhaseTree struct {
	Phase *entity.Phase
	Steps []*entity.Step
}

// AssembleCatalog arma el árbol completo a partir de las tres colecciones planas.
// Las categorías salen ordenadas por título (y luego ID); fases y pasos huérfanos se ignoran.
// No modifica los slices de entrada.
func AssembleCatalog(categories []*entity.Category, phases []*entity.Phase, steps []*entity.Step) []*CategoryTree {
	phasesByCategory := make(map[string][]*entity.Phase)
	for _, p := range phases {
		phasesByCategory[p.CategoryID] = append(phasesByCategory[p.CategoryID], p)
	}
	stepsByPhase := groupSteps(steps)

	cats := make([]*entity.Category, len(categories))
	copy(cats, categories)
	sort.SliceStable(cats, func(i, j int) bool {
		if cats[i].Title != cats[j].Title {
			return cats[i].Title < cats[j].Title
		}
		return cats[i].ID < cats[j].ID
	})

	out := make([]*CategoryTree, 0, len(cats))
	for _, c := range cats {
		out = append(out, assemble(c, phasesByCategory[c.ID], stepsByPhase))
	}
	return out
}

// AssembleCategory arma el árbol de una sola categoría. Las fases de otras categorías se ignoran.
func AssembleCategory(category *entity.Category, phases []*entity.Phase, steps []*entity.Step) *CategoryTree {
	own := make([]*entity.Phase, 0, len(phases))
	for _, p := range phases {
		if p.CategoryID == category.ID {
			own = append(own, p)
		}
	}
	return assemble(category, own, groupSteps(steps))
}

func groupSteps(steps []*entity.Step) map[string][]*entity.Step {
	m := make(map[string][]*entity.Step)
	for _, s := range steps {
		m[s.PhaseID] = append(m[s.PhaseID], s)
	}
	return m
}

func assemble(category *entity.Category, phases []*entity.Phase, stepsByPhase map[string][]*entity.Step) *CategoryTree {
	ordered := make([]*entity.Phase, len(phases))
	copy(ordered, phases)
	SortPhases(ordered)

	tree := &CategoryTree{Category: category, Phases: make([]*PhaseTree, 0, len(ordered))}
	for _, p := range ordered {
		steps := make([]*entity.Step, len(stepsByPhase[p.ID]))
		copy(steps, stepsByPhase[p.ID])
		SortSteps(steps)
		tree.Phases = append(tree.Phases, &PhaseTree{Phase: p, Steps: steps})
	}
	return tree
}
