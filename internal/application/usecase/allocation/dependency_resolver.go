// Package allocation implements the goal allocation engine: dependency
// resolution, urgency scoring, budget optimization, safety validation and
// suggestion generation over an in-memory snapshot of a user's goals.
package allocation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/domain/entity"
	"github.com/goal-planner/backend/internal/domain/valueobject"
)

// GoalIndex maps goal IDs to goals for dependency lookups.
type GoalIndex map[uuid.UUID]*entity.Goal

// BuildGoalIndex builds a lookup index over the goal set.
func BuildGoalIndex(goals []*entity.Goal) GoalIndex {
	index := make(GoalIndex, len(goals))
	for _, g := range goals {
		index[g.ID] = g
	}
	return index
}

// CycleWarning describes a dependency edge that closes a cycle. The edge is
// ignored during traversal; the warning is surfaced as data, never as an
// error.
type CycleWarning struct {
	GoalID      uuid.UUID
	GoalName    string
	DependsOnID uuid.UUID
	Message     string
}

// dfs marker states. A goal on the current recursion path is "visiting";
// a fully processed goal is "visited". Meeting a "visiting" goal again
// means the edge closes a cycle.
type dfsState int

const (
	stateUnseen dfsState = iota
	stateVisiting
	stateVisited
)

// SortGoalsByDependencies orders goals so that every prerequisite precedes
// the goals depending on it. Cyclic and dangling edges are skipped, which
// guarantees termination on malformed input; relative input order is kept
// where dependencies allow.
func SortGoalsByDependencies(goals []*entity.Goal) []*entity.Goal {
	index := BuildGoalIndex(goals)
	state := make(map[uuid.UUID]dfsState, len(goals))
	ordered := make([]*entity.Goal, 0, len(goals))

	var visit func(g *entity.Goal)
	visit = func(g *entity.Goal) {
		switch state[g.ID] {
		case stateVisited, stateVisiting:
			// Visiting here means a back-edge; the caller skips it.
			return
		}
		state[g.ID] = stateVisiting

		if g.DependsOnGoalID != nil {
			if dep, ok := index[*g.DependsOnGoalID]; ok {
				visit(dep)
			}
		}

		state[g.ID] = stateVisited
		ordered = append(ordered, g)
	}

	for _, g := range goals {
		visit(g)
	}
	return ordered
}

// DetectCircularDependencies walks the dependency graph and reports every
// edge that closes a cycle.
func DetectCircularDependencies(goals []*entity.Goal) []CycleWarning {
	index := BuildGoalIndex(goals)
	state := make(map[uuid.UUID]dfsState, len(goals))
	var warnings []CycleWarning

	var visit func(g *entity.Goal)
	visit = func(g *entity.Goal) {
		if state[g.ID] == stateVisited {
			return
		}
		state[g.ID] = stateVisiting

		if g.DependsOnGoalID != nil {
			if dep, ok := index[*g.DependsOnGoalID]; ok {
				switch state[dep.ID] {
				case stateVisiting:
					warnings = append(warnings, CycleWarning{
						GoalID:      g.ID,
						GoalName:    g.Name,
						DependsOnID: dep.ID,
						Message: fmt.Sprintf(
							"circular dependency: goal %q depends on %q which leads back to it; edge ignored",
							g.Name, dep.Name,
						),
					})
				case stateUnseen:
					visit(dep)
				}
			}
		}

		state[g.ID] = stateVisited
	}

	for _, g := range goals {
		if state[g.ID] == stateUnseen {
			visit(g)
		}
	}
	return warnings
}

// CanGoalStart reports whether the goal's prerequisite allows full funding.
// Goals without a dependency, with a dangling dependency or with a
// completed dependency can start immediately.
func CanGoalStart(goal *entity.Goal, index GoalIndex) bool {
	if goal.DependsOnGoalID == nil {
		return true
	}
	dep, ok := index[*goal.DependsOnGoalID]
	if !ok {
		// Dangling edge, treated as absent.
		return true
	}
	return dep.IsCompleted()
}

// GetDependencyReductionFactor returns the multiplier in (0,1] applied to
// the goal's raw allocation. 1.0 when the goal can start; the partial
// factor once the prerequisite's progress reaches the configured threshold;
// the conservative default otherwise.
func GetDependencyReductionFactor(goal *entity.Goal, index GoalIndex, cfg valueobject.EngineConfig) float64 {
	if goal.DependsOnGoalID == nil {
		return 1.0
	}
	dep, ok := index[*goal.DependsOnGoalID]
	if !ok {
		return 1.0
	}
	if dep.IsCompleted() {
		return 1.0
	}
	if dep.TargetAmount > 0 && dep.CurrentAmount >= dep.TargetAmount*cfg.DependencyPartialThreshold {
		return cfg.DependencyPartialFactor
	}
	return cfg.DependencyDefaultFactor
}

// GetDependencyChain returns the goal's prerequisite chain ordered from the
// root prerequisite down to the goal itself. Cycles and dangling edges cut
// the walk short.
func GetDependencyChain(goal *entity.Goal, index GoalIndex) []*entity.Goal {
	seen := map[uuid.UUID]bool{goal.ID: true}
	chain := []*entity.Goal{goal}

	current := goal
	for current.DependsOnGoalID != nil {
		dep, ok := index[*current.DependsOnGoalID]
		if !ok || seen[dep.ID] {
			break
		}
		seen[dep.ID] = true
		chain = append(chain, dep)
		current = dep
	}

	// Walked leaf -> root; flip to root -> leaf.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
