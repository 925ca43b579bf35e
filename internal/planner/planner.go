// Package planner provides the planning-algorithm abstraction consumed by
// planning contexts: planner instances, the registry mapping planner ids to
// allocation capabilities, and the multi-query allocator that manages
// exploration-data lifetime across repeated queries, including on-disk
// persistence.
package planner

import (
	"fmt"

	"github.com/walking-machine/moveit2/internal/statespace"
)

// Planner is a configured planning-algorithm instance. Algorithm internals
// (solving, collision checking) stay behind the collaborating planning
// library; this subsystem only names, parameterizes, and snapshots it.
type Planner interface {
	// Name returns the instance name.
	Name() string

	// SetName sets the instance name.
	SetName(name string)

	// SetParams applies configuration parameters. Keys this subsystem does
	// not recognize are retained verbatim for the algorithm's own
	// parameter system.
	SetParams(params map[string]string) error

	// Params returns a copy of the currently applied parameters.
	Params() map[string]string

	// PlannerData returns a snapshot of the planner's accumulated
	// exploration graph. Planners without reusable exploration state
	// return an empty graph.
	PlannerData() *PlannerData

	// SpaceInformation returns the space information the planner was
	// allocated for.
	SpaceInformation() *statespace.SpaceInformation
}

// Algorithm is a planning-algorithm type that can construct fresh planner
// instances for a space.
type Algorithm interface {
	// ID returns the planner identifier, e.g. "geometric::RRTConnect".
	ID() string

	// New constructs a fresh, unseeded planner instance.
	New(si *statespace.SpaceInformation) Planner
}

// PersistentAlgorithm is implemented by the subset of algorithms whose
// instances can be reconstructed from a stored exploration graph. Only
// graph-based multi-query algorithms (the PRM family) support this; the
// allocator queries for it dynamically and degrades to fresh construction
// when it is absent.
type PersistentAlgorithm interface {
	Algorithm

	// NewFromData constructs a planner instance seeded with the given
	// exploration graph.
	NewFromData(si *statespace.SpaceInformation, data *PlannerData) (Planner, error)
}

// ConfiguredPlannerAllocator produces a ready-to-use planner instance for a
// space, instance name, and configuration. A nil allocator is the null
// capability returned for unknown planner ids; invoking one is the caller's
// configuration failure, not a crash.
type ConfiguredPlannerAllocator func(si *statespace.SpaceInformation, name string, config map[string]string) (Planner, error)

// ConfiguredPlannerSelector resolves a planner id to an allocation
// capability.
type ConfiguredPlannerSelector func(plannerID string) ConfiguredPlannerAllocator

// basePlanner carries the state shared by all built-in algorithm adapters.
type basePlanner struct {
	name        string
	algorithmID string
	si          *statespace.SpaceInformation
	params      map[string]string
}

func newBasePlanner(algorithmID string, si *statespace.SpaceInformation) basePlanner {
	return basePlanner{
		algorithmID: algorithmID,
		si:          si,
		params:      make(map[string]string),
	}
}

// Name returns the instance name.
func (p *basePlanner) Name() string {
	return p.name
}

// SetName sets the instance name.
func (p *basePlanner) SetName(name string) {
	p.name = name
}

// SetParams merges params into the planner's parameter set. All keys are
// accepted; unrecognized keys pass through to the algorithm untouched.
func (p *basePlanner) SetParams(params map[string]string) error {
	for key, value := range params {
		if key == "" {
			return fmt.Errorf("planner parameter key cannot be empty")
		}
		p.params[key] = value
	}
	return nil
}

// Params returns a copy of the applied parameters.
func (p *basePlanner) Params() map[string]string {
	out := make(map[string]string, len(p.params))
	for key, value := range p.params {
		out[key] = value
	}
	return out
}

// AlgorithmID returns the id of the algorithm this instance runs.
func (p *basePlanner) AlgorithmID() string {
	return p.algorithmID
}

// SpaceInformation returns the space information the planner was allocated
// for.
func (p *basePlanner) SpaceInformation() *statespace.SpaceInformation {
	return p.si
}
