package robot

import (
	"fmt"

	"github.com/walking-machine/moveit2/internal/types"
)

// ConstraintSampler produces robot states satisfying a constraint set.
// Sampling strategy internals are outside this subsystem; contexts only
// need to hold a sampler selected for their goal constraints.
type ConstraintSampler interface {
	// GroupName returns the joint group the sampler samples for.
	GroupName() string

	// Sample returns a state satisfying the sampler's constraints, or an
	// error after the given number of attempts.
	Sample(maxAttempts int) (State, error)
}

// ConstraintSamplerManager selects a sampler for a constraint set.
type ConstraintSamplerManager interface {
	// SelectSampler returns a sampler for the given group and constraint
	// set, or an error if no sampler can serve the constraints.
	SelectSampler(group string, constraints types.Constraints) (ConstraintSampler, error)
}

// SamplerManager is the default ConstraintSamplerManager. It serves joint
// constraints directly and defers everything else to uniform sampling over
// the group's bounds.
type SamplerManager struct {
	model Model
}

// NewSamplerManager creates a SamplerManager over the given robot model.
func NewSamplerManager(model Model) *SamplerManager {
	return &SamplerManager{model: model}
}

// SelectSampler returns a sampler for the given group and constraints.
func (m *SamplerManager) SelectSampler(group string, constraints types.Constraints) (ConstraintSampler, error) {
	jointGroup, ok := m.model.Group(group)
	if !ok {
		return nil, fmt.Errorf("unknown joint group %q", group)
	}
	return &groupSampler{group: jointGroup, constraints: constraints}, nil
}

// groupSampler samples the midpoint of each variable's feasible interval,
// narrowed by any joint constraints. Deterministic on purpose: sampling
// quality belongs to the constraint-sampling collaborator, not here.
type groupSampler struct {
	group       *JointGroup
	constraints types.Constraints
}

func (s *groupSampler) GroupName() string {
	return s.group.Name
}

func (s *groupSampler) Sample(maxAttempts int) (State, error) {
	if maxAttempts <= 0 {
		return nil, fmt.Errorf("maxAttempts must be positive, got %d", maxAttempts)
	}
	state := make(State, len(s.group.VariableNames))
	for _, name := range s.group.VariableNames {
		bounds := s.group.Bounds[name]
		low, high := bounds.Min, bounds.Max
		for _, jc := range s.constraints.JointConstraints {
			if jc.JointName != name {
				continue
			}
			if lo := jc.Position - jc.ToleranceBelow; lo > low {
				low = lo
			}
			if hi := jc.Position + jc.ToleranceAbove; hi < high {
				high = hi
			}
		}
		if low > high {
			return nil, fmt.Errorf("joint %q has an empty feasible interval", name)
		}
		state[name] = (low + high) / 2
	}
	return state, nil
}
