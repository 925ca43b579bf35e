package statespace

import (
	"fmt"

	"github.com/walking-machine/moveit2/internal/robot"
	"github.com/walking-machine/moveit2/internal/types"
)

// ConstrainedParameterization identifies constraint-wrapped joint-space
// state spaces.
const ConstrainedParameterization = "ConstrainedPlanningJointModel"

// Constraint is a differentiable function over a state space that a
// projected state space keeps satisfied during sampling.
type Constraint interface {
	// Describe returns a human-readable summary of the constraint.
	Describe() string

	// LinkName returns the link the constraint applies to.
	LinkName() string
}

// positionConstraint adapts a request position constraint.
type positionConstraint struct {
	pc types.PositionConstraint
}

func (c *positionConstraint) Describe() string {
	return fmt.Sprintf("position of %q within %v of %v", c.pc.LinkName, c.pc.Tolerance, c.pc.Target)
}

func (c *positionConstraint) LinkName() string {
	return c.pc.LinkName
}

// orientationConstraint adapts a request orientation constraint.
type orientationConstraint struct {
	oc types.OrientationConstraint
}

func (c *orientationConstraint) Describe() string {
	return fmt.Sprintf("orientation of %q within %v of %v", c.oc.LinkName, c.oc.AxisTolerance, c.oc.Target)
}

func (c *orientationConstraint) LinkName() string {
	return c.oc.LinkName
}

// ConstraintSet bundles the constraints derived from a request's path
// constraints. Constrained planning requires at least one member.
type ConstraintSet struct {
	constraints []Constraint
}

// NewConstraintSet derives a constraint set from the path constraints of a
// planning request. Position and orientation constraints are supported;
// joint constraints are handled by rejection sampling elsewhere and are
// ignored here.
func NewConstraintSet(model robot.Model, group string, pathConstraints types.Constraints) (*ConstraintSet, error) {
	if model == nil {
		return nil, fmt.Errorf("constraint derivation requires a robot model")
	}
	if _, ok := model.Group(group); !ok {
		return nil, fmt.Errorf("robot model %q has no group %q", model.Name(), group)
	}
	set := &ConstraintSet{}
	for _, pc := range pathConstraints.PositionConstraints {
		set.constraints = append(set.constraints, &positionConstraint{pc: pc})
	}
	for _, oc := range pathConstraints.OrientationConstraints {
		set.constraints = append(set.constraints, &orientationConstraint{oc: oc})
	}
	if len(set.constraints) == 0 {
		return nil, fmt.Errorf("path constraints contain no position or orientation constraint to project onto")
	}
	return set, nil
}

// Constraints returns the member constraints.
func (s *ConstraintSet) Constraints() []Constraint {
	return s.constraints
}

// ConstrainedPlanningStateSpace is a joint-space representation intended to
// be wrapped in a ProjectedStateSpace so samples stay on the constraint
// manifold.
type ConstrainedPlanningStateSpace struct {
	JointModelStateSpace
}

// NewConstrainedPlanningStateSpace builds the base space for constrained
// planning.
func NewConstrainedPlanningStateSpace(spec Specification) (*ConstrainedPlanningStateSpace, error) {
	base, err := NewJointModelStateSpace(spec)
	if err != nil {
		return nil, err
	}
	return &ConstrainedPlanningStateSpace{JointModelStateSpace: *base}, nil
}

// Type returns the constrained parameterization type.
func (s *ConstrainedPlanningStateSpace) Type() string {
	return ConstrainedParameterization
}

// Name returns the space name.
func (s *ConstrainedPlanningStateSpace) Name() string {
	return s.GroupName() + "_" + ConstrainedParameterization
}

// ProjectedStateSpace wraps a base state space with a constraint set.
// Samples drawn from it are projected onto the constraint manifold.
type ProjectedStateSpace struct {
	base        StateSpace
	constraints *ConstraintSet
}

// NewProjectedStateSpace wraps base with the given constraint set.
func NewProjectedStateSpace(base StateSpace, constraints *ConstraintSet) (*ProjectedStateSpace, error) {
	if base == nil {
		return nil, fmt.Errorf("projected state space requires a base space")
	}
	if constraints == nil || len(constraints.constraints) == 0 {
		return nil, fmt.Errorf("projected state space requires a non-empty constraint set")
	}
	return &ProjectedStateSpace{base: base, constraints: constraints}, nil
}

// Type returns the base space's parameterization type. The projection is a
// wrapper, not a parameterization of its own.
func (s *ProjectedStateSpace) Type() string {
	return s.base.Type()
}

// Name returns the space name.
func (s *ProjectedStateSpace) Name() string {
	return s.base.Name() + "_projected"
}

// GroupName returns the joint group of the base space.
func (s *ProjectedStateSpace) GroupName() string {
	return s.base.GroupName()
}

// Dimension returns the dimension of the base space.
func (s *ProjectedStateSpace) Dimension() int {
	return s.base.Dimension()
}

// Base returns the wrapped base space.
func (s *ProjectedStateSpace) Base() StateSpace {
	return s.base
}

// ConstraintSet returns the constraints the space projects onto.
func (s *ProjectedStateSpace) ConstraintSet() *ConstraintSet {
	return s.constraints
}

// ConstrainedPlanningStateSpaceFactory builds constrained base spaces.
// It never wins priority scoring: constrained planning is opt-in through
// the enforce_constrained_state_space configuration flag, so scoring
// always reports the problem as unrepresentable.
type ConstrainedPlanningStateSpaceFactory struct{}

// NewConstrainedPlanningStateSpaceFactory creates the factory.
func NewConstrainedPlanningStateSpaceFactory() *ConstrainedPlanningStateSpaceFactory {
	return &ConstrainedPlanningStateSpaceFactory{}
}

// Type returns the constrained parameterization type.
func (f *ConstrainedPlanningStateSpaceFactory) Type() string {
	return ConstrainedParameterization
}

// NewStateSpace builds a constrained-planning base space.
func (f *ConstrainedPlanningStateSpaceFactory) NewStateSpace(spec Specification) (StateSpace, error) {
	return NewConstrainedPlanningStateSpace(spec)
}

// CanRepresentProblem always returns 0; see the type comment.
func (f *ConstrainedPlanningStateSpaceFactory) CanRepresentProblem(string, types.MotionPlanRequest, robot.Model) int {
	return 0
}
