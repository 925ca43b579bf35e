// Package statespace provides the geometric state representations a planning
// algorithm can operate in, the factories that build them, and the priority
// scoring used to pick a representation for a given planning problem.
package statespace

import (
	"fmt"

	"github.com/walking-machine/moveit2/internal/robot"
)

// Specification carries everything needed to build a state space for one
// joint group of a robot model.
type Specification struct {
	// RobotModel is the kinematic model the space is built over.
	RobotModel robot.Model

	// GroupName is the joint group the space represents.
	GroupName string
}

// StateSpace is a geometric encoding of a robot configuration.
type StateSpace interface {
	// Type returns the parameterization type identifying this kind of
	// space. Contexts are cached per (configuration, parameterization
	// type) pair.
	Type() string

	// Name returns a human-readable name for this space instance.
	Name() string

	// GroupName returns the joint group this space was built for.
	GroupName() string

	// Dimension returns the number of variables in the space.
	Dimension() int
}

// SpaceInformation binds a state space to the planning machinery that
// operates on it. Planners receive one at allocation time.
type SpaceInformation struct {
	space       StateSpace
	constrained bool
}

// NewSpaceInformation creates space information for an unconstrained space.
func NewSpaceInformation(space StateSpace) *SpaceInformation {
	return &SpaceInformation{space: space}
}

// NewConstrainedSpaceInformation creates space information for a projected
// (constraint-wrapped) state space. This ensures the constrained space is
// initialized as the planning space rather than its underlying base space.
func NewConstrainedSpaceInformation(space *ProjectedStateSpace) *SpaceInformation {
	return &SpaceInformation{space: space, constrained: true}
}

// StateSpace returns the space this information is bound to.
func (si *SpaceInformation) StateSpace() StateSpace {
	return si.space
}

// IsConstrained reports whether the bound space is a projected
// constraint-wrapped space.
func (si *SpaceInformation) IsConstrained() bool {
	return si.constrained
}

// groupOrError resolves a joint group from a specification, with a uniform
// error message for the factories.
func groupOrError(spec Specification) (*robot.JointGroup, error) {
	if spec.RobotModel == nil {
		return nil, fmt.Errorf("specification has no robot model")
	}
	group, ok := spec.RobotModel.Group(spec.GroupName)
	if !ok {
		return nil, fmt.Errorf("robot model %q has no group %q", spec.RobotModel.Name(), spec.GroupName)
	}
	return group, nil
}
