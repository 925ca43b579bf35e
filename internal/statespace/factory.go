package statespace

import (
	"github.com/walking-machine/moveit2/internal/robot"
	"github.com/walking-machine/moveit2/internal/types"
)

// Factory builds state spaces of one parameterization type and scores its
// own applicability to a planning problem.
type Factory interface {
	// Type returns the parameterization type of the spaces this factory
	// builds.
	Type() string

	// NewStateSpace builds a state space from the specification.
	NewStateSpace(spec Specification) (StateSpace, error)

	// CanRepresentProblem scores how well this factory's parameterization
	// can encode the given (group, request) pair on the given model.
	// The score is a non-negative priority; zero means the problem cannot
	// be represented in this parameterization at all.
	CanRepresentProblem(group string, req types.MotionPlanRequest, model robot.Model) int
}

// poseStyleConstraint reports whether the request's path constraints describe
// a single end-effector pose: exactly one position constraint and exactly one
// orientation constraint on the same link.
func poseStyleConstraint(req types.MotionPlanRequest) bool {
	pc := req.PathConstraints
	if len(pc.PositionConstraints) != 1 || len(pc.OrientationConstraints) != 1 {
		return false
	}
	return pc.PositionConstraints[0].LinkName == pc.OrientationConstraints[0].LinkName
}
