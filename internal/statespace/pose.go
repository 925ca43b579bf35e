package statespace

import (
	"fmt"

	"github.com/walking-machine/moveit2/internal/robot"
	"github.com/walking-machine/moveit2/internal/types"
)

// PoseModelParameterization identifies pose-space state spaces.
const PoseModelParameterization = "PoseModel"

// PoseModelStateSpace represents configurations as end-effector poses,
// with joint values recovered through inverse kinematics.
type PoseModelStateSpace struct {
	group *robot.JointGroup
}

// NewPoseModelStateSpace builds a pose-space representation for the
// specified group. The group must have an IK solver configured.
func NewPoseModelStateSpace(spec Specification) (*PoseModelStateSpace, error) {
	group, err := groupOrError(spec)
	if err != nil {
		return nil, err
	}
	if !group.HasIKSolver {
		return nil, fmt.Errorf("group %q has no IK solver; pose model state space requires one", group.Name)
	}
	return &PoseModelStateSpace{group: group}, nil
}

// Type returns the pose-model parameterization type.
func (s *PoseModelStateSpace) Type() string {
	return PoseModelParameterization
}

// Name returns the space name.
func (s *PoseModelStateSpace) Name() string {
	return s.group.Name + "_" + PoseModelParameterization
}

// GroupName returns the joint group the space was built for.
func (s *PoseModelStateSpace) GroupName() string {
	return s.group.Name
}

// Dimension returns the pose dimension: 3 position + 4 orientation components.
func (s *PoseModelStateSpace) Dimension() int {
	return 7
}

// PoseModelStateSpaceFactory builds pose-space representations. It outranks
// the joint-space factory when the group has an IK solver and the request
// constrains a single end-effector pose, since sampling poses directly and
// solving IK converges faster for such problems.
type PoseModelStateSpaceFactory struct{}

// NewPoseModelStateSpaceFactory creates the factory.
func NewPoseModelStateSpaceFactory() *PoseModelStateSpaceFactory {
	return &PoseModelStateSpaceFactory{}
}

// Type returns the pose-model parameterization type.
func (f *PoseModelStateSpaceFactory) Type() string {
	return PoseModelParameterization
}

// NewStateSpace builds a pose-model state space.
func (f *PoseModelStateSpaceFactory) NewStateSpace(spec Specification) (StateSpace, error) {
	return NewPoseModelStateSpace(spec)
}

// CanRepresentProblem scores 150 when the group has an IK solver and the
// request carries a single pose-style path constraint, 50 when an IK solver
// exists without such a constraint, and 0 without an IK solver.
func (f *PoseModelStateSpaceFactory) CanRepresentProblem(group string, req types.MotionPlanRequest, model robot.Model) int {
	if model == nil {
		return 0
	}
	jointGroup, ok := model.Group(group)
	if !ok || !jointGroup.HasIKSolver {
		return 0
	}
	if poseStyleConstraint(req) {
		return 150
	}
	return 50
}
