package statespace

import (
	"github.com/walking-machine/moveit2/internal/robot"
	"github.com/walking-machine/moveit2/internal/types"
)

// JointModelParameterization identifies joint-space state spaces.
const JointModelParameterization = "JointModel"

// JointModelStateSpace represents configurations as a vector of joint
// variable positions.
type JointModelStateSpace struct {
	group *robot.JointGroup
}

// NewJointModelStateSpace builds a joint-space representation for the
// specified group.
func NewJointModelStateSpace(spec Specification) (*JointModelStateSpace, error) {
	group, err := groupOrError(spec)
	if err != nil {
		return nil, err
	}
	return &JointModelStateSpace{group: group}, nil
}

// Type returns the joint-model parameterization type.
func (s *JointModelStateSpace) Type() string {
	return JointModelParameterization
}

// Name returns the space name.
func (s *JointModelStateSpace) Name() string {
	return s.group.Name + "_" + JointModelParameterization
}

// GroupName returns the joint group the space was built for.
func (s *JointModelStateSpace) GroupName() string {
	return s.group.Name
}

// Dimension returns the number of joint variables.
func (s *JointModelStateSpace) Dimension() int {
	return s.group.VariableCount()
}

// JointModelStateSpaceFactory builds joint-space representations. Any known
// group can be represented this way, so it scores a constant baseline
// priority and acts as the fallback parameterization.
type JointModelStateSpaceFactory struct{}

// NewJointModelStateSpaceFactory creates the factory.
func NewJointModelStateSpaceFactory() *JointModelStateSpaceFactory {
	return &JointModelStateSpaceFactory{}
}

// Type returns the joint-model parameterization type.
func (f *JointModelStateSpaceFactory) Type() string {
	return JointModelParameterization
}

// NewStateSpace builds a joint-model state space.
func (f *JointModelStateSpaceFactory) NewStateSpace(spec Specification) (StateSpace, error) {
	return NewJointModelStateSpace(spec)
}

// CanRepresentProblem returns the baseline priority of 100 for any group the
// model knows, and 0 for unknown groups.
func (f *JointModelStateSpaceFactory) CanRepresentProblem(group string, _ types.MotionPlanRequest, model robot.Model) int {
	if model == nil {
		return 0
	}
	if _, ok := model.Group(group); !ok {
		return 0
	}
	return 100
}
