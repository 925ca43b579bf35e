package statespace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walking-machine/moveit2/internal/robot"
	"github.com/walking-machine/moveit2/internal/types"
)

func testModel(t *testing.T) *robot.StaticModel {
	t.Helper()
	model, err := robot.NewStaticModel("test_robot",
		robot.GroupSpec{
			Name:        "arm",
			Variables:   []string{"joint_1", "joint_2", "joint_3"},
			HasIKSolver: true,
		},
		robot.GroupSpec{
			Name:      "gripper",
			Variables: []string{"finger_joint"},
		},
	)
	require.NoError(t, err)
	return model
}

func poseConstrainedRequest(group string) types.MotionPlanRequest {
	return types.MotionPlanRequest{
		GroupName: group,
		PathConstraints: types.Constraints{
			PositionConstraints: []types.PositionConstraint{
				{LinkName: "tool0", Tolerance: [3]float64{0.01, 0.01, 0.01}},
			},
			OrientationConstraints: []types.OrientationConstraint{
				{LinkName: "tool0", Target: [4]float64{0, 0, 0, 1}},
			},
		},
	}
}

func TestJointModelStateSpaceFactory(t *testing.T) {
	model := testModel(t)
	factory := NewJointModelStateSpaceFactory()

	t.Run("baseline_priority_for_known_group", func(t *testing.T) {
		priority := factory.CanRepresentProblem("arm", types.MotionPlanRequest{GroupName: "arm"}, model)
		assert.Equal(t, 100, priority)
	})

	t.Run("unknown_group_cannot_be_represented", func(t *testing.T) {
		priority := factory.CanRepresentProblem("torso", types.MotionPlanRequest{GroupName: "torso"}, model)
		assert.Equal(t, 0, priority)
	})

	t.Run("builds_space_with_group_dimension", func(t *testing.T) {
		space, err := factory.NewStateSpace(Specification{RobotModel: model, GroupName: "arm"})
		require.NoError(t, err)
		assert.Equal(t, JointModelParameterization, space.Type())
		assert.Equal(t, 3, space.Dimension())
	})

	t.Run("unknown_group_fails_construction", func(t *testing.T) {
		_, err := factory.NewStateSpace(Specification{RobotModel: model, GroupName: "torso"})
		assert.Error(t, err)
	})
}

func TestPoseModelStateSpaceFactory(t *testing.T) {
	model := testModel(t)
	factory := NewPoseModelStateSpaceFactory()

	t.Run("outranks_joint_space_for_pose_constrained_problem", func(t *testing.T) {
		priority := factory.CanRepresentProblem("arm", poseConstrainedRequest("arm"), model)
		assert.Equal(t, 150, priority)
	})

	t.Run("lower_priority_without_pose_constraint", func(t *testing.T) {
		priority := factory.CanRepresentProblem("arm", types.MotionPlanRequest{GroupName: "arm"}, model)
		assert.Equal(t, 50, priority)
	})

	t.Run("no_ik_solver_cannot_be_represented", func(t *testing.T) {
		priority := factory.CanRepresentProblem("gripper", poseConstrainedRequest("gripper"), model)
		assert.Equal(t, 0, priority)
	})

	t.Run("construction_requires_ik_solver", func(t *testing.T) {
		_, err := factory.NewStateSpace(Specification{RobotModel: model, GroupName: "gripper"})
		assert.Error(t, err)

		space, err := factory.NewStateSpace(Specification{RobotModel: model, GroupName: "arm"})
		require.NoError(t, err)
		assert.Equal(t, PoseModelParameterization, space.Type())
	})

	t.Run("pose_constraints_on_different_links_do_not_count", func(t *testing.T) {
		req := poseConstrainedRequest("arm")
		req.PathConstraints.OrientationConstraints[0].LinkName = "tool1"
		assert.Equal(t, 50, factory.CanRepresentProblem("arm", req, model))
	})
}

func TestConstrainedPlanningStateSpaceFactory(t *testing.T) {
	model := testModel(t)
	factory := NewConstrainedPlanningStateSpaceFactory()

	t.Run("never_wins_priority_scoring", func(t *testing.T) {
		assert.Equal(t, 0, factory.CanRepresentProblem("arm", poseConstrainedRequest("arm"), model))
	})

	t.Run("builds_constrained_base_space", func(t *testing.T) {
		space, err := factory.NewStateSpace(Specification{RobotModel: model, GroupName: "arm"})
		require.NoError(t, err)
		assert.Equal(t, ConstrainedParameterization, space.Type())
		assert.Equal(t, 3, space.Dimension())
	})
}

func TestProjectedStateSpace(t *testing.T) {
	model := testModel(t)

	base, err := NewConstrainedPlanningStateSpace(Specification{RobotModel: model, GroupName: "arm"})
	require.NoError(t, err)

	t.Run("wraps_base_space_with_constraints", func(t *testing.T) {
		set, err := NewConstraintSet(model, "arm", poseConstrainedRequest("arm").PathConstraints)
		require.NoError(t, err)

		projected, err := NewProjectedStateSpace(base, set)
		require.NoError(t, err)
		assert.Equal(t, ConstrainedParameterization, projected.Type())
		assert.Equal(t, base.Dimension(), projected.Dimension())
		assert.Len(t, projected.ConstraintSet().Constraints(), 2)

		si := NewConstrainedSpaceInformation(projected)
		assert.True(t, si.IsConstrained())
	})

	t.Run("requires_constraints", func(t *testing.T) {
		_, err := NewProjectedStateSpace(base, nil)
		assert.Error(t, err)
	})
}

func TestNewConstraintSet(t *testing.T) {
	model := testModel(t)

	t.Run("derives_position_and_orientation_constraints", func(t *testing.T) {
		set, err := NewConstraintSet(model, "arm", poseConstrainedRequest("arm").PathConstraints)
		require.NoError(t, err)
		require.Len(t, set.Constraints(), 2)
		assert.Equal(t, "tool0", set.Constraints()[0].LinkName())
	})

	t.Run("empty_path_constraints_fail", func(t *testing.T) {
		_, err := NewConstraintSet(model, "arm", types.Constraints{})
		assert.Error(t, err)
	})

	t.Run("unknown_group_fails", func(t *testing.T) {
		_, err := NewConstraintSet(model, "torso", poseConstrainedRequest("torso").PathConstraints)
		assert.Error(t, err)
	})
}
