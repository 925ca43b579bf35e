package planning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walking-machine/moveit2/internal/planner"
	"github.com/walking-machine/moveit2/internal/robot"
	"github.com/walking-machine/moveit2/internal/statespace"
	"github.com/walking-machine/moveit2/internal/types"
)

func newTestContext(t *testing.T, config map[string]string, selector planner.ConfiguredPlannerSelector) *PlanningContext {
	t.Helper()
	model := testModel(t)
	space, err := statespace.NewJointModelStateSpaceFactory().NewStateSpace(statespace.Specification{
		RobotModel: model,
		GroupName:  "arm",
	})
	require.NoError(t, err)

	pc, err := NewPlanningContext("arm", ContextSpecification{
		Config:                   config,
		PlannerSelector:          selector,
		ConstraintSamplerManager: robot.NewSamplerManager(model),
		StateSpace:               space,
		SpaceInformation:         statespace.NewSpaceInformation(space),
	}, nil)
	require.NoError(t, err)
	return pc
}

func recordingSelector(t *testing.T, requested *string) planner.ConfiguredPlannerSelector {
	t.Helper()
	allocator := planner.NewMultiQueryAllocator(nil, nil)
	return func(plannerID string) planner.ConfiguredPlannerAllocator {
		*requested = plannerID
		for _, alg := range planner.DefaultAlgorithms() {
			if alg.ID() == plannerID {
				return allocator.AllocatorFor(alg)
			}
		}
		return nil
	}
}

func TestNewPlanningContextValidation(t *testing.T) {
	model := testModel(t)
	space, err := statespace.NewJointModelStateSpaceFactory().NewStateSpace(statespace.Specification{
		RobotModel: model,
		GroupName:  "arm",
	})
	require.NoError(t, err)
	selector := func(string) planner.ConfiguredPlannerAllocator { return nil }

	cases := []struct {
		name string
		spec ContextSpecification
	}{
		{"missing_state_space", ContextSpecification{
			PlannerSelector:  selector,
			SpaceInformation: statespace.NewSpaceInformation(space),
		}},
		{"missing_space_information", ContextSpecification{
			PlannerSelector: selector,
			StateSpace:      space,
		}},
		{"missing_planner_selector", ContextSpecification{
			StateSpace:       space,
			SpaceInformation: statespace.NewSpaceInformation(space),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPlanningContext("arm", tc.spec, nil)
			assert.ErrorIs(t, err, &PlanningError{Type: ErrorTypeInternal})
		})
	}
}

func TestContextConfigure(t *testing.T) {
	goal := []types.Constraints{{
		JointConstraints: []types.JointConstraint{{
			JointName: "joint_1", Position: 0.1, ToleranceAbove: 0.2, ToleranceBelow: 0.2, Weight: 1,
		}},
	}}

	t.Run("resolves_configured_planner_type", func(t *testing.T) {
		var requested string
		pc := newTestContext(t, map[string]string{"type": planner.RRTstar}, recordingSelector(t, &requested))
		require.NoError(t, pc.SetGoalConstraints(goal, types.Constraints{}))

		require.NoError(t, pc.Configure(context.Background()))
		assert.Equal(t, planner.RRTstar, requested)
		assert.True(t, pc.Configured())
		require.NotNil(t, pc.Planner())
		assert.Equal(t, "arm", pc.Planner().Name())
	})

	t.Run("missing_type_falls_back_to_default_algorithm", func(t *testing.T) {
		var requested string
		pc := newTestContext(t, map[string]string{}, recordingSelector(t, &requested))
		require.NoError(t, pc.SetGoalConstraints(goal, types.Constraints{}))

		require.NoError(t, pc.Configure(context.Background()))
		assert.Equal(t, DefaultAlgorithmID, requested)
	})

	t.Run("type_key_not_forwarded_to_the_planner", func(t *testing.T) {
		var requested string
		pc := newTestContext(t, map[string]string{"type": planner.RRTConnect, "range": "0.2"},
			recordingSelector(t, &requested))
		require.NoError(t, pc.SetGoalConstraints(goal, types.Constraints{}))

		require.NoError(t, pc.Configure(context.Background()))
		params := pc.Planner().Params()
		assert.NotContains(t, params, "type")
		assert.Equal(t, "0.2", params["range"])
	})

	t.Run("nil_allocator_is_an_allocation_failure", func(t *testing.T) {
		pc := newTestContext(t, map[string]string{"type": "geometric::Bogus"},
			func(string) planner.ConfiguredPlannerAllocator { return nil })
		require.NoError(t, pc.SetGoalConstraints(goal, types.Constraints{}))

		err := pc.Configure(context.Background())
		assert.ErrorIs(t, err, &PlanningError{Type: ErrorTypeAllocationFailed})
		assert.False(t, pc.Configured())
		assert.Nil(t, pc.Planner())
	})
}

func TestContextConstraints(t *testing.T) {
	selector := func(string) planner.ConfiguredPlannerAllocator { return nil }

	t.Run("path_constraints_validated", func(t *testing.T) {
		pc := newTestContext(t, nil, selector)
		err := pc.SetPathConstraints(types.Constraints{
			PositionConstraints: []types.PositionConstraint{{LinkName: "", Weight: 1}},
		})
		assert.ErrorIs(t, err, &PlanningError{Type: ErrorTypeConstraintRejected})
	})

	t.Run("zero_quaternion_target_rejected", func(t *testing.T) {
		pc := newTestContext(t, nil, selector)
		err := pc.SetPathConstraints(types.Constraints{
			OrientationConstraints: []types.OrientationConstraint{{LinkName: "tool0", Weight: 1}},
		})
		assert.Error(t, err)
	})

	t.Run("goal_constraints_must_not_be_empty", func(t *testing.T) {
		pc := newTestContext(t, nil, selector)
		assert.Error(t, pc.SetGoalConstraints(nil, types.Constraints{}))
		assert.Error(t, pc.SetGoalConstraints([]types.Constraints{{}}, types.Constraints{}))
	})

	t.Run("goal_constraints_merge_path_constraints", func(t *testing.T) {
		pc := newTestContext(t, nil, selector)
		goal := []types.Constraints{{
			JointConstraints: []types.JointConstraint{{JointName: "joint_1", Weight: 1}},
		}}
		path := types.Constraints{
			PositionConstraints: []types.PositionConstraint{{LinkName: "tool0", Weight: 1}},
		}
		require.NoError(t, pc.SetGoalConstraints(goal, path))

		merged := pc.GoalConstraints()
		require.Len(t, merged, 1)
		assert.Len(t, merged[0].JointConstraints, 1)
		assert.Len(t, merged[0].PositionConstraints, 1)
	})

	t.Run("negative_tolerance_in_goal_rejected", func(t *testing.T) {
		pc := newTestContext(t, nil, selector)
		err := pc.SetGoalConstraints([]types.Constraints{{
			JointConstraints: []types.JointConstraint{{JointName: "joint_1", ToleranceAbove: -1}},
		}}, types.Constraints{})
		assert.ErrorIs(t, err, &PlanningError{Type: ErrorTypeConstraintRejected})
	})
}

func TestContextClear(t *testing.T) {
	var requested string
	pc := newTestContext(t, map[string]string{"type": planner.RRTConnect}, recordingSelector(t, &requested))

	scene := robot.NewScene(robot.State{"joint_1": 0})
	pc.SetPlanningScene(scene)
	pc.SetCompleteInitialState(robot.State{"joint_1": 0.5})
	pc.SetPlanningVolume(types.WorkspaceParameters{MaxCorner: [3]float64{1, 1, 1}})
	require.NoError(t, pc.SetGoalConstraints([]types.Constraints{{
		JointConstraints: []types.JointConstraint{{JointName: "joint_1", Weight: 1}},
	}}, types.Constraints{}))
	require.NoError(t, pc.Configure(context.Background()))
	require.True(t, pc.Configured())

	pc.Clear()
	assert.False(t, pc.Configured())
	assert.Nil(t, pc.Planner())
	assert.Nil(t, pc.CompleteInitialState())
	assert.Empty(t, pc.GoalConstraints())
}

func TestSetCompleteInitialStateClones(t *testing.T) {
	pc := newTestContext(t, nil, func(string) planner.ConfiguredPlannerAllocator { return nil })

	state := robot.State{"joint_1": 0.5}
	pc.SetCompleteInitialState(state)
	state["joint_1"] = 9.9

	assert.Equal(t, 0.5, pc.CompleteInitialState()["joint_1"])
}

func TestSetSpecificationConfigCopies(t *testing.T) {
	pc := newTestContext(t, nil, func(string) planner.ConfiguredPlannerAllocator { return nil })

	config := map[string]string{"range": "0.1"}
	pc.SetSpecificationConfig(config)
	config["range"] = "9.9"

	assert.Equal(t, "0.1", pc.Specification().Config["range"])
}
