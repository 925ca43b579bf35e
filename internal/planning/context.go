package planning

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/walking-machine/moveit2/internal/planner"
	"github.com/walking-machine/moveit2/internal/robot"
	"github.com/walking-machine/moveit2/internal/statespace"
	"github.com/walking-machine/moveit2/internal/types"
)

// configKeyPlannerType selects the planning algorithm inside a planner
// configuration.
const configKeyPlannerType = "type"

// DefaultAlgorithmID is the algorithm used when a planner configuration
// carries no "type" key.
const DefaultAlgorithmID = planner.RRTConnect

// ContextSpecification carries everything a planning context is built from.
type ContextSpecification struct {
	// Config holds the planner configuration parameters.
	Config map[string]string

	// PlannerSelector resolves planner ids to allocation capabilities.
	PlannerSelector planner.ConfiguredPlannerSelector

	// ConstraintSamplerManager selects goal samplers.
	ConstraintSamplerManager robot.ConstraintSamplerManager

	// StateSpace is the representation the context plans in. For
	// constrained planning this is the constrained base space.
	StateSpace statespace.StateSpace

	// ConstrainedSpace optionally wraps StateSpace with the request's
	// path constraints. Set only for constrained planning contexts.
	ConstrainedSpace *statespace.ProjectedStateSpace

	// SpaceInformation binds the planning space for planner allocation.
	SpaceInformation *statespace.SpaceInformation
}

// PlanningContext is a reusable bundle of state space, planner selection,
// and per-request planning state for one planner configuration. Contexts
// are expensive to build and cached by the planning context manager;
// request-specific state is (re)applied on every acquisition.
type PlanningContext struct {
	id   types.ID
	name string
	spec ContextSpecification

	// Manager-assigned numeric limits, reapplied on every acquisition.
	maxGoalSamples           int
	maxStateSamplingAttempts int
	maxGoalSamplingAttempts  int
	maxPlanningThreads       int
	maxSolutionSegmentLength float64
	minimumWaypointCount     int

	// Per-request state.
	scene                robot.PlanningScene
	request              types.MotionPlanRequest
	completeInitialState robot.State
	workspace            types.WorkspaceParameters
	pathConstraints      types.Constraints
	goalConstraints      []types.Constraints
	goalSampler          robot.ConstraintSampler
	planner              planner.Planner
	configured           bool

	// checkin returns the context to the cache; nil for uncached
	// (constrained) contexts.
	checkin func()

	logger *slog.Logger
}

// NewPlanningContext creates a context from a specification.
func NewPlanningContext(name string, spec ContextSpecification, logger *slog.Logger) (*PlanningContext, error) {
	if spec.StateSpace == nil {
		return nil, NewPlanningError(ErrorTypeInternal, "context specification has no state space")
	}
	if spec.SpaceInformation == nil {
		return nil, NewPlanningError(ErrorTypeInternal, "context specification has no space information")
	}
	if spec.PlannerSelector == nil {
		return nil, NewPlanningError(ErrorTypeInternal, "context specification has no planner selector")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanningContext{
		id:     types.NewID(),
		name:   name,
		spec:   spec,
		logger: logger,
	}, nil
}

// ID returns the context's unique identifier.
func (c *PlanningContext) ID() types.ID {
	return c.id
}

// Name returns the planner configuration name the context was built for.
func (c *PlanningContext) Name() string {
	return c.name
}

// ParameterizationType returns the state-space parameterization type the
// context is tagged with. Contexts are cached per (configuration name,
// parameterization type) pair.
func (c *PlanningContext) ParameterizationType() string {
	return c.spec.StateSpace.Type()
}

// Specification returns the context's specification.
func (c *PlanningContext) Specification() ContextSpecification {
	return c.spec
}

// Planner returns the configured planner instance, or nil before Configure.
func (c *PlanningContext) Planner() planner.Planner {
	return c.planner
}

// Clear drops all residual request-specific state.
func (c *PlanningContext) Clear() {
	c.scene = nil
	c.request = types.MotionPlanRequest{}
	c.completeInitialState = nil
	c.workspace = types.WorkspaceParameters{}
	c.pathConstraints = types.Constraints{}
	c.goalConstraints = nil
	c.goalSampler = nil
	c.planner = nil
	c.configured = false
}

// SetPlanningScene attaches the planning scene for the current request.
func (c *PlanningContext) SetPlanningScene(scene robot.PlanningScene) {
	c.scene = scene
}

// SetMotionPlanRequest attaches the current request.
func (c *PlanningContext) SetMotionPlanRequest(req types.MotionPlanRequest) {
	c.request = req
}

// SetCompleteInitialState sets the effective start state: the scene's
// current state with the request's start-state overrides applied.
func (c *PlanningContext) SetCompleteInitialState(state robot.State) {
	c.completeInitialState = state.Clone()
}

// CompleteInitialState returns the effective start state.
func (c *PlanningContext) CompleteInitialState() robot.State {
	return c.completeInitialState
}

// SetPlanningVolume sets the workspace bounds planning is restricted to.
func (c *PlanningContext) SetPlanningVolume(workspace types.WorkspaceParameters) {
	c.workspace = workspace
}

// SetPathConstraints validates and stores the request's path constraints.
func (c *PlanningContext) SetPathConstraints(constraints types.Constraints) error {
	if err := validateConstraints(constraints); err != nil {
		return WrapPlanningError(ErrorTypeConstraintRejected, "path constraints rejected", err)
	}
	c.pathConstraints = constraints
	return nil
}

// SetGoalConstraints validates and stores the request's goal constraints,
// each merged with the path constraints. At least one non-empty goal
// constraint set is required.
func (c *PlanningContext) SetGoalConstraints(goals []types.Constraints, pathConstraints types.Constraints) error {
	if len(goals) == 0 {
		return NewPlanningError(ErrorTypeConstraintRejected, "no goal constraints specified")
	}
	merged := make([]types.Constraints, 0, len(goals))
	for i, goal := range goals {
		if goal.Empty() {
			return NewPlanningError(ErrorTypeConstraintRejected,
				fmt.Sprintf("goal constraint set %d is empty", i))
		}
		if err := validateConstraints(goal); err != nil {
			return WrapPlanningError(ErrorTypeConstraintRejected,
				fmt.Sprintf("goal constraint set %d rejected", i), err)
		}
		merged = append(merged, mergeConstraints(goal, pathConstraints))
	}
	c.goalConstraints = merged
	return nil
}

// GoalConstraints returns the stored goal constraints.
func (c *PlanningContext) GoalConstraints() []types.Constraints {
	return c.goalConstraints
}

// Configure materializes the planner for the current request: it resolves
// the algorithm named by the configuration's "type" key through the planner
// selector, allocates the instance, and selects a goal sampler. A nil
// allocation capability (unknown planner id) fails cleanly.
func (c *PlanningContext) Configure(ctx context.Context) error {
	plannerType := c.spec.Config[configKeyPlannerType]
	if plannerType == "" {
		plannerType = DefaultAlgorithmID
	}

	allocator := c.spec.PlannerSelector(plannerType)
	if allocator == nil {
		return NewPlanningError(ErrorTypeAllocationFailed,
			fmt.Sprintf("no allocator available for planner %q", plannerType)).
			WithContext("context", c.name)
	}

	config := make(map[string]string, len(c.spec.Config))
	for key, value := range c.spec.Config {
		if key == configKeyPlannerType {
			continue
		}
		config[key] = value
	}

	instance, err := allocator(c.spec.SpaceInformation, c.name, config)
	if err != nil {
		return WrapPlanningError(ErrorTypeAllocationFailed,
			fmt.Sprintf("allocating planner %q", plannerType), err)
	}
	if instance == nil {
		return NewPlanningError(ErrorTypeAllocationFailed,
			fmt.Sprintf("allocator for planner %q returned no instance", plannerType))
	}

	if c.spec.ConstraintSamplerManager != nil && len(c.goalConstraints) > 0 {
		sampler, err := c.spec.ConstraintSamplerManager.SelectSampler(
			c.spec.StateSpace.GroupName(), c.goalConstraints[0])
		if err != nil {
			return WrapPlanningError(ErrorTypeInternal, "selecting goal constraint sampler", err)
		}
		c.goalSampler = sampler
	}

	c.planner = instance
	c.configured = true
	c.logger.Debug("planning context configured",
		"context", c.name, "planner", plannerType,
		"parameterization", c.ParameterizationType())
	return nil
}

// Configured reports whether Configure completed for the current request.
func (c *PlanningContext) Configured() bool {
	return c.configured
}

// Release returns the context to the cache so later acquisitions can reuse
// it. Releasing an uncached (constrained) context is a no-op. Release is
// idempotent.
func (c *PlanningContext) Release() {
	if c.checkin != nil {
		checkin := c.checkin
		c.checkin = nil
		checkin()
	}
}

// validateConstraints rejects structurally invalid constraints: missing
// joint or link names, negative tolerances, or negative weights.
func validateConstraints(constraints types.Constraints) error {
	for _, jc := range constraints.JointConstraints {
		if jc.JointName == "" {
			return fmt.Errorf("joint constraint has no joint name")
		}
		if jc.ToleranceAbove < 0 || jc.ToleranceBelow < 0 {
			return fmt.Errorf("joint constraint on %q has negative tolerance", jc.JointName)
		}
		if jc.Weight < 0 {
			return fmt.Errorf("joint constraint on %q has negative weight", jc.JointName)
		}
	}
	for _, pc := range constraints.PositionConstraints {
		if pc.LinkName == "" {
			return fmt.Errorf("position constraint has no link name")
		}
		for _, tol := range pc.Tolerance {
			if tol < 0 {
				return fmt.Errorf("position constraint on %q has negative tolerance", pc.LinkName)
			}
		}
		if pc.Weight < 0 {
			return fmt.Errorf("position constraint on %q has negative weight", pc.LinkName)
		}
	}
	for _, oc := range constraints.OrientationConstraints {
		if oc.LinkName == "" {
			return fmt.Errorf("orientation constraint has no link name")
		}
		if oc.Target == [4]float64{} {
			return fmt.Errorf("orientation constraint on %q has a zero quaternion target", oc.LinkName)
		}
		for _, tol := range oc.AxisTolerance {
			if tol < 0 {
				return fmt.Errorf("orientation constraint on %q has negative tolerance", oc.LinkName)
			}
		}
		if oc.Weight < 0 {
			return fmt.Errorf("orientation constraint on %q has negative weight", oc.LinkName)
		}
	}
	return nil
}

// mergeConstraints combines a goal constraint set with the path constraints
// so goal sampling respects both.
func mergeConstraints(goal, path types.Constraints) types.Constraints {
	merged := types.Constraints{Name: goal.Name}
	merged.JointConstraints = append(append([]types.JointConstraint(nil),
		goal.JointConstraints...), path.JointConstraints...)
	merged.PositionConstraints = append(append([]types.PositionConstraint(nil),
		goal.PositionConstraints...), path.PositionConstraints...)
	merged.OrientationConstraints = append(append([]types.OrientationConstraint(nil),
		goal.OrientationConstraints...), path.OrientationConstraints...)
	return merged
}
