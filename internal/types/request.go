package types

// WorkspaceParameters describes the axis-aligned bounding box the robot is
// allowed to plan in. The zero value means the workspace is unbounded.
type WorkspaceParameters struct {
	// MinCorner is the minimum corner of the workspace box (x, y, z).
	MinCorner [3]float64 `yaml:"min_corner" json:"min_corner"`

	// MaxCorner is the maximum corner of the workspace box (x, y, z).
	MaxCorner [3]float64 `yaml:"max_corner" json:"max_corner"`
}

// IsZero reports whether no workspace bounds were supplied.
func (w WorkspaceParameters) IsZero() bool {
	return w.MinCorner == [3]float64{} && w.MaxCorner == [3]float64{}
}

// MotionPlanRequest is the inbound planning request consumed by the planning
// context manager. Only the fields this subsystem inspects are modeled; the
// request is otherwise forwarded opaquely to the selected planning context.
type MotionPlanRequest struct {
	// GroupName is the joint group to plan for. Required.
	GroupName string `yaml:"group_name" json:"group_name"`

	// PlannerID optionally selects a specific planner configuration.
	// When set, the configuration is resolved via the composite
	// "group[planner_id]" key before falling back to the plain group key.
	PlannerID string `yaml:"planner_id,omitempty" json:"planner_id,omitempty"`

	// StartState holds joint-variable overrides applied on top of the
	// planning scene's current state to form the complete initial state.
	StartState map[string]float64 `yaml:"start_state,omitempty" json:"start_state,omitempty"`

	// WorkspaceParameters bounds the volume planning happens in.
	WorkspaceParameters WorkspaceParameters `yaml:"workspace_parameters,omitempty" json:"workspace_parameters,omitempty"`

	// PathConstraints must hold along the entire solution path.
	PathConstraints Constraints `yaml:"path_constraints,omitempty" json:"path_constraints,omitempty"`

	// GoalConstraints describe the set of acceptable goal regions.
	// A solution must satisfy at least one of them.
	GoalConstraints []Constraints `yaml:"goal_constraints,omitempty" json:"goal_constraints,omitempty"`
}
