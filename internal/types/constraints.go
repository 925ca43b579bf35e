package types

// JointConstraint restricts a single joint variable to a tolerance band
// around a target position.
type JointConstraint struct {
	// JointName is the joint variable this constraint applies to.
	JointName string `yaml:"joint_name" json:"joint_name"`

	// Position is the target joint position.
	Position float64 `yaml:"position" json:"position"`

	// ToleranceAbove is the allowed deviation above the target.
	ToleranceAbove float64 `yaml:"tolerance_above" json:"tolerance_above"`

	// ToleranceBelow is the allowed deviation below the target.
	ToleranceBelow float64 `yaml:"tolerance_below" json:"tolerance_below"`

	// Weight denotes the relative importance of this constraint.
	Weight float64 `yaml:"weight" json:"weight"`
}

// PositionConstraint restricts the position of a link to a region around
// a target point expressed in some reference frame.
type PositionConstraint struct {
	// LinkName is the link this constraint applies to.
	LinkName string `yaml:"link_name" json:"link_name"`

	// ReferenceFrame is the frame the target is expressed in.
	ReferenceFrame string `yaml:"reference_frame" json:"reference_frame"`

	// Target is the desired link position (x, y, z).
	Target [3]float64 `yaml:"target" json:"target"`

	// Tolerance is the allowed deviation per axis.
	Tolerance [3]float64 `yaml:"tolerance" json:"tolerance"`

	// Weight denotes the relative importance of this constraint.
	Weight float64 `yaml:"weight" json:"weight"`
}

// OrientationConstraint restricts the orientation of a link to a tolerance
// band around a target orientation.
type OrientationConstraint struct {
	// LinkName is the link this constraint applies to.
	LinkName string `yaml:"link_name" json:"link_name"`

	// ReferenceFrame is the frame the target is expressed in.
	ReferenceFrame string `yaml:"reference_frame" json:"reference_frame"`

	// Target is the desired orientation as a unit quaternion (x, y, z, w).
	Target [4]float64 `yaml:"target" json:"target"`

	// AxisTolerance is the allowed angular deviation per axis, in radians.
	AxisTolerance [3]float64 `yaml:"axis_tolerance" json:"axis_tolerance"`

	// Weight denotes the relative importance of this constraint.
	Weight float64 `yaml:"weight" json:"weight"`
}

// Constraints bundles the constraint kinds a motion-plan request can carry,
// either as path constraints (hold along the whole trajectory) or goal
// constraints (hold at the final waypoint).
type Constraints struct {
	// Name optionally identifies this constraint set.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// JointConstraints restrict individual joint variables.
	JointConstraints []JointConstraint `yaml:"joint_constraints,omitempty" json:"joint_constraints,omitempty"`

	// PositionConstraints restrict link positions.
	PositionConstraints []PositionConstraint `yaml:"position_constraints,omitempty" json:"position_constraints,omitempty"`

	// OrientationConstraints restrict link orientations.
	OrientationConstraints []OrientationConstraint `yaml:"orientation_constraints,omitempty" json:"orientation_constraints,omitempty"`
}

// Empty reports whether the set carries no constraints at all.
func (c Constraints) Empty() bool {
	return len(c.JointConstraints) == 0 &&
		len(c.PositionConstraints) == 0 &&
		len(c.OrientationConstraints) == 0
}
