// Package robot holds the narrow interfaces through which the planning
// subsystem consumes its external collaborators: the robot kinematic model,
// the planning scene, and constraint sampling. Simple concrete
// implementations are provided for embedding applications and tests.
package robot

import (
	"fmt"
	"sort"
)

// VariableBounds describes the allowed range of a single joint variable.
type VariableBounds struct {
	// Min is the lower position bound.
	Min float64

	// Max is the upper position bound.
	Max float64
}

// JointGroup is a named set of joint variables the robot can plan for.
type JointGroup struct {
	// Name is the group name referenced by planning requests.
	Name string

	// VariableNames lists the joint variables in this group, in order.
	VariableNames []string

	// Bounds maps each variable name to its position bounds.
	Bounds map[string]VariableBounds

	// HasIKSolver reports whether an inverse-kinematics solver is
	// configured for this group. Pose-based state spaces require one.
	HasIKSolver bool
}

// VariableCount returns the number of joint variables in the group.
func (g *JointGroup) VariableCount() int {
	return len(g.VariableNames)
}

// Model is the robot kinematic model collaborator. The planning subsystem
// only needs group lookup; kinematics and geometry stay behind this interface.
type Model interface {
	// Name returns the robot model name.
	Name() string

	// Group returns the joint group with the given name, or false if the
	// model has no such group.
	Group(name string) (*JointGroup, bool)

	// GroupNames returns all group names, sorted.
	GroupNames() []string
}

// GroupSpec describes one joint group for StaticModel construction.
type GroupSpec struct {
	// Name is the group name.
	Name string

	// Variables lists the joint variable names in the group.
	Variables []string

	// Bounds optionally maps variables to bounds. Variables without an
	// entry default to [-pi, pi]-style symmetric bounds of +/- 3.1416.
	Bounds map[string]VariableBounds

	// HasIKSolver marks the group as having an IK solver configured.
	HasIKSolver bool
}

// StaticModel is an immutable Model built from a fixed set of group specs.
type StaticModel struct {
	name   string
	groups map[string]*JointGroup
}

// NewStaticModel builds a StaticModel from the given group specs.
// Returns an error if a group name is empty or duplicated.
func NewStaticModel(name string, specs ...GroupSpec) (*StaticModel, error) {
	m := &StaticModel{
		name:   name,
		groups: make(map[string]*JointGroup, len(specs)),
	}
	for _, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("joint group name cannot be empty")
		}
		if _, exists := m.groups[spec.Name]; exists {
			return nil, fmt.Errorf("duplicate joint group %q", spec.Name)
		}
		group := &JointGroup{
			Name:          spec.Name,
			VariableNames: append([]string(nil), spec.Variables...),
			Bounds:        make(map[string]VariableBounds, len(spec.Variables)),
			HasIKSolver:   spec.HasIKSolver,
		}
		for _, v := range spec.Variables {
			if b, ok := spec.Bounds[v]; ok {
				group.Bounds[v] = b
			} else {
				group.Bounds[v] = VariableBounds{Min: -3.1416, Max: 3.1416}
			}
		}
		m.groups[spec.Name] = group
	}
	return m, nil
}

// Name returns the robot model name.
func (m *StaticModel) Name() string {
	return m.name
}

// Group returns the joint group with the given name.
func (m *StaticModel) Group(name string) (*JointGroup, bool) {
	g, ok := m.groups[name]
	return g, ok
}

// GroupNames returns all group names, sorted.
func (m *StaticModel) GroupNames() []string {
	names := make([]string, 0, len(m.groups))
	for name := range m.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
