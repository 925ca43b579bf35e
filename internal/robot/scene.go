package robot

// PlanningScene is the planning-scene collaborator. Collision geometry and
// world state stay behind this interface; the planning subsystem only reads
// the current robot state and derives request start states from it.
type PlanningScene interface {
	// CurrentState returns the scene's current robot state.
	CurrentState() State

	// CurrentStateUpdated returns the scene's current state with the
	// given joint-variable overrides applied.
	CurrentStateUpdated(diff map[string]float64) State
}

// Scene is a minimal in-memory PlanningScene.
type Scene struct {
	current State
}

// NewScene creates a Scene with the given current robot state.
// A nil state is treated as empty.
func NewScene(current State) *Scene {
	if current == nil {
		current = State{}
	}
	return &Scene{current: current}
}

// CurrentState returns a copy of the scene's current robot state.
func (s *Scene) CurrentState() State {
	return s.current.Clone()
}

// CurrentStateUpdated returns the current state with diff applied on top.
func (s *Scene) CurrentStateUpdated(diff map[string]float64) State {
	return s.current.Updated(diff)
}

// SetCurrentState replaces the scene's current robot state.
func (s *Scene) SetCurrentState(state State) {
	s.current = state.Clone()
}
