package robot

// State is a complete assignment of joint-variable positions.
type State map[string]float64

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := make(State, len(s))
	for name, value := range s {
		out[name] = value
	}
	return out
}

// Updated returns a copy of the state with the given overrides applied.
// Variables present in diff replace or extend the receiver's values; the
// receiver is not modified.
func (s State) Updated(diff map[string]float64) State {
	out := s.Clone()
	for name, value := range diff {
		out[name] = value
	}
	return out
}
