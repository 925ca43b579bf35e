package planner

import "fmt"

// PlannerDataVertex is one sampled state in an exploration graph.
type PlannerDataVertex struct {
	// State is the sampled state, one value per state-space dimension.
	State []float64 `json:"state"`
}

// PlannerDataEdge connects two vertices of an exploration graph.
type PlannerDataEdge struct {
	// From is the index of the source vertex.
	From int `json:"from"`

	// To is the index of the destination vertex.
	To int `json:"to"`

	// Weight is the edge cost.
	Weight float64 `json:"weight"`
}

// PlannerData is a snapshot of a planner's accumulated exploration graph.
// It is the unit of reuse and persistence for multi-query planners.
type PlannerData struct {
	// Vertices are the sampled states, indexed by position.
	Vertices []PlannerDataVertex `json:"vertices"`

	// Edges connect vertices by index.
	Edges []PlannerDataEdge `json:"edges"`
}

// NewPlannerData creates an empty exploration graph.
func NewPlannerData() *PlannerData {
	return &PlannerData{}
}

// NumVertices returns the number of vertices in the graph.
func (d *PlannerData) NumVertices() int {
	return len(d.Vertices)
}

// NumEdges returns the number of edges in the graph.
func (d *PlannerData) NumEdges() int {
	return len(d.Edges)
}

// AddVertex appends a vertex with the given state and returns its index.
func (d *PlannerData) AddVertex(state []float64) int {
	d.Vertices = append(d.Vertices, PlannerDataVertex{State: append([]float64(nil), state...)})
	return len(d.Vertices) - 1
}

// AddEdge connects two vertices by index.
// Returns an error if either index is out of range.
func (d *PlannerData) AddEdge(from, to int, weight float64) error {
	if from < 0 || from >= len(d.Vertices) {
		return fmt.Errorf("edge source index %d out of range [0, %d)", from, len(d.Vertices))
	}
	if to < 0 || to >= len(d.Vertices) {
		return fmt.Errorf("edge destination index %d out of range [0, %d)", to, len(d.Vertices))
	}
	d.Edges = append(d.Edges, PlannerDataEdge{From: from, To: to, Weight: weight})
	return nil
}

// Clone returns a deep copy of the graph.
func (d *PlannerData) Clone() *PlannerData {
	out := &PlannerData{
		Vertices: make([]PlannerDataVertex, len(d.Vertices)),
		Edges:    append([]PlannerDataEdge(nil), d.Edges...),
	}
	for i, v := range d.Vertices {
		out.Vertices[i] = PlannerDataVertex{State: append([]float64(nil), v.State...)}
	}
	return out
}
