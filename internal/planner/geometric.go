package planner

import (
	"fmt"
	"math/rand"

	"github.com/walking-machine/moveit2/internal/statespace"
)

// Identifiers of the built-in geometric planning algorithms, matching the
// names planner configurations reference through their "type" key.
const (
	AnytimePathShortening = "geometric::AnytimePathShortening"
	BFMT                  = "geometric::BFMT"
	BiEST                 = "geometric::BiEST"
	BiTRRT                = "geometric::BiTRRT"
	BKPIECE               = "geometric::BKPIECE"
	EST                   = "geometric::EST"
	FMT                   = "geometric::FMT"
	KPIECE                = "geometric::KPIECE"
	LazyPRM               = "geometric::LazyPRM"
	LazyPRMstar           = "geometric::LazyPRMstar"
	LazyRRT               = "geometric::LazyRRT"
	LBKPIECE              = "geometric::LBKPIECE"
	LBTRRT                = "geometric::LBTRRT"
	PDST                  = "geometric::PDST"
	PRM                   = "geometric::PRM"
	PRMstar               = "geometric::PRMstar"
	ProjEST               = "geometric::ProjEST"
	RRT                   = "geometric::RRT"
	RRTConnect            = "geometric::RRTConnect"
	RRTstar               = "geometric::RRTstar"
	SBL                   = "geometric::SBL"
	SPARS                 = "geometric::SPARS"
	SPARStwo              = "geometric::SPARStwo"
	STRIDE                = "geometric::STRIDE"
	TRRT                  = "geometric::TRRT"
)

// DefaultAlgorithms returns the built-in geometric algorithm set. The PRM
// family supports persistent reconstruction; everything else is
// single-query.
func DefaultAlgorithms() []Algorithm {
	singleQuery := []string{
		AnytimePathShortening, BFMT, BiEST, BiTRRT, BKPIECE, EST, FMT,
		KPIECE, LazyRRT, LBKPIECE, LBTRRT, PDST, ProjEST, RRT, RRTConnect,
		RRTstar, SBL, SPARS, SPARStwo, STRIDE, TRRT,
	}
	multiQuery := []string{PRM, PRMstar, LazyPRM, LazyPRMstar}

	algorithms := make([]Algorithm, 0, len(singleQuery)+len(multiQuery))
	for _, id := range singleQuery {
		algorithms = append(algorithms, treeAlgorithm{id: id})
	}
	for _, id := range multiQuery {
		algorithms = append(algorithms, roadmapAlgorithm{id: id})
	}
	return algorithms
}

// treeAlgorithm adapts a single-query sampling-based algorithm. Its
// instances hold no reusable exploration state.
type treeAlgorithm struct {
	id string
}

// ID returns the planner identifier.
func (a treeAlgorithm) ID() string {
	return a.id
}

// New constructs a fresh instance.
func (a treeAlgorithm) New(si *statespace.SpaceInformation) Planner {
	p := &TreePlanner{basePlanner: newBasePlanner(a.id, si)}
	return p
}

// TreePlanner is a single-query planner instance. Its exploration tree is
// rebuilt per query, so its planner-data snapshot is always empty.
type TreePlanner struct {
	basePlanner
}

// PlannerData returns an empty graph; tree planners retain no exploration
// state across queries.
func (p *TreePlanner) PlannerData() *PlannerData {
	return NewPlannerData()
}

// roadmapAlgorithm adapts a graph-based multi-query algorithm. It supports
// persistent reconstruction from a stored exploration graph.
type roadmapAlgorithm struct {
	id string
}

// ID returns the planner identifier.
func (a roadmapAlgorithm) ID() string {
	return a.id
}

// New constructs a fresh, unseeded instance.
func (a roadmapAlgorithm) New(si *statespace.SpaceInformation) Planner {
	return &RoadmapPlanner{
		basePlanner: newBasePlanner(a.id, si),
		data:        NewPlannerData(),
	}
}

// NewFromData constructs an instance seeded with the given exploration
// graph.
func (a roadmapAlgorithm) NewFromData(si *statespace.SpaceInformation, data *PlannerData) (Planner, error) {
	if data == nil {
		return nil, fmt.Errorf("algorithm %q cannot be seeded from nil planner data", a.id)
	}
	return &RoadmapPlanner{
		basePlanner: newBasePlanner(a.id, si),
		data:        data.Clone(),
	}, nil
}

// RoadmapPlanner is a graph-based multi-query planner instance. Its roadmap
// accumulates across queries and is the unit of reuse and persistence.
type RoadmapPlanner struct {
	basePlanner
	data *PlannerData
}

// PlannerData returns a snapshot of the accumulated roadmap.
func (p *RoadmapPlanner) PlannerData() *PlannerData {
	return p.data.Clone()
}

// GrowRoadmap samples n states and connects each to the previously added
// milestone, extending the accumulated roadmap. Solving is delegated to the
// planning library; growing the roadmap is the part of the algorithm this
// subsystem observes for reuse and persistence.
func (p *RoadmapPlanner) GrowRoadmap(n int) {
	dimension := 1
	if space := p.si.StateSpace(); space != nil {
		dimension = space.Dimension()
	}
	for i := 0; i < n; i++ {
		state := make([]float64, dimension)
		for d := range state {
			state[d] = rand.Float64()*2 - 1
		}
		index := p.data.AddVertex(state)
		if index > 0 {
			// Connection quality is irrelevant here; the roadmap only
			// needs to grow monotonically.
			_ = p.data.AddEdge(index-1, index, 1)
		}
	}
}
