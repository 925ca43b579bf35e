package planner

import (
	"log/slog"
	"sort"
	"sync"
)

// Registry maps planner identifiers to allocation capabilities. It is an
// owned collection, not process-wide state: each planning context manager
// holds its own registry so independent managers can coexist.
type Registry struct {
	mu         sync.RWMutex
	allocators map[string]ConfiguredPlannerAllocator
	logger     *slog.Logger
}

// NewRegistry creates an empty registry. A nil logger falls back to
// slog.Default().
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		allocators: make(map[string]ConfiguredPlannerAllocator),
		logger:     logger,
	}
}

// Register associates a planner id with an allocation capability,
// replacing any previous registration for the same id.
func (r *Registry) Register(plannerID string, allocator ConfiguredPlannerAllocator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.allocators[plannerID] = allocator
}

// Select returns the allocation capability for the given planner id.
// Unknown ids log an error and return the null capability (nil) rather than
// failing the whole pipeline; configuring a context with a nil allocator
// fails cleanly downstream.
func (r *Registry) Select(plannerID string) ConfiguredPlannerAllocator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	allocator, ok := r.allocators[plannerID]
	if !ok {
		r.logger.Error("unknown planner", "planner", plannerID)
		return nil
	}
	return allocator
}

// Known returns the registered planner ids, sorted.
func (r *Registry) Known() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.allocators))
	for id := range r.allocators {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
