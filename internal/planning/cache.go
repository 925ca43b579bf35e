package planning

import "sync"

// cacheKey identifies a cache slot: one planner configuration in one
// state-space parameterization.
type cacheKey struct {
	configName       string
	parameterization string
}

// cacheEntry tracks one cached context and whether a caller currently
// holds it.
type cacheEntry struct {
	context    *PlanningContext
	checkedOut bool
}

// contextCache is a thread-safe store of previously built planning
// contexts. Reuse is an explicit checkout/checkin: the scan and the
// checked-out mark happen under the same lock, so a context handed to a
// caller can never be handed to a second one before it is released.
// Entries are appended, never evicted; a released context stays available
// for future requests.
type contextCache struct {
	mu      sync.Mutex
	entries map[cacheKey][]*cacheEntry
}

func newContextCache() *contextCache {
	return &contextCache{entries: make(map[cacheKey][]*cacheEntry)}
}

// checkout returns the first context under the key with no current holder,
// marking it held, or nil if every cached context is in use. The returned
// context's Release checks it back in.
func (c *contextCache) checkout(configName, parameterization string) *PlanningContext {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, entry := range c.entries[cacheKey{configName, parameterization}] {
		if entry.checkedOut {
			continue
		}
		entry.checkedOut = true
		c.wireCheckin(entry)
		return entry.context
	}
	return nil
}

// insert adds a freshly built context under the key, already checked out by
// the caller that built it.
func (c *contextCache) insert(configName, parameterization string, context *PlanningContext) {
	entry := &cacheEntry{context: context, checkedOut: true}
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey{configName, parameterization}
	c.entries[key] = append(c.entries[key], entry)
	c.wireCheckin(entry)
}

// wireCheckin points the context's Release at this entry. Caller must hold
// the cache lock.
func (c *contextCache) wireCheckin(entry *cacheEntry) {
	entry.context.checkin = func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		entry.checkedOut = false
	}
}

// size returns the number of contexts cached under the key.
func (c *contextCache) size(configName, parameterization string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries[cacheKey{configName, parameterization}])
}
