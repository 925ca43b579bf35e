package planning

// Numeric limit setters. The planning context manager reapplies these on
// every acquisition, cached or fresh, so a context never carries limits
// from a previous manager configuration.

// SetMaximumGoalSamples sets the maximum number of goal samples to compute.
func (c *PlanningContext) SetMaximumGoalSamples(n int) {
	c.maxGoalSamples = n
}

// MaximumGoalSamples returns the maximum number of goal samples.
func (c *PlanningContext) MaximumGoalSamples() int {
	return c.maxGoalSamples
}

// SetMaximumStateSamplingAttempts sets the attempt budget per state sample.
func (c *PlanningContext) SetMaximumStateSamplingAttempts(n int) {
	c.maxStateSamplingAttempts = n
}

// MaximumStateSamplingAttempts returns the attempt budget per state sample.
func (c *PlanningContext) MaximumStateSamplingAttempts() int {
	return c.maxStateSamplingAttempts
}

// SetMaximumGoalSamplingAttempts sets the attempt budget for goal sampling.
func (c *PlanningContext) SetMaximumGoalSamplingAttempts(n int) {
	c.maxGoalSamplingAttempts = n
}

// MaximumGoalSamplingAttempts returns the attempt budget for goal sampling.
func (c *PlanningContext) MaximumGoalSamplingAttempts() int {
	return c.maxGoalSamplingAttempts
}

// SetMaximumPlanningThreads sets the parallel planning thread cap.
func (c *PlanningContext) SetMaximumPlanningThreads(n int) {
	c.maxPlanningThreads = n
}

// MaximumPlanningThreads returns the parallel planning thread cap.
func (c *PlanningContext) MaximumPlanningThreads() int {
	return c.maxPlanningThreads
}

// SetMaximumSolutionSegmentLength sets the maximum length of a solution
// segment. Applied only when positive; zero leaves the planner default.
func (c *PlanningContext) SetMaximumSolutionSegmentLength(length float64) {
	c.maxSolutionSegmentLength = length
}

// MaximumSolutionSegmentLength returns the maximum solution segment length.
func (c *PlanningContext) MaximumSolutionSegmentLength() float64 {
	return c.maxSolutionSegmentLength
}

// SetMinimumWaypointCount sets the minimum number of waypoints a solution
// path is interpolated to.
func (c *PlanningContext) SetMinimumWaypointCount(n int) {
	c.minimumWaypointCount = n
}

// MinimumWaypointCount returns the minimum waypoint count.
func (c *PlanningContext) MinimumWaypointCount() int {
	return c.minimumWaypointCount
}

// SetSpecificationConfig replaces the context's configuration parameters.
// Reapplied per acquisition so a cached context picks up configuration
// changes made since it was built.
func (c *PlanningContext) SetSpecificationConfig(config map[string]string) {
	out := make(map[string]string, len(config))
	for key, value := range config {
		out[key] = value
	}
	c.spec.Config = out
}
