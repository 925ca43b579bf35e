// Package planning provides planning-context management for the motion
// planning pipeline.
//
// # Overview
//
// Given a motion-plan request for a joint group, the package resolves which
// planner configuration applies, selects a geometric state representation,
// acquires an expensive reusable planning context (from a cache or freshly
// built), injects the request's scene, start state, and constraints, and
// configures the planning algorithm through the multi-query planner
// allocator. All failures surface as typed errors that collapse into the
// outbound error-code set consumed by motion-planning clients.
//
// # Main Types
//
// PlanningContextManager is the top-level orchestrator. It owns the planner
// registry, the multi-query allocator, the state-space factory registry,
// and the context cache; multiple independent managers can coexist because
// none of that state is process-wide.
//
// PlanningContext is the cached unit: a state space, a planner selection
// capability, and per-request planning state. Contexts are cached per
// (configuration name, parameterization type) pair with an explicit
// checkout/checkin discipline; constrained-space contexts are never cached
// because their constraints must be re-derived per request.
//
// PlannerConfigurationSettings and PlannerConfigurationMap model planner
// configurations, loadable from the planning configuration YAML via
// LoadPlannerConfigurations.
//
// # State-Space Selection
//
// Selection is a three-tier policy: an enforce_constrained_state_space flag
// (honored only when the request carries exactly one position or exactly
// one orientation path constraint), an enforce_joint_model_state_space
// flag, and finally priority scoring across the registered factories.
package planning
