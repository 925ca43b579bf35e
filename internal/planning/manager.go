package planning

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/walking-machine/moveit2/internal/planner"
	"github.com/walking-machine/moveit2/internal/robot"
	"github.com/walking-machine/moveit2/internal/statespace"
	"github.com/walking-machine/moveit2/internal/types"
)

// Configuration keys consumed by state-space selection.
const (
	keyEnforceConstrainedStateSpace = "enforce_constrained_state_space"
	keyEnforceJointModelStateSpace  = "enforce_joint_model_state_space"
)

// Default manager limits, reapplied to every acquired context.
const (
	defaultMaxGoalSamples           = 10
	defaultMaxStateSamplingAttempts = 4
	defaultMaxGoalSamplingAttempts  = 1000
	defaultMaxPlanningThreads       = 4
	defaultMinimumWaypointCount     = 2
)

// PlanningContextManager resolves motion-plan requests to configured
// planning contexts. It owns the planner registry, the multi-query planner
// allocator, the state-space factory registry, and the context cache, so
// independent managers can coexist without sharing any process-wide state.
//
// Context acquisition is safe for concurrent use. The multi-query allocator
// it owns is not internally locked; the manager relies on its caller to
// serialize requests that allocate multi-query planners (see
// planner.MultiQueryAllocator).
type PlanningContextManager struct {
	robotModel     robot.Model
	samplerManager robot.ConstraintSamplerManager

	registry  *planner.Registry
	allocator *planner.MultiQueryAllocator

	// factories in registration order; selection ties break in favor of
	// the earliest registration.
	factories []statespace.Factory

	configs PlannerConfigurationMap
	cache   *contextCache

	maxGoalSamples           int
	maxStateSamplingAttempts int
	maxGoalSamplingAttempts  int
	maxPlanningThreads       int
	maxSolutionSegmentLength float64
	minimumWaypointCount     int

	logger *slog.Logger
	tracer trace.Tracer

	storage planner.DataStorage
}

// Option is a functional option for configuring a PlanningContextManager.
type Option func(*PlanningContextManager)

// WithLogger sets the manager's logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *PlanningContextManager) {
		m.logger = logger
	}
}

// WithTracer sets the tracer used for request spans. Defaults to a no-op
// tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(m *PlanningContextManager) {
		m.tracer = tracer
	}
}

// WithDataStorage sets the storage collaborator the multi-query allocator
// persists planner data through. Defaults to file-based JSON storage.
func WithDataStorage(storage planner.DataStorage) Option {
	return func(m *PlanningContextManager) {
		m.storage = storage
	}
}

// WithMaxGoalSamples sets the maximum number of goal samples.
func WithMaxGoalSamples(n int) Option {
	return func(m *PlanningContextManager) {
		m.maxGoalSamples = n
	}
}

// WithMaxStateSamplingAttempts sets the attempt budget per state sample.
func WithMaxStateSamplingAttempts(n int) Option {
	return func(m *PlanningContextManager) {
		m.maxStateSamplingAttempts = n
	}
}

// WithMaxGoalSamplingAttempts sets the attempt budget for goal sampling.
func WithMaxGoalSamplingAttempts(n int) Option {
	return func(m *PlanningContextManager) {
		m.maxGoalSamplingAttempts = n
	}
}

// WithMaxPlanningThreads sets the parallel planning thread cap.
func WithMaxPlanningThreads(n int) Option {
	return func(m *PlanningContextManager) {
		m.maxPlanningThreads = n
	}
}

// WithMaxSolutionSegmentLength sets the maximum solution segment length.
// Zero leaves the planner default.
func WithMaxSolutionSegmentLength(length float64) Option {
	return func(m *PlanningContextManager) {
		m.maxSolutionSegmentLength = length
	}
}

// WithMinimumWaypointCount sets the minimum solution waypoint count.
func WithMinimumWaypointCount(n int) Option {
	return func(m *PlanningContextManager) {
		m.minimumWaypointCount = n
	}
}

// NewPlanningContextManager creates a manager over the given robot model
// and constraint-sampler manager, with the default geometric planners and
// state-space factories registered.
func NewPlanningContextManager(model robot.Model, samplerManager robot.ConstraintSamplerManager, opts ...Option) *PlanningContextManager {
	m := &PlanningContextManager{
		robotModel:               model,
		samplerManager:           samplerManager,
		configs:                  make(PlannerConfigurationMap),
		cache:                    newContextCache(),
		maxGoalSamples:           defaultMaxGoalSamples,
		maxStateSamplingAttempts: defaultMaxStateSamplingAttempts,
		maxGoalSamplingAttempts:  defaultMaxGoalSamplingAttempts,
		maxPlanningThreads:       defaultMaxPlanningThreads,
		minimumWaypointCount:     defaultMinimumWaypointCount,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.tracer == nil {
		m.tracer = noop.NewTracerProvider().Tracer("planning")
	}

	m.registry = planner.NewRegistry(m.logger)
	m.allocator = planner.NewMultiQueryAllocator(m.storage, m.logger)

	m.registerDefaultPlanners()
	m.registerDefaultStateSpaces()
	return m
}

// registerDefaultPlanners registers the built-in geometric algorithm set.
func (m *PlanningContextManager) registerDefaultPlanners() {
	for _, alg := range planner.DefaultAlgorithms() {
		m.RegisterAlgorithm(alg)
	}
}

// registerDefaultStateSpaces registers the joint, pose, and constrained
// state-space factories, in that order.
func (m *PlanningContextManager) registerDefaultStateSpaces() {
	m.RegisterStateSpaceFactory(statespace.NewJointModelStateSpaceFactory())
	m.RegisterStateSpaceFactory(statespace.NewPoseModelStateSpaceFactory())
	m.RegisterStateSpaceFactory(statespace.NewConstrainedPlanningStateSpaceFactory())
}

// RegisterAlgorithm registers an algorithm under its id, backed by the
// manager's multi-query allocator.
func (m *PlanningContextManager) RegisterAlgorithm(alg planner.Algorithm) {
	m.registry.Register(alg.ID(), m.allocator.AllocatorFor(alg))
}

// RegisterPlannerAllocator registers a custom allocation capability under a
// planner id, replacing any previous registration.
func (m *PlanningContextManager) RegisterPlannerAllocator(plannerID string, allocator planner.ConfiguredPlannerAllocator) {
	m.registry.Register(plannerID, allocator)
}

// RegisterStateSpaceFactory appends a state-space factory. Registration
// order matters: priority-score ties go to the earlier registration, and an
// empty-type lookup returns the first registered factory.
func (m *PlanningContextManager) RegisterStateSpaceFactory(factory statespace.Factory) {
	m.factories = append(m.factories, factory)
}

// PlannerSelector returns the capability that resolves planner ids through
// the manager's registry. Unknown ids yield a nil allocator.
func (m *PlanningContextManager) PlannerSelector() planner.ConfiguredPlannerSelector {
	return func(plannerID string) planner.ConfiguredPlannerAllocator {
		return m.registry.Select(plannerID)
	}
}

// SetPlannerConfigurations replaces the planner configuration map.
func (m *PlanningContextManager) SetPlannerConfigurations(configs PlannerConfigurationMap) {
	m.configs = configs
}

// PlannerConfigurations returns the current planner configuration map.
func (m *PlanningContextManager) PlannerConfigurations() PlannerConfigurationMap {
	return m.configs
}

// StateSpaceFactory returns the factory with the given parameterization
// type, or the first-registered factory when factoryType is empty.
func (m *PlanningContextManager) StateSpaceFactory(factoryType string) (statespace.Factory, error) {
	if factoryType == "" && len(m.factories) > 0 {
		return m.factories[0], nil
	}
	for _, factory := range m.factories {
		if factory.Type() == factoryType {
			return factory, nil
		}
	}
	m.logger.Error("state space factory not found", "type", factoryType)
	return nil, NewPlanningError(ErrorTypeNoStateSpace,
		fmt.Sprintf("factory of type %q was not found", factoryType))
}

// StateSpaceFactoryForProblem selects the factory scoring the strictly
// greatest priority for the (group, request) pair. Ties break in favor of
// the earlier-registered factory; if no factory scores above zero, no
// representation is selectable and an error is returned.
func (m *PlanningContextManager) StateSpaceFactoryForProblem(group string, req types.MotionPlanRequest) (statespace.Factory, error) {
	var best statespace.Factory
	bestPriority := 0
	for _, factory := range m.factories {
		priority := factory.CanRepresentProblem(group, req, m.robotModel)
		if priority > bestPriority {
			best = factory
			bestPriority = priority
		}
	}
	if best == nil {
		m.logger.Error("no known state space can represent the planning problem", "group", group)
		return nil, NewPlanningError(ErrorTypeNoStateSpace,
			"there are no known state spaces that can represent the given planning problem")
	}
	m.logger.Debug("selected state space parameterization", "type", best.Type(), "group", group)
	return best, nil
}

// GetPlanningContext resolves the request to a ready-to-configure planning
// context: it resolves the planner configuration, selects a state-space
// representation, acquires a context from the cache or builds one, applies
// the request state, and configures the planner. All failures are returned
// as typed errors; types.CodeForError maps them to the outbound error-code
// set. The returned context must be Released when the caller is done with
// it so the cache can reuse it.
func (m *PlanningContextManager) GetPlanningContext(ctx context.Context, scene robot.PlanningScene, req types.MotionPlanRequest) (*PlanningContext, error) {
	ctx, span := m.tracer.Start(ctx, "planning.get_planning_context",
		trace.WithAttributes(
			attribute.String("moveit.group", req.GroupName),
			attribute.String("moveit.planner_id", req.PlannerID),
		))
	defer span.End()

	if req.GroupName == "" {
		m.logger.Error("no group specified to plan for")
		return nil, NewPlanningError(ErrorTypeInvalidGroupName, "no group specified to plan for")
	}
	if scene == nil {
		m.logger.Error("no planning scene supplied as input")
		return nil, NewPlanningError(ErrorTypeValidation, "no planning scene supplied as input")
	}

	settings, err := m.resolveConfiguration(req)
	if err != nil {
		return nil, err
	}

	factory, err := m.selectFactory(settings, req)
	if err != nil {
		return nil, err
	}

	pc, err := m.acquireContext(settings, factory, req)
	if err != nil {
		return nil, err
	}

	pc.Clear()
	pc.SetPlanningScene(scene)
	pc.SetMotionPlanRequest(req)
	pc.SetCompleteInitialState(scene.CurrentStateUpdated(req.StartState))
	pc.SetPlanningVolume(req.WorkspaceParameters)

	if err := pc.SetPathConstraints(req.PathConstraints); err != nil {
		// The context stays cached with its now-stale constraints; it is
		// still valid for future requests (see DESIGN.md).
		pc.Release()
		return nil, err
	}
	if err := pc.SetGoalConstraints(req.GoalConstraints, req.PathConstraints); err != nil {
		pc.Release()
		return nil, err
	}

	if err := m.configureContext(ctx, pc); err != nil {
		m.logger.Error("planning context configuration failed", "context", pc.Name(), "error", err)
		pc.Release()
		return nil, err
	}

	m.logger.Debug("new planning context is set", "context", pc.Name())
	return pc, nil
}

// configureContext runs the context's Configure step. A panic escaping the
// underlying planning library is converted into an internal error so no
// failure propagates past the manager.
func (m *PlanningContextManager) configureContext(ctx context.Context, pc *PlanningContext) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewPlanningError(ErrorTypeInternal,
				fmt.Sprintf("planning library panicked during configure: %v", r))
		}
	}()
	return pc.Configure(ctx)
}

// resolveConfiguration finds the planner configuration for the request: the
// composite "group[plannerId]" key is preferred when a planner id is given
// (or the planner id verbatim when it already contains the group name),
// falling back to the plain group key.
func (m *PlanningContextManager) resolveConfiguration(req types.MotionPlanRequest) (PlannerConfigurationSettings, error) {
	if req.PlannerID != "" {
		key := req.PlannerID
		if !strings.Contains(req.PlannerID, req.GroupName) {
			key = req.GroupName + "[" + req.PlannerID + "]"
		}
		if settings, ok := m.configs[key]; ok {
			return settings, nil
		}
		m.logger.Warn("cannot find planning configuration for group with planner, using defaults",
			"group", req.GroupName, "planner", req.PlannerID)
	}
	if settings, ok := m.configs[req.GroupName]; ok {
		return settings, nil
	}
	m.logger.Error("cannot find planning configuration for group", "group", req.GroupName)
	return PlannerConfigurationSettings{}, NewPlanningError(ErrorTypeConfigNotFound,
		fmt.Sprintf("cannot find planning configuration for group %q", req.GroupName))
}

// selectFactory applies the three-tier state-space selection policy:
//
//  1. enforce_constrained_state_space with exactly one position or exactly
//     one orientation path constraint forces the constrained representation
//     (without such constraints the flag is ignored, as the constrained
//     space is only useful for path constraints);
//  2. otherwise enforce_joint_model_state_space forces the joint-space
//     representation;
//  3. otherwise the factories score themselves and the highest priority
//     wins.
func (m *PlanningContextManager) selectFactory(settings PlannerConfigurationSettings, req types.MotionPlanRequest) (statespace.Factory, error) {
	pathConstraints := req.PathConstraints
	if settings.BoolParam(keyEnforceConstrainedStateSpace) &&
		(len(pathConstraints.PositionConstraints) == 1 || len(pathConstraints.OrientationConstraints) == 1) {
		return m.StateSpaceFactory(statespace.ConstrainedParameterization)
	}
	if settings.BoolParam(keyEnforceJointModelStateSpace) {
		return m.StateSpaceFactory(statespace.JointModelParameterization)
	}
	return m.StateSpaceFactoryForProblem(settings.Group, req)
}

// acquireContext returns a cached context for (configuration, factory type)
// with no other current holder, or builds a fresh one. Constrained
// representations are never cached: their constraints vary per request and
// must be re-derived every time. The manager's numeric limits and the
// configuration parameters are (re)applied either way.
func (m *PlanningContextManager) acquireContext(settings PlannerConfigurationSettings, factory statespace.Factory, req types.MotionPlanRequest) (*PlanningContext, error) {
	pc := m.cache.checkout(settings.Name, factory.Type())
	if pc != nil {
		m.logger.Debug("reusing cached planning context", "context", settings.Name)
	} else {
		built, err := m.buildContext(settings, factory, req)
		if err != nil {
			return nil, err
		}
		pc = built
		if factory.Type() != statespace.ConstrainedParameterization {
			m.cache.insert(settings.Name, factory.Type(), pc)
		}
	}

	pc.SetMaximumPlanningThreads(m.maxPlanningThreads)
	pc.SetMaximumGoalSamples(m.maxGoalSamples)
	pc.SetMaximumStateSamplingAttempts(m.maxStateSamplingAttempts)
	pc.SetMaximumGoalSamplingAttempts(m.maxGoalSamplingAttempts)
	if m.maxSolutionSegmentLength > 0 {
		pc.SetMaximumSolutionSegmentLength(m.maxSolutionSegmentLength)
	}
	pc.SetMinimumWaypointCount(m.minimumWaypointCount)
	pc.SetSpecificationConfig(settings.Config)
	return pc, nil
}

// buildContext constructs a fresh planning context for the configuration
// and factory, deriving the constraint-wrapped space for the constrained
// parameterization.
func (m *PlanningContextManager) buildContext(settings PlannerConfigurationSettings, factory statespace.Factory, req types.MotionPlanRequest) (*PlanningContext, error) {
	space, err := factory.NewStateSpace(statespace.Specification{
		RobotModel: m.robotModel,
		GroupName:  settings.Group,
	})
	if err != nil {
		return nil, WrapPlanningError(ErrorTypeInternal,
			fmt.Sprintf("building %q state space", factory.Type()), err)
	}

	spec := ContextSpecification{
		Config:                   settings.Config,
		PlannerSelector:          m.PlannerSelector(),
		ConstraintSamplerManager: m.samplerManager,
		StateSpace:               space,
	}

	if factory.Type() == statespace.ConstrainedParameterization {
		m.logger.Debug("using constrained state space for planning", "group", settings.Group)
		constraints, err := statespace.NewConstraintSet(m.robotModel, settings.Group, req.PathConstraints)
		if err != nil {
			return nil, WrapPlanningError(ErrorTypeConstraintRejected,
				"deriving constraints from path constraints", err)
		}
		projected, err := statespace.NewProjectedStateSpace(space, constraints)
		if err != nil {
			return nil, WrapPlanningError(ErrorTypeInternal, "wrapping constrained state space", err)
		}
		spec.ConstrainedSpace = projected
		spec.SpaceInformation = statespace.NewConstrainedSpaceInformation(projected)
	} else {
		spec.SpaceInformation = statespace.NewSpaceInformation(space)
	}

	m.logger.Debug("creating new planning context", "context", settings.Name)
	return NewPlanningContext(settings.Name, spec, m.logger)
}

// CachedContextCount returns how many contexts are cached for the given
// configuration name and parameterization type.
func (m *PlanningContextManager) CachedContextCount(configName, parameterization string) int {
	return m.cache.size(configName, parameterization)
}

// Close tears down the multi-query planner allocator, flushing every
// recorded planner's exploration graph to storage. The flush blocks until
// all writes finish.
func (m *PlanningContextManager) Close() error {
	return m.allocator.Close()
}
