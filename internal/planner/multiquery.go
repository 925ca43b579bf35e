package planner

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/walking-machine/moveit2/internal/statespace"
)

// Reserved configuration keys consumed by the multi-query allocator before
// the configuration is forwarded to the planner's own parameter system.
const (
	keyMultiQueryEnabled = "multi_query_planning_enabled"
	keyLoadPlannerData   = "load_planner_data"
	keyStorePlannerData  = "store_planner_data"
	keyPlannerDataPath   = "planner_data_path"
)

// MultiQueryAllocator allocates planner instances and manages the lifetime
// of their exploration data across repeated queries. For multi-query
// configurations it keeps live instances by name, reseeds replacements from
// their accumulated graphs, and optionally loads/stores graphs through a
// DataStorage collaborator.
//
// The allocator is not internally locked. It is owned by a single planning
// context manager and relies on the caller not to issue concurrent
// allocations; a request-serializing service layer provides that in
// production deployments.
type MultiQueryAllocator struct {
	storage DataStorage
	logger  *slog.Logger

	// planners holds the live instance per planner name for multi-query
	// configurations.
	planners map[string]Planner

	// storagePaths records, per planner name, where to persist the
	// exploration graph on Close. Populated only when a configuration
	// requested store_planner_data.
	storagePaths map[string]string
}

// NewMultiQueryAllocator creates an allocator over the given storage
// collaborator. A nil storage defaults to FileDataStorage; a nil logger
// falls back to slog.Default().
func NewMultiQueryAllocator(storage DataStorage, logger *slog.Logger) *MultiQueryAllocator {
	if storage == nil {
		storage = NewFileDataStorage()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MultiQueryAllocator{
		storage:      storage,
		logger:       logger,
		planners:     make(map[string]Planner),
		storagePaths: make(map[string]string),
	}
}

// AllocatorFor wraps an algorithm as a ConfiguredPlannerAllocator backed by
// this allocator. This is the capability registered per planner id.
func (a *MultiQueryAllocator) AllocatorFor(alg Algorithm) ConfiguredPlannerAllocator {
	return func(si *statespace.SpaceInformation, name string, config map[string]string) (Planner, error) {
		return a.Allocate(alg, si, name, config)
	}
}

// Allocate produces a ready-to-use planner instance.
//
// The reserved multi-query keys are extracted from the configuration first;
// the remainder is applied verbatim as algorithm parameters. With
// multi-query planning disabled the result is a fresh instance. With it
// enabled, an existing live instance under the same name is replaced by a
// new instance seeded from its exploration graph; otherwise, if
// load_planner_data is set, the graph is deserialized from planner_data_path
// and used as the seed. Algorithms that do not support reconstruction from
// stored data degrade to fresh construction with a logged warning.
func (a *MultiQueryAllocator) Allocate(alg Algorithm, si *statespace.SpaceInformation, name string, config map[string]string) (Planner, error) {
	if alg == nil {
		return nil, fmt.Errorf("cannot allocate planner %q: nil algorithm", name)
	}
	if si == nil {
		return nil, fmt.Errorf("cannot allocate planner %q: nil space information", name)
	}

	cfg := make(map[string]string, len(config))
	for key, value := range config {
		cfg[key] = value
	}
	multiQuery := popBool(cfg, keyMultiQueryEnabled)
	var loadData, storeData bool
	var dataPath string
	if multiQuery {
		loadData = popBool(cfg, keyLoadPlannerData)
		storeData = popBool(cfg, keyStorePlannerData)
		dataPath = popString(cfg, keyPlannerDataPath)
	}

	var instance Planner
	switch {
	case !multiQuery:
		instance = alg.New(si)

	case a.planners[name] != nil:
		// Replace the live instance with one seeded from its graph so
		// exploration continues across queries under the same name.
		data := a.planners[name].PlannerData()
		a.logger.Info("reusing planner data",
			"planner", name, "vertices", data.NumVertices(), "edges", data.NumEdges())
		instance = a.seedOrDegrade(alg, si, name, data)

	case loadData:
		data, err := a.storage.Load(dataPath)
		if err != nil {
			a.logger.Error("loading planner data failed, constructing a fresh instance",
				"planner", name, "path", dataPath, "error", err)
			instance = alg.New(si)
			break
		}
		a.logger.Info("loaded planner data",
			"planner", name, "path", dataPath, "vertices", data.NumVertices(), "edges", data.NumEdges())
		instance = a.seedOrDegrade(alg, si, name, data)

	default:
		instance = alg.New(si)
	}

	if name != "" {
		instance.SetName(name)
	}
	if err := instance.SetParams(cfg); err != nil {
		return nil, fmt.Errorf("applying parameters to planner %q: %w", name, err)
	}

	if multiQuery {
		a.planners[name] = instance
		if storeData {
			a.storagePaths[name] = dataPath
		}
	}
	return instance, nil
}

// seedOrDegrade constructs an instance seeded from data when the algorithm
// supports persistent reconstruction, and degrades to a fresh instance with
// a logged warning when it does not.
func (a *MultiQueryAllocator) seedOrDegrade(alg Algorithm, si *statespace.SpaceInformation, name string, data *PlannerData) Planner {
	persistent, ok := alg.(PersistentAlgorithm)
	if !ok {
		a.logger.Warn("planner does not support reconstruction from stored data, constructing a fresh instance",
			"planner", name, "algorithm", alg.ID())
		return alg.New(si)
	}
	instance, err := persistent.NewFromData(si, data)
	if err != nil {
		a.logger.Error("reconstructing planner from stored data failed, constructing a fresh instance",
			"planner", name, "algorithm", alg.ID(), "error", err)
		return alg.New(si)
	}
	return instance
}

// Close flushes the exploration graph of every planner that requested
// store_planner_data to its recorded path. The flush is blocking and not
// cancellable; the allocator must not be used afterwards.
func (a *MultiQueryAllocator) Close() error {
	var errs []error
	for name, path := range a.storagePaths {
		instance, ok := a.planners[name]
		if !ok {
			continue
		}
		data := instance.PlannerData()
		a.logger.Info("storing planner data",
			"planner", name, "path", path, "vertices", data.NumVertices(), "edges", data.NumEdges())
		if err := a.storage.Store(data, path); err != nil {
			errs = append(errs, fmt.Errorf("storing planner data for %q: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// popBool removes key from cfg and parses it as a bool. Missing or
// malformed values are false.
func popBool(cfg map[string]string, key string) bool {
	raw, ok := cfg[key]
	if !ok {
		return false
	}
	delete(cfg, key)
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return value
}

// popString removes key from cfg and returns its value, or "" when absent.
func popString(cfg map[string]string, key string) string {
	raw, ok := cfg[key]
	if !ok {
		return ""
	}
	delete(cfg, key)
	return raw
}
