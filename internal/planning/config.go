package planning

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// PlannerConfigurationSettings is one named planner configuration: a group,
// a configuration name, and the string-encoded parameters forwarded to the
// planning algorithm. Keys this subsystem recognizes (multi-query and
// state-space enforcement flags) are consumed along the way; everything
// else passes through untouched.
type PlannerConfigurationSettings struct {
	// Name is the configuration name contexts are cached under. Either a
	// plain group name or the composite "group[config]" form.
	Name string

	// Group is the joint group this configuration plans for.
	Group string

	// Config holds the string-encoded parameters. Values are interpreted
	// as booleans, numbers, or plain strings depending on the key.
	Config map[string]string
}

// BoolParam parses the named parameter as a boolean.
// Missing or malformed values are false.
func (s PlannerConfigurationSettings) BoolParam(key string) bool {
	raw, ok := s.Config[key]
	if !ok {
		return false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return value
}

// FloatParam parses the named parameter as a float64, with a default for
// missing or malformed values.
func (s PlannerConfigurationSettings) FloatParam(key string, def float64) float64 {
	raw, ok := s.Config[key]
	if !ok {
		return def
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return value
}

// PlannerConfigurationMap holds planner configurations looked up by
// composite "group[config]" key or by plain group key.
type PlannerConfigurationMap map[string]PlannerConfigurationSettings

// Names returns the configuration keys, sorted.
func (m PlannerConfigurationMap) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// plannerConfigFile mirrors the planning configuration YAML layout:
//
//	planner_configs:
//	  RRTConnect:
//	    type: geometric::RRTConnect
//	    range: 0.0
//	groups:
//	  panda_arm:
//	    default_planner_config: RRTConnect
//	    planner_configs: [RRTConnect, PRMstar]
//	    enforce_joint_model_state_space: true
type plannerConfigFile struct {
	PlannerConfigs map[string]map[string]any `yaml:"planner_configs"`
	Groups         map[string]groupSection   `yaml:"groups"`
}

type groupSection struct {
	DefaultPlannerConfig string         `yaml:"default_planner_config"`
	PlannerConfigs       []string       `yaml:"planner_configs"`
	Params               map[string]any `yaml:",inline"`
}

// LoadPlannerConfigurations reads a planning configuration YAML file and
// expands it into a PlannerConfigurationMap. Every group yields a plain
// group entry (its inline parameters plus the default planner config's
// parameters, when one is named) and one "group[config]" entry per listed
// planner configuration.
func LoadPlannerConfigurations(path string) (PlannerConfigurationMap, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading planner configurations from %q: %w", path, err)
	}
	return ParsePlannerConfigurations(raw)
}

// ParsePlannerConfigurations expands YAML planning configuration content
// into a PlannerConfigurationMap.
func ParsePlannerConfigurations(raw []byte) (PlannerConfigurationMap, error) {
	var file plannerConfigFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing planner configurations: %w", err)
	}

	out := make(PlannerConfigurationMap)
	for group, section := range file.Groups {
		groupConfig := stringifyParams(section.Params)
		if section.DefaultPlannerConfig != "" {
			defaults, ok := file.PlannerConfigs[section.DefaultPlannerConfig]
			if !ok {
				return nil, fmt.Errorf("group %q references unknown default planner config %q",
					group, section.DefaultPlannerConfig)
			}
			for key, value := range stringifyParams(defaults) {
				if _, exists := groupConfig[key]; !exists {
					groupConfig[key] = value
				}
			}
		}
		out[group] = PlannerConfigurationSettings{
			Name:   group,
			Group:  group,
			Config: groupConfig,
		}

		for _, configName := range section.PlannerConfigs {
			params, ok := file.PlannerConfigs[configName]
			if !ok {
				return nil, fmt.Errorf("group %q references unknown planner config %q", group, configName)
			}
			merged := stringifyParams(section.Params)
			for key, value := range stringifyParams(params) {
				merged[key] = value
			}
			name := group + "[" + configName + "]"
			out[name] = PlannerConfigurationSettings{
				Name:   name,
				Group:  group,
				Config: merged,
			}
		}
	}
	return out, nil
}

// stringifyParams converts YAML parameter values to their string encoding.
// Booleans and numbers keep their literal form so downstream consumers can
// reparse them by key.
func stringifyParams(params map[string]any) map[string]string {
	out := make(map[string]string, len(params))
	for key, value := range params {
		switch v := value.(type) {
		case string:
			out[key] = v
		case bool:
			out[key] = strconv.FormatBool(v)
		case int:
			out[key] = strconv.Itoa(v)
		case int64:
			out[key] = strconv.FormatInt(v, 10)
		case float64:
			out[key] = strconv.FormatFloat(v, 'g', -1, 64)
		default:
			out[key] = fmt.Sprintf("%v", v)
		}
	}
	return out
}
