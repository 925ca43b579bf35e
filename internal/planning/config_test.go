package planning

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPlanningYAML = `
planner_configs:
  RRTConnect:
    type: geometric::RRTConnect
    range: 0.0
  PRMstar:
    type: geometric::PRMstar
    multi_query_planning_enabled: true
groups:
  panda_arm:
    default_planner_config: RRTConnect
    planner_configs: [RRTConnect, PRMstar]
    enforce_joint_model_state_space: true
    projection_evaluator: joints(panda_joint1,panda_joint2)
  hand:
    planner_configs: [RRTConnect]
`

func TestParsePlannerConfigurations(t *testing.T) {
	configs, err := ParsePlannerConfigurations([]byte(testPlanningYAML))
	require.NoError(t, err)

	t.Run("expands_group_and_composite_keys", func(t *testing.T) {
		assert.ElementsMatch(t, []string{
			"panda_arm", "panda_arm[RRTConnect]", "panda_arm[PRMstar]",
			"hand", "hand[RRTConnect]",
		}, configs.Names())
	})

	t.Run("group_entry_inherits_default_planner_config", func(t *testing.T) {
		settings := configs["panda_arm"]
		assert.Equal(t, "panda_arm", settings.Group)
		assert.Equal(t, "geometric::RRTConnect", settings.Config["type"])
		assert.True(t, settings.BoolParam("enforce_joint_model_state_space"))
		assert.Equal(t, "joints(panda_joint1,panda_joint2)", settings.Config["projection_evaluator"])
	})

	t.Run("composite_entry_merges_group_and_planner_params", func(t *testing.T) {
		settings := configs["panda_arm[PRMstar]"]
		assert.Equal(t, "panda_arm", settings.Group)
		assert.Equal(t, "geometric::PRMstar", settings.Config["type"])
		assert.True(t, settings.BoolParam("multi_query_planning_enabled"))
		assert.True(t, settings.BoolParam("enforce_joint_model_state_space"))
	})

	t.Run("values_keep_their_string_encoding", func(t *testing.T) {
		settings := configs["panda_arm[RRTConnect]"]
		assert.Equal(t, "0", settings.Config["range"])
		assert.Equal(t, 0.0, settings.FloatParam("range", -1))
	})

	t.Run("unknown_planner_config_reference_fails", func(t *testing.T) {
		_, err := ParsePlannerConfigurations([]byte(`
groups:
  arm:
    planner_configs: [Missing]
`))
		assert.Error(t, err)
	})

	t.Run("unknown_default_planner_config_fails", func(t *testing.T) {
		_, err := ParsePlannerConfigurations([]byte(`
groups:
  arm:
    default_planner_config: Missing
`))
		assert.Error(t, err)
	})
}

func TestLoadPlannerConfigurations(t *testing.T) {
	t.Run("loads_from_file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ompl_planning.yaml")
		require.NoError(t, os.WriteFile(path, []byte(testPlanningYAML), 0o644))

		configs, err := LoadPlannerConfigurations(path)
		require.NoError(t, err)
		assert.Contains(t, configs, "hand[RRTConnect]")
	})

	t.Run("missing_file_fails", func(t *testing.T) {
		_, err := LoadPlannerConfigurations(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestPlannerConfigurationSettingsParams(t *testing.T) {
	settings := PlannerConfigurationSettings{Config: map[string]string{
		"flag":   "true",
		"bad":    "not-a-bool",
		"range":  "0.25",
		"badnum": "x",
	}}

	assert.True(t, settings.BoolParam("flag"))
	assert.False(t, settings.BoolParam("bad"))
	assert.False(t, settings.BoolParam("missing"))
	assert.Equal(t, 0.25, settings.FloatParam("range", -1))
	assert.Equal(t, -1.0, settings.FloatParam("badnum", -1))
	assert.Equal(t, -1.0, settings.FloatParam("missing", -1))
}
