package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/walking-machine/moveit2/internal/planning"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Validate and inspect planner configuration files",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a planner configuration file",
	Long: `Validate a planner configuration file and report the configurations
it expands to. Group entries expand to one configuration per referenced
planner config plus the group default, keyed "group[config]".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configs, err := planning.LoadPlannerConfigurations(args[0])
		if err != nil {
			return fmt.Errorf("failed to load planner configurations: %w", err)
		}
		fmt.Printf("OK: %d planner configurations\n", len(configs))
		for _, name := range configs.Names() {
			fmt.Printf("  %s\n", name)
		}
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show <file> [name]",
	Short: "Display expanded planner configurations",
	Long: `Display the expanded planner configurations from a configuration
file in YAML, optionally restricted to a single configuration name.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		configs, err := planning.LoadPlannerConfigurations(args[0])
		if err != nil {
			return fmt.Errorf("failed to load planner configurations: %w", err)
		}

		out := make(map[string]map[string]string, len(configs))
		if len(args) == 2 {
			settings, ok := configs[args[1]]
			if !ok {
				return fmt.Errorf("no planner configuration named %q", args[1])
			}
			out[settings.Name] = settings.Config
		} else {
			for name, settings := range configs {
				out[name] = settings.Config
			}
		}

		encoded, err := yaml.Marshal(out)
		if err != nil {
			return fmt.Errorf("failed to encode configurations: %w", err)
		}
		fmt.Print(string(encoded))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)
}
