package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/walking-machine/moveit2/internal/planner"
)

var plannersCmd = &cobra.Command{
	Use:   "planners",
	Short: "List the built-in planning algorithms",
	Long: `List the planning algorithm identifiers a planner configuration's
"type" key can reference. Multi-query algorithms, whose exploration
graphs can be persisted and reloaded across queries, are marked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		algorithms := planner.DefaultAlgorithms()
		sort.Slice(algorithms, func(i, j int) bool {
			return algorithms[i].ID() < algorithms[j].ID()
		})
		for _, alg := range algorithms {
			if _, ok := alg.(planner.PersistentAlgorithm); ok {
				fmt.Printf("%s (multi-query)\n", alg.ID())
				continue
			}
			fmt.Println(alg.ID())
		}
		return nil
	},
}
