package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "planctl",
	Short: "Inspect planner configurations and the built-in planner set",
	Long: `planctl is a maintenance tool for motion-planning deployments.

It validates planner configuration files before they are rolled out and
lists the planning algorithms a context manager resolves "type" keys
against.`,
	SilenceUsage: true,
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(plannersCmd)
}

// Execute runs the root command with signal-aware cancellation.
func Execute(ctx context.Context) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return rootCmd.ExecuteContext(ctx)
}
