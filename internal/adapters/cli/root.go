package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath  string
	catalogPath string
	workers     int
	maxBodies   int
	verbose     bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spacetour",
		Short: "Space tour planner - vehicle feasibility and fastest closed tours",
		Long: `spacetour checks which vehicles can leave and land on every celestial body,
then searches every ordering of the bodies for the fastest closed tour.

Leg times come from force-balance kinematics: ascent through the departure
atmosphere, transit at full thrust, descent through the arrival atmosphere.

Examples:
  spacetour bodies --preset extreme
  spacetour vehicles
  spacetour feasibility --preset realistic
  spacetour tour --preset minimal --vehicle "F-1 (Saturn V)" --legs
  spacetour run
  spacetour run --preset extreme --workers 8
  spacetour config set-vehicle "RD-180 (Atlas V)"`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ., ./configs, /etc/spacetour)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "",
		"Path to a YAML body/vehicle catalog (default: built-in catalog)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0,
		"Parallel search workers per vehicle (overrides search.workers)")
	rootCmd.PersistentFlags().IntVar(&maxBodies, "max-bodies", 0,
		"Largest body count searched exhaustively (overrides search.max_bodies)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewBodiesCommand())
	rootCmd.AddCommand(NewVehiclesCommand())
	rootCmd.AddCommand(NewFeasibilityCommand())
	rootCmd.AddCommand(NewTourCommand())
	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command, cancelling searches on SIGINT or SIGTERM
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
