package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/koussay97/space-travel-TSP/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage spacetour configuration settings.

Configuration is loaded from multiple sources with priority:
1. Command-line flags
2. Environment variables (SPACETOUR_* prefix)
3. Config file (config.yaml)
4. Default values

User preferences (default vehicle and preset) are stored in
~/.spacetour/preferences.json

Examples:
  spacetour config show
  spacetour config set-vehicle "F-1 (Saturn V)"
  spacetour config set-preset extreme
  spacetour config clear`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetVehicleCommand())
	cmd.AddCommand(newConfigSetPresetCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			prefs, err := handler.Load()
			if err != nil {
				a.print(fmt.Sprintf("Warning: Failed to load user config: %v\n\n", err))
				prefs = &config.UserConfig{}
			}

			cfg := a.cfg
			out := a.out
			fmt.Fprintln(out, "spacetour Configuration")
			fmt.Fprintln(out, "=======================")

			fmt.Fprintln(out, "User Preferences:")
			fmt.Fprintf(out, "  Config file:      %s\n", handler.GetConfigPath())
			fmt.Fprintf(out, "  Default Vehicle:  %s\n", orNotSet(prefs.DefaultVehicle))
			fmt.Fprintf(out, "  Default Preset:   %s\n", orNotSet(prefs.DefaultPreset))

			fmt.Fprintln(out, "\nSearch:")
			fmt.Fprintf(out, "  Start Body:       %s\n", cfg.Search.StartBody)
			fmt.Fprintf(out, "  Max Bodies:       %d\n", cfg.Search.MaxBodies)
			fmt.Fprintf(out, "  Workers:          %d\n", cfg.Search.Workers)
			fmt.Fprintf(out, "  Timeout:          %s\n", cfg.Search.Timeout)

			fmt.Fprintln(out, "\nCatalog:")
			fmt.Fprintf(out, "  Path:             %s\n", orDefault(cfg.Catalog.Path, "(built-in)"))
			fmt.Fprintf(out, "  Default Preset:   %s\n", cfg.Catalog.DefaultPreset)
			fmt.Fprintf(out, "  Presets:          %v\n", a.catalog.Presets())
			fmt.Fprintf(out, "  Vehicles:         %d\n", len(a.catalog.Vehicles()))

			fmt.Fprintln(out, "\nReport:")
			fmt.Fprintf(out, "  Pace:             %s\n", cfg.Report.Pace)
			fmt.Fprintf(out, "  Use Emojis:       %v\n", cfg.Report.UseEmojis)
			fmt.Fprintf(out, "  Show Legs:        %v\n", cfg.Report.ShowLegs)

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %v\n", cfg.Metrics.Enabled)
			fmt.Fprintf(out, "  Namespace:        %s\n", cfg.Metrics.Namespace)
			fmt.Fprintf(out, "  Textfile:         %s\n", orNotSet(cfg.Metrics.TextfilePath))

			return nil
		},
	}

	return cmd
}

// newConfigSetVehicleCommand creates the config set-vehicle subcommand
func newConfigSetVehicleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-vehicle <name>",
		Short: "Set default vehicle",
		Long: `Set the vehicle the tour command uses when --vehicle is not given.
The name must exist in the active catalog.

Example:
  spacetour config set-vehicle "SpaceX Merlin 1D (Falcon 9)"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			vehicle, err := a.catalog.Vehicle(args[0])
			if err != nil {
				return err
			}

			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := handler.SetDefaultVehicle(vehicle.Name()); err != nil {
				return fmt.Errorf("failed to set default vehicle: %w", err)
			}

			a.print("✓ Default vehicle set successfully\n")
			a.print(fmt.Sprintf("  Vehicle: %s\n", vehicle))
			return nil
		},
	}

	return cmd
}

// newConfigSetPresetCommand creates the config set-preset subcommand
func newConfigSetPresetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-preset <name>",
		Short: "Set default booster preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			preset := args[0]
			if !a.catalog.HasPreset(preset) {
				return fmt.Errorf("unknown preset %q, choose one of %v", preset, a.catalog.Presets())
			}

			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := handler.SetDefaultPreset(preset); err != nil {
				return fmt.Errorf("failed to set default preset: %w", err)
			}

			a.print(fmt.Sprintf("✓ Default preset set to %s\n", preset))
			return nil
		},
	}

	return cmd
}

// newConfigClearCommand creates the config clear subcommand
func newConfigClearCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear stored preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := handler.Clear(); err != nil {
				return fmt.Errorf("failed to clear preferences: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Preferences cleared")
			return nil
		},
	}

	return cmd
}

func orNotSet(value string) string {
	return orDefault(value, "(not set)")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
