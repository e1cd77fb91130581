package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/koussay97/space-travel-TSP/internal/application/scenario"
)

// NewFeasibilityCommand creates the feasibility command
func NewFeasibilityCommand() *cobra.Command {
	var (
		preset   string
		vehicles []string
	)

	cmd := &cobra.Command{
		Use:   "feasibility",
		Short: "Show which vehicles can leave and land on every body",
		Long: `Evaluate every vehicle against every body of a preset.

A cell passes when the vehicle can both climb out of and descend through the
body's atmosphere. Vehicles failing any body are excluded from tour search.

Examples:
  spacetour feasibility --preset extreme
  spacetour feasibility --preset minimal --vehicle "Draco Thruster (SpaceX)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			preset, err := a.resolvePreset(preset)
			if err != nil {
				return err
			}

			resp, err := a.mediator.Send(a.context(cmd), &scenario.EvaluateFeasibilityQuery{
				Preset:   preset,
				Vehicles: vehicles,
			})
			if err != nil {
				return fmt.Errorf("feasibility check failed: %w", err)
			}
			result := resp.(*scenario.EvaluateFeasibilityResponse)

			a.print(a.formatter.FormatFeasibility(result.Table))
			a.print("\n")
			a.print(a.formatter.FormatSafeVehicles(result.SafeVehicles))
			a.print(a.formatter.FormatExclusions(result.Exclusions))
			return nil
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "", "Booster preset (default: user preference or catalog.default_preset)")
	cmd.Flags().StringArrayVar(&vehicles, "vehicle", nil, "Restrict to this vehicle (repeatable)")

	return cmd
}
