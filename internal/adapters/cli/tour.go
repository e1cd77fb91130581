package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/koussay97/space-travel-TSP/internal/application/scenario"
)

// NewTourCommand creates the tour command
func NewTourCommand() *cobra.Command {
	var (
		preset    string
		vehicle   string
		startBody string
		showLegs  bool
		showEdges bool
	)

	cmd := &cobra.Command{
		Use:   "tour",
		Short: "Find the fastest closed tour for one vehicle",
		Long: `Search every ordering of the preset's bodies for one vehicle and print the
fastest closed tour, starting and ending at the start body.

Examples:
  spacetour tour --preset realistic --vehicle "SpaceX Merlin 1D (Falcon 9)"
  spacetour tour --vehicle "F-1 (Saturn V)" --start Mars --legs
  spacetour tour --vehicle "RD-180 (Atlas V)" --edges`,
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
			vehicle, err := resolveVehicle(vehicle)
			if err != nil {
				return err
			}
			if startBody == "" {
				startBody = a.cfg.Search.StartBody
			}

			ctx := a.context(cmd)
			if a.cfg.Search.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, a.cfg.Search.Timeout)
				defer cancel()
			}

			resp, err := a.mediator.Send(ctx, &scenario.PlanTourQuery{
				Preset:    preset,
				Vehicle:   vehicle,
				StartBody: startBody,
			})
			if err != nil {
				return fmt.Errorf("tour search failed: %w", err)
			}
			result := resp.(*scenario.PlanTourResponse)

			if showLegs || a.cfg.Report.ShowLegs {
				a.print(a.formatter.FormatTour(result.Tour, result.Breakdown))
			} else {
				a.print(a.formatter.FormatTour(result.Tour, nil))
			}
			if showEdges {
				a.print("\n")
				a.print(a.formatter.FormatEdges(result.Tour))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "", "Booster preset (default: user preference or catalog.default_preset)")
	cmd.Flags().StringVar(&vehicle, "vehicle", "", "Vehicle name (default: user preference)")
	cmd.Flags().StringVar(&startBody, "start", "", "Body the tour starts and ends at (default: search.start_body)")
	cmd.Flags().BoolVar(&showLegs, "legs", false, "Show ascent, transit and descent of every leg")
	cmd.Flags().BoolVar(&showEdges, "edges", false, "Print the tour as (source, destination, cost) edges")

	return cmd
}
