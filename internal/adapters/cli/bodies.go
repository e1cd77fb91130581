package cli

import (
	"github.com/spf13/cobra"
)

// NewBodiesCommand creates the bodies command
func NewBodiesCommand() *cobra.Command {
	var preset string

	cmd := &cobra.Command{
		Use:   "bodies",
		Short: "List celestial bodies",
		Long: `List the celestial bodies of the catalog with their physical constants.

With --preset, the launch assist column shows that preset's ground-station
boost; without it every body is listed with zero assist.

Examples:
  spacetour bodies
  spacetour bodies --preset extreme`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			bodies, err := a.catalog.Bodies(preset)
			if err != nil {
				return err
			}

			a.print(a.formatter.FormatBodies(bodies))
			return nil
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "", "Booster preset applying launch assist")

	return cmd
}

// NewVehiclesCommand creates the vehicles command
func NewVehiclesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vehicles",
		Short: "List vehicles",
		Long: `List the vehicles of the catalog with mass, thrust, thrust-to-weight ratio
at Earth gravity and their heaviest atmospheric drag.

Example:
  spacetour vehicles`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			a.print(a.formatter.FormatVehicles(a.catalog.Vehicles()))
			return nil
		},
	}

	return cmd
}
