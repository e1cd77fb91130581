package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/koussay97/space-travel-TSP/internal/adapters/catalog"
	"github.com/koussay97/space-travel-TSP/internal/application/scenario"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	var (
		presets   []string
		vehicles  []string
		startBody string
		pace      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run full scenarios: feasibility, per-vehicle tours, best tour",
		Long: `Run one scenario per booster preset. Each scenario evaluates feasibility,
searches the fastest tour for every safe vehicle, then ranks the tours.

Without --preset the extreme, realistic and minimal presets run in that order,
paced by report.pace between consecutive scenarios.

Examples:
  spacetour run
  spacetour run --preset extreme --preset minimal --pace 0
  spacetour run --preset realistic --vehicle "F-1 (Saturn V)" --vehicle "RD-180 (Atlas V)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if len(presets) == 0 {
				presets = defaultPresets(a.catalog)
			}
			if !cmd.Flags().Changed("pace") {
				pace = a.cfg.Report.Pace
			}
			if startBody == "" {
				startBody = a.cfg.Search.StartBody
			}

			// One report per pace interval; the first is immediate
			var limiter *rate.Limiter
			if pace > 0 {
				limiter = rate.NewLimiter(rate.Every(pace), 1)
			}

			ctx := a.context(cmd)
			for i, preset := range presets {
				if limiter != nil {
					if err := limiter.Wait(ctx); err != nil {
						return fmt.Errorf("interrupted before scenario %s: %w", preset, err)
					}
				}

				resp, err := a.mediator.Send(ctx, &scenario.RunScenarioCommand{
					Preset:    preset,
					StartBody: startBody,
					Vehicles:  vehicles,
					Timeout:   a.cfg.Search.Timeout,
				})
				if err != nil {
					return fmt.Errorf("scenario %s failed: %w", preset, err)
				}

				if i > 0 {
					a.print("\n")
				}
				a.printScenario(resp.(*scenario.RunScenarioResponse))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&presets, "preset", nil, "Booster preset to run (repeatable, default: all presets)")
	cmd.Flags().StringArrayVar(&vehicles, "vehicle", nil, "Restrict to this vehicle (repeatable)")
	cmd.Flags().StringVar(&startBody, "start", "", "Body every tour starts and ends at (default: search.start_body)")
	cmd.Flags().DurationVar(&pace, "pace", 0, "Minimum delay between scenario reports (default: report.pace)")

	return cmd
}

// defaultPresets runs the built-in presets in their canonical order when the
// catalog has them, otherwise every preset in document order
func defaultPresets(c *catalog.Catalog) []string {
	var presets []string
	for _, preset := range catalog.DefaultPresets {
		if c.HasPreset(preset) {
			presets = append(presets, preset)
		}
	}
	if len(presets) == 0 {
		presets = c.Presets()
	}
	return presets
}

func (a *app) printScenario(result *scenario.RunScenarioResponse) {
	f := a.formatter

	a.print(f.FormatScenarioHeader(result.Preset, result.RunID))
	a.print(f.FormatFeasibility(result.Feasibility.Table))
	a.print("\n")
	a.print(f.FormatSafeVehicles(result.Feasibility.SafeVehicles))
	a.print(f.FormatExclusions(result.Exclusions()))

	for _, tour := range result.Result.Tours {
		a.print("\n")
		a.print(f.FormatTour(tour, nil))
	}

	a.print("\n")
	a.print(f.FormatRanking(result.Result))
	a.print(fmt.Sprintf("Scenario completed in %s\n", result.Elapsed.Round(time.Millisecond)))
}
