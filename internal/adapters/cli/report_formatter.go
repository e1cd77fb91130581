package cli

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/koussay97/space-travel-TSP/internal/adapters/catalog"
	"github.com/koussay97/space-travel-TSP/internal/domain/fleet"
	"github.com/koussay97/space-travel-TSP/internal/domain/navigation"
	"github.com/koussay97/space-travel-TSP/internal/domain/routing"
	"github.com/koussay97/space-travel-TSP/internal/domain/shared"
	"github.com/koussay97/space-travel-TSP/pkg/utils"
)

// ReportFormatter renders scenario results as plain text
type ReportFormatter struct {
	useEmojis bool
}

// NewReportFormatter creates a new report formatter
func NewReportFormatter(useEmojis bool) *ReportFormatter {
	return &ReportFormatter{useEmojis: useEmojis}
}

// FormatScenarioHeader renders the banner printed before each preset
func (f *ReportFormatter) FormatScenarioHeader(preset, runID string) string {
	title := fmt.Sprintf("Scenario %s (%s)", preset, runID)
	if f.useEmojis {
		title = fmt.Sprintf("%s %s", title, presetBadge(preset))
	}
	return fmt.Sprintf("%s\n%s\n", title, strings.Repeat("=", utf8.RuneCountInString(title)))
}

func presetBadge(preset string) string {
	switch preset {
	case catalog.PresetExtreme:
		return "🚀💥🔥"
	case catalog.PresetRealistic:
		return "🚀✨⚡"
	case catalog.PresetMinimal:
		return "🚀🌱"
	default:
		return "🚀"
	}
}

// FormatBodies renders body constants, one row per body
func (f *ReportFormatter) FormatBodies(bodies []shared.Body) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tGRAVITY (m/s²)\tDISTANCE (Mkm)\tATMOSPHERE (km)\tLAUNCH ASSIST (N)")
	fmt.Fprintln(w, "----\t--------------\t--------------\t---------------\t-----------------")
	for _, body := range bodies {
		fmt.Fprintf(w, "%s\t%.2f\t%.1f\t%.0f\t%.0f\n",
			body.Name(),
			body.Gravity(),
			body.Distance(),
			body.AtmosphereThickness(),
			body.LaunchAssist(),
		)
	}
	w.Flush()
	return builder.String()
}

// FormatVehicles renders vehicle specs with their heaviest drag
func (f *ReportFormatter) FormatVehicles(vehicles []*fleet.Vehicle) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VEHICLE\tMASS (kg)\tTHRUST (N)\tTHRUST/WEIGHT (Earth)\tMAX DRAG (N)")
	fmt.Fprintln(w, "-------\t---------\t----------\t---------------------\t------------")
	for _, vehicle := range vehicles {
		maxDrag, at := 0.0, ""
		table := vehicle.DragTable()
		for _, name := range shared.CanonicalBodyNames() {
			if drag := table[name]; drag > maxDrag {
				maxDrag, at = drag, name
			}
		}
		dragText := "0"
		if at != "" {
			dragText = fmt.Sprintf("%.1f @ %s", maxDrag, at)
		}
		fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%.2f\t%s\n",
			vehicle.Name(),
			vehicle.Mass(),
			vehicle.Thrust(),
			vehicle.Thrust()/(vehicle.Mass()*9.81),
			dragText,
		)
	}
	w.Flush()
	return builder.String()
}

// FormatFeasibility renders the vehicle × body table
func (f *ReportFormatter) FormatFeasibility(table *navigation.FeasibilityTable) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 1, ' ', 0)

	bodies := table.Bodies()
	fmt.Fprintf(w, "VEHICLE\t%s\n", strings.Join(bodies, "\t"))
	for _, vehicle := range table.Vehicles() {
		cells := make([]string, len(bodies))
		for i, ok := range table.Row(vehicle) {
			cells[i] = f.mark(ok)
		}
		fmt.Fprintf(w, "%s\t%s\n", vehicle, strings.Join(cells, "\t"))
	}
	w.Flush()
	return builder.String()
}

func (f *ReportFormatter) mark(ok bool) string {
	switch {
	case f.useEmojis && ok:
		return "✅"
	case f.useEmojis:
		return "❌"
	case ok:
		return "yes"
	default:
		return "no"
	}
}

// FormatExclusions lists why each excluded vehicle was dropped
func (f *ReportFormatter) FormatExclusions(exclusions []navigation.Exclusion) string {
	if len(exclusions) == 0 {
		return "No vehicles excluded\n"
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Excluded vehicles (%d):\n", len(exclusions)))
	for _, exclusion := range exclusions {
		builder.WriteString(fmt.Sprintf("  - %s at %s: %v\n", exclusion.Vehicle, exclusion.Body, exclusion.Reason))
	}
	return builder.String()
}

// FormatSafeVehicles renders the vehicles cleared for every body
func (f *ReportFormatter) FormatSafeVehicles(safe []string) string {
	if len(safe) == 0 {
		return "No vehicle can operate at every body\n"
	}
	return fmt.Sprintf("Safe vehicles (%d): %s\n", len(safe), strings.Join(safe, ", "))
}

// FormatTour renders a tour as a tree of legs.
// breakdown may be nil; when given it adds ascent, transit and descent per leg.
func (f *ReportFormatter) FormatTour(tour *routing.Tour, breakdown []*navigation.LegTiming) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%s: %s\n", tour.Vehicle(), strings.Join(tour.Path(), " → ")))
	builder.WriteString(fmt.Sprintf("Total: %s (%.2fs), %d orderings evaluated\n",
		utils.FormatSeconds(tour.Total()), tour.Total(), tour.Permutations()))

	legs := tour.Legs()
	for i, leg := range legs {
		prefix, childPrefix := "├── ", "│   "
		if i == len(legs)-1 {
			prefix, childPrefix = "└── ", "    "
		}
		builder.WriteString(fmt.Sprintf("%s%s → %s  %s\n", prefix, leg.From, leg.To, utils.FormatSeconds(leg.Duration)))

		if i < len(breakdown) && breakdown[i] != nil {
			timing := breakdown[i]
			builder.WriteString(fmt.Sprintf("%sascent %s, transit %s, descent %s\n",
				childPrefix,
				utils.FormatSeconds(timing.Ascent),
				utils.FormatSeconds(timing.Transit),
				utils.FormatSeconds(timing.Descent),
			))
		}
	}
	return builder.String()
}

// FormatEdges renders (source, destination, cost) triples for graph tooling
func (f *ReportFormatter) FormatEdges(tour *routing.Tour) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tDESTINATION\tCOST (s)")
	for _, edge := range tour.Edges() {
		fmt.Fprintf(w, "%s\t%s\t%.4f\n", edge.Source, edge.Destination, edge.Cost)
	}
	w.Flush()
	return builder.String()
}

// FormatRanking lists every tour from fastest to slowest and names the winner
func (f *ReportFormatter) FormatRanking(result *routing.FleetResult) string {
	if result == nil || result.Best == nil {
		return "No tour found\n"
	}

	tours := append([]*routing.Tour(nil), result.Tours...)
	sort.SliceStable(tours, func(i, j int) bool {
		return tours[i].Total() < tours[j].Total()
	})

	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tVEHICLE\tTOTAL\tSECONDS")
	for i, tour := range tours {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\n", i+1, tour.Vehicle(), utils.FormatSeconds(tour.Total()), tour.Total())
	}
	w.Flush()

	winner := "Best"
	if f.useEmojis {
		winner = "👨‍🚀 Best"
	}
	builder.WriteString(fmt.Sprintf("\n%s: %s\n", winner, result.Best))
	return builder.String()
}
