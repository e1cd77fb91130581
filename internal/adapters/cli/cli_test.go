package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koussay97/space-travel-TSP/internal/adapters/cli"
)

const drag = `{Sun: 0, Mercury: 0, Venus: 0, Earth: 0, Mars: 0, Jupiter: 0, Saturn: 0, Uranus: 0, Neptune: 0, Pluto: 0}`

const smallCatalog = `
bodies:
  - {name: Earth, gravity: 9.81, distance: 149.6, atmosphere: 100}
  - {name: Mercury, gravity: 3.7, distance: 57.9, atmosphere: 100}
  - {name: Venus, gravity: 8.87, distance: 108.2, atmosphere: 250}
  - {name: Mars, gravity: 3.71, distance: 227.9, atmosphere: 125}
presets:
  - name: boost
    launch_assist: {Earth: 3000, Mars: 3500}
  - name: bare
    launch_assist: {}
vehicles:
  - {name: heavy, mass: 1000, thrust: 1000000, drag: ` + drag + `}
  - {name: light, mass: 100, thrust: 50000000, drag: ` + drag + `}
  - {name: feeble, mass: 100, thrust: 900, drag: ` + drag + `}
`

// isolate points HOME and the working config at a temp dir
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SPACETOUR_LOGGING_LEVEL", "error")

	path := filepath.Join(home, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(smallCatalog), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBodiesCommand_BuiltinPreset(t *testing.T) {
	isolate(t)

	out, err := execute(t, "bodies", "--preset", "extreme")

	require.NoError(t, err)
	assert.Contains(t, out, "LAUNCH ASSIST (N)")
	assert.Contains(t, out, "Neptune")
	assert.Contains(t, out, "6700")
}

func TestVehiclesCommand_Builtin(t *testing.T) {
	isolate(t)

	out, err := execute(t, "vehicles")

	require.NoError(t, err)
	assert.Contains(t, out, "Millennium Falcon (Star Wars)")
	assert.Contains(t, out, "1336500.0 @ Venus")
}

func TestFeasibilityCommand_BuiltinExtreme(t *testing.T) {
	isolate(t)

	out, err := execute(t, "feasibility", "--preset", "extreme")

	require.NoError(t, err)
	assert.Contains(t, out, "Safe vehicles (6)")
	assert.Contains(t, out, "Excluded vehicles (3)")
	assert.Contains(t, out, "RL-10 (Upper Stage Engine) at Venus")
}

func TestTourCommand_LegsAndEdges(t *testing.T) {
	catalogPath := isolate(t)

	out, err := execute(t, "tour", "--catalog", catalogPath, "--preset", "boost", "--vehicle", "heavy", "--legs", "--edges")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "heavy: Earth → "), out)
	assert.Contains(t, out, "6 orderings evaluated")
	assert.Contains(t, out, "ascent ")
	assert.Contains(t, out, "└── ")
	assert.Contains(t, out, "SOURCE")
}

func TestTourCommand_RequiresVehicle(t *testing.T) {
	catalogPath := isolate(t)

	_, err := execute(t, "tour", "--catalog", catalogPath, "--preset", "boost")

	assert.ErrorContains(t, err, "no vehicle specified")
}

func TestTourCommand_SearchSpaceGuard(t *testing.T) {
	catalogPath := isolate(t)

	_, err := execute(t, "tour", "--catalog", catalogPath, "--preset", "boost", "--vehicle", "heavy", "--max-bodies", "3")

	assert.ErrorContains(t, err, "search space too large: 4 bodies exceeds limit of 3")
}

func TestRunCommand_AllPresets(t *testing.T) {
	catalogPath := isolate(t)

	out, err := execute(t, "run", "--catalog", catalogPath, "--pace", "0", "--workers", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "Scenario boost (run-boost-")
	assert.Contains(t, out, "Scenario bare (run-bare-")
	assert.Contains(t, out, "Safe vehicles (2): heavy, light")
	assert.Contains(t, out, "feeble at")
	assert.Contains(t, out, "Best: Tour(light: Earth → ")
}

func TestRunCommand_UnknownPreset(t *testing.T) {
	catalogPath := isolate(t)

	_, err := execute(t, "run", "--catalog", catalogPath, "--pace", "0", "--preset", "turbo")

	assert.ErrorContains(t, err, "scenario turbo failed")
}

func TestRunCommand_WritesMetricsTextfile(t *testing.T) {
	catalogPath := isolate(t)
	promPath := filepath.Join(t.TempDir(), "spacetour.prom")
	t.Setenv("SPACETOUR_METRICS_ENABLED", "true")
	t.Setenv("SPACETOUR_METRICS_TEXTFILE_PATH", promPath)

	_, err := execute(t, "run", "--catalog", catalogPath, "--pace", "0", "--preset", "boost")

	require.NoError(t, err)
	data, err := os.ReadFile(promPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "spacetour_planner_best_tour_seconds")
	assert.Contains(t, string(data), "spacetour_planner_commands_total")
}

func TestRunCommand_LogsFailedMetricsDump(t *testing.T) {
	catalogPath := isolate(t)
	promPath := filepath.Join(t.TempDir(), "missing", "spacetour.prom")
	t.Setenv("SPACETOUR_METRICS_ENABLED", "true")
	t.Setenv("SPACETOUR_METRICS_TEXTFILE_PATH", promPath)
	t.Setenv("SPACETOUR_LOGGING_OUTPUT", "stdout")

	out, err := execute(t, "run", "--catalog", catalogPath, "--pace", "0", "--preset", "boost")

	require.NoError(t, err)
	assert.Contains(t, out, "ERROR [CLI] Failed to write metrics")
	assert.NoFileExists(t, promPath)
}

func TestInvalidWorkerOverride(t *testing.T) {
	isolate(t)

	_, err := execute(t, "vehicles", "--workers", "0")

	assert.ErrorContains(t, err, "invalid configuration")
}

func TestConfigCommands_StorePreferences(t *testing.T) {
	catalogPath := isolate(t)

	// Arrange
	_, err := execute(t, "config", "set-vehicle", "light", "--catalog", catalogPath)
	require.NoError(t, err)
	_, err = execute(t, "config", "set-preset", "bare", "--catalog", catalogPath)
	require.NoError(t, err)

	// Act
	shown, err := execute(t, "config", "show", "--catalog", catalogPath)
	require.NoError(t, err)
	tour, err := execute(t, "tour", "--catalog", catalogPath)
	require.NoError(t, err)

	// Assert
	assert.Contains(t, shown, "Default Vehicle:  light")
	assert.Contains(t, shown, "Default Preset:   bare")
	assert.True(t, strings.HasPrefix(tour, "light: Earth → "), tour)

	_, err = execute(t, "config", "clear")
	require.NoError(t, err)
	shown, err = execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, shown, "Default Vehicle:  (not set)")
}

func TestConfigSetPreset_RejectsUnknown(t *testing.T) {
	isolate(t)

	_, err := execute(t, "config", "set-preset", "turbo")

	assert.ErrorContains(t, err, "unknown preset")
}

func TestFormatScenarioHeader_UnderlineMatchesTitle(t *testing.T) {
	for _, useEmojis := range []bool{false, true} {
		header := cli.NewReportFormatter(useEmojis).FormatScenarioHeader("extreme", "run-extreme-1")

		lines := strings.Split(strings.TrimSuffix(header, "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, utf8.RuneCountInString(lines[0]), utf8.RuneCountInString(lines[1]), "emojis=%v", useEmojis)
		assert.Equal(t, strings.Repeat("=", utf8.RuneCountInString(lines[1])), lines[1])
	}
}
