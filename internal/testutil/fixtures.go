package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/mapgen"
)

// ParseGrid builds a grid from text rows with default hit points. Rows may
// carry "G(200), E(3)" annotations to set individual unit hit points.
func ParseGrid(t testing.TB, rows ...string) *core.Grid {
	t.Helper()
	g, err := mapgen.Parse(strings.Join(rows, "\n"), mapgen.DefaultParseOptions())
	require.NoError(t, err)
	return g
}

// ScenarioPath locates a bundled scenario file by name, searching the
// scenarios directory of the enclosing module
func ScenarioPath(t testing.TB, name string) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		candidate := filepath.Join(dir, "scenarios", name+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("scenario %q not found", name)
		}
		dir = parent
	}
}

// LoadScenario loads a bundled scenario by name
func LoadScenario(t testing.TB, name string) *mapgen.Scenario {
	t.Helper()
	s, err := mapgen.LoadScenario(ScenarioPath(t, name))
	require.NoError(t, err)
	return s
}

// ScenarioNames lists every bundled scenario
func ScenarioNames(t testing.TB) []string {
	t.Helper()
	dir := filepath.Dir(ScenarioPath(t, "open_duel"))
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	require.NoError(t, err)

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(filepath.Base(m), ".yaml"))
	}
	return names
}
