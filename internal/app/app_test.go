package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/mapgen"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/testutil"
)

const duel = "#######\n#G...E#\n#######\n"

func TestSetupLogging(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())
	saved := log.Logger
	defer func() { log.Logger = saved }()

	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			SetupLogging(tt.level, "json", &bytes.Buffer{})
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestSetupLogging_JSON(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())
	saved := log.Logger
	defer func() { log.Logger = saved }()

	var buf bytes.Buffer
	logger := SetupLogging("info", "json", &buf)
	logger.Info().Int("round", 3).Msg("Round finished")
	logger.Debug().Msg("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "Round finished", entry["message"])
	assert.Equal(t, float64(3), entry["round"])
	assert.Contains(t, entry, "time")
}

func TestSetupLogging_Console(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())
	saved := log.Logger
	defer func() { log.Logger = saved }()

	var buf bytes.Buffer
	logger := SetupLogging("info", "console", &buf)
	logger.Info().Str("winner", "elf").Msg("Combat finished")

	out := buf.String()
	assert.Contains(t, out, "Combat finished")
	assert.Contains(t, out, "winner")
	assert.Contains(t, out, "elf")
	assert.False(t, json.Valid([]byte(strings.TrimSpace(out))))
}

func TestLoadInput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duel.txt")
	require.NoError(t, os.WriteFile(path, []byte(duel), 0o644))

	in, err := LoadInput(InputOptions{Path: path}, mapgen.DefaultParseOptions())
	require.NoError(t, err)
	assert.Equal(t, path, in.Name)
	assert.Equal(t, duel, in.Text)
	assert.Nil(t, in.Scenario)

	_, err = LoadInput(InputOptions{Path: filepath.Join(t.TempDir(), "missing")}, mapgen.DefaultParseOptions())
	assert.Error(t, err)
}

func TestLoadInput_Stdin(t *testing.T) {
	in, err := LoadInput(InputOptions{Path: "-", Stdin: strings.NewReader(duel)}, mapgen.DefaultParseOptions())
	require.NoError(t, err)
	assert.Equal(t, "stdin", in.Name)
	assert.Equal(t, duel, in.Text)

	_, err = LoadInput(InputOptions{}, mapgen.DefaultParseOptions())
	assert.Error(t, err)
}

func TestLoadInput_Scenario(t *testing.T) {
	path := testutil.ScenarioPath(t, "sample_b")
	in, err := LoadInput(InputOptions{Scenario: path, Path: "ignored"}, mapgen.ParseOptions{GoblinHP: 50, ElfHP: 60})
	require.NoError(t, err)

	assert.Equal(t, "sample_b", in.Name)
	require.NotNil(t, in.Scenario)
	require.NotNil(t, in.Scenario.Expect)
	assert.Equal(t, 36334, in.Scenario.Expect.Score)
	assert.Equal(t, 50, in.ParseOptions.GoblinHP)
	assert.Equal(t, 60, in.ParseOptions.ElfHP)
}

func TestLoadInput_Generate(t *testing.T) {
	opts := InputOptions{Generate: "12x9", Seed: 42}
	a, err := LoadInput(opts, mapgen.DefaultParseOptions())
	require.NoError(t, err)
	b, err := LoadInput(opts, mapgen.DefaultParseOptions())
	require.NoError(t, err)

	assert.Equal(t, a.Text, b.Text)
	assert.Equal(t, int64(42), a.Seed)
	assert.Equal(t, "arena-12x9-42", a.Name)

	g, err := mapgen.Parse(a.Text, a.ParseOptions)
	require.NoError(t, err)
	assert.Equal(t, 12, g.W)
	assert.Equal(t, 9, g.H)
	assert.Equal(t, 4, g.CountFaction(core.Goblin))
	assert.Equal(t, 4, g.CountFaction(core.Elf))
}

func TestLoadInput_GenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		size    string
		wantErr error
	}{
		{"not a size", "big", ErrBadArenaSize},
		{"missing height", "12x", ErrBadArenaSize},
		{"too small", "2x2", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadInput(InputOptions{Generate: tt.size, Seed: 1}, mapgen.DefaultParseOptions())
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
