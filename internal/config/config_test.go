package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset() {
	cfg = nil
	v = nil
}

func TestInit(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
combat:
  initial_hp:
    goblin: 150
  elf_attack_bonus: 4
  mode: abort_on_elf_death
ui:
  window:
    width: 1024
    height: 768
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	reset()
	require.NoError(t, Init(configFile))

	c := Get()
	assert.Equal(t, 150, c.Combat.InitialHP.Goblin)
	assert.Equal(t, 200, c.Combat.InitialHP.Elf, "unset keys keep defaults")
	assert.Equal(t, 4, c.Combat.ElfAttackBonus)
	assert.Equal(t, ModeAbortOnElfDeath, c.Combat.Mode)
	assert.Equal(t, 1024, c.UI.Window.Width)
	assert.Equal(t, 768, c.UI.Window.Height)
	assert.Equal(t, configFile, ConfigFilePath())
}

func TestInitWithDefaults(t *testing.T) {
	reset()
	require.NoError(t, Init("/non/existent/path/config.yaml"))

	c := Get()
	assert.Equal(t, 200, c.Combat.InitialHP.Goblin)
	assert.Equal(t, 200, c.Combat.InitialHP.Elf)
	assert.Equal(t, 0, c.Combat.ElfAttackBonus)
	assert.Equal(t, ModeToCompletion, c.Combat.Mode)
	assert.Equal(t, 10000, c.Combat.MaxRounds)
	assert.Equal(t, 200, c.Search.MaxBonus)
	assert.Equal(t, "info", c.Logging.Level)
	assert.Equal(t, "console", c.Logging.Format)
	assert.False(t, c.Replay.Enabled)
	assert.Equal(t, "replay.jsonl", c.Replay.Path)
	assert.Equal(t, 24, c.UI.TileSize)
	assert.Equal(t, 20, c.UI.RoundInterval)
}

func TestEnvironmentVariables(t *testing.T) {
	reset()
	t.Setenv("CAVE_COMBAT_ELF_ATTACK_BONUS", "12")
	t.Setenv("CAVE_LOGGING_LEVEL", "debug")

	require.NoError(t, Init(""))

	c := Get()
	assert.Equal(t, 12, c.Combat.ElfAttackBonus)
	assert.Equal(t, "debug", c.Logging.Level)
}

func TestSet(t *testing.T) {
	reset()
	require.NoError(t, Init(""))

	Set("combat.elf_attack_bonus", 7)
	Set("ui.window.width", 1280)

	c := Get()
	assert.Equal(t, 7, c.Combat.ElfAttackBonus)
	assert.Equal(t, 1280, c.UI.Window.Width)
	assert.Equal(t, 7, GetInt("combat.elf_attack_bonus"))
	assert.Equal(t, ModeToCompletion, GetString("combat.mode"))
}

func TestInitRejectsInvalidFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"zero goblin hp", "combat:\n  initial_hp:\n    goblin: 0\n", "initial_hp"},
		{"negative bonus", "combat:\n  elf_attack_bonus: -1\n", "elf_attack_bonus"},
		{"unknown mode", "combat:\n  mode: sudden_death\n", "combat.mode"},
		{"zero max rounds", "combat:\n  max_rounds: 0\n", "max_rounds"},
		{"bad log format", "logging:\n  format: xml\n", "logging.format"},
		{"replay without path", "replay:\n  enabled: true\n  path: \"\"\n", "replay.path"},
		{"zero tile size", "ui:\n  tile_size: 0\n", "tile_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			reset()
			err := Init(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	reset()
	require.NoError(t, Init(""))
	assert.NoError(t, Validate(Get()))
}
