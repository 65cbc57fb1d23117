package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/config"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/mapgen"
)

func withConfig(t *testing.T, values map[string]interface{}) {
	t.Helper()
	require.NoError(t, config.Init(""))
	for k, v := range values {
		config.Set(k, v)
	}
	t.Cleanup(func() { _ = config.Init("") })
}

func intPtr(v int) *int { return &v }

func TestDefaults(t *testing.T) {
	withConfig(t, map[string]interface{}{
		"combat.initial_hp.goblin": 150,
		"combat.elf_attack_bonus":  2,
		"combat.max_rounds":        500,
		"combat.mode":              config.ModeAbortOnElfDeath,
		"search.max_bonus":         40,
	})

	assert.Equal(t, mapgen.ParseOptions{GoblinHP: 150, ElfHP: 200}, DefaultParseOptions())
	assert.Equal(t, 2, DefaultElfAttackBonus())
	assert.Equal(t, 500, DefaultMaxRounds())
	assert.Equal(t, 40, MaxSearchBonus())
	mode, err := DefaultRunMode()
	require.NoError(t, err)
	assert.Equal(t, AbortOnElfDeath, mode)
}

func TestResolveSettings(t *testing.T) {
	withConfig(t, map[string]interface{}{
		"combat.elf_attack_bonus": 5,
		"combat.mode":             config.ModeToCompletion,
	})

	tests := []struct {
		name      string
		overrides Overrides
		scenario  *mapgen.Scenario
		wantBonus int
		wantMode  RunMode
	}{
		{
			name:      "config only",
			wantBonus: 5,
			wantMode:  ToCompletion,
		},
		{
			name:      "scenario over config",
			scenario:  &mapgen.Scenario{ElfAttackBonus: intPtr(3), Mode: config.ModeAbortOnElfDeath},
			wantBonus: 3,
			wantMode:  AbortOnElfDeath,
		},
		{
			name:      "scenario zero bonus over config",
			scenario:  &mapgen.Scenario{ElfAttackBonus: intPtr(0)},
			wantBonus: 0,
			wantMode:  ToCompletion,
		},
		{
			name:      "scenario without bonus keeps config",
			scenario:  &mapgen.Scenario{Mode: config.ModeAbortOnElfDeath},
			wantBonus: 5,
			wantMode:  AbortOnElfDeath,
		},
		{
			name:      "flags over scenario",
			overrides: Overrides{ElfAttackBonus: intPtr(0), Mode: config.ModeToCompletion},
			scenario:  &mapgen.Scenario{ElfAttackBonus: intPtr(3), Mode: config.ModeAbortOnElfDeath},
			wantBonus: 0,
			wantMode:  ToCompletion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := ResolveSettings(tt.overrides, tt.scenario)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBonus, rs.ElfAttackBonus)
			assert.Equal(t, tt.wantMode, rs.Mode)
			assert.Equal(t, DefaultMaxRounds(), rs.MaxRounds)
		})
	}
}

func TestResolveSettings_Errors(t *testing.T) {
	withConfig(t, nil)

	_, err := ResolveSettings(Overrides{Mode: "forever"}, nil)
	assert.ErrorContains(t, err, "unknown run mode")

	_, err = ResolveSettings(Overrides{ElfAttackBonus: intPtr(-2)}, nil)
	assert.ErrorContains(t, err, "non-negative")
}
