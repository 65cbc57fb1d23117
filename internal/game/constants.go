package game

import (
	"fmt"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/config"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/mapgen"
)

// Config-backed defaults, the lowest layer of run settings

func DefaultParseOptions() mapgen.ParseOptions {
	hp := config.Get().Combat.InitialHP
	return mapgen.ParseOptions{GoblinHP: hp.Goblin, ElfHP: hp.Elf}
}

func DefaultElfAttackBonus() int {
	return config.Get().Combat.ElfAttackBonus
}

func DefaultMaxRounds() int {
	return config.Get().Combat.MaxRounds
}

func DefaultRunMode() (RunMode, error) {
	return ParseRunMode(config.Get().Combat.Mode)
}

func MaxSearchBonus() int {
	return config.Get().Search.MaxBonus
}

// Overrides are per-run values from the command line; nil or empty fields
// defer to the scenario and then to config
type Overrides struct {
	ElfAttackBonus *int
	Mode           string
}

// RunSettings are the merged parameters of one run
type RunSettings struct {
	ElfAttackBonus int
	Mode           RunMode
	MaxRounds      int
}

// ResolveSettings merges overrides, then scenario, then config defaults.
// scenario may be nil.
func ResolveSettings(o Overrides, scenario *mapgen.Scenario) (RunSettings, error) {
	rs := RunSettings{
		ElfAttackBonus: DefaultElfAttackBonus(),
		MaxRounds:      DefaultMaxRounds(),
	}
	modeName := config.Get().Combat.Mode

	if scenario != nil {
		if scenario.ElfAttackBonus != nil {
			rs.ElfAttackBonus = *scenario.ElfAttackBonus
		}
		if scenario.Mode != "" {
			modeName = scenario.Mode
		}
	}
	if o.ElfAttackBonus != nil {
		rs.ElfAttackBonus = *o.ElfAttackBonus
	}
	if o.Mode != "" {
		modeName = o.Mode
	}

	if rs.ElfAttackBonus < 0 {
		return RunSettings{}, fmt.Errorf("elf attack bonus must be non-negative, got %d", rs.ElfAttackBonus)
	}
	mode, err := ParseRunMode(modeName)
	if err != nil {
		return RunSettings{}, err
	}
	rs.Mode = mode
	return rs, nil
}
