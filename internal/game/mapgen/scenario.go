package mapgen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
)

// Scenario is a named cave layout with its run parameters and, optionally,
// the outcome it is known to produce
type Scenario struct {
	Name           string       `yaml:"name"`
	Description    string       `yaml:"description,omitempty"`
	Map            string       `yaml:"map"`
	ElfAttackBonus *int         `yaml:"elf_attack_bonus,omitempty"`
	Mode           string       `yaml:"mode,omitempty"`
	InitialHP      HitPoints    `yaml:"initial_hp,omitempty"`
	Expect         *Expectation `yaml:"expect,omitempty"`
}

// HitPoints overrides starting HP per faction; zero keeps the default
type HitPoints struct {
	Goblin int `yaml:"goblin,omitempty"`
	Elf    int `yaml:"elf,omitempty"`
}

// Expectation records a known result for a scenario
type Expectation struct {
	Winner      string `yaml:"winner"`
	Rounds      int    `yaml:"rounds"`
	TotalHP     int    `yaml:"total_hp"`
	Score       int    `yaml:"score"`
	MinElfBonus *int   `yaml:"min_elf_bonus,omitempty"`
	BonusRounds int    `yaml:"bonus_rounds,omitempty"`
	BonusHP     int    `yaml:"bonus_total_hp,omitempty"`
	BonusScore  int    `yaml:"bonus_score,omitempty"`
}

// LoadScenario reads a YAML scenario file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	s, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// ParseScenario decodes a YAML scenario document
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if s.Map == "" {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, ErrEmptyGrid)
	}
	if s.ElfAttackBonus != nil && *s.ElfAttackBonus < 0 {
		return nil, fmt.Errorf("scenario %q: elf_attack_bonus must not be negative, got %d", s.Name, *s.ElfAttackBonus)
	}
	return &s, nil
}

// ParseOptions merges the scenario's HP overrides into base
func (s *Scenario) ParseOptions(base ParseOptions) ParseOptions {
	if s.InitialHP.Goblin > 0 {
		base.GoblinHP = s.InitialHP.Goblin
	}
	if s.InitialHP.Elf > 0 {
		base.ElfHP = s.InitialHP.Elf
	}
	return base
}

// Grid parses the scenario map
func (s *Scenario) Grid(base ParseOptions) (*core.Grid, error) {
	g, err := Parse(s.Map, s.ParseOptions(base))
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return g, nil
}

// Marshal encodes the scenario back to YAML
func (s *Scenario) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
