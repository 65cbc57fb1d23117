package core

import "fmt"

// Faction is the side a unit fights for
type Faction uint8

const (
	Goblin Faction = iota
	Elf
)

// Glyphs used by the text grid format
const (
	GlyphWall   = '#'
	GlyphOpen   = '.'
	GlyphGoblin = 'G'
	GlyphElf    = 'E'
)

// Factions lists every faction in a stable order
var Factions = [...]Faction{Goblin, Elf}

// Enemy returns the opposing faction
func (f Faction) Enemy() Faction {
	if f == Goblin {
		return Elf
	}
	return Goblin
}

// Glyph returns the character used for this faction in the text format
func (f Faction) Glyph() rune {
	if f == Goblin {
		return GlyphGoblin
	}
	return GlyphElf
}

func (f Faction) String() string {
	switch f {
	case Goblin:
		return "goblin"
	case Elf:
		return "elf"
	default:
		return fmt.Sprintf("Faction(%d)", uint8(f))
	}
}

// FactionFromGlyph maps a grid character to a faction
func FactionFromGlyph(r rune) (Faction, bool) {
	switch r {
	case GlyphGoblin:
		return Goblin, true
	case GlyphElf:
		return Elf, true
	default:
		return 0, false
	}
}

// ParseFaction converts a name such as "elf" or "Goblins" to a faction
func ParseFaction(s string) (Faction, error) {
	switch s {
	case "goblin", "goblins", "Goblin", "Goblins", "G":
		return Goblin, nil
	case "elf", "elves", "Elf", "Elves", "E":
		return Elf, nil
	default:
		return 0, fmt.Errorf("unknown faction %q", s)
	}
}
