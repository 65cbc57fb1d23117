package mapgen

import (
	"strings"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
)

// ANSI color codes
const (
	ColorReset = "\033[0m"
	ColorRed   = "\033[31m"
	ColorGreen = "\033[32m"
	ColorGray  = "\033[90m"
)

var factionColors = map[core.Faction]string{
	core.Goblin: ColorRed,
	core.Elf:    ColorGreen,
}

// Colorize adds ANSI colors to rendered board text: walls gray, goblins
// red and elves green, annotations included
func Colorize(board string) string {
	lines := strings.Split(board, "\n")
	for i, line := range lines {
		cells, notes, annotated := strings.Cut(line, "   ")

		var sb strings.Builder
		for _, r := range cells {
			sb.WriteString(paint(r, string(r)))
		}
		if annotated {
			entries := strings.Split(notes, ", ")
			for j, entry := range entries {
				if entry != "" {
					entries[j] = paint([]rune(entry)[0], entry)
				}
			}
			sb.WriteString("   ")
			sb.WriteString(strings.Join(entries, ", "))
		}
		lines[i] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// paint wraps s in the color of glyph, if it has one
func paint(glyph rune, s string) string {
	color := ""
	if glyph == core.GlyphWall {
		color = ColorGray
	} else if f, ok := core.FactionFromGlyph(glyph); ok {
		color = factionColors[f]
	}
	if color == "" {
		return s
	}
	return color + s + ColorReset
}
