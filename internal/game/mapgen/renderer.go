package mapgen

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
)

// RenderRow draws row y and returns its unit annotations, left to right
func RenderRow(g *core.Grid, y int) (string, []string) {
	var row strings.Builder
	var annotations []string
	for x := 0; x < g.W; x++ {
		c := g.Cell(core.Position{X: x, Y: y})
		switch c.Kind {
		case core.CellWall:
			row.WriteRune(core.GlyphWall)
		case core.CellOpen:
			row.WriteRune(core.GlyphOpen)
		case core.CellUnit:
			row.WriteRune(c.Faction.Glyph())
			annotations = append(annotations, fmt.Sprintf("%c(%d)", c.Faction.Glyph(), c.HP))
		}
	}
	return row.String(), annotations
}

// Render draws the grid one row per line. Rows holding units are followed
// by three spaces and their "G(200), E(197)" annotations. There is no
// trailing newline.
func Render(g *core.Grid) string {
	lines := make([]string, g.H)
	for y := 0; y < g.H; y++ {
		row, annotations := RenderRow(g, y)
		if len(annotations) > 0 {
			row += "   " + strings.Join(annotations, ", ")
		}
		lines[y] = row
	}
	return strings.Join(lines, "\n")
}
