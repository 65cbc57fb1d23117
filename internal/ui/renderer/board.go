package renderer

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
)

// -----------------------------------------------------------------------------
// Colour definitions
// -----------------------------------------------------------------------------

var FactionColors = map[core.Faction]color.Color{
	core.Goblin: color.RGBA{200, 50, 50, 255}, // Red
	core.Elf:    color.RGBA{50, 200, 50, 255}, // Green
}

var (
	WallColor     = color.RGBA{80, 80, 80, 255}
	FloorColor    = color.RGBA{30, 30, 30, 255}
	HPBarBack     = color.RGBA{60, 0, 0, 255}
	HPBarFront    = color.RGBA{240, 220, 60, 255}
	HPTextColor   = color.White
	HPBarHeight   = 3
	UnitInsetPart = 6 // unit square is inset by tileSize/UnitInsetPart
)

// -----------------------------------------------------------------------------
// Renderer
// -----------------------------------------------------------------------------

type BoardRenderer struct {
	tileSize    int
	defaultFont font.Face
	maxHP       int
}

// NewBoardRenderer returns a renderer ready to use. maxHP scales the hit
// point bars.
func NewBoardRenderer(tileSize int, f font.Face, maxHP int) *BoardRenderer {
	if maxHP <= 0 {
		maxHP = 1
	}
	return &BoardRenderer{tileSize: tileSize, defaultFont: f, maxHP: maxHP}
}

// TileSize is the edge length of one cell in pixels
func (br *BoardRenderer) TileSize() int { return br.tileSize }

// Draw renders the grid on the supplied Ebiten screen.
func (br *BoardRenderer) Draw(screen *ebiten.Image, g *core.Grid) {
	if g == nil {
		return
	}
	ts := float32(br.tileSize)

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := g.Cell(core.Position{X: x, Y: y})
			sx := float32(x * br.tileSize)
			sy := float32(y * br.tileSize)

			// ---------------------------------------------------------------------
			// Background pass
			// ---------------------------------------------------------------------
			if c.Kind == core.CellWall {
				vector.DrawFilledRect(screen, sx, sy, ts, ts, WallColor, false)
				continue
			}
			vector.DrawFilledRect(screen, sx, sy, ts, ts, FloorColor, false)

			if c.Kind != core.CellUnit {
				continue
			}

			// ---------------------------------------------------------------------
			// Unit square and hit point bar
			// ---------------------------------------------------------------------
			inset := ts / float32(UnitInsetPart)
			unitColor, ok := FactionColors[c.Faction]
			if !ok {
				unitColor = color.White
			}
			vector.DrawFilledRect(screen, sx+inset, sy+inset, ts-2*inset, ts-2*inset, unitColor, false)

			barW := ts - 2
			barY := sy + ts - float32(HPBarHeight) - 1
			vector.DrawFilledRect(screen, sx+1, barY, barW, float32(HPBarHeight), HPBarBack, false)
			filled := barW * float32(min(c.HP, br.maxHP)) / float32(br.maxHP)
			vector.DrawFilledRect(screen, sx+1, barY, filled, float32(HPBarHeight), HPBarFront, false)

			// ---------------------------------------------------------------------
			// Hit point count
			// ---------------------------------------------------------------------
			if br.defaultFont != nil {
				hpStr := strconv.Itoa(c.HP)
				b := text.BoundString(br.defaultFont, hpStr)
				textW := b.Max.X - b.Min.X
				textH := b.Max.Y - b.Min.Y
				if textW > br.tileSize {
					continue
				}
				tx := int(sx) + (br.tileSize-textW)/2
				ty := int(sy) + (br.tileSize+textH)/2
				text.Draw(screen, hpStr, br.defaultFont, tx, ty, HPTextColor)
			}
		}
	}
}
