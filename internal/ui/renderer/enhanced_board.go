package renderer

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/rules"
)

var (
	SelectionColor = color.RGBA{255, 255, 100, 255} // Yellow highlight
	HoverColor     = color.RGBA{255, 255, 255, 64}  // Semi-transparent white
	ReachColor     = color.RGBA{100, 100, 255, 80}  // Semi-transparent blue
	TargetColor    = color.RGBA{255, 100, 100, 96}  // Semi-transparent red
)

// EnhancedBoardRenderer adds hover and unit inspection overlays. For a
// selected unit it marks the cells it could move into and the enemy it
// would attack.
type EnhancedBoardRenderer struct {
	*BoardRenderer

	selector *rules.TargetSelector

	selected     core.Position
	hasSelection bool

	hover core.Position
}

func NewEnhancedBoardRenderer(tileSize int, f font.Face, maxHP int) *EnhancedBoardRenderer {
	return &EnhancedBoardRenderer{
		BoardRenderer: NewBoardRenderer(tileSize, f, maxHP),
		selector:      rules.NewTargetSelector(),
	}
}

func (ebr *EnhancedBoardRenderer) SetSelection(p core.Position, hasSelection bool) {
	ebr.selected = p
	ebr.hasSelection = hasSelection
}

func (ebr *EnhancedBoardRenderer) SetHover(p core.Position) {
	ebr.hover = p
}

func (ebr *EnhancedBoardRenderer) Draw(screen *ebiten.Image, g *core.Grid) {
	ebr.BoardRenderer.Draw(screen, g)
	if g == nil {
		return
	}
	ebr.drawOverlays(screen, g)
}

func (ebr *EnhancedBoardRenderer) drawOverlays(screen *ebiten.Image, g *core.Grid) {
	if ebr.hasSelection {
		if u, ok := g.UnitAt(ebr.selected); ok {
			for _, p := range g.AdjacentOpenCells(u.Pos) {
				ebr.drawTileOverlay(screen, p, ReachColor)
			}
			if choice, ok := ebr.selector.Select(g, u); ok {
				if choice.InRange() {
					ebr.drawTileOverlay(screen, choice.Enemy.Pos, TargetColor)
				} else {
					ebr.drawTileOverlay(screen, choice.Cell, TargetColor)
				}
			}
			ebr.drawSelectionBorder(screen, u.Pos)
		}
	}

	if g.InBounds(ebr.hover) && g.Cell(ebr.hover).Kind != core.CellWall {
		ebr.drawTileOverlay(screen, ebr.hover, HoverColor)
	}
}

func (ebr *EnhancedBoardRenderer) drawTileOverlay(screen *ebiten.Image, p core.Position, c color.Color) {
	screenX := float32(p.X * ebr.tileSize)
	screenY := float32(p.Y * ebr.tileSize)
	size := float32(ebr.tileSize)

	vector.DrawFilledRect(screen, screenX, screenY, size, size, c, false)
}

func (ebr *EnhancedBoardRenderer) drawSelectionBorder(screen *ebiten.Image, p core.Position) {
	screenX := float32(p.X * ebr.tileSize)
	screenY := float32(p.Y * ebr.tileSize)
	size := float32(ebr.tileSize)
	thickness := float32(2)

	// Top
	vector.DrawFilledRect(screen, screenX, screenY, size, thickness, SelectionColor, false)
	// Bottom
	vector.DrawFilledRect(screen, screenX, screenY+size-thickness, size, thickness, SelectionColor, false)
	// Left
	vector.DrawFilledRect(screen, screenX, screenY, thickness, size, SelectionColor, false)
	// Right
	vector.DrawFilledRect(screen, screenX+size-thickness, screenY, thickness, size, SelectionColor, false)
}
