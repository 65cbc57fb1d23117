package mapgen

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
)

// ErrNotEnoughRoom is returned when no connected region can hold every unit
var ErrNotEnoughRoom = errors.New("not enough connected open ground for all units")

// CaveConfig holds configuration for random cave generation
type CaveConfig struct {
	Width     int
	Height    int
	Goblins   int
	Elves     int
	RockRatio int // 1 rock per N interior cells; 0 disables rocks
	GoblinHP  int
	ElfHP     int
}

// DefaultCaveConfig returns a sensible default configuration
func DefaultCaveConfig(w, h int) CaveConfig {
	return CaveConfig{
		Width:     w,
		Height:    h,
		Goblins:   4,
		Elves:     4,
		RockRatio: 6,
		GoblinHP:  DefaultHitPoints,
		ElfHP:     DefaultHitPoints,
	}
}

// Validate checks that a cave with these settings can be built
func (c CaveConfig) Validate() error {
	if c.Width < 3 || c.Height < 3 {
		return fmt.Errorf("cave must be at least 3x3, got %dx%d", c.Width, c.Height)
	}
	if c.Goblins < 0 || c.Elves < 0 {
		return fmt.Errorf("unit counts must not be negative")
	}
	if c.RockRatio < 0 {
		return fmt.Errorf("rock ratio must not be negative, got %d", c.RockRatio)
	}
	if c.GoblinHP <= 0 || c.ElfHP <= 0 {
		return core.ErrInvalidHitPoints
	}
	interior := (c.Width - 2) * (c.Height - 2)
	if c.Goblins+c.Elves > interior {
		return fmt.Errorf("%w: %d units, %d interior cells", ErrNotEnoughRoom, c.Goblins+c.Elves, interior)
	}
	return nil
}

// Generator builds walled caves with deterministic RNG
type Generator struct {
	config CaveConfig
	rng    *rand.Rand
}

// NewGenerator creates a new cave generator
func NewGenerator(config CaveConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// maxLayoutAttempts bounds how often rocks are re-rolled when they split the
// cave into regions too small for every unit
const maxLayoutAttempts = 20

// GenerateCave creates a walled cave, scatters rocks, and places every unit
// on one connected region of open ground
func (g *Generator) GenerateCave() (*core.Grid, error) {
	if err := g.config.Validate(); err != nil {
		return nil, err
	}
	want := g.config.Goblins + g.config.Elves

	for attempt := 0; attempt < maxLayoutAttempts; attempt++ {
		grid := g.newWalledGrid()
		g.placeRocks(grid)

		region := g.largestRegion(grid)
		if len(region) < want {
			continue
		}
		if err := g.placeUnits(grid, region); err != nil {
			return nil, err
		}
		return grid, nil
	}
	return nil, ErrNotEnoughRoom
}

func (g *Generator) newWalledGrid() *core.Grid {
	grid := core.NewGrid(g.config.Width, g.config.Height)
	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			if x == 0 || y == 0 || x == grid.W-1 || y == grid.H-1 {
				_ = grid.SetWall(core.Position{X: x, Y: y})
			}
		}
	}
	return grid
}

func (g *Generator) placeRocks(grid *core.Grid) {
	if g.config.RockRatio == 0 {
		return
	}
	interiorW, interiorH := grid.W-2, grid.H-2
	want := (interiorW * interiorH) / g.config.RockRatio

	// Use a maximum attempt counter to avoid infinite loops
	maxAttempts := want * 10
	placed := 0
	for attempts := 0; placed < want && attempts < maxAttempts; attempts++ {
		p := core.Position{X: 1 + g.rng.Intn(interiorW), Y: 1 + g.rng.Intn(interiorH)}
		if grid.IsOpen(p) {
			_ = grid.SetWall(p)
			placed++
		}
	}
}

// largestRegion returns the cells of the biggest connected open area in
// reading order; the earliest region wins ties
func (g *Generator) largestRegion(grid *core.Grid) []core.Position {
	var best []core.Position
	seen := make([]bool, grid.W*grid.H)
	for idx := range seen {
		p := grid.Pos(idx)
		if seen[idx] || !grid.IsOpen(p) {
			continue
		}

		var region []core.Position
		grid.ReachableCells(p).Each(func(c core.Position) {
			seen[grid.Idx(c)] = true
			region = append(region, c)
		})
		if len(region) > len(best) {
			best = region
		}
	}
	sort.Slice(best, func(i, j int) bool { return best[i].ReadingLess(best[j]) })
	return best
}

func (g *Generator) placeUnits(grid *core.Grid, region []core.Position) error {
	cells := append([]core.Position(nil), region...)
	g.rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })

	next := 0
	for i := 0; i < g.config.Goblins; i++ {
		if err := grid.PlaceUnit(cells[next], core.Goblin, g.config.GoblinHP); err != nil {
			return err
		}
		next++
	}
	for i := 0; i < g.config.Elves; i++ {
		if err := grid.PlaceUnit(cells[next], core.Elf, g.config.ElfHP); err != nil {
			return err
		}
		next++
	}
	return nil
}
