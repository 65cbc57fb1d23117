package core

// CellKind is the terrain state of a single cell.
type CellKind uint8

const (
	CellWall CellKind = iota
	CellOpen
	CellUnit
)

// Cell is one square of the cave.
// Faction and HP are only meaningful when Kind == CellUnit.
type Cell struct {
	Kind    CellKind
	Faction Faction
	HP      int
}

func (c Cell) IsWall() bool { return c.Kind == CellWall }
func (c Cell) IsOpen() bool { return c.Kind == CellOpen }
func (c Cell) IsUnit() bool { return c.Kind == CellUnit }

// Unit is a value view of an occupied cell
type Unit struct {
	Faction Faction
	HP      int
	Pos     Position
}

// Grid holds the cave: fixed dimensions, row-major cells.
// A unit's position is always the index of the cell that holds it, so
// at most one unit can occupy a cell.
type Grid struct {
	W, H  int
	cells []Cell
}

// NewGrid creates a w*h grid of open ground
func NewGrid(w, h int) *Grid {
	g := &Grid{W: w, H: h, cells: make([]Cell, w*h)}
	for i := range g.cells {
		g.cells[i].Kind = CellOpen
	}
	return g
}

func (g *Grid) Idx(p Position) int      { return p.ToIndex(g.W) }
func (g *Grid) Pos(idx int) Position    { return FromIndex(idx, g.W) }
func (g *Grid) InBounds(p Position) bool { return p.IsValid(g.W, g.H) }

// Cell returns the cell at p. Out-of-bounds positions read as walls.
func (g *Grid) Cell(p Position) Cell {
	if !g.InBounds(p) {
		return Cell{Kind: CellWall}
	}
	return g.cells[g.Idx(p)]
}

// IsOpen reports whether p is in bounds, not a wall and not occupied
func (g *Grid) IsOpen(p Position) bool {
	return g.InBounds(p) && g.cells[g.Idx(p)].Kind == CellOpen
}

// SetWall turns p into rock. Any unit standing there is removed.
func (g *Grid) SetWall(p Position) error {
	if !g.InBounds(p) {
		return WrapPositionError(p, "set wall", ErrOutOfBounds)
	}
	g.cells[g.Idx(p)] = Cell{Kind: CellWall}
	return nil
}

// SetOpen turns p into open ground
func (g *Grid) SetOpen(p Position) error {
	if !g.InBounds(p) {
		return WrapPositionError(p, "set open", ErrOutOfBounds)
	}
	g.cells[g.Idx(p)] = Cell{Kind: CellOpen}
	return nil
}

// PlaceUnit puts a new unit on open ground
func (g *Grid) PlaceUnit(p Position, f Faction, hp int) error {
	if !g.InBounds(p) {
		return WrapPositionError(p, "place unit", ErrOutOfBounds)
	}
	idx := g.Idx(p)
	if g.cells[idx].Kind != CellOpen {
		return WrapPositionError(p, "place unit", ErrCellNotOpen)
	}
	if hp <= 0 {
		return WrapPositionError(p, "place unit", ErrInvalidHitPoints)
	}
	g.cells[idx] = Cell{Kind: CellUnit, Faction: f, HP: hp}
	return nil
}

// UnitsInReadingOrder returns a snapshot of all living units sorted by
// row, then column. Scanning the row-major slice yields that order directly.
func (g *Grid) UnitsInReadingOrder() []Unit {
	units := make([]Unit, 0, 16)
	for i, c := range g.cells {
		if c.Kind == CellUnit {
			units = append(units, Unit{Faction: c.Faction, HP: c.HP, Pos: g.Pos(i)})
		}
	}
	return units
}

// UnitAt returns the unit standing at p, if any
func (g *Grid) UnitAt(p Position) (Unit, bool) {
	if !g.InBounds(p) {
		return Unit{}, false
	}
	c := g.cells[g.Idx(p)]
	if c.Kind != CellUnit {
		return Unit{}, false
	}
	return Unit{Faction: c.Faction, HP: c.HP, Pos: p}, true
}

// Enemies returns the living units of the faction opposing f, in reading order
func (g *Grid) Enemies(f Faction) []Unit {
	enemy := f.Enemy()
	var out []Unit
	for i, c := range g.cells {
		if c.Kind == CellUnit && c.Faction == enemy {
			out = append(out, Unit{Faction: c.Faction, HP: c.HP, Pos: g.Pos(i)})
		}
	}
	return out
}

// AdjacentOpenCells returns the up-to-four open neighbors of p in reading order
func (g *Grid) AdjacentOpenCells(p Position) []Position {
	out := make([]Position, 0, 4)
	for _, n := range p.Neighbors() {
		if g.IsOpen(n) {
			out = append(out, n)
		}
	}
	return out
}

// ManhattanDistance is |dx| + |dy|, independent of terrain
func (g *Grid) ManhattanDistance(a, b Position) int {
	return a.DistanceTo(b)
}

// TotalHitPoints sums the hit points of every living unit
func (g *Grid) TotalHitPoints() int {
	total := 0
	for _, c := range g.cells {
		if c.Kind == CellUnit {
			total += c.HP
		}
	}
	return total
}

// CountFaction returns how many living units belong to f
func (g *Grid) CountFaction(f Faction) int {
	n := 0
	for _, c := range g.cells {
		if c.Kind == CellUnit && c.Faction == f {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{W: g.W, H: g.H, cells: cells}
}
