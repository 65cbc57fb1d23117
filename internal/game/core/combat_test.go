package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid_MoveUnit(t *testing.T) {
	g := gridFromRows(t, 200,
		"#######",
		"#.E...#",
		"#.....#",
		"#...G.#",
		"#######",
	)
	elf, ok := g.UnitAt(Position{2, 1})
	require.True(t, ok)

	newPos, err := g.MoveUnit(elf, Position{4, 2})
	require.NoError(t, err)
	assert.Equal(t, Position{3, 1}, newPos, "first step goes right before down")

	assert.True(t, g.IsOpen(Position{2, 1}), "origin becomes open ground")
	moved, ok := g.UnitAt(newPos)
	require.True(t, ok)
	assert.Equal(t, Elf, moved.Faction)
	assert.Equal(t, 200, moved.HP, "hit points travel with the unit")
	assert.Len(t, g.UnitsInReadingOrder(), 2)
}

func TestGrid_MoveUnit_SingleStepOnly(t *testing.T) {
	g := gridFromRows(t, 200,
		"########",
		"#G.....#",
		"########",
	)
	goblin, _ := g.UnitAt(Position{1, 1})

	newPos, err := g.MoveUnit(goblin, Position{6, 1})
	require.NoError(t, err)
	assert.Equal(t, Position{2, 1}, newPos)
}

func TestGrid_MoveUnit_Errors(t *testing.T) {
	tests := []struct {
		name     string
		unit     Unit
		dest     Position
		expected error
	}{
		{
			name:     "unit not at stated position",
			unit:     Unit{Faction: Goblin, HP: 200, Pos: Position{2, 1}},
			dest:     Position{3, 1},
			expected: ErrUnitNotFound,
		},
		{
			name:     "destination is a wall",
			unit:     Unit{Faction: Goblin, HP: 200, Pos: Position{1, 1}},
			dest:     Position{0, 0},
			expected: ErrCellNotOpen,
		},
		{
			name:     "destination is occupied",
			unit:     Unit{Faction: Goblin, HP: 200, Pos: Position{1, 1}},
			dest:     Position{4, 1},
			expected: ErrCellNotOpen,
		},
		{
			name:     "destination unreachable",
			unit:     Unit{Faction: Goblin, HP: 200, Pos: Position{1, 1}},
			dest:     Position{5, 1},
			expected: ErrUnreachable,
		},
		{
			name:     "unit out of bounds",
			unit:     Unit{Faction: Goblin, HP: 200, Pos: Position{-1, 1}},
			dest:     Position{2, 1},
			expected: ErrOutOfBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gridFromRows(t, 200,
				"#######",
				"#G..E.#",
				"#######",
			)
			before := g.Clone()

			pos, err := g.MoveUnit(tt.unit, tt.dest)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expected)
			assert.True(t, IsInvariantViolation(err))
			assert.Equal(t, tt.unit.Pos, pos)
			assert.Equal(t, before, g, "failed move must not mutate the grid")
		})
	}
}

func TestGrid_AttackUnit(t *testing.T) {
	tests := []struct {
		name       string
		targetHP   int
		bonus      int
		expectHP   int
		expectKill bool
	}{
		{"base damage", 200, 0, 197, false},
		{"with bonus", 200, 12, 185, false},
		{"exactly lethal", 3, 0, 0, true},
		{"overkill", 2, 0, 0, true},
		{"bonus makes it lethal", 10, 7, 0, true},
		{"one hit point left", 4, 0, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(3, 1)
			require.NoError(t, g.PlaceUnit(Position{0, 0}, Elf, 200))
			require.NoError(t, g.PlaceUnit(Position{1, 0}, Goblin, tt.targetHP))
			elf, _ := g.UnitAt(Position{0, 0})

			result, err := g.AttackUnit(elf, Position{1, 0}, tt.bonus)
			require.NoError(t, err)

			assert.Equal(t, BaseDamage+tt.bonus, result.Damage)
			assert.Equal(t, tt.expectKill, result.Killed)
			assert.Equal(t, tt.expectHP, result.Target.HP)
			assert.Equal(t, Goblin, result.Target.Faction)

			target, alive := g.UnitAt(Position{1, 0})
			assert.Equal(t, !tt.expectKill, alive)
			if tt.expectKill {
				assert.True(t, g.IsOpen(Position{1, 0}), "dead unit leaves open ground")
				assert.Equal(t, 0, g.CountFaction(Goblin))
			} else {
				assert.Equal(t, tt.expectHP, target.HP)
			}

			attacker, _ := g.UnitAt(Position{0, 0})
			assert.Equal(t, 200, attacker.HP, "attacker is untouched")
		})
	}
}

func TestGrid_AttackUnit_Errors(t *testing.T) {
	g := gridFromRows(t, 200,
		"#######",
		"#GE.EG#",
		"#######",
	)
	goblin, _ := g.UnitAt(Position{1, 1})

	tests := []struct {
		name     string
		attacker Unit
		target   Position
		expected error
	}{
		{"target is open ground", goblin, Position{3, 1}, ErrNoTargetUnit},
		{"target is a wall", goblin, Position{1, 0}, ErrNoTargetUnit},
		{"target not adjacent", goblin, Position{4, 1}, ErrNotAdjacent},
		{"target out of bounds", goblin, Position{1, 9}, ErrOutOfBounds},
		{"attacker missing", Unit{Faction: Goblin, Pos: Position{3, 1}}, Position{2, 1}, ErrUnitNotFound},
		{"legal hit", Unit{Faction: Elf, HP: 200, Pos: Position{4, 1}}, Position{5, 1}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.AttackUnit(tt.attacker, tt.target, 0)
			if tt.expected == nil {
				// elf at (4,1) hitting goblin at (5,1) is legal
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expected)
			assert.True(t, IsInvariantViolation(err))
		})
	}
}

func TestGrid_AttackUnit_FriendlyFire(t *testing.T) {
	g := gridFromRows(t, 200,
		"####",
		"#EE#",
		"####",
	)
	elf, _ := g.UnitAt(Position{1, 1})

	_, err := g.AttackUnit(elf, Position{2, 1}, 0)
	assert.ErrorIs(t, err, ErrFriendlyFire)

	other, _ := g.UnitAt(Position{2, 1})
	assert.Equal(t, 200, other.HP)
}
