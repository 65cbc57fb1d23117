package mapgen

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
)

// DefaultHitPoints is the starting HP of every unit unless configured otherwise
const DefaultHitPoints = 200

var (
	ErrEmptyGrid     = errors.New("grid has no rows")
	ErrRaggedRow     = errors.New("row width differs from the first row")
	ErrUnknownGlyph  = errors.New("unknown cell glyph")
	ErrBadAnnotation = errors.New("malformed unit annotation")
)

var annotationPattern = regexp.MustCompile(`^([GE])\((\d+)\)$`)

// ParseOptions controls the hit points given to parsed units
type ParseOptions struct {
	GoblinHP int
	ElfHP    int
}

// DefaultParseOptions gives both factions DefaultHitPoints
func DefaultParseOptions() ParseOptions {
	return ParseOptions{GoblinHP: DefaultHitPoints, ElfHP: DefaultHitPoints}
}

func (o ParseOptions) hpFor(f core.Faction) int {
	if f == core.Goblin {
		return o.GoblinHP
	}
	return o.ElfHP
}

// Parse reads a grid from its text form. Each line is one row of '#', '.',
// 'G' and 'E'. A row may be followed by whitespace and annotations such as
// "G(200), E(197)" which set the HP of that row's units from left to right.
func Parse(input string, opts ParseOptions) (*core.Grid, error) {
	return ParseReader(strings.NewReader(input), opts)
}

// ParseReader is Parse over an io.Reader
func ParseReader(r io.Reader, opts ParseOptions) (*core.Grid, error) {
	if opts.GoblinHP <= 0 || opts.ElfHP <= 0 {
		return nil, fmt.Errorf("parse grid: %w", core.ErrInvalidHitPoints)
	}

	var rows, notes []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		cells, annotations := line, ""
		if i := strings.IndexAny(line, " \t"); i >= 0 {
			cells, annotations = line[:i], line[i:]
		}
		rows = append(rows, cells)
		notes = append(notes, strings.TrimSpace(annotations))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read grid: %w", err)
	}

	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return nil, ErrEmptyGrid
	}

	width := len(rows[0])
	g := core.NewGrid(width, len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("line %d: %w: got %d, want %d", y+1, ErrRaggedRow, len(row), width)
		}
		var units []core.Position
		for x := 0; x < len(row); x++ {
			p := core.Position{X: x, Y: y}
			switch r := rune(row[x]); r {
			case core.GlyphWall:
				if err := g.SetWall(p); err != nil {
					return nil, err
				}
			case core.GlyphOpen:
			default:
				f, ok := core.FactionFromGlyph(r)
				if !ok {
					return nil, fmt.Errorf("line %d column %d: %w %q", y+1, x+1, ErrUnknownGlyph, r)
				}
				if err := g.PlaceUnit(p, f, opts.hpFor(f)); err != nil {
					return nil, err
				}
				units = append(units, p)
			}
		}
		if notes[y] != "" {
			if err := applyAnnotations(g, units, notes[y]); err != nil {
				return nil, fmt.Errorf("line %d: %w", y+1, err)
			}
		}
	}
	return g, nil
}

// applyAnnotations overwrites the HP of units, given left to right, with the
// values listed in text
func applyAnnotations(g *core.Grid, units []core.Position, text string) error {
	parts := strings.Split(text, ",")
	if len(parts) != len(units) {
		return fmt.Errorf("%w: %d annotations for %d units", ErrBadAnnotation, len(parts), len(units))
	}
	for i, part := range parts {
		m := annotationPattern.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			return fmt.Errorf("%w: %q", ErrBadAnnotation, strings.TrimSpace(part))
		}
		u, _ := g.UnitAt(units[i])
		if rune(m[1][0]) != u.Faction.Glyph() {
			return fmt.Errorf("%w: %q does not match %s at %s", ErrBadAnnotation, part, u.Faction, u.Pos)
		}
		hp, err := strconv.Atoi(m[2])
		if err != nil || hp <= 0 {
			return fmt.Errorf("%w: hit points in %q", ErrBadAnnotation, part)
		}
		if err := g.SetOpen(u.Pos); err != nil {
			return err
		}
		if err := g.PlaceUnit(u.Pos, u.Faction, hp); err != nil {
			return err
		}
	}
	return nil
}
