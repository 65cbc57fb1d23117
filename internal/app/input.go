package app

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/mapgen"
)

// ErrBadArenaSize is returned for a -generate value that is not WxH
var ErrBadArenaSize = errors.New("arena size must look like 20x12")

// InputOptions selects where the starting grid comes from. Scenario wins
// over Generate, which wins over Path.
type InputOptions struct {
	Path     string // grid text file, "-" for Stdin
	Scenario string // scenario YAML file
	Generate string // random arena size, "WxH"
	Seed     int64  // seed for Generate; 0 uses the clock
	Stdin    io.Reader
}

// Input is a starting grid in text form, ready to be parsed for each run
type Input struct {
	Name         string
	Text         string
	ParseOptions mapgen.ParseOptions
	Scenario     *mapgen.Scenario // set when loaded from a scenario file
	Seed         int64            // set for generated arenas
}

// LoadInput reads the starting grid described by opts. base supplies the
// configured initial hit points.
func LoadInput(opts InputOptions, base mapgen.ParseOptions) (*Input, error) {
	switch {
	case opts.Scenario != "":
		s, err := mapgen.LoadScenario(opts.Scenario)
		if err != nil {
			return nil, err
		}
		name := s.Name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(opts.Scenario), filepath.Ext(opts.Scenario))
		}
		return &Input{Name: name, Text: s.Map, ParseOptions: s.ParseOptions(base), Scenario: s}, nil

	case opts.Generate != "":
		return generateInput(opts, base)

	default:
		var (
			data []byte
			err  error
			name = opts.Path
		)
		if opts.Path == "" || opts.Path == "-" {
			if opts.Stdin == nil {
				return nil, errors.New("no input given")
			}
			name = "stdin"
			data, err = io.ReadAll(opts.Stdin)
		} else {
			data, err = os.ReadFile(opts.Path)
		}
		if err != nil {
			return nil, fmt.Errorf("read input %s: %w", name, err)
		}
		return &Input{Name: name, Text: string(data), ParseOptions: base}, nil
	}
}

func generateInput(opts InputOptions, base mapgen.ParseOptions) (*Input, error) {
	var w, h int
	if n, err := fmt.Sscanf(strings.ToLower(opts.Generate), "%dx%d", &w, &h); err != nil || n != 2 {
		return nil, fmt.Errorf("%w: got %q", ErrBadArenaSize, opts.Generate)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := mapgen.DefaultCaveConfig(w, h)
	cfg.GoblinHP = base.GoblinHP
	cfg.ElfHP = base.ElfHP
	g, err := mapgen.NewGenerator(cfg, rand.New(rand.NewSource(seed))).GenerateCave()
	if err != nil {
		return nil, fmt.Errorf("generate arena: %w", err)
	}
	return &Input{
		Name:         fmt.Sprintf("arena-%dx%d-%d", w, h, seed),
		Text:         mapgen.Render(g),
		ParseOptions: base,
		Seed:         seed,
	}, nil
}
