package ui

import (
	"context"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/config"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/ui/input"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/ui/playback"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/ui/renderer"
)

// UI configuration functions
func ScreenWidth() int {
	return config.Get().UI.Window.Width
}

func ScreenHeight() int {
	return config.Get().UI.Window.Height
}

func TileSize() int {
	return config.Get().UI.TileSize
}

func RoundInterval() int {
	return config.Get().UI.RoundInterval
}

const (
	minSpeed = 1
	maxSpeed = 16
)

// Viewer plays a combat back one round at a time
type Viewer struct {
	source        playback.Source
	boardRenderer *renderer.EnhancedBoardRenderer
	inputHandler  *input.Handler
	defaultFont   font.Face
	logger        zerolog.Logger

	snapshot playback.Snapshot
	paused   bool
	speed    int // rounds advance every RoundInterval()/speed ticks
	timer    int
	lastErr  error
}

// NewViewer creates a new Ebitengine game instance.
func NewViewer(source playback.Source, logger zerolog.Logger) *Viewer {
	v := &Viewer{
		source:      source,
		defaultFont: basicfont.Face7x13,
		logger:      logger.With().Str("component", "Viewer").Logger(),
		speed:       1,
	}
	c := config.Get().Combat.InitialHP
	v.boardRenderer = renderer.NewEnhancedBoardRenderer(TileSize(), v.defaultFont, max(c.Goblin, c.Elf))
	v.inputHandler = input.NewHandler(TileSize())
	v.snapshot = source.Current()
	return v
}

// Update proceeds the playback.
func (v *Viewer) Update() error {
	v.inputHandler.Update()
	v.boardRenderer.SetHover(v.inputHandler.GetHoveredTile())
	v.boardRenderer.SetSelection(v.inputHandler.GetSelectedTile())

	ctx := context.Background()
	for _, cmd := range v.inputHandler.Commands() {
		switch cmd {
		case input.CommandTogglePause:
			v.setPaused(!v.paused)
		case input.CommandStep:
			v.setPaused(true)
			v.advance(ctx)
		case input.CommandRestart:
			v.lastErr = nil
			if err := v.source.Rewind(ctx); err != nil {
				v.fail(err)
				break
			}
			v.setPaused(v.paused)
		case input.CommandFaster:
			v.speed = min(v.speed*2, maxSpeed)
		case input.CommandSlower:
			v.speed = max(v.speed/2, minSpeed)
		}
	}

	if v.paused || v.snapshot.Over || v.lastErr != nil {
		return nil
	}

	v.timer++
	if v.timer < max(RoundInterval()/v.speed, 1) {
		return nil
	}
	v.timer = 0
	v.advance(ctx)
	return nil
}

// setPaused records the pause in the source's lifecycle when it keeps one
func (v *Viewer) setPaused(paused bool) {
	v.paused = paused
	if p, ok := v.source.(playback.Pauser); ok {
		if err := p.SetPaused(paused); err != nil {
			v.fail(err)
		}
	}
	v.snapshot = v.source.Current()
}

func (v *Viewer) advance(ctx context.Context) {
	if err := v.source.Advance(ctx); err != nil {
		v.fail(err)
	}
	v.snapshot = v.source.Current()
	if v.snapshot.Over {
		v.logger.Info().Int("round", v.snapshot.Round).Str("status", v.snapshot.Status).Msg("Playback finished")
	}
}

func (v *Viewer) fail(err error) {
	v.lastErr = err
	v.logger.Error().Err(err).Msg("Playback stopped")
}

// Draw renders the game screen.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 50, G: 50, B: 50, A: 255}) // Dark gray background

	v.boardRenderer.Draw(screen, v.snapshot.Grid)

	y := 15
	if g := v.snapshot.Grid; g != nil {
		y += g.H * TileSize()
	}

	status := fmt.Sprintf("Rounds: %d  %s", v.snapshot.Round, v.snapshot.Status)
	text.Draw(screen, status, v.defaultFont, 5, y, color.White)

	mode := fmt.Sprintf("Speed: x%d", v.speed)
	if v.paused {
		mode += " (paused)"
	}
	text.Draw(screen, mode, v.defaultFont, 5, y+15, color.Gray{200})

	if p, ok := v.inputHandler.GetSelectedTile(); ok && v.snapshot.Grid != nil {
		if u, ok := v.snapshot.Grid.UnitAt(p); ok {
			unitStr := fmt.Sprintf("%s at %s: %d hp", u.Faction, u.Pos, u.HP)
			text.Draw(screen, unitStr, v.defaultFont, 5, y+30, renderer.FactionColors[u.Faction])
		}
	}

	if v.lastErr != nil {
		text.Draw(screen, "Error: "+v.lastErr.Error(), v.defaultFont, 5, y+45, color.RGBA{255, 100, 100, 255})
	}

	helpY := ScreenHeight() - 20
	text.Draw(screen, "Space: pause  N: step  R: restart  +/-: speed  Click: inspect", v.defaultFont, 5, helpY, color.Gray{200})
}

// Layout defines the Ebitengine screen size.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return ScreenWidth(), ScreenHeight()
}
