package main

import (
	"context"
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/app"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/config"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/mapgen"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/replay"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/ui"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/ui/playback"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	inputPath := flag.String("input", "-", "Grid file to simulate (- reads stdin)")
	scenarioPath := flag.String("scenario", "", "Scenario YAML file (overrides -input)")
	generate := flag.String("generate", "", "Simulate a random arena of this size, e.g. 20x12 (overrides -input)")
	seed := flag.Int64("seed", 0, "Seed for -generate (0 uses the clock)")
	elfBonus := flag.Int("elf-bonus", -1, "Elf attack bonus (-1 to use scenario or config default)")
	mode := flag.String("mode", "", "Run mode (empty to use scenario or config default)")
	replayPath := flag.String("replay", "", "Play back a recorded replay instead of simulating")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()
	logger := app.SetupLogging(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	// Window size, tile size and round interval follow config edits live
	config.WatchConfig(func() {
		logger.Info().Str("path", config.ConfigFilePath()).Msg("Config reloaded")
	})

	ctx := context.Background()
	var source playback.Source

	if *replayPath != "" {
		r, err := replay.LoadFile(*replayPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load replay")
		}
		rs, err := playback.NewReplaySource(r)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read replay frames")
		}
		logger.Info().Str("combat_id", r.Header.CombatID).Int("frames", rs.Len()).Msg("Replay loaded")
		source = rs
	} else {
		input, err := app.LoadInput(app.InputOptions{
			Path:     *inputPath,
			Scenario: *scenarioPath,
			Generate: *generate,
			Seed:     *seed,
			Stdin:    os.Stdin,
		}, game.DefaultParseOptions())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load input")
		}

		overrides := game.Overrides{Mode: *mode}
		if *elfBonus >= 0 {
			overrides.ElfAttackBonus = elfBonus
		}
		settings, err := game.ResolveSettings(overrides, input.Scenario)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid run settings")
		}

		es, err := playback.NewEngineSource(ctx, func(ctx context.Context) (*game.Engine, error) {
			g, err := mapgen.Parse(input.Text, input.ParseOptions)
			if err != nil {
				return nil, err
			}
			return game.NewEngine(ctx, game.GameConfig{
				Grid:           g,
				ElfAttackBonus: settings.ElfAttackBonus,
				Mode:           settings.Mode,
				MaxRounds:      settings.MaxRounds,
				Logger:         logger,
			})
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to start combat")
		}
		source = es
	}

	viewer := ui.NewViewer(source, logger)

	ebiten.SetWindowSize(ui.ScreenWidth(), ui.ScreenHeight())
	ebiten.SetWindowTitle(cfg.UI.Window.Title)

	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal().Err(err).Msg("Viewer stopped")
	}
}
