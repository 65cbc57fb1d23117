package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/app"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/config"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/events"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/mapgen"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/replay"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	inputPath := flag.String("input", "-", "Grid file to simulate (- reads stdin)")
	scenarioPath := flag.String("scenario", "", "Scenario YAML file (overrides -input)")
	generate := flag.String("generate", "", "Simulate a random arena of this size, e.g. 20x12 (overrides -input)")
	seed := flag.Int64("seed", 0, "Seed for -generate (0 uses the clock)")
	elfBonus := flag.Int("elf-bonus", -1, "Elf attack bonus (-1 to use scenario or config default)")
	mode := flag.String("mode", "", "Run mode: to_completion or abort_on_elf_death (empty to use scenario or config default)")
	search := flag.Bool("search", false, "Find the smallest elf attack bonus that wins without elf losses")
	maxBonus := flag.Int("max-bonus", -1, "Largest bonus tried by -search (-1 to use config default)")
	printRounds := flag.Bool("print", false, "Print the board after every round")
	colorBoards := flag.Bool("color", false, "Color the boards printed by -print")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	replayOut := flag.String("replay-out", "", "Write a replay to this file (empty to use config default)")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	// Use config defaults if not overridden by flags
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	if *maxBonus == -1 {
		*maxBonus = game.MaxSearchBonus()
	}
	if *replayOut == "" && cfg.Replay.Enabled {
		*replayOut = cfg.Replay.Path
	}

	logger := app.SetupLogging(*logLevel, cfg.Logging.Format, os.Stderr)

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

	subs := []events.Subscriber{}
	if *printRounds {
		printer := subscribers.NewRoundPrinter("round_printer", os.Stdout)
		printer.SetColor(*colorBoards)
		subs = append(subs, printer)
	}
	if cfg.Logging.Events {
		subs = append(subs, subscribers.NewLoggerSubscriber("event_logger", logger, zerolog.DebugLevel))
	}
	var recorder *replay.Recorder
	if *replayOut != "" {
		recorder = replay.NewRecorder("replay")
		subs = append(subs, recorder)
	}

	// Stop cleanly on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().
		Str("input", input.Name).
		Int("elf_attack_bonus", settings.ElfAttackBonus).
		Stringer("mode", settings.Mode).
		Bool("search", *search).
		Msg("Starting combat")

	if *search {
		err = runSearch(ctx, input, *maxBonus, settings.MaxRounds, logger, subs)
	} else {
		err = runCombat(ctx, input, settings, logger, subs)
	}
	if recorder != nil {
		saveReplay(*replayOut, recorder, logger)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Combat failed")
	}
}

func runCombat(ctx context.Context, input *app.Input, settings game.RunSettings, logger zerolog.Logger, subs []events.Subscriber) error {
	g, err := mapgen.Parse(input.Text, input.ParseOptions)
	if err != nil {
		return fmt.Errorf("parse %s: %w", input.Name, err)
	}

	engine, err := game.NewEngine(ctx, game.GameConfig{
		Grid:           g,
		ElfAttackBonus: settings.ElfAttackBonus,
		Mode:           settings.Mode,
		MaxRounds:      settings.MaxRounds,
		Logger:         logger,
		Subscribers:    subs,
	})
	if err != nil {
		return err
	}

	outcome, err := engine.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Combat ends after %d full rounds\n", outcome.CompletedRounds)
	fmt.Printf("Winner: %s, %d total hit points left\n", outcome.Winner, outcome.TotalHP)
	fmt.Printf("Outcome: %d * %d = %d\n", outcome.CompletedRounds, outcome.TotalHP, outcome.Score)
	if outcome.Aborted {
		fmt.Println("Aborted: an elf died")
	}
	for _, st := range engine.Stats() {
		fmt.Printf("  %-6s %d alive, %d hp, %d lost\n", st.Faction, st.Units, st.TotalHP, st.Casualties)
	}
	if settings.Mode == game.ToCompletion {
		reportExpectation(input, outcome.Winner.String(), outcome.CompletedRounds, outcome.TotalHP, outcome.Score)
	}
	return nil
}

func runSearch(ctx context.Context, input *app.Input, maxBonus, maxRounds int, logger zerolog.Logger, subs []events.Subscriber) error {
	res, err := game.FindMinimumElfBonus(ctx, input.Text, game.SearchConfig{
		ParseOptions: input.ParseOptions,
		MaxBonus:     maxBonus,
		MaxRounds:    maxRounds,
		Logger:       logger,
		Subscribers:  subs,
	})
	if errors.Is(err, game.ErrNoWinningBonus) {
		fmt.Printf("No elf attack bonus up to %d keeps every elf alive\n", maxBonus)
		return nil
	}
	if err != nil {
		return err
	}

	o := res.Outcome
	fmt.Printf("Minimum elf attack bonus: %d (%d attempts)\n", res.Bonus, res.Attempts)
	fmt.Printf("Combat ends after %d full rounds\n", o.CompletedRounds)
	fmt.Printf("Elves win with %d total hit points left\n", o.TotalHP)
	fmt.Printf("Outcome: %d * %d = %d\n", o.CompletedRounds, o.TotalHP, o.Score)

	if s := input.Scenario; s != nil && s.Expect != nil && s.Expect.MinElfBonus != nil {
		if *s.Expect.MinElfBonus == res.Bonus && s.Expect.BonusScore == o.Score {
			fmt.Println("Matches the scenario's expected result")
		} else {
			fmt.Printf("Differs from the scenario's expected bonus %d (score %d)\n", *s.Expect.MinElfBonus, s.Expect.BonusScore)
		}
	}
	return nil
}

func reportExpectation(input *app.Input, winner string, rounds, totalHP, score int) {
	s := input.Scenario
	if s == nil || s.Expect == nil {
		return
	}
	e := s.Expect
	if e.Winner == winner && e.Rounds == rounds && e.TotalHP == totalHP && e.Score == score {
		fmt.Println("Matches the scenario's expected result")
		return
	}
	fmt.Printf("Differs from the scenario's expected result: %s win, %d * %d = %d\n",
		e.Winner, e.Rounds, e.TotalHP, e.Score)
}

func saveReplay(path string, recorder *replay.Recorder, logger zerolog.Logger) {
	r := recorder.Replay()
	if err := replay.SaveFile(path, r); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to write replay")
		return
	}
	logger.Info().Str("path", path).Int("frames", len(r.Frames)).Msg("Replay written")
}
