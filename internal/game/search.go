package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/events"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/mapgen"
)

// ErrNoWinningBonus is returned when no bonus up to the limit lets every
// elf survive
var ErrNoWinningBonus = errors.New("no elf attack bonus within the limit wins without losses")

// SearchConfig controls FindMinimumElfBonus
type SearchConfig struct {
	ParseOptions mapgen.ParseOptions
	MaxBonus     int
	MaxRounds    int
	Logger       zerolog.Logger
	// Subscribers are attached to the winning attempt only
	Subscribers []events.Subscriber
}

// SearchResult is the smallest winning bonus and the combat it produced
type SearchResult struct {
	Bonus    int
	Attempts int
	Outcome  Outcome
}

// FindMinimumElfBonus runs the combat in AbortOnElfDeath mode with elf
// attack bonus 0, 1, 2, ... and returns the first bonus at which the elves
// win without a single casualty. Every attempt starts from a fresh parse of
// input.
func FindMinimumElfBonus(ctx context.Context, input string, cfg SearchConfig) (SearchResult, error) {
	logger := cfg.Logger.With().Str("component", "BonusSearch").Logger()

	for bonus := 0; bonus <= cfg.MaxBonus; bonus++ {
		outcome, err := attempt(ctx, input, bonus, cfg, nil)
		if err != nil {
			return SearchResult{}, fmt.Errorf("attempt with bonus %d: %w", bonus, err)
		}

		logger.Debug().
			Int("bonus", bonus).
			Stringer("winner", outcome.Winner).
			Bool("aborted", outcome.Aborted).
			Int("elf_casualties", outcome.ElfCasualties).
			Msg("Search attempt finished")

		if outcome.Aborted || outcome.Winner != core.Elf || outcome.ElfCasualties > 0 {
			continue
		}

		if len(cfg.Subscribers) > 0 {
			// rerun the winning attempt with subscribers attached
			if outcome, err = attempt(ctx, input, bonus, cfg, cfg.Subscribers); err != nil {
				return SearchResult{}, fmt.Errorf("replaying bonus %d: %w", bonus, err)
			}
		}

		logger.Info().
			Int("bonus", bonus).
			Int("attempts", bonus+1).
			Int("score", outcome.Score).
			Msg("Minimum elf attack bonus found")
		return SearchResult{Bonus: bonus, Attempts: bonus + 1, Outcome: outcome}, nil
	}

	return SearchResult{Attempts: cfg.MaxBonus + 1}, fmt.Errorf("%w (max %d)", ErrNoWinningBonus, cfg.MaxBonus)
}

func attempt(ctx context.Context, input string, bonus int, cfg SearchConfig, subs []events.Subscriber) (Outcome, error) {
	grid, err := mapgen.Parse(input, cfg.ParseOptions)
	if err != nil {
		return Outcome{}, err
	}

	engine, err := NewEngine(ctx, GameConfig{
		Grid:           grid,
		ElfAttackBonus: bonus,
		Mode:           AbortOnElfDeath,
		MaxRounds:      cfg.MaxRounds,
		Logger:         cfg.Logger,
		Subscribers:    subs,
	})
	if err != nil {
		return Outcome{}, err
	}
	return engine.Run(ctx)
}
