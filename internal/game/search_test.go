package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/events"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/mapgen"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/testutil"
)

func searchConfig(maxBonus int) SearchConfig {
	return SearchConfig{
		ParseOptions: mapgen.DefaultParseOptions(),
		MaxBonus:     maxBonus,
		MaxRounds:    10000,
		Logger:       testutil.NopLogger(),
	}
}

func TestFindMinimumElfBonus_Scenarios(t *testing.T) {
	for _, name := range testutil.ScenarioNames(t) {
		t.Run(name, func(t *testing.T) {
			s := testutil.LoadScenario(t, name)
			require.NotNil(t, s.Expect)
			require.NotNil(t, s.Expect.MinElfBonus, "scenario has no bonus expectation")

			result, err := FindMinimumElfBonus(context.Background(), s.Map, searchConfig(200))
			require.NoError(t, err)

			assert.Equal(t, *s.Expect.MinElfBonus, result.Bonus)
			assert.Equal(t, result.Bonus+1, result.Attempts)
			assert.Equal(t, core.Elf, result.Outcome.Winner)
			assert.False(t, result.Outcome.Aborted)
			assert.False(t, result.Outcome.ElfDied)
			assert.Equal(t, s.Expect.BonusRounds, result.Outcome.CompletedRounds)
			assert.Equal(t, s.Expect.BonusHP, result.Outcome.TotalHP)
			assert.Equal(t, s.Expect.BonusScore, result.Outcome.Score)
		})
	}
}

func TestFindMinimumElfBonus_LimitReached(t *testing.T) {
	s := testutil.LoadScenario(t, "sample_a")

	result, err := FindMinimumElfBonus(context.Background(), s.Map, searchConfig(3))
	assert.ErrorIs(t, err, ErrNoWinningBonus)
	assert.Equal(t, 4, result.Attempts)
}

func TestFindMinimumElfBonus_BadInput(t *testing.T) {
	_, err := FindMinimumElfBonus(context.Background(), "#G#\n#E", searchConfig(3))
	assert.ErrorIs(t, err, mapgen.ErrRaggedRow)
}

func TestFindMinimumElfBonus_SubscribersSeeWinningRunOnly(t *testing.T) {
	s := testutil.LoadScenario(t, "sample_b")
	rec := testutil.NewEventRecorder()

	cfg := searchConfig(10)
	cfg.Subscribers = []events.Subscriber{rec}

	result, err := FindMinimumElfBonus(context.Background(), s.Map, cfg)
	require.NoError(t, err)

	started := rec.OfType(events.TypeCombatStarted)
	require.Len(t, started, 1)
	assert.Equal(t, result.Bonus, started[0].(*events.CombatStartedEvent).ElfAttackBonus)

	ended := rec.OfType(events.TypeCombatEnded)
	require.Len(t, ended, 1)
	assert.Equal(t, result.Outcome.Score, ended[0].(*events.CombatEndedEvent).Score)
}

func TestFindMinimumElfBonus_Cancelled(t *testing.T) {
	s := testutil.LoadScenario(t, "sample_a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FindMinimumElfBonus(ctx, s.Map, searchConfig(200))
	assert.ErrorIs(t, err, context.Canceled)
}
