package subscribers_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/events"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/events/subscribers"
)

func TestLoggerSubscriber(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Timestamp().Logger()

	logSub := subscribers.NewLoggerSubscriber("test-logger", logger, zerolog.InfoLevel)

	assert.Equal(t, "test-logger", logSub.ID())
	assert.True(t, logSub.InterestedIn(events.TypeCombatStarted))
	assert.True(t, logSub.InterestedIn(events.TypeRoundStarted))
	assert.True(t, logSub.InterestedIn("any.event.type"))
}

func TestLoggerSubscriberEventLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logSub := subscribers.NewLoggerSubscriber("event-logger", logger, zerolog.InfoLevel)

	elf := core.Unit{Faction: core.Elf, HP: 200, Pos: core.Position{X: 2, Y: 1}}
	goblin := core.Unit{Faction: core.Goblin, HP: 0, Pos: core.Position{X: 3, Y: 1}}

	testCases := []struct {
		name  string
		event events.Event
		check func(t *testing.T, logLine map[string]interface{})
	}{
		{
			name:  "CombatEndedEvent",
			event: events.NewCombatEndedEvent("combat-1", "goblin", 47, 590, true, false, 5*time.Minute),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "goblin", logLine["winner"])
				assert.Equal(t, float64(47), logLine["completed_rounds"])
				assert.Equal(t, float64(590), logLine["total_hp"])
				assert.Equal(t, float64(27730), logLine["score"])
				assert.Equal(t, true, logLine["elf_died"])
				assert.Equal(t, float64(300000), logLine["duration"]) // 5 minutes in ms
			},
		},
		{
			name:  "RoundStartedEvent",
			event: events.NewRoundStartedEvent("combat-1", 5, 7),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(5), logLine["round"])
				assert.Equal(t, float64(7), logLine["units"])
			},
		},
		{
			name:  "UnitMovedEvent",
			event: events.NewUnitMovedEvent("combat-1", 2, elf, core.Position{X: 2, Y: 2}, core.Position{X: 2, Y: 4}),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "elf", logLine["faction"])
				assert.Equal(t, float64(2), logLine["round"])
				assert.Equal(t, float64(1), logLine["from_y"])
				assert.Equal(t, float64(2), logLine["to_y"])
				assert.Equal(t, "south", logLine["direction"])
			},
		},
		{
			name: "UnitAttackedEvent",
			event: events.NewUnitAttackedEvent("combat-1", 9, core.AttackResult{
				Attacker: elf, Target: goblin, Damage: 3, Killed: true,
			}),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "elf", logLine["attacker"])
				assert.Equal(t, "(3,1)", logLine["target_pos"])
				assert.Equal(t, float64(3), logLine["damage"])
				assert.Equal(t, true, logLine["killed"])
			},
		},
		{
			name:  "UnitKilledEvent",
			event: events.NewUnitKilledEvent("combat-1", 9, goblin, elf, 2),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "goblin", logLine["victim"])
				assert.Equal(t, "(2,1)", logLine["killed_by"])
				assert.Equal(t, float64(2), logLine["remaining"])
			},
		},
		{
			name:  "StateTransitionEvent",
			event: events.NewStateTransitionEvent("combat-1", "running", "ended", "goblins eliminated"),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "running", logLine["from"])
				assert.Equal(t, "ended", logLine["to"])
				assert.Equal(t, "goblins eliminated", logLine["reason"])
				assert.NotContains(t, logLine, "round")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf.Reset()
			logSub.HandleEvent(tc.event)

			logOutput := buf.String()
			require.NotEmpty(t, logOutput, "Log output should not be empty")

			var logLine map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(logOutput), &logLine))

			assert.Equal(t, "info", logLine["level"])
			assert.Equal(t, "Combat event", logLine["message"])
			assert.Equal(t, tc.event.Type(), logLine["event_type"])
			assert.Equal(t, "combat-1", logLine["combat_id"])

			tc.check(t, logLine)
		})
	}
}

func TestLoggerSubscriberWithFilter(t *testing.T) {
	var buf bytes.Buffer
	logSub := subscribers.NewLoggerSubscriber("filtered-logger", zerolog.New(&buf), zerolog.InfoLevel)
	logSub.SetEventFilter([]string{events.TypeCombatStarted, events.TypeCombatEnded})

	assert.True(t, logSub.InterestedIn(events.TypeCombatStarted))
	assert.True(t, logSub.InterestedIn(events.TypeCombatEnded))
	assert.False(t, logSub.InterestedIn(events.TypeRoundStarted))
	assert.False(t, logSub.InterestedIn(events.TypeUnitMoved))

	logSub.SetEventFilter(nil)
	assert.True(t, logSub.InterestedIn(events.TypeUnitMoved))
}

func TestLoggerSubscriberLevels(t *testing.T) {
	tests := []struct {
		level    zerolog.Level
		expected string
	}{
		{zerolog.DebugLevel, "debug"},
		{zerolog.InfoLevel, "info"},
		{zerolog.WarnLevel, "warn"},
		{zerolog.NoLevel, "info"},
		{zerolog.TraceLevel, "info"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			var buf bytes.Buffer
			logSub := subscribers.NewLoggerSubscriber("lvl", zerolog.New(&buf), tt.level)
			logSub.HandleEvent(events.NewRoundStartedEvent("c", 1, 2))

			var logLine map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))
			assert.Equal(t, tt.expected, logLine["level"])
		})
	}
}

func TestLoggerSubscriberDevMode(t *testing.T) {
	var buf bytes.Buffer
	logSub := subscribers.NewLoggerSubscriber("dev", zerolog.New(&buf), zerolog.InfoLevel)
	logSub.SetDevMode(true)

	logSub.HandleEvent(events.NewStateTransitionEvent("c", "a", "b", "why"))

	var logLine map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))
	data, ok := logLine["event_data"].(map[string]interface{})
	require.True(t, ok, "event_data should be embedded JSON")
	assert.Equal(t, "b", data["ToPhase"])
}

func TestRoundPrinter_OnBus(t *testing.T) {
	var out strings.Builder
	rp := subscribers.NewRoundPrinter("printer", &out)

	assert.True(t, rp.InterestedIn(events.TypeRoundEnded))
	assert.True(t, rp.InterestedIn(events.TypeCombatEnded))
	assert.False(t, rp.InterestedIn(events.TypeUnitMoved))

	bus := events.NewEventBusWithLogger(zerolog.Nop())
	bus.Subscribe(rp)
	bus.Publish(events.NewRoundEndedEvent("c", 1, true, "#####\n#G.E#   G(200), E(197)\n#####", nil, 397))
	bus.Publish(events.NewCombatEndedEvent("c", "elf", 37, 982, false, false, time.Second))

	text := out.String()
	assert.Contains(t, text, "After round 1 (complete):\n#####\n#G.E#   G(200), E(197)\n#####\n")
	assert.Contains(t, text, "Combat ends after 37 full rounds\n")
	assert.Contains(t, text, "Elves win with 982 total hit points left\n")
	assert.Contains(t, text, "Outcome: 37 * 982 = 36334\n")
}
