package replay

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/events"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/mapgen"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/testutil"
)

func recordScenario(t *testing.T, name string, bonus int, mode game.RunMode) *Replay {
	t.Helper()
	s := testutil.LoadScenario(t, name)
	g, err := s.Grid(mapgen.DefaultParseOptions())
	require.NoError(t, err)

	rec := NewRecorder("replay")
	engine, err := game.NewEngine(context.Background(), game.GameConfig{
		Grid:           g,
		ElfAttackBonus: bonus,
		Mode:           mode,
		Logger:         testutil.NopLogger(),
		Subscribers:    []events.Subscriber{rec},
	})
	require.NoError(t, err)
	_, err = engine.Run(context.Background())
	require.NoError(t, err)
	return rec.Replay()
}

func TestRecorder_InterestedIn(t *testing.T) {
	rec := NewRecorder("replay")
	assert.Equal(t, "replay", rec.ID())
	assert.True(t, rec.InterestedIn(events.TypeCombatStarted))
	assert.True(t, rec.InterestedIn(events.TypeRoundEnded))
	assert.True(t, rec.InterestedIn(events.TypeCombatEnded))
	assert.False(t, rec.InterestedIn(events.TypeUnitMoved))
	assert.False(t, rec.InterestedIn(events.TypeStateTransition))
}

func TestRecorder_RecordsCombat(t *testing.T) {
	r := recordScenario(t, "sample_a", 0, game.ToCompletion)

	assert.Equal(t, 7, r.Header.Width)
	assert.Equal(t, 7, r.Header.Height)
	assert.Equal(t, "to_completion", r.Header.Mode)
	assert.NotEmpty(t, r.Header.CombatID)
	assert.True(t, strings.HasPrefix(r.Header.Board, "#######\n#.G...#"))

	// 47 full rounds plus the round in which the goblins ran out of targets
	require.Len(t, r.Frames, 48)
	for i, f := range r.Frames[:47] {
		assert.Equal(t, i+1, f.Round)
		assert.True(t, f.Complete, "round %d", f.Round)
	}
	last := r.Frames[47]
	assert.False(t, last.Complete)
	assert.Equal(t, 590, last.TotalHP)
	for _, u := range last.Units {
		assert.Equal(t, core.Goblin, u.Faction)
	}

	require.True(t, r.Finished())
	assert.Equal(t, "goblin", r.Trailer.Winner)
	assert.Equal(t, 47, r.Trailer.CompletedRounds)
	assert.Equal(t, 27730, r.Trailer.Score)
	assert.True(t, r.Trailer.ElfDied)
	assert.False(t, r.Trailer.Aborted)
}

func TestRecorder_ReplayIsCopy(t *testing.T) {
	rec := NewRecorder("replay")
	engine, err := game.NewEngine(context.Background(), game.GameConfig{
		Grid:        testutil.ParseGrid(t, "#######", "#G...E#", "#######"),
		Mode:        game.ToCompletion,
		Logger:      testutil.NopLogger(),
		Subscribers: []events.Subscriber{rec},
	})
	require.NoError(t, err)
	_, err = engine.Run(context.Background())
	require.NoError(t, err)

	r := rec.Replay()
	require.NotEmpty(t, r.Frames)
	require.True(t, r.Finished())
	score := r.Trailer.Score
	r.Frames[0].Round = 999
	r.Trailer.Score = -1

	fresh := rec.Replay()
	assert.Equal(t, 1, fresh.Frames[0].Round)
	assert.Equal(t, score, fresh.Trailer.Score)
}

func TestWriteRead_RoundTrip(t *testing.T) {
	r := recordScenario(t, "sample_b", 0, game.AbortOnElfDeath)
	require.True(t, r.Finished())
	assert.True(t, r.Trailer.Aborted)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, len(r.Frames)+2)
	assert.Contains(t, lines[0], `"header"`)
	assert.Contains(t, lines[len(lines)-1], `"trailer"`)

	got, err := Read(&buf)
	require.NoError(t, err)

	assert.True(t, r.Header.StartedAt.Equal(got.Header.StartedAt))
	got.Header.StartedAt = r.Header.StartedAt
	assert.Equal(t, r.Header, got.Header)
	assert.Equal(t, r.Frames, got.Frames)
	assert.Equal(t, r.Trailer, got.Trailer)
}

func TestWriteRead_Unfinished(t *testing.T) {
	r := &Replay{
		Header: Header{
			CombatID:  "c1",
			Width:     3,
			Height:    3,
			Mode:      "to_completion",
			StartedAt: time.Date(2026, 1, 2, 15, 4, 5, 600, time.UTC),
			Board:     "###\n#G#\n###",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r))
	got, err := Read(&buf)
	require.NoError(t, err)
	assert.False(t, got.Finished())
	assert.Empty(t, got.Frames)
	assert.Equal(t, r.Header.StartedAt, got.Header.StartedAt)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		errText string
	}{
		{
			name:    "empty",
			input:   "",
			wantErr: ErrNoHeader,
		},
		{
			name:    "frame before header",
			input:   `{"kind":"frame","round":1}`,
			wantErr: ErrNoHeader,
		},
		{
			name:    "unknown kind",
			input:   `{"kind":"header","started_at":"2026-01-02T15:04:05Z"}` + "\n" + `{"kind":"bogus"}`,
			wantErr: ErrUnknownKind,
		},
		{
			name:    "not json",
			input:   "nope",
			errText: "line 1",
		},
		{
			name:    "bad timestamp",
			input:   `{"kind":"header","started_at":"yesterday"}`,
			errText: "bad started_at",
		},
		{
			name: "bad faction",
			input: `{"kind":"header","started_at":"2026-01-02T15:04:05Z"}` + "\n" +
				`{"kind":"frame","units":[{"faction":"dwarf","x":1,"y":1,"hp":3}]}`,
			errText: "unknown faction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.errText != "" {
				assert.Contains(t, err.Error(), tt.errText)
			}
		})
	}
}

func TestSaveLoadFile(t *testing.T) {
	r := recordScenario(t, "open_duel", 0, game.ToCompletion)
	path := filepath.Join(t.TempDir(), "duel.jsonl")

	require.NoError(t, SaveFile(path, r))
	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, got.Frames, len(r.Frames))
	assert.Equal(t, r.Trailer.Score, got.Trailer.Score)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Error(t, err)
}
