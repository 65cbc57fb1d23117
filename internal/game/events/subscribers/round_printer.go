package subscribers

import (
	"fmt"
	"io"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/events"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/mapgen"
)

// RoundPrinter writes the rendered board to w after every round
type RoundPrinter struct {
	id    string
	w     io.Writer
	color bool
}

// NewRoundPrinter creates a round printer writing to w
func NewRoundPrinter(id string, w io.Writer) *RoundPrinter {
	return &RoundPrinter{id: id, w: w}
}

// SetColor switches ANSI colored boards on or off
func (rp *RoundPrinter) SetColor(enabled bool) { rp.color = enabled }

func (rp *RoundPrinter) ID() string { return rp.id }

func (rp *RoundPrinter) InterestedIn(eventType string) bool {
	return printed(eventType)
}

var printed = events.TypeSet(events.TypeRoundEnded, events.TypeCombatEnded)

func (rp *RoundPrinter) HandleEvent(event events.Event) {
	switch e := event.(type) {
	case *events.RoundEndedEvent:
		status := "complete"
		if !e.Complete {
			status = "incomplete"
		}
		board := e.Board
		if rp.color {
			board = mapgen.Colorize(board)
		}
		round, _ := events.RoundOf(e)
		fmt.Fprintf(rp.w, "After round %d (%s):\n%s\n", round, status, board)
	case *events.CombatEndedEvent:
		fmt.Fprintf(rp.w, "Combat ends after %d full rounds\n", e.CompletedRounds)
		fmt.Fprintf(rp.w, "%s win with %d total hit points left\n", sideName(e.Winner), e.TotalHP)
		fmt.Fprintf(rp.w, "Outcome: %d * %d = %d\n", e.CompletedRounds, e.TotalHP, e.Score)
	}
}

func sideName(winner string) string {
	switch winner {
	case "goblin":
		return "Goblins"
	case "elf":
		return "Elves"
	default:
		return "Nobody"
	}
}
