package game

import (
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/mapgen"
)

// Board returns the current grid in the plain text format
func (e *Engine) Board() string {
	return mapgen.Render(e.cs.Grid)
}
