package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
)

// Command is a playback request collected during one frame
type Command int

const (
	CommandNone Command = iota
	CommandTogglePause
	CommandStep
	CommandRestart
	CommandFaster
	CommandSlower
)

type Handler struct {
	// Mouse state
	mouseX, mouseY int

	// Selection state
	selected     core.Position
	hasSelection bool

	// UI state
	tileSize     int
	boardOffsetX int
	boardOffsetY int

	commands []Command
}

func NewHandler(tileSize int) *Handler {
	return &Handler{
		tileSize: tileSize,
		commands: make([]Command, 0, 4),
	}
}

func (h *Handler) Update() {
	h.commands = h.commands[:0]

	h.mouseX, h.mouseY = ebiten.CursorPosition()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		h.handleLeftClick()
	}

	// Right click cancels selection
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		h.hasSelection = false
	}

	h.handleKeyboard()
}

func (h *Handler) handleLeftClick() {
	p := h.screenToTile(h.mouseX, h.mouseY)

	// Clicking the selected tile again deselects it
	if h.hasSelection && p == h.selected {
		h.hasSelection = false
		return
	}
	h.selected = p
	h.hasSelection = true
}

func (h *Handler) handleKeyboard() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		h.commands = append(h.commands, CommandTogglePause)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) || inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		h.commands = append(h.commands, CommandStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		h.commands = append(h.commands, CommandRestart)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		h.commands = append(h.commands, CommandFaster)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		h.commands = append(h.commands, CommandSlower)
	}

	// Escape to deselect
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		h.hasSelection = false
	}
}

func (h *Handler) screenToTile(x, y int) core.Position {
	return core.Position{
		X: (x - h.boardOffsetX) / h.tileSize,
		Y: (y - h.boardOffsetY) / h.tileSize,
	}
}

func (h *Handler) SetBoardOffset(x, y int) {
	h.boardOffsetX = x
	h.boardOffsetY = y
}

// Commands returns the commands collected by the last Update
func (h *Handler) Commands() []Command {
	return h.commands
}

func (h *Handler) GetSelectedTile() (core.Position, bool) {
	return h.selected, h.hasSelection
}

func (h *Handler) GetHoveredTile() core.Position {
	return h.screenToTile(h.mouseX, h.mouseY)
}
