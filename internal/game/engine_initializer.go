package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/events"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/mapgen"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/processor"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/rules"
	"github.com/mitchelldurbincs/CaveSkirmish/internal/game/states"
)

// ErrNoGrid is returned when an engine is created without a grid
var ErrNoGrid = errors.New("no grid provided")

// GameConfig holds everything needed to start a combat
type GameConfig struct {
	Grid           *core.Grid
	ElfAttackBonus int
	Mode           RunMode
	MaxRounds      int // 0 means unlimited
	CombatID       string
	Logger         zerolog.Logger
	EventBus       *events.EventBus
	Subscribers    []events.Subscriber
}

// EngineInitializer handles the initialization of a combat engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	logger := cfg.Logger.With().Str("component", "CombatEngine").Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// Initialize creates a new engine in the running phase. The engine takes
// ownership of config.Grid.
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled before it started")
		return nil, ctx.Err()
	default:
	}

	if ei.config.Grid == nil {
		return nil, ErrNoGrid
	}
	if ei.config.ElfAttackBonus < 0 {
		return nil, fmt.Errorf("elf attack bonus must be non-negative, got %d", ei.config.ElfAttackBonus)
	}

	ei.setupDefaults()

	engine := ei.createEngine()
	ei.setupEventHandling(engine)
	engine.updateCombatStats()

	if err := ei.initializeStateMachine(engine); err != nil {
		return nil, fmt.Errorf("state machine initialization failed: %w", err)
	}

	engine.eventBus.Publish(events.NewCombatStartedEvent(
		engine.combatID,
		engine.cs.Grid,
		engine.elfBonus,
		engine.mode.String(),
		mapgen.Render(engine.cs.Grid),
	))

	ei.logger.Info().
		Int("width", engine.cs.Grid.W).
		Int("height", engine.cs.Grid.H).
		Int("goblins", engine.cs.InitialGoblins).
		Int("elves", engine.cs.InitialElves).
		Int("elf_attack_bonus", engine.elfBonus).
		Stringer("mode", engine.mode).
		Msg("Engine created successfully")

	return engine, nil
}

// setupDefaults sets up default values for missing configuration
func (ei *EngineInitializer) setupDefaults() {
	if ei.config.CombatID == "" {
		ei.config.CombatID = uuid.NewString()
	}
	if ei.config.EventBus == nil {
		ei.config.EventBus = events.NewEventBusWithLogger(ei.logger)
	}
	if ei.config.MaxRounds < 0 {
		ei.config.MaxRounds = 0
	}
	ei.logger = ei.logger.With().Str("combat_id", ei.config.CombatID).Logger()
}

// createEngine creates the engine with all its components
func (ei *EngineInitializer) createEngine() *Engine {
	combatContext := states.NewCombatContext(ei.config.CombatID, ei.config.Logger)
	stateMachine := states.NewStateMachine(combatContext, ei.config.EventBus)

	engine := &Engine{
		cs:              newCombatState(ei.config.Grid),
		mode:            ei.config.Mode,
		elfBonus:        ei.config.ElfAttackBonus,
		maxRounds:       ei.config.MaxRounds,
		logger:          ei.logger,
		strategy:        NewStrategy(ei.config.ElfAttackBonus),
		actionProcessor: processor.NewActionProcessor(ei.logger),
		winCondition:    rules.NewWinConditionChecker(ei.logger),
		eventBus:        ei.config.EventBus,
		combatID:        ei.config.CombatID,
		stateMachine:    stateMachine,
	}
	engine.turnProcessor = NewTurnProcessor(engine)

	return engine
}

// setupEventHandling subscribes the configured subscribers
func (ei *EngineInitializer) setupEventHandling(engine *Engine) {
	for _, sub := range ei.config.Subscribers {
		engine.eventBus.Subscribe(sub)
	}
}

// initializeStateMachine moves the engine into the running phase
func (ei *EngineInitializer) initializeStateMachine(engine *Engine) error {
	stateMachine := engine.stateMachine

	if err := stateMachine.TransitionTo(states.PhaseRunning, "Grid loaded"); err != nil {
		ei.logger.Error().Err(err).Msg("Failed to transition to Running state")
		stateMachine.Context().Error = err
		if tErr := stateMachine.TransitionTo(states.PhaseError, err.Error()); tErr != nil {
			ei.logger.Error().Err(tErr).Msg("Failed to transition to Error state")
		}
		return err
	}

	return nil
}
