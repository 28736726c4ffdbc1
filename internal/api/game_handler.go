package api

import (
	"time"

	"github.com/Moutabir-omar/MA-Orangegame/internal/broadcast"
	"github.com/Moutabir-omar/MA-Orangegame/internal/config"
	"github.com/Moutabir-omar/MA-Orangegame/internal/engine"
	"github.com/Moutabir-omar/MA-Orangegame/internal/storage"
)

// GameHandler groups all game-related HTTP handlers.
type GameHandler struct {
	repo          storage.Repository
	hub           *broadcast.Hub
	rng           engine.Rand
	actionTimeout time.Duration
	defaults      config.GameDefaults
}

// NewGameHandler creates a new GameHandler with the given repository,
// snapshot hub, randomness source and per-game defaults.
func NewGameHandler(repo storage.Repository, hub *broadcast.Hub, rng engine.Rand, actionTimeout time.Duration, defaults config.GameDefaults) *GameHandler {
	return &GameHandler{repo: repo, hub: hub, rng: rng, actionTimeout: actionTimeout, defaults: defaults}
}
