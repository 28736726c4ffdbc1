package service

import "github.com/Moutabir-omar/MA-Orangegame/internal/game"

// GameRepo is the slice of the storage repository the session operations
// need. Tests supply in-memory mocks.
type GameRepo interface {
	GetGameByID(id uint) (*game.Game, error)
	UpdateGame(g *game.Game) error
	AppendOrder(o *game.PlayerOrder) error
	UpdateStatsOnGameEnd(g *game.Game) error
}

// Broadcaster fans a round snapshot out to connected clients. Publishing
// is fire-and-forget: failures are the broadcaster's problem and must
// never fail a round advance.
type Broadcaster interface {
	Publish(joinCode string, snap game.RoundSnapshot)
}
