package storage

import (
	"time"

	"github.com/Moutabir-omar/MA-Orangegame/internal/game"
)

type Repository interface {
	CreateGame(g *game.Game) error
	// GetGameByID loads a full session including every ledger and its
	// per-round history, ordered by round.
	GetGameByID(id uint) (*game.Game, error)
	FindGameByJoinCode(code string) (*game.Game, error)
	UpdateGame(g *game.Game) error
	GetPublicGames() ([]game.Game, error)
	// FindTimedOutGames returns in-progress games still collecting orders
	// whose action deadline is at or before the provided time.
	FindTimedOutGames(now time.Time) ([]game.Game, error)
	RemovePlayerByEmail(gameID uint, email string) error

	// AppendOrder records a placed order as an append-only fact. It is
	// idempotent: re-appending the same (game, player, round) keeps the
	// first row, so a retried round commit never fails here.
	AppendOrder(o *game.PlayerOrder) error
	GetOrdersForGame(gameID uint) ([]game.PlayerOrder, error)

	UpsertUser(email, uuid, name string) error
	GetStatsByEmail(email string) (*game.User, error)
	SaveUser(u *game.User) error
	// Leaderboard: lowest best cost first among players with completed games.
	GetTopPlayers(limit int) ([]game.User, error)
	// UpdateStatsOnGameEnd folds a completed game into every human
	// participant's aggregate stats.
	UpdateStatsOnGameEnd(g *game.Game) error
}
