package service

import (
	"github.com/Moutabir-omar/MA-Orangegame/internal/game"

	"github.com/google/uuid"
)

// ClaimRole assigns a free supply chain role to the given identity. A
// player holds at most one role per game; claiming is only possible while
// the game is waiting for players.
func ClaimRole(repo GameRepo, gameID uint, role, email, name string) (*game.Game, error) {
	unlock := lockSession(gameID)
	defer unlock()

	g, err := repo.GetGameByID(gameID)
	if err != nil || g == nil {
		return nil, ErrGameNotFound
	}
	if g.Status != game.StatusWaitingForPlayers {
		return nil, ErrGameStarted
	}
	if !game.ValidRole(role) {
		return nil, ErrUnknownRole
	}
	if g.PlayerByRole(role) != nil {
		return nil, ErrRoleTaken
	}
	if g.PlayerByEmail(email) != nil {
		return nil, ErrAlreadyInGame
	}

	g.Players = append(g.Players, game.Player{
		GameID:      g.ID,
		Role:        role,
		PlayerUUID:  uuid.NewString(),
		PlayerName:  name,
		PlayerEmail: email,
	})
	if err := repo.UpdateGame(g); err != nil {
		return nil, err
	}
	return g, nil
}
