package service

import (
	"fmt"
	"time"

	"github.com/Moutabir-omar/MA-Orangegame/internal/engine"
	"github.com/Moutabir-omar/MA-Orangegame/internal/game"
)

// PlaceOrder records one role's replenishment order for the current round.
// Orders are accepted only while the session is collecting for exactly
// that round; anything else is a sequencing error surfaced to the caller.
// When the last outstanding human order arrives the round settles
// immediately instead of waiting for the timer. Returns the updated game
// and whether the round was settled.
func PlaceOrder(repo GameRepo, hub Broadcaster, rng engine.Rand, gameID uint, email string, round, value int, actionTimeout time.Duration) (*game.Game, bool, error) {
	unlock := lockSession(gameID)
	defer unlock()

	g, err := repo.GetGameByID(gameID)
	if err != nil || g == nil {
		return nil, false, ErrGameNotFound
	}
	if g.Status == game.StatusCompleted {
		return nil, false, ErrGameCompleted
	}
	if g.Status != game.StatusInProgress {
		return nil, false, ErrGameNotInProgress
	}
	if g.Phase != game.PhaseCollecting {
		return nil, false, ErrRoundSettling
	}

	p := g.PlayerByEmail(email)
	if p == nil {
		return nil, false, ErrPlayerNotInGame
	}
	if round != g.Round {
		return nil, false, ErrWrongRound
	}

	if err := p.RecordOrder(round, value); err != nil {
		return nil, false, err
	}
	if err := repo.AppendOrder(&game.PlayerOrder{
		GameID:   g.ID,
		PlayerID: p.ID,
		Role:     p.Role,
		Round:    round,
		Value:    value,
	}); err != nil {
		return nil, false, fmt.Errorf("%w: append order: %v", ErrPersistence, err)
	}

	if !humanOrdersIn(g) {
		if err := repo.UpdateGame(g); err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return g, false, nil
	}

	if err := settleAndCommit(repo, hub, rng, g, actionTimeout); err != nil {
		return nil, false, err
	}
	return g, true, nil
}

// humanOrdersIn reports whether every human-owned ledger has ordered this
// round. AI orders are computed at settle time.
func humanOrdersIn(g *game.Game) bool {
	for i := range g.Players {
		if !g.Players[i].IsAI && !g.Players[i].HasOrdered {
			return false
		}
	}
	return true
}
