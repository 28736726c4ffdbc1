package service

import (
	"time"

	"github.com/Moutabir-omar/MA-Orangegame/internal/constants"
	"github.com/Moutabir-omar/MA-Orangegame/internal/engine"
	"github.com/Moutabir-omar/MA-Orangegame/internal/game"
	"github.com/Moutabir-omar/MA-Orangegame/internal/logging"
)

// HandleTimedOutGame force-advances a session whose round timer elapsed.
// Roles that never submitted settle the round at order 0; the game is
// never abandoned just because a player went quiet.
func HandleTimedOutGame(repo GameRepo, hub Broadcaster, rng engine.Rand, gg *game.Game, actionTimeout time.Duration) error {
	if gg.Status != game.StatusInProgress || gg.Phase != game.PhaseCollecting {
		return nil
	}

	missing := 0
	for i := range gg.Players {
		if !gg.Players[i].IsAI && !gg.Players[i].HasOrdered {
			missing++
		}
	}
	logging.Info("round timer elapsed; forcing advance", logging.Fields{
		constants.LogFieldGameID: gg.ID,
		constants.LogFieldRound:  gg.Round,
		"missing_orders":         missing,
	})

	_, err := AdvanceRound(repo, hub, rng, gg.ID, true, actionTimeout)
	if err == ErrGameNotInProgress || err == ErrGameCompleted {
		// Settled by another path between the scan and this call.
		return nil
	}
	return err
}
