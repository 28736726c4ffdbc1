package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Moutabir-omar/MA-Orangegame/internal/constants"
	"github.com/Moutabir-omar/MA-Orangegame/internal/engine"
	"github.com/Moutabir-omar/MA-Orangegame/internal/game"
	"github.com/Moutabir-omar/MA-Orangegame/internal/logging"

	"golang.org/x/sync/singleflight"
)

// advanceGroup coalesces concurrent advances of the same session (a host
// click racing the timeout scanner) into a single settle.
var advanceGroup singleflight.Group

// AdvanceRound settles the current round. Without force it requires every
// human order to be in; force is reserved for the host and the round
// timer, and settles absent players at order 0.
func AdvanceRound(repo GameRepo, hub Broadcaster, rng engine.Rand, gameID uint, force bool, actionTimeout time.Duration) (*game.Game, error) {
	v, err, _ := advanceGroup.Do(strconv.FormatUint(uint64(gameID), 10), func() (interface{}, error) {
		unlock := lockSession(gameID)
		defer unlock()

		g, err := repo.GetGameByID(gameID)
		if err != nil || g == nil {
			return nil, ErrGameNotFound
		}
		if g.Status == game.StatusCompleted {
			return nil, ErrGameCompleted
		}
		if g.Status != game.StatusInProgress || g.Phase != game.PhaseCollecting {
			return nil, ErrGameNotInProgress
		}
		if !force && !humanOrdersIn(g) {
			return nil, ErrOrdersPending
		}

		if err := settleAndCommit(repo, hub, rng, g, actionTimeout); err != nil {
			return nil, err
		}
		return g, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*game.Game), nil
}

// settleAndCommit runs the engine over the loaded game, persists the
// outcome and publishes the new snapshot. The caller holds the session
// lock. A storage failure surfaces as ErrPersistence and leaves the
// durable state on the previous round, so a retried advance recomputes
// from there; a broadcast failure is invisible here by design.
func settleAndCommit(repo GameRepo, hub Broadcaster, rng engine.Rand, g *game.Game, actionTimeout time.Duration) error {
	// AI ledgers decide their orders now, from their own history.
	for i := range g.Players {
		p := &g.Players[i]
		if !p.IsAI || p.HasOrdered {
			continue
		}
		order := engine.SuggestOrder(p, g.ShippingDelayRounds, engine.DefaultSafetyStock, engine.DefaultForecastWindow)
		if err := p.RecordOrder(g.Round, order); err != nil {
			return err
		}
		if err := repo.AppendOrder(&game.PlayerOrder{
			GameID:   g.ID,
			PlayerID: p.ID,
			Role:     p.Role,
			Round:    g.Round,
			Value:    order,
		}); err != nil {
			return fmt.Errorf("%w: append AI order: %v", ErrPersistence, err)
		}
	}

	settled := g.Round
	engine.Settle(g, rng)

	if g.Status != game.StatusCompleted {
		g.ActionDeadline = time.Now().Add(actionTimeout)
	}

	if err := repo.UpdateGame(g); err != nil {
		return fmt.Errorf("%w: commit round %d: %v", ErrPersistence, settled, err)
	}

	// Stats fold in only once the final round is durably committed; a
	// failed commit retried later must not count the game twice.
	if g.Status == game.StatusCompleted {
		if err := repo.UpdateStatsOnGameEnd(g); err != nil {
			logging.Error("failed to update aggregate stats", err, logging.Fields{constants.LogFieldGameID: g.ID})
		}
	}

	if hub != nil {
		hub.Publish(g.JoinCode, g.Snapshot())
	}
	logging.Info("round settled", logging.Fields{
		constants.LogFieldGameID: g.ID,
		constants.LogFieldRound:  settled,
	})
	return nil
}
