package service

import (
	"time"

	"github.com/Moutabir-omar/MA-Orangegame/internal/engine"
	"github.com/Moutabir-omar/MA-Orangegame/internal/game"

	"github.com/google/uuid"
)

// FillAIRoles creates an AI-owned ledger for every role that has no human
// player. Already-claimed roles are untouched, so calling it twice is a
// no-op.
func FillAIRoles(g *game.Game) {
	for _, role := range game.Roles {
		if g.PlayerByRole(role) != nil {
			continue
		}
		g.Players = append(g.Players, game.Player{
			GameID:     g.ID,
			Role:       role,
			PlayerUUID: uuid.NewString(),
			PlayerName: aiName(role),
			IsAI:       true,
		})
	}
}

func aiName(role string) string {
	if role == "" {
		return "AI"
	}
	return "AI " + string(role[0]-'a'+'A') + role[1:]
}

// StartGame performs server-side initialization for the first round:
// backfills AI roles when the game was created with that option, seeds
// every ledger with the initial inventory, draws the round 1 demand and
// opens order collection. The host check happens at the API layer against
// the game's CreatedBy column.
func StartGame(repo GameRepo, g *game.Game, rng engine.Rand, actionTimeout time.Duration) error {
	if g.Status != game.StatusWaitingForPlayers {
		return ErrGameStarted
	}

	if g.FillWithAI {
		FillAIRoles(g)
	}
	for _, role := range game.Roles {
		if g.PlayerByRole(role) == nil {
			return ErrRolesUnclaimed
		}
	}

	for i := range g.Players {
		p := &g.Players[i]
		p.Inventory = g.InitialInventory
		p.Backlog = 0
		p.CumulativeCost = 0
		p.HasOrdered = false
		p.PendingOrder = 0
	}

	g.Status = game.StatusInProgress
	g.Phase = game.PhaseCollecting
	g.Round = 1
	// Round 1 demand is a plain draw; scenarios can only trigger from the
	// first round boundary onward.
	g.BaseDemand = engine.DrawBaseDemand(rng)
	g.CurrentDemand = g.BaseDemand
	g.SetScenario(nil)
	g.ActionDeadline = time.Now().Add(actionTimeout)
	g.Message = "The game has started. Place your first orders."

	return repo.UpdateGame(g)
}
