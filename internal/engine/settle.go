package engine

import (
	"fmt"
	"time"

	"github.com/Moutabir-omar/MA-Orangegame/internal/game"
)

// Settle computes the outcome of the current round for every role, in the
// fixed pipeline order retailer -> wholesaler -> distributor ->
// manufacturer, then either opens the next round or completes the game.
//
// Per role the step is: intake the shipment ordered ShippingDelayRounds
// ago, fulfill backlog plus this round's demand from what is available,
// carry the remainder as inventory or backlog, and accrue holding/backlog
// costs. The order each role places this round becomes the demand its
// upstream partner faces next round; that one-round order lag is what
// produces the bullwhip effect.
//
// Settle assumes the caller holds the session lock and has verified the
// game is in progress and collecting. Arithmetic invariant violations
// panic: they mean the engine itself is wrong and must not be swallowed.
func Settle(g *game.Game, rng Rand) {
	if g.Status != game.StatusInProgress || g.Phase != game.PhaseCollecting {
		panic(fmt.Sprintf("engine: settle on game %d in status=%s phase=%s", g.ID, g.Status, g.Phase))
	}
	g.Phase = game.PhaseSettling

	n := g.Round
	scenario := g.Scenario()

	delay := g.ShippingDelayRounds
	if scenario != nil && scenario.Type == game.ScenarioSupplyDisruption {
		// Disruption stretches the lag by one round for as long as it
		// lasts. Shipments are looked up by lag with no re-attribution,
		// so the onset round re-reads the order delivered a round earlier
		// and one order goes undelivered when the disruption lifts.
		delay++
	}
	qualityActive := scenario != nil && scenario.Type == game.ScenarioQualityIssue

	for _, role := range game.Roles {
		p := g.PlayerByRole(role)
		if p == nil {
			panic(fmt.Sprintf("engine: game %d has no ledger for role %s", g.ID, role))
		}

		demand := roleDemand(g, role, n)

		// The shipment arriving now is this role's own order from
		// delay rounds ago; nothing arrives before the pipeline fills.
		shipment := 0
		if k := n - delay; k >= 1 {
			shipment = p.OrderAt(k)
		}

		available := p.Inventory + shipment
		fulfillable := available
		if qualityActive {
			// Quality issues cap what can be shipped out this round;
			// the stock carried forward stays at full count.
			fulfillable = available * 8 / 10
		}

		total := p.Backlog + demand
		fulfilled := total
		if fulfillable < fulfilled {
			fulfilled = fulfillable
		}
		newInventory := available - fulfilled
		newBacklog := total - fulfilled

		if newInventory < 0 || newBacklog < 0 ||
			newInventory+fulfilled != available || newBacklog+fulfilled != total {
			panic(fmt.Sprintf("engine: conservation violated for game %d role %s round %d: inv=%d backlog=%d fulfilled=%d available=%d total=%d",
				g.ID, role, n, newInventory, newBacklog, fulfilled, available, total))
		}

		order := 0
		if p.HasOrdered {
			order = p.PendingOrder
		}
		roundCost := newInventory*g.InventoryUnitCost + newBacklog*g.BacklogUnitCost

		err := p.ApplyRoundResult(n, game.PlayerRound{
			GameID:           g.ID,
			IncomingOrder:    demand,
			IncomingShipment: shipment,
			Fulfilled:        fulfilled,
			OutgoingOrder:    order,
			Inventory:        newInventory,
			Backlog:          newBacklog,
			RoundCost:        roundCost,
		})
		if err != nil {
			panic(fmt.Sprintf("engine: game %d role %s: %v", g.ID, role, err))
		}
	}

	if n >= g.TotalRounds {
		g.Status = game.StatusCompleted
		g.Phase = game.PhaseResolved
		g.SetScenario(nil)
		g.ActionDeadline = time.Time{}
		g.Message = "Game over. Compare your supply chain costs."
		return
	}

	g.Round = n + 1
	for i := range g.Players {
		g.Players[i].HasOrdered = false
		g.Players[i].PendingOrder = 0
	}
	g.BaseDemand = DrawBaseDemand(rng)
	next, adjusted := NextScenario(scenario, g.BaseDemand, g.ScenariosEnabled, rng)
	g.SetScenario(next)
	g.CurrentDemand = adjusted
	g.Phase = game.PhaseCollecting
	g.Message = "New round. Place your orders."
}

// roleDemand returns the demand role r must satisfy in round n: external
// customer demand for the retailer, otherwise the order the downstream
// partner placed in round n-1 (zero in round 1, before any order
// propagates).
func roleDemand(g *game.Game, role string, n int) int {
	if role == game.RoleRetailer {
		return g.CurrentDemand
	}
	down := g.PlayerByRole(game.Downstream(role))
	if down == nil || n < 2 {
		return 0
	}
	return down.OrderAt(n - 1)
}
