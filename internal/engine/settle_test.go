package engine

import (
	"testing"

	"github.com/Moutabir-omar/MA-Orangegame/internal/game"
)

// scriptRand feeds predetermined values to the engine. An exhausted queue
// falls back to values that keep demand at 4 and never trigger a scenario.
type scriptRand struct {
	ints   []int
	floats []float64
}

func (r *scriptRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 2 // base demand 2+2 = 4
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99 // above the scenario trigger probability
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func newTestGame(totalRounds int) *game.Game {
	g := &game.Game{
		JoinCode:            "TESTGM",
		TotalRounds:         totalRounds,
		RoundTimeSeconds:    45,
		ShippingDelayRounds: 2,
		InventoryUnitCost:   5,
		BacklogUnitCost:     10,
		InitialInventory:    12,
		Status:              game.StatusInProgress,
		Phase:               game.PhaseCollecting,
		Round:               1,
		BaseDemand:          4,
		CurrentDemand:       4,
	}
	for _, role := range game.Roles {
		g.Players = append(g.Players, game.Player{
			Role:      role,
			Inventory: 12,
		})
	}
	return g
}

func orderAll(t *testing.T, g *game.Game, value int) {
	t.Helper()
	for i := range g.Players {
		if err := g.Players[i].RecordOrder(g.Round, value); err != nil {
			t.Fatalf("record order for %s: %v", g.Players[i].Role, err)
		}
	}
}

func TestSettle_FirstRoundNoShipments(t *testing.T) {
	g := newTestGame(20)
	orderAll(t, g, 4)

	Settle(g, &scriptRand{})

	retailer := g.PlayerByRole(game.RoleRetailer)
	if retailer.Inventory != 8 || retailer.Backlog != 0 {
		t.Fatalf("retailer after round 1: inv=%d backlog=%d, want 8/0", retailer.Inventory, retailer.Backlog)
	}
	if retailer.Rounds[0].IncomingShipment != 0 {
		t.Fatalf("no shipment can arrive before the pipeline fills, got %d", retailer.Rounds[0].IncomingShipment)
	}
	if retailer.Rounds[0].RoundCost != 8*5 {
		t.Fatalf("retailer round cost = %d, want 40", retailer.Rounds[0].RoundCost)
	}

	// Upstream roles face no demand in round 1: orders only propagate
	// with a one-round lag.
	for _, role := range []string{game.RoleWholesaler, game.RoleDistributor, game.RoleManufacturer} {
		p := g.PlayerByRole(role)
		if p.Rounds[0].IncomingOrder != 0 {
			t.Fatalf("%s demand in round 1 = %d, want 0", role, p.Rounds[0].IncomingOrder)
		}
		if p.Inventory != 12 {
			t.Fatalf("%s inventory after round 1 = %d, want 12", role, p.Inventory)
		}
	}

	if g.Round != 2 || g.Phase != game.PhaseCollecting {
		t.Fatalf("expected round 2 collecting, got round=%d phase=%s", g.Round, g.Phase)
	}
}

func TestSettle_SteadyStateInventory(t *testing.T) {
	g := newTestGame(20)
	rng := &scriptRand{}

	// Constant demand 4, constant orders 4: after the pipeline fills the
	// retailer holds initial inventory minus delay*demand = 4 and the
	// upstream roles stabilize one depleted round higher.
	for round := 1; round <= 8; round++ {
		orderAll(t, g, 4)
		Settle(g, rng)
	}

	retailer := g.PlayerByRole(game.RoleRetailer)
	if retailer.Inventory != 4 || retailer.Backlog != 0 {
		t.Fatalf("retailer steady state: inv=%d backlog=%d, want 4/0", retailer.Inventory, retailer.Backlog)
	}
	wholesaler := g.PlayerByRole(game.RoleWholesaler)
	if wholesaler.Inventory != 8 || wholesaler.Backlog != 0 {
		t.Fatalf("wholesaler steady state: inv=%d backlog=%d, want 8/0", wholesaler.Inventory, wholesaler.Backlog)
	}

	// Shipments after the lag equal the role's own past orders.
	if got := retailer.Rounds[7].IncomingShipment; got != 4 {
		t.Fatalf("retailer round 8 shipment = %d, want 4", got)
	}

	// Cumulative cost never decreases.
	for i := range g.Players {
		prev := 0
		for _, r := range g.Players[i].Rounds {
			if r.CumulativeCost < prev {
				t.Fatalf("%s cumulative cost decreased: %d -> %d", g.Players[i].Role, prev, r.CumulativeCost)
			}
			prev = r.CumulativeCost
		}
	}
}

func TestSettle_BacklogWhenDemandExceedsStock(t *testing.T) {
	g := newTestGame(20)
	g.BaseDemand = 15
	g.CurrentDemand = 15
	orderAll(t, g, 4)

	Settle(g, &scriptRand{})

	retailer := g.PlayerByRole(game.RoleRetailer)
	if retailer.Rounds[0].Fulfilled != 12 {
		t.Fatalf("fulfilled = %d, want 12", retailer.Rounds[0].Fulfilled)
	}
	if retailer.Inventory != 0 || retailer.Backlog != 3 {
		t.Fatalf("inv=%d backlog=%d, want 0/3", retailer.Inventory, retailer.Backlog)
	}
	if retailer.Rounds[0].RoundCost != 3*10 {
		t.Fatalf("round cost = %d, want 30", retailer.Rounds[0].RoundCost)
	}
}

func TestSettle_BacklogFulfilledBeforeNewDemand(t *testing.T) {
	g := newTestGame(20)
	g.BaseDemand = 15
	g.CurrentDemand = 15
	orderAll(t, g, 10)
	Settle(g, &scriptRand{}) // retailer: inv 0, backlog 3

	orderAll(t, g, 4)
	Settle(g, &scriptRand{}) // round 2: demand 4, backlog 3, no shipment yet

	retailer := g.PlayerByRole(game.RoleRetailer)
	if retailer.Rounds[1].Fulfilled != 0 {
		t.Fatalf("nothing available, fulfilled = %d", retailer.Rounds[1].Fulfilled)
	}
	if retailer.Backlog != 7 {
		t.Fatalf("backlog = %d, want 3+4 = 7", retailer.Backlog)
	}

	orderAll(t, g, 4)
	Settle(g, &scriptRand{}) // round 3: shipment = round 1 order = 10

	if retailer.Rounds[2].IncomingShipment != 10 {
		t.Fatalf("round 3 shipment = %d, want 10", retailer.Rounds[2].IncomingShipment)
	}
	// 10 available against backlog 7 + demand 4: fulfill 10, carry 1 back.
	if retailer.Rounds[2].Fulfilled != 10 || retailer.Backlog != 1 || retailer.Inventory != 0 {
		t.Fatalf("round 3: fulfilled=%d inv=%d backlog=%d, want 10/0/1",
			retailer.Rounds[2].Fulfilled, retailer.Inventory, retailer.Backlog)
	}
}

func TestSettle_ZeroOrderWhenPlayerNeverOrdered(t *testing.T) {
	g := newTestGame(20)
	for i := range g.Players {
		if g.Players[i].Role == game.RoleWholesaler {
			continue // stays silent this round
		}
		if err := g.Players[i].RecordOrder(1, 4); err != nil {
			t.Fatalf("record order: %v", err)
		}
	}

	Settle(g, &scriptRand{})

	wholesaler := g.PlayerByRole(game.RoleWholesaler)
	if wholesaler.Rounds[0].OutgoingOrder != 0 {
		t.Fatalf("silent player's order = %d, want 0", wholesaler.Rounds[0].OutgoingOrder)
	}
	// The zero order is what the distributor sees as demand next round.
	orderAll(t, g, 4)
	Settle(g, &scriptRand{})
	distributor := g.PlayerByRole(game.RoleDistributor)
	if distributor.Rounds[1].IncomingOrder != 0 {
		t.Fatalf("distributor round 2 demand = %d, want 0", distributor.Rounds[1].IncomingOrder)
	}
}

func TestSettle_CompletesOnFinalRound(t *testing.T) {
	g := newTestGame(1)
	orderAll(t, g, 4)

	Settle(g, &scriptRand{})

	if g.Status != game.StatusCompleted || g.Phase != game.PhaseResolved {
		t.Fatalf("expected completed/resolved, got %s/%s", g.Status, g.Phase)
	}
	if !g.ActionDeadline.IsZero() {
		t.Fatalf("completed game keeps an action deadline: %v", g.ActionDeadline)
	}
	if g.Scenario() != nil {
		t.Fatalf("completed game keeps an active scenario")
	}
}

func TestSettle_SupplyDisruptionDelaysShipment(t *testing.T) {
	g := newTestGame(20)
	rng := &scriptRand{}
	for round := 1; round <= 2; round++ {
		orderAll(t, g, 4)
		Settle(g, rng)
	}

	// Round 3 would normally deliver the round 1 order; the disruption
	// stretches the lag to 3 rounds.
	g.SetScenario(&game.ScenarioState{
		Type:            game.ScenarioSupplyDisruption,
		RoundsRemaining: 4,
	})
	orderAll(t, g, 4)
	Settle(g, rng)

	retailer := g.PlayerByRole(game.RoleRetailer)
	if got := retailer.Rounds[2].IncomingShipment; got != 0 {
		t.Fatalf("disrupted round 3 shipment = %d, want 0", got)
	}
}

func TestSettle_QualityIssueCapsFulfillment(t *testing.T) {
	g := newTestGame(20)
	g.BaseDemand = 8
	g.CurrentDemand = 8
	g.SetScenario(&game.ScenarioState{
		Type:            game.ScenarioQualityIssue,
		RoundsRemaining: 2,
	})
	orderAll(t, g, 4)

	Settle(g, &scriptRand{})

	retailer := g.PlayerByRole(game.RoleRetailer)
	// 12 available but only floor(12*0.8) = 9 sellable; demand 8 is met
	// and the unsold stock still carries forward at full count.
	if retailer.Rounds[0].Fulfilled != 8 {
		t.Fatalf("fulfilled = %d, want 8", retailer.Rounds[0].Fulfilled)
	}
	if retailer.Inventory != 4 {
		t.Fatalf("inventory = %d, want 4", retailer.Inventory)
	}

	g2 := newTestGame(20)
	g2.BaseDemand = 10
	g2.CurrentDemand = 10
	g2.SetScenario(&game.ScenarioState{
		Type:            game.ScenarioQualityIssue,
		RoundsRemaining: 2,
	})
	for i := range g2.Players {
		_ = g2.Players[i].RecordOrder(1, 4)
	}
	Settle(g2, &scriptRand{})

	r2 := g2.PlayerByRole(game.RoleRetailer)
	// Demand 10 against a sellable cap of 9: one unit backlogs even
	// though physical stock remains.
	if r2.Rounds[0].Fulfilled != 9 || r2.Backlog != 1 || r2.Inventory != 3 {
		t.Fatalf("fulfilled=%d inv=%d backlog=%d, want 9/3/1",
			r2.Rounds[0].Fulfilled, r2.Inventory, r2.Backlog)
	}
}

func TestSettle_DemandPropagatesUpstream(t *testing.T) {
	g := newTestGame(20)
	rng := &scriptRand{}

	// Round 1: retailer orders 7, everyone else 3.
	for i := range g.Players {
		v := 3
		if g.Players[i].Role == game.RoleRetailer {
			v = 7
		}
		if err := g.Players[i].RecordOrder(1, v); err != nil {
			t.Fatalf("record order: %v", err)
		}
	}
	Settle(g, rng)

	orderAll(t, g, 4)
	Settle(g, rng)

	wholesaler := g.PlayerByRole(game.RoleWholesaler)
	if wholesaler.Rounds[1].IncomingOrder != 7 {
		t.Fatalf("wholesaler round 2 demand = %d, want retailer's round 1 order 7", wholesaler.Rounds[1].IncomingOrder)
	}
	distributor := g.PlayerByRole(game.RoleDistributor)
	if distributor.Rounds[1].IncomingOrder != 3 {
		t.Fatalf("distributor round 2 demand = %d, want wholesaler's round 1 order 3", distributor.Rounds[1].IncomingOrder)
	}
}
