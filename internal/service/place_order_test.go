package service

import (
	"errors"
	"testing"
	"time"

	"github.com/Moutabir-omar/MA-Orangegame/internal/game"
)

// scriptRand keeps demand at 4 and never triggers a scenario.
type scriptRand struct{}

func (scriptRand) Intn(n int) int   { return 2 % n }
func (scriptRand) Float64() float64 { return 0.99 }

type mockRepo struct {
	games       map[uint]*game.Game
	orders      []game.PlayerOrder
	updateErr   error
	statsCalled bool
}

func (m *mockRepo) GetGameByID(id uint) (*game.Game, error) {
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, ErrGameNotFound
}

func (m *mockRepo) UpdateGame(g *game.Game) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.games[g.ID] = g
	return nil
}

func (m *mockRepo) AppendOrder(o *game.PlayerOrder) error {
	for i := range m.orders {
		e := &m.orders[i]
		if e.GameID == o.GameID && e.PlayerID == o.PlayerID && e.Round == o.Round {
			return nil
		}
	}
	m.orders = append(m.orders, *o)
	return nil
}

func (m *mockRepo) UpdateStatsOnGameEnd(g *game.Game) error {
	m.statsCalled = true
	return nil
}

type mockHub struct {
	published []game.RoundSnapshot
}

func (m *mockHub) Publish(joinCode string, snap game.RoundSnapshot) {
	m.published = append(m.published, snap)
}

// newRunningGame builds an in-progress session on round 1 with the given
// human role assignments; the remaining roles are AI-owned.
func newRunningGame(id uint, humans map[string]string) *game.Game {
	g := &game.Game{
		JoinCode:            "ABCDEF",
		TotalRounds:         20,
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
	g.ID = id
	for _, role := range game.Roles {
		p := game.Player{Role: role, Inventory: 12, IsAI: true, PlayerName: "AI"}
		p.ID = uint(len(g.Players) + 1)
		if email, ok := humans[role]; ok {
			p.IsAI = false
			p.PlayerEmail = email
			p.PlayerName = email
		}
		g.Players = append(g.Players, p)
	}
	return g
}

func TestPlaceOrder_WaitsForEveryHuman(t *testing.T) {
	g := newRunningGame(7, map[string]string{
		game.RoleRetailer:   "r@e.com",
		game.RoleWholesaler: "w@e.com",
	})
	mr := &mockRepo{games: map[uint]*game.Game{7: g}}
	hub := &mockHub{}

	_, settled, err := PlaceOrder(mr, hub, scriptRand{}, 7, "r@e.com", 1, 6, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settled {
		t.Fatalf("round settled with a human order still missing")
	}
	if len(hub.published) != 0 {
		t.Fatalf("nothing should be broadcast before the round settles")
	}

	g2, settled, err := PlaceOrder(mr, hub, scriptRand{}, 7, "w@e.com", 1, 4, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !settled {
		t.Fatalf("expected the last human order to settle the round")
	}
	if g2.Round != 2 {
		t.Fatalf("round = %d, want 2", g2.Round)
	}
	if len(hub.published) != 1 {
		t.Fatalf("expected one snapshot broadcast, got %d", len(hub.published))
	}

	// The AI roles ordered at settle time, from the policy.
	for i := range g2.Players {
		p := &g2.Players[i]
		if p.IsAI && p.Rounds[0].OutgoingOrder == 0 {
			t.Fatalf("AI %s placed no order", p.Role)
		}
	}
	// Every order (human and AI) landed in the append-only log.
	if len(mr.orders) != 4 {
		t.Fatalf("order log has %d rows, want 4", len(mr.orders))
	}
}

func TestPlaceOrder_Validation(t *testing.T) {
	g := newRunningGame(9, map[string]string{
		game.RoleRetailer:   "r@e.com",
		game.RoleWholesaler: "w@e.com",
	})
	mr := &mockRepo{games: map[uint]*game.Game{9: g}}

	if _, _, err := PlaceOrder(mr, nil, scriptRand{}, 9, "stranger@e.com", 1, 4, time.Minute); err != ErrPlayerNotInGame {
		t.Fatalf("stranger: got %v, want ErrPlayerNotInGame", err)
	}
	if _, _, err := PlaceOrder(mr, nil, scriptRand{}, 9, "r@e.com", 2, 4, time.Minute); err != ErrWrongRound {
		t.Fatalf("future round: got %v, want ErrWrongRound", err)
	}
	if _, _, err := PlaceOrder(mr, nil, scriptRand{}, 9, "r@e.com", 1, -3, time.Minute); err != ErrInvalidOrder {
		t.Fatalf("negative: got %v, want ErrInvalidOrder", err)
	}
	if _, _, err := PlaceOrder(mr, nil, scriptRand{}, 9, "r@e.com", 1, 4, time.Minute); err != nil {
		t.Fatalf("valid order rejected: %v", err)
	}
	if _, _, err := PlaceOrder(mr, nil, scriptRand{}, 9, "r@e.com", 1, 5, time.Minute); err != ErrDuplicateOrder {
		t.Fatalf("duplicate: got %v, want ErrDuplicateOrder", err)
	}
}

func TestPlaceOrder_CompletedGame(t *testing.T) {
	g := newRunningGame(11, map[string]string{game.RoleRetailer: "r@e.com"})
	g.Status = game.StatusCompleted
	g.Phase = game.PhaseResolved
	mr := &mockRepo{games: map[uint]*game.Game{11: g}}

	if _, _, err := PlaceOrder(mr, nil, scriptRand{}, 11, "r@e.com", 1, 4, time.Minute); err != ErrGameCompleted {
		t.Fatalf("got %v, want ErrGameCompleted", err)
	}
}

func TestAdvanceRound_RequiresOrdersUnlessForced(t *testing.T) {
	g := newRunningGame(13, map[string]string{game.RoleRetailer: "r@e.com"})
	mr := &mockRepo{games: map[uint]*game.Game{13: g}}

	if _, err := AdvanceRound(mr, nil, scriptRand{}, 13, false, time.Minute); err != ErrOrdersPending {
		t.Fatalf("got %v, want ErrOrdersPending", err)
	}

	g2, err := AdvanceRound(mr, nil, scriptRand{}, 13, true, time.Minute)
	if err != nil {
		t.Fatalf("forced advance failed: %v", err)
	}
	if g2.Round != 2 {
		t.Fatalf("round = %d, want 2", g2.Round)
	}
	retailer := g2.PlayerByRole(game.RoleRetailer)
	if retailer.Rounds[0].OutgoingOrder != 0 {
		t.Fatalf("silent human settled at order %d, want 0", retailer.Rounds[0].OutgoingOrder)
	}
}

func TestAdvanceRound_PersistenceFailure(t *testing.T) {
	g := newRunningGame(15, map[string]string{game.RoleRetailer: "r@e.com"})
	mr := &mockRepo{games: map[uint]*game.Game{15: g}, updateErr: errors.New("disk full")}

	_, err := AdvanceRound(mr, nil, scriptRand{}, 15, true, time.Minute)
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("got %v, want ErrPersistence", err)
	}
}

func TestAdvanceRound_FinalRoundUpdatesStats(t *testing.T) {
	g := newRunningGame(17, map[string]string{game.RoleRetailer: "r@e.com"})
	g.TotalRounds = 1
	mr := &mockRepo{games: map[uint]*game.Game{17: g}}

	g2, err := AdvanceRound(mr, nil, scriptRand{}, 17, true, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g2.Status != game.StatusCompleted {
		t.Fatalf("status = %s, want completed", g2.Status)
	}
	if !mr.statsCalled {
		t.Fatalf("completed game must fold into aggregate stats")
	}

	if _, err := AdvanceRound(mr, nil, scriptRand{}, 17, true, time.Minute); err != ErrGameCompleted {
		t.Fatalf("advancing a completed game: got %v, want ErrGameCompleted", err)
	}
}
