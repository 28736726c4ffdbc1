package game

// RoundSnapshot is the externally visible state of a session, rebuilt at
// every round boundary. It is a copy: broadcast and persistence consumers
// never hold references into live ledgers.
type RoundSnapshot struct {
	GameID        uint                  `json:"game_id"`
	JoinCode      string                `json:"join_code"`
	Status        string                `json:"status"`
	Phase         string                `json:"phase"`
	Round         int                   `json:"round"`
	TotalRounds   int                   `json:"total_rounds"`
	CurrentDemand int                   `json:"current_demand"`
	Scenario      *ScenarioState        `json:"scenario_active,omitempty"`
	Players       map[string]LedgerView `json:"players"`
}

// LedgerView is the per-role slice of a snapshot.
type LedgerView struct {
	Role           string `json:"role"`
	PlayerName     string `json:"player_name"`
	IsAI           bool   `json:"is_ai"`
	Inventory      int    `json:"inventory"`
	Backlog        int    `json:"backlog"`
	CumulativeCost int    `json:"cumulative_cost"`
	HasOrdered     bool   `json:"has_ordered"`
	LastRoundCost  int    `json:"last_round_cost"`
	LastShipment   int    `json:"last_shipment"`
	LastFulfilled  int    `json:"last_fulfilled"`
}

// Snapshot builds the copy-out view of the current round.
func (g *Game) Snapshot() RoundSnapshot {
	snap := RoundSnapshot{
		GameID:        g.ID,
		JoinCode:      g.JoinCode,
		Status:        g.Status,
		Phase:         g.Phase,
		Round:         g.Round,
		TotalRounds:   g.TotalRounds,
		CurrentDemand: g.CurrentDemand,
		Scenario:      g.Scenario(),
		Players:       make(map[string]LedgerView, len(g.Players)),
	}
	for i := range g.Players {
		p := &g.Players[i]
		v := LedgerView{
			Role:           p.Role,
			PlayerName:     p.PlayerName,
			IsAI:           p.IsAI,
			Inventory:      p.Inventory,
			Backlog:        p.Backlog,
			CumulativeCost: p.CumulativeCost,
			HasOrdered:     p.HasOrdered,
		}
		if n := len(p.Rounds); n > 0 {
			last := p.Rounds[n-1]
			v.LastRoundCost = last.RoundCost
			v.LastShipment = last.IncomingShipment
			v.LastFulfilled = last.Fulfilled
		}
		snap.Players[p.Role] = v
	}
	return snap
}
