package game

import (
	"time"

	"gorm.io/gorm"
)

// Game statuses and phases use plain strings so GORM stores them as TEXT
// and JSON responses stay readable.
const (
	StatusWaitingForPlayers = "waiting_for_players"
	StatusInProgress        = "in_progress"
	StatusCompleted         = "completed"
)

const (
	// PhaseCollecting: the round is open and orders are being gathered.
	PhaseCollecting = "collecting"
	// PhaseSettling: all orders are in (or the timer fired); the round
	// outcome is being computed. Orders are rejected in this phase.
	PhaseSettling = "settling"
	// PhaseResolved: the game reached its final round.
	PhaseResolved = "resolved"
)

// Game is one supply chain session. Configuration columns are written once
// at creation and never mutated afterwards; the remaining columns are the
// live round state owned by the service layer.
type Game struct {
	gorm.Model
	Name     string `json:"name" gorm:"size:64"`
	JoinCode string `json:"join_code" gorm:"unique"`
	Private  bool   `json:"private"`
	// CreatedBy is the host identity, set once at creation. Host powers
	// (start, forced advance, end) are derived from this column and never
	// from client-side state.
	CreatedBy string `json:"created_by"`

	// Immutable game configuration
	TotalRounds         int  `json:"total_rounds"`
	RoundTimeSeconds    int  `json:"round_time_seconds"`
	ShippingDelayRounds int  `json:"shipping_delay_rounds"`
	InventoryUnitCost   int  `json:"inventory_unit_cost"`
	BacklogUnitCost     int  `json:"backlog_unit_cost"`
	InitialInventory    int  `json:"initial_inventory"`
	ScenariosEnabled    bool `json:"scenarios_enabled"`
	FillWithAI          bool `json:"fill_with_ai"`

	// Live round state
	Status         string    `json:"status"`
	Phase          string    `json:"phase"`
	Round          int       `json:"round"`
	BaseDemand     int       `json:"base_demand"`
	CurrentDemand  int       `json:"current_demand"`
	Message        string    `json:"message"`
	ActionDeadline time.Time `json:"action_deadline"`

	// Active scenario, empty type when none. Kept as flat columns instead
	// of a serialized blob so the SQLite rows stay queryable.
	ScenarioType            string `json:"scenario_type"`
	ScenarioDescription     string `json:"scenario_description"`
	ScenarioEffect          string `json:"scenario_effect"`
	ScenarioRoundsRemaining int    `json:"scenario_rounds_remaining"`

	Players []Player `json:"players"`
}

// Scenario returns the active scenario or nil when none is in effect.
func (g *Game) Scenario() *ScenarioState {
	if g.ScenarioType == "" {
		return nil
	}
	return &ScenarioState{
		Type:            g.ScenarioType,
		Description:     g.ScenarioDescription,
		Effect:          g.ScenarioEffect,
		RoundsRemaining: g.ScenarioRoundsRemaining,
	}
}

// SetScenario writes the scenario columns; nil clears them.
func (g *Game) SetScenario(s *ScenarioState) {
	if s == nil {
		g.ScenarioType = ""
		g.ScenarioDescription = ""
		g.ScenarioEffect = ""
		g.ScenarioRoundsRemaining = 0
		return
	}
	g.ScenarioType = s.Type
	g.ScenarioDescription = s.Description
	g.ScenarioEffect = s.Effect
	g.ScenarioRoundsRemaining = s.RoundsRemaining
}

// PlayerByRole returns the ledger for a role, or nil if the role is
// unclaimed.
func (g *Game) PlayerByRole(role string) *Player {
	for i := range g.Players {
		if g.Players[i].Role == role {
			return &g.Players[i]
		}
	}
	return nil
}

// PlayerByEmail returns the ledger owned by the given identity, or nil.
func (g *Game) PlayerByEmail(email string) *Player {
	for i := range g.Players {
		if !g.Players[i].IsAI && g.Players[i].PlayerEmail == email {
			return &g.Players[i]
		}
	}
	return nil
}

// ScenarioState describes a temporary stochastic disruption. At most one
// is active per game at a time.
type ScenarioState struct {
	Type            string `json:"type"`
	Description     string `json:"description"`
	Effect          string `json:"effect"`
	RoundsRemaining int    `json:"rounds_remaining"`
}

// Scenario types
const (
	ScenarioDemandSpike      = "demandSpike"
	ScenarioSupplyDisruption = "supplyDisruption"
	ScenarioQualityIssue     = "qualityIssue"
)

// Player is the per-role ledger. One row exists per claimed role; AI-owned
// ledgers carry a synthetic UUID identity. All mutations of the running
// totals happen inside the engine's settle step.
type Player struct {
	gorm.Model
	GameID      uint   `json:"-"`
	Role        string `json:"role" gorm:"index"`
	PlayerUUID  string `json:"player_uuid"`
	PlayerName  string `json:"player_name"`
	PlayerEmail string `json:"player_email"`
	IsAI        bool   `json:"is_ai"`

	Inventory      int `json:"inventory"`
	Backlog        int `json:"backlog"`
	CumulativeCost int `json:"cumulative_cost"`

	// Current-round order submission state, reset at every round boundary.
	HasOrdered   bool `json:"has_ordered"`
	PendingOrder int  `json:"pending_order"`

	Rounds []PlayerRound `json:"rounds"`
}

// Store per-game participants in a dedicated table for clarity
func (Player) TableName() string { return "game_players" }

// CurrentRoundIndex is the round the ledger expects to settle next.
// History rows are strictly sequential, so this is len(Rounds)+1.
func (p *Player) CurrentRoundIndex() int { return len(p.Rounds) + 1 }

// OrderAt returns the order this player placed in the given settled round,
// or 0 when the round predates the game or no order was placed.
func (p *Player) OrderAt(round int) int {
	if round < 1 || round > len(p.Rounds) {
		return 0
	}
	return p.Rounds[round-1].OutgoingOrder
}

// PlayerRound is one settled round for one role: the full arithmetic trail
// (demand in, shipment in, fulfilled, order out, costs). Rows are
// append-only and indexed by round starting at 1.
type PlayerRound struct {
	gorm.Model
	PlayerID uint `json:"-" gorm:"index"`
	GameID   uint `json:"-" gorm:"index"`
	Round    int  `json:"round"`

	IncomingOrder    int `json:"incoming_order"`
	IncomingShipment int `json:"incoming_shipment"`
	Fulfilled        int `json:"fulfilled"`
	OutgoingOrder    int `json:"outgoing_order"`
	Inventory        int `json:"inventory"`
	Backlog          int `json:"backlog"`
	RoundCost        int `json:"round_cost"`
	CumulativeCost   int `json:"cumulative_cost"`
}

func (PlayerRound) TableName() string { return "player_rounds" }

// PlayerOrder is the append-only record of a placed order: a fact, not a
// mutation of engine state. One row per (game, player, round).
type PlayerOrder struct {
	gorm.Model
	GameID   uint   `json:"-" gorm:"index;uniqueIndex:idx_player_orders_once"`
	PlayerID uint   `json:"-" gorm:"uniqueIndex:idx_player_orders_once"`
	Role     string `json:"role"`
	Round    int    `json:"round" gorm:"uniqueIndex:idx_player_orders_once"`
	Value    int    `json:"value"`
}

func (PlayerOrder) TableName() string { return "player_orders" }

// User stores unique player identity and aggregate stats across games.
type User struct {
	gorm.Model
	PlayerUUID     string `gorm:"index"`
	PlayerName     string
	Email          string `gorm:"uniqueIndex"`
	GamesPlayed    int
	GamesCompleted int
	// BestTotalCost is the lowest cumulative cost achieved in a completed
	// game (lower is better). Zero means no completed game yet.
	BestTotalCost int
	TotalCost     int
}

// Unify global users table name as "player_profiles"
func (User) TableName() string { return "player_profiles" }
