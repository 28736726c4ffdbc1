package engine

import "github.com/Moutabir-omar/MA-Orangegame/internal/game"

// AI ordering policy: a deterministic base-stock heuristic.
//
// Forecast demand with a moving average of recent incoming orders, track
// goods already ordered but not yet delivered (the pipeline), and order
// whatever is missing to hold the inventory position at forecast over the
// lead time plus a small safety buffer. Deterministic on purpose: AI
// behavior must be reproducible from the ledger history alone.

const (
	// DefaultForecastWindow is the moving-average span in rounds.
	DefaultForecastWindow = 4
	// DefaultSafetyStock is the buffer added to the target position.
	DefaultSafetyStock = 4
)

// SuggestOrder returns the order an AI-owned ledger places this round.
func SuggestOrder(p *game.Player, leadTime, safetyStock, window int) int {
	if len(p.Rounds) == 0 {
		// No history yet: cover the demand midpoint over the lead time.
		return (DemandMin + DemandMax) / 2
	}

	forecast := forecastDemand(p.Rounds, window)

	// pipeline = orders placed minus shipments received, never negative
	pipeline := 0
	for i := range p.Rounds {
		pipeline += p.Rounds[i].OutgoingOrder
		pipeline -= p.Rounds[i].IncomingShipment
		if pipeline < 0 {
			pipeline = 0
		}
	}

	target := forecast*(leadTime+1) + safetyStock
	position := p.Inventory - p.Backlog + pipeline

	order := target - position
	if order < 0 {
		order = 0
	}
	return order
}

func forecastDemand(rounds []game.PlayerRound, window int) int {
	if window < 1 {
		window = 1
	}
	start := len(rounds) - window
	if start < 0 {
		start = 0
	}
	sum, count := 0, 0
	for i := start; i < len(rounds); i++ {
		sum += rounds[i].IncomingOrder
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / count
}
