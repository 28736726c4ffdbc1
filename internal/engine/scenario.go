package engine

import "github.com/Moutabir-omar/MA-Orangegame/internal/game"

// Probability that a new scenario triggers on a round with no active one.
const scenarioProbability = 0.10

// DemandMin and DemandMax bound the uniform base demand draw, inclusive.
const (
	DemandMin = 2
	DemandMax = 8
)

// DrawBaseDemand draws the raw customer demand for a round, uniform on
// [DemandMin, DemandMax].
func DrawBaseDemand(rng Rand) int {
	return DemandMin + rng.Intn(DemandMax-DemandMin+1)
}

func scenarioTemplates() []game.ScenarioState {
	return []game.ScenarioState{
		{
			Type:            game.ScenarioDemandSpike,
			Description:     "Sudden Demand Spike",
			Effect:          "Customer demand increased by 50% for the next 3 rounds",
			RoundsRemaining: 3,
		},
		{
			Type:            game.ScenarioSupplyDisruption,
			Description:     "Supply Chain Disruption",
			Effect:          "Shipping delays increased by 1 round for the next 4 rounds",
			RoundsRemaining: 4,
		},
		{
			Type:            game.ScenarioQualityIssue,
			Description:     "Product Quality Issue",
			Effect:          "Return rate increased, effective inventory reduced by 20% for 2 rounds",
			RoundsRemaining: 2,
		},
	}
}

// spikeDemand applies the demand-spike multiplier, rounding half up.
func spikeDemand(baseDemand int) int {
	return (baseDemand*3 + 1) / 2
}

// NextScenario advances the scenario state for a new round and returns the
// state together with the demand the retailer will face. With no active
// scenario there is a 10% chance of drawing one of the three templates
// uniformly; an active scenario decays by one round and clears at zero.
func NextScenario(prev *game.ScenarioState, baseDemand int, enabled bool, rng Rand) (*game.ScenarioState, int) {
	if !enabled {
		return nil, baseDemand
	}

	if prev == nil {
		if rng.Float64() >= scenarioProbability {
			return nil, baseDemand
		}
		templates := scenarioTemplates()
		s := templates[rng.Intn(len(templates))]
		if s.Type == game.ScenarioDemandSpike {
			return &s, spikeDemand(baseDemand)
		}
		return &s, baseDemand
	}

	next := *prev
	next.RoundsRemaining--
	if next.RoundsRemaining <= 0 {
		return nil, baseDemand
	}
	if next.Type == game.ScenarioDemandSpike {
		return &next, spikeDemand(baseDemand)
	}
	return &next, baseDemand
}
