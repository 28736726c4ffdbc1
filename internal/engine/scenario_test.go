package engine

import (
	"testing"

	"github.com/Moutabir-omar/MA-Orangegame/internal/game"
)

func TestDrawBaseDemand_Bounds(t *testing.T) {
	rng := NewRand(1)
	for i := 0; i < 1000; i++ {
		d := DrawBaseDemand(rng)
		if d < DemandMin || d > DemandMax {
			t.Fatalf("demand %d outside [%d,%d]", d, DemandMin, DemandMax)
		}
	}
}

func TestNextScenario_Disabled(t *testing.T) {
	s, demand := NextScenario(nil, 4, false, &scriptRand{floats: []float64{0.0}})
	if s != nil {
		t.Fatalf("scenarios disabled but one triggered: %+v", s)
	}
	if demand != 4 {
		t.Fatalf("demand = %d, want base 4", demand)
	}
}

func TestNextScenario_NoTriggerAboveProbability(t *testing.T) {
	s, demand := NextScenario(nil, 5, true, &scriptRand{floats: []float64{0.10}})
	if s != nil {
		t.Fatalf("roll at the threshold must not trigger, got %+v", s)
	}
	if demand != 5 {
		t.Fatalf("demand = %d, want 5", demand)
	}
}

func TestNextScenario_TriggersDemandSpike(t *testing.T) {
	rng := &scriptRand{floats: []float64{0.05}, ints: []int{0}}
	s, demand := NextScenario(nil, 4, true, rng)
	if s == nil || s.Type != game.ScenarioDemandSpike {
		t.Fatalf("expected demand spike, got %+v", s)
	}
	if s.RoundsRemaining != 3 {
		t.Fatalf("spike lasts %d rounds, want 3", s.RoundsRemaining)
	}
	// 4 * 1.5 = 6
	if demand != 6 {
		t.Fatalf("adjusted demand = %d, want 6", demand)
	}
}

func TestNextScenario_SpikeRoundsHalfUp(t *testing.T) {
	rng := &scriptRand{floats: []float64{0.05}, ints: []int{0}}
	_, demand := NextScenario(nil, 5, true, rng)
	// 5 * 1.5 = 7.5 rounds up to 8
	if demand != 8 {
		t.Fatalf("adjusted demand = %d, want 8", demand)
	}
}

func TestNextScenario_DecayAndClear(t *testing.T) {
	prev := &game.ScenarioState{Type: game.ScenarioSupplyDisruption, RoundsRemaining: 4}

	s, demand := NextScenario(prev, 3, true, &scriptRand{})
	if s == nil || s.RoundsRemaining != 3 {
		t.Fatalf("expected decay to 3 rounds, got %+v", s)
	}
	if demand != 3 {
		t.Fatalf("disruption must not change demand, got %d", demand)
	}
	if prev.RoundsRemaining != 4 {
		t.Fatalf("input scenario mutated: %+v", prev)
	}

	last := &game.ScenarioState{Type: game.ScenarioQualityIssue, RoundsRemaining: 1}
	s, _ = NextScenario(last, 3, true, &scriptRand{floats: []float64{0.0}})
	if s != nil {
		t.Fatalf("scenario at 1 remaining must clear, got %+v", s)
	}
}

func TestNextScenario_ActiveSpikeKeepsAdjustingDemand(t *testing.T) {
	prev := &game.ScenarioState{Type: game.ScenarioDemandSpike, RoundsRemaining: 3}
	s, demand := NextScenario(prev, 8, true, &scriptRand{})
	if s == nil || s.RoundsRemaining != 2 {
		t.Fatalf("expected spike with 2 rounds left, got %+v", s)
	}
	if demand != 12 {
		t.Fatalf("adjusted demand = %d, want 12", demand)
	}
}
