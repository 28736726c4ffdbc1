package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orangegame_config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerAddress != ":8080" {
		t.Fatalf("address = %q", cfg.ServerAddress)
	}
	if cfg.Game.ShippingDelayRounds != 2 || cfg.Game.InventoryUnitCost != 5 || cfg.Game.BacklogUnitCost != 10 {
		t.Fatalf("game defaults wrong: %+v", cfg.Game)
	}
	if cfg.Game.InitialInventory != 12 || cfg.Game.TotalRounds != 20 {
		t.Fatalf("game defaults wrong: %+v", cfg.Game)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{
		"server": {"address": ":9090"},
		"action_timeout_seconds": 30,
		"public_games_ttl_minutes": 5,
		"game": {"total_rounds": 12, "round_time_seconds": 60, "scenarios_enabled": false}
	}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerAddress != ":9090" || cfg.ActionTimeout != 30*time.Second || cfg.PublicGamesTTL != 5*time.Minute {
		t.Fatalf("server overrides wrong: %+v", cfg)
	}
	if cfg.Game.TotalRounds != 12 || cfg.Game.RoundTimeSeconds != 60 || cfg.Game.ScenariosEnabled {
		t.Fatalf("game overrides wrong: %+v", cfg.Game)
	}
	// Unset game fields keep their defaults.
	if cfg.Game.ShippingDelayRounds != 2 {
		t.Fatalf("shipping delay = %d, want default 2", cfg.Game.ShippingDelayRounds)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, `{"game": {"total_rounds": -3}}`)); err == nil {
		t.Fatalf("negative total_rounds must fail validation")
	}
	if _, err := LoadConfig(writeConfig(t, `not json`)); err == nil {
		t.Fatalf("malformed JSON must fail")
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("missing file must fail")
	}
}
