package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	ActionTimeoutSeconds  int `json:"action_timeout_seconds"`
	PublicGamesTTLMinutes int `json:"public_games_ttl_minutes"`

	Game *struct {
		TotalRounds         int  `json:"total_rounds"`
		RoundTimeSeconds    int  `json:"round_time_seconds"`
		ShippingDelayRounds int  `json:"shipping_delay_rounds"`
		InventoryUnitCost   int  `json:"inventory_unit_cost"`
		BacklogUnitCost     int  `json:"backlog_unit_cost"`
		InitialInventory    int  `json:"initial_inventory"`
		ScenariosEnabled    bool `json:"scenarios_enabled"`
	} `json:"game"`
}

// GameDefaults are the per-game configuration values copied onto every
// created game. They are immutable once a game exists.
type GameDefaults struct {
	TotalRounds         int
	RoundTimeSeconds    int
	ShippingDelayRounds int
	InventoryUnitCost   int
	BacklogUnitCost     int
	InitialInventory    int
	ScenariosEnabled    bool
}

// LoadedConfig is the validated server configuration.
type LoadedConfig struct {
	ServerAddress  string
	ActionTimeout  time.Duration
	PublicGamesTTL time.Duration
	Game           GameDefaults
}

// LoadConfig reads and validates the configuration file at path.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	out := &LoadedConfig{
		ServerAddress:  ":8080",
		ActionTimeout:  60 * time.Second,
		PublicGamesTTL: 30 * time.Minute,
		Game: GameDefaults{
			TotalRounds:         20,
			RoundTimeSeconds:    45,
			ShippingDelayRounds: 2,
			InventoryUnitCost:   5,
			BacklogUnitCost:     10,
			InitialInventory:    12,
			ScenariosEnabled:    true,
		},
	}

	if rc.Server != nil && rc.Server.Address != "" {
		out.ServerAddress = rc.Server.Address
	}
	if rc.ActionTimeoutSeconds > 0 {
		out.ActionTimeout = time.Duration(rc.ActionTimeoutSeconds) * time.Second
	}
	if rc.PublicGamesTTLMinutes > 0 {
		out.PublicGamesTTL = time.Duration(rc.PublicGamesTTLMinutes) * time.Minute
	}
	if gc := rc.Game; gc != nil {
		if gc.TotalRounds != 0 {
			out.Game.TotalRounds = gc.TotalRounds
		}
		if gc.RoundTimeSeconds != 0 {
			out.Game.RoundTimeSeconds = gc.RoundTimeSeconds
		}
		if gc.ShippingDelayRounds != 0 {
			out.Game.ShippingDelayRounds = gc.ShippingDelayRounds
		}
		if gc.InventoryUnitCost != 0 {
			out.Game.InventoryUnitCost = gc.InventoryUnitCost
		}
		if gc.BacklogUnitCost != 0 {
			out.Game.BacklogUnitCost = gc.BacklogUnitCost
		}
		if gc.InitialInventory != 0 {
			out.Game.InitialInventory = gc.InitialInventory
		}
		out.Game.ScenariosEnabled = gc.ScenariosEnabled
	}

	if out.Game.TotalRounds < 1 {
		return nil, fmt.Errorf("config file %s: total_rounds must be positive", path)
	}
	if out.Game.RoundTimeSeconds < 1 {
		return nil, fmt.Errorf("config file %s: round_time_seconds must be positive", path)
	}
	if out.Game.ShippingDelayRounds < 1 {
		return nil, fmt.Errorf("config file %s: shipping_delay_rounds must be at least 1", path)
	}
	if out.Game.InventoryUnitCost < 0 || out.Game.BacklogUnitCost < 0 {
		return nil, fmt.Errorf("config file %s: unit costs must be non-negative", path)
	}
	if out.Game.InitialInventory < 0 {
		return nil, fmt.Errorf("config file %s: initial_inventory must be non-negative", path)
	}

	return out, nil
}
