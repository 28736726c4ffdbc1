package main

import (
	"time"

	"github.com/Moutabir-omar/MA-Orangegame/internal/broadcast"
	"github.com/Moutabir-omar/MA-Orangegame/internal/engine"
	"github.com/Moutabir-omar/MA-Orangegame/internal/logging"
	"github.com/Moutabir-omar/MA-Orangegame/internal/service"
	"github.com/Moutabir-omar/MA-Orangegame/internal/storage"
)

// startTimeoutScanner watches for rounds whose timer elapsed and
// force-advances them so one silent player cannot stall a session.
func startTimeoutScanner(repo storage.Repository, hub *broadcast.Hub, rng engine.Rand, actionTimeout time.Duration) {
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			games, err := repo.FindTimedOutGames(now)
			if err != nil {
				logging.Error("timeout scanner failed", err, nil)
				continue
			}
			// process each game sequentially (keeps DB safe under SQLite)
			for i := range games {
				gg, err := repo.GetGameByID(games[i].ID)
				if err != nil {
					continue
				}
				if err := service.HandleTimedOutGame(repo, hub, rng, gg, actionTimeout); err != nil {
					logging.Error("failed to advance timed-out game", err, logging.Fields{"game_id": gg.ID})
				}
			}
		}
	}()
}
