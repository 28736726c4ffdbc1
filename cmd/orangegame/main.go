package main

import (
	"os"
	"time"

	"github.com/Moutabir-omar/MA-Orangegame/internal/api"
	"github.com/Moutabir-omar/MA-Orangegame/internal/broadcast"
	"github.com/Moutabir-omar/MA-Orangegame/internal/constants"
	"github.com/Moutabir-omar/MA-Orangegame/internal/engine"
	"github.com/Moutabir-omar/MA-Orangegame/internal/logging"

	"github.com/gin-gonic/gin"
)

func main() {
	checkEnvVars([]string{constants.EnvSessionSecret, constants.EnvGoogleClientID, constants.EnvGoogleClientSecret})

	// Path may be provided via ORANGEGAME_CONFIG or defaults to
	// ./orangegame_config.json in the current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./orangegame_config.json"
	}
	cfg := loadConfigOrExit(configPath)

	// Allow the DB path to be configured via ORANGEGAME_DB. Default to a
	// `data/` directory inside the module for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/orangegame.db"
	}
	repo := createRepositoryOrExit(dbPath, cfg.PublicGamesTTL)

	hub := broadcast.NewHub()
	rng := engine.NewRand(time.Now().UnixNano())
	handler := api.NewGameHandler(repo, hub, rng, cfg.ActionTimeout, cfg.Game)
	authHandler := api.NewAuthHandler(repo)

	startTimeoutScanner(repo, hub, rng, cfg.ActionTimeout)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.GET(constants.RoutePublicGames, handler.ListPublicGames)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET(constants.RouteGameWS, handler.GameSocket)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.GET(constants.RoutePlayerStats, handler.GetPlayerStats)
		protected.POST(constants.RoutePlayerStats, handler.UpdatePlayerProfile)

		protected.POST(constants.RouteGames, handler.CreateGame)
		protected.POST(constants.RouteGamesJoin, handler.JoinGame)
		protected.GET(constants.RouteGameByCode, handler.GetGame)
		protected.POST(constants.RouteGameClaimRole, handler.ClaimRole)
		protected.POST(constants.RouteGameStart, handler.StartGame)
		protected.POST(constants.RouteGameLeave, handler.LeaveGame)
		protected.POST(constants.RouteGameEnd, handler.EndGame)
		protected.POST(constants.RouteGameOrders, handler.PlaceOrder)
		protected.POST(constants.RouteGameAdvance, handler.AdvanceRound)
		protected.GET(constants.RouteGameSnapshot, handler.GetSnapshot)
		protected.GET(constants.RouteGameHistory, handler.GetHistory)
		protected.GET(constants.RouteGameExport, handler.ExportGame)
	}

	router.POST(constants.RouteAuthGoogleCallBack, authHandler.GoogleOAuthCallback)

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}
