package api

import (
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/Moutabir-omar/MA-Orangegame/internal/constants"
	"github.com/Moutabir-omar/MA-Orangegame/internal/game"
	"github.com/Moutabir-omar/MA-Orangegame/internal/logging"
	"github.com/Moutabir-omar/MA-Orangegame/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateGamePayload struct {
	Name       string `json:"name"`
	Private    bool   `json:"private"`
	FillWithAI bool   `json:"fill_with_ai"`
	// Role is optional; when set the creator claims it immediately.
	Role string `json:"role"`

	// Optional overrides of the server defaults. ScenariosEnabled is a
	// pointer so an absent field falls back to the configured default.
	TotalRounds      int   `json:"total_rounds"`
	RoundTimeSeconds int   `json:"round_time_seconds"`
	ScenariosEnabled *bool `json:"scenarios_enabled"`
}

// CreateGame creates a new supply chain session and returns its join code.
// The creator becomes the host; host powers are derived from the stored
// CreatedBy column on every later request.
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req CreateGamePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email := sessionEmail(c)
	name := sessionName(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}

	if utf8.RuneCountInString(req.Name) > 64 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrGameNameExceeds})
		return
	}

	totalRounds := h.defaults.TotalRounds
	if req.TotalRounds != 0 {
		totalRounds = req.TotalRounds
	}
	roundTime := h.defaults.RoundTimeSeconds
	if req.RoundTimeSeconds != 0 {
		roundTime = req.RoundTimeSeconds
	}
	if totalRounds < 1 || totalRounds > 100 || roundTime < 10 || roundTime > 600 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRoundSetting})
		return
	}
	scenarios := h.defaults.ScenariosEnabled
	if req.ScenariosEnabled != nil {
		scenarios = *req.ScenariosEnabled
	}

	newGame := game.Game{
		Name:      req.Name,
		JoinCode:  generateJoinCode(),
		Private:   req.Private,
		CreatedBy: email,

		TotalRounds:         totalRounds,
		RoundTimeSeconds:    roundTime,
		ShippingDelayRounds: h.defaults.ShippingDelayRounds,
		InventoryUnitCost:   h.defaults.InventoryUnitCost,
		BacklogUnitCost:     h.defaults.BacklogUnitCost,
		InitialInventory:    h.defaults.InitialInventory,
		ScenariosEnabled:    scenarios,
		FillWithAI:          req.FillWithAI,

		Status:  game.StatusWaitingForPlayers,
		Message: "Game created. Waiting for players to claim roles.",
	}

	// Upsert user profile (name/email)
	_ = h.repo.UpsertUser(email, "", name)

	if err := h.repo.CreateGame(&newGame); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateGame})
		return
	}

	// Claim the creator's role in the same request when one was chosen.
	if req.Role != "" {
		if _, err := service.ClaimRole(h.repo, newGame.ID, req.Role, email, name); err != nil {
			h.writeClaimError(c, err)
			return
		}
	}

	logging.Info("game created", logging.Fields{
		constants.LogFieldGameID:   newGame.ID,
		constants.LogFieldJoinCode: newGame.JoinCode,
	})
	c.JSON(http.StatusCreated, gin.H{
		"game_id":   newGame.ID,
		"join_code": newGame.JoinCode,
	})
}

type JoinGamePayload struct {
	JoinCode string `json:"join_code"`
	Role     string `json:"role"`
}

// JoinGame claims a role in an existing game found by join code.
func (h *GameHandler) JoinGame(c *gin.Context) {
	var req JoinGamePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}

	code := normalizeJoinCode(req.JoinCode)
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameCode})
		return
	}
	g, err := h.repo.FindGameByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		return
	}
	if len(g.Players) >= len(game.Roles) {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGameFull})
		return
	}

	_ = h.repo.UpsertUser(email, "", sessionName(c))

	g2, err := service.ClaimRole(h.repo, g.ID, req.Role, email, sessionName(c))
	if err != nil {
		h.writeClaimError(c, err)
		return
	}

	if h.hub != nil {
		h.hub.Publish(g2.JoinCode, g2.Snapshot())
	}
	c.JSON(http.StatusOK, gin.H{
		"game_id":   g2.ID,
		"join_code": g2.JoinCode,
		"message":   "Successfully joined game",
	})
}

type ClaimRolePayload struct {
	Role string `json:"role"`
}

// ClaimRole assigns a free role to the session user in a lobby they are
// already viewing.
func (h *GameHandler) ClaimRole(c *gin.Context) {
	code := normalizeJoinCode(c.Param("gameCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameCode})
		return
	}
	var req ClaimRolePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	g, err := h.repo.FindGameByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		return
	}

	g2, err := service.ClaimRole(h.repo, g.ID, req.Role, email, sessionName(c))
	if err != nil {
		h.writeClaimError(c, err)
		return
	}

	if h.hub != nil {
		h.hub.Publish(g2.JoinCode, g2.Snapshot())
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role claimed", "role": req.Role})
}

func (h *GameHandler) writeClaimError(c *gin.Context, err error) {
	switch err {
	case service.ErrGameNotFound:
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
	case service.ErrGameStarted:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGameAlreadyStarted})
	case service.ErrUnknownRole:
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRole})
	case service.ErrRoleTaken:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrRoleAlreadyTaken})
	case service.ErrAlreadyInGame:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrAlreadyClaimedRole})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateGame})
	}
}

// StartGame opens round 1. Only the host may start; every role must be
// claimed (or the game configured to fill empty roles with AI).
func (h *GameHandler) StartGame(c *gin.Context) {
	code := normalizeJoinCode(c.Param("gameCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameCode})
		return
	}
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	short, err := h.repo.FindGameByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		return
	}
	g, err := h.repo.GetGameByID(short.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		return
	}
	if g.CreatedBy != email {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrOnlyHostMayStart})
		return
	}

	if err := service.StartGame(h.repo, g, h.rng, h.actionTimeout); err != nil {
		switch err {
		case service.ErrGameStarted:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGameAlreadyStarted})
		case service.ErrRolesUnclaimed:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrRolesUnclaimed})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateGame})
		}
		return
	}

	if h.hub != nil {
		h.hub.Publish(g.JoinCode, g.Snapshot())
	}
	logging.Info("game started", logging.Fields{
		constants.LogFieldGameID:   g.ID,
		constants.LogFieldJoinCode: g.JoinCode,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Game started", "round": g.Round})
}

// LeaveGame removes a player from a waiting room.
func (h *GameHandler) LeaveGame(c *gin.Context) {
	code := normalizeJoinCode(c.Param("gameCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameCode})
		return
	}
	g, err := h.repo.FindGameByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		return
	}
	if g.Status != game.StatusWaitingForPlayers {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrCannotLeaveAfterStart})
		return
	}
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	if err := h.repo.RemovePlayerByEmail(g.ID, email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRemovePlayer})
		return
	}
	// Reflect removal in the in-memory model to avoid re-attaching via
	// FullSaveAssociations.
	filtered := make([]game.Player, 0, len(g.Players))
	for _, p := range g.Players {
		if p.PlayerEmail != email || p.IsAI {
			filtered = append(filtered, p)
		}
	}
	g.Players = filtered
	g.Message = "A player left. Their role is open again."
	if err := h.repo.UpdateGame(g); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateGame})
		return
	}

	if h.hub != nil {
		h.hub.Publish(g.JoinCode, g.Snapshot())
	}
	c.JSON(http.StatusOK, gin.H{"message": "Player removed"})
}

// EndGame lets a participant end the session early. The game is marked
// completed where it stands; aggregate stats record a played (but not
// completed) game for each human.
func (h *GameHandler) EndGame(c *gin.Context) {
	code := normalizeJoinCode(c.Param("gameCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameCode})
		return
	}
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	short, err := h.repo.FindGameByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		return
	}
	g, err := h.repo.GetGameByID(short.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		return
	}
	if g.Status == game.StatusCompleted {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGameCompleted})
		return
	}

	quitter := g.PlayerByEmail(email)
	if quitter == nil && g.CreatedBy != email {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInThisGame})
		return
	}

	// Stats are folded in before the status flips: a game ended before its
	// final round counts as played, not completed.
	if g.Status == game.StatusInProgress {
		if err := h.repo.UpdateStatsOnGameEnd(g); err != nil {
			logging.Error("failed to update aggregate stats", err, logging.Fields{constants.LogFieldGameID: g.ID})
		}
	}

	g.Status = game.StatusCompleted
	g.Phase = game.PhaseResolved
	g.SetScenario(nil)
	g.ActionDeadline = time.Time{}
	if quitter != nil {
		g.Message = "Game ended early by " + quitter.PlayerName
	} else {
		g.Message = "Game ended by the host"
	}

	if err := h.repo.UpdateGame(g); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEndGame})
		return
	}

	if h.hub != nil {
		h.hub.Publish(g.JoinCode, g.Snapshot())
	}
	c.JSON(http.StatusOK, gin.H{"message": "Game ended"})
}
