package api

import (
	"errors"
	"net/http"

	"github.com/Moutabir-omar/MA-Orangegame/internal/constants"
	"github.com/Moutabir-omar/MA-Orangegame/internal/service"

	"github.com/gin-gonic/gin"
)

type OrderRequest struct {
	Round int `json:"round"`
	Value int `json:"value"`
}

// PlaceOrder stores the session player's replenishment order for the
// current round. When the last human order arrives the round settles in
// the same request.
func (h *GameHandler) PlaceOrder(c *gin.Context) {
	code := normalizeJoinCode(c.Param("gameCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameCode})
		return
	}
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
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

	g, settled, err := service.PlaceOrder(h.repo, h.hub, h.rng, short.ID, email, req.Round, req.Value, h.actionTimeout)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		case errors.Is(err, service.ErrGameCompleted):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGameCompleted})
		case errors.Is(err, service.ErrGameNotInProgress):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGameNotInProgress})
		case errors.Is(err, service.ErrRoundSettling):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrRoundSettling})
		case errors.Is(err, service.ErrPlayerNotInGame):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInThisGame})
		case errors.Is(err, service.ErrWrongRound):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrWrongRound})
		case errors.Is(err, service.ErrInvalidOrder):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidOrderValue})
		case errors.Is(err, service.ErrDuplicateOrder):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrDuplicateOrder})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreOrder})
		}
		return
	}

	if settled {
		c.JSON(http.StatusOK, gin.H{"message": "Round settled", "round": g.Round, "status": g.Status})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "Order stored. Waiting for the other roles."})
	}
}

type AdvanceRequest struct {
	Force bool `json:"force"`
}

// AdvanceRound settles the current round. A forced advance (settling
// absent players at order zero) is a host power; without force the call
// succeeds only once every human order is in.
func (h *GameHandler) AdvanceRound(c *gin.Context) {
	code := normalizeJoinCode(c.Param("gameCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameCode})
		return
	}
	var req AdvanceRequest
	// Body is optional; absence means a plain advance.
	_ = c.ShouldBindJSON(&req)

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
	if short.PlayerByEmail(email) == nil && short.CreatedBy != email {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInThisGame})
		return
	}
	if req.Force && short.CreatedBy != email {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrOnlyHostMayAdvance})
		return
	}

	g, err := service.AdvanceRound(h.repo, h.hub, h.rng, short.ID, req.Force, h.actionTimeout)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		case errors.Is(err, service.ErrGameCompleted):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGameCompleted})
		case errors.Is(err, service.ErrGameNotInProgress):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGameNotInProgress})
		case errors.Is(err, service.ErrOrdersPending):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrOrdersPending})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedAdvanceRound})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Round settled", "round": g.Round, "status": g.Status})
}
