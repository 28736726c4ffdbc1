package api

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/Moutabir-omar/MA-Orangegame/internal/constants"
	"github.com/Moutabir-omar/MA-Orangegame/internal/game"

	"github.com/gin-gonic/gin"
)

var exportHeader = []string{
	"round", "role", "player", "incoming_order", "incoming_shipment",
	"fulfilled", "outgoing_order", "inventory", "backlog",
	"round_cost", "cumulative_cost",
}

// ExportGame streams the settled history as CSV, one row per role per
// round in pipeline order, for post-game analysis in a spreadsheet.
func (h *GameHandler) ExportGame(c *gin.Context) {
	code := normalizeJoinCode(c.Param("gameCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameCode})
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

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(exportHeader)

	settled := 0
	for i := range g.Players {
		if n := len(g.Players[i].Rounds); n > settled {
			settled = n
		}
	}
	for round := 1; round <= settled; round++ {
		for _, role := range game.Roles {
			p := g.PlayerByRole(role)
			if p == nil || round > len(p.Rounds) {
				continue
			}
			r := p.Rounds[round-1]
			_ = w.Write([]string{
				strconv.Itoa(r.Round),
				role,
				p.PlayerName,
				strconv.Itoa(r.IncomingOrder),
				strconv.Itoa(r.IncomingShipment),
				strconv.Itoa(r.Fulfilled),
				strconv.Itoa(r.OutgoingOrder),
				strconv.Itoa(r.Inventory),
				strconv.Itoa(r.Backlog),
				strconv.Itoa(r.RoundCost),
				strconv.Itoa(r.CumulativeCost),
			})
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedExport})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="orangegame_`+g.JoinCode+`.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
