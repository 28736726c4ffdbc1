package api

import (
	"net/http"

	"github.com/Moutabir-omar/MA-Orangegame/internal/constants"
	"github.com/Moutabir-omar/MA-Orangegame/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers send the page origin; the API may be served from a
	// different host in development, so accept any origin here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GameSocket upgrades the connection and streams round snapshots for one
// game. The first message is the current snapshot; afterwards the client
// only receives pushes, and anything it sends is discarded.
func (h *GameHandler) GameSocket(c *gin.Context) {
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

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Warn("websocket upgrade failed", logging.Fields{
			constants.LogFieldJoinCode: code,
			"error":                    err.Error(),
		})
		return
	}

	sub := h.hub.Subscribe(g.JoinCode, conn)
	defer func() {
		h.hub.Unsubscribe(g.JoinCode, sub)
		_ = conn.Close()
	}()

	// Catch the client up before the next round boundary.
	h.hub.Publish(g.JoinCode, g.Snapshot())

	// Reader loop: the client never speaks, but reading is what detects
	// the peer going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
