package broadcast

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/Moutabir-omar/MA-Orangegame/internal/constants"
	"github.com/Moutabir-omar/MA-Orangegame/internal/game"
	"github.com/Moutabir-omar/MA-Orangegame/internal/logging"

	"github.com/gorilla/websocket"
)

const writeTimeout = 5 * time.Second

// Hub fans round snapshots out to websocket subscribers, one group per
// join code. Publishing is fire-and-forget: a slow or dead client is
// dropped, and no failure ever propagates back to the round engine.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*Subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Subscriber]struct{})}
}

// Subscriber wraps one websocket connection. Writes are guarded by a
// mutex and a deadline so one stuck peer cannot block a publish.
type Subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *Subscriber) write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Subscribe registers a connection for a game's snapshots.
func (h *Hub) Subscribe(joinCode string, conn *websocket.Conn) *Subscriber {
	s := &Subscriber{conn: conn}
	h.mu.Lock()
	defer h.mu.Unlock()
	group, ok := h.subs[joinCode]
	if !ok {
		group = make(map[*Subscriber]struct{})
		h.subs[joinCode] = group
	}
	group[s] = struct{}{}
	return s
}

// Unsubscribe removes a connection; the caller closes it.
func (h *Hub) Unsubscribe(joinCode string, s *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if group, ok := h.subs[joinCode]; ok {
		delete(group, s)
		if len(group) == 0 {
			delete(h.subs, joinCode)
		}
	}
}

type envelope struct {
	Type    string             `json:"type"`
	Payload game.RoundSnapshot `json:"payload"`
}

// Publish sends the snapshot to every subscriber of the game. Dead
// connections are pruned; errors are logged and swallowed.
func (h *Hub) Publish(joinCode string, snap game.RoundSnapshot) {
	data, err := json.Marshal(envelope{Type: "roundSnapshot", Payload: snap})
	if err != nil {
		logging.Error("failed to encode snapshot", err, logging.Fields{constants.LogFieldJoinCode: joinCode})
		return
	}

	h.mu.Lock()
	targets := make([]*Subscriber, 0, len(h.subs[joinCode]))
	for s := range h.subs[joinCode] {
		targets = append(targets, s)
	}
	h.mu.Unlock()

	for _, s := range targets {
		if err := s.write(data); err != nil {
			logging.Warn("dropping dead snapshot subscriber", logging.Fields{
				constants.LogFieldJoinCode: joinCode,
				"error":                    err.Error(),
			})
			h.Unsubscribe(joinCode, s)
			_ = s.conn.Close()
		}
	}
}
