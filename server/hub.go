package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/sim"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Command is a discrete control signal from a browser client. The frame loop
// drains these once per tick; nothing here touches engine state directly.
type Command struct {
	Type    string       `json:"type"` // play, pause, toggle, scrub, step, speed, select, view, focus, toggles, timerange, reload, resetView
	ID      string       `json:"id,omitempty"`
	Value   float64      `json:"value,omitempty"`
	View    string       `json:"view,omitempty"`
	Focus   string       `json:"focus,omitempty"`
	Min     time.Time    `json:"min,omitempty"`
	Max     time.Time    `json:"max,omitempty"`
	Toggles *sim.Toggles `json:"toggles,omitempty"`
}

// Hub fans frame snapshots out to websocket clients and funnels their
// control messages back to the frame loop.
type Hub struct {
	mu            sync.RWMutex
	clients       map[*websocket.Conn]*sync.Mutex
	latest        sim.Snapshot
	hasSnapshot   bool
	pendingEvents []string

	commands chan Command
	interval time.Duration
}

func NewHub(interval time.Duration) *Hub {
	return &Hub{
		clients:  make(map[*websocket.Conn]*sync.Mutex),
		commands: make(chan Command, 64),
		interval: interval,
	}
}

// Commands exposes the control channel for the frame loop to drain.
func (h *Hub) Commands() <-chan Command {
	return h.commands
}

// Publish stores the newest snapshot for the next broadcast. One-shot events
// accumulate so a broadcast tick slower than the frame rate cannot drop them.
func (h *Hub) Publish(snap sim.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pendingEvents = append(h.pendingEvents, snap.Events...)
	snap.Events = nil
	h.latest = snap
	h.hasSnapshot = true
}

// Run broadcasts the latest snapshot to all clients at the configured
// interval. Blocks; run on its own goroutine.
func (h *Hub) Run() {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for range ticker.C {
		h.broadcast()
	}
}

func (h *Hub) broadcast() {
	h.mu.Lock()
	if !h.hasSnapshot || len(h.clients) == 0 {
		h.pendingEvents = nil
		h.mu.Unlock()
		return
	}
	snap := h.latest
	snap.Events = h.pendingEvents
	h.pendingEvents = nil

	payload, err := json.Marshal(snap)
	if err != nil {
		h.mu.Unlock()
		log.Printf("Snapshot marshal error: %v", err)
		return
	}
	conns := make(map[*websocket.Conn]*sync.Mutex, len(h.clients))
	for conn, lock := range h.clients {
		conns[conn] = lock
	}
	h.mu.Unlock()

	for conn, lock := range conns {
		lock.Lock()
		err := conn.WriteMessage(websocket.TextMessage, payload)
		lock.Unlock()
		if err != nil {
			h.drop(conn)
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// ServeWS upgrades a connection, registers it for broadcasts, and reads
// control messages until the client goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = &sync.Mutex{}
	count := len(h.clients)
	h.mu.Unlock()
	log.Printf("Websocket client connected (%d total)", count)

	go func() {
		defer h.drop(conn)
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var cmd Command
			if err := json.Unmarshal(msg, &cmd); err != nil {
				log.Printf("Bad control message: %v", err)
				continue
			}
			select {
			case h.commands <- cmd:
			default:
				// Frame loop is behind; drop rather than block the reader.
			}
		}
	}()
}
