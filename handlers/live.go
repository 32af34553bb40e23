// handlers/live.go - Live room feed over WebSocket
package handlers

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"leetgrind/services"
)

const liveWriteWait = 10 * time.Second

// SolveMessage is the wire format pushed to room subscribers.
type SolveMessage struct {
	Type  string              `json:"type"`
	Room  string              `json:"room"`
	Event services.SolveEvent `json:"event"`
}

// liveHub tracks WebSocket subscribers per room code and fans solve events
// out to them. Sync runs feed it through the SolveNotifier interface.
type liveHub struct {
	mu    sync.RWMutex
	rooms map[string]map[*websocket.Conn]bool
}

var hub = &liveHub{rooms: make(map[string]map[*websocket.Conn]bool)}

// LiveHub returns the process-wide hub.
func LiveHub() services.SolveNotifier {
	return hub
}

func (h *liveHub) subscribe(roomCode string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[roomCode] == nil {
		h.rooms[roomCode] = make(map[*websocket.Conn]bool)
	}
	h.rooms[roomCode][conn] = true
}

func (h *liveHub) unsubscribe(roomCode string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms[roomCode], conn)
	if len(h.rooms[roomCode]) == 0 {
		delete(h.rooms, roomCode)
	}
}

// NotifySolve pushes a solve event to every subscriber of the room.
// Dead connections are dropped; slow consumers only cost the write timeout.
func (h *liveHub) NotifySolve(roomCode string, event services.SolveEvent) {
	msg := SolveMessage{Type: "solve", Room: roomCode, Event: event}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.rooms[roomCode] {
		_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("Dropping live subscriber of room %s: %v", roomCode, err)
			conn.Close()
			delete(h.rooms[roomCode], conn)
		}
	}
}

// LiveFeedUpgrade gates the live feed route to WebSocket upgrade requests.
func LiveFeedUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// LiveFeed subscribes the connection to its room's solve events. The read
// loop only detects disconnects; clients are not expected to send anything.
// GET /ws/rooms/:code
func LiveFeed() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		roomCode := conn.Params("code")
		if roomCode == "" {
			conn.Close()
			return
		}

		hub.subscribe(roomCode, conn)
		defer hub.unsubscribe(roomCode, conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
