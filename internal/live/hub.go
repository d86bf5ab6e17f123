package live

import (
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	subscriberBuf = 8
	writeDeadline = 5 * time.Second
	pongWait      = 60 * time.Second
	pingInterval  = 45 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(_ *http.Request) bool { return true },
}

// Signal is the payload-free "match changed" notification. Clients re-fetch
// authoritative state over HTTP instead of trusting a pushed scoreboard.
type Signal struct {
	MatchID uint `json:"match_id"`
}

// Subscriber is one listening party for a single match.
type Subscriber struct {
	ID      string
	MatchID uint
	C       chan Signal
}

// Hub fans out change signals to all subscribers of a match. It implements
// the scoring service's Notifier interface.
type Hub struct {
	mu    sync.Mutex
	rooms map[uint]map[*Subscriber]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[uint]map[*Subscriber]struct{}),
	}
}

// Subscribe registers a listener for one match.
func (h *Hub) Subscribe(matchID uint) *Subscriber {
	sub := &Subscriber{
		ID:      uuid.NewString(),
		MatchID: matchID,
		C:       make(chan Signal, subscriberBuf),
	}
	h.mu.Lock()
	room, ok := h.rooms[matchID]
	if !ok {
		room = make(map[*Subscriber]struct{})
		h.rooms[matchID] = room
	}
	room[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Unsubscribe removes a listener. Safe to call more than once.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[sub.MatchID]
	if !ok {
		return
	}
	if _, ok := room[sub]; !ok {
		return
	}
	delete(room, sub)
	if len(room) == 0 {
		delete(h.rooms, sub.MatchID)
	}
	close(sub.C)
}

// SubscriberCount reports how many listeners a match currently has.
func (h *Hub) SubscriberCount(matchID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[matchID])
}

// MatchChanged enqueues the change signal to every subscriber of the match.
// Sends never block: a subscriber with a full buffer misses the signal, which
// is harmless because the next re-fetch returns the same authoritative state.
func (h *Hub) MatchChanged(matchID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.rooms[matchID] {
		select {
		case sub.C <- Signal{MatchID: matchID}:
		default:
			log.Printf("live: dropping signal for slow subscriber %s match=%d", sub.ID, matchID)
		}
	}
}

// HandleWS upgrades GET /matches/:id/live to a websocket and streams change
// signals until the client goes away.
func (h *Hub) HandleWS(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("live: upgrade failed: %v", err)
		return
	}

	sub := h.Subscribe(uint(id))
	log.Printf("live: subscriber %s joined match=%d", sub.ID, id)

	go h.writePump(conn, sub)
	go h.readPump(conn, sub)
}

// writePump drains the subscriber channel onto the connection and keeps the
// peer alive with pings. It owns the connection close.
func (h *Hub) writePump(conn *websocket.Conn, sub *Subscriber) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case signal, ok := <-sub.C:
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := conn.WriteJSON(signal); err != nil {
				h.Unsubscribe(sub)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.Unsubscribe(sub)
				return
			}
		}
	}
}

// readPump consumes pongs and close frames. Clients never send data upstream;
// a disconnect only stops their notifications.
func (h *Hub) readPump(conn *websocket.Conn, sub *Subscriber) {
	defer h.Unsubscribe(sub)

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
