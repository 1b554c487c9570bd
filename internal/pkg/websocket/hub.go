package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event tells subscribers of a programme that its data changed
type Event struct {
	// Kind of change, e.g. "courses.changed"
	Type string `json:"type"`

	// Programme whose data changed
	ProgrammeID int64 `json:"programmeId"`

	// Timestamp when the change was committed
	Timestamp time.Time `json:"timestamp"`
}

// Hub maintains the set of active clients and fans change events out to them
type Hub struct {
	// Registered clients organized by programme ID
	clients map[int64]map[*Client]bool

	// Events waiting to be broadcast
	broadcast chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	// Guards clients for ClientCount
	mu sync.RWMutex

	logger zerolog.Logger
	now    func() time.Time
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		broadcast:  make(chan *Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
		now:        time.Now,
	}
}

// Run handles registrations and broadcasts until ctx is cancelled. All
// client send channels are closed on return.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	programmeID := client.programmeID
	if _, ok := h.clients[programmeID]; !ok {
		h.clients[programmeID] = make(map[*Client]bool)
	}
	h.clients[programmeID][client] = true

	h.logger.Debug().
		Int64("programmeID", programmeID).
		Int64("userID", client.userID).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

// removeLocked drops a client and closes its send channel. h.mu must be held.
func (h *Hub) removeLocked(client *Client) {
	programmeID := client.programmeID
	clients, ok := h.clients[programmeID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}

	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, programmeID)
	}

	h.logger.Debug().
		Int64("programmeID", programmeID).
		Int64("userID", client.userID).
		Msg("Client unregistered")
}

// broadcastEvent sends an event to every client of its programme. Clients
// whose buffer is full are dropped.
func (h *Hub) broadcastEvent(event *Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[event.ProgrammeID]
	if !ok {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Int64("programmeID", event.ProgrammeID).Msg("Failed to marshal event")
		return
	}

	for client := range clients {
		select {
		case client.send <- data:
		default:
			h.logger.Warn().Int64("userID", client.userID).Msg("Dropping slow websocket client")
			h.removeLocked(client)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}

// NotifyChange queues a change event for the programme. It never blocks:
// when the hub is stopped or backed up the event is dropped.
func (h *Hub) NotifyChange(programmeID int64, change string) {
	event := &Event{Type: change, ProgrammeID: programmeID, Timestamp: h.now()}
	select {
	case <-h.done:
	case h.broadcast <- event:
	default:
		h.logger.Warn().Int64("programmeID", programmeID).Str("type", change).Msg("Change event dropped")
	}
}

// ClientCount returns the number of connected clients for a programme
func (h *Hub) ClientCount(programmeID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[programmeID])
}

func (h *Hub) enqueueRegister(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) enqueueUnregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
