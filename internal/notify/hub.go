// internal/notify/hub.go
package notify

import (
	"log/slog"
	"time"
)

// EventType identifies what happened on a trip.
type EventType string

const (
	EventExpenseAdded      EventType = "EXPENSE_ADDED"
	EventParticipantPaid   EventType = "PARTICIPANT_PAID"
	EventExpenseSettled    EventType = "EXPENSE_SETTLED"
	EventActivityProposed  EventType = "ACTIVITY_PROPOSED"
	EventActivityResponded EventType = "ACTIVITY_RESPONDED"
	EventProposalAdded     EventType = "PROPOSAL_ADDED"
	EventProposalVoted     EventType = "PROPOSAL_VOTED"
)

// Event is a notification broadcast to every connected member of a trip.
type Event struct {
	Type      EventType   `json:"type"`
	TripID    int64       `json:"tripId"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// Publisher is the side of the hub that services see.
type Publisher interface {
	Publish(event Event)
}

// Hub tracks connected websocket clients and fans events out to the ones
// subscribed to the event's trip. All client bookkeeping happens on the Run
// goroutine; the channels are the only cross-goroutine surface.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	clients    map[*Client]bool
	logger     *slog.Logger
}

// NewHub creates a hub. Call Run on its own goroutine before serving clients.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 64),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

// Publish queues an event for broadcast. Non-blocking: if the hub is backed
// up the event is dropped rather than stalling the request path.
func (h *Hub) Publish(event Event) {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("notification hub backed up, dropping event", "type", event.Type, "trip_id", event.TripID)
	}
}

// Run processes registrations and broadcasts until the register channel is
// drained and closed by process shutdown.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Info("websocket client registered", "user_id", client.userID, "trip_id", client.tripID)
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case event := <-h.broadcast:
			for client := range h.clients {
				if client.tripID != event.TripID {
					continue
				}
				select {
				case client.send <- event:
				default:
					// Slow consumer; drop it rather than blocking the hub.
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// NopPublisher discards events. Used where no hub is wired, e.g. tests.
type NopPublisher struct{}

// Publish discards the event.
func (NopPublisher) Publish(Event) {}
