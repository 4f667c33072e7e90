package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"dining-reviews/internal/logging"
	"dining-reviews/internal/models"

	"github.com/gorilla/websocket"
)

var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const (
	EventReviewCreated = "review_created"
	EventReviewUpdated = "review_updated"
	EventReviewDeleted = "review_deleted"
)

type Event struct {
	EventType string         `json:"event_type"`
	Payload   *models.Review `json:"payload"`
}

// Hub fans review events out to feed subscribers.
type Hub struct {
	clients    map[*Client]bool
	mu         sync.RWMutex
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes subscriptions until ctx is cancelled, then closes every
// client's send channel.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = true
	logging.Debug().Str("location", client.Location).Msg("feed client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		logging.Debug().Str("location", client.Location).Msg("feed client unregistered")
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	close(h.done)
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
}

// PublishReview delivers an event to every subscriber whose filter matches
// the review's location. Full client buffers drop the message.
func (h *Hub) PublishReview(eventType string, review models.Review) {
	eventData, err := json.Marshal(Event{EventType: eventType, Payload: &review})
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal feed event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if !client.wants(review.Location) {
			continue
		}
		select {
		case client.send <- eventData:
		default:
			logging.Warn().Str("location", client.Location).Msg("feed client send buffer is full, dropping message")
		}
	}
}
