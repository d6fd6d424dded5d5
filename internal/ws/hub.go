package ws

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"go.uber.org/zap"
)

const broadcastBuffer = 256

// Message is the JSON envelope every websocket client receives.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub fans broadcast messages out to all connected clients.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	connected  atomic.Int64
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run serves the hub until ctx is cancelled, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.connected.Store(0)
			return
		case client := <-h.register:
			h.clients[client] = true
			h.connected.Store(int64(len(h.clients)))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.connected.Store(int64(len(h.clients)))
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					h.log.Warn("dropping slow websocket client")
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.connected.Store(int64(len(h.clients)))
		}
	}
}

// ClientCount reports how many clients are currently registered.
func (h *Hub) ClientCount() int {
	return int(h.connected.Load())
}

// Publish queues an event for broadcast. It never blocks; when the queue is
// full the event is dropped and false is returned.
func (h *Hub) Publish(eventType string, data interface{}) bool {
	payload, err := json.Marshal(Message{Type: eventType, Data: data})
	if err != nil {
		h.log.Error("marshal websocket message", zap.Error(err))
		return false
	}
	select {
	case h.broadcast <- payload:
		return true
	default:
		h.log.Warn("websocket broadcast queue full", zap.String("type", eventType))
		return false
	}
}

func (h *Hub) add(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) remove(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
