package live

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Event is an order lifecycle notification pushed to connected admin
// dashboards.
type Event struct {
	Type        string  `json:"type"`
	OrderID     string  `json:"orderId"`
	UserID      string  `json:"userId,omitempty"`
	Status      string  `json:"status,omitempty"`
	TotalAmount float64 `json:"totalAmount,omitempty"`
	Timestamp   int64   `json:"timestamp"`
}

type Client struct {
	Send chan []byte
}

// Hub fans order events out to every connected client. Slow clients are
// dropped rather than blocking the broadcast.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.Send <- data:
				default:
					close(c.Send)
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for c := range h.clients {
				close(c.Send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// Broadcast serializes and fans out an event. Nil hubs are allowed so the
// order handlers work without a running feed (tests, seeding).
func (h *Hub) Broadcast(event Event) {
	if h == nil {
		return
	}
	event.Timestamp = time.Now().Unix()
	data, err := json.Marshal(event)
	if err != nil {
		log.Println("live: marshal event:", err)
		return
	}
	select {
	case h.broadcast <- data:
	case <-h.done:
	}
}
