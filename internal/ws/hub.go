package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"

	"go-flowcash/pkg/logger"
)

// EventType identifies a domain change broadcast to connected clients.
type EventType string

const (
	EventProductCreated   EventType = "product_created"
	EventProductUpdated   EventType = "product_updated"
	EventProductDeleted   EventType = "product_deleted"
	EventInventoryReset   EventType = "inventory_reset"
	EventSaleRecorded     EventType = "sale_recorded"
	EventCashflowRecorded EventType = "cashflow_recorded"
	EventCashflowUpdated  EventType = "cashflow_updated"
	EventCashflowDeleted  EventType = "cashflow_deleted"
	EventCashflowReset    EventType = "cashflow_reset"
)

// Event is the envelope every broadcast message uses.
type Event struct {
	Type EventType   `json:"type"`
	At   time.Time   `json:"at"`
	Data interface{} `json:"data,omitempty"`
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, 64),
	}
}

// Publish serializes an event and hands it to the broadcast loop. It never
// blocks the calling handler: when the hub is saturated (or not running,
// as in tests) the event is dropped.
func (h *Hub) Publish(t EventType, data interface{}) {
	msg, err := json.Marshal(Event{Type: t, At: time.Now(), Data: data})
	if err != nil {
		logger.Get().WithError(err).Warn("ws: failed to encode event")
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			logger.Get().Debug("ws: client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
