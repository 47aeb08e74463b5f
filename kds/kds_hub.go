package kds

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-management/utils"
)

// Event types
const (
	EventMenuCreate      = "menu_create"
	EventMenuUpdate      = "menu_update"
	EventFoodCreate      = "food_create"
	EventFoodUpdate      = "food_update"
	EventTableCreate     = "table_create"
	EventTableUpdate     = "table_update"
	EventOrderCreate     = "order_create"
	EventOrderUpdate     = "order_update"
	EventOrderItemCreate = "order_item_create"
	EventOrderItemUpdate = "order_item_update"
	EventInvoiceCreate   = "invoice_create"
	EventInvoiceUpdate   = "invoice_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

const (
	// writeWait bounds a single write to a client.
	writeWait = 10 * time.Second
	// sendBuffer is the number of queued messages a client may lag behind before it is dropped.
	sendBuffer = 256
)

type client struct {
	conn   *websocket.Conn
	userID string
	send   chan []byte
}

// Hub holds every connected websocket client keyed by connection.
// Each client has its own writer goroutine so a slow reader never blocks Broadcast.
type Hub struct {
	clients map[*websocket.Conn]*client
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]*client)}
}

var defaultHub = NewHub()

// Default returns the process-wide hub used by the controllers.
func Default() *Hub {
	return defaultHub
}

func (h *Hub) Register(conn *websocket.Conn, userID string) {
	c := &client{conn: conn, userID: userID, send: make(chan []byte, sendBuffer)}

	h.mutex.Lock()
	h.clients[conn] = c
	h.mutex.Unlock()

	go h.writePump(c)
}

// Unregister removes conn and closes it.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if c, ok := h.clients[conn]; ok {
		h.remove(c)
	}
}

// remove must be called with h.mutex held.
func (h *Hub) remove(c *client) {
	delete(h.clients, c.conn)
	close(c.send)
	c.conn.Close()
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Broadcast queues msg for every client. Clients whose queue is full are dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.WithError(err).WithField("event", msg.Event).Error("Error marshaling message")
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	utils.InfoLogger.WithFields(logrus.Fields{
		"event":   msg.Event,
		"clients": len(h.clients),
	}).Debug("Broadcasting message")

	for _, c := range h.clients {
		select {
		case c.send <- data:
		default:
			utils.ErrorLogger.WithField("user_id", c.userID).Warn("Client is not keeping up, dropping it")
			h.remove(c)
		}
	}
}

func (h *Hub) writePump(c *client) {
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.WithError(err).WithField("user_id", c.userID).Warn("Error sending message to client")
			h.Unregister(c.conn)
			return
		}
	}
}
