package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/table-booking/events"
	"github.com/yeremiapane/table-booking/utils"
)

// Board events pushed to connected staff screens.
const (
	EventBookingUpdate = "booking_update"
	EventTableUpdate   = "table_update"
	EventShiftUpdate   = "shift_update"
	EventSettingUpdate = "setting_update"
)

const (
	defaultWriteWait  = 10 * time.Second
	defaultPongWait   = 60 * time.Second
	defaultSendBuffer = 64
	maxMessageSize    = 4096
)

type Message struct {
	Event  string      `json:"event"`
	Action string      `json:"action,omitempty"`
	Data   interface{} `json:"data"`
}

// Hub fans board messages out to connected staff screens. Broadcast never writes to a
// socket itself; each client drains its own queue, and a client whose queue is full is
// dropped.
type Hub struct {
	clients map[*Client]struct{}
	mutex   sync.RWMutex

	writeWait  time.Duration
	pongWait   time.Duration
	pingPeriod time.Duration
	sendBuffer int
}

func New() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		writeWait:  defaultWriteWait,
		pongWait:   defaultPongWait,
		pingPeriod: defaultPongWait * 9 / 10,
		sendBuffer: defaultSendBuffer,
	}
}

// Client is one board connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	role string
	send chan []byte

	closeOnce sync.Once
}

// Register adds conn to the hub and starts its write pump. The caller runs ReadPump.
func (h *Hub) Register(conn *websocket.Conn, role string) *Client {
	client := &Client{
		hub:  h,
		conn: conn,
		role: role,
		send: make(chan []byte, h.sendBuffer),
	}

	h.mutex.Lock()
	h.clients[client] = struct{}{}
	h.mutex.Unlock()

	go client.writePump()
	return client
}

// Unregister removes the client and closes its connection. Safe to call more than once.
func (h *Hub) Unregister(client *Client) {
	h.mutex.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	h.mutex.Unlock()
	client.closeConn()
}

func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// HandleEvent is a Bus subscriber that forwards booking lifecycle events.
func (h *Hub) HandleEvent(e events.Event) {
	h.Broadcast(Message{Event: EventBookingUpdate, Action: e.Type, Data: e})
}

// Broadcast queues msg for every client without blocking.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling board message: %v", err)
		return
	}

	var slow []*Client
	h.mutex.RLock()
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mutex.RUnlock()

	for _, client := range slow {
		utils.ErrorLogger.Printf("Dropping slow %s board client", client.role)
		h.Unregister(client)
	}
}

// ReadPump blocks until the screen disconnects or stops answering pings, then
// unregisters the client. Screens only listen, so inbound messages are discarded.
func (c *Client) ReadPump() {
	defer c.hub.Unregister(c)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.hub.pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.hub.pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				utils.ErrorLogger.Printf("Board client read error: %v", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(c.hub.pingPeriod)
	defer func() {
		ticker.Stop()
		c.hub.Unregister(c)
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.hub.writeWait)); err != nil {
				return
			}
		}
	}
}

func (c *Client) closeConn() {
	c.closeOnce.Do(func() {
		_ = c.conn.Close()
	})
}
