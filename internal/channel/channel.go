// Package channel maintains the push channel that keeps the order store in
// sync with the backend. Events arrive as JSON envelopes over a websocket;
// the channel fans them out to subscribers and offers a one-way
// request_refresh signal back to the server.
package channel

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"maitred/internal/models"
	"maitred/internal/monitoring"
)

// Server-to-client event names
const (
	EventOrderCreated  = "order_created"
	EventOrderUpdated  = "order_updated"
	EventOrderDeleted  = "order_deleted"
	EventOrdersRefresh = "orders_refresh"
)

// Client-to-server event names
const (
	EventRequestRefresh = "request_refresh"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// envelope is the wire frame for every channel message
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// updatedPayload carries an order_updated event. The server also sends
// oldStatus/newStatus; consumers only need the full order.
type updatedPayload struct {
	Order models.Order `json:"order"`
}

// deletedPayload carries an order_deleted event
type deletedPayload struct {
	OrderID int `json:"orderId"`
}

// Callbacks holds a subscriber's event handlers. Every field is optional.
type Callbacks struct {
	OnCreated func(models.Order)
	OnUpdated func(models.Order)
	OnDeleted func(orderID int)
	OnRefresh func([]models.Order)
}

// Channel is the owned connection object for the event stream. A single
// Channel is shared by all consumers; Connect is idempotent.
type Channel struct {
	url               string
	reconnectAttempts int
	reconnectDelay    time.Duration

	mu             sync.RWMutex
	conn           *websocket.Conn
	connected      bool
	closed         bool
	nextSubID      int
	subs           map[int]Callbacks
	onConnected    func()
	onDisconnected func()

	// send belongs to the current connection; attach replaces it so a
	// dying pump never drains frames meant for its successor.
	send chan []byte
}

// New creates a channel for the given websocket URL. Connection attempts
// (initial and after a transport failure) are bounded by attempts with a
// fixed delay between tries.
func New(url string, attempts int, delay time.Duration) *Channel {
	return &Channel{
		url:               url,
		reconnectAttempts: attempts,
		reconnectDelay:    delay,
		subs:              make(map[int]Callbacks),
		send:              make(chan []byte, 256),
	}
}

// Connect establishes the channel. Calling Connect while connected is a
// no-op. The two callbacks track connection state; either may be nil.
func (c *Channel) Connect(onConnected, onDisconnected func()) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return fmt.Errorf("channel is closed")
	}
	if c.connected {
		c.mu.Unlock()
		return nil
	}
	c.onConnected = onConnected
	c.onDisconnected = onDisconnected
	c.mu.Unlock()

	return c.dial()
}

// dial tries to establish the websocket, retrying with fixed backoff.
// Exhausting the attempts leaves the channel disconnected for good.
func (c *Channel) dial() error {
	var lastErr error
	for attempt := 1; attempt <= c.reconnectAttempts; attempt++ {
		conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
		if err == nil {
			c.attach(conn)
			return nil
		}
		lastErr = err
		log.Printf("Channel connect attempt %d/%d failed: %v", attempt, c.reconnectAttempts, err)
		time.Sleep(c.reconnectDelay)
	}
	return fmt.Errorf("channel connection failed after %d attempts: %w", c.reconnectAttempts, lastErr)
}

// attach installs an established connection and starts its pumps.
func (c *Channel) attach(conn *websocket.Conn) {
	send := make(chan []byte, 256)

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.send = send
	onConnected := c.onConnected
	c.mu.Unlock()

	monitoring.SetConnected(true)

	go c.writePump(conn, send)
	go c.readPump(conn)

	if onConnected != nil {
		onConnected()
	}
}

// IsConnected reports whether the channel currently has a live connection.
func (c *Channel) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// Subscribe registers event callbacks and returns a function that detaches
// exactly the callbacks it attached, leaving other subscribers intact.
func (c *Channel) Subscribe(cb Callbacks) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = cb

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// RequestRefresh asks the server to push a full orders_refresh snapshot.
// Fire-and-forget: the snapshot arrives asynchronously as a normal event.
func (c *Channel) RequestRefresh() error {
	c.mu.RLock()
	connected := c.connected
	send := c.send
	c.mu.RUnlock()
	if !connected {
		return fmt.Errorf("channel is not connected")
	}

	data, err := json.Marshal(envelope{Event: EventRequestRefresh})
	if err != nil {
		return err
	}

	select {
	case send <- data:
		monitoring.RefreshRequested()
		return nil
	default:
		return fmt.Errorf("channel send buffer is full")
	}
}

// Close tears the channel down permanently. No reconnection follows.
func (c *Channel) Close() error {
	c.mu.Lock()
	c.closed = true
	conn := c.conn
	c.conn = nil
	c.connected = false
	c.mu.Unlock()

	monitoring.SetConnected(false)
	if conn != nil {
		return conn.Close()
	}
	return nil
}

// readPump consumes server events until the connection fails, then kicks
// off the bounded reconnect cycle.
func (c *Channel) readPump(conn *websocket.Conn) {
	defer conn.Close()

	conn.SetReadLimit(512 * 1024)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Channel read error: %v", err)
			}
			break
		}
		c.dispatch(message)
	}

	c.handleDisconnect(conn)
}

// writePump sends queued messages and keep-alive pings until the
// connection dies. It drains only the buffer created alongside conn.
func (c *Channel) writePump(conn *websocket.Conn, send chan []byte) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleDisconnect flips the connection state and, unless the channel was
// closed deliberately, tries to re-establish it.
func (c *Channel) handleDisconnect(conn *websocket.Conn) {
	c.mu.Lock()
	if c.conn != conn {
		// A newer connection has already replaced this one.
		c.mu.Unlock()
		return
	}
	c.conn = nil
	c.connected = false
	closed := c.closed
	onDisconnected := c.onDisconnected
	c.mu.Unlock()

	monitoring.SetConnected(false)
	if onDisconnected != nil {
		onDisconnected()
	}
	if closed {
		return
	}

	go func() {
		if err := c.dial(); err != nil {
			log.Printf("Channel reconnect abandoned: %v", err)
			return
		}
		monitoring.Reconnected()
	}()
}

// dispatch decodes one event envelope and fans it out to subscribers.
// Malformed payloads are logged and dropped; they never break the pump.
func (c *Channel) dispatch(message []byte) {
	var env envelope
	if err := json.Unmarshal(message, &env); err != nil {
		log.Printf("Channel received malformed envelope: %v", err)
		return
	}

	c.mu.RLock()
	subs := make([]Callbacks, 0, len(c.subs))
	for _, cb := range c.subs {
		subs = append(subs, cb)
	}
	c.mu.RUnlock()

	monitoring.EventReceived(env.Event)

	switch env.Event {
	case EventOrderCreated:
		var order models.Order
		if err := json.Unmarshal(env.Data, &order); err != nil {
			log.Printf("Bad %s payload: %v", env.Event, err)
			return
		}
		for _, cb := range subs {
			if cb.OnCreated != nil {
				cb.OnCreated(order)
			}
		}
	case EventOrderUpdated:
		var payload updatedPayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			log.Printf("Bad %s payload: %v", env.Event, err)
			return
		}
		for _, cb := range subs {
			if cb.OnUpdated != nil {
				cb.OnUpdated(payload.Order)
			}
		}
	case EventOrderDeleted:
		var payload deletedPayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			log.Printf("Bad %s payload: %v", env.Event, err)
			return
		}
		for _, cb := range subs {
			if cb.OnDeleted != nil {
				cb.OnDeleted(payload.OrderID)
			}
		}
	case EventOrdersRefresh:
		var orders []models.Order
		if err := json.Unmarshal(env.Data, &orders); err != nil {
			log.Printf("Bad %s payload: %v", env.Event, err)
			return
		}
		for _, cb := range subs {
			if cb.OnRefresh != nil {
				cb.OnRefresh(orders)
			}
		}
	default:
		// Connection lifecycle frames and unknown events are ignored.
	}
}
