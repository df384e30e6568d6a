package ws

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 256
)

// Event types pushed to admin consoles.
const (
	EventConfigSaved  = "config_saved"
	EventLeadReceived = "lead_received"
)

// Event is one feed message, stamped with the time its record was stored.
// Config events carry the digest and size of the document; lead events carry
// the sheet and form type.
type Event struct {
	Type     string    `json:"type"`
	Digest   string    `json:"digest,omitempty"`
	Size     int       `json:"size,omitempty"`
	SavedAt  time.Time `json:"saved_at"`
	Sheet    string    `json:"sheet,omitempty"`
	FormType string    `json:"form_type,omitempty"`
}

// FeedHub fans events out to connected admin consoles.
type FeedHub struct {
	register   chan *feedClient
	unregister chan *feedClient
	broadcast  chan []byte
	done       chan struct{}
	clients    map[*feedClient]struct{}
	connected  atomic.Int32
	log        *zap.Logger
}

func NewFeedHub(log *zap.Logger) *FeedHub {
	if log == nil {
		log = zap.NewNop()
	}
	return &FeedHub{
		register:   make(chan *feedClient),
		unregister: make(chan *feedClient),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
		clients:    make(map[*feedClient]struct{}),
		log:        log,
	}
}

// Run serves the hub until ctx is done, then disconnects every client.
func (h *FeedHub) Run(ctx context.Context) error {
	defer func() {
		close(h.done)
		for client := range h.clients {
			h.drop(client)
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.connected.Store(int32(len(h.clients)))
			h.log.Debug("feed client connected", zap.Int("clients", len(h.clients)))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
			}
		case msg := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					h.drop(client)
				}
			}
		}
	}
}

func (h *FeedHub) drop(c *feedClient) {
	delete(h.clients, c)
	h.connected.Store(int32(len(h.clients)))
	close(c.send)
	c.conn.Close()
}

// Clients reports how many consoles are connected.
func (h *FeedHub) Clients() int { return int(h.connected.Load()) }

// Publish queues ev for every client. It never blocks: once the hub has
// stopped or the queue is full the event is dropped.
func (h *FeedHub) Publish(ev Event) {
	if h == nil {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("feed: marshal event", zap.Error(err))
		return
	}
	select {
	case h.broadcast <- data:
	case <-h.done:
	default:
		h.log.Warn("feed: queue full, event dropped", zap.String("type", ev.Type))
	}
}

func (h *FeedHub) add(c *feedClient) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *FeedHub) remove(c *feedClient) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

type feedClient struct {
	hub  *FeedHub
	conn *websocket.Conn
	send chan []byte
}

func (c *feedClient) readPump() {
	defer c.hub.remove(c)
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *feedClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
