package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/puyokura/zethon/effects"
	"github.com/puyokura/zethon/model"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local tool
	},
}

var errNotEffect = errors.New("frame is not an effect")

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	hub *Hub

	// The websocket connection.
	conn *websocket.Conn

	// Buffered channel of outbound messages.
	send chan []byte

	// Watchers receive the broadcast; emitters only get acks.
	watcher bool

	// closed is set by the hub, under its mu, when send is closed.
	closed bool
}

// Hub maintains the set of watchers and fans accepted effects out to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	sink       effects.Sink
	logger     *zap.Logger
	welcome    string
	done       chan struct{}

	mu     sync.Mutex
	counts map[effects.Kind]int
}

func NewHub(sink effects.Sink, logger *zap.Logger, welcome string) *Hub {
	return &Hub{
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		sink:       sink,
		logger:     logger.Named("hub"),
		welcome:    welcome,
		done:       make(chan struct{}),
		counts:     make(map[effects.Kind]int),
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for client := range h.clients {
				h.drop(client)
			}
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				h.drop(client)
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				if !client.watcher {
					continue
				}
				select {
				case client.send <- message:
				default:
					h.drop(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// drop removes client and closes its send channel. h.mu must be held.
func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	client.closed = true
	close(client.send)
}

// Stats returns the number of accepted effects per kind.
func (h *Hub) Stats() map[effects.Kind]int {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[effects.Kind]int, len(h.counts))
	for k, n := range h.counts {
		out[k] = n
	}
	return out
}

// Watchers is the number of connected observers.
func (h *Hub) Watchers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for c := range h.clients {
		if c.watcher {
			n++
		}
	}
	return n
}

// accept decodes an effect frame, logs it and forwards it to watchers.
func (h *Hub) accept(message []byte) (effects.Effect, error) {
	var frame struct {
		Type    model.EventType `json:"type"`
		Payload effects.Effect  `json:"payload"`
	}
	if err := json.Unmarshal(message, &frame); err != nil {
		return effects.Effect{}, err
	}
	e := frame.Payload
	if frame.Type != model.EventEffect || !e.Kind.Valid() || e.ID == "" {
		return e, errNotEffect
	}

	if err := h.sink.Emit(context.Background(), e); err != nil {
		h.logger.Error("Failed to record effect", zap.String("id", e.ID), zap.Error(err))
	}
	h.mu.Lock()
	h.counts[e.Kind]++
	h.mu.Unlock()

	out, _ := json.Marshal(model.Event{Type: model.EventEffect, Payload: e})
	select {
	case h.broadcast <- out:
	case <-h.done:
	}
	return e, nil
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("Read error", zap.Error(err))
			}
			break
		}
		if c.watcher {
			continue
		}

		e, err := c.hub.accept(message)
		if err != nil {
			c.hub.logger.Warn("Rejected frame", zap.Error(err))
			c.reply(model.Event{Type: model.EventError, Payload: err.Error()})
			continue
		}
		c.reply(model.Event{Type: model.EventAck, Payload: e.ID})
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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

// reply queues an event for this client only. The hub closes send only
// under mu, so the closed check keeps the send safe. A full buffer drops the
// event.
func (c *Client) reply(event model.Event) {
	bytes, _ := json.Marshal(event)

	c.hub.mu.Lock()
	defer c.hub.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- bytes:
	default:
		c.hub.logger.Warn("Dropped reply (channel full)", zap.String("type", string(event.Type)))
	}
}

// serveWs handles websocket requests from the peer.
func serveWs(hub *Hub, watcher bool, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.logger.Warn("Upgrade failed", zap.Error(err))
		return
	}
	client := &Client{hub: hub, conn: conn, send: make(chan []byte, 256), watcher: watcher}
	if watcher && hub.welcome != "" {
		client.reply(model.Event{Type: model.EventAck, Payload: hub.welcome})
	}
	select {
	case client.hub.register <- client:
	case <-hub.done:
		conn.Close()
		return
	}
	hub.logger.Info("Client connected", zap.String("remote", r.RemoteAddr), zap.Bool("watcher", watcher))

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	go client.readPump()
}

// sortedKinds returns the kinds in stats in name order.
func sortedKinds(stats map[effects.Kind]int) []effects.Kind {
	kinds := make([]effects.Kind, 0, len(stats))
	for k := range stats {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
