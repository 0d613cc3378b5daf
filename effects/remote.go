package effects

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"github.com/puyokura/zethon/model"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

// Remote ships effects as websocket events to a collector.
type Remote struct {
	url     string
	retries uint64
	logger  *zap.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewRemote returns a Remote sink for host, which may be a bare host:port or
// a full ws:// URL. Nothing is dialed until Connect or the first Emit.
func NewRemote(host string, retries int, logger *zap.Logger) *Remote {
	target := host
	if !strings.Contains(host, "://") {
		u := url.URL{Scheme: "ws", Host: host, Path: "/ws"}
		target = u.String()
	}
	if retries < 0 {
		retries = 0
	}
	return &Remote{url: target, retries: uint64(retries), logger: logger.Named("remote")}
}

// URL is the collector endpoint.
func (r *Remote) URL() string { return r.url }

// Connect dials the collector, retrying with exponential backoff.
func (r *Remote) Connect(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connectLocked(ctx)
}

func (r *Remote) connectLocked(ctx context.Context) error {
	if r.conn != nil {
		return nil
	}

	var conn *websocket.Conn
	operation := func() error {
		c, _, err := websocket.DefaultDialer.DialContext(ctx, r.url, nil)
		if err != nil {
			return err
		}
		conn = c
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxElapsedTime = 5 * time.Second
	err := backoff.RetryNotify(
		operation,
		backoff.WithContext(backoff.WithMaxRetries(b, r.retries), ctx),
		func(err error, d time.Duration) {
			r.logger.Warn("Dial attempt failed", zap.String("url", r.url), zap.Error(err), zap.Duration("backoff", d))
		},
	)
	if err != nil {
		return fmt.Errorf("connect %s: %w", r.url, err)
	}

	r.conn = conn
	r.logger.Info("Connected to collector", zap.String("url", r.url))
	go r.readLoop(conn)
	return nil
}

// readLoop drains acks so the collector never blocks on a full socket.
func (r *Remote) readLoop(conn *websocket.Conn) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			r.drop(conn)
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				r.logger.Warn("Collector connection lost", zap.Error(err))
			}
			return
		}

		var event model.Event
		if err := json.Unmarshal(message, &event); err != nil {
			r.logger.Warn("Invalid event from collector", zap.Error(err))
			continue
		}
		if event.Type == model.EventError {
			r.logger.Warn("Collector rejected effect", zap.Any("payload", event.Payload))
		}
	}
}

func (r *Remote) drop(conn *websocket.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conn == conn {
		r.conn.Close()
		r.conn = nil
	}
}

// Emit sends e, dialing first if needed.
func (r *Remote) Emit(ctx context.Context, e Effect) error {
	e.Fields = Redact(e.Fields)
	bytes, err := json.Marshal(model.Event{Type: model.EventEffect, Payload: e})
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.connectLocked(ctx); err != nil {
		return err
	}

	r.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := r.conn.WriteMessage(websocket.TextMessage, bytes); err != nil {
		r.conn.Close()
		r.conn = nil
		return fmt.Errorf("send %s: %w", e.Kind, err)
	}
	return nil
}

// Close disconnects from the collector.
func (r *Remote) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conn == nil {
		return nil
	}
	r.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
	err := r.conn.Close()
	r.conn = nil
	return err
}
