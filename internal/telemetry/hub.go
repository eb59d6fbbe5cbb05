// Package telemetry streams live run stats to WebSocket observers.
// Observers are read-only: anything they send is discarded.
package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// Path is the WebSocket endpoint served by ListenAndServe.
const Path = "/ws"

// WriteWait bounds a single write to an observer. Publish runs on the tick
// path, so an observer that stops reading is dropped instead of stalling it.
const WriteWait = 100 * time.Millisecond

// Message types.
const (
	MsgWelcome = "welcome"
	MsgFrame   = "frame"
)

// Welcome is the first message each observer receives.
type Welcome struct {
	Type string `json:"t"`
	ID   string `json:"id"`
}

// Frame is one telemetry sample of a run.
type Frame struct {
	Type    string        `json:"t"`
	Session string        `json:"session"`
	Mode    string        `json:"mode"`
	State   string        `json:"state"`
	Stats   core.RunStats `json:"stats"`
}

// NewFrame builds a frame from the game state and stats.
func NewFrame(session, mode string, state core.GameState, stats core.RunStats) Frame {
	s := "playing"
	switch {
	case state.GameOver:
		s = "game_over"
	case state.Paused:
		s = "paused"
	}
	return Frame{Type: MsgFrame, Session: session, Mode: mode, State: s, Stats: stats}
}

// client is one connected observer.
type client struct {
	id     string
	ws     *websocket.Conn
	wait   time.Duration
	mu     sync.Mutex // guards ws writes
	closed bool
}

func (c *client) send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	if err := c.ws.SetWriteDeadline(time.Now().Add(c.wait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		c.ws.Close()
	}
}

// Hub tracks observers and broadcasts to all of them.
type Hub struct {
	upgrader  websocket.Upgrader
	logger    *log.Logger
	writeWait time.Duration

	mu      sync.RWMutex
	clients map[string]*client
}

// NewHub creates an empty hub. A nil logger discards hub logs.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  512,
			WriteBufferSize: 4096,
		},
		logger:    logger,
		writeWait: WriteWait,
		clients:   make(map[string]*client),
	}
}

// ServeHTTP upgrades the request and holds the connection until the
// observer disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logf("upgrade failed", "error", err)
		return
	}

	c := &client{id: uuid.NewString(), ws: ws, wait: h.writeWait}
	if data, err := json.Marshal(Welcome{Type: MsgWelcome, ID: c.id}); err == nil {
		if err := c.send(data); err != nil {
			c.close()
			return
		}
	}

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	h.logf("observer connected", "id", c.id, "remote", r.RemoteAddr)

	defer func() {
		h.remove(c.id)
		c.close()
		h.logf("observer disconnected", "id", c.id)
	}()

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logf("read error", "id", c.id, "error", err)
			}
			return
		}
	}
}

// Publish sends v as JSON to every observer. Observers whose write fails
// are dropped.
func (h *Hub) Publish(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("telemetry: cannot encode message: %w", err)
	}

	for _, c := range h.snapshot() {
		if err := c.send(data); err != nil {
			h.logf("write failed, dropping observer", "id", c.id, "error", err)
			h.remove(c.id)
			c.close()
		}
	}
	return nil
}

// Count returns the number of connected observers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every observer.
func (h *Hub) Close() {
	for _, c := range h.snapshot() {
		h.remove(c.id)
		c.close()
	}
}

func (h *Hub) snapshot() []*client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	list := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		list = append(list, c)
	}
	return list
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, id)
}

func (h *Hub) logf(msg string, keyvals ...interface{}) {
	if h.logger != nil {
		h.logger.Debug(msg, keyvals...)
	}
}

// ListenAndServe serves the hub on addr until ctx is cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle(Path, h)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("telemetry: server error: %w", err)
	case <-ctx.Done():
		h.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
