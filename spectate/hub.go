// Package spectate streams frames to read-only websocket viewers.
package spectate

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"grid-snake/driver"
)

const (
	sendBuffer   = 8 // frames queued per viewer before new ones are dropped
	writeTimeout = 5 * time.Second
)

// client is one connected viewer
type client struct {
	id   string
	ws   *websocket.Conn
	send chan []byte
}

// Hub fans frames out to every viewer. It implements driver.Renderer.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*client
	last     []byte
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*client),
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  256,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// viewers cannot change the game
				return true
			},
		},
	}
}

// Render encodes fr and queues it for every viewer. Viewers whose queue is
// full miss the frame.
func (h *Hub) Render(fr driver.Frame) {
	data, err := json.Marshal(NewFrameMsg(fr))
	if err != nil {
		h.log.Error().Err(err).Msg("encode frame")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = data
	for _, c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.log.Trace().Str("viewer", c.id).Msg("frame dropped")
		}
	}
}

// Count returns the number of connected viewers
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Last returns the latest encoded frame, or nil before the first one
func (h *Hub) Last() []byte {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.last
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
	if h.last != nil {
		c.send <- h.last
	}
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		close(c.send)
		delete(h.clients, id)
	}
}

// Router exposes the stream and a couple of plain HTTP endpoints
func (h *Hub) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/ws", h.serveWS)
	r.Get("/state", h.serveState)
	r.Get("/healthz", h.serveHealth)
	return r
}

func (h *Hub) serveState(w http.ResponseWriter, r *http.Request) {
	last := h.Last()
	if last == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(last)
}

func (h *Hub) serveHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"viewers": h.Count(),
	})
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("ws upgrade")
		return
	}

	c := &client{
		id:   uuid.New().String(),
		ws:   ws,
		send: make(chan []byte, sendBuffer),
	}
	h.add(c)
	h.log.Info().Str("viewer", c.id).Str("remote", r.RemoteAddr).Msg("viewer connected")

	go h.writeLoop(c)
	h.readLoop(c)
}

// readLoop discards anything the viewer sends and returns once it goes away
func (h *Hub) readLoop(c *client) {
	defer func() {
		h.remove(c.id)
		c.ws.Close()
		h.log.Info().Str("viewer", c.id).Msg("viewer disconnected")
	}()

	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug().Err(err).Str("viewer", c.id).Msg("ws read")
			}
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	for data := range c.send {
		_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Debug().Err(err).Str("viewer", c.id).Msg("ws write")
			c.ws.Close()
			return
		}
	}
	_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Serve listens on addr until ctx is done
func Serve(ctx context.Context, addr string, h *Hub) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.log.Info().Str("addr", addr).Msg("spectator stream listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "spectator server")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "spectator shutdown")
		}
		return nil
	}
}
