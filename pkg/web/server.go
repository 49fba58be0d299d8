// Package web serves interactive adventure sessions over WebSocket,
// one independent game per connection, alongside health and Prometheus
// metrics endpoints.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pforhan/scottFree2025/pkg/game"
	"github.com/pforhan/scottFree2025/pkg/gamedb"
	"github.com/pforhan/scottFree2025/pkg/lang"
)

// Server provides WebSocket transport for adventure sessions.
type Server struct {
	db   *gamedb.Database
	text *lang.DB

	httpSrv   *http.Server
	mux       *http.ServeMux
	upgrader  websocket.Upgrader
	metrics   *Metrics
	startTime time.Time
}

// NewServer creates a web server over a loaded game database.
func NewServer(db *gamedb.Database, text *lang.DB, addr string) *Server {
	s := &Server{
		db:        db,
		text:      text,
		mux:       http.NewServeMux(),
		startTime: time.Now(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.metrics = NewMetrics(s.startTime)
	s.mux.Handle("GET /metrics", s.metrics.Handler())

	s.httpSrv = &http.Server{
		Addr:    addr,
		Handler: s.mux,
	}
	return s
}

// Start begins listening on plain HTTP.
func (s *Server) Start() error {
	log.Printf("web: listening on %s", s.httpSrv.Addr)
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop gracefully shuts down the web server.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// WSMessage is the JSON frame format for WebSocket communication.
type WSMessage struct {
	Type  string   `json:"type"`
	Text  string   `json:"text,omitempty"`
	Exits []string `json:"exits,omitempty"`
	Items []string `json:"items,omitempty"`
}

// handleWebSocket upgrades the connection and runs a fresh session over
// it until the game ends or the client disconnects.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("web: upgrade error: %v", err)
		return
	}

	term := newWSTerminal(conn)
	adv := game.New(s.db, s.text, term, nil)
	term.adv = adv

	s.metrics.sessionsTotal.Inc()
	s.metrics.sessionsActive.Inc()
	log.Printf("web: session started from %s", r.RemoteAddr)

	go term.readLoop(s.metrics)
	go func() {
		defer func() {
			s.metrics.sessionsActive.Dec()
			if adv.Finished() {
				s.metrics.gamesFinished.Inc()
			}
			term.shutdown()
			conn.Close()
			log.Printf("web: session closed from %s", r.RemoteAddr)
		}()

		adv.Run(nil)
		for adv.Tick() {
			if term.gone() {
				return
			}
		}
	}()
}

// wsTerminal implements game.Terminal over a WebSocket connection. The
// read loop feeds input lines through a channel so the session
// goroutine can block on ReadInput.
type wsTerminal struct {
	conn  *websocket.Conn
	wmu   sync.Mutex
	adv   *game.Adventure
	input chan string
	done  chan struct{}

	mu       sync.Mutex
	closed   bool
	shutDown bool
}

func newWSTerminal(conn *websocket.Conn) *wsTerminal {
	return &wsTerminal{
		conn:  conn,
		input: make(chan string, 4),
		done:  make(chan struct{}),
	}
}

func (t *wsTerminal) send(msg WSMessage) {
	t.wmu.Lock()
	defer t.wmu.Unlock()
	t.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	t.conn.WriteJSON(msg)
}

func (t *wsTerminal) gone() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

func (t *wsTerminal) markClosed() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
}

// shutdown releases the read pump once the session goroutine is done
// consuming input.
func (t *wsTerminal) shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.shutDown {
		t.shutDown = true
		close(t.done)
	}
}

// forward hands one input line to the session. Reports false once the
// session has shut down; the input channel holds only a few lines and
// nothing drains it after that.
func (t *wsTerminal) forward(text string) bool {
	select {
	case t.input <- text:
		return true
	case <-t.done:
		return false
	}
}

// readLoop pumps client frames into the input channel until the
// connection drops.
func (t *wsTerminal) readLoop(m *Metrics) {
	defer func() {
		t.markClosed()
		close(t.input)
	}()
	for {
		_, data, err := t.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("web: read error: %v", err)
			}
			return
		}
		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			t.send(WSMessage{Type: "error", Text: "Invalid JSON message"})
			continue
		}
		if msg.Type != "input" {
			t.send(WSMessage{Type: "error", Text: fmt.Sprintf("Unknown message type: %s", msg.Type)})
			continue
		}
		m.commandsTotal.Inc()
		if !t.forward(msg.Text) {
			return
		}
	}
}

func (t *wsTerminal) NotifyRoomChanged() {
	t.send(WSMessage{
		Type:  "room",
		Text:  t.adv.DescribeRoom(),
		Exits: t.adv.DescribeExits(),
		Items: t.adv.DescribeItems(),
	})
}

func (t *wsTerminal) Print(s string) {
	t.send(WSMessage{Type: "text", Text: s})
}

func (t *wsTerminal) ClearScreen() {
	t.send(WSMessage{Type: "clear"})
}

func (t *wsTerminal) Prompt(s string) {
	t.send(WSMessage{Type: "prompt", Text: s})
}

// ReadInput blocks on the input channel. A dropped connection yields a
// '#'-prefixed line so the command reader consumes it without touching
// game state; the session goroutine then notices the closed terminal.
func (t *wsTerminal) ReadInput() string {
	line, ok := <-t.input
	if !ok {
		return "#disconnected"
	}
	return strings.TrimRight(line, "\r\n")
}

func (t *wsTerminal) Delay(d time.Duration) {
	time.Sleep(d)
}

// SaveStream is unsupported over WebSocket; sessions are ephemeral.
func (t *wsTerminal) SaveStream() (io.WriteCloser, error) {
	return nil, fmt.Errorf("web: saving not supported")
}

// LoadStream is unsupported over WebSocket.
func (t *wsTerminal) LoadStream() (io.ReadCloser, error) {
	return nil, fmt.Errorf("web: restoring not supported")
}

// --- Health Handler ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":         "ok",
		"adventure":      s.db.Tail.Adventure,
		"version":        s.db.Tail.Version,
		"uptime_seconds": time.Since(s.startTime).Seconds(),
	})
}
