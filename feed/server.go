package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gravityball/ecs"
)

const (
	clientSendBuffer = 32
	shutdownTimeout  = 2 * time.Second
)

// Sink is the part of the world a feed writes to. Every method must be safe to
// call from any goroutine; *ecs.World satisfies it.
type Sink interface {
	RegisterObstacle() int
	ReportObstacle(index int, position, size *cp.Vector)
	RemoveObstacle(index int)
	Commands() *ecs.CommandQueue
}

// Server accepts pop-up windows over websocket. Each connected window owns
// one obstacle and reports its screen rectangle; the server translates it to
// arena coordinates with the current screen offset.
type Server struct {
	sink     Sink
	upgrader websocket.Upgrader
	logger   *log.Logger
	debug    bool

	mu      sync.Mutex
	clients map[*client]struct{}
	pending []int
	offset  cp.Vector
}

type client struct {
	conn   *websocket.Conn
	send   chan Message
	index  int
	closed bool
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn, send: make(chan Message, clientSendBuffer), index: -1}
}

// NewServer returns a server writing to sink. A nil logger uses the standard
// logger.
func NewServer(sink Sink, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		sink:     sink,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		logger:   logger,
		clients:  make(map[*client]struct{}),
	}
}

// SetDebug logs every dropped message.
func (s *Server) SetDebug(debug bool) {
	s.mu.Lock()
	s.debug = debug
	s.mu.Unlock()
}

// SetOffset records where the arena's top-left corner is on screen.
func (s *Server) SetOffset(x, y float64) {
	s.mu.Lock()
	s.offset = cp.Vector{X: x, Y: y}
	s.mu.Unlock()
}

// Handler routes /ws to the feed socket and /windows to a JSON listing of the
// connected windows.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/ws", s.serveWS).Methods(http.MethodGet)
	router.HandleFunc("/windows", s.serveWindows).Methods(http.MethodGet)
	return router
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Printf("feed: listening on %s", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.closeConnections()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("feed: shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("feed: listen %s: %w", addr, err)
	}
}

// Spawn registers a new obstacle and asks connected windows to open one for
// it. The next window that says hello claims the index.
func (s *Server) Spawn() int {
	idx := s.sink.RegisterObstacle()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, idx)
	s.broadcastLocked(IndexMessage(MsgSpawn, idx))
	return idx
}

// CloseAll removes every window's obstacle and tells the windows to close.
func (s *Server) CloseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		if c.index < 0 {
			continue
		}
		s.sink.RemoveObstacle(c.index)
		s.sendLocked(c, IndexMessage(MsgClose, c.index))
		c.index = -1
	}
	for _, idx := range s.pending {
		s.sink.RemoveObstacle(idx)
	}
	s.pending = nil
}

// Focus asks every window to raise itself.
func (s *Server) Focus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broadcastLocked(Message{Type: MsgFocus})
}

// RequestPositions asks every window to report its rectangle.
func (s *Server) RequestPositions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broadcastLocked(Message{Type: MsgPosition})
}

// Windows returns the obstacle indices currently owned by a window.
func (s *Server) Windows() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, 0, len(s.clients))
	for c := range s.clients {
		if c.index >= 0 {
			out = append(out, c.index)
		}
	}
	sort.Ints(out)
	return out
}

// Apply runs a window action. The game calls it for keys pressed in its own
// window.
func (s *Server) Apply(action Action) {
	switch action {
	case ActionSpawn:
		s.Spawn()
	case ActionCloseAll:
		s.CloseAll()
	case ActionFocus:
		s.Focus()
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("feed: upgrade: %v", err)
		return
	}

	c := newClient(conn)
	s.addClient(c)
	go c.writeLoop()
	defer s.dropClient(c)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		msg, err := Decode(data)
		if err == nil {
			err = s.dispatch(c, msg)
		}
		if err != nil {
			s.logDropped(c, err)
		}
	}
}

func (s *Server) serveWindows(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"windows": s.Windows()}); err != nil {
		s.logger.Printf("feed: encode windows: %v", err)
	}
}

func (s *Server) dispatch(c *client, msg Message) error {
	switch msg.Type {
	case MsgHello:
		s.mu.Lock()
		defer s.mu.Unlock()
		if c.index < 0 {
			c.index = s.claimLocked(msg.Index)
		}
		s.sendLocked(c, IndexMessage(MsgSet, c.index))
		return nil
	case MsgPosition:
		pos, size, err := msg.Rect()
		if err != nil {
			return err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if c.index < 0 {
			return fmt.Errorf("%w: position before hello", ErrMalformed)
		}
		if msg.Index != nil && *msg.Index != c.index {
			return fmt.Errorf("%w: window %d reported index %d", ErrMalformed, c.index, *msg.Index)
		}
		local := pos.Sub(s.offset)
		s.sink.ReportObstacle(c.index, &local, &size)
		return nil
	case MsgDeregister:
		s.mu.Lock()
		defer s.mu.Unlock()
		if c.index >= 0 {
			s.sink.RemoveObstacle(c.index)
			c.index = -1
		}
		return nil
	case MsgReset:
		s.RequestPositions()
		return nil
	case string(KeyDown), string(KeyUp), string(KeyPress):
		kind := KeyKind(msg.Type)
		cmds, action := Translate(kind, msg.Key)
		for _, cmd := range cmds {
			s.sink.Commands().Push(cmd)
		}
		if kind == KeyPress {
			s.RequestPositions()
		}
		s.Apply(action)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
}

// claimLocked hands a window the index it asked for if that index is waiting,
// else the oldest waiting index, else a freshly registered one.
func (s *Server) claimLocked(requested *int) int {
	if requested != nil {
		for i, idx := range s.pending {
			if idx == *requested {
				s.pending = append(s.pending[:i], s.pending[i+1:]...)
				return idx
			}
		}
	}
	if len(s.pending) > 0 {
		idx := s.pending[0]
		s.pending = s.pending[1:]
		return idx
	}
	return s.sink.RegisterObstacle()
}

func (s *Server) addClient(c *client) {
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
}

// dropClient forgets a window and removes its obstacle, like a closed pop-up.
func (s *Server) dropClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; !ok {
		return
	}
	delete(s.clients, c)
	if c.index >= 0 {
		s.sink.RemoveObstacle(c.index)
		c.index = -1
	}
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (s *Server) closeConnections() {
	s.mu.Lock()
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()
	for _, c := range clients {
		s.dropClient(c)
	}
}

func (s *Server) broadcastLocked(msg Message) {
	for c := range s.clients {
		s.sendLocked(c, msg)
	}
}

func (s *Server) sendLocked(c *client, msg Message) {
	if c.closed {
		return
	}
	select {
	case c.send <- msg:
	default:
		if s.debug {
			s.logger.Printf("feed: window %d: send buffer full, dropping %s", c.index, msg.Type)
		}
	}
}

func (s *Server) logDropped(c *client, err error) {
	s.mu.Lock()
	debug, idx := s.debug, c.index
	s.mu.Unlock()
	if debug {
		s.logger.Printf("feed: window %d: %v", idx, err)
	}
}

func (c *client) writeLoop() {
	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
