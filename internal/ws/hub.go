package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/jeffschwMSFT/clrkahoot/internal/api"
)

// maxConcurrentWrites bounds the fan-out of a single broadcast.
const maxConcurrentWrites = 100

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// conn is one client connection. Writes are serialized per connection;
// gorilla does not allow concurrent writers.
type conn struct {
	id   string
	mu   sync.Mutex
	sock *websocket.Conn
}

func (c *conn) write(msg api.ServerMessage) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sock.WriteMessage(websocket.TextMessage, b)
}

// Hub tracks live connections and their room groups, and implements
// api.Messenger on top of them.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*conn            // connection ID -> conn
	rooms map[string]map[string]*conn // room -> connection ID -> conn
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[string]*conn),
		rooms: make(map[string]map[string]*conn),
	}
}

// AddToRoom associates the connection with a room's broadcast group.
func (h *Hub) AddToRoom(connectionID, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.conns[connectionID]
	if !ok {
		return
	}
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[string]*conn)
	}
	h.rooms[room][connectionID] = c
}

// Unicast sends the message to a single connection.
func (h *Hub) Unicast(connectionID string, msg api.ServerMessage) {
	h.mu.RLock()
	c, ok := h.conns[connectionID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	if err := c.write(msg); err != nil {
		slog.Warn("ws: unicast failed", "connection", connectionID, "error", err)
		h.remove(connectionID)
	}
}

// Broadcast sends the message to every connection in the room's group.
// The member list is snapshotted first so no lock is held during writes;
// connections that fail to take the write are pruned.
func (h *Hub) Broadcast(room string, msg api.ServerMessage) {
	h.mu.RLock()
	members := make([]*conn, 0, len(h.rooms[room]))
	for _, c := range h.rooms[room] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	var eg errgroup.Group
	eg.SetLimit(maxConcurrentWrites)
	for _, c := range members {
		c := c
		eg.Go(func() error {
			if err := c.write(msg); err != nil {
				slog.Warn("ws: broadcast write failed", "room", room, "connection", c.id, "error", err)
				h.remove(c.id)
			}
			return nil
		})
	}
	_ = eg.Wait()
}

// register adds the connection to the hub under a fresh connection ID.
func (h *Hub) register(sock *websocket.Conn) *conn {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}

	c := &conn{id: id.String(), sock: sock}
	h.mu.Lock()
	h.conns[c.id] = c
	h.mu.Unlock()
	return c
}

// remove drops the connection from the hub and from every room group.
// Rooms themselves are never pruned; the session registry owns room
// lifetime.
func (h *Hub) remove(connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.conns, connectionID)
	for _, group := range h.rooms {
		delete(group, connectionID)
	}
}

// Handler upgrades the request and pumps inbound events into the API
// until the socket closes, which counts as the disconnect event.
func (h *Hub) Handler(a *api.API) gin.HandlerFunc {
	return func(c *gin.Context) {
		sock, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "ws: upgrade failed", "error", err)
			return
		}

		cn := h.register(sock)
		slog.InfoContext(c.Request.Context(), "ws: connected", "connection", cn.id)

		h.readPump(cn, a)
	}
}

func (h *Hub) readPump(cn *conn, a *api.API) {
	ctx := context.Background()
	defer func() {
		h.remove(cn.id)
		a.Disconnect(ctx, cn.id)
		_ = cn.sock.Close()
		slog.InfoContext(ctx, "ws: disconnected", "connection", cn.id)
	}()

	for {
		_, raw, err := cn.sock.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.WarnContext(ctx, "ws: read failed", "connection", cn.id, "error", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			slog.WarnContext(ctx, "ws: invalid client message", "connection", cn.id, "error", err)
			continue
		}

		h.dispatch(ctx, cn.id, a, msg)
	}
}

func (h *Hub) dispatch(ctx context.Context, connID string, a *api.API, msg ClientMessage) {
	switch msg.Action {
	case ActionJoin:
		a.Join(ctx, connID, msg.Room, msg.Name)
	case ActionAddUpdateQuestion:
		a.AddUpdateQuestion(ctx, connID, msg.Room, msg.Number, msg.Content, msg.Correct, msg.Wrong1, msg.Wrong2, msg.Wrong3)
	case ActionDeleteQuestion:
		a.DeleteQuestion(ctx, connID, msg.Room, msg.Number)
	case ActionGetQuestion:
		a.GetQuestion(ctx, connID, msg.Room, msg.Number, msg.Broadcast)
	case ActionFinishQuestion:
		a.FinishQuestion(ctx, connID, msg.Room, msg.Number)
	case ActionAnswer:
		a.Answer(ctx, connID, msg.Room, msg.Number, msg.Answer)
	default:
		slog.WarnContext(ctx, "ws: unknown action", "connection", connID, "action", msg.Action)
	}
}
