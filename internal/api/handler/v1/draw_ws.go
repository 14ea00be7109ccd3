package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tabhub/tabhub/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production!
	},
}

type SnapshotService interface {
	Snapshot(ctx context.Context, roundIDs []uint) (domain.DrawSnapshot, error)
}

type drawClient struct {
	id       string
	conn     *websocket.Conn
	send     chan []byte
	roundIDs []uint
}

type snapshotMessage struct {
	Type string              `json:"type"`
	Data domain.DrawSnapshot `json:"data"`
}

// DrawFeedHandler pushes whole-state draw snapshots to connected editors.
// Every client receives the full current state of its subscribed rounds, no
// diffs, so concurrently editing clients converge on whatever was committed
// last regardless of message ordering.
type DrawFeedHandler struct {
	svc          SnapshotService
	clients      map[string]*drawClient
	clientsMutex sync.RWMutex
	register     chan *drawClient
	unregister   chan *drawClient
	pending      map[uint]struct{}
	pendingMutex sync.Mutex
	wakeup       chan struct{}
}

func NewDrawFeedHandler(svc SnapshotService) *DrawFeedHandler {
	return &DrawFeedHandler{
		svc:        svc,
		clients:    make(map[string]*drawClient),
		register:   make(chan *drawClient),
		unregister: make(chan *drawClient),
		pending:    make(map[uint]struct{}),
		wakeup:     make(chan struct{}, 1),
	}
}

func (h *DrawFeedHandler) Run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMutex.Lock()
			h.clients[client.id] = client
			h.clientsMutex.Unlock()

			h.sendSnapshot(client)
		case client := <-h.unregister:
			h.clientsMutex.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				close(client.send)
			}
			h.clientsMutex.Unlock()
		case <-h.wakeup:
			roundIDs := h.takePending()
			if len(roundIDs) == 0 {
				continue
			}

			h.clientsMutex.Lock()
			for id, client := range h.clients {
				if !intersects(client.roundIDs, roundIDs) {
					continue
				}
				message, ok := h.buildSnapshot(client.roundIDs)
				if !ok {
					continue
				}
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, id)
				}
			}
			h.clientsMutex.Unlock()
		}
	}
}

// NotifyRounds tells the hub that the draw of the given rounds changed.
// Subscribed clients get a fresh snapshot of their own rounds. Round IDs
// accumulate in a pending set until the hub drains them, so a burst of
// commits coalesces into fewer pushes but never loses one.
func (h *DrawFeedHandler) NotifyRounds(roundIDs ...uint) {
	if len(roundIDs) == 0 {
		return
	}

	h.pendingMutex.Lock()
	for _, id := range roundIDs {
		h.pending[id] = struct{}{}
	}
	h.pendingMutex.Unlock()

	select {
	case h.wakeup <- struct{}{}:
	default:
		// a wakeup is already queued; the pending set carries the IDs
	}
}

func (h *DrawFeedHandler) takePending() []uint {
	h.pendingMutex.Lock()
	defer h.pendingMutex.Unlock()

	if len(h.pending) == 0 {
		return nil
	}

	roundIDs := make([]uint, 0, len(h.pending))
	for id := range h.pending {
		roundIDs = append(roundIDs, id)
	}
	h.pending = make(map[uint]struct{})

	return roundIDs
}

func (h *DrawFeedHandler) sendSnapshot(client *drawClient) {
	message, ok := h.buildSnapshot(client.roundIDs)
	if !ok {
		return
	}

	select {
	case client.send <- message:
	default:
	}
}

func (h *DrawFeedHandler) buildSnapshot(roundIDs []uint) ([]byte, bool) {
	snapshot, err := h.svc.Snapshot(context.Background(), roundIDs)
	if err != nil {
		zap.L().Error("failed to build draw snapshot for feed", zap.Error(err))
		return nil, false
	}

	message, err := json.Marshal(snapshotMessage{Type: "snapshot", Data: snapshot})
	if err != nil {
		zap.L().Error("failed to marshal draw snapshot", zap.Error(err))
		return nil, false
	}

	return message, true
}

// HandleWebSocket godoc
// @Summary      Subscribe to draw updates
// @Description  Establishes a WebSocket connection streaming whole-state snapshots of the subscribed rounds
// @Tags         draws
// @Produce      json
// @Param        rounds  query  string  true  "Comma-separated round IDs"
// @Success      101  {string}  string  "Switching Protocols to WebSocket"
// @Failure      400  {object}  response.Err
// @Router       /draws/ws [get]
func (h *DrawFeedHandler) HandleWebSocket(ctx *gin.Context) {
	roundIDs, respErr := parseRoundIDs(ctx)
	if respErr != nil {
		ctx.AbortWithStatusJSON(respErr.StatusCode, respErr)
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Error("failed to upgrade draw feed connection", zap.Error(err))
		return
	}

	client := &drawClient{
		id:       uuid.NewString(),
		conn:     conn,
		send:     make(chan []byte, 256),
		roundIDs: roundIDs,
	}
	h.register <- client

	go client.writePump()
	go client.readPump(h)
}

func (c *drawClient) writePump() {
	defer func() {
		c.conn.Close()
	}()
	for {
		message, ok := <-c.send
		if !ok {
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err := w.Close(); err != nil {
			return
		}
	}
}

// readPump drains the connection so pings and close frames are processed.
// The feed is one-way, incoming messages are discarded.
func (c *drawClient) readPump(h *DrawFeedHandler) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Warn("draw feed connection closed unexpectedly", zap.Error(err))
			}
			break
		}
	}
}

func intersects(a, b []uint) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}

	return false
}
