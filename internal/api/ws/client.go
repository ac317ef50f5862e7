package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Aung-Nyi-Thant/KeepMemories/internal/model"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/services/playground"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Outbound event buffer. A client that cannot drain this fast
	// enough is dropped rather than allowed to stall the world.
	sendBufferSize = 64
)

// Client pumps messages between one websocket connection and the
// playground. It implements playground.Sender for the outbound side.
type Client struct {
	playerID   model.PlayerID
	conn       *websocket.Conn
	playground *playground.Server
	logger     *slog.Logger

	send      chan any
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(playerID model.PlayerID, conn *websocket.Conn, pg *playground.Server, logger *slog.Logger) *Client {
	return &Client{
		playerID:   playerID,
		conn:       conn,
		playground: pg,
		logger:     logger,
		send:       make(chan any, sendBufferSize),
		done:       make(chan struct{}),
	}
}

// Send enqueues an event for delivery. It never blocks; if the buffer
// is full the connection is marked for teardown.
func (c *Client) Send(event any) {
	select {
	case <-c.done:
	case c.send <- event:
	default:
		c.logger.Warn("send buffer full, dropping client",
			slog.String("player_id", string(c.playerID)))
		c.shutdown()
	}
}

// Close tears the connection down. The playground calls this when it
// evicts a connection, including a stale one displaced by a reconnect.
func (c *Client) Close() {
	c.shutdown()
}

func (c *Client) shutdown() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// readPump reads client messages until the connection dies, then runs
// the disconnect cascade. One goroutine per connection.
func (c *Client) readPump() {
	defer func() {
		c.playground.Disconnect(c.playerID, c)
		c.shutdown()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read error",
					slog.String("player_id", string(c.playerID)),
					slog.Any("error", err))
			}
			return
		}
		c.handleMessage(raw)
	}
}

// writePump delivers queued events and keeps the connection alive with
// pings. One goroutine per connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case event := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage decodes one client message and applies it. Failures
// are reported to this client only; nobody else hears about them.
func (c *Client) handleMessage(raw []byte) {
	var msg clientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("invalid message")
		return
	}

	var err error
	switch msg.Type {
	case msgTypeMove:
		err = c.playground.Move(c.playerID, msg.X, msg.Y, msg.Direction, msg.IsMoving)
	case msgTypeInvite:
		err = c.playground.Invite(c.playerID, model.PlayerID(msg.TargetID))
	case msgTypeInviteAccept:
		err = c.playground.Accept(c.playerID, model.PlayerID(msg.FromID))
	case msgTypeInviteDecline:
		err = c.playground.Decline(c.playerID, model.PlayerID(msg.FromID))
	case msgTypeMessage:
		err = c.playground.SendMessage(c.playerID, msg.RoomID, msg.Message)
	case msgTypeLeaveChat:
		err = c.playground.LeaveRoom(c.playerID, msg.RoomID)
	default:
		c.sendError("unknown message type")
		return
	}

	if err != nil {
		c.sendError(errorReason(err))
	}
}

func (c *Client) sendError(message string) {
	c.Send(playground.ErrorEvent{
		Type:    playground.EventTypeError,
		Message: message,
	})
}
