package hub

import (
	"sync/atomic"
	"time"

	"github.com/Maxencd/maxence/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = 30 * time.Second
	maxFrameSize   = 8 * 1024
	sendBufferSize = 64
)

// Conn is the subset of *websocket.Conn the hub uses; tests supply fakes.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
	Close() error
}

// client is one connected websocket session. The nickname stays empty
// until a join_room is accepted.
type client struct {
	id       string
	nickname string
	conn     Conn
	send     chan []byte
	hub      *Hub
	closed   atomic.Bool
}

func newClient(id string, conn Conn, h *Hub) *client {
	return &client{
		id:   id,
		conn: conn,
		hub:  h,
		send: make(chan []byte, sendBufferSize),
	}
}

func (c *client) readPump() {
	defer c.close()
	c.conn.SetReadLimit(maxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		env, err := protocol.Decode(payload)
		if err != nil {
			c.hub.log.Debug().Err(err).Str("client", c.id).Msg("bad frame")
			continue
		}
		c.hub.route(c, env)
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.close()
	}()
	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(closeMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(textMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(pingMessage, nil); err != nil {
				return
			}
		}
	}
}

// push queues a frame without ever blocking the hub; a full buffer means
// the consumer is too slow and the frame is dropped.
func (c *client) push(frame []byte) {
	if c.closed.Load() {
		return
	}
	select {
	case c.send <- frame:
	default:
	}
}

func (c *client) close() {
	if c.closed.Swap(true) {
		return
	}
	c.hub.drop(c)
	close(c.send)
	_ = c.conn.Close()
}
