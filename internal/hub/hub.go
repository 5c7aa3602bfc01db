// Package hub owns the single chat room: connected clients, the
// nickname registry, and event fan-out. All room state lives in memory
// and dies with the process.
package hub

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/Maxencd/maxence/internal/metrics"
	"github.com/Maxencd/maxence/internal/models"
	"github.com/Maxencd/maxence/internal/protocol"
)

// Gorilla frame types, aliased so the pumps stay decoupled from the
// websocket package.
const (
	textMessage  = websocket.TextMessage
	pingMessage  = websocket.PingMessage
	closeMessage = websocket.CloseMessage
)

// Hub is the single chat room.
type Hub struct {
	log      zerolog.Logger
	upgrader websocket.Upgrader
	now      func() time.Time

	mu      sync.Mutex
	clients map[string]*client // connection id -> client
	order   []string           // nicknames in join order, drives update_users
}

// New creates an empty room.
func New(log zerolog.Logger) *Hub {
	return &Hub{
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		now:     time.Now,
		clients: make(map[string]*client),
	}
}

// ServeWS upgrades the request and runs the client until it disconnects.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("websocket upgrade")
		return
	}
	c := newClient(uuid.NewString(), conn, h)
	h.attach(c)
	h.log.Info().Str("client", c.id).Msg("client connected")
	go c.writePump()
	c.readPump()
}

func (h *Hub) attach(c *client) {
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	metrics.WSConnections.Inc()
}

// NicknameInUse reports whether a joined client already holds the name.
func (h *Hub) NicknameInUse(nickname string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.findNickLocked(nickname)
}

func (h *Hub) findNickLocked(nickname string) bool {
	for _, c := range h.clients {
		if c.nickname == nickname {
			return true
		}
	}
	return false
}

// Users returns the joined nicknames in join order.
func (h *Hub) Users() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	users := make([]string, len(h.order))
	copy(users, h.order)
	return users
}

// route dispatches one inbound client frame.
func (h *Hub) route(c *client, env protocol.Envelope) {
	switch env.Event {
	case protocol.EventJoinRoom:
		var req protocol.JoinRoom
		if err := unmarshalData(env, &req); err != nil {
			return
		}
		h.joinRoom(c, req.Nickname)
	case protocol.EventSendMessage:
		var req protocol.SendMessage
		if err := unmarshalData(env, &req); err != nil {
			return
		}
		h.sendMessage(c, req)
	case protocol.EventLeaveRoom:
		h.leave(c)
	default:
		h.log.Debug().Str("event", env.Event).Msg("unknown client event")
	}
}

// joinRoom admits a client under a nickname, or rejects a duplicate.
// Rejection keeps the connection open, mirroring the original server.
func (h *Hub) joinRoom(c *client, nickname string) {
	h.mu.Lock()
	if h.findNickLocked(nickname) {
		h.mu.Unlock()
		h.unicast(c, protocol.EventJoinError, protocol.Notice{Message: "昵称已被使用"})
		return
	}
	c.nickname = nickname
	h.order = append(h.order, nickname)
	users := make([]string, len(h.order))
	copy(users, h.order)
	h.mu.Unlock()

	metrics.RoomJoins.Inc()
	h.log.Info().Str("nickname", nickname).Msg("user joined")

	ts := h.now().Format(models.TimeLayout)
	h.unicast(c, protocol.EventJoinSuccess, protocol.Notice{Message: "成功加入聊天室，" + nickname + "！"})
	h.broadcast(protocol.EventUserJoined, protocol.UserEvent{Nickname: nickname, Timestamp: ts})
	h.broadcast(protocol.EventUpdateUsers, protocol.UserList{Users: users})
}

// sendMessage broadcasts a chat message from a joined client to the
// whole room, sender included.
func (h *Hub) sendMessage(c *client, req protocol.SendMessage) {
	if c.nickname == "" {
		return
	}

	typ := req.Type
	var text string
	switch typ {
	case models.TypeMovie, models.TypeAIChat, models.TypeMaxence:
		// The sender already parsed the "@" command.
		text = req.Content
	default:
		typ, text = routeCommand(req.Message)
	}

	msg := models.Message{
		ID:        ulid.Make().String(),
		Type:      typ,
		Nickname:  c.nickname,
		Content:   text,
		Timestamp: h.now().Format(models.TimeLayout),
	}
	metrics.MessagesBroadcast.WithLabelValues(string(typ)).Inc()
	h.log.Info().Str("nickname", c.nickname).Str("type", string(typ)).Msg("message")
	h.broadcast(protocol.EventNewMessage, msg)
}

// routeCommand mirrors the client-side "@" parsing for raw clients that
// send the unparsed line. Matching here is on the exact first token.
func routeCommand(text string) (models.MessageType, string) {
	if !strings.HasPrefix(text, "@") {
		return models.TypeText, text
	}
	head, rest, hasRest := strings.Cut(text, " ")
	switch strings.ToLower(head) {
	case "@电影":
		if hasRest {
			return models.TypeMovie, strings.TrimSpace(rest)
		}
	case "@川小农":
		return models.TypeAIChat, strings.TrimSpace(rest)
	case "@maxence":
		return models.TypeMaxence, strings.TrimSpace(rest)
	}
	return models.TypeText, text
}

// leave handles an explicit leave_room. The connection stays open; the
// client just stops being a room member.
func (h *Hub) leave(c *client) {
	h.depart(c, false)
}

// drop is called by the pumps when a connection dies.
func (h *Hub) drop(c *client) {
	h.depart(c, true)
	metrics.WSConnections.Dec()
}

func (h *Hub) depart(c *client, disconnect bool) {
	h.mu.Lock()
	if disconnect {
		delete(h.clients, c.id)
	}
	nickname := c.nickname
	c.nickname = ""
	if nickname != "" {
		for i, n := range h.order {
			if n == nickname {
				h.order = append(h.order[:i], h.order[i+1:]...)
				break
			}
		}
	}
	users := make([]string, len(h.order))
	copy(users, h.order)
	h.mu.Unlock()

	if nickname == "" {
		return
	}
	h.log.Info().Str("nickname", nickname).Msg("user left")
	h.broadcast(protocol.EventUserLeft, protocol.UserEvent{
		Nickname:  nickname,
		Timestamp: h.now().Format(models.TimeLayout),
	})
	h.broadcast(protocol.EventUpdateUsers, protocol.UserList{Users: users})
}

func (h *Hub) unicast(c *client, event string, data any) {
	frame, err := protocol.Encode(event, data)
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("encode frame")
		return
	}
	c.push(frame)
}

func (h *Hub) broadcast(event string, data any) {
	frame, err := protocol.Encode(event, data)
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("encode frame")
		return
	}
	h.mu.Lock()
	targets := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		if c.nickname != "" {
			targets = append(targets, c)
		}
	}
	h.mu.Unlock()
	for _, c := range targets {
		c.push(frame)
	}
}

func unmarshalData(env protocol.Envelope, v any) error {
	if env.Data == nil {
		return nil
	}
	return json.Unmarshal(env.Data, v)
}
