// Package session drives one chat session. The controller owns the
// transport connection, routes inbound events into the renderer and
// presence view, and turns user input into outbound events. All
// collaborators are injected; the controller holds no globals.
package session

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Maxencd/maxence/internal/command"
	"github.com/Maxencd/maxence/internal/models"
	"github.com/Maxencd/maxence/internal/persona"
	"github.com/Maxencd/maxence/internal/protocol"
	"github.com/Maxencd/maxence/internal/render"
)

// State is the connection state of a session.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateJoined
)

// joinErrorRedirectDelay is how long the join failure notice stays on
// screen before the session navigates back to the login page.
const joinErrorRedirectDelay = 2 * time.Second

// Transport is the event connection to the chat server.
type Transport interface {
	Emit(event string, data any) error
	Close() error
}

// Navigator receives page redirects (back to login on failure or logout).
type Navigator interface {
	Redirect(path string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Redirect(path string) { f(path) }

// Config carries the controller's dependencies.
type Config struct {
	Nickname  string
	Transport Transport
	Renderer  *render.Renderer
	Presence  *render.Presence
	Navigator Navigator
	Logger    zerolog.Logger

	// After schedules a deferred call; nil means time.AfterFunc. A
	// scheduled call cannot be canceled: a reply timer that fires after
	// logout renders into the detached transcript.
	After func(d time.Duration, fn func())
}

// Controller is the session state machine.
type Controller struct {
	nickname  string
	transport Transport
	renderer  *render.Renderer
	presence  *render.Presence
	navigator Navigator
	log       zerolog.Logger
	after     func(d time.Duration, fn func())
	now       func() time.Time

	state State
}

// New creates a controller in the Disconnected state.
func New(cfg Config) *Controller {
	after := cfg.After
	if after == nil {
		after = func(d time.Duration, fn func()) { time.AfterFunc(d, fn) }
	}
	return &Controller{
		nickname:  cfg.Nickname,
		transport: cfg.Transport,
		renderer:  cfg.Renderer,
		presence:  cfg.Presence,
		navigator: cfg.Navigator,
		log:       cfg.Logger,
		after:     after,
		now:       time.Now,
	}
}

// State returns the current connection state.
func (c *Controller) State() State { return c.state }

// Dispatch routes one decoded server event to its handler.
func (c *Controller) Dispatch(env protocol.Envelope) error {
	switch env.Event {
	case protocol.EventJoinSuccess:
		var n protocol.Notice
		if err := json.Unmarshal(env.Data, &n); err != nil {
			return err
		}
		c.HandleJoinSuccess(n.Message)
	case protocol.EventJoinError:
		var n protocol.Notice
		if err := json.Unmarshal(env.Data, &n); err != nil {
			return err
		}
		c.HandleJoinError(n.Message)
	case protocol.EventNewMessage:
		var msg models.Message
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			return err
		}
		c.HandleNewMessage(msg)
	case protocol.EventUserJoined:
		var ev protocol.UserEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return err
		}
		c.HandleUserJoined(ev.Nickname)
	case protocol.EventUserLeft:
		var ev protocol.UserEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return err
		}
		c.HandleUserLeft(ev.Nickname)
	case protocol.EventUpdateUsers:
		var list protocol.UserList
		if err := json.Unmarshal(env.Data, &list); err != nil {
			return err
		}
		c.HandlePresence(list.Users)
	default:
		return fmt.Errorf("unknown event %q", env.Event)
	}
	return nil
}

// HandleConnect reacts to the transport coming up: request to join the
// room under the session nickname.
func (c *Controller) HandleConnect() {
	c.state = StateConnecting
	if err := c.transport.Emit(protocol.EventJoinRoom, protocol.JoinRoom{Nickname: c.nickname}); err != nil {
		c.log.Error().Err(err).Msg("emit join_room")
	}
}

// HandleDisconnect reacts to the transport dropping. There is no
// automatic reconnect; recovery needs a full page reload.
func (c *Controller) HandleDisconnect() {
	c.state = StateDisconnected
	c.renderer.AppendSystem("连接已断开，请刷新页面重试", false)
}

// HandleJoinSuccess moves the session to Joined.
func (c *Controller) HandleJoinSuccess(message string) {
	c.state = StateJoined
	c.renderer.AppendSystem(message, false)
}

// HandleJoinError surfaces the failure and schedules the redirect back
// to the login page. The session is abandoned.
func (c *Controller) HandleJoinError(message string) {
	c.renderer.AppendSystem("加入失败: "+message, true)
	c.after(joinErrorRedirectDelay, func() {
		c.navigator.Redirect("/login")
	})
}

// HandleNewMessage renders a broadcast message. If it is a persona query
// authored by the local user, a synthetic reply is scheduled and rendered
// locally after the persona's delay; it is never sent over the transport,
// so other participants do not see persona replies.
func (c *Controller) HandleNewMessage(msg models.Message) {
	c.renderer.Append(msg)

	p := persona.ByType(msg.Type)
	if p == nil || msg.Nickname != c.nickname {
		return
	}
	prompt := msg.Content
	c.after(p.ReplyDelay, func() {
		c.renderer.Append(models.Message{
			Type:      p.Type,
			Nickname:  p.Name,
			Content:   p.Reply(prompt),
			Timestamp: c.now().Format(models.TimeLayout),
		})
	})
}

// HandleUserJoined renders a join notice for another participant.
func (c *Controller) HandleUserJoined(nickname string) {
	c.renderer.AppendSystem(nickname+" 加入了聊天室", false)
}

// HandleUserLeft renders a leave notice.
func (c *Controller) HandleUserLeft(nickname string) {
	c.renderer.AppendSystem(nickname+" 离开了聊天室", false)
}

// HandlePresence forwards a presence snapshot to the presence view.
func (c *Controller) HandlePresence(users []string) {
	c.presence.Update(users)
}

// Send parses one input line and emits it. Sends are fire-and-forget:
// the input is considered consumed whether or not the server takes it.
func (c *Controller) Send(raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" || c.state == StateDisconnected {
		return
	}

	cmd := command.Parse(raw)
	var payload protocol.SendMessage
	switch cmd.Kind {
	case command.KindMovie:
		payload = protocol.SendMessage{Type: models.TypeMovie, Content: cmd.URL}
	case command.KindPersona:
		payload = protocol.SendMessage{Type: persona.ByName(cmd.Persona).Type, Content: cmd.Prompt}
	default:
		payload = protocol.SendMessage{Message: cmd.Text}
	}

	if err := c.transport.Emit(protocol.EventSendMessage, payload); err != nil {
		c.log.Error().Err(err).Msg("emit send_message")
	}
}

// Logout leaves the room if joined, tears down the transport and
// navigates back to the login page.
func (c *Controller) Logout() {
	if c.state != StateDisconnected {
		if err := c.transport.Emit(protocol.EventLeaveRoom, nil); err != nil {
			c.log.Error().Err(err).Msg("emit leave_room")
		}
	}
	if err := c.transport.Close(); err != nil {
		c.log.Debug().Err(err).Msg("close transport")
	}
	c.state = StateDisconnected
	c.navigator.Redirect("/login")
}
