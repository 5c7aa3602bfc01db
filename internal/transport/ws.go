// Package transport connects a session controller to a chat server
// over a websocket, translating wire envelopes into controller calls.
package transport

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Maxencd/maxence/internal/protocol"
	"github.com/Maxencd/maxence/internal/session"
)

const writeWait = 10 * time.Second

// WS is a websocket implementation of session.Transport.
type WS struct {
	conn *websocket.Conn
	log  zerolog.Logger

	writeMu sync.Mutex
	done    chan struct{}
}

// Dial opens the websocket to a chat server given its HTTP base URL.
func Dial(serverURL string, logger zerolog.Logger) (*WS, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws"

	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), http.Header{})
	if err != nil {
		return nil, err
	}
	if resp != nil {
		_ = resp.Body.Close()
	}

	return &WS{conn: conn, log: logger, done: make(chan struct{})}, nil
}

// Run drives the controller: it reports the connection, then reads
// frames until the socket dies, which is reported as a disconnect.
// Blocks until the connection is gone.
func (t *WS) Run(ctrl *session.Controller) {
	ctrl.HandleConnect()
	for {
		_, payload, err := t.conn.ReadMessage()
		if err != nil {
			select {
			case <-t.done:
				// closed on purpose, no disconnect notice
			default:
				ctrl.HandleDisconnect()
			}
			return
		}
		env, err := protocol.Decode(payload)
		if err != nil {
			t.log.Debug().Err(err).Msg("bad frame")
			continue
		}
		if err := ctrl.Dispatch(env); err != nil {
			t.log.Debug().Err(err).Str("event", env.Event).Msg("dispatch")
		}
	}
}

// Emit sends one event to the server. Fire-and-forget: a write error is
// returned but there is no retry and no delivery confirmation.
func (t *WS) Emit(event string, data any) error {
	frame, err := protocol.Encode(event, data)
	if err != nil {
		return err
	}
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	_ = t.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return t.conn.WriteMessage(websocket.TextMessage, frame)
}

// Close tears the connection down.
func (t *WS) Close() error {
	select {
	case <-t.done:
		return nil
	default:
		close(t.done)
	}
	return t.conn.Close()
}
