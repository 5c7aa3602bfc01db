package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Maxencd/maxence/internal/config"
	"github.com/Maxencd/maxence/internal/hub"
	"github.com/Maxencd/maxence/internal/protocol"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		Port:       "8080",
		Env:        "test",
		ConfigFile: filepath.Join(t.TempDir(), "config.json"),
	}
	room := hub.New(zerolog.Nop())
	srv := httptest.NewServer(NewRouter(zerolog.Nop(), cfg, room))
	t.Cleanup(srv.Close)
	return srv
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendEvent(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	frame, err := protocol.Encode(event, data)
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		t.Fatal(err)
	}
}

func readEvent(t *testing.T, conn *websocket.Conn) protocol.Envelope {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	env, err := protocol.Decode(raw)
	if err != nil {
		t.Fatal(err)
	}
	return env
}

func TestJoinOverWebsocket(t *testing.T) {
	srv := testServer(t)
	conn := dialWS(t, srv)

	sendEvent(t, conn, protocol.EventJoinRoom, protocol.JoinRoom{Nickname: "alice"})

	env := readEvent(t, conn)
	if env.Event != protocol.EventJoinSuccess {
		t.Fatalf("first event = %q, want join_success", env.Event)
	}
	var notice protocol.Notice
	if err := json.Unmarshal(env.Data, &notice); err != nil {
		t.Fatal(err)
	}
	if notice.Message != "成功加入聊天室，alice！" {
		t.Fatalf("welcome = %q", notice.Message)
	}
	if got := readEvent(t, conn).Event; got != protocol.EventUserJoined {
		t.Fatalf("second event = %q", got)
	}
	env = readEvent(t, conn)
	if env.Event != protocol.EventUpdateUsers {
		t.Fatalf("third event = %q", env.Event)
	}
	var list protocol.UserList
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatal(err)
	}
	if len(list.Users) != 1 || list.Users[0] != "alice" {
		t.Fatalf("users = %v", list.Users)
	}
}

func TestJoinedNicknameRejectedByValidation(t *testing.T) {
	srv := testServer(t)
	conn := dialWS(t, srv)

	sendEvent(t, conn, protocol.EventJoinRoom, protocol.JoinRoom{Nickname: "alice"})
	if got := readEvent(t, conn).Event; got != protocol.EventJoinSuccess {
		t.Fatalf("join failed: %q", got)
	}

	body, _ := json.Marshal(map[string]string{"nickname": "alice"})
	resp, err := http.Post(srv.URL+"/api/validate_nickname", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var result struct {
		Valid   bool   `json:"valid"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Valid || result.Message != "昵称已被使用" {
		t.Fatalf("validation = %+v, want the in-use rejection", result)
	}
}

func TestMessageFansOutToAllMembers(t *testing.T) {
	srv := testServer(t)
	alice := dialWS(t, srv)
	bob := dialWS(t, srv)

	sendEvent(t, alice, protocol.EventJoinRoom, protocol.JoinRoom{Nickname: "alice"})
	readEvent(t, alice) // join_success
	readEvent(t, alice) // user_joined
	readEvent(t, alice) // update_users

	sendEvent(t, bob, protocol.EventJoinRoom, protocol.JoinRoom{Nickname: "bob"})
	readEvent(t, bob) // join_success
	readEvent(t, bob) // user_joined
	readEvent(t, bob) // update_users
	readEvent(t, alice) // bob's user_joined
	readEvent(t, alice) // update_users

	sendEvent(t, alice, protocol.EventSendMessage, protocol.SendMessage{Message: "@电影 http://v.example/1"})

	for _, conn := range []*websocket.Conn{alice, bob} {
		env := readEvent(t, conn)
		if env.Event != protocol.EventNewMessage {
			t.Fatalf("event = %q, want new_message", env.Event)
		}
		var msg struct {
			Type     string `json:"type"`
			Nickname string `json:"nickname"`
			Content  string `json:"content"`
		}
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			t.Fatal(err)
		}
		if msg.Type != "movie" || msg.Nickname != "alice" || msg.Content != "http://v.example/1" {
			t.Fatalf("broadcast = %+v", msg)
		}
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	srv := testServer(t)
	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
