package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Maxencd/maxence/internal/config"
	"github.com/Maxencd/maxence/internal/hub"
)

func testHandler(t *testing.T) *Handler {
	t.Helper()
	cfg := &config.Config{
		Port:       "8080",
		Env:        "test",
		ConfigFile: filepath.Join(t.TempDir(), "config.json"),
	}
	return NewHandler(cfg, hub.New(zerolog.Nop()))
}

func postValidate(t *testing.T, h *Handler, body string) ValidateResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/validate_nickname", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ValidateNickname(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp ValidateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestValidateNickname(t *testing.T) {
	h := testHandler(t)
	cases := []struct {
		name     string
		nickname string
		valid    bool
		message  string
	}{
		{"ok latin", "alice_99", true, ""},
		{"ok chinese", "张三", true, ""},
		{"empty", "", false, "昵称不能为空"},
		{"whitespace only", "   ", false, "昵称不能为空"},
		{"too long", strings.Repeat("名", 21), false, "昵称长度不能超过20个字符"},
		{"max length ok", strings.Repeat("名", 20), true, ""},
		{"bad charset", "alice!", false, "昵称只能包含中文、英文、数字和下划线"},
		{"embedded space", "a b", false, "昵称只能包含中文、英文、数字和下划线"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, _ := json.Marshal(ValidateRequest{Nickname: tc.nickname})
			resp := postValidate(t, h, string(body))
			if resp.Valid != tc.valid || resp.Message != tc.message {
				t.Fatalf("got %+v, want valid=%v message=%q", resp, tc.valid, tc.message)
			}
		})
	}
}

func TestValidateNicknameBadBody(t *testing.T) {
	h := testHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/validate_nickname", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	h.ValidateNickname(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestServersFallsBackToDefault(t *testing.T) {
	h := testHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/servers", nil)
	w := httptest.NewRecorder()
	h.Servers(w, req)

	var servers []string
	if err := json.Unmarshal(w.Body.Bytes(), &servers); err != nil {
		t.Fatal(err)
	}
	if len(servers) != 1 || servers[0] != "http://localhost:8080" {
		t.Fatalf("servers = %v", servers)
	}
}

func TestIndexRedirectsToLogin(t *testing.T) {
	h := testHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.Index(w, req)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Fatalf("status = %d location = %q", w.Code, w.Header().Get("Location"))
	}
}

func TestLoginPageListsServers(t *testing.T) {
	h := testHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	w := httptest.NewRecorder()
	h.Login(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "聊天室登录") || !strings.Contains(body, "http://localhost:8080") {
		t.Fatalf("unexpected page body: %s", body)
	}
}

func TestChatPageGuardsNickname(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/chat", nil)
	w := httptest.NewRecorder()
	h.Chat(w, req)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Fatalf("missing nickname: status = %d location = %q", w.Code, w.Header().Get("Location"))
	}

	req = httptest.NewRequest(http.MethodGet, "/chat?nickname=alice", nil)
	w = httptest.NewRecorder()
	h.Chat(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "alice") {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	h := testHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.Health(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "healthy" || resp.Checks["room"].Status != "pass" {
		t.Fatalf("health = %+v", resp)
	}
}
