package handlers

import (
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Index redirects the root to the login page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusFound)
}

// Login serves the login page.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, "login.html", map[string]any{
		"Servers": h.cfg.Servers(),
	})
}

// Chat serves the chat room page. A missing or already-used nickname
// sends the visitor back to login; the name is only claimed later, when
// the page joins over the websocket.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	nickname := r.URL.Query().Get("nickname")
	if nickname == "" || h.room.NicknameInUse(nickname) {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	h.renderPage(w, "chat.html", map[string]any{
		"Nickname": nickname,
	})
}

func (h *Handler) renderPage(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}
