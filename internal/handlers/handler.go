package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/Maxencd/maxence/internal/config"
	"github.com/Maxencd/maxence/internal/hub"
)

// nicknameRegex matches what the login form allows: Han characters,
// latin letters, digits and underscore.
var nicknameRegex = regexp.MustCompile(`^[\x{4e00}-\x{9fa5}a-zA-Z0-9_]+$`)

// maxNicknameLen is the nickname length cap, counted in runes.
const maxNicknameLen = 20

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	cfg  *config.Config
	room *hub.Hub
}

// NewHandler creates a new Handler with the given dependencies.
func NewHandler(cfg *config.Config, room *hub.Hub) *Handler {
	return &Handler{cfg: cfg, room: room}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}
