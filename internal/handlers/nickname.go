package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/Maxencd/maxence/internal/metrics"
)

// ValidateRequest is the request body for nickname validation.
type ValidateRequest struct {
	Nickname string `json:"nickname"`
}

// ValidateResponse reports whether a nickname may be used.
type ValidateResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// ValidateNickname handles POST /api/validate_nickname. Uniqueness is
// only checked against currently joined users; a name frees up the
// moment its owner leaves.
func (h *Handler) ValidateNickname(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	nickname := strings.TrimSpace(req.Nickname)
	if reason, message := checkNickname(nickname); reason != "" {
		metrics.NicknameRejections.WithLabelValues(reason).Inc()
		h.JSON(w, http.StatusOK, ValidateResponse{Valid: false, Message: message})
		return
	}
	if h.room.NicknameInUse(nickname) {
		metrics.NicknameRejections.WithLabelValues("taken").Inc()
		h.JSON(w, http.StatusOK, ValidateResponse{Valid: false, Message: "昵称已被使用"})
		return
	}

	h.JSON(w, http.StatusOK, ValidateResponse{Valid: true})
}

// checkNickname applies the login form rules. Returns a metric reason
// and a user-facing message, both empty when the name is acceptable.
func checkNickname(nickname string) (reason, message string) {
	switch {
	case nickname == "":
		return "empty", "昵称不能为空"
	case utf8.RuneCountInString(nickname) > maxNicknameLen:
		return "too_long", "昵称长度不能超过20个字符"
	case !nicknameRegex.MatchString(nickname):
		return "charset", "昵称只能包含中文、英文、数字和下划线"
	}
	return "", ""
}
