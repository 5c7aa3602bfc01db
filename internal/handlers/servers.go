package handlers

import "net/http"

// Servers handles GET /api/servers: the selectable chat server list
// for the login page. Failures inside config degrade to the default
// entry, so this always answers 200 with at least one address.
func (h *Handler) Servers(w http.ResponseWriter, r *http.Request) {
	h.JSON(w, http.StatusOK, h.cfg.Servers())
}
