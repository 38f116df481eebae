package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListSessions(c *gin.Context) {
	list, err := h.sessions.List(currentUserID(c))
	if err != nil {
		flash(c, "error", "Could not fetch session history.")
	}

	render(c, http.StatusOK, "sessions.html", gin.H{
		"sessions": list,
	})
}
