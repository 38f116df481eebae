package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListActivity(c *gin.Context) {
	logs, err := h.activity.List(currentUserID(c))
	if err != nil {
		flash(c, "error", "Could not fetch the activity log.")
	}

	render(c, http.StatusOK, "activity.html", gin.H{
		"logs": logs,
	})
}
