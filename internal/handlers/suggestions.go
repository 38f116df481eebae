package handlers

import (
	"errors"
	"net/http"

	"gis-kpi-tracker/internal/ai"
	"gis-kpi-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

// KPISuggestions serves the role-keyed suggestion lookup the intake form
// fires on every role change. The response always names the role it was
// generated for, and a request superseded by a newer one comes back with
// stale=true so the form drops it.
func (h *Handler) KPISuggestions(c *gin.Context) {
	role := models.Role(c.Query("role"))
	if !role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}

	suggestions, seq, err := h.suggester.Request(c.Request.Context(), currentUserID(c), role)
	if errors.Is(err, ai.ErrStale) {
		c.JSON(http.StatusOK, gin.H{
			"role":  role,
			"seq":   seq,
			"stale": true,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not fetch KPI suggestions."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"role":        role,
		"seq":         seq,
		"stale":       false,
		"suggestions": suggestions,
	})
}
