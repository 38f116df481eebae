package handlers

import (
	"gis-kpi-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

// render — wrapper over c.HTML that hands every template the current user
// and any pending toasts.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if uVal, ok := c.Get("CurrentUser"); ok {
		if u, ok := uVal.(models.User); ok {
			data["CurrentUser"] = u
			data["CurrentUserName"] = u.DisplayName
			data["CurrentUserEmail"] = u.Email
		}
	}

	data["Toasts"] = takeToasts(c)

	c.HTML(status, tmpl, data)
}
