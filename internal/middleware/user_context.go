package middleware

import (
	"gis-kpi-tracker/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// InjectUser loads the logged-in user into the request context so every
// handler and template can reach it.
func InjectUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if uidRaw := sess.Get("user_id"); uidRaw != nil {
			if uid, ok := uidRaw.(uint); ok && uid > 0 {
				var user models.User
				if err := db.First(&user, uid).Error; err == nil {
					c.Set("CurrentUser", user)
				}
			}
		}

		c.Next()
	}
}
