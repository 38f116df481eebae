package server

import (
	"html/template"
	"net/http"
	"time"

	"gis-kpi-tracker/internal/config"
	"gis-kpi-tracker/internal/handlers"
	"gis-kpi-tracker/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func NewRouter(cfg *config.Config, db *gorm.DB, h *handlers.Handler) *gin.Engine {
	r := gin.Default()

	r.Static("/static", "./web/static")

	r.SetFuncMap(template.FuncMap{
		"eq": func(a, b interface{}) bool { return a == b },
		"fmtTime": func(t time.Time) string {
			return t.Format("Jan 2, 2006 15:04:05")
		},
	})
	r.LoadHTMLGlob("web/templates/*.html")

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("gis_kpi_session", store))

	r.Use(middleware.InjectUser(db))

	// LANDING
	r.GET("/", h.IndexPage)

	// AUTH
	r.GET("/register", h.ShowRegister)
	r.POST("/register", h.Register)
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	// DASHBOARD: stats + intake form + issue list
	auth.GET("/dashboard", h.Dashboard)

	// ISSUES
	auth.POST("/issues", h.CreateIssue)
	auth.POST("/issues/:id", h.UpdateIssue)
	auth.POST("/issues/:id/delete", h.DeleteIssue)

	// KPI suggestions for the intake form (role change)
	auth.GET("/api/kpi-suggestions", h.KPISuggestions)

	// LOGIN HISTORY + ACTIVITY LOG
	auth.GET("/sessions", h.ListSessions)
	auth.GET("/activity", h.ListActivity)

	// FILE MANAGER
	auth.GET("/files", h.FilesPage)
	auth.POST("/files/upload", h.UploadFile)
	auth.POST("/files/upload-url", h.UploadFromURL)
	auth.GET("/files/download", h.DownloadFile)
	auth.POST("/files/rename", h.RenameFile)
	auth.POST("/files/delete", h.DeleteFile)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
