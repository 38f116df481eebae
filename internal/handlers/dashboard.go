package handlers

import (
	"net/http"
	"strconv"

	"gis-kpi-tracker/internal/intake"
	"gis-kpi-tracker/internal/models"
	"gis-kpi-tracker/internal/stats"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func (h *Handler) IndexPage(c *gin.Context) {
	sess := sessions.Default(c)
	_, ok := sess.Get("user_id").(uint)

	render(c, http.StatusOK, "index.html", gin.H{
		"isAuthed": ok,
	})
}

// Dashboard is the main page: stats cards, the intake form and the
// filtered issue list, all derived from one fetch of the owner's issues.
func (h *Handler) Dashboard(c *gin.Context) {
	filter := stats.Filter{
		Role:     models.Role(c.Query("role")),
		Status:   models.Status(c.Query("status")),
		Priority: models.Priority(c.Query("priority")),
	}

	form := intake.Form{Status: string(models.StatusOpen)}

	// prefill the form when editing an existing issue
	var editingID uint
	if editStr := c.Query("edit"); editStr != "" {
		if id, err := strconv.Atoi(editStr); err == nil && id > 0 {
			issue, err := h.issues.Get(currentUserID(c), uint(id))
			if err == nil {
				editingID = issue.ID
				form = intake.Form{
					Role:         string(issue.Role),
					KPIParameter: issue.KPIParameter,
					Description:  issue.Description,
					Priority:     string(issue.Priority),
					Status:       string(issue.Status),
				}
			}
		}
	}

	h.renderDashboard(c, http.StatusOK, filter, form, editingID, nil)
}

func (h *Handler) renderDashboard(c *gin.Context, status int, filter stats.Filter, form intake.Form, editingID uint, fieldErrors map[string]string) {
	issues, err := h.issues.List(currentUserID(c))
	if err != nil {
		flash(c, "error", "Failed to load issues.")
	}

	render(c, status, "dashboard.html", gin.H{
		"Stats":       stats.Derive(issues),
		"Issues":      stats.FilterAndSort(issues, filter),
		"Filter":      filter,
		"Form":        form,
		"EditingID":   editingID,
		"FieldErrors": fieldErrors,
		"Roles":       models.Roles,
		"Priorities":  models.Priorities,
		"Statuses":    models.Statuses,
	})
}
