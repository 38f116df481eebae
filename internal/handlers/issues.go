package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"gis-kpi-tracker/internal/intake"
	"gis-kpi-tracker/internal/stats"
	"gis-kpi-tracker/internal/store"

	"github.com/gin-gonic/gin"
)

func issueForm(c *gin.Context) intake.Form {
	return intake.Form{
		Role:         c.PostForm("role"),
		KPIParameter: c.PostForm("kpi_parameter"),
		Description:  c.PostForm("description"),
		Priority:     c.PostForm("priority"),
		Status:       c.PostForm("status"),
	}
}

func (h *Handler) CreateIssue(c *gin.Context) {
	form := issueForm(c)

	if errs := intake.Validate(form); len(errs) > 0 {
		h.renderDashboard(c, http.StatusBadRequest, stats.Filter{}, form, 0, errs)
		return
	}

	issue, err := h.issues.Create(currentUserID(c), intake.Draft(form))
	if errors.Is(err, store.ErrNoOwner) {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	if err != nil {
		flash(c, "error", "Failed to save the issue.")
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	flash(c, "success", "Issue reported successfully.")

	// alert generation runs after the write and never unwinds it
	if msg, err := h.alerts.GenerateAlert(c.Request.Context(), issue); err != nil {
		flash(c, "error", "Could not generate KPI alert.")
	} else {
		flash(c, "alert", msg)
	}

	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *Handler) UpdateIssue(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "invalid issue id")
		return
	}

	form := issueForm(c)
	if errs := intake.Validate(form); len(errs) > 0 {
		h.renderDashboard(c, http.StatusBadRequest, stats.Filter{}, form, uint(id), errs)
		return
	}

	_, err = h.issues.Update(currentUserID(c), uint(id), intake.Draft(form))
	switch {
	case errors.Is(err, store.ErrNoOwner):
		c.Redirect(http.StatusFound, "/login")
		return
	case errors.Is(err, store.ErrNotFound):
		flash(c, "error", "Issue not found.")
	case err != nil:
		flash(c, "error", "Failed to update the issue.")
	default:
		flash(c, "success", "Issue updated successfully.")
	}

	c.Redirect(http.StatusFound, "/dashboard")
}

// DeleteIssue requires an explicit confirmation field; without it no write
// is issued at all.
func (h *Handler) DeleteIssue(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "invalid issue id")
		return
	}

	if c.PostForm("confirm") != "yes" {
		flash(c, "error", "Deletion cancelled.")
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	err = h.issues.Delete(currentUserID(c), uint(id))
	switch {
	case errors.Is(err, store.ErrNoOwner):
		c.Redirect(http.StatusFound, "/login")
		return
	case errors.Is(err, store.ErrNotFound):
		flash(c, "error", "Issue not found.")
	case err != nil:
		flash(c, "error", "Failed to delete the issue.")
	default:
		flash(c, "success", "Issue deleted successfully.")
	}

	c.Redirect(http.StatusFound, "/dashboard")
}
