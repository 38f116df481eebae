package handlers

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Toast is a one-way outcome message shown once on the next rendered page.
type Toast struct {
	Kind    string // "success", "error", "alert"
	Message string
}

func flash(c *gin.Context, kind, msg string) {
	sess := sessions.Default(c)
	sess.AddFlash(kind + "|" + msg)
	_ = sess.Save()
}

// takeToasts drains pending flashes. Reading clears them.
func takeToasts(c *gin.Context) []Toast {
	sess := sessions.Default(c)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = sess.Save()

	toasts := make([]Toast, 0, len(raw))
	for _, f := range raw {
		s, ok := f.(string)
		if !ok {
			continue
		}
		kind, msg, found := strings.Cut(s, "|")
		if !found {
			kind, msg = "success", s
		}
		toasts = append(toasts, Toast{Kind: kind, Message: msg})
	}
	return toasts
}
