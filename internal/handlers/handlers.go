package handlers

import (
	"context"

	"gis-kpi-tracker/internal/ai"
	"gis-kpi-tracker/internal/blobstore"
	"gis-kpi-tracker/internal/models"
	"gis-kpi-tracker/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// alertGenerator is the alerting collaborator: it composes a human-readable
// alert for a freshly reported issue.
type alertGenerator interface {
	GenerateAlert(ctx context.Context, issue models.Issue) (string, error)
}

// Handler holds every dependency the request handlers need. Constructed
// once at startup; no package-level state.
type Handler struct {
	db        *gorm.DB
	issues    *store.IssueStore
	sessions  *store.SessionStore
	activity  *store.ActivityStore
	blobs     *blobstore.Store
	alerts    alertGenerator
	suggester *ai.Suggester
}

func New(db *gorm.DB, blobs *blobstore.Store, aiClient *ai.Client) *Handler {
	return &Handler{
		db:        db,
		issues:    store.NewIssueStore(db),
		sessions:  store.NewSessionStore(db),
		activity:  store.NewActivityStore(db),
		blobs:     blobs,
		alerts:    aiClient,
		suggester: ai.NewSuggester(aiClient.SuggestKPIs),
	}
}

func currentUserID(c *gin.Context) uint {
	sess := sessions.Default(c)
	uid, _ := sess.Get("user_id").(uint)
	return uid
}
