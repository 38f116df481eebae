package handlers

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"gis-kpi-tracker/internal/ai"
	"gis-kpi-tracker/internal/blobstore"
	"gis-kpi-tracker/internal/database"
	"gis-kpi-tracker/internal/middleware"
	"gis-kpi-tracker/internal/models"
	"gis-kpi-tracker/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubAlerts struct {
	err error
}

func (s stubAlerts) GenerateAlert(ctx context.Context, issue models.Issue) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "Alert: " + issue.KPIParameter, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestHandler(t *testing.T, db *gorm.DB, alerts alertGenerator) *Handler {
	t.Helper()

	blobs, err := blobstore.New(t.TempDir())
	require.NoError(t, err)

	return &Handler{
		db:       db,
		issues:   store.NewIssueStore(db),
		sessions: store.NewSessionStore(db),
		activity: store.NewActivityStore(db),
		blobs:    blobs,
		alerts:   alerts,
		suggester: ai.NewSuggester(func(ctx context.Context, role models.Role) ([]string, error) {
			return []string{string(role) + " KPI"}, nil
		}),
	}
}

// newTestRouter mirrors the production route table. uid != 0 simulates a
// signed-in user by seeding the cookie session on every request.
func newTestRouter(h *Handler, db *gorm.DB, uid uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.SetFuncMap(template.FuncMap{
		"eq": func(a, b interface{}) bool { return a == b },
		"fmtTime": func(tm time.Time) string {
			return tm.Format("Jan 2, 2006 15:04:05")
		},
	})
	r.LoadHTMLGlob("../../web/templates/*.html")

	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	if uid != 0 {
		r.Use(func(c *gin.Context) {
			sess := sessions.Default(c)
			sess.Set("user_id", uid)
			_ = sess.Save()
			c.Next()
		})
	}
	r.Use(middleware.InjectUser(db))

	r.GET("/", h.IndexPage)
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.Login)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())
	auth.GET("/dashboard", h.Dashboard)
	auth.POST("/issues", h.CreateIssue)
	auth.POST("/issues/:id", h.UpdateIssue)
	auth.POST("/issues/:id/delete", h.DeleteIssue)
	auth.GET("/api/kpi-suggestions", h.KPISuggestions)

	return r
}

func postForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validIssueForm() url.Values {
	return url.Values{
		"role":          {"GIS Analyst"},
		"kpi_parameter": {"Resolve 100% of GIS technical issues within 24 hours"},
		"description":   {"Map layer failed to render for district 4"},
		"priority":      {"High"},
		"status":        {"Open"},
	}
}

func TestRequireAuthRedirects(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(newTestHandler(t, db, stubAlerts{}), db, 0)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestCreateIssue(t *testing.T) {
	db := newTestDB(t)
	h := newTestHandler(t, db, stubAlerts{})
	r := newTestRouter(h, db, 1)

	w := postForm(r, "/issues", validIssueForm())
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	issues, err := h.issues.List(1)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, models.RoleAnalyst, issues[0].Role)
	assert.Equal(t, models.StatusOpen, issues[0].Status)
	assert.NotZero(t, issues[0].ID)
	assert.False(t, issues[0].Date.IsZero())

	logs, err := h.activity.List(1)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.ActionCreatedIssue, logs[0].Action)
}

func TestCreateIssueValidationBlocksWrite(t *testing.T) {
	db := newTestDB(t)
	h := newTestHandler(t, db, stubAlerts{})
	r := newTestRouter(h, db, 1)

	form := validIssueForm()
	form.Set("description", "too short")

	w := postForm(r, "/issues", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	issues, err := h.issues.List(1)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestCreateIssueAlertFailureKeepsWrite(t *testing.T) {
	db := newTestDB(t)
	h := newTestHandler(t, db, stubAlerts{err: assert.AnError})
	r := newTestRouter(h, db, 1)

	w := postForm(r, "/issues", validIssueForm())
	assert.Equal(t, http.StatusFound, w.Code)

	issues, err := h.issues.List(1)
	require.NoError(t, err)
	assert.Len(t, issues, 1)
}

func TestUpdateIssueKeepsDate(t *testing.T) {
	db := newTestDB(t)
	h := newTestHandler(t, db, stubAlerts{})
	r := newTestRouter(h, db, 1)

	created, err := h.issues.Create(1, store.IssueDraft{
		Role:         models.RoleAnalyst,
		KPIParameter: "Resolve 100% of GIS technical issues within 24 hours",
		Description:  "Map layer failed to render for district 4",
		Priority:     models.PriorityHigh,
		Status:       models.StatusOpen,
	})
	require.NoError(t, err)

	form := validIssueForm()
	form.Set("status", "Resolved")

	w := postForm(r, "/issues/"+itoa(created.ID), form)
	assert.Equal(t, http.StatusFound, w.Code)

	got, err := h.issues.Get(1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, got.Status)
	assert.WithinDuration(t, created.Date, got.Date, time.Millisecond)
}

func TestDeleteIssueRequiresConfirmation(t *testing.T) {
	db := newTestDB(t)
	h := newTestHandler(t, db, stubAlerts{})
	r := newTestRouter(h, db, 1)

	created, err := h.issues.Create(1, store.IssueDraft{
		Role:         models.RoleAnalyst,
		KPIParameter: "k",
		Description:  "Map layer failed to render",
		Priority:     models.PriorityHigh,
		Status:       models.StatusOpen,
	})
	require.NoError(t, err)

	t.Run("declined confirmation issues no write", func(t *testing.T) {
		w := postForm(r, "/issues/"+itoa(created.ID)+"/delete", url.Values{})
		assert.Equal(t, http.StatusFound, w.Code)

		issues, err := h.issues.List(1)
		require.NoError(t, err)
		assert.Len(t, issues, 1)
	})

	t.Run("confirmed delete removes the issue", func(t *testing.T) {
		w := postForm(r, "/issues/"+itoa(created.ID)+"/delete", url.Values{"confirm": {"yes"}})
		assert.Equal(t, http.StatusFound, w.Code)

		issues, err := h.issues.List(1)
		require.NoError(t, err)
		assert.Empty(t, issues)
	})
}

func TestKPISuggestions(t *testing.T) {
	db := newTestDB(t)
	h := newTestHandler(t, db, stubAlerts{})
	r := newTestRouter(h, db, 1)

	t.Run("known role returns suggestions", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/kpi-suggestions?role=GIS+Analyst", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "GIS Analyst KPI")
		assert.Contains(t, w.Body.String(), `"stale":false`)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/kpi-suggestions?role=Cartographer", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoginRecordsSession(t *testing.T) {
	db := newTestDB(t)
	h := newTestHandler(t, db, stubAlerts{})
	r := newTestRouter(h, db, 0)

	hash, err := bcrypt.GenerateFromPassword([]byte("Tracker123!"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Email:        "gis@tracker.local",
		DisplayName:  "GIS Team",
		PasswordHash: string(hash),
	}).Error)

	w := postForm(r, "/login", url.Values{
		"email":    {"gis@tracker.local"},
		"password": {"Tracker123!"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	var user models.User
	require.NoError(t, db.Where("email = ?", "gis@tracker.local").First(&user).Error)

	list, err := h.sessions.List(user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	h := newTestHandler(t, db, stubAlerts{})
	r := newTestRouter(h, db, 0)

	hash, err := bcrypt.GenerateFromPassword([]byte("Tracker123!"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Email:        "gis@tracker.local",
		PasswordHash: string(hash),
	}).Error)

	w := postForm(r, "/login", url.Values{
		"email":    {"gis@tracker.local"},
		"password": {"nope"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")

	list, err := h.sessions.List(1)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
