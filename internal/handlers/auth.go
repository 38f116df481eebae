package handlers

import (
	"log"
	"net/http"
	"strings"

	"gis-kpi-tracker/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{"error": ""})
}

type registerForm struct {
	Email       string `form:"email"`
	DisplayName string `form:"display_name"`
	Password    string `form:"password"`
}

func (h *Handler) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "register.html", gin.H{"error": "Invalid form data"})
		return
	}

	form.Email = strings.TrimSpace(strings.ToLower(form.Email))
	if !strings.Contains(form.Email, "@") || len(form.Password) < 6 {
		render(c, http.StatusBadRequest, "register.html", gin.H{"error": "Enter a valid email and a password of at least 6 characters"})
		return
	}

	var existing models.User
	if err := h.db.Where("email = ?", form.Email).First(&existing).Error; err == nil {
		render(c, http.StatusBadRequest, "register.html", gin.H{"error": "An account with that email already exists"})
		return
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	user := models.User{
		Email:        form.Email,
		DisplayName:  strings.TrimSpace(form.DisplayName),
		PasswordHash: string(hash),
	}
	if err := h.db.Create(&user).Error; err != nil {
		render(c, http.StatusInternalServerError, "register.html", gin.H{"error": "Could not save the account"})
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"error": ""})
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Invalid form data"})
		return
	}

	email := strings.TrimSpace(strings.ToLower(form.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)); err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Invalid email or password"})
		return
	}

	sess := sessions.Default(c)
	sess.Set("user_id", user.ID)
	_ = sess.Save()

	// login history record; a failed append must not block the sign-in
	if _, err := h.sessions.Append(user.ID); err != nil {
		log.Printf("failed to record login session: %v", err)
	}

	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *Handler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.Redirect(http.StatusFound, "/login")
}
