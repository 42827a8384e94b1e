package handlers

import (
	"errors"
	"net/http"
	"time"

	"neighborhelp-backend/logging"
	"neighborhelp-backend/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	authService  *service.AuthService
	cookieName   string
	cookieSecure bool
	log          logging.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, cookieName string, cookieSecure bool, log logging.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
		log:          log,
	}
}

// RegisterForm represents the registration form
type RegisterForm struct {
	Name     string `form:"name" binding:"required,max=255"`
	Email    string `form:"email" binding:"required,email,max=255"`
	Address  string `form:"address" binding:"required,max=1000"`
	Contact  string `form:"contact" binding:"required,max=255"`
	Password string `form:"password" binding:"required,max=72"`
}

// LoginForm represents the login form
type LoginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// ShowRegister handles GET /register
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{"Title": "Register"})
}

// Register handles POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderRegister(c, http.StatusBadRequest, &form, "Please fill in every field with a valid email address. Names, emails and contacts are limited to 255 characters, passwords to 72.")
		return
	}

	_, err := h.authService.Register(c.Request.Context(), service.RegisterRequest{
		Name:     form.Name,
		Email:    form.Email,
		Address:  form.Address,
		Contact:  form.Contact,
		Password: form.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			h.renderRegister(c, http.StatusConflict, &form, "An account with this email already exists.")
			return
		}
		if errors.Is(err, service.ErrPasswordTooLong) {
			h.renderRegister(c, http.StatusBadRequest, &form, "Password must be at most 72 bytes.")
			return
		}
		internalError(c, h.log, "failed to register account", err)
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) renderRegister(c *gin.Context, status int, form *RegisterForm, message string) {
	form.Password = ""
	render(c, status, "register.html", gin.H{
		"Title": "Register",
		"Form":  form,
		"Error": message,
	})
}

// ShowLogin handles GET /login
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"Title": "Log in"})
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderLogin(c, http.StatusBadRequest, form.Email, "Please enter your email and password.")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), service.LoginRequest{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.renderLogin(c, http.StatusUnauthorized, form.Email, "Invalid email or password.")
			return
		}
		internalError(c, h.log, "failed to log in", err)
		return
	}

	maxAge := int(time.Until(result.Session.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, result.Session.Token, maxAge, "/", "", h.cookieSecure, true)
	c.Redirect(http.StatusFound, "/all_requests")
}

func (h *AuthHandler) renderLogin(c *gin.Context, status int, email, message string) {
	render(c, status, "login.html", gin.H{
		"Title": "Log in",
		"Email": email,
		"Error": message,
	})
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cookieName); err == nil {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			h.log.Error(c.Request.Context(), "failed to destroy session", "error", err)
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.cookieSecure, true)
	c.Redirect(http.StatusFound, "/login")
}
