package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mediavault/mediavault/internal/config"
	"github.com/mediavault/mediavault/internal/models"
	"github.com/mediavault/mediavault/internal/session"
	"github.com/mediavault/mediavault/internal/types"
	"github.com/mediavault/mediavault/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	DB       *gorm.DB
	Sessions *session.Store
	Log      *zap.SugaredLogger
	Cfg      config.Config
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Email and password are required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User

	err := h.DB.Where("email = ?", email).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Email already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.Log.Errorw("failed to check existing user", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		h.Log.Errorw("failed to hash password", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
		return
	}

	// Default username is the local part of the email.
	username := email
	if i := strings.Index(email, "@"); i > 0 {
		username = email[:i]
	}

	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(passwordHash),
	}

	if err := h.DB.Create(&user).Error; err != nil {
		h.Log.Errorw("failed to create user", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}

	if err := h.startSession(ctx, user); err != nil {
		h.Log.Errorw("failed to create session", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"user": UserResponse{
			ID:       user.ID,
			Email:    user.Email,
			Name:     user.Name,
			Username: user.Username,
		},
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Email and password are required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User

	err := h.DB.Where("email = ?", email).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same message as a wrong password: never reveal whether
			// the email exists.
			ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid credentials"})
			return
		}
		h.Log.Errorw("failed to fetch user", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid credentials"})
		return
	}

	if err := h.startSession(ctx, user); err != nil {
		h.Log.Errorw("failed to create session", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"user": UserResponse{
			ID:       user.ID,
			Email:    user.Email,
			Name:     user.Name,
			Username: user.Username,
		},
	})
}

func (h *AuthHandler) Logout(ctx *gin.Context) {
	if token, err := ctx.Cookie(types.SessionCookie); err == nil && token != "" {
		if err := h.Sessions.Destroy(token); err != nil {
			h.Log.Warnw("failed to destroy session", "error", err)
		}
	}

	h.clearSessionCookie(ctx)

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "message": "Logged out successfully"})
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not authenticated"})
		return
	}

	var user models.User

	if err := h.DB.First(&user, currentUser.ID).Error; err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"user": UserResponse{
			ID:       user.ID,
			Email:    user.Email,
			Name:     user.Name,
			Username: user.Username,
		},
	})
}

func (h *AuthHandler) startSession(ctx *gin.Context, user models.User) error {
	token, err := h.Sessions.Create(session.User{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	})
	if err != nil {
		return err
	}

	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.SessionCookie,
		Value:    token,
		Path:     "/",
		Domain:   h.Cfg.CookieDomain,
		MaxAge:   int(h.Cfg.SessionTTL.Seconds()),
		Secure:   h.Cfg.SecureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})

	return nil
}

func (h *AuthHandler) clearSessionCookie(ctx *gin.Context) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.SessionCookie,
		Value:    "",
		Path:     "/",
		Domain:   h.Cfg.CookieDomain,
		MaxAge:   -1,
		Secure:   h.Cfg.SecureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}
