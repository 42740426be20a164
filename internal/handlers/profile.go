package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mediavault/mediavault/internal/config"
	"github.com/mediavault/mediavault/internal/media"
	"github.com/mediavault/mediavault/internal/models"
	"github.com/mediavault/mediavault/internal/session"
	"github.com/mediavault/mediavault/internal/storage"
	"github.com/mediavault/mediavault/internal/types"
	"github.com/mediavault/mediavault/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const profileImageDir = "profiles"

type ProfileHandler struct {
	DB       *gorm.DB
	Store    *storage.DiskStore
	Sessions *session.Store
	Log      *zap.SugaredLogger
	Cfg      config.Config
}

type UpdateProfileRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email" binding:"omitempty,email"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *ProfileHandler) Get(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
		return
	}

	var user models.User

	if err := h.DB.First(&user, currentUser.ID).Error; err != nil {
		h.Log.Errorw("failed to fetch user", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch profile image"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"imageUrl": user.ProfileImage},
	})
}

func (h *ProfileHandler) Update(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
		return
	}

	var user models.User

	if err := h.DB.First(&user, currentUser.ID).Error; err != nil {
		h.Log.Errorw("failed to fetch user", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
		return
	}

	var req UpdateProfileRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if req.Name != "" {
		updates["name"] = strings.TrimSpace(req.Name)
	}

	if req.Email != "" {
		newEmail := strings.ToLower(strings.TrimSpace(req.Email))

		if newEmail != user.Email {
			var existing models.User
			err := h.DB.Where("email = ? AND id != ?", newEmail, user.ID).First(&existing).Error
			if err == nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Email already exists"})
				return
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				h.Log.Errorw("failed to check existing email", "error", err)
				ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
				return
			}
		}

		updates["email"] = newEmail
	}

	passwordChanged := false

	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Current password is required to set new password"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Current password is incorrect"})
			return
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			h.Log.Errorw("failed to hash new password", "error", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
			return
		}

		updates["password_hash"] = string(passwordHash)
		passwordChanged = true
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "No fields to update"})
		return
	}

	if err := h.DB.Model(&user).Updates(updates).Error; err != nil {
		h.Log.Errorw("failed to update profile", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update profile"})
		return
	}

	// The current session survives a password change; every other session
	// of this user is revoked.
	if passwordChanged {
		if token, err := ctx.Cookie(types.SessionCookie); err == nil && token != "" {
			if err := h.Sessions.DestroyOthers(user.ID, token); err != nil {
				h.Log.Warnw("failed to revoke other sessions", "user_id", user.ID, "error", err)
			}
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "message": "Profile updated successfully"})
}

// UploadImage stores a new profile image and records its URL on the user
// row. Only JPEG, PNG and GIF are accepted, regardless of configuration.
func (h *ProfileHandler) UploadImage(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
		return
	}

	header, err := ctx.FormFile("profile_image")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "No image uploaded"})
		return
	}

	contentType := header.Header.Get("Content-Type")

	if !media.TypeAllowed(contentType, media.ProfileImageTypes) {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid file type. Only JPG, PNG and GIF are allowed."})
		return
	}

	if header.Size <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Uploaded file is empty"})
		return
	}

	file, err := header.Open()

	if err != nil {
		h.Log.Errorw("failed to open uploaded image", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	name := strings.ReplaceAll(uuid.NewString(), "-", "") + "_" + storage.SanitizeFilename(header.Filename)

	_, rel, err := h.Store.Save(profileImageDir, name, file)

	if err != nil {
		h.Log.Errorw("failed to store profile image", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to store image"})
		return
	}

	imageURL := "/uploads/" + rel

	res := h.DB.Model(&models.User{}).Where("id = ?", currentUser.ID).Update("profile_image", imageURL)

	if res.Error != nil {
		h.Log.Errorw("failed to update profile image", "error", res.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update profile image"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Profile image updated successfully",
		"data":    gin.H{"imageUrl": imageURL},
	})
}
