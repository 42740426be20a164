package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mediavault/mediavault/internal/config"
	"github.com/mediavault/mediavault/internal/media"
	"github.com/mediavault/mediavault/internal/storage"
	"github.com/mediavault/mediavault/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DocumentsHandler struct {
	DB    *gorm.DB
	Store *storage.DiskStore
	Log   *zap.SugaredLogger
	Cfg   config.Config
}

// DocumentResponse mirrors the listing contract the frontend expects:
// title is exposed as "name" and the stored MIME type as "type".
type DocumentResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	URL       string    `json:"url"`
	Filesize  int64     `json:"filesize"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *DocumentsHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
		return
	}

	docs, err := media.ListDocuments(h.DB, userID)

	if err != nil {
		h.Log.Errorw("failed to list documents", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch documents"})
		return
	}

	response := []DocumentResponse{}

	for _, doc := range docs {
		response = append(response, DocumentResponse{
			ID:        doc.ID,
			Name:      doc.Title,
			Type:      doc.FileType,
			URL:       "/uploads/" + doc.FilePath,
			Filesize:  doc.Filesize,
			CreatedAt: doc.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "documents": response})
}

func (h *DocumentsHandler) Create(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
		return
	}

	header, err := ctx.FormFile("file")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "No file uploaded"})
		return
	}

	file, err := header.Open()

	if err != nil {
		h.Log.Errorw("failed to open uploaded file", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	err = media.SaveUpload(h.DB, h.Store, h.Log, media.UploadInput{
		OwnerID:      userID,
		Kind:         media.KindDocument,
		Title:        ctx.PostForm("title"),
		Filename:     header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Size:         header.Size,
		Data:         file,
		AllowedTypes: media.AllowedTypes(media.KindDocument, h.Cfg.StrictUploadTypes),
	})

	if err != nil {
		writeUploadError(ctx, err, "Failed to upload document")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "message": "Document uploaded successfully"})
}

func (h *DocumentsHandler) Delete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
		return
	}

	id, ok := idQueryParam(ctx, "Document ID is required")
	if !ok {
		return
	}

	if err := media.DeleteDocument(h.DB, h.Store, h.Log, id, userID); err != nil {
		if errors.Is(err, media.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Document not found or access denied"})
			return
		}
		h.Log.Errorw("failed to delete document", "id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete document"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "message": "Document deleted successfully"})
}

// Download streams the stored binary with an attachment disposition. The
// filename is the title plus the stored file's extension.
func (h *DocumentsHandler) Download(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid document ID"})
		return
	}

	doc, err := media.FindDocument(h.DB, uint(id), userID)

	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Document not found or access denied"})
			return
		}
		h.Log.Errorw("failed to fetch document", "id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch document"})
		return
	}

	if !h.Store.Exists(doc.FilePath) {
		ctx.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "File not found"})
		return
	}

	filename := doc.Title + filepath.Ext(doc.FilePath)
	ctx.FileAttachment(h.Store.Path(doc.FilePath), filename)
}
