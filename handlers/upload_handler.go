package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"quizhub/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const uploadSubdir = "quiz_images"

type UploadHandler struct {
	cfg *config.Config
}

func NewUploadHandler(cfg *config.Config) *UploadHandler {
	return &UploadHandler{cfg: cfg}
}

// UploadImage accepts a multipart image, stores it under the media root with
// a random filename and returns the URL it will be served from.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image files are allowed"})
		return
	}

	if file.Size > h.cfg.MaxUploadSize {
		maxMB := h.cfg.MaxUploadSize / (1024 * 1024)
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Image is too large (max %dMB)", maxMB)})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	filename := strings.ReplaceAll(uuid.NewString(), "-", "") + ext

	saveDir := filepath.Join(h.cfg.MediaRoot, uploadSubdir)
	if err := os.MkdirAll(saveDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := c.SaveUploadedFile(file, filepath.Join(saveDir, filename)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	url := strings.TrimRight(h.cfg.MediaURL, "/") + "/" + uploadSubdir + "/" + filename
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
