package handler

import (
	"fmt"
	"net/http"
	"strings"

	"utsavdarshan/internal/domain"
	"utsavdarshan/internal/models"
	"utsavdarshan/internal/service"
	"utsavdarshan/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxImageBytes = 10 << 20

type UploadHandler struct {
	dir    *service.DirectoryService
	cloud  cloudinary.Client
	folder string
}

// NewUploadHandler accepts a nil client; uploads then answer 503.
func NewUploadHandler(dir *service.DirectoryService, cloud cloudinary.Client, folder string) *UploadHandler {
	return &UploadHandler{dir: dir, cloud: cloud, folder: folder}
}

// UploadPandalImage stores a photo in Cloudinary and records its URL on the pandal.
func (h *UploadHandler) UploadPandalImage(c *gin.Context) {
	if h.cloud == nil {
		respondError(c, fmt.Errorf("image upload: %w", domain.ErrUnavailable))
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")
	if _, err := h.dir.GetPandal(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file", "is required")
		return
	}
	if file.Size > maxImageBytes {
		badRequest(c, "file", "must be at most 10 MB")
		return
	}
	if ct := file.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		badRequest(c, "file", "must be an image")
		return
	}
	f, err := file.Open()
	if err != nil {
		badRequest(c, "file", "could not be read")
		return
	}
	defer f.Close()

	publicID := "img_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	up, err := h.cloud.UploadImage(ctx, f, h.folder+"/"+id, publicID)
	if err != nil {
		respondError(c, fmt.Errorf("image upload: %w: %w", domain.ErrUnavailable, err))
		return
	}
	p, err := h.dir.UpdatePandal(ctx, id, models.PandalUpdate{ImageURL: &up.URL})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pandal": p, "image": up})
}
