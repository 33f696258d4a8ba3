package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/pethaven-backend/internal/auth"
	"github.com/nekogravitycat/pethaven-backend/internal/photo"
	"github.com/nekogravitycat/pethaven-backend/internal/pkg/response"
)

// ImageTypes is the allow-list used by pet and host photo uploads.
var ImageTypes = []string{"image/jpeg", "image/png"}

// UploadConfig defines the configuration for an image upload endpoint.
type UploadConfig struct {
	FormFieldName string                                          // default: "file"
	MaxSizeBytes  int64                                           // 0 = no limit
	AllowedTypes  []string                                        // empty = any image type
	AfterUpload   func(ctx context.Context, photoID string) error // attaches the photo to its owner entity (optional)
}

// HandleUpload stores the uploaded image, then runs AfterUpload.
// If the hook fails the photo is deleted again and the hook's error is returned.
func (h *Handler) HandleUpload(c *gin.Context, config UploadConfig) {
	userID := auth.GetUserID(c)

	fieldName := config.FormFieldName
	if fieldName == "" {
		fieldName = "file"
	}

	fileHeader, err := c.FormFile(fieldName)
	if err != nil {
		response.BadRequest(c, fieldName+" is required", nil)
		return
	}
	if config.MaxSizeBytes > 0 && fileHeader.Size > config.MaxSizeBytes {
		response.Error(c, photo.ErrTooLarge)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "failed to read uploaded file", err)
		return
	}
	defer src.Close()

	p, err := h.photoService.Upload(c.Request.Context(), photo.UploadInput{
		Filename:     fileHeader.Filename,
		Content:      src,
		UserID:       userID,
		MaxSizeBytes: config.MaxSizeBytes,
		AllowedTypes: config.AllowedTypes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if config.AfterUpload != nil {
		if err := config.AfterUpload(c.Request.Context(), p.ID); err != nil {
			if delErr := h.photoService.Delete(c.Request.Context(), p.ID); delErr != nil {
				zap.L().Warn("photo rollback failed", zap.String("photo_id", p.ID), zap.Error(delErr))
			}
			response.Error(c, err)
			return
		}
	}

	var thumbURL *string
	if p.ThumbnailPath != nil {
		t := photo.ThumbnailURL(p.ID)
		thumbURL = &t
	}

	c.JSON(http.StatusCreated, UploadResponse{
		Message:      "photo uploaded successfully",
		PhotoID:      p.ID,
		URL:          photo.URL(p.ID),
		ThumbnailURL: thumbURL,
	})
}
