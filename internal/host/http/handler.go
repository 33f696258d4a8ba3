package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/pethaven-backend/internal/auth"
	"github.com/nekogravitycat/pethaven-backend/internal/host"
	"github.com/nekogravitycat/pethaven-backend/internal/photo"
	photohttp "github.com/nekogravitycat/pethaven-backend/internal/photo/http"
	"github.com/nekogravitycat/pethaven-backend/internal/pkg/request"
	"github.com/nekogravitycat/pethaven-backend/internal/pkg/response"
)

type HostHandler struct {
	service        host.Service
	photoHandler   *photohttp.Handler
	maxUploadBytes int64
}

func NewHandler(service host.Service, photoHandler *photohttp.Handler, maxUploadBytes int64) *HostHandler {
	return &HostHandler{
		service:        service,
		photoHandler:   photoHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

// List searches available hosts, best rated first.
func (h *HostHandler) List(c *gin.Context) {
	var req ListHostsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	profiles, total, err := h.service.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ProfileResponse, len(profiles))
	for i, p := range profiles {
		items[i] = NewProfileResponse(p)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *HostHandler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProfileResponse(p))
}

// GetMine returns the caller's own profile.
func (h *HostHandler) GetMine(c *gin.Context) {
	p, err := h.service.GetByUserID(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProfileResponse(p))
}

// Create publishes a profile and makes the caller a HOST.
// The caller's existing token still carries the old role until it is reissued.
func (h *HostHandler) Create(c *gin.Context) {
	var body CreateProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "validation failed", err)
		return
	}

	p, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), body.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewProfileResponse(p))
}

func (h *HostHandler) Update(c *gin.Context) {
	var body UpdateProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "validation failed", err)
		return
	}
	if err := body.Validate(); err != nil {
		response.BadRequest(c, err.Error(), nil)
		return
	}

	p, err := h.service.Update(c.Request.Context(), auth.GetUserID(c), body.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProfileResponse(p))
}

func (h *HostHandler) ToggleAvailability(c *gin.Context) {
	p, err := h.service.ToggleAvailability(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_available": p.IsAvailable})
}

// Delete removes the caller's profile and reverts them to PET_OWNER.
func (h *HostHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), auth.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadPhoto appends an image to the caller's profile gallery.
func (h *HostHandler) UploadPhoto(c *gin.Context) {
	userID := auth.GetUserID(c)
	if _, err := h.service.GetByUserID(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	h.photoHandler.HandleUpload(c, photohttp.UploadConfig{
		MaxSizeBytes: h.maxUploadBytes,
		AllowedTypes: photohttp.ImageTypes,
		AfterUpload: func(ctx context.Context, photoID string) error {
			return h.service.AddPhoto(ctx, userID, photo.URL(photoID))
		},
	})
}
