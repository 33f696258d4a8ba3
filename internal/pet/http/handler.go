package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/pethaven-backend/internal/auth"
	"github.com/nekogravitycat/pethaven-backend/internal/pet"
	"github.com/nekogravitycat/pethaven-backend/internal/photo"
	photohttp "github.com/nekogravitycat/pethaven-backend/internal/photo/http"
	"github.com/nekogravitycat/pethaven-backend/internal/pkg/request"
	"github.com/nekogravitycat/pethaven-backend/internal/pkg/response"
)

type PetHandler struct {
	service        pet.Service
	photoHandler   *photohttp.Handler
	maxUploadBytes int64
}

func NewHandler(service pet.Service, photoHandler *photohttp.Handler, maxUploadBytes int64) *PetHandler {
	return &PetHandler{
		service:        service,
		photoHandler:   photoHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

// List returns the caller's pets, newest first.
func (h *PetHandler) List(c *gin.Context) {
	var params request.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	pets, total, err := h.service.List(c.Request.Context(), auth.GetUserID(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PetResponse, len(pets))
	for i, p := range pets {
		items[i] = NewPetResponse(p)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, params.Page, params.PageSize, total))
}

func (h *PetHandler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	p, err := h.service.Get(c.Request.Context(), auth.GetUserID(c), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewPetResponse(p))
}

func (h *PetHandler) Create(c *gin.Context) {
	var body CreatePetRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "validation failed", err)
		return
	}

	p, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), body.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewPetResponse(p))
}

func (h *PetHandler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body UpdatePetRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "validation failed", err)
		return
	}
	if err := body.Validate(); err != nil {
		response.BadRequest(c, err.Error(), nil)
		return
	}

	p, err := h.service.Update(c.Request.Context(), auth.GetUserID(c), uri.ID, body.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewPetResponse(p))
}

func (h *PetHandler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), auth.GetUserID(c), uri.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadPhoto stores an image and sets it as the pet's photo.
func (h *PetHandler) UploadPhoto(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	ownerID := auth.GetUserID(c)
	// Fail before reading the upload when the pet is not the caller's.
	if _, err := h.service.Get(c.Request.Context(), ownerID, uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	h.photoHandler.HandleUpload(c, photohttp.UploadConfig{
		MaxSizeBytes: h.maxUploadBytes,
		AllowedTypes: photohttp.ImageTypes,
		AfterUpload: func(ctx context.Context, photoID string) error {
			return h.service.SetPhoto(ctx, ownerID, uri.ID, photo.URL(photoID))
		},
	})
}
