package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers pet routes. Every route requires authentication.
func RegisterRoutes(r gin.IRouter, h *PetHandler, authMiddleware gin.HandlerFunc) {
	pets := r.Group("/pets", authMiddleware)
	{
		pets.GET("", h.List)
		pets.POST("", h.Create)
		pets.GET("/:id", h.Get)
		pets.PATCH("/:id", h.Update)
		pets.DELETE("/:id", h.Delete)
		pets.POST("/:id/photo", h.UploadPhoto)
	}
}
