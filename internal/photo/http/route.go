package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the public photo routes. Uploads are mounted by the owning modules.
func RegisterRoutes(r gin.IRouter, handler *Handler) {
	group := r.Group("/photos")

	group.GET("/:id", handler.ServePhoto)
	group.GET("/:id/thumbnail", handler.ServeThumbnail)
}
