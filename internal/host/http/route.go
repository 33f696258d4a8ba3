package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers host profile routes. Search and profile pages are public.
func RegisterRoutes(r gin.IRouter, h *HostHandler, authMiddleware gin.HandlerFunc) {
	hosts := r.Group("/hosts")
	{
		hosts.GET("", h.List)
		hosts.GET("/:id", h.Get)
		hosts.POST("", authMiddleware, h.Create)

		me := hosts.Group("/me", authMiddleware)
		{
			me.GET("/profile", h.GetMine)
			me.PATCH("", h.Update)
			me.PATCH("/availability", h.ToggleAvailability)
			me.DELETE("", h.Delete)
			me.POST("/photos", h.UploadPhoto)
		}
	}
}
