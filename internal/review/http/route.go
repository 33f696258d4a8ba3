package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers review routes. A host's review list is public.
func RegisterRoutes(r gin.IRouter, h *Handler, authMiddleware gin.HandlerFunc) {
	reviews := r.Group("/reviews")
	{
		reviews.GET("/user/:id", h.ListForUser)
		reviews.GET("/booking/:id", authMiddleware, h.GetForBooking)
		reviews.POST("", authMiddleware, h.Create)
		reviews.PATCH("/:id", authMiddleware, h.Update)
		reviews.DELETE("/:id", authMiddleware, h.Delete)
	}
}
