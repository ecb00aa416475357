package router

import (
	"github.com/Payphone-Digital/accounts/internal/middleware"
	"github.com/gin-gonic/gin"
)

func (r *Router) fileRoutes(api *gin.RouterGroup) {
	files := api.Group("/files")
	{
		// Served publicly so upload URLs work as plain links.
		files.GET("/*path", r.fileHandler.Serve)

		protected := files.Group("")
		protected.Use(r.jwtMw.RequireAuth())
		{
			protected.POST("/upload", middleware.BodyLimit(r.Config.Upload.MaxSize), r.fileHandler.Upload)
			protected.DELETE("/*path", r.fileHandler.Delete)
		}
	}
}
