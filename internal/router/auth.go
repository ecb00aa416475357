package router

import "github.com/gin-gonic/gin"

func (r *Router) authRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", r.authHandler.Register)
		auth.POST("/login", r.authHandler.Login)

		// Verify answers every failure with "Invalid token", so it reads the
		// bearer token itself instead of going through RequireAuth.
		auth.GET("/verify", r.authHandler.Verify)
		auth.POST("/logout", r.jwtMw.RequireAuth(), r.authHandler.Logout)
	}
}
