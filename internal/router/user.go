package router

import "github.com/gin-gonic/gin"

func (r *Router) userRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	{
		users.Use(r.jwtMw.RequireAuth())
		{
			users.GET("/profile", r.userHandler.GetProfile)
			users.PUT("/profile", r.userHandler.UpdateProfile)

			users.GET("", r.userHandler.GetAll)
			users.GET("/:id", r.userHandler.GetByID)

			// RequireAdmin reuses the user RequireAuth loaded.
			users.DELETE("/:id", r.jwtMw.RequireAdmin(), r.userHandler.DeleteUser)
		}
	}
}
