package router

import (
	"github.com/Payphone-Digital/accounts/config"
	"github.com/Payphone-Digital/accounts/internal/constants"
	"github.com/Payphone-Digital/accounts/internal/handler"
	"github.com/Payphone-Digital/accounts/internal/middleware"
	"github.com/Payphone-Digital/accounts/pkg/validation"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authHandler   *handler.AuthHandler
	userHandler   *handler.UserHandler
	fileHandler   *handler.FileHandler
	healthHandler *handler.HealthHandler

	jwtMw  *middleware.JWTMiddleware
	Config *config.Config
}

func NewRouter(
	auth *handler.AuthHandler,
	user *handler.UserHandler,
	file *handler.FileHandler,
	health *handler.HealthHandler,

	jwtMw *middleware.JWTMiddleware,
	config *config.Config,
) *Router {
	return &Router{
		authHandler:   auth,
		userHandler:   user,
		fileHandler:   file,
		healthHandler: health,

		jwtMw:  jwtMw,
		Config: config,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	if r.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if r.Config.App.Environment == constants.EnvTest {
		gin.SetMode(gin.TestMode)
	}

	validation.RegisterJSONTagNames()

	router := gin.New()

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.ContextMiddleware("http"))
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORS(r.Config.CORS.AllowedOrigin))

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.BasicHealth)

		r.authRoutes(api)
		r.userRoutes(api)
		r.fileRoutes(api)
	}

	return router
}
