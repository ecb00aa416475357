package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	configs "github.com/Payphone-Digital/accounts/config"
	"github.com/Payphone-Digital/accounts/internal/constants"
	"github.com/Payphone-Digital/accounts/internal/handler"
	"github.com/Payphone-Digital/accounts/internal/middleware"
	"github.com/Payphone-Digital/accounts/internal/repository"
	"github.com/Payphone-Digital/accounts/internal/router"
	"github.com/Payphone-Digital/accounts/internal/service"
	"github.com/Payphone-Digital/accounts/pkg/database"
	"github.com/Payphone-Digital/accounts/pkg/logger"
	"github.com/Payphone-Digital/accounts/pkg/storage"
	"go.uber.org/zap"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize Zap logger
	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
		zap.String("version", constants.AppVersion),
	)

	db, err := database.Open(config)
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := database.SeedAdmin(startupCtx, db, config.Admin)
	if err != nil {
		logger.GetLogger().Fatal("Failed to seed admin user", zap.Error(err))
	}
	if created {
		logger.GetLogger().Info("Default admin user created", zap.String("email", config.Admin.Email))
	}

	store, err := newBlobStore(startupCtx, config.Upload)
	if err != nil {
		logger.GetLogger().Fatal("Failed to initialize file storage", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)

	// Services
	jwtService := service.NewJWTService(config.JWT.Secret, config.JWT.ExpirationTime)
	userService := service.NewUserService(userRepo, jwtService)
	accessService := service.NewAccessService(jwtService, userRepo)
	fileService := service.NewFileService(store)

	// Handlers
	authHandler := handler.NewAuthHandler(userService, accessService)
	userHandler := handler.NewUserHandler(userService)
	fileHandler := handler.NewFileHandler(fileService)
	healthHandler := handler.NewHealthHandler()

	jwtMiddleware := middleware.NewJWTMiddleware(accessService)

	r := router.NewRouter(
		authHandler,
		userHandler,
		fileHandler,
		healthHandler,

		jwtMiddleware,
		config,
	).SetupRoutes()

	srv := &http.Server{
		Addr:              ":" + config.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
			zap.String("host", "0.0.0.0"),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.GetLogger().Error("Server forced to shutdown", zap.Error(err))
	}
}

func newBlobStore(ctx context.Context, cfg configs.UploadConfig) (storage.BlobStore, error) {
	switch cfg.Backend {
	case configs.UploadBackendLocal:
		local, err := storage.NewLocal(cfg.Root)
		if err != nil {
			return nil, err
		}
		logger.GetLogger().Info("Using local file storage", zap.String("root", local.Root()))
		return local, nil
	case configs.UploadBackendS3:
		logger.GetLogger().Info("Using S3 file storage",
			zap.String("bucket", cfg.S3Bucket),
			zap.String("endpoint", cfg.S3Endpoint),
		)
		s3Store, err := storage.NewS3(ctx, storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, err
		}
		return s3Store, nil
	default:
		return nil, fmt.Errorf("unsupported upload backend %q", cfg.Backend)
	}
}
