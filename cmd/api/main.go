package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/appdotbuilder/humanities-cms-sub000/internal/config"
	"github.com/appdotbuilder/humanities-cms-sub000/internal/handlers"
	"github.com/appdotbuilder/humanities-cms-sub000/internal/middleware"
	"github.com/appdotbuilder/humanities-cms-sub000/internal/models"
	"github.com/appdotbuilder/humanities-cms-sub000/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.New()

	// Initialize database
	db, err := models.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Run migrations
	if err := models.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis
	redisClient := models.InitRedis(cfg)
	defer redisClient.Close()

	// Initialize services
	validator := services.NewReferentialValidator()
	authService := services.NewAuthService(db, redisClient, cfg)
	folderService := services.NewFolderService(db, validator)
	galleryService := services.NewGalleryService(db, validator)
	s3Service, err := services.NewS3Service(cfg)
	if err != nil {
		log.Fatalf("Failed to init S3 service: %v", err)
	}
	mediaService := services.NewMediaService(db, cfg, s3Service, validator)

	// Create admin user if not exists
	if err := authService.CreateDefaultAdmin(); err != nil {
		log.Printf("Failed to create default admin: %v", err)
	}

	// Periodic cleanup of expired refresh tokens
	go func() {
		for {
			if err := authService.CleanupExpiredTokens(); err != nil {
				log.Printf("Refresh token cleanup error: %v", err)
			}
			time.Sleep(1 * time.Hour)
		}
	}()

	// Setup Gin router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.RateLimiter(redisClient, cfg))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	folderHandler := handlers.NewFolderHandler(folderService)
	galleryHandler := handlers.NewGalleryHandler(galleryService)
	mediaHandler := handlers.NewMediaHandler(mediaService)

	// Health check outside API group
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Setup routes
	api := router.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})

		// Catch-all OPTIONS handler for CORS preflight requests
		api.OPTIONS("/*path", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", middleware.Auth(authService), authHandler.Logout)
		}

		// Public read routes
		api.GET("/folders", folderHandler.ListFolders)
		api.GET("/folders/:id", folderHandler.GetFolder)
		api.GET("/galleries", galleryHandler.ListGalleries)
		api.GET("/galleries/:id", galleryHandler.GetGallery)
		api.GET("/media", mediaHandler.ListMedia)
		api.GET("/media/:id", mediaHandler.GetMedia)

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.Auth(authService))
		admin.Use(middleware.AdminOnly())
		{
			// Folder tree management
			admin.POST("/folders", folderHandler.CreateFolder)
			admin.PUT("/folders/:id", folderHandler.UpdateFolder)
			admin.DELETE("/folders/:id", folderHandler.DeleteFolder)

			// Gallery management
			admin.POST("/galleries", galleryHandler.CreateGallery)
			admin.PUT("/galleries/:id", galleryHandler.UpdateGallery)
			admin.DELETE("/galleries/:id", galleryHandler.DeleteGallery)
			admin.POST("/galleries/:id/images", galleryHandler.AddImage)
			admin.PUT("/galleries/:id/images/order", galleryHandler.ReorderImages)
			admin.DELETE("/gallery-images/:id", galleryHandler.RemoveImage)
			admin.PUT("/gallery-images/:id/caption", galleryHandler.UpdateCaption)

			// Media management
			admin.PUT("/media/:id", mediaHandler.UpdateMedia)
			admin.DELETE("/media/:id", mediaHandler.DeleteMedia)

			// Upload routes with per-admin daily rate limiting
			uploadGroup := admin.Group("")
			uploadGroup.Use(middleware.UploadRateLimit(redisClient, cfg))
			{
				uploadGroup.POST("/media", mediaHandler.UploadMedia)
			}
		}
	}

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
