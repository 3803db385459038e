package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/quangdng/starlog/adapters/event"
	httpAdapter "github.com/quangdng/starlog/adapters/http"
	"github.com/quangdng/starlog/adapters/media_storage"
	"github.com/quangdng/starlog/adapters/persistence"
	authUC "github.com/quangdng/starlog/internal/application/usecase/auth"
	catalogUC "github.com/quangdng/starlog/internal/application/usecase/catalog"
	mediaUC "github.com/quangdng/starlog/internal/application/usecase/media"
	ratingUC "github.com/quangdng/starlog/internal/application/usecase/rating"
	"github.com/quangdng/starlog/internal/config"
	"github.com/quangdng/starlog/pkg/auth"
	"github.com/quangdng/starlog/pkg/logger"
)

func main() {

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting Starlog API Server...")

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Redis: %v", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		log.Fatalf("FATAL: cannot init Kafka: %v", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	mediaRepo := persistence.NewPostgresMediaRepo(dbPool)
	ratingRepo := persistence.NewPostgresRatingRepo(dbPool)
	catalogCache := persistence.NewRedisCatalogCache(redisClient, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	uploader, err := media_storage.NewCloudinaryAdapter(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize uploader: %v", err)
	}

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	browseCatalogUseCase := catalogUC.NewBrowseCatalogUseCase(mediaRepo, ratingRepo, catalogCache, appLogger)
	createMediaUseCase := mediaUC.NewCreateMediaUseCase(mediaRepo, catalogCache, kafkaClient, appLogger)
	updateMediaUseCase := mediaUC.NewUpdateMediaUseCase(mediaRepo, catalogCache, kafkaClient, appLogger)
	deleteMediaUseCase := mediaUC.NewDeleteMediaUseCase(mediaRepo, catalogCache, kafkaClient, appLogger)
	getMediaUseCase := mediaUC.NewGetMediaUseCase(mediaRepo)
	uploadCoverUseCase := mediaUC.NewUploadCoverUseCase(mediaRepo, uploader, catalogCache, appLogger)
	submitRatingUseCase := ratingUC.NewSubmitRatingUseCase(ratingRepo, mediaRepo, kafkaClient, appLogger)
	listRatingsUseCase := ratingUC.NewListRatingsUseCase(ratingRepo)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(loginUseCase)
	catalogHandler := httpAdapter.NewCatalogHandler(browseCatalogUseCase)
	mediaHandler := httpAdapter.NewMediaHandler(
		createMediaUseCase,
		updateMediaUseCase,
		deleteMediaUseCase,
		getMediaUseCase,
		uploadCoverUseCase,
	)
	ratingHandler := httpAdapter.NewRatingHandler(submitRatingUseCase, listRatingsUseCase)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)
	errorMiddleware := httpAdapter.ErrorMiddleware(appLogger)

	// Setup Gin router
	router := gin.Default()
	router.Use(errorMiddleware)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "UP"}) })

		api.POST("/auth/login", authHandler.Login)

		private := api.Group("/")
		private.Use(authMiddleware)
		{
			private.GET("/catalog", catalogHandler.Browse)
			private.GET("/genres", mediaHandler.ListGenres)

			mediaRoutes := private.Group("/media")
			{
				mediaRoutes.POST("", mediaHandler.CreateMedia)
				mediaRoutes.GET("/:id", mediaHandler.GetMedia)
				mediaRoutes.PUT("/:id", mediaHandler.UpdateMedia)
				mediaRoutes.DELETE("/:id", mediaHandler.DeleteMedia)
				mediaRoutes.POST("/:id/cover", mediaHandler.UploadCover)
			}

			ratingRoutes := private.Group("/ratings")
			{
				ratingRoutes.PUT("", ratingHandler.SubmitRating)
				ratingRoutes.GET("", ratingHandler.ListMyRatings)
			}
		}
	}

	appLogger.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Cannot run server: %v", err)
	}
}
