package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/trekline/gotours/docs"
	"github.com/trekline/gotours/internal/config"
	"github.com/trekline/gotours/internal/features/auth"
	"github.com/trekline/gotours/internal/features/reviews"
	"github.com/trekline/gotours/internal/features/tours"
	"github.com/trekline/gotours/internal/features/users"
	"github.com/trekline/gotours/internal/pkg/apperror"
	"github.com/trekline/gotours/internal/pkg/cloudinary"
	"github.com/trekline/gotours/internal/pkg/mail"
	"github.com/trekline/gotours/internal/pkg/ratelimit"
	"github.com/trekline/gotours/internal/pkg/response"
)

// Setup mounts every feature under /api/v1 plus the health and swagger
// endpoints.
func Setup(router *gin.Engine, db *mongo.Database, cfg *config.Config) {
	cld, err := cloudinary.NewService(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
		"gotours",
	)
	if err != nil {
		// image uploads degrade to 503, everything else keeps working
		log.Warn().Err(err).Msg("cloudinary not configured, image uploads disabled")
		cld = nil
	}

	mailer := mail.New(cfg)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "success", "message": "OK"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")
	api.Use(ratelimit.Middleware(ratelimit.New(100, time.Hour)))

	auth.RegisterRoutes(api, db, cfg, mailer)
	users.RegisterRoutes(api, db, cfg, cld)
	tourRepo := tours.RegisterRoutes(api, db, cfg, cld)
	reviews.RegisterRoutes(api, db, cfg, tourRepo)

	router.NoRoute(func(c *gin.Context) {
		response.Error(c, apperror.Newf(404, "Can't find %s on this server!", c.Request.URL.Path))
	})
}
