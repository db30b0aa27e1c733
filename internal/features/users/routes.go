package users

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/trekline/gotours/internal/config"
	"github.com/trekline/gotours/internal/features/auth"
	"github.com/trekline/gotours/internal/pkg/cloudinary"
)

func RegisterRoutes(api *gin.RouterGroup, db *mongo.Database, cfg *config.Config, cld *cloudinary.Service) {
	repo := auth.NewRepository(db)
	handler := NewHandler(repo, cld)

	users := api.Group("/users")
	users.Use(auth.Protect(repo, cfg))
	{
		users.GET("/me", handler.GetMe)
		users.PATCH("/me", handler.UpdateMe)
		users.DELETE("/me", handler.DeleteMe)
		users.PATCH("/me/photo", handler.UpdatePhoto)

		admin := users.Group("", auth.RestrictTo(auth.RoleAdmin))
		{
			admin.GET("", handler.List)
			admin.GET("/:id", handler.Get)
			admin.PATCH("/:id", handler.Update)
			admin.DELETE("/:id", handler.Delete)
		}
	}
}
