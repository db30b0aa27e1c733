package tours

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/trekline/gotours/internal/config"
	"github.com/trekline/gotours/internal/features/auth"
	"github.com/trekline/gotours/internal/pkg/cloudinary"
)

func RegisterRoutes(api *gin.RouterGroup, db *mongo.Database, cfg *config.Config, cld *cloudinary.Service) *Repository {
	repo := NewRepository(db)
	handler := NewHandler(repo, cld)

	users := auth.NewRepository(db)
	protect := auth.Protect(users, cfg)
	staff := auth.RestrictTo(auth.RoleAdmin, auth.RoleLeadGuide)

	t := api.Group("/tours")
	{
		t.GET("", handler.List)
		t.GET("/top-5-cheap", handler.TopCheap)
		t.GET("/stats", handler.Stats)
		t.GET("/monthly-plan/:year", protect, auth.RestrictTo(auth.RoleAdmin, auth.RoleLeadGuide, auth.RoleGuide), handler.GetMonthlyPlan)
		t.GET("/:id", handler.Get)

		t.POST("", protect, staff, handler.Create)
		t.PATCH("/:id", protect, staff, handler.Update)
		t.DELETE("/:id", protect, staff, handler.Delete)
		t.POST("/:id/images", protect, staff, handler.UploadImage)
	}

	return repo
}
