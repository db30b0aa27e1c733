package reviews

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/trekline/gotours/internal/config"
	"github.com/trekline/gotours/internal/features/auth"
)

// RegisterRoutes mounts both the flat /reviews routes and the nested
// /tours/:id/reviews routes. The tours repository is the stats writer for
// the rating rollup.
func RegisterRoutes(api *gin.RouterGroup, db *mongo.Database, cfg *config.Config, tourStats TourStatsWriter) {
	repo := NewRepository(db)
	handler := NewHandler(repo, tourStats)

	users := auth.NewRepository(db)
	protect := auth.Protect(users, cfg)
	authorOnly := auth.RestrictTo(auth.RoleUser)
	authorOrAdmin := auth.RestrictTo(auth.RoleUser, auth.RoleAdmin)

	r := api.Group("/reviews", protect)
	{
		r.GET("", handler.List)
		r.POST("", authorOnly, handler.Create)
		r.GET("/:id", handler.Get)
		r.PATCH("/:id", authorOrAdmin, handler.Update)
		r.DELETE("/:id", authorOrAdmin, handler.Delete)
	}

	// nested under tours; param must stay :id to line up with the tour routes
	nested := api.Group("/tours/:id/reviews", protect)
	{
		nested.GET("", handler.List)
		nested.POST("", authorOnly, handler.Create)
	}
}
