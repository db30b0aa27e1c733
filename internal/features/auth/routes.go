package auth

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/trekline/gotours/internal/config"
	"github.com/trekline/gotours/internal/pkg/mail"
)

func RegisterRoutes(api *gin.RouterGroup, db *mongo.Database, cfg *config.Config, mailer mail.Sender) {
	repo := NewRepository(db)
	handler := NewHandler(repo, cfg, mailer)

	users := api.Group("/users")
	{
		users.POST("/signup", handler.Signup)
		users.POST("/login", handler.Login)
		users.GET("/logout", handler.Logout)
		users.POST("/forgot-password", handler.ForgotPassword)
		users.PATCH("/reset-password/:token", handler.ResetPassword)

		users.PATCH("/update-password", Protect(repo, cfg), handler.UpdatePassword)
	}
}
