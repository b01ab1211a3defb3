package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sportlink/sportlink/config"
	"github.com/sportlink/sportlink/internal/middleware"
	"github.com/sportlink/sportlink/pkg/mailer"
)

func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, limiter *middleware.RateLimiter) {
	authRepo := NewAuthRepository(db)
	m := mailer.New(appConfig.Mail.SendGridAPIKey, appConfig.Mail.FromEmail, appConfig.Mail.FromName)
	authController := NewAuthController(authRepo, appConfig, m)

	// Public routes, rate limited per client IP
	authPublic := router.Group("/auth")
	authPublic.Use(limiter.Middleware())
	{
		authPublic.POST("/register", authController.Register)
		authPublic.POST("/login", authController.Login)
		authPublic.POST("/refresh-token", authController.RefreshToken)
		authPublic.GET("/verify-email", authController.VerifyEmail)
	}

	// Authenticated routes
	authProtected := router.Group("/auth")
	authProtected.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authProtected.GET("/me", authController.GetProfile)
		authProtected.PUT("/me", authController.UpdateProfile)
		authProtected.POST("/change-password", authController.ChangePassword)
		authProtected.POST("/logout", authController.Logout)

		authProtected.POST("/me/achievements", authController.CreateCoachAchievement)
		authProtected.GET("/me/achievements", authController.GetCoachAchievements)
		authProtected.DELETE("/me/achievements/:achievement_id", authController.DeleteCoachAchievement)
	}
}
