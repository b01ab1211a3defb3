package club

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sportlink/sportlink/config"
	mw "github.com/sportlink/sportlink/internal/middleware"
)

// ClubRoutes sets up all club-related routes
func ClubRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, jwtSecret string) {
	clubRepo := NewClubRepository(db)
	clubController := NewClubController(clubRepo, appConfig)

	// Public club routes
	router.GET("/clubs", clubController.GetAllClubs)
	router.GET("/clubs/:club_id", clubController.GetClubByID)
	router.GET("/clubs/:club_id/members", clubController.GetClubMembers)
	router.GET("/clubs/:club_id/events", clubController.GetEvents)
	router.GET("/clubs/:club_id/events/:event_id", clubController.GetEventByID)
	router.GET("/clubs/:club_id/achievements", clubController.GetAchievements)
	router.GET("/clubs/:club_id/stats", clubController.GetStats)

	// Authenticated routes; authorization is handled within the controller methods
	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.PUT("/clubs/:club_id", clubController.UpdateClub)
		authRoutes.DELETE("/clubs/:club_id", clubController.DeleteClub)

		authRoutes.DELETE("/clubs/:club_id/members/:user_id", clubController.RemoveMember)

		authRoutes.POST("/clubs/:club_id/join-requests", clubController.RequestToJoin)
		authRoutes.GET("/clubs/:club_id/join-requests", clubController.GetJoinRequests)
		authRoutes.PATCH("/clubs/:club_id/join-requests/:request_id", clubController.RespondToJoinRequest)

		authRoutes.POST("/clubs/:club_id/events", clubController.CreateEvent)
		authRoutes.PATCH("/clubs/:club_id/events/:event_id", clubController.UpdateEvent)
		authRoutes.DELETE("/clubs/:club_id/events/:event_id", clubController.DeleteEvent)

		authRoutes.POST("/clubs/:club_id/achievements", clubController.CreateAchievement)
		authRoutes.DELETE("/clubs/:club_id/achievements/:achievement_id", clubController.DeleteAchievement)
	}
}
