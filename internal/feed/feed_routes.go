package feed

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sportlink/sportlink/config"
	mw "github.com/sportlink/sportlink/internal/middleware"
)

// FeedRoutes sets up the social feed routes
func FeedRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, jwtSecret string) {
	feedRepo := NewFeedRepository(db)
	feedController := NewFeedController(feedRepo)

	// Public reads; a valid bearer token personalizes liked_by_me
	publicRoutes := router.Group("/")
	publicRoutes.Use(mw.OptionalAuthMiddleware(jwtSecret))
	{
		publicRoutes.GET("/posts", feedController.GetPosts)
		publicRoutes.GET("/posts/:post_id", feedController.GetPostByID)
		publicRoutes.GET("/posts/:post_id/comments", feedController.GetComments)
	}

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.POST("/posts", feedController.CreatePost)
		authRoutes.DELETE("/posts/:post_id", feedController.DeletePost)

		authRoutes.POST("/posts/:post_id/like", feedController.LikePost)
		authRoutes.DELETE("/posts/:post_id/like", feedController.UnlikePost)

		authRoutes.POST("/posts/:post_id/comments", feedController.CreateComment)
		authRoutes.DELETE("/posts/:post_id/comments/:comment_id", feedController.DeleteComment)
	}
}
