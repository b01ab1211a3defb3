package message

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sportlink/sportlink/config"
	mw "github.com/sportlink/sportlink/internal/middleware"
)

// MessageRoutes sets up the direct messaging routes
func MessageRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, jwtSecret string) {
	messageRepo := NewMessageRepository(db)
	messageController := NewMessageController(messageRepo)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.POST("/messages", messageController.SendMessage)
		authRoutes.GET("/messages/:user_id", messageController.GetConversation)
		authRoutes.GET("/conversations", messageController.GetConversations)
	}
}
