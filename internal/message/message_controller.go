package message

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sportlink/sportlink/internal/middleware"
	"github.com/sportlink/sportlink/pkg/responses"
)

// MessageController handles direct messaging endpoints
type MessageController struct {
	repo MessageRepository
}

func NewMessageController(repo MessageRepository) *MessageController {
	return &MessageController{repo: repo}
}

type SendMessageRequest struct {
	RecipientID uint   `json:"recipient_id" binding:"required"`
	Body        string `json:"body" binding:"required,min=1,max=5000"`
}

// SendMessage godoc
// @Summary Send a direct message
// @Tags Messages
// @Accept json
// @Produce json
// @Param message body SendMessageRequest true "Message"
// @Success 201 {object} responses.SuccessResponse{data=Message} "Message sent"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 404 {object} responses.ErrorResponse "Recipient not found"
// @Security ApiKeyAuth
// @Router /messages [post]
func (mc *MessageController) SendMessage(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	if req.RecipientID == userID {
		responses.BadRequest(c, "Cannot send a message to yourself")
		return
	}

	recipient, err := mc.repo.GetUserByID(req.RecipientID)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up recipient: "+err.Error())
		return
	}
	if recipient == nil {
		responses.NotFound(c, "Recipient")
		return
	}

	message := Message{
		SenderID:    userID,
		RecipientID: req.RecipientID,
		Body:        req.Body,
	}
	if err := mc.repo.CreateMessage(&message); err != nil {
		responses.InternalServerError(c, "Failed to send message: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Message sent successfully", message)
}

// GetConversations godoc
// @Summary List conversations
// @Description One entry per chat partner with the latest message and unread count, most recent first.
// @Tags Messages
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Conversation} "Conversations"
// @Security ApiKeyAuth
// @Router /conversations [get]
func (mc *MessageController) GetConversations(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	conversations, err := mc.repo.GetConversations(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve conversations: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Conversations retrieved successfully", conversations)
}

// GetConversation godoc
// @Summary Get messages with one partner
// @Description Messages newest first. Fetching the conversation marks the partner's messages as read.
// @Tags Messages
// @Produce json
// @Param user_id path uint true "Partner user ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]Message} "Messages"
// @Failure 404 {object} responses.ErrorResponse "Partner not found"
// @Security ApiKeyAuth
// @Router /messages/{user_id} [get]
func (mc *MessageController) GetConversation(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	partnerID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid user_id")
		return
	}

	partner, err := mc.repo.GetUserByID(uint(partnerID))
	if err != nil {
		responses.InternalServerError(c, "Failed to look up partner: "+err.Error())
		return
	}
	if partner == nil {
		responses.NotFound(c, "User")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	messages, total, err := mc.repo.GetConversation(userID, uint(partnerID), page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve conversation: "+err.Error())
		return
	}

	if err := mc.repo.MarkConversationRead(userID, uint(partnerID)); err != nil {
		responses.InternalServerError(c, "Failed to mark conversation read: "+err.Error())
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Conversation retrieved successfully", messages, total, page, limit)
}
