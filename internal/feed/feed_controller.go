package feed

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sportlink/sportlink/internal/middleware"
	"github.com/sportlink/sportlink/internal/user"
	"github.com/sportlink/sportlink/pkg/responses"
)

// FeedController handles the social feed endpoints
type FeedController struct {
	repo FeedRepository
}

func NewFeedController(repo FeedRepository) *FeedController {
	return &FeedController{repo: repo}
}

type CreatePostRequest struct {
	Content  string `json:"content" binding:"required,min=1,max=5000"`
	ImageURL string `json:"image_url" binding:"omitempty,url"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

func pageParams(c *gin.Context) (int, int) {
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
	return page, limit
}

func parsePostID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid post_id")
		return 0, false
	}
	return uint(id), true
}

// callerID returns the authenticated user ID, 0 on unauthenticated reads.
func callerID(c *gin.Context) uint {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return 0
	}
	return userID
}

func (fc *FeedController) buildViews(c *gin.Context, posts []Post) ([]PostView, bool) {
	postIDs := make([]uint, 0, len(posts))
	authorIDs := make([]uint, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		authorIDs = append(authorIDs, p.UserID)
	}

	likes, err := fc.repo.CountLikes(postIDs)
	if err != nil {
		responses.InternalServerError(c, "Failed to count likes: "+err.Error())
		return nil, false
	}
	comments, err := fc.repo.CountComments(postIDs)
	if err != nil {
		responses.InternalServerError(c, "Failed to count comments: "+err.Error())
		return nil, false
	}

	liked := map[uint]bool{}
	if uid := callerID(c); uid != 0 {
		liked, err = fc.repo.LikedByUser(postIDs, uid)
		if err != nil {
			responses.InternalServerError(c, "Failed to resolve likes: "+err.Error())
			return nil, false
		}
	}

	authors, err := fc.repo.GetUsersByIDs(authorIDs)
	if err != nil {
		responses.InternalServerError(c, "Failed to resolve authors: "+err.Error())
		return nil, false
	}
	identities := make(map[uint]user.Identity, len(authors))
	for i := range authors {
		identities[authors[i].ID] = authors[i].Identity()
	}

	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, PostView{
			ID:           p.ID,
			Author:       identities[p.UserID],
			Content:      p.Content,
			ImageURL:     p.ImageURL,
			LikeCount:    likes[p.ID],
			CommentCount: comments[p.ID],
			LikedByMe:    liked[p.ID],
			CreatedAt:    p.CreatedAt,
		})
	}
	return views, true
}

// GetPosts godoc
// @Summary Get the feed
// @Description Posts newest first with author identity, like and comment counts.
// @Tags Feed
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param user_id query int false "Only posts by this user"
// @Success 200 {object} responses.PaginatedResponse{data=[]PostView} "Feed"
// @Router /posts [get]
func (fc *FeedController) GetPosts(c *gin.Context) {
	page, limit := pageParams(c)

	var (
		posts []Post
		total int64
		err   error
	)
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		uid, convErr := strconv.ParseUint(userIDStr, 10, 32)
		if convErr != nil {
			responses.BadRequest(c, "Invalid user_id")
			return
		}
		posts, total, err = fc.repo.GetPostsByUserID(uint(uid), page, limit)
	} else {
		posts, total, err = fc.repo.GetPosts(page, limit)
	}
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve feed: "+err.Error())
		return
	}

	views, ok := fc.buildViews(c, posts)
	if !ok {
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Feed retrieved successfully", views, total, page, limit)
}

// GetPostByID godoc
// @Summary Get a single post
// @Tags Feed
// @Produce json
// @Param post_id path uint true "Post ID"
// @Success 200 {object} responses.SuccessResponse{data=PostView} "Post"
// @Failure 404 {object} responses.ErrorResponse "Post not found"
// @Router /posts/{post_id} [get]
func (fc *FeedController) GetPostByID(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	post, err := fc.repo.GetPostByID(postID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve post: "+err.Error())
		return
	}
	if post == nil {
		responses.NotFound(c, "Post")
		return
	}

	views, ok := fc.buildViews(c, []Post{*post})
	if !ok {
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Post retrieved successfully", views[0])
}

// CreatePost godoc
// @Summary Create a post
// @Tags Feed
// @Accept json
// @Produce json
// @Param post body CreatePostRequest true "Post content"
// @Success 201 {object} responses.SuccessResponse{data=Post} "Post created"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Security ApiKeyAuth
// @Router /posts [post]
func (fc *FeedController) CreatePost(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	post := Post{
		UserID:   userID,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}
	if err := fc.repo.CreatePost(&post); err != nil {
		responses.InternalServerError(c, "Failed to create post: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Post created successfully", post)
}

// DeletePost godoc
// @Summary Delete a post
// @Description Deletes the caller's own post along with its comments and likes.
// @Tags Feed
// @Produce json
// @Param post_id path uint true "Post ID"
// @Success 200 {object} responses.SuccessResponse "Post deleted"
// @Failure 403 {object} responses.ErrorResponse "Not the author"
// @Failure 404 {object} responses.ErrorResponse "Post not found"
// @Security ApiKeyAuth
// @Router /posts/{post_id} [delete]
func (fc *FeedController) DeletePost(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	post, err := fc.repo.GetPostByID(postID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve post: "+err.Error())
		return
	}
	if post == nil {
		responses.NotFound(c, "Post")
		return
	}
	if post.UserID != userID {
		responses.Forbidden(c, "Only the author can delete a post")
		return
	}

	if err := fc.repo.DeletePost(postID); err != nil {
		responses.InternalServerError(c, "Failed to delete post: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Post deleted successfully", nil)
}

// LikePost godoc
// @Summary Like a post
// @Tags Feed
// @Produce json
// @Param post_id path uint true "Post ID"
// @Success 201 {object} responses.SuccessResponse "Post liked"
// @Failure 400 {object} responses.ErrorResponse "Already liked"
// @Failure 404 {object} responses.ErrorResponse "Post not found"
// @Security ApiKeyAuth
// @Router /posts/{post_id}/like [post]
func (fc *FeedController) LikePost(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	post, err := fc.repo.GetPostByID(postID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve post: "+err.Error())
		return
	}
	if post == nil {
		responses.NotFound(c, "Post")
		return
	}

	existing, err := fc.repo.GetLike(postID, userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check like: "+err.Error())
		return
	}
	if existing != nil {
		responses.BadRequest(c, "You already liked this post")
		return
	}

	if err := fc.repo.CreateLike(&Like{PostID: postID, UserID: userID}); err != nil {
		responses.InternalServerError(c, "Failed to like post: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Post liked", nil)
}

// UnlikePost godoc
// @Summary Remove a like
// @Tags Feed
// @Produce json
// @Param post_id path uint true "Post ID"
// @Success 200 {object} responses.SuccessResponse "Like removed"
// @Failure 404 {object} responses.ErrorResponse "Like not found"
// @Security ApiKeyAuth
// @Router /posts/{post_id}/like [delete]
func (fc *FeedController) UnlikePost(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	existing, err := fc.repo.GetLike(postID, userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check like: "+err.Error())
		return
	}
	if existing == nil {
		responses.NotFound(c, "Like")
		return
	}

	if err := fc.repo.DeleteLike(postID, userID); err != nil {
		responses.InternalServerError(c, "Failed to remove like: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Like removed", nil)
}

// GetComments godoc
// @Summary List comments on a post
// @Tags Feed
// @Produce json
// @Param post_id path uint true "Post ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]CommentView} "Comments"
// @Failure 404 {object} responses.ErrorResponse "Post not found"
// @Router /posts/{post_id}/comments [get]
func (fc *FeedController) GetComments(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	post, err := fc.repo.GetPostByID(postID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve post: "+err.Error())
		return
	}
	if post == nil {
		responses.NotFound(c, "Post")
		return
	}

	page, limit := pageParams(c)
	comments, total, err := fc.repo.GetCommentsByPostID(postID, page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve comments: "+err.Error())
		return
	}

	authorIDs := make([]uint, 0, len(comments))
	for _, cm := range comments {
		authorIDs = append(authorIDs, cm.UserID)
	}
	authors, err := fc.repo.GetUsersByIDs(authorIDs)
	if err != nil {
		responses.InternalServerError(c, "Failed to resolve authors: "+err.Error())
		return
	}
	identities := make(map[uint]user.Identity, len(authors))
	for i := range authors {
		identities[authors[i].ID] = authors[i].Identity()
	}

	views := make([]CommentView, 0, len(comments))
	for _, cm := range comments {
		views = append(views, CommentView{
			ID:        cm.ID,
			Author:    identities[cm.UserID],
			Content:   cm.Content,
			CreatedAt: cm.CreatedAt,
		})
	}
	responses.SendPaginated(c, http.StatusOK, "Comments retrieved successfully", views, total, page, limit)
}

// CreateComment godoc
// @Summary Comment on a post
// @Tags Feed
// @Accept json
// @Produce json
// @Param post_id path uint true "Post ID"
// @Param comment body CreateCommentRequest true "Comment content"
// @Success 201 {object} responses.SuccessResponse{data=Comment} "Comment created"
// @Failure 404 {object} responses.ErrorResponse "Post not found"
// @Security ApiKeyAuth
// @Router /posts/{post_id}/comments [post]
func (fc *FeedController) CreateComment(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	post, err := fc.repo.GetPostByID(postID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve post: "+err.Error())
		return
	}
	if post == nil {
		responses.NotFound(c, "Post")
		return
	}

	comment := Comment{
		PostID:  postID,
		UserID:  userID,
		Content: req.Content,
	}
	if err := fc.repo.CreateComment(&comment); err != nil {
		responses.InternalServerError(c, "Failed to create comment: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Comment created successfully", comment)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description The comment author or the post author may delete a comment.
// @Tags Feed
// @Produce json
// @Param post_id path uint true "Post ID"
// @Param comment_id path uint true "Comment ID"
// @Success 200 {object} responses.SuccessResponse "Comment deleted"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 404 {object} responses.ErrorResponse "Comment not found"
// @Security ApiKeyAuth
// @Router /posts/{post_id}/comments/{comment_id} [delete]
func (fc *FeedController) DeleteComment(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}
	postID, ok := parsePostID(c)
	if !ok {
		return
	}
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid comment_id")
		return
	}

	comment, err := fc.repo.GetCommentByID(uint(commentID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve comment: "+err.Error())
		return
	}
	if comment == nil || comment.PostID != postID {
		responses.NotFound(c, "Comment")
		return
	}

	if comment.UserID != userID {
		post, err := fc.repo.GetPostByID(postID)
		if err != nil {
			responses.InternalServerError(c, "Failed to retrieve post: "+err.Error())
			return
		}
		if post == nil || post.UserID != userID {
			responses.Forbidden(c, "Only the comment author or post author can delete a comment")
			return
		}
	}

	if err := fc.repo.DeleteComment(comment.ID); err != nil {
		responses.InternalServerError(c, "Failed to delete comment: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Comment deleted successfully", nil)
}
