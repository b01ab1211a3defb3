package feed

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sportlink/sportlink/internal/middleware"
	"github.com/sportlink/sportlink/internal/user"
)

type mockFeedRepo struct {
	mock.Mock
}

func (m *mockFeedRepo) CreatePost(post *Post) error { return m.Called(post).Error(0) }

func (m *mockFeedRepo) GetPostByID(id uint) (*Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Post), args.Error(1)
}

func (m *mockFeedRepo) GetPosts(page, limit int) ([]Post, int64, error) {
	args := m.Called(page, limit)
	return args.Get(0).([]Post), args.Get(1).(int64), args.Error(2)
}

func (m *mockFeedRepo) GetPostsByUserID(userID uint, page, limit int) ([]Post, int64, error) {
	args := m.Called(userID, page, limit)
	return args.Get(0).([]Post), args.Get(1).(int64), args.Error(2)
}

func (m *mockFeedRepo) DeletePost(id uint) error { return m.Called(id).Error(0) }

func (m *mockFeedRepo) CreateComment(comment *Comment) error { return m.Called(comment).Error(0) }

func (m *mockFeedRepo) GetCommentByID(id uint) (*Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Comment), args.Error(1)
}

func (m *mockFeedRepo) GetCommentsByPostID(postID uint, page, limit int) ([]Comment, int64, error) {
	args := m.Called(postID, page, limit)
	return args.Get(0).([]Comment), args.Get(1).(int64), args.Error(2)
}

func (m *mockFeedRepo) DeleteComment(id uint) error { return m.Called(id).Error(0) }

func (m *mockFeedRepo) CreateLike(like *Like) error { return m.Called(like).Error(0) }

func (m *mockFeedRepo) GetLike(postID, userID uint) (*Like, error) {
	args := m.Called(postID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Like), args.Error(1)
}

func (m *mockFeedRepo) DeleteLike(postID, userID uint) error {
	return m.Called(postID, userID).Error(0)
}

func (m *mockFeedRepo) CountLikes(postIDs []uint) (map[uint]int64, error) {
	args := m.Called(postIDs)
	return args.Get(0).(map[uint]int64), args.Error(1)
}

func (m *mockFeedRepo) CountComments(postIDs []uint) (map[uint]int64, error) {
	args := m.Called(postIDs)
	return args.Get(0).(map[uint]int64), args.Error(1)
}

func (m *mockFeedRepo) LikedByUser(postIDs []uint, userID uint) (map[uint]bool, error) {
	args := m.Called(postIDs, userID)
	return args.Get(0).(map[uint]bool), args.Error(1)
}

func (m *mockFeedRepo) GetUsersByIDs(ids []uint) ([]user.User, error) {
	args := m.Called(ids)
	return args.Get(0).([]user.User), args.Error(1)
}

// feedRouter wires the handlers the way FeedRoutes does; callerID zero leaves
// the public reads anonymous, like a request without a bearer token.
func feedRouter(repo FeedRepository, callerID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	fc := NewFeedController(repo)

	setCaller := func(c *gin.Context) {
		if callerID != 0 {
			c.Set(middleware.AuthUserIDKey, callerID)
		}
		c.Next()
	}

	r := gin.New()
	public := r.Group("/", setCaller)
	public.GET("/posts", fc.GetPosts)
	public.GET("/posts/:post_id", fc.GetPostByID)

	auth := r.Group("/", setCaller)
	auth.POST("/posts", fc.CreatePost)
	auth.DELETE("/posts/:post_id", fc.DeletePost)
	auth.POST("/posts/:post_id/like", fc.LikePost)
	auth.DELETE("/posts/:post_id/like", fc.UnlikePost)
	return r
}

func request(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLikePost_SecondLikeRejected(t *testing.T) {
	repo := new(mockFeedRepo)
	post := &Post{UserID: 2, Content: "scrimmage highlights"}
	post.ID = 1

	repo.On("GetPostByID", uint(1)).Return(post, nil)
	repo.On("GetLike", uint(1), uint(9)).Return(&Like{PostID: 1, UserID: 9}, nil)

	r := feedRouter(repo, 9)
	w := request(t, r, http.MethodPost, "/posts/1/like", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "CreateLike", mock.Anything)
}

func TestLikePost_FirstLikeSucceeds(t *testing.T) {
	repo := new(mockFeedRepo)
	post := &Post{UserID: 2, Content: "scrimmage highlights"}
	post.ID = 1

	repo.On("GetPostByID", uint(1)).Return(post, nil)
	repo.On("GetLike", uint(1), uint(9)).Return(nil, nil)
	repo.On("CreateLike", mock.MatchedBy(func(l *Like) bool {
		return l.PostID == 1 && l.UserID == 9
	})).Return(nil)

	r := feedRouter(repo, 9)
	w := request(t, r, http.MethodPost, "/posts/1/like", nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	repo.AssertExpectations(t)
}

func TestUnlikePost_MissingLikeIs404(t *testing.T) {
	repo := new(mockFeedRepo)
	repo.On("GetLike", uint(1), uint(9)).Return(nil, nil)

	r := feedRouter(repo, 9)
	w := request(t, r, http.MethodDelete, "/posts/1/like", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletePost_OnlyAuthor(t *testing.T) {
	repo := new(mockFeedRepo)
	post := &Post{UserID: 2, Content: "trial announcement"}
	post.ID = 1

	repo.On("GetPostByID", uint(1)).Return(post, nil)

	r := feedRouter(repo, 9)
	w := request(t, r, http.MethodDelete, "/posts/1", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	repo.AssertNotCalled(t, "DeletePost", mock.Anything)
}

func TestGetPosts_ProjectsCountsAndAuthors(t *testing.T) {
	repo := new(mockFeedRepo)
	post := Post{UserID: 2, Content: "matchday"}
	post.ID = 1
	author := user.User{Name: "Cleo", Role: user.RolePlayer}
	author.ID = 2

	repo.On("GetPosts", 1, 10).Return([]Post{post}, int64(1), nil)
	repo.On("CountLikes", []uint{1}).Return(map[uint]int64{1: 4}, nil)
	repo.On("CountComments", []uint{1}).Return(map[uint]int64{1: 2}, nil)
	repo.On("GetUsersByIDs", []uint{2}).Return([]user.User{author}, nil)

	r := feedRouter(repo, 0)
	w := request(t, r, http.MethodGet, "/posts", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []PostView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, int64(4), body.Data[0].LikeCount)
	assert.Equal(t, int64(2), body.Data[0].CommentCount)
	assert.Equal(t, "Cleo", body.Data[0].Author.Name)
	assert.False(t, body.Data[0].LikedByMe)
}

func TestGetPosts_LikedByMeForAuthenticatedCaller(t *testing.T) {
	repo := new(mockFeedRepo)
	post := Post{UserID: 2, Content: "matchday"}
	post.ID = 1
	author := user.User{Name: "Cleo", Role: user.RolePlayer}
	author.ID = 2

	repo.On("GetPosts", 1, 10).Return([]Post{post}, int64(1), nil)
	repo.On("CountLikes", []uint{1}).Return(map[uint]int64{1: 4}, nil)
	repo.On("CountComments", []uint{1}).Return(map[uint]int64{1: 2}, nil)
	repo.On("LikedByUser", []uint{1}, uint(9)).Return(map[uint]bool{1: true}, nil)
	repo.On("GetUsersByIDs", []uint{2}).Return([]user.User{author}, nil)

	r := feedRouter(repo, 9)
	w := request(t, r, http.MethodGet, "/posts", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []PostView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.True(t, body.Data[0].LikedByMe)
	repo.AssertExpectations(t)
}

func TestGetPostByID_ReturnsSinglePost(t *testing.T) {
	repo := new(mockFeedRepo)
	post := &Post{UserID: 2, Content: "open trial this weekend"}
	post.ID = 7
	author := user.User{Name: "Cleo", Role: user.RolePlayer}
	author.ID = 2

	repo.On("GetPostByID", uint(7)).Return(post, nil)
	repo.On("CountLikes", []uint{7}).Return(map[uint]int64{7: 1}, nil)
	repo.On("CountComments", []uint{7}).Return(map[uint]int64{}, nil)
	repo.On("GetUsersByIDs", []uint{2}).Return([]user.User{author}, nil)

	r := feedRouter(repo, 0)
	w := request(t, r, http.MethodGet, "/posts/7", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data PostView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, uint(7), body.Data.ID)
	assert.Equal(t, int64(1), body.Data.LikeCount)
	assert.Equal(t, "Cleo", body.Data.Author.Name)
}

func TestGetPostByID_UnknownPostIs404(t *testing.T) {
	repo := new(mockFeedRepo)
	repo.On("GetPostByID", uint(42)).Return(nil, nil)

	r := feedRouter(repo, 0)
	w := request(t, r, http.MethodGet, "/posts/42", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreatePost_RequiresContent(t *testing.T) {
	repo := new(mockFeedRepo)

	r := feedRouter(repo, 9)
	w := request(t, r, http.MethodPost, "/posts", gin.H{"image_url": "https://img.test/a.png"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "CreatePost", mock.Anything)
}
