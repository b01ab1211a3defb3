package club

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sportlink/sportlink/config"
	"github.com/sportlink/sportlink/internal/middleware"
	"github.com/sportlink/sportlink/internal/user"
)

type mockClubRepo struct {
	mock.Mock
}

func (m *mockClubRepo) CreateClub(club *Club) error {
	return m.Called(club).Error(0)
}

func (m *mockClubRepo) GetClubByID(id uint) (*Club, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Club), args.Error(1)
}

func (m *mockClubRepo) GetClubByUserID(userID uint) (*Club, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Club), args.Error(1)
}

func (m *mockClubRepo) GetAllClubs(page, limit int, filters map[string]interface{}) ([]Club, int64, error) {
	args := m.Called(page, limit, filters)
	return args.Get(0).([]Club), args.Get(1).(int64), args.Error(2)
}

func (m *mockClubRepo) UpdateClub(club *Club) error {
	return m.Called(club).Error(0)
}

func (m *mockClubRepo) DeleteClubCascade(club *Club) error {
	return m.Called(club).Error(0)
}

func (m *mockClubRepo) AddMember(member *Member) error {
	return m.Called(member).Error(0)
}

func (m *mockClubRepo) GetMembershipByUserID(userID uint) (*Member, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *mockClubRepo) GetClubMember(clubID, userID uint) (*Member, error) {
	args := m.Called(clubID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *mockClubRepo) ListMembers(clubID uint, role string, page, limit int) ([]Member, int64, error) {
	args := m.Called(clubID, role, page, limit)
	return args.Get(0).([]Member), args.Get(1).(int64), args.Error(2)
}

func (m *mockClubRepo) ListAllMembers(clubID uint) ([]Member, error) {
	args := m.Called(clubID)
	return args.Get(0).([]Member), args.Error(1)
}

func (m *mockClubRepo) DeleteMember(clubID, userID uint) error {
	return m.Called(clubID, userID).Error(0)
}

func (m *mockClubRepo) CountMembers(clubID uint, role string) (int64, error) {
	args := m.Called(clubID, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockClubRepo) GetUserByID(id uint) (*user.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockClubRepo) GetUsersByIDs(ids []uint) ([]user.User, error) {
	args := m.Called(ids)
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *mockClubRepo) SetPlayerStatus(userID uint, status string) error {
	return m.Called(userID, status).Error(0)
}

func (m *mockClubRepo) CreateJoinRequest(request *JoinRequest) error {
	return m.Called(request).Error(0)
}

func (m *mockClubRepo) GetJoinRequestByID(id uint) (*JoinRequest, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*JoinRequest), args.Error(1)
}

func (m *mockClubRepo) GetPendingJoinRequest(clubID, userID uint) (*JoinRequest, error) {
	args := m.Called(clubID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*JoinRequest), args.Error(1)
}

func (m *mockClubRepo) GetJoinRequestsByClubID(clubID uint, status string, page, limit int) ([]JoinRequest, int64, error) {
	args := m.Called(clubID, status, page, limit)
	return args.Get(0).([]JoinRequest), args.Get(1).(int64), args.Error(2)
}

func (m *mockClubRepo) UpdateJoinRequest(request *JoinRequest) error {
	return m.Called(request).Error(0)
}

func (m *mockClubRepo) CreateEvent(event *Event) error {
	return m.Called(event).Error(0)
}

func (m *mockClubRepo) GetEventByID(id uint) (*Event, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Event), args.Error(1)
}

func (m *mockClubRepo) GetEventsByClubID(clubID uint, status, eventType string, page, limit int) ([]Event, int64, error) {
	args := m.Called(clubID, status, eventType, page, limit)
	return args.Get(0).([]Event), args.Get(1).(int64), args.Error(2)
}

func (m *mockClubRepo) UpdateEvent(event *Event) error {
	return m.Called(event).Error(0)
}

func (m *mockClubRepo) DeleteEvent(id uint) error {
	return m.Called(id).Error(0)
}

func (m *mockClubRepo) CreateAchievement(achievement *Achievement) error {
	return m.Called(achievement).Error(0)
}

func (m *mockClubRepo) GetAchievementByID(id uint) (*Achievement, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Achievement), args.Error(1)
}

func (m *mockClubRepo) GetAchievementsByClubID(clubID uint) ([]Achievement, error) {
	args := m.Called(clubID)
	return args.Get(0).([]Achievement), args.Error(1)
}

func (m *mockClubRepo) DeleteAchievement(id uint) error {
	return m.Called(id).Error(0)
}

func (m *mockClubRepo) GetStats(clubID uint, now time.Time) (*Stats, error) {
	args := m.Called(clubID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Stats), args.Error(1)
}

func (m *mockClubRepo) WithTransaction(txFunc func(ClubRepository) error) error {
	return txFunc(m)
}

// --- Test setup ---

const (
	ownerUserID  = uint(10)
	clubRecordID = uint(1)
)

func testClub() *Club {
	c := &Club{
		UserID:   ownerUserID,
		Name:     "Northside FC",
		Location: "Oslo",
	}
	c.ID = clubRecordID
	return c
}

// fakeAuth installs the context keys the auth middleware would set.
func fakeAuth(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.AuthUserIDKey, userID)
		c.Next()
	}
}

func setupRouter(repo ClubRepository, callerID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cc := NewClubController(repo, &config.Config{})

	r := gin.New()
	r.GET("/clubs", cc.GetAllClubs)
	r.GET("/clubs/:club_id", cc.GetClubByID)
	r.GET("/clubs/:club_id/members", cc.GetClubMembers)
	r.GET("/clubs/:club_id/events", cc.GetEvents)
	r.GET("/clubs/:club_id/stats", cc.GetStats)

	auth := r.Group("/", fakeAuth(callerID))
	auth.DELETE("/clubs/:club_id", cc.DeleteClub)
	auth.DELETE("/clubs/:club_id/members/:user_id", cc.RemoveMember)
	auth.POST("/clubs/:club_id/join-requests", cc.RequestToJoin)
	auth.GET("/clubs/:club_id/join-requests", cc.GetJoinRequests)
	auth.PATCH("/clubs/:club_id/join-requests/:request_id", cc.RespondToJoinRequest)
	auth.POST("/clubs/:club_id/events", cc.CreateEvent)
	auth.PATCH("/clubs/:club_id/events/:event_id", cc.UpdateEvent)
	auth.POST("/clubs/:club_id/achievements", cc.CreateAchievement)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
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

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// --- Join request lifecycle ---

func TestRequestToJoin_CreatesPendingRequest(t *testing.T) {
	repo := new(mockClubRepo)
	playerID := uint(20)

	repo.On("GetClubByID", clubRecordID).Return(testClub(), nil)
	repo.On("GetUserByID", playerID).Return(&user.User{Role: user.RolePlayer}, nil)
	repo.On("GetMembershipByUserID", playerID).Return(nil, nil)
	repo.On("GetPendingJoinRequest", clubRecordID, playerID).Return(nil, nil)
	repo.On("CreateJoinRequest", mock.MatchedBy(func(jr *JoinRequest) bool {
		return jr.Status == RequestPending && jr.ClubID == clubRecordID && jr.UserID == playerID
	})).Return(nil)

	r := setupRouter(repo, playerID)
	w := doJSON(t, r, http.MethodPost, "/clubs/1/join-requests", gin.H{"message": "let me in"})

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	repo.AssertExpectations(t)
}

func TestRequestToJoin_RejectedWhenAlreadyInAClub(t *testing.T) {
	repo := new(mockClubRepo)
	playerID := uint(20)

	repo.On("GetClubByID", clubRecordID).Return(testClub(), nil)
	repo.On("GetUserByID", playerID).Return(&user.User{Role: user.RolePlayer}, nil)
	repo.On("GetMembershipByUserID", playerID).Return(&Member{ClubID: 7, UserID: playerID}, nil)

	r := setupRouter(repo, playerID)
	w := doJSON(t, r, http.MethodPost, "/clubs/1/join-requests", gin.H{"message": "hi"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "CreateJoinRequest", mock.Anything)
}

func TestRequestToJoin_RejectedForDuplicatePending(t *testing.T) {
	repo := new(mockClubRepo)
	playerID := uint(20)

	repo.On("GetClubByID", clubRecordID).Return(testClub(), nil)
	repo.On("GetUserByID", playerID).Return(&user.User{Role: user.RolePlayer}, nil)
	repo.On("GetMembershipByUserID", playerID).Return(nil, nil)
	repo.On("GetPendingJoinRequest", clubRecordID, playerID).Return(&JoinRequest{Status: RequestPending}, nil)

	r := setupRouter(repo, playerID)
	w := doJSON(t, r, http.MethodPost, "/clubs/1/join-requests", gin.H{"message": "again"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "CreateJoinRequest", mock.Anything)
}

func TestRequestToJoin_RejectedForClubAccounts(t *testing.T) {
	repo := new(mockClubRepo)
	otherClubUserID := uint(30)

	repo.On("GetClubByID", clubRecordID).Return(testClub(), nil)
	repo.On("GetUserByID", otherClubUserID).Return(&user.User{Role: user.RoleClub}, nil)

	r := setupRouter(repo, otherClubUserID)
	w := doJSON(t, r, http.MethodPost, "/clubs/1/join-requests", gin.H{"message": "merge?"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRespondToJoinRequest_ApproveAddsMemberAndSignsPlayer(t *testing.T) {
	repo := new(mockClubRepo)
	playerID := uint(20)
	pending := &JoinRequest{ClubID: clubRecordID, UserID: playerID, Status: RequestPending}
	pending.ID = 5

	repo.On("GetClubByID", clubRecordID).Return(testClub(), nil)
	repo.On("GetJoinRequestByID", uint(5)).Return(pending, nil)
	repo.On("GetUserByID", playerID).Return(&user.User{Role: user.RolePlayer}, nil)
	repo.On("GetMembershipByUserID", playerID).Return(nil, nil)
	repo.On("UpdateJoinRequest", mock.MatchedBy(func(jr *JoinRequest) bool {
		return jr.Status == RequestApproved && jr.ProcessedAt != nil && jr.ProcessedBy != nil
	})).Return(nil)
	repo.On("AddMember", mock.MatchedBy(func(m *Member) bool {
		return m.ClubID == clubRecordID && m.UserID == playerID && m.Role == user.RolePlayer
	})).Return(nil)
	repo.On("SetPlayerStatus", playerID, user.PlayerStatusSigned).Return(nil)

	r := setupRouter(repo, ownerUserID)
	w := doJSON(t, r, http.MethodPatch, "/clubs/1/join-requests/5", gin.H{"status": "approved"})

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestRespondToJoinRequest_RejectLeavesRosterUntouched(t *testing.T) {
	repo := new(mockClubRepo)
	pending := &JoinRequest{ClubID: clubRecordID, UserID: 20, Status: RequestPending}
	pending.ID = 5

	repo.On("GetClubByID", clubRecordID).Return(testClub(), nil)
	repo.On("GetJoinRequestByID", uint(5)).Return(pending, nil)
	repo.On("UpdateJoinRequest", mock.MatchedBy(func(jr *JoinRequest) bool {
		return jr.Status == RequestRejected
	})).Return(nil)

	r := setupRouter(repo, ownerUserID)
	w := doJSON(t, r, http.MethodPatch, "/clubs/1/join-requests/5", gin.H{"status": "rejected"})

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertNotCalled(t, "AddMember", mock.Anything)
	repo.AssertNotCalled(t, "SetPlayerStatus", mock.Anything, mock.Anything)
}

func TestRespondToJoinRequest_AlreadyProcessedFailsWithoutSideEffects(t *testing.T) {
	repo := new(mockClubRepo)
	resolved := &JoinRequest{ClubID: clubRecordID, UserID: 20, Status: RequestApproved}
	resolved.ID = 5

	repo.On("GetClubByID", clubRecordID).Return(testClub(), nil)
	repo.On("GetJoinRequestByID", uint(5)).Return(resolved, nil)

	r := setupRouter(repo, ownerUserID)
	w := doJSON(t, r, http.MethodPatch, "/clubs/1/join-requests/5", gin.H{"status": "rejected"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "UpdateJoinRequest", mock.Anything)
	repo.AssertNotCalled(t, "AddMember", mock.Anything)
}

func TestRespondToJoinRequest_RequiresClubOwnership(t *testing.T) {
	repo := new(mockClubRepo)
	repo.On("GetClubByID", clubRecordID).Return(testClub(), nil)

	r := setupRouter(repo, uint(99)) // not the club's account
	w := doJSON(t, r, http.MethodPatch, "/clubs/1/join-requests/5", gin.H{"status": "approved"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	repo.AssertNotCalled(t, "GetJoinRequestByID", mock.Anything)
}

func TestGetJoinRequests_RequiresClubOwnership(t *testing.T) {
	repo := new(mockClubRepo)
	repo.On("GetClubByID", clubRecordID).Return(testClub(), nil)

	r := setupRouter(repo, uint(99))
	w := doJSON(t, r, http.MethodGet, "/clubs/1/join-requests", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// --- Members ---

func TestRemoveMember_NotFound(t *testing.T) {
	repo := new(mockClubRepo)
	repo.On("GetClubByID", clubRecordID).Return(testClub(), nil)
	repo.On("GetClubMember", clubRecordID, uint(55)).Return(nil, nil)

	r := setupRouter(repo, ownerUserID)
	w := doJSON(t, r, http.MethodDelete, "/clubs/1/members/55", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	repo.AssertNotCalled(t, "DeleteMember", mock.Anything, mock.Anything)
}

func TestRemoveMember_ResetsPlayerStatus(t *testing.T) {
	repo := new(mockClubRepo)
	repo.On("GetClubByID", clubRecordID).Return(testClub(), nil)
	repo.On("GetClubMember", clubRecordID, uint(55)).Return(&Member{ClubID: clubRecordID, UserID: 55, Role: user.RolePlayer}, nil)
	repo.On("DeleteMember", clubRecordID, uint(55)).Return(nil)
	repo.On("SetPlayerStatus", uint(55), user.PlayerStatusFreeAgent).Return(nil)

	r := setupRouter(repo, ownerUserID)
	w := doJSON(t, r, http.MethodDelete, "/clubs/1/members/55", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestRemoveMember_CoachSkipsPlayerStatus(t *testing.T) {
	repo := new(mockClubRepo)
	repo.On("GetClubByID", clubRecordID).Return(testClub(), nil)
	repo.On("GetClubMember", clubRecordID, uint(56)).Return(&Member{ClubID: clubRecordID, UserID: 56, Role: user.RoleCoach}, nil)
	repo.On("DeleteMember", clubRecordID, uint(56)).Return(nil)

	r := setupRouter(repo, ownerUserID)
	w := doJSON(t, r, http.MethodDelete, "/clubs/1/members/56", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertNotCalled(t, "SetPlayerStatus", mock.Anything, mock.Anything)
}

func TestGetClubMembers_FiltersByRole(t *testing.T) {
	repo := new(mockClubRepo)
	members := []Member{{ClubID: clubRecordID, UserID: 20, Role: user.RolePlayer, JoinedAt: time.Now()}}
	u := user.User{Name: "Anna", Role: user.RolePlayer}
	u.ID = 20

	repo.On("GetClubByID", clubRecordID).Return(testClub(), nil)
	repo.On("ListMembers", clubRecordID, user.RolePlayer, 1, 10).Return(members, int64(1), nil)
	repo.On("GetUsersByIDs", []uint{20}).Return([]user.User{u}, nil)

	r := setupRouter(repo, 0)
	w := doJSON(t, r, http.MethodGet, "/clubs/1/members?role=player", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	entry := data[0].(map[string]interface{})
	assert.Equal(t, "Anna", entry["name"])
	assert.Equal(t, "player", entry["member_role"])
}

func TestGetClubMembers_InvalidRoleFilter(t *testing.T) {
	repo := new(mockClubRepo)
	repo.On("GetClubByID", clubRecordID).Return(testClub(), nil)

	r := setupRouter(repo, 0)
	w := doJSON(t, r, http.MethodGet, "/clubs/1/members?role=referee", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Club detail and deletion ---

func TestGetClubByID_GroupsMembersByRole(t *testing.T) {
	repo := new(mockClubRepo)
	members := []Member{
		{ClubID: clubRecordID, UserID: 20, Role: user.RolePlayer},
		{ClubID: clubRecordID, UserID: 21, Role: user.RoleCoach},
	}
	player := user.User{Name: "Anna", Role: user.RolePlayer}
	player.ID = 20
	coach := user.User{Name: "Bo", Role: user.RoleCoach}
	coach.ID = 21

	repo.On("GetClubByID", clubRecordID).Return(testClub(), nil)
	repo.On("ListAllMembers", clubRecordID).Return(members, nil)
	repo.On("GetUsersByIDs", []uint{20, 21}).Return([]user.User{player, coach}, nil)

	r := setupRouter(repo, 0)
	w := doJSON(t, r, http.MethodGet, "/clubs/1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.Len(t, data["players"], 1)
	assert.Len(t, data["coaches"], 1)
	assert.Len(t, data["scouts"], 0)
}

func TestGetClubByID_NotFound(t *testing.T) {
	repo := new(mockClubRepo)
	repo.On("GetClubByID", uint(999)).Return(nil, nil)

	r := setupRouter(repo, 0)
	w := doJSON(t, r, http.MethodGet, "/clubs/999", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
}

func TestDeleteClub_OwnerOnly(t *testing.T) {
	repo := new(mockClubRepo)
	repo.On("GetClubByID", clubRecordID).Return(testClub(), nil)

	r := setupRouter(repo, uint(99))
	w := doJSON(t, r, http.MethodDelete, "/clubs/1", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	repo.AssertNotCalled(t, "DeleteClubCascade", mock.Anything)
}

func TestDeleteClub_CascadesForOwner(t *testing.T) {
	repo := new(mockClubRepo)
	repo.On("GetClubByID", clubRecordID).Return(testClub(), nil)
	repo.On("DeleteClubCascade", mock.Anything).Return(nil)

	r := setupRouter(repo, ownerUserID)
	w := doJSON(t, r, http.MethodDelete, "/clubs/1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

// --- Events ---

func TestUpdateEvent_RejectsUnknownFields(t *testing.T) {
	repo := new(mockClubRepo)
	event := &Event{ClubID: clubRecordID, Title: "Open training"}
	event.ID = 3

	repo.On("GetClubByID", clubRecordID).Return(testClub(), nil)
	repo.On("GetEventByID", uint(3)).Return(event, nil)

	r := setupRouter(repo, ownerUserID)
	w := doJSON(t, r, http.MethodPatch, "/clubs/1/events/3", gin.H{"title": "New title", "club_id": 99})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "invalid updates", body["error"])
	repo.AssertNotCalled(t, "UpdateEvent", mock.Anything)
}

func TestUpdateEvent_AppliesAllowedFields(t *testing.T) {
	repo := new(mockClubRepo)
	event := &Event{ClubID: clubRecordID, Title: "Open training", Type: EventTraining, Status: EventScheduled}
	event.ID = 3

	repo.On("GetClubByID", clubRecordID).Return(testClub(), nil)
	repo.On("GetEventByID", uint(3)).Return(event, nil)
	repo.On("UpdateEvent", mock.MatchedBy(func(e *Event) bool {
		return e.Title == "Friendly vs Rovers" && e.Status == EventCancelled
	})).Return(nil)

	r := setupRouter(repo, ownerUserID)
	w := doJSON(t, r, http.MethodPatch, "/clubs/1/events/3",
		gin.H{"title": "Friendly vs Rovers", "status": "cancelled"})

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestUpdateEvent_RejectsInvalidEnum(t *testing.T) {
	repo := new(mockClubRepo)
	event := &Event{ClubID: clubRecordID, Type: EventTraining}
	event.ID = 3

	repo.On("GetClubByID", clubRecordID).Return(testClub(), nil)
	repo.On("GetEventByID", uint(3)).Return(event, nil)

	r := setupRouter(repo, ownerUserID)
	w := doJSON(t, r, http.MethodPatch, "/clubs/1/events/3", gin.H{"type": "picnic"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "UpdateEvent", mock.Anything)
}

func TestCreateEvent_DefaultsToScheduled(t *testing.T) {
	repo := new(mockClubRepo)
	repo.On("GetClubByID", clubRecordID).Return(testClub(), nil)
	repo.On("CreateEvent", mock.MatchedBy(func(e *Event) bool {
		return e.Status == EventScheduled && e.ClubID == clubRecordID && e.CreatedByID == ownerUserID
	})).Return(nil)

	r := setupRouter(repo, ownerUserID)
	w := doJSON(t, r, http.MethodPost, "/clubs/1/events", gin.H{
		"title": "Trial day",
		"date":  time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"type":  "trial",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	repo.AssertExpectations(t)
}

func TestCreateEvent_NonOwnerForbidden(t *testing.T) {
	repo := new(mockClubRepo)
	repo.On("GetClubByID", clubRecordID).Return(testClub(), nil)

	r := setupRouter(repo, uint(99))
	w := doJSON(t, r, http.MethodPost, "/clubs/1/events", gin.H{
		"title": "Trial day",
		"date":  time.Now().Format(time.RFC3339),
		"type":  "trial",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// --- Achievements ---

func TestCreateAchievement_ValidatesLevel(t *testing.T) {
	repo := new(mockClubRepo)
	repo.On("GetClubByID", clubRecordID).Return(testClub(), nil)

	r := setupRouter(repo, ownerUserID)
	w := doJSON(t, r, http.MethodPost, "/clubs/1/achievements", gin.H{
		"title": "League winners",
		"year":  2024,
		"level": "Galactic",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "CreateAchievement", mock.Anything)
}

// --- Stats ---

func TestGetStats_ReturnsAggregatedCounts(t *testing.T) {
	repo := new(mockClubRepo)
	stats := &Stats{
		TotalMembers:       4,
		TotalPlayers:       3,
		TotalCoaches:       1,
		TotalScouts:        0,
		UpcomingEvents:     2,
		MatchesPlayed:      1,
		TrophiesWon:        2,
		MembershipRequests: 4,
	}
	repo.On("GetClubByID", clubRecordID).Return(testClub(), nil)
	repo.On("GetStats", clubRecordID, mock.AnythingOfType("time.Time")).Return(stats, nil)

	r := setupRouter(repo, 0)
	w := doJSON(t, r, http.MethodGet, "/clubs/1/stats", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(4), data["totalMembers"])
	assert.Equal(t, float64(3), data["totalPlayers"])
	assert.Equal(t, float64(1), data["totalCoaches"])
	assert.Equal(t, float64(0), data["totalScouts"])
	assert.Equal(t, float64(2), data["upcomingEvents"])
	assert.Equal(t, float64(1), data["matchesPlayed"])
	assert.Equal(t, float64(2), data["trophiesWon"])
	assert.Equal(t, float64(4), data["membershipRequests"])
}

// --- Listing and pagination ---

func TestGetAllClubs_ClampsPagination(t *testing.T) {
	repo := new(mockClubRepo)
	repo.On("GetAllClubs", 1, 100, map[string]interface{}{}).Return([]Club{}, int64(0), nil)

	r := setupRouter(repo, 0)
	w := doJSON(t, r, http.MethodGet, "/clubs?page=-3&limit=5000", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestGetAllClubs_PassesFilters(t *testing.T) {
	repo := new(mockClubRepo)
	expected := map[string]interface{}{"verified": true, "location": "Oslo"}
	repo.On("GetAllClubs", 2, 5, expected).Return([]Club{*testClub()}, int64(11), nil)

	r := setupRouter(repo, 0)
	w := doJSON(t, r, http.MethodGet, "/clubs?page=2&limit=5&verified=true&location=Oslo", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), pagination["page"])
	assert.Equal(t, float64(11), pagination["total"])
	assert.Equal(t, float64(3), pagination["pages"])
}
