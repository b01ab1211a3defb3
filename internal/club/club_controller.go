package club

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sportlink/sportlink/config"
	"github.com/sportlink/sportlink/internal/middleware"
	"github.com/sportlink/sportlink/internal/models"
	"github.com/sportlink/sportlink/internal/user"
	"github.com/sportlink/sportlink/pkg/responses"
)

// eventUpdateFields is the exact allow-list for event updates; any other key
// in the request body fails the whole update.
var eventUpdateFields = map[string]bool{
	"title":        true,
	"date":         true,
	"type":         true,
	"description":  true,
	"location":     true,
	"participants": true,
	"status":       true,
}

// ClubController handles club-related HTTP requests
type ClubController struct {
	repo      ClubRepository
	appConfig *config.Config
}

// NewClubController creates a new club controller
func NewClubController(repo ClubRepository, appConfig *config.Config) *ClubController {
	return &ClubController{
		repo:      repo,
		appConfig: appConfig,
	}
}

// --- Helpers ---

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
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

// requireClub loads the club addressed by :club_id or writes a 404.
func (cc *ClubController) requireClub(c *gin.Context) (*Club, bool) {
	clubID, ok := parseIDParam(c, "club_id")
	if !ok {
		return nil, false
	}
	club, err := cc.repo.GetClubByID(clubID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve club: "+err.Error())
		return nil, false
	}
	if club == nil {
		responses.NotFound(c, "Club")
		return nil, false
	}
	return club, true
}

// requireOwnedClub additionally enforces the self-administration model: only
// the club's own account may mutate its membership, events and achievements.
func (cc *ClubController) requireOwnedClub(c *gin.Context) (*Club, bool) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return nil, false
	}
	club, ok := cc.requireClub(c)
	if !ok {
		return nil, false
	}
	if club.UserID != userID {
		responses.Forbidden(c, "Only the club itself can manage this resource")
		return nil, false
	}
	return club, true
}

func (cc *ClubController) identitiesFor(members []Member) (map[uint]user.Identity, error) {
	ids := make([]uint, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	users, err := cc.repo.GetUsersByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]user.Identity, len(users))
	for i := range users {
		byID[users[i].ID] = users[i].Identity()
	}
	return byID, nil
}

// --- DTOs ---

type UpdateClubRequest struct {
	Name        *string   `json:"name" binding:"omitempty,min=2,max=100"`
	Location    *string   `json:"location"`
	FoundedYear *int      `json:"founded_year" binding:"omitempty,gte=1800"`
	Description *string   `json:"description" binding:"omitempty,max=2000"`
	Tier        *string   `json:"tier"`
	League      *string   `json:"league"`
	Website     *string   `json:"website"`
	Facilities  *[]string `json:"facilities"`
}

type CreateJoinRequestInput struct {
	Message string `json:"message" binding:"max=500"`
}

type RespondJoinRequestInput struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

type CreateEventRequest struct {
	Title        string    `json:"title" binding:"required,min=2,max=200"`
	Date         time.Time `json:"date" binding:"required"`
	Type         string    `json:"type" binding:"required,oneof=training match tournament meeting trial"`
	Description  string    `json:"description" binding:"max=2000"`
	Location     string    `json:"location"`
	Participants []uint    `json:"participants"`
	Status       string    `json:"status" binding:"omitempty,oneof=scheduled completed cancelled"`
}

type UpdateEventRequest struct {
	Title        *string    `json:"title"`
	Date         *time.Time `json:"date"`
	Type         *string    `json:"type"`
	Description  *string    `json:"description"`
	Location     *string    `json:"location"`
	Participants *[]uint    `json:"participants"`
	Status       *string    `json:"status"`
}

type CreateAchievementRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=200"`
	Year        int    `json:"year" binding:"required,gte=1800"`
	Description string `json:"description" binding:"max=2000"`
	Level       string `json:"level" binding:"required,oneof=Club Regional National International"`
}

// --- Club Handlers ---

// GetAllClubs godoc
// @Summary List clubs
// @Description Retrieves clubs with optional filters and pagination, verified clubs first.
// @Tags Clubs
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param verified query bool false "Filter by verified flag"
// @Param location query string false "Filter by location (partial match)"
// @Param tier query string false "Filter by tier"
// @Success 200 {object} responses.PaginatedResponse{data=[]Club} "List of clubs"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /clubs [get]
func (cc *ClubController) GetAllClubs(c *gin.Context) {
	page, limit := pageParams(c)

	filters := make(map[string]interface{})
	if verifiedStr := c.Query("verified"); verifiedStr != "" {
		verified, err := strconv.ParseBool(verifiedStr)
		if err == nil {
			filters["verified"] = verified
		}
	}
	if location := c.Query("location"); location != "" {
		filters["location"] = location
	}
	if tier := c.Query("tier"); tier != "" {
		filters["tier"] = tier
	}

	clubs, total, err := cc.repo.GetAllClubs(page, limit, filters)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve clubs: "+err.Error())
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Clubs retrieved successfully", clubs, total, page, limit)
}

// GetClubByID godoc
// @Summary Get a club by its ID
// @Description Retrieves a club with its member identities grouped by role.
// @Tags Clubs
// @Produce json
// @Param club_id path uint true "Club ID"
// @Success 200 {object} responses.SuccessResponse{data=ClubDetail} "Club details"
// @Failure 404 {object} responses.ErrorResponse "Club not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /clubs/{club_id} [get]
func (cc *ClubController) GetClubByID(c *gin.Context) {
	club, ok := cc.requireClub(c)
	if !ok {
		return
	}

	members, err := cc.repo.ListAllMembers(club.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve members: "+err.Error())
		return
	}
	identities, err := cc.identitiesFor(members)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve member identities: "+err.Error())
		return
	}

	detail := ClubDetail{
		Club:    *club,
		Players: []user.Identity{},
		Coaches: []user.Identity{},
		Scouts:  []user.Identity{},
	}
	for _, m := range members {
		identity, found := identities[m.UserID]
		if !found {
			continue
		}
		switch m.Role {
		case user.RolePlayer:
			detail.Players = append(detail.Players, identity)
		case user.RoleCoach:
			detail.Coaches = append(detail.Coaches, identity)
		case user.RoleScout:
			detail.Scouts = append(detail.Scouts, identity)
		}
	}

	responses.SendSuccess(c, http.StatusOK, "Club retrieved successfully", detail)
}

// UpdateClub godoc
// @Summary Update a club profile
// @Description Updates the club's own profile. Only the club account may update it.
// @Tags Clubs
// @Accept json
// @Produce json
// @Param club_id path uint true "Club ID"
// @Param club body UpdateClubRequest true "Club Update Data"
// @Success 200 {object} responses.SuccessResponse{data=Club} "Club updated"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 404 {object} responses.ErrorResponse "Club not found"
// @Security ApiKeyAuth
// @Router /clubs/{club_id} [put]
func (cc *ClubController) UpdateClub(c *gin.Context) {
	club, ok := cc.requireOwnedClub(c)
	if !ok {
		return
	}

	var req UpdateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if req.Name != nil {
		club.Name = *req.Name
	}
	if req.Location != nil {
		club.Location = *req.Location
	}
	if req.FoundedYear != nil {
		club.FoundedYear = *req.FoundedYear
	}
	if req.Description != nil {
		club.Description = *req.Description
	}
	if req.Tier != nil {
		club.Tier = *req.Tier
	}
	if req.League != nil {
		club.League = *req.League
	}
	if req.Website != nil {
		club.Website = *req.Website
	}
	if req.Facilities != nil {
		club.Facilities = models.StringSlice(*req.Facilities)
	}

	if err := cc.repo.UpdateClub(club); err != nil {
		responses.InternalServerError(c, "Failed to update club: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Club updated successfully", club)
}

// DeleteClub godoc
// @Summary Delete a club
// @Description Deletes the club account. Every member is released first: player statuses reset to Free Agent, membership rows, join requests, events and achievements removed, then the club profile and its user account.
// @Tags Clubs
// @Produce json
// @Param club_id path uint true "Club ID"
// @Success 200 {object} responses.SuccessResponse "Club deleted"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 404 {object} responses.ErrorResponse "Club not found"
// @Security ApiKeyAuth
// @Router /clubs/{club_id} [delete]
func (cc *ClubController) DeleteClub(c *gin.Context) {
	club, ok := cc.requireOwnedClub(c)
	if !ok {
		return
	}

	if err := cc.repo.DeleteClubCascade(club); err != nil {
		responses.InternalServerError(c, "Failed to delete club: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Club deleted successfully", nil)
}

// --- Member Handlers ---

// GetClubMembers godoc
// @Summary List club members
// @Description Retrieves member identities for a club, optionally filtered by role. Defaults to all roles.
// @Tags Club Members
// @Produce json
// @Param club_id path uint true "Club ID"
// @Param role query string false "Filter by member role (player, coach, scout)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]MemberEntry} "List of members"
// @Failure 404 {object} responses.ErrorResponse "Club not found"
// @Router /clubs/{club_id}/members [get]
func (cc *ClubController) GetClubMembers(c *gin.Context) {
	club, ok := cc.requireClub(c)
	if !ok {
		return
	}

	role := c.Query("role")
	if role != "" && !user.MemberRole(role) {
		responses.BadRequest(c, "Invalid role filter. Must be player, coach or scout.")
		return
	}

	page, limit := pageParams(c)
	members, total, err := cc.repo.ListMembers(club.ID, role, page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve members: "+err.Error())
		return
	}
	identities, err := cc.identitiesFor(members)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve member identities: "+err.Error())
		return
	}

	entries := make([]MemberEntry, 0, len(members))
	for _, m := range members {
		identity, found := identities[m.UserID]
		if !found {
			continue
		}
		entries = append(entries, MemberEntry{
			Identity:   identity,
			MemberRole: m.Role,
			JoinedAt:   m.JoinedAt,
		})
	}
	responses.SendPaginated(c, http.StatusOK, "Members retrieved successfully", entries, total, page, limit)
}

// RemoveMember godoc
// @Summary Remove a club member
// @Description Removes a member from the club and releases them. Players are reset to Free Agent. Only the club account may remove members.
// @Tags Club Members
// @Produce json
// @Param club_id path uint true "Club ID"
// @Param user_id path uint true "User ID of the member to remove"
// @Success 200 {object} responses.SuccessResponse "Member removed"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 404 {object} responses.ErrorResponse "Club or member not found"
// @Security ApiKeyAuth
// @Router /clubs/{club_id}/members/{user_id} [delete]
func (cc *ClubController) RemoveMember(c *gin.Context) {
	club, ok := cc.requireOwnedClub(c)
	if !ok {
		return
	}
	memberUserID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	member, err := cc.repo.GetClubMember(club.ID, memberUserID)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up member: "+err.Error())
		return
	}
	if member == nil {
		responses.NotFound(c, "Member")
		return
	}

	err = cc.repo.WithTransaction(func(repo ClubRepository) error {
		if err := repo.DeleteMember(club.ID, memberUserID); err != nil {
			return err
		}
		if member.Role == user.RolePlayer {
			return repo.SetPlayerStatus(memberUserID, user.PlayerStatusFreeAgent)
		}
		return nil
	})
	if err != nil {
		responses.InternalServerError(c, "Failed to remove member: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Member removed successfully", nil)
}

// --- Join Request Handlers ---

// RequestToJoin godoc
// @Summary Request to join a club
// @Description Creates a pending join request. The club resolves it explicitly; there is no auto-approval.
// @Tags Join Requests
// @Accept json
// @Produce json
// @Param club_id path uint true "Club ID"
// @Param join_request body CreateJoinRequestInput true "Join Request Details"
// @Success 201 {object} responses.SuccessResponse{data=JoinRequest} "Join request created"
// @Failure 400 {object} responses.ErrorResponse "Already a member, duplicate request, or club account"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 404 {object} responses.ErrorResponse "Club not found"
// @Security ApiKeyAuth
// @Router /clubs/{club_id}/join-requests [post]
func (cc *ClubController) RequestToJoin(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}
	club, ok := cc.requireClub(c)
	if !ok {
		return
	}

	var req CreateJoinRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	caller, err := cc.repo.GetUserByID(userID)
	if err != nil || caller == nil {
		responses.InternalServerError(c, "Failed to look up caller")
		return
	}
	if !user.MemberRole(caller.Role) {
		responses.BadRequest(c, "Only players, coaches and scouts can join a club")
		return
	}

	// Single-club rule: a rostered user must leave their club first.
	existing, err := cc.repo.GetMembershipByUserID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check membership: "+err.Error())
		return
	}
	if existing != nil {
		responses.BadRequest(c, "You already belong to a club")
		return
	}

	pending, err := cc.repo.GetPendingJoinRequest(club.ID, userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check join requests: "+err.Error())
		return
	}
	if pending != nil {
		responses.BadRequest(c, "You already have a pending join request for this club")
		return
	}

	joinRequest := JoinRequest{
		ClubID:  club.ID,
		UserID:  userID,
		Message: req.Message,
		Status:  RequestPending,
	}
	if err := cc.repo.CreateJoinRequest(&joinRequest); err != nil {
		responses.InternalServerError(c, "Failed to create join request: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Join request sent successfully", joinRequest)
}

// GetJoinRequests godoc
// @Summary List join requests for a club
// @Description Retrieves join requests, most recent first, projected with requester identity. Only the club account may view them.
// @Tags Join Requests
// @Produce json
// @Param club_id path uint true "Club ID"
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]JoinRequestView} "List of join requests"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 404 {object} responses.ErrorResponse "Club not found"
// @Security ApiKeyAuth
// @Router /clubs/{club_id}/join-requests [get]
func (cc *ClubController) GetJoinRequests(c *gin.Context) {
	club, ok := cc.requireOwnedClub(c)
	if !ok {
		return
	}

	status := c.Query("status")
	if status != "" && status != RequestPending && status != RequestApproved && status != RequestRejected {
		responses.BadRequest(c, "Invalid status filter")
		return
	}

	page, limit := pageParams(c)
	requests, total, err := cc.repo.GetJoinRequestsByClubID(club.ID, status, page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve join requests: "+err.Error())
		return
	}

	ids := make([]uint, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.UserID)
	}
	users, err := cc.repo.GetUsersByIDs(ids)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve requesters: "+err.Error())
		return
	}
	identities := make(map[uint]user.Identity, len(users))
	for i := range users {
		identities[users[i].ID] = users[i].Identity()
	}

	views := make([]JoinRequestView, 0, len(requests))
	for _, r := range requests {
		views = append(views, JoinRequestView{
			ID:          r.ID,
			Requester:   identities[r.UserID],
			Message:     r.Message,
			Status:      r.Status,
			RequestDate: r.CreatedAt,
		})
	}
	responses.SendPaginated(c, http.StatusOK, "Join requests retrieved successfully", views, total, page, limit)
}

// RespondToJoinRequest godoc
// @Summary Approve or reject a join request
// @Description Transitions a pending request exactly once. Approval rosters the requester under their account role and signs players; rejection touches only the request. Re-processing a resolved request fails with no side effects.
// @Tags Join Requests
// @Accept json
// @Produce json
// @Param club_id path uint true "Club ID"
// @Param request_id path uint true "Join Request ID"
// @Param decision body RespondJoinRequestInput true "Decision"
// @Success 200 {object} responses.SuccessResponse{data=JoinRequest} "Join request processed"
// @Failure 400 {object} responses.ErrorResponse "Invalid decision or request already processed"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 404 {object} responses.ErrorResponse "Club or request not found"
// @Security ApiKeyAuth
// @Router /clubs/{club_id}/join-requests/{request_id} [patch]
func (cc *ClubController) RespondToJoinRequest(c *gin.Context) {
	club, ok := cc.requireOwnedClub(c)
	if !ok {
		return
	}
	requestID, ok := parseIDParam(c, "request_id")
	if !ok {
		return
	}

	var req RespondJoinRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	joinRequest, err := cc.repo.GetJoinRequestByID(requestID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve join request: "+err.Error())
		return
	}
	if joinRequest == nil || joinRequest.ClubID != club.ID {
		responses.NotFound(c, "Join request")
		return
	}
	if joinRequest.Status != RequestPending {
		responses.BadRequest(c, "Join request has already been processed")
		return
	}

	now := time.Now()
	joinRequest.Status = req.Status
	joinRequest.ProcessedAt = &now
	joinRequest.ProcessedBy = &club.UserID

	if req.Status == RequestRejected {
		if err := cc.repo.UpdateJoinRequest(joinRequest); err != nil {
			responses.InternalServerError(c, "Failed to reject join request: "+err.Error())
			return
		}
		responses.SendSuccess(c, http.StatusOK, "Join request rejected", joinRequest)
		return
	}

	requester, err := cc.repo.GetUserByID(joinRequest.UserID)
	if err != nil || requester == nil {
		responses.NotFound(c, "Requesting user")
		return
	}

	// The requester may have joined another club since filing the request.
	existing, err := cc.repo.GetMembershipByUserID(joinRequest.UserID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check membership: "+err.Error())
		return
	}
	if existing != nil {
		responses.BadRequest(c, "User already belongs to a club")
		return
	}

	txErr := cc.repo.WithTransaction(func(repo ClubRepository) error {
		if err := repo.UpdateJoinRequest(joinRequest); err != nil {
			return err
		}
		member := Member{
			ClubID:   club.ID,
			UserID:   joinRequest.UserID,
			Role:     requester.Role,
			JoinedAt: now,
		}
		if err := repo.AddMember(&member); err != nil {
			return err
		}
		if requester.Role == user.RolePlayer {
			return repo.SetPlayerStatus(joinRequest.UserID, user.PlayerStatusSigned)
		}
		return nil
	})
	if txErr != nil {
		responses.InternalServerError(c, "Failed to approve join request: "+txErr.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Join request approved and member added", joinRequest)
}

// --- Event Handlers ---

// CreateEvent godoc
// @Summary Create a club event
// @Tags Club Events
// @Accept json
// @Produce json
// @Param club_id path uint true "Club ID"
// @Param event body CreateEventRequest true "Event Data"
// @Success 201 {object} responses.SuccessResponse{data=Event} "Event created"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 404 {object} responses.ErrorResponse "Club not found"
// @Security ApiKeyAuth
// @Router /clubs/{club_id}/events [post]
func (cc *ClubController) CreateEvent(c *gin.Context) {
	club, ok := cc.requireOwnedClub(c)
	if !ok {
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	if req.Status == "" {
		req.Status = EventScheduled
	}

	event := Event{
		ClubID:       club.ID,
		Title:        req.Title,
		Date:         req.Date,
		Type:         req.Type,
		Description:  req.Description,
		Location:     req.Location,
		Participants: models.UintSlice(req.Participants),
		Status:       req.Status,
		CreatedByID:  club.UserID,
	}
	if err := cc.repo.CreateEvent(&event); err != nil {
		responses.InternalServerError(c, "Failed to create event: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Event created successfully", event)
}

// GetEvents godoc
// @Summary List club events
// @Tags Club Events
// @Produce json
// @Param club_id path uint true "Club ID"
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by event type"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]Event} "List of events"
// @Failure 404 {object} responses.ErrorResponse "Club not found"
// @Router /clubs/{club_id}/events [get]
func (cc *ClubController) GetEvents(c *gin.Context) {
	club, ok := cc.requireClub(c)
	if !ok {
		return
	}

	page, limit := pageParams(c)
	events, total, err := cc.repo.GetEventsByClubID(club.ID, c.Query("status"), c.Query("type"), page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve events: "+err.Error())
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Events retrieved successfully", events, total, page, limit)
}

// GetEventByID godoc
// @Summary Get a club event
// @Tags Club Events
// @Produce json
// @Param club_id path uint true "Club ID"
// @Param event_id path uint true "Event ID"
// @Success 200 {object} responses.SuccessResponse{data=Event} "Event details"
// @Failure 404 {object} responses.ErrorResponse "Club or event not found"
// @Router /clubs/{club_id}/events/{event_id} [get]
func (cc *ClubController) GetEventByID(c *gin.Context) {
	club, ok := cc.requireClub(c)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "event_id")
	if !ok {
		return
	}

	event, err := cc.repo.GetEventByID(eventID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve event: "+err.Error())
		return
	}
	if event == nil || event.ClubID != club.ID {
		responses.NotFound(c, "Event")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Event retrieved successfully", event)
}

// UpdateEvent godoc
// @Summary Update a club event
// @Description Applies a partial update. Any body field outside {title, date, type, description, location, participants, status} fails the whole update with "invalid updates".
// @Tags Club Events
// @Accept json
// @Produce json
// @Param club_id path uint true "Club ID"
// @Param event_id path uint true "Event ID"
// @Param event body UpdateEventRequest true "Event Update Data"
// @Success 200 {object} responses.SuccessResponse{data=Event} "Event updated"
// @Failure 400 {object} responses.ErrorResponse "Invalid updates"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 404 {object} responses.ErrorResponse "Club or event not found"
// @Security ApiKeyAuth
// @Router /clubs/{club_id}/events/{event_id} [patch]
func (cc *ClubController) UpdateEvent(c *gin.Context) {
	club, ok := cc.requireOwnedClub(c)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "event_id")
	if !ok {
		return
	}

	event, err := cc.repo.GetEventByID(eventID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve event: "+err.Error())
		return
	}
	if event == nil || event.ClubID != club.ID {
		responses.NotFound(c, "Event")
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		responses.BadRequest(c, "Failed to read request body")
		return
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	for key := range fields {
		if !eventUpdateFields[key] {
			responses.BadRequest(c, "invalid updates")
			return
		}
	}

	var req UpdateEventRequest
	if err := json.Unmarshal(body, &req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	if req.Type != nil && !ValidEventType(*req.Type) {
		responses.BadRequest(c, "Invalid event type")
		return
	}
	if req.Status != nil && !ValidEventStatus(*req.Status) {
		responses.BadRequest(c, "Invalid event status")
		return
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.Type != nil {
		event.Type = *req.Type
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Participants != nil {
		event.Participants = models.UintSlice(*req.Participants)
	}
	if req.Status != nil {
		event.Status = *req.Status
	}

	if err := cc.repo.UpdateEvent(event); err != nil {
		responses.InternalServerError(c, "Failed to update event: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Event updated successfully", event)
}

// DeleteEvent godoc
// @Summary Delete a club event
// @Tags Club Events
// @Produce json
// @Param club_id path uint true "Club ID"
// @Param event_id path uint true "Event ID"
// @Success 200 {object} responses.SuccessResponse "Event deleted"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 404 {object} responses.ErrorResponse "Club or event not found"
// @Security ApiKeyAuth
// @Router /clubs/{club_id}/events/{event_id} [delete]
func (cc *ClubController) DeleteEvent(c *gin.Context) {
	club, ok := cc.requireOwnedClub(c)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "event_id")
	if !ok {
		return
	}

	event, err := cc.repo.GetEventByID(eventID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve event: "+err.Error())
		return
	}
	if event == nil || event.ClubID != club.ID {
		responses.NotFound(c, "Event")
		return
	}

	if err := cc.repo.DeleteEvent(eventID); err != nil {
		responses.InternalServerError(c, "Failed to delete event: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Event deleted successfully", nil)
}

// --- Achievement Handlers ---

// CreateAchievement godoc
// @Summary Add a club achievement
// @Tags Club Achievements
// @Accept json
// @Produce json
// @Param club_id path uint true "Club ID"
// @Param achievement body CreateAchievementRequest true "Achievement Data"
// @Success 201 {object} responses.SuccessResponse{data=Achievement} "Achievement added"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 404 {object} responses.ErrorResponse "Club not found"
// @Security ApiKeyAuth
// @Router /clubs/{club_id}/achievements [post]
func (cc *ClubController) CreateAchievement(c *gin.Context) {
	club, ok := cc.requireOwnedClub(c)
	if !ok {
		return
	}

	var req CreateAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	achievement := Achievement{
		ClubID:      club.ID,
		Title:       req.Title,
		Year:        req.Year,
		Description: req.Description,
		Level:       req.Level,
	}
	if err := cc.repo.CreateAchievement(&achievement); err != nil {
		responses.InternalServerError(c, "Failed to add achievement: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Achievement added successfully", achievement)
}

// GetAchievements godoc
// @Summary List club achievements
// @Tags Club Achievements
// @Produce json
// @Param club_id path uint true "Club ID"
// @Success 200 {object} responses.SuccessResponse{data=[]Achievement} "List of achievements"
// @Failure 404 {object} responses.ErrorResponse "Club not found"
// @Router /clubs/{club_id}/achievements [get]
func (cc *ClubController) GetAchievements(c *gin.Context) {
	club, ok := cc.requireClub(c)
	if !ok {
		return
	}

	achievements, err := cc.repo.GetAchievementsByClubID(club.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve achievements: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Achievements retrieved successfully", achievements)
}

// DeleteAchievement godoc
// @Summary Delete a club achievement
// @Tags Club Achievements
// @Produce json
// @Param club_id path uint true "Club ID"
// @Param achievement_id path uint true "Achievement ID"
// @Success 200 {object} responses.SuccessResponse "Achievement deleted"
// @Failure 403 {object} responses.ErrorResponse "Forbidden"
// @Failure 404 {object} responses.ErrorResponse "Club or achievement not found"
// @Security ApiKeyAuth
// @Router /clubs/{club_id}/achievements/{achievement_id} [delete]
func (cc *ClubController) DeleteAchievement(c *gin.Context) {
	club, ok := cc.requireOwnedClub(c)
	if !ok {
		return
	}
	achievementID, ok := parseIDParam(c, "achievement_id")
	if !ok {
		return
	}

	achievement, err := cc.repo.GetAchievementByID(achievementID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve achievement: "+err.Error())
		return
	}
	if achievement == nil || achievement.ClubID != club.ID {
		responses.NotFound(c, "Achievement")
		return
	}

	if err := cc.repo.DeleteAchievement(achievementID); err != nil {
		responses.InternalServerError(c, "Failed to delete achievement: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Achievement deleted successfully", nil)
}

// --- Stats Handler ---

// GetStats godoc
// @Summary Get club stats
// @Description Computes derived counts on demand: member totals by role, upcoming events, completed matches, trophies and pending join requests.
// @Tags Clubs
// @Produce json
// @Param club_id path uint true "Club ID"
// @Success 200 {object} responses.SuccessResponse{data=Stats} "Club stats"
// @Failure 404 {object} responses.ErrorResponse "Club not found"
// @Router /clubs/{club_id}/stats [get]
func (cc *ClubController) GetStats(c *gin.Context) {
	club, ok := cc.requireClub(c)
	if !ok {
		return
	}

	stats, err := cc.repo.GetStats(club.ID, time.Now())
	if err != nil {
		responses.InternalServerError(c, "Failed to compute stats: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Stats retrieved successfully", stats)
}
