package auth

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sportlink/sportlink/config"
	"github.com/sportlink/sportlink/internal/club"
	"github.com/sportlink/sportlink/internal/middleware"
	"github.com/sportlink/sportlink/internal/user"
	"github.com/sportlink/sportlink/pkg/mailer"
	"github.com/sportlink/sportlink/pkg/responses"
	"github.com/sportlink/sportlink/pkg/token"
	"github.com/sportlink/sportlink/pkg/validator"
	"github.com/sportlink/sportlink/utils"
)

const emailVerificationExpiryHours = 48

type AuthController struct {
	repo   AuthRepository
	config *config.Config
	mailer *mailer.Mailer
}

func NewAuthController(repo AuthRepository, cfg *config.Config, m *mailer.Mailer) *AuthController {
	return &AuthController{
		repo:   repo,
		config: cfg,
		mailer: m,
	}
}

func (ac *AuthController) generateAndSaveTokens(userID uint, role string) (string, string, error) {
	accessToken, err := token.GenerateJWT(userID, role, ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		return "", "", err
	}

	refreshTokenString := uuid.NewString()
	refreshToken := &RefreshToken{
		UserID:    userID,
		Token:     refreshTokenString,
		ExpiresAt: time.Now().AddDate(0, 0, ac.config.JWT.RefreshTokenExpiryDays),
	}
	if err := ac.repo.SaveRefreshToken(refreshToken); err != nil {
		return "", "", err
	}
	return accessToken, refreshTokenString, nil
}

// validateRolePayload enforces the union shape: the payload matching the role
// must be present and the other payloads absent.
func validateRolePayload(req *RegisterRequest) string {
	payloads := map[string]bool{
		user.RolePlayer: req.Player != nil,
		user.RoleCoach:  req.Coach != nil,
		user.RoleScout:  req.Scout != nil,
		user.RoleClub:   req.Club != nil,
	}
	if !payloads[req.Role] {
		return "Missing " + req.Role + " payload"
	}
	for role, present := range payloads {
		if role != req.Role && present {
			return "Unexpected " + role + " payload for role " + req.Role
		}
	}
	return ""
}

// Register godoc
// @Summary Register a new account
// @Description Creates a user with exactly one role-specific payload. Club accounts get a club profile; players, coaches and scouts get their respective profiles.
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration details"
// @Success 201 {object} responses.SuccessResponse{data=AuthResponse} "Account created"
// @Failure 400 {object} responses.ErrorResponse "Validation error"
// @Failure 409 {object} responses.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidation(c, validator.ParseError(err))
		return
	}
	if msg := validateRolePayload(&req); msg != "" {
		responses.BadRequest(c, msg)
		return
	}

	if _, err := ac.repo.GetUserByEmail(req.Email); !errors.Is(err, gorm.ErrRecordNotFound) {
		if err == nil {
			responses.SendError(c, http.StatusConflict, "An account with this email already exists")
		} else {
			responses.InternalServerError(c, "Failed to check email: "+err.Error())
		}
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.InternalServerError(c, "Failed to hash password")
		return
	}

	newUser := user.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Role:     req.Role,
	}

	txErr := ac.repo.WithTransaction(func(repo AuthRepository) error {
		if err := repo.CreateUser(&newUser); err != nil {
			return err
		}
		switch req.Role {
		case user.RolePlayer:
			return repo.SavePlayerProfile(&user.PlayerProfile{
				UserID:        newUser.ID,
				Position:      req.Player.Position,
				PreferredFoot: req.Player.PreferredFoot,
				BirthYear:     req.Player.BirthYear,
				Status:        user.PlayerStatusFreeAgent,
			})
		case user.RoleCoach:
			return repo.SaveCoachProfile(&user.CoachProfile{
				UserID:          newUser.ID,
				Specialization:  req.Coach.Specialization,
				ExperienceYears: req.Coach.ExperienceYears,
				Licence:         req.Coach.Licence,
			})
		case user.RoleScout:
			return repo.SaveScoutProfile(&user.ScoutProfile{
				UserID:       newUser.ID,
				Organization: req.Scout.Organization,
				Region:       req.Scout.Region,
			})
		case user.RoleClub:
			return repo.CreateClub(&club.Club{
				UserID:      newUser.ID,
				Name:        req.Name,
				Location:    req.Club.Location,
				FoundedYear: req.Club.FoundedYear,
				Description: req.Club.Description,
				Tier:        req.Club.Tier,
				League:      req.Club.League,
				Website:     req.Club.Website,
			})
		}
		return nil
	})
	if txErr != nil {
		responses.InternalServerError(c, "Failed to create account: "+txErr.Error())
		return
	}

	verification := EmailVerification{
		UserID:    newUser.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(emailVerificationExpiryHours * time.Hour),
	}
	if err := ac.repo.SaveEmailVerification(&verification); err != nil {
		log.Printf("failed to save email verification for user %d: %v", newUser.ID, err)
	} else if err := ac.mailer.SendVerification(newUser.Email, newUser.Name, ac.config.App.FrontendURL, verification.Token); err != nil {
		log.Printf("failed to send verification email to %s: %v", newUser.Email, err)
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(newUser.ID, newUser.Role)
	if err != nil {
		responses.InternalServerError(c, "Account created but token generation failed: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Account registered successfully", AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         newUser,
	})
}

// Login godoc
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} responses.SuccessResponse{data=AuthResponse} "Logged in"
// @Failure 401 {object} responses.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	u, err := ac.repo.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.Unauthorized(c, "Invalid email or password")
		} else {
			responses.InternalServerError(c, "Login failed: "+err.Error())
		}
		return
	}
	if !utils.CheckPassword(u.Password, req.Password) {
		responses.Unauthorized(c, "Invalid email or password")
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(u.ID, u.Role)
	if err != nil {
		responses.InternalServerError(c, "Token generation failed: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Logged in successfully", AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         u,
	})
}

// RefreshToken godoc
// @Summary Rotate a refresh token
// @Description Exchanges a valid refresh token for a new token pair. The presented token is revoked.
// @Tags Auth
// @Accept json
// @Produce json
// @Param refresh body RefreshTokenRequest true "Refresh token"
// @Success 200 {object} responses.SuccessResponse{data=AuthResponse} "New token pair"
// @Failure 401 {object} responses.ErrorResponse "Invalid or expired refresh token"
// @Router /auth/refresh-token [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	stored, err := ac.repo.GetRefreshToken(req.RefreshToken)
	if err != nil {
		responses.Unauthorized(c, "Invalid or expired refresh token")
		return
	}

	u, err := ac.repo.GetUserByID(stored.UserID)
	if err != nil {
		responses.Unauthorized(c, "Account no longer exists")
		return
	}

	if err := ac.repo.RevokeRefreshToken(req.RefreshToken); err != nil {
		responses.InternalServerError(c, "Failed to rotate refresh token: "+err.Error())
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(u.ID, u.Role)
	if err != nil {
		responses.InternalServerError(c, "Token generation failed: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Token refreshed successfully", AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         u,
	})
}

// Logout godoc
// @Summary Log out
// @Description Revokes all refresh tokens for the authenticated user.
// @Tags Auth
// @Produce json
// @Success 200 {object} responses.SuccessResponse "Logged out"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}
	if err := ac.repo.RevokeAllRefreshTokensForUser(userID); err != nil {
		responses.InternalServerError(c, "Failed to log out: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Logged out successfully", nil)
}

// VerifyEmail godoc
// @Summary Verify an email address
// @Tags Auth
// @Produce json
// @Param token query string true "Verification token"
// @Success 200 {object} responses.SuccessResponse "Email verified"
// @Failure 400 {object} responses.ErrorResponse "Invalid or expired token"
// @Router /auth/verify-email [get]
func (ac *AuthController) VerifyEmail(c *gin.Context) {
	tokenValue := c.Query("token")
	if tokenValue == "" {
		responses.BadRequest(c, "Verification token is required")
		return
	}

	verification, err := ac.repo.GetEmailVerification(tokenValue)
	if err != nil {
		responses.BadRequest(c, "Invalid or expired verification token")
		return
	}

	u, err := ac.repo.GetUserByID(verification.UserID)
	if err != nil {
		responses.BadRequest(c, "Account no longer exists")
		return
	}

	txErr := ac.repo.WithTransaction(func(repo AuthRepository) error {
		verification.Used = true
		if err := repo.UpdateEmailVerification(verification); err != nil {
			return err
		}
		u.Verified = true
		return repo.UpdateUser(u)
	})
	if txErr != nil {
		responses.InternalServerError(c, "Failed to verify email: "+txErr.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Email verified successfully", nil)
}

// rolePayload loads the role-specific profile for a user, nil when absent.
func (ac *AuthController) rolePayload(u *user.User) (interface{}, error) {
	var (
		payload interface{}
		err     error
	)
	switch u.Role {
	case user.RolePlayer:
		payload, err = ac.repo.GetPlayerProfile(u.ID)
	case user.RoleCoach:
		payload, err = ac.repo.GetCoachProfile(u.ID)
	case user.RoleScout:
		payload, err = ac.repo.GetScoutProfile(u.ID)
	case user.RoleClub:
		payload, err = ac.repo.GetClubByUserID(u.ID)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return payload, err
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Description Returns the account, its role-specific profile and, for rostered users, the derived club membership.
// @Tags Auth
// @Produce json
// @Success 200 {object} responses.SuccessResponse "Profile"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /auth/me [get]
func (ac *AuthController) GetProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	u, err := ac.repo.GetUserByID(userID)
	if err != nil {
		responses.NotFound(c, "User")
		return
	}

	payload, err := ac.rolePayload(u)
	if err != nil {
		responses.InternalServerError(c, "Failed to load profile: "+err.Error())
		return
	}

	result := gin.H{
		"user":    u,
		"profile": payload,
	}

	if user.MemberRole(u.Role) {
		membership, err := ac.repo.GetMembership(userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			responses.InternalServerError(c, "Failed to load membership: "+err.Error())
			return
		}
		if membership != nil {
			result["membership"] = membership
		}
	}

	responses.SendSuccess(c, http.StatusOK, "Profile retrieved successfully", result)
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Description Updates base account fields and, when provided, the role-specific payload matching the account's role. Payloads for other roles are rejected.
// @Tags Auth
// @Accept json
// @Produce json
// @Param profile body UpdateProfileRequest true "Profile update"
// @Success 200 {object} responses.SuccessResponse "Profile updated"
// @Failure 400 {object} responses.ErrorResponse "Payload does not match account role"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /auth/me [put]
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	u, err := ac.repo.GetUserByID(userID)
	if err != nil {
		responses.NotFound(c, "User")
		return
	}

	if (req.Player != nil && u.Role != user.RolePlayer) ||
		(req.Coach != nil && u.Role != user.RoleCoach) ||
		(req.Scout != nil && u.Role != user.RoleScout) {
		responses.BadRequest(c, "Profile payload does not match account role")
		return
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.ProfileImage != nil {
		u.ProfileImage = *req.ProfileImage
	}

	txErr := ac.repo.WithTransaction(func(repo AuthRepository) error {
		if err := repo.UpdateUser(u); err != nil {
			return err
		}
		switch {
		case req.Player != nil:
			profile, err := repo.GetPlayerProfile(userID)
			if err != nil {
				return err
			}
			profile.Position = req.Player.Position
			profile.PreferredFoot = req.Player.PreferredFoot
			profile.BirthYear = req.Player.BirthYear
			return repo.SavePlayerProfile(profile)
		case req.Coach != nil:
			profile, err := repo.GetCoachProfile(userID)
			if err != nil {
				return err
			}
			profile.Specialization = req.Coach.Specialization
			profile.ExperienceYears = req.Coach.ExperienceYears
			profile.Licence = req.Coach.Licence
			return repo.SaveCoachProfile(profile)
		case req.Scout != nil:
			profile, err := repo.GetScoutProfile(userID)
			if err != nil {
				return err
			}
			profile.Organization = req.Scout.Organization
			profile.Region = req.Scout.Region
			return repo.SaveScoutProfile(profile)
		}
		return nil
	})
	if txErr != nil {
		responses.InternalServerError(c, "Failed to update profile: "+txErr.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile updated successfully", u)
}

// ChangePassword godoc
// @Summary Change password
// @Description Changes the password and revokes all refresh tokens.
// @Tags Auth
// @Accept json
// @Produce json
// @Param passwords body ChangePasswordRequest true "Password change"
// @Success 200 {object} responses.SuccessResponse "Password changed"
// @Failure 400 {object} responses.ErrorResponse "Wrong old password"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /auth/change-password [post]
func (ac *AuthController) ChangePassword(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidation(c, validator.ParseError(err))
		return
	}

	u, err := ac.repo.GetUserByID(userID)
	if err != nil {
		responses.NotFound(c, "User")
		return
	}
	if !utils.CheckPassword(u.Password, req.OldPassword) {
		responses.BadRequest(c, "Old password is incorrect")
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		responses.InternalServerError(c, "Failed to hash password")
		return
	}
	u.Password = hashed

	txErr := ac.repo.WithTransaction(func(repo AuthRepository) error {
		if err := repo.UpdateUser(u); err != nil {
			return err
		}
		return repo.RevokeAllRefreshTokensForUser(userID)
	})
	if txErr != nil {
		responses.InternalServerError(c, "Failed to change password: "+txErr.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Password changed successfully", nil)
}

// --- Coach Achievements ---

type CoachAchievementRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=200"`
	Year        int    `json:"year" binding:"required,gte=1900"`
	Description string `json:"description" binding:"max=2000"`
}

// requireCoachProfile resolves the caller's coach profile or writes an error.
func (ac *AuthController) requireCoachProfile(c *gin.Context) (*user.CoachProfile, bool) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return nil, false
	}
	profile, err := ac.repo.GetCoachProfile(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.Forbidden(c, "Only coaches can manage coaching achievements")
		} else {
			responses.InternalServerError(c, "Failed to load coach profile: "+err.Error())
		}
		return nil, false
	}
	return profile, true
}

// CreateCoachAchievement godoc
// @Summary Add a coaching achievement
// @Tags Auth
// @Accept json
// @Produce json
// @Param achievement body CoachAchievementRequest true "Achievement"
// @Success 201 {object} responses.SuccessResponse{data=user.CoachAchievement} "Achievement added"
// @Failure 403 {object} responses.ErrorResponse "Not a coach"
// @Security ApiKeyAuth
// @Router /auth/me/achievements [post]
func (ac *AuthController) CreateCoachAchievement(c *gin.Context) {
	profile, ok := ac.requireCoachProfile(c)
	if !ok {
		return
	}

	var req CoachAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	achievement := user.CoachAchievement{
		CoachProfileID: profile.ID,
		Title:          req.Title,
		Year:           req.Year,
		Description:    req.Description,
	}
	if err := ac.repo.CreateCoachAchievement(&achievement); err != nil {
		responses.InternalServerError(c, "Failed to add achievement: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Achievement added successfully", achievement)
}

// GetCoachAchievements godoc
// @Summary List the caller's coaching achievements
// @Tags Auth
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]user.CoachAchievement} "Achievements"
// @Failure 403 {object} responses.ErrorResponse "Not a coach"
// @Security ApiKeyAuth
// @Router /auth/me/achievements [get]
func (ac *AuthController) GetCoachAchievements(c *gin.Context) {
	profile, ok := ac.requireCoachProfile(c)
	if !ok {
		return
	}

	achievements, err := ac.repo.GetCoachAchievements(profile.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve achievements: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Achievements retrieved successfully", achievements)
}

// DeleteCoachAchievement godoc
// @Summary Delete a coaching achievement
// @Tags Auth
// @Produce json
// @Param achievement_id path uint true "Achievement ID"
// @Success 200 {object} responses.SuccessResponse "Achievement deleted"
// @Failure 403 {object} responses.ErrorResponse "Not the owner"
// @Failure 404 {object} responses.ErrorResponse "Achievement not found"
// @Security ApiKeyAuth
// @Router /auth/me/achievements/{achievement_id} [delete]
func (ac *AuthController) DeleteCoachAchievement(c *gin.Context) {
	profile, ok := ac.requireCoachProfile(c)
	if !ok {
		return
	}

	var uri struct {
		AchievementID uint `uri:"achievement_id" binding:"required"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		responses.BadRequest(c, "Invalid achievement_id")
		return
	}

	achievement, err := ac.repo.GetCoachAchievementByID(uri.AchievementID)
	if err != nil || achievement.CoachProfileID != profile.ID {
		responses.NotFound(c, "Achievement")
		return
	}

	if err := ac.repo.DeleteCoachAchievement(achievement.ID); err != nil {
		responses.InternalServerError(c, "Failed to delete achievement: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Achievement deleted successfully", nil)
}
