package auth

import (
	"time"

	"gorm.io/gorm"
)

// RefreshToken is an opaque, server-side token exchanged for new access tokens.
type RefreshToken struct {
	gorm.Model
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Token     string    `gorm:"not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Revoked   bool      `gorm:"default:false" json:"-"`
}

// EmailVerification holds a one-shot token mailed to new accounts.
type EmailVerification struct {
	gorm.Model
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Token     string    `gorm:"not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Used      bool      `gorm:"default:false" json:"-"`
}

// PlayerPayload carries the player-specific registration fields.
type PlayerPayload struct {
	Position      string `json:"position" binding:"required" example:"Striker"`
	PreferredFoot string `json:"preferred_foot" binding:"omitempty,oneof=left right both" example:"right"`
	BirthYear     int    `json:"birth_year" binding:"required,gte=1900" example:"2001"`
}

// CoachPayload carries the coach-specific registration fields.
type CoachPayload struct {
	Specialization  string `json:"specialization" binding:"required" example:"Goalkeeping"`
	ExperienceYears int    `json:"experience_years" binding:"gte=0" example:"8"`
	Licence         string `json:"licence" example:"UEFA B"`
}

// ScoutPayload carries the scout-specific registration fields.
type ScoutPayload struct {
	Organization string `json:"organization" binding:"required" example:"North Talent Agency"`
	Region       string `json:"region" example:"Northwest"`
}

// ClubPayload carries the club-specific registration fields.
type ClubPayload struct {
	Location    string `json:"location" binding:"required" example:"Manchester"`
	FoundedYear int    `json:"founded_year" binding:"omitempty,gte=1800" example:"1987"`
	Description string `json:"description" binding:"max=2000"`
	Tier        string `json:"tier" example:"amateur"`
	League      string `json:"league" example:"Sunday League Division 2"`
	Website     string `json:"website" example:"https://example-fc.test"`
}

// RegisterRequest is a tagged union: exactly the payload matching Role must be
// present, the rest must be absent.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100" example:"John Doe"`
	Email    string `json:"email" binding:"required,email" example:"john@example.com"`
	Password string `json:"password" binding:"required,min=8,max=72" example:"password123"`
	Role     string `json:"role" binding:"required,oneof=player scout coach club" example:"player"`

	Player *PlayerPayload `json:"player,omitempty"`
	Coach  *CoachPayload  `json:"coach,omitempty"`
	Scout  *ScoutPayload  `json:"scout,omitempty"`
	Club   *ClubPayload   `json:"club,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"john@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

type UpdateProfileRequest struct {
	Name         *string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	ProfileImage *string `json:"profile_image,omitempty"`

	Player *PlayerPayload `json:"player,omitempty"`
	Coach  *CoachPayload  `json:"coach,omitempty"`
	Scout  *ScoutPayload  `json:"scout,omitempty"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=NewPassword"`
}

// AuthResponse is the token pair returned by register, login and refresh.
type AuthResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         interface{} `json:"user"`
}
