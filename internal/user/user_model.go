package user

import "gorm.io/gorm"

// Account roles. Exactly one role profile exists per user, matching Role:
// players/coaches/scouts get their profile row here, club accounts own a
// club.Club row instead.
const (
	RolePlayer = "player"
	RoleScout  = "scout"
	RoleCoach  = "coach"
	RoleClub   = "club"
)

// Player contract status values.
const (
	PlayerStatusSigned    = "Signed"
	PlayerStatusFreeAgent = "Free Agent"
)

type User struct {
	gorm.Model
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"unique;not null" json:"email"`
	Password     string `json:"-"`
	Role         string `gorm:"not null;index" json:"role"`
	ProfileImage string `json:"profile_image"`
	Verified     bool   `gorm:"default:false" json:"verified"`
}

// PlayerProfile is the role payload for player accounts.
type PlayerProfile struct {
	gorm.Model
	UserID        uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	Position      string `json:"position"`
	PreferredFoot string `json:"preferred_foot"`
	BirthYear     int    `json:"birth_year"`
	// Status mirrors club membership: "Signed" while a membership row exists,
	// "Free Agent" otherwise. Mutated only inside membership transactions.
	Status string `gorm:"default:'Free Agent'" json:"status"`
}

// CoachProfile is the role payload for coach accounts.
type CoachProfile struct {
	gorm.Model
	UserID          uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	Specialization  string `json:"specialization"`
	ExperienceYears int    `json:"experience_years"`
	Licence         string `json:"licence"`
}

// ScoutProfile is the role payload for scout accounts.
type ScoutProfile struct {
	gorm.Model
	UserID       uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	Organization string `json:"organization"`
	Region       string `json:"region"`
}

// CoachAchievement is an owned entry on a coach's record.
type CoachAchievement struct {
	gorm.Model
	CoachProfileID uint   `gorm:"index;not null" json:"coach_profile_id"`
	Title          string `gorm:"not null" json:"title"`
	Year           int    `json:"year"`
	Description    string `json:"description"`
}

// Identity is the compact read model embedded in member lists, join-request
// projections and conversation summaries.
type Identity struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	ProfileImage string `json:"profile_image"`
}

func (u *User) Identity() Identity {
	return Identity{
		ID:           u.ID,
		Name:         u.Name,
		Role:         u.Role,
		ProfileImage: u.ProfileImage,
	}
}

// MemberRole reports whether role is one of the three rosterable roles.
func MemberRole(role string) bool {
	return role == RolePlayer || role == RoleCoach || role == RoleScout
}
