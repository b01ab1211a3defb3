// club/model.go
package club

import (
	"time"

	"gorm.io/gorm"

	"github.com/sportlink/sportlink/internal/models"
	"github.com/sportlink/sportlink/internal/user"
)

const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"

	EventTraining   = "training"
	EventMatch      = "match"
	EventTournament = "tournament"
	EventMeeting    = "meeting"
	EventTrial      = "trial"

	EventScheduled = "scheduled"
	EventCompleted = "completed"
	EventCancelled = "cancelled"

	LevelClub          = "Club"
	LevelRegional      = "Regional"
	LevelNational      = "National"
	LevelInternational = "International"
)

// Club is the profile row owned by a club account. Route ids address this row;
// the owning account is UserID.
type Club struct {
	gorm.Model
	UserID      uint               `gorm:"uniqueIndex;not null" json:"user_id"`
	Name        string             `gorm:"not null" json:"name"`
	Location    string             `gorm:"index" json:"location"`
	FoundedYear int                `json:"founded_year"`
	Description string             `json:"description"`
	Verified    bool               `gorm:"default:false;index" json:"verified"`
	Tier        string             `gorm:"index" json:"tier"`
	League      string             `json:"league,omitempty"`
	Website     string             `json:"website,omitempty"`
	Facilities  models.StringSlice `gorm:"type:jsonb" json:"facilities"`
}

// Member is the authoritative membership record: one row per (club, user).
// The unique index on UserID keeps a user rostered at a single club
// platform-wide; the club's role lists and a member's current-club pointer are
// both derived from this table.
type Member struct {
	gorm.Model
	ClubID   uint      `gorm:"index;not null" json:"club_id"`
	UserID   uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Role     string    `gorm:"not null" json:"role"` // player | coach | scout
	JoinedAt time.Time `json:"joined_at"`
}

// JoinRequest is the ledger entry for a user's intent to join a club.
// Status transitions once, pending -> approved|rejected, then is immutable.
type JoinRequest struct {
	gorm.Model
	ClubID      uint       `gorm:"index;not null" json:"club_id"`
	UserID      uint       `gorm:"index;not null" json:"user_id"`
	Message     string     `json:"message,omitempty"`
	Status      string     `gorm:"default:'pending';index" json:"status"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	ProcessedBy *uint      `json:"processed_by,omitempty"`
}

// Event is an owned club calendar entry. Participants need not be members.
type Event struct {
	gorm.Model
	ClubID       uint             `gorm:"index;not null" json:"club_id"`
	Title        string           `gorm:"not null" json:"title"`
	Date         time.Time        `gorm:"index" json:"date"`
	Type         string           `gorm:"not null" json:"type"`
	Description  string           `json:"description"`
	Location     string           `json:"location,omitempty"`
	Participants models.UintSlice `gorm:"type:jsonb" json:"participants"`
	Status       string           `gorm:"default:'scheduled';index" json:"status"`
	CreatedByID  uint             `json:"created_by_id"`
}

// Achievement is an owned trophy-cabinet entry.
type Achievement struct {
	gorm.Model
	ClubID      uint   `gorm:"index;not null" json:"club_id"`
	Title       string `gorm:"not null" json:"title"`
	Year        int    `json:"year"`
	Description string `json:"description"`
	Level       string `gorm:"not null" json:"level"`
}

// Stats are derived counts computed on demand, never cached.
type Stats struct {
	TotalMembers       int64 `json:"totalMembers"`
	TotalPlayers       int64 `json:"totalPlayers"`
	TotalCoaches       int64 `json:"totalCoaches"`
	TotalScouts        int64 `json:"totalScouts"`
	UpcomingEvents     int64 `json:"upcomingEvents"`
	MatchesPlayed      int64 `json:"matchesPlayed"`
	TrophiesWon        int64 `json:"trophiesWon"`
	MembershipRequests int64 `json:"membershipRequests"`
}

// MemberEntry is the read model for member listings.
type MemberEntry struct {
	user.Identity
	MemberRole string    `json:"member_role"`
	JoinedAt   time.Time `json:"joined_at"`
}

// JoinRequestView is the projection shown to the club: requester identity and
// message, without ledger-internal fields.
type JoinRequestView struct {
	ID          uint          `json:"id"`
	Requester   user.Identity `json:"requester"`
	Message     string        `json:"message,omitempty"`
	Status      string        `json:"status"`
	RequestDate time.Time     `json:"request_date"`
}

// ClubDetail is the club page read model with member identities grouped by role.
type ClubDetail struct {
	Club
	Players []user.Identity `json:"players"`
	Coaches []user.Identity `json:"coaches"`
	Scouts  []user.Identity `json:"scouts"`
}

// Membership is the derived current-club pointer for a user.
type Membership struct {
	ClubID   uint      `json:"club_id"`
	ClubName string    `json:"club_name"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

func ValidEventType(t string) bool {
	switch t {
	case EventTraining, EventMatch, EventTournament, EventMeeting, EventTrial:
		return true
	}
	return false
}

func ValidEventStatus(s string) bool {
	switch s {
	case EventScheduled, EventCompleted, EventCancelled:
		return true
	}
	return false
}

func ValidAchievementLevel(l string) bool {
	switch l {
	case LevelClub, LevelRegional, LevelNational, LevelInternational:
		return true
	}
	return false
}
