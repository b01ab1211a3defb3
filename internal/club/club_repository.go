package club

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sportlink/sportlink/internal/user"
)

// ClubRepository defines the interface for club data operations
type ClubRepository interface {
	// Club operations
	CreateClub(club *Club) error
	GetClubByID(id uint) (*Club, error)
	GetClubByUserID(userID uint) (*Club, error)
	GetAllClubs(page, limit int, filters map[string]interface{}) ([]Club, int64, error)
	UpdateClub(club *Club) error
	DeleteClubCascade(club *Club) error

	// Membership operations
	AddMember(member *Member) error
	GetMembershipByUserID(userID uint) (*Member, error)
	GetClubMember(clubID, userID uint) (*Member, error)
	ListMembers(clubID uint, role string, page, limit int) ([]Member, int64, error)
	ListAllMembers(clubID uint) ([]Member, error)
	DeleteMember(clubID, userID uint) error
	CountMembers(clubID uint, role string) (int64, error)

	// Users (identity lookups for read models and membership checks)
	GetUserByID(id uint) (*user.User, error)
	GetUsersByIDs(ids []uint) ([]user.User, error)
	SetPlayerStatus(userID uint, status string) error

	// JoinRequest operations
	CreateJoinRequest(request *JoinRequest) error
	GetJoinRequestByID(id uint) (*JoinRequest, error)
	GetPendingJoinRequest(clubID, userID uint) (*JoinRequest, error)
	GetJoinRequestsByClubID(clubID uint, status string, page, limit int) ([]JoinRequest, int64, error)
	UpdateJoinRequest(request *JoinRequest) error

	// Event operations
	CreateEvent(event *Event) error
	GetEventByID(id uint) (*Event, error)
	GetEventsByClubID(clubID uint, status, eventType string, page, limit int) ([]Event, int64, error)
	UpdateEvent(event *Event) error
	DeleteEvent(id uint) error

	// Achievement operations
	CreateAchievement(achievement *Achievement) error
	GetAchievementByID(id uint) (*Achievement, error)
	GetAchievementsByClubID(clubID uint) ([]Achievement, error)
	DeleteAchievement(id uint) error

	// Stats
	GetStats(clubID uint, now time.Time) (*Stats, error)

	WithTransaction(txFunc func(ClubRepository) error) error
}

type clubRepository struct {
	db *gorm.DB
}

// NewClubRepository creates a new instance of ClubRepository
func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

// --- Club Operations ---

func (r *clubRepository) CreateClub(club *Club) error {
	return r.db.Create(club).Error
}

func (r *clubRepository) GetClubByID(id uint) (*Club, error) {
	var club Club
	if err := r.db.First(&club, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &club, nil
}

func (r *clubRepository) GetClubByUserID(userID uint) (*Club, error) {
	var club Club
	if err := r.db.Where("user_id = ?", userID).First(&club).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &club, nil
}

func (r *clubRepository) GetAllClubs(page, limit int, filters map[string]interface{}) ([]Club, int64, error) {
	var clubs []Club
	var total int64

	query := r.db.Model(&Club{})

	if verified, ok := filters["verified"]; ok {
		query = query.Where("verified = ?", verified)
	}
	if location, ok := filters["location"]; ok {
		query = query.Where("location ILIKE ?", "%"+location.(string)+"%")
	}
	if tier, ok := filters["tier"]; ok {
		query = query.Where("tier = ?", tier)
	}

	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("verified desc, created_at desc").Find(&clubs).Error; err != nil {
		return nil, 0, err
	}
	return clubs, total, nil
}

func (r *clubRepository) UpdateClub(club *Club) error {
	return r.db.Save(club).Error
}

// DeleteClubCascade removes a club, its owned sub-resources, its membership
// rows and the owning user account in one transaction, resetting every player
// member back to free agency first.
func (r *clubRepository) DeleteClubCascade(club *Club) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var playerIDs []uint
		if err := tx.Model(&Member{}).
			Where("club_id = ? AND role = ?", club.ID, user.RolePlayer).
			Pluck("user_id", &playerIDs).Error; err != nil {
			return err
		}
		if len(playerIDs) > 0 {
			if err := tx.Model(&user.PlayerProfile{}).
				Where("user_id IN ?", playerIDs).
				Update("status", user.PlayerStatusFreeAgent).Error; err != nil {
				return err
			}
		}

		for _, model := range []interface{}{&Member{}, &JoinRequest{}, &Event{}, &Achievement{}} {
			if err := tx.Where("club_id = ?", club.ID).Delete(model).Error; err != nil {
				return err
			}
		}

		if err := tx.Delete(&Club{}, club.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&user.User{}, club.UserID).Error
	})
}

// --- Membership Operations ---

func (r *clubRepository) AddMember(member *Member) error {
	return r.db.Create(member).Error
}

func (r *clubRepository) GetMembershipByUserID(userID uint) (*Member, error) {
	var member Member
	if err := r.db.Where("user_id = ?", userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *clubRepository) GetClubMember(clubID, userID uint) (*Member, error) {
	var member Member
	if err := r.db.Where("club_id = ? AND user_id = ?", clubID, userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *clubRepository) ListMembers(clubID uint, role string, page, limit int) ([]Member, int64, error) {
	var members []Member
	var total int64

	query := r.db.Model(&Member{}).Where("club_id = ?", clubID)
	if role != "" {
		query = query.Where("role = ?", role)
	}
	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("joined_at asc").Find(&members).Error; err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

func (r *clubRepository) ListAllMembers(clubID uint) ([]Member, error) {
	var members []Member
	if err := r.db.Where("club_id = ?", clubID).Order("joined_at asc").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *clubRepository) DeleteMember(clubID, userID uint) error {
	return r.db.Where("club_id = ? AND user_id = ?", clubID, userID).Delete(&Member{}).Error
}

func (r *clubRepository) CountMembers(clubID uint, role string) (int64, error) {
	var count int64
	query := r.db.Model(&Member{}).Where("club_id = ?", clubID)
	if role != "" {
		query = query.Where("role = ?", role)
	}
	err := query.Count(&count).Error
	return count, err
}

// --- User lookups ---

func (r *clubRepository) GetUserByID(id uint) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *clubRepository) GetUsersByIDs(ids []uint) ([]user.User, error) {
	var users []user.User
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *clubRepository) SetPlayerStatus(userID uint, status string) error {
	return r.db.Model(&user.PlayerProfile{}).
		Where("user_id = ?", userID).
		Update("status", status).Error
}

// --- JoinRequest Operations ---

func (r *clubRepository) CreateJoinRequest(request *JoinRequest) error {
	return r.db.Create(request).Error
}

func (r *clubRepository) GetJoinRequestByID(id uint) (*JoinRequest, error) {
	var request JoinRequest
	if err := r.db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *clubRepository) GetPendingJoinRequest(clubID, userID uint) (*JoinRequest, error) {
	var request JoinRequest
	err := r.db.Where("club_id = ? AND user_id = ? AND status = 'pending'", clubID, userID).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *clubRepository) GetJoinRequestsByClubID(clubID uint, status string, page, limit int) ([]JoinRequest, int64, error) {
	var requests []JoinRequest
	var total int64

	query := r.db.Model(&JoinRequest{}).Where("club_id = ?", clubID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (r *clubRepository) UpdateJoinRequest(request *JoinRequest) error {
	return r.db.Save(request).Error
}

// --- Event Operations ---

func (r *clubRepository) CreateEvent(event *Event) error {
	return r.db.Create(event).Error
}

func (r *clubRepository) GetEventByID(id uint) (*Event, error) {
	var event Event
	if err := r.db.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (r *clubRepository) GetEventsByClubID(clubID uint, status, eventType string, page, limit int) ([]Event, int64, error) {
	var events []Event
	var total int64

	query := r.db.Model(&Event{}).Where("club_id = ?", clubID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if eventType != "" {
		query = query.Where("type = ?", eventType)
	}
	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("date asc").Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *clubRepository) UpdateEvent(event *Event) error {
	return r.db.Save(event).Error
}

func (r *clubRepository) DeleteEvent(id uint) error {
	return r.db.Delete(&Event{}, id).Error
}

// --- Achievement Operations ---

func (r *clubRepository) CreateAchievement(achievement *Achievement) error {
	return r.db.Create(achievement).Error
}

func (r *clubRepository) GetAchievementByID(id uint) (*Achievement, error) {
	var achievement Achievement
	if err := r.db.First(&achievement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &achievement, nil
}

func (r *clubRepository) GetAchievementsByClubID(clubID uint) ([]Achievement, error) {
	var achievements []Achievement
	if err := r.db.Where("club_id = ?", clubID).Order("year desc, created_at desc").Find(&achievements).Error; err != nil {
		return nil, err
	}
	return achievements, nil
}

func (r *clubRepository) DeleteAchievement(id uint) error {
	return r.db.Delete(&Achievement{}, id).Error
}

// --- Stats ---

// GetStats issues the five derived-count queries synchronously, no caching.
func (r *clubRepository) GetStats(clubID uint, now time.Time) (*Stats, error) {
	stats := &Stats{}

	roleCounts := []struct {
		role string
		dst  *int64
	}{
		{user.RolePlayer, &stats.TotalPlayers},
		{user.RoleCoach, &stats.TotalCoaches},
		{user.RoleScout, &stats.TotalScouts},
	}
	for _, rc := range roleCounts {
		count, err := r.CountMembers(clubID, rc.role)
		if err != nil {
			return nil, err
		}
		*rc.dst = count
	}
	stats.TotalMembers = stats.TotalPlayers + stats.TotalCoaches + stats.TotalScouts

	if err := r.db.Model(&Event{}).
		Where("club_id = ? AND date >= ? AND status = ?", clubID, now, EventScheduled).
		Count(&stats.UpcomingEvents).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&Event{}).
		Where("club_id = ? AND type = ? AND status = ?", clubID, EventMatch, EventCompleted).
		Count(&stats.MatchesPlayed).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&Achievement{}).
		Where("club_id = ?", clubID).
		Count(&stats.TrophiesWon).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&JoinRequest{}).
		Where("club_id = ? AND status = ?", clubID, RequestPending).
		Count(&stats.MembershipRequests).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *clubRepository) WithTransaction(txFunc func(ClubRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepo := &clubRepository{db: tx}
		return txFunc(txRepo)
	})
}
