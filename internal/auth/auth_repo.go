package auth

import (
	"time"

	"gorm.io/gorm"

	"github.com/sportlink/sportlink/internal/club"
	"github.com/sportlink/sportlink/internal/user"
)

type AuthRepository interface {
	CreateUser(u *user.User) error
	GetUserByEmail(email string) (*user.User, error)
	GetUserByID(id uint) (*user.User, error)
	UpdateUser(u *user.User) error

	SavePlayerProfile(p *user.PlayerProfile) error
	SaveCoachProfile(p *user.CoachProfile) error
	SaveScoutProfile(p *user.ScoutProfile) error
	GetPlayerProfile(userID uint) (*user.PlayerProfile, error)
	GetCoachProfile(userID uint) (*user.CoachProfile, error)
	GetScoutProfile(userID uint) (*user.ScoutProfile, error)

	CreateClub(c *club.Club) error
	GetClubByUserID(userID uint) (*club.Club, error)
	GetMembership(userID uint) (*club.Membership, error)

	CreateCoachAchievement(a *user.CoachAchievement) error
	GetCoachAchievements(coachProfileID uint) ([]user.CoachAchievement, error)
	GetCoachAchievementByID(id uint) (*user.CoachAchievement, error)
	DeleteCoachAchievement(id uint) error

	SaveRefreshToken(token *RefreshToken) error
	GetRefreshToken(tokenString string) (*RefreshToken, error)
	RevokeRefreshToken(tokenString string) error
	RevokeAllRefreshTokensForUser(userID uint) error

	SaveEmailVerification(v *EmailVerification) error
	GetEmailVerification(tokenString string) (*EmailVerification, error)
	UpdateEmailVerification(v *EmailVerification) error

	WithTransaction(fn func(repo AuthRepository) error) error
}

type authRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) CreateUser(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *authRepository) GetUserByEmail(email string) (*user.User, error) {
	var u user.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *authRepository) GetUserByID(id uint) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *authRepository) UpdateUser(u *user.User) error {
	return r.db.Save(u).Error
}

func (r *authRepository) SavePlayerProfile(p *user.PlayerProfile) error {
	return r.db.Save(p).Error
}

func (r *authRepository) SaveCoachProfile(p *user.CoachProfile) error {
	return r.db.Save(p).Error
}

func (r *authRepository) SaveScoutProfile(p *user.ScoutProfile) error {
	return r.db.Save(p).Error
}

func (r *authRepository) GetPlayerProfile(userID uint) (*user.PlayerProfile, error) {
	var p user.PlayerProfile
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *authRepository) GetCoachProfile(userID uint) (*user.CoachProfile, error) {
	var p user.CoachProfile
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *authRepository) GetScoutProfile(userID uint) (*user.ScoutProfile, error) {
	var p user.ScoutProfile
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *authRepository) CreateClub(c *club.Club) error {
	return r.db.Create(c).Error
}

func (r *authRepository) GetClubByUserID(userID uint) (*club.Club, error) {
	var c club.Club
	if err := r.db.Where("user_id = ?", userID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *authRepository) GetMembership(userID uint) (*club.Membership, error) {
	var m club.Membership
	err := r.db.Table("members").
		Select("members.club_id, clubs.name as club_name, members.role, members.joined_at").
		Joins("JOIN clubs ON clubs.id = members.club_id AND clubs.deleted_at IS NULL").
		Where("members.user_id = ? AND members.deleted_at IS NULL", userID).
		Scan(&m).Error
	if err != nil {
		return nil, err
	}
	if m.ClubID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

func (r *authRepository) CreateCoachAchievement(a *user.CoachAchievement) error {
	return r.db.Create(a).Error
}

func (r *authRepository) GetCoachAchievements(coachProfileID uint) ([]user.CoachAchievement, error) {
	var achievements []user.CoachAchievement
	err := r.db.Where("coach_profile_id = ?", coachProfileID).
		Order("year desc").Find(&achievements).Error
	return achievements, err
}

func (r *authRepository) GetCoachAchievementByID(id uint) (*user.CoachAchievement, error) {
	var a user.CoachAchievement
	if err := r.db.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *authRepository) DeleteCoachAchievement(id uint) error {
	return r.db.Delete(&user.CoachAchievement{}, id).Error
}

func (r *authRepository) SaveRefreshToken(token *RefreshToken) error {
	return r.db.Create(token).Error
}

func (r *authRepository) GetRefreshToken(tokenString string) (*RefreshToken, error) {
	var rt RefreshToken
	err := r.db.Where("token = ? AND revoked = ? AND expires_at > ?", tokenString, false, time.Now()).
		First(&rt).Error
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *authRepository) RevokeRefreshToken(tokenString string) error {
	return r.db.Model(&RefreshToken{}).
		Where("token = ?", tokenString).
		Update("revoked", true).Error
}

func (r *authRepository) RevokeAllRefreshTokensForUser(userID uint) error {
	return r.db.Model(&RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
}

func (r *authRepository) SaveEmailVerification(v *EmailVerification) error {
	return r.db.Create(v).Error
}

func (r *authRepository) GetEmailVerification(tokenString string) (*EmailVerification, error) {
	var v EmailVerification
	err := r.db.Where("token = ? AND used = ? AND expires_at > ?", tokenString, false, time.Now()).
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *authRepository) UpdateEmailVerification(v *EmailVerification) error {
	return r.db.Save(v).Error
}

func (r *authRepository) WithTransaction(fn func(repo AuthRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&authRepository{db: tx})
	})
}
