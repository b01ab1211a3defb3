package feed

import (
	"errors"

	"gorm.io/gorm"

	"github.com/sportlink/sportlink/internal/user"
)

type FeedRepository interface {
	CreatePost(post *Post) error
	GetPostByID(id uint) (*Post, error)
	GetPosts(page, limit int) ([]Post, int64, error)
	GetPostsByUserID(userID uint, page, limit int) ([]Post, int64, error)
	DeletePost(id uint) error

	CreateComment(comment *Comment) error
	GetCommentByID(id uint) (*Comment, error)
	GetCommentsByPostID(postID uint, page, limit int) ([]Comment, int64, error)
	DeleteComment(id uint) error

	CreateLike(like *Like) error
	GetLike(postID, userID uint) (*Like, error)
	DeleteLike(postID, userID uint) error

	CountLikes(postIDs []uint) (map[uint]int64, error)
	CountComments(postIDs []uint) (map[uint]int64, error)
	LikedByUser(postIDs []uint, userID uint) (map[uint]bool, error)

	GetUsersByIDs(ids []uint) ([]user.User, error)
}

type feedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &feedRepository{db: db}
}

func (r *feedRepository) CreatePost(post *Post) error {
	return r.db.Create(post).Error
}

func (r *feedRepository) GetPostByID(id uint) (*Post, error) {
	var post Post
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *feedRepository) GetPosts(page, limit int) ([]Post, int64, error) {
	var posts []Post
	var total int64

	if err := r.db.Model(&Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *feedRepository) GetPostsByUserID(userID uint, page, limit int) ([]Post, int64, error) {
	var posts []Post
	var total int64

	query := r.db.Model(&Post{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *feedRepository) DeletePost(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Post{}, id).Error
	})
}

func (r *feedRepository) CreateComment(comment *Comment) error {
	return r.db.Create(comment).Error
}

func (r *feedRepository) GetCommentByID(id uint) (*Comment, error) {
	var comment Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

func (r *feedRepository) GetCommentsByPostID(postID uint, page, limit int) ([]Comment, int64, error) {
	var comments []Comment
	var total int64

	query := r.db.Model(&Comment{}).Where("post_id = ?", postID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at asc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&comments).Error
	return comments, total, err
}

func (r *feedRepository) DeleteComment(id uint) error {
	return r.db.Delete(&Comment{}, id).Error
}

func (r *feedRepository) CreateLike(like *Like) error {
	return r.db.Create(like).Error
}

func (r *feedRepository) GetLike(postID, userID uint) (*Like, error) {
	var like Like
	err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &like, nil
}

func (r *feedRepository) DeleteLike(postID, userID uint) error {
	return r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&Like{}).Error
}

type postCount struct {
	PostID uint
	Count  int64
}

func (r *feedRepository) CountLikes(postIDs []uint) (map[uint]int64, error) {
	return r.countByPost(&Like{}, postIDs)
}

func (r *feedRepository) CountComments(postIDs []uint) (map[uint]int64, error) {
	return r.countByPost(&Comment{}, postIDs)
}

func (r *feedRepository) countByPost(model interface{}, postIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []postCount
	err := r.db.Model(model).
		Select("post_id, count(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}

func (r *feedRepository) LikedByUser(postIDs []uint, userID uint) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(postIDs))
	if len(postIDs) == 0 {
		return liked, nil
	}

	var ids []uint
	err := r.db.Model(&Like{}).
		Where("post_id IN ? AND user_id = ?", postIDs, userID).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func (r *feedRepository) GetUsersByIDs(ids []uint) ([]user.User, error) {
	var users []user.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&users).Error
	return users, err
}
