package feed

import (
	"time"

	"gorm.io/gorm"

	"github.com/sportlink/sportlink/internal/user"
)

type Post struct {
	gorm.Model
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	Content  string `gorm:"type:text;not null" json:"content"`
	ImageURL string `json:"image_url,omitempty"`
}

type Comment struct {
	gorm.Model
	PostID  uint   `gorm:"not null;index" json:"post_id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	Content string `gorm:"type:text;not null" json:"content"`
}

// Like rows are unique per (post, user); a second like from the same user is
// rejected.
type Like struct {
	gorm.Model
	PostID uint `gorm:"not null;uniqueIndex:idx_post_user_like" json:"post_id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_post_user_like" json:"user_id"`
}

// PostView is the feed projection: the post plus author identity and counts.
type PostView struct {
	ID           uint          `json:"id"`
	Author       user.Identity `json:"author"`
	Content      string        `json:"content"`
	ImageURL     string        `json:"image_url,omitempty"`
	LikeCount    int64         `json:"like_count"`
	CommentCount int64         `json:"comment_count"`
	LikedByMe    bool          `json:"liked_by_me"`
	CreatedAt    time.Time     `json:"created_at"`
}

// CommentView pairs a comment with its author identity.
type CommentView struct {
	ID        uint          `json:"id"`
	Author    user.Identity `json:"author"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
}
