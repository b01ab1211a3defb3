package message

import (
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/sportlink/sportlink/internal/user"
)

type MessageRepository interface {
	CreateMessage(m *Message) error
	GetConversation(userID, partnerID uint, page, limit int) ([]Message, int64, error)
	MarkConversationRead(userID, partnerID uint) error
	GetConversations(userID uint) ([]Conversation, error)
	GetUserByID(id uint) (*user.User, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) CreateMessage(m *Message) error {
	return r.db.Create(m).Error
}

func (r *messageRepository) GetConversation(userID, partnerID uint, page, limit int) ([]Message, int64, error) {
	var messages []Message
	var total int64

	query := r.db.Model(&Message{}).Where(
		"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		userID, partnerID, partnerID, userID,
	)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&messages).Error
	return messages, total, err
}

func (r *messageRepository) MarkConversationRead(userID, partnerID uint) error {
	return r.db.Model(&Message{}).
		Where("recipient_id = ? AND sender_id = ? AND read_at IS NULL", userID, partnerID).
		Update("read_at", time.Now()).Error
}

type conversationRow struct {
	PartnerID   uint
	LastMessage string
	LastSentAt  time.Time
}

type unreadRow struct {
	SenderID uint
	Count    int64
}

func (r *messageRepository) GetConversations(userID uint) ([]Conversation, error) {
	// One row per partner with the most recent message.
	var rows []conversationRow
	err := r.db.Raw(`
		SELECT DISTINCT ON (partner_id)
			CASE WHEN sender_id = ? THEN recipient_id ELSE sender_id END AS partner_id,
			body AS last_message,
			created_at AS last_sent_at
		FROM messages
		WHERE (sender_id = ? OR recipient_id = ?) AND deleted_at IS NULL
		ORDER BY partner_id, created_at DESC`,
		userID, userID, userID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var unread []unreadRow
	err = r.db.Model(&Message{}).
		Select("sender_id, count(*) as count").
		Where("recipient_id = ? AND read_at IS NULL", userID).
		Group("sender_id").
		Scan(&unread).Error
	if err != nil {
		return nil, err
	}
	unreadByPartner := make(map[uint]int64, len(unread))
	for _, u := range unread {
		unreadByPartner[u.SenderID] = u.Count
	}

	partnerIDs := make([]uint, 0, len(rows))
	for _, row := range rows {
		partnerIDs = append(partnerIDs, row.PartnerID)
	}
	var partners []user.User
	if len(partnerIDs) > 0 {
		if err := r.db.Where("id IN ?", partnerIDs).Find(&partners).Error; err != nil {
			return nil, err
		}
	}
	identities := make(map[uint]user.Identity, len(partners))
	for i := range partners {
		identities[partners[i].ID] = partners[i].Identity()
	}

	conversations := make([]Conversation, 0, len(rows))
	for _, row := range rows {
		identity, found := identities[row.PartnerID]
		if !found {
			continue
		}
		conversations = append(conversations, Conversation{
			Partner:     identity,
			LastMessage: row.LastMessage,
			LastSentAt:  row.LastSentAt,
			UnreadCount: unreadByPartner[row.PartnerID],
		})
	}
	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].LastSentAt.After(conversations[j].LastSentAt)
	})
	return conversations, nil
}

func (r *messageRepository) GetUserByID(id uint) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
