package repository

import (
	"time"

	"github.com/dvitale199/blossom/internal/model"
	"gorm.io/gorm"
)

type ConversationRepository struct {
	DB *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{DB: db}
}

func (r *ConversationRepository) Create(conv *model.Conversation) error {
	if conv.LastMessageAt.IsZero() {
		conv.LastMessageAt = time.Now()
	}
	return r.DB.Create(conv).Error
}

// FindBySpace lists conversations in a space, most recent activity first.
func (r *ConversationRepository) FindBySpace(spaceID string, userID uint) ([]model.Conversation, error) {
	var convs []model.Conversation
	err := r.DB.Where("space_id = ? AND user_id = ?", spaceID, userID).
		Order("last_message_at DESC").
		Find(&convs).Error
	return convs, err
}

// FindByID returns the conversation only if it belongs to the user.
func (r *ConversationRepository) FindByID(id string, userID uint) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// FindByIDWithMessages loads the conversation and its full message history
// in chronological order.
func (r *ConversationRepository) FindByIDWithMessages(id string, userID uint) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.created_at ASC")
		}).
		First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *ConversationRepository) TouchLastMessageAt(id string) error {
	return r.DB.Model(&model.Conversation{}).
		Where("id = ?", id).
		Update("last_message_at", time.Now()).Error
}
