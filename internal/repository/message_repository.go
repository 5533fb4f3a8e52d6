package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dvitale199/blossom/internal/model"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const recentWindowTTL = 10 * time.Minute

type MessageRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewMessageRepository(db *gorm.DB, rdb *redis.Client) *MessageRepository {
	return &MessageRepository{DB: db, Redis: rdb}
}

func recentWindowKey(conversationID string, limit int) string {
	return fmt.Sprintf("tutor:recent:%s:%d", conversationID, limit)
}

// FindRecent returns the last `limit` messages of a conversation in
// chronological order. The window is cached in redis because it is re-read
// on every tutor turn.
func (r *MessageRepository) FindRecent(ctx context.Context, conversationID string, limit int) ([]model.Message, error) {
	key := recentWindowKey(conversationID, limit)

	if r.Redis != nil {
		if val, err := r.Redis.Get(ctx, key).Result(); err == nil {
			var cached []model.Message
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		}
	}

	var messages []model.Message
	err := r.DB.Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Query is newest-first; reverse into chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	if r.Redis != nil {
		if raw, err := json.Marshal(messages); err == nil {
			r.Redis.Set(ctx, key, raw, recentWindowTTL)
		}
	}

	return messages, nil
}

func (r *MessageRepository) Create(ctx context.Context, msg *model.Message) error {
	if err := r.DB.Create(msg).Error; err != nil {
		return err
	}
	r.invalidateWindow(ctx, msg.ConversationID)
	return nil
}

func (r *MessageRepository) FindByID(id string) (*model.Message, error) {
	var msg model.Message
	err := r.DB.First(&msg, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// FindByIDForUser returns the message only if its conversation belongs to
// the user.
func (r *MessageRepository) FindByIDForUser(id string, userID uint) (*model.Message, error) {
	var msg model.Message
	err := r.DB.
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Where("messages.id = ? AND conversations.user_id = ?", id, userID).
		First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *MessageRepository) UpdateMetadata(ctx context.Context, id string, metadata json.RawMessage) (*model.Message, error) {
	msg, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := r.DB.Model(msg).Update("metadata", metadata).Error; err != nil {
		return nil, err
	}
	msg.Metadata = metadata
	r.invalidateWindow(ctx, msg.ConversationID)
	return msg, nil
}

func (r *MessageRepository) invalidateWindow(ctx context.Context, conversationID string) {
	if r.Redis == nil {
		return
	}
	iter := r.Redis.Scan(ctx, 0, fmt.Sprintf("tutor:recent:%s:*", conversationID), 0).Iterator()
	for iter.Next(ctx) {
		r.Redis.Del(ctx, iter.Val())
	}
}
