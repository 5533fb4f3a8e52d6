package model

import (
	"time"
)

// Conversation is one tutoring session inside a space.
type Conversation struct {
	UUIDBase
	SpaceID       string    `gorm:"index;type:varchar(36);not null" json:"spaceId"`
	UserID        uint      `gorm:"index;not null" json:"userId"`
	LastMessageAt time.Time `gorm:"index" json:"lastMessageAt"`
	Summary       string    `gorm:"type:text" json:"summary,omitempty"`
	Messages      []Message `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

func (Conversation) TableName() string {
	return "conversations"
}
