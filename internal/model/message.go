package model

import (
	"encoding/json"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one turn of a conversation. Tutor messages that contain a quiz
// carry the quiz artifact in Metadata.
type Message struct {
	UUIDBase
	ConversationID string          `gorm:"index;index:idx_conv_created;type:varchar(36);not null" json:"conversationId"`
	CreatedAt      time.Time       `gorm:"index:idx_conv_created" json:"createdAt"`
	Role           string          `gorm:"type:enum('user','assistant','system');not null" json:"role"`
	Content        string          `gorm:"type:text;not null" json:"content"`
	Metadata       json.RawMessage `gorm:"type:json" json:"metadata,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}

// Quiz returns the quiz artifact stored in the message metadata, or nil if
// the message carries none.
func (m *Message) Quiz() *Quiz {
	if len(m.Metadata) == 0 {
		return nil
	}
	var quiz Quiz
	if err := json.Unmarshal(m.Metadata, &quiz); err != nil {
		return nil
	}
	if quiz.Type != MetadataTypeQuiz || len(quiz.Questions) == 0 {
		return nil
	}
	return &quiz
}

// SetQuiz replaces the message metadata with the given quiz artifact.
func (m *Message) SetQuiz(quiz *Quiz) error {
	raw, err := json.Marshal(quiz)
	if err != nil {
		return err
	}
	m.Metadata = raw
	return nil
}
