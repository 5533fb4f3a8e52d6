package service

import (
	"errors"

	"github.com/dvitale199/blossom/internal/model"
	"github.com/dvitale199/blossom/internal/repository"
	"github.com/dvitale199/blossom/internal/util"
	"gorm.io/gorm"
)

type ConversationService struct {
	Repo *repository.ConversationRepository
}

func NewConversationService(repo *repository.ConversationRepository) *ConversationService {
	return &ConversationService{Repo: repo}
}

func (s *ConversationService) ListConversations(spaceID string, userID uint) ([]model.Conversation, error) {
	return s.Repo.FindBySpace(spaceID, userID)
}

func (s *ConversationService) GetConversation(id string, userID uint) (*model.Conversation, error) {
	conv, err := s.Repo.FindByID(id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrConversationNotFound
	}
	return conv, err
}

func (s *ConversationService) GetConversationWithMessages(id string, userID uint) (*model.Conversation, error) {
	conv, err := s.Repo.FindByIDWithMessages(id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrConversationNotFound
	}
	return conv, err
}

func (s *ConversationService) CreateConversation(spaceID string, userID uint) (*model.Conversation, error) {
	conv := &model.Conversation{
		SpaceID: spaceID,
		UserID:  userID,
	}
	if err := s.Repo.Create(conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// GetOrCreateActive returns the most recently active conversation in a
// space, creating one if the space has none.
func (s *ConversationService) GetOrCreateActive(spaceID string, userID uint) (*model.Conversation, error) {
	convs, err := s.Repo.FindBySpace(spaceID, userID)
	if err != nil {
		return nil, err
	}
	if len(convs) > 0 {
		return &convs[0], nil
	}
	return s.CreateConversation(spaceID, userID)
}
