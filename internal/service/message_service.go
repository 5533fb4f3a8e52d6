package service

import (
	"context"
	"errors"

	"github.com/dvitale199/blossom/internal/model"
	"github.com/dvitale199/blossom/internal/repository"
	"github.com/dvitale199/blossom/internal/util"
	"gorm.io/gorm"
)

// RecentWindowSize is how many trailing messages feed a tutor turn.
const RecentWindowSize = 20

type MessageService struct {
	Repo     *repository.MessageRepository
	ConvRepo *repository.ConversationRepository
}

func NewMessageService(repo *repository.MessageRepository, convRepo *repository.ConversationRepository) *MessageService {
	return &MessageService{Repo: repo, ConvRepo: convRepo}
}

type QuizAnswer struct {
	QuestionID string `json:"questionId" binding:"required"`
	UserAnswer string `json:"userAnswer"`
}

func (s *MessageService) GetRecentMessages(ctx context.Context, conversationID string) ([]model.Message, error) {
	return s.Repo.FindRecent(ctx, conversationID, RecentWindowSize)
}

func (s *MessageService) StoreMessage(ctx context.Context, conversationID, role, content string, quiz *model.Quiz) (*model.Message, error) {
	msg := &model.Message{
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
	}
	if quiz != nil {
		if err := msg.SetQuiz(quiz); err != nil {
			return nil, err
		}
	}
	if err := s.Repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *MessageService) TouchConversation(conversationID string) error {
	return s.ConvRepo.TouchLastMessageAt(conversationID)
}

// SubmitQuizResponses records a user's answers on the quiz carried by a
// message and moves the quiz from pending to completed. The quiz keeps its
// questions; only status and responses change.
func (s *MessageService) SubmitQuizResponses(ctx context.Context, messageID string, userID uint, answers []QuizAnswer) (*model.Message, error) {
	msg, err := s.Repo.FindByIDForUser(messageID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}

	quiz := msg.Quiz()
	if quiz == nil {
		return nil, util.ErrNoQuizOnMessage
	}

	responses := make([]model.QuizResponse, 0, len(answers))
	for _, answer := range answers {
		// TODO: grade UserAnswer against the question's CorrectAnswer once
		// the matching rule (exact vs. normalized) is decided.
		responses = append(responses, model.QuizResponse{
			QuestionID: answer.QuestionID,
			UserAnswer: answer.UserAnswer,
			IsCorrect:  false,
		})
	}

	quiz.Status = model.QuizStatusCompleted
	quiz.Responses = responses

	if err := msg.SetQuiz(quiz); err != nil {
		return nil, err
	}
	return s.Repo.UpdateMetadata(ctx, msg.ID, msg.Metadata)
}
