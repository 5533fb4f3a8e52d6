package controller

import (
	"errors"

	"github.com/dvitale199/blossom/internal/model"
	"github.com/dvitale199/blossom/internal/service"
	"github.com/dvitale199/blossom/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dvitale199/blossom/pkg/logger"
)

type MessageController struct {
	msgService   *service.MessageService
	convService  *service.ConversationService
	spaceService *service.SpaceService
	tutorService *service.TutorService
}

func NewMessageController(
	msgService *service.MessageService,
	convService *service.ConversationService,
	spaceService *service.SpaceService,
	tutorService *service.TutorService,
) *MessageController {
	return &MessageController{
		msgService:   msgService,
		convService:  convService,
		spaceService: spaceService,
		tutorService: tutorService,
	}
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required,min=1,max=10000"`
}

type MessageResponse struct {
	Message *model.Message `json:"message"`
	HasQuiz bool           `json:"hasQuiz"`
}

type QuizResponseRequest struct {
	Responses []service.QuizAnswer `json:"responses" binding:"required,min=1,dive"`
}

// SendMessage godoc
// @Summary Send a message and get the tutor's response
// @Description Runs one tutoring turn: the user message is stored, the tutor
// @Description replies with the conversation context in scope, and any quiz
// @Description embedded in the reply is attached to it as metadata.
// @Tags messages
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "conversation id"
// @Param body body SendMessageRequest true "message payload"
// @Success 200 {object} util.Response{data=MessageResponse}
// @Router /api/conversations/{id}/messages [post]
func (c *MessageController) SendMessage(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	conv, err := c.convService.GetConversation(ctx.Param("id"), user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrConversationNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	space, err := c.spaceService.GetSpace(conv.SpaceID, user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrSpaceNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	reqCtx := ctx.Request.Context()

	// Read the window before storing the new message; the tutor appends it
	// to the transcript itself.
	history, err := c.msgService.GetRecentMessages(reqCtx, conv.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if _, err := c.msgService.StoreMessage(reqCtx, conv.ID, model.RoleUser, req.Content, nil); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	responseText, quiz, err := c.tutorService.GenerateResponse(reqCtx, space, history, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrGenerationFailed) {
			logger.Log.Error("tutor turn failed",
				zap.String("conversationId", conv.ID),
				zap.Error(err))
			util.BadGateway(ctx, service.ErrGenerationFailed.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	assistantMsg, err := c.msgService.StoreMessage(reqCtx, conv.ID, model.RoleAssistant, responseText, quiz)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.msgService.TouchConversation(conv.ID); err != nil {
		logger.Log.Warn("failed to touch conversation timestamp",
			zap.String("conversationId", conv.ID),
			zap.Error(err))
	}

	util.Success(ctx, MessageResponse{
		Message: assistantMsg,
		HasQuiz: quiz != nil,
	})
}

// SubmitQuizResponse godoc
// @Summary Submit answers for a quiz message
// @Tags messages
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "message id"
// @Param body body QuizResponseRequest true "quiz answers"
// @Success 200 {object} util.Response{data=model.Message}
// @Router /api/messages/{id}/quiz-response [post]
func (c *MessageController) SubmitQuizResponse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req QuizResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	msg, err := c.msgService.SubmitQuizResponses(ctx.Request.Context(), ctx.Param("id"), user.UserID, req.Responses)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrMessageNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrNoQuizOnMessage):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, msg)
}
