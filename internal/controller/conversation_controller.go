package controller

import (
	"errors"

	"github.com/dvitale199/blossom/internal/service"
	"github.com/dvitale199/blossom/internal/util"
	"github.com/gin-gonic/gin"
)

type ConversationController struct {
	convService  *service.ConversationService
	spaceService *service.SpaceService
}

func NewConversationController(convService *service.ConversationService, spaceService *service.SpaceService) *ConversationController {
	return &ConversationController{
		convService:  convService,
		spaceService: spaceService,
	}
}

// ListConversations godoc
// @Summary List conversations in a space
// @Tags conversations
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "space id"
// @Success 200 {object} util.Response{data=[]model.Conversation}
// @Router /api/spaces/{id}/conversations [get]
func (c *ConversationController) ListConversations(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if _, err := c.spaceService.GetSpace(ctx.Param("id"), user.UserID); err != nil {
		if errors.Is(err, util.ErrSpaceNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	convs, err := c.convService.ListConversations(ctx.Param("id"), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, convs)
}

// CreateConversation godoc
// @Summary Start a new conversation in a space
// @Tags conversations
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "space id"
// @Success 201 {object} util.Response{data=model.Conversation}
// @Router /api/spaces/{id}/conversations [post]
func (c *ConversationController) CreateConversation(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if _, err := c.spaceService.GetSpace(ctx.Param("id"), user.UserID); err != nil {
		if errors.Is(err, util.ErrSpaceNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	conv, err := c.convService.CreateConversation(ctx.Param("id"), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, conv)
}

// GetActiveConversation godoc
// @Summary Get the most recently active conversation in a space, creating one if none exists
// @Tags conversations
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "space id"
// @Success 200 {object} util.Response{data=model.Conversation}
// @Router /api/spaces/{id}/conversations/active [get]
func (c *ConversationController) GetActiveConversation(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if _, err := c.spaceService.GetSpace(ctx.Param("id"), user.UserID); err != nil {
		if errors.Is(err, util.ErrSpaceNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	conv, err := c.convService.GetOrCreateActive(ctx.Param("id"), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, conv)
}

// GetConversation godoc
// @Summary Get a conversation with its full message history
// @Tags conversations
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "conversation id"
// @Success 200 {object} util.Response{data=model.Conversation}
// @Router /api/conversations/{id} [get]
func (c *ConversationController) GetConversation(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	conv, err := c.convService.GetConversationWithMessages(ctx.Param("id"), user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrConversationNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, conv)
}
