package controller

import (
	"errors"

	"github.com/dvitale199/blossom/internal/service"
	"github.com/dvitale199/blossom/internal/util"
	"github.com/gin-gonic/gin"
)

type SpaceController struct {
	spaceService *service.SpaceService
}

func NewSpaceController(spaceService *service.SpaceService) *SpaceController {
	return &SpaceController{spaceService: spaceService}
}

// ListSpaces godoc
// @Summary List the current user's learning spaces
// @Tags spaces
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Space}
// @Router /api/spaces [get]
func (c *SpaceController) ListSpaces(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	spaces, err := c.spaceService.ListSpaces(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, spaces)
}

// GetSpace godoc
// @Summary Get one learning space
// @Tags spaces
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "space id"
// @Success 200 {object} util.Response{data=model.Space}
// @Router /api/spaces/{id} [get]
func (c *SpaceController) GetSpace(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	space, err := c.spaceService.GetSpace(ctx.Param("id"), user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrSpaceNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, space)
}

// CreateSpace godoc
// @Summary Create a learning space
// @Tags spaces
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateSpaceRequest true "space payload"
// @Success 201 {object} util.Response{data=model.Space}
// @Router /api/spaces [post]
func (c *SpaceController) CreateSpace(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateSpaceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	space, err := c.spaceService.CreateSpace(user.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, space)
}

// DeleteSpace godoc
// @Summary Delete a learning space
// @Tags spaces
// @Security ApiKeyAuth
// @Param id path string true "space id"
// @Success 204
// @Router /api/spaces/{id} [delete]
func (c *SpaceController) DeleteSpace(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.spaceService.DeleteSpace(ctx.Param("id"), user.UserID); err != nil {
		if errors.Is(err, util.ErrSpaceNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.NoContent(ctx)
}
