package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ecetin/edushare/internal/app/models/dto"
	"github.com/ecetin/edushare/internal/app/services"
	"github.com/ecetin/edushare/internal/middleware"
	"github.com/ecetin/edushare/internal/pkg/apperrors"
)

// AdminController handles the moderation actions: approving users and notes
// and removing users.
type AdminController struct {
	adminService services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// ApproveUser marks a pending account as approved
func (c *AdminController) ApproveUser(ctx *gin.Context) {
	actor, _ := middleware.ActorFromContext(ctx)

	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("invalid user ID"))
		return
	}

	if err := c.adminService.ApproveUser(ctx.Request.Context(), actor, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "User approved."}})
}

// DeleteUser removes an account along with its notes and their files
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	actor, _ := middleware.ActorFromContext(ctx)

	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("invalid user ID"))
		return
	}

	if err := c.adminService.DeleteUser(ctx.Request.Context(), actor, userID); err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Msg("User deletion failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "User deleted."}})
}

// ApproveNote publishes a pending note
func (c *AdminController) ApproveNote(ctx *gin.Context) {
	actor, _ := middleware.ActorFromContext(ctx)

	noteID, ok := parseIDParam(ctx, "id")
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("invalid note ID"))
		return
	}

	if err := c.adminService.ApproveNote(ctx.Request.Context(), actor, noteID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Note approved."}})
}
