package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecetin/edushare/internal/app/models"
	"github.com/ecetin/edushare/internal/app/models/dto"
	"github.com/ecetin/edushare/internal/app/services"
	"github.com/ecetin/edushare/internal/middleware"
)

// DashboardController routes actors to their role dashboard and serves the
// per-role listings.
type DashboardController struct {
	noteService  services.NoteService
	adminService services.AdminService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(noteService services.NoteService, adminService services.AdminService) *DashboardController {
	return &DashboardController{
		noteService:  noteService,
		adminService: adminService,
	}
}

// Home redirects to the dashboard for authenticated actors, otherwise to login
func (c *DashboardController) Home(ctx *gin.Context) {
	if _, ok := middleware.ActorFromContext(ctx); ok {
		ctx.Redirect(http.StatusFound, "/dashboard")
		return
	}
	ctx.Redirect(http.StatusFound, "/login")
}

// Dashboard redirects the actor to their role's dashboard
func (c *DashboardController) Dashboard(ctx *gin.Context) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	switch actor.Role {
	case models.RoleAdmin:
		ctx.Redirect(http.StatusFound, "/dashboard/admin")
	case models.RoleTeacher:
		ctx.Redirect(http.StatusFound, "/dashboard/teacher")
	default:
		ctx.Redirect(http.StatusFound, "/dashboard/student")
	}
}

// AdminDashboard serves the moderation view: pending users, pending notes and
// the already-published notes.
func (c *DashboardController) AdminDashboard(ctx *gin.Context) {
	actor, _ := middleware.ActorFromContext(ctx)

	pendingUsers, err := c.adminService.PendingUsers(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	pendingNotes, err := c.adminService.PendingNotes(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	approvedNotes, err := c.adminService.ApprovedNotes(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	profiles := make([]*dto.UserProfile, 0, len(pendingUsers))
	for _, u := range pendingUsers {
		profiles = append(profiles, dto.NewUserProfile(u))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.AdminDashboardResponse{
			PendingUsers:  profiles,
			PendingNotes:  dto.NewNoteListResponse(pendingNotes),
			ApprovedNotes: dto.NewNoteListResponse(approvedNotes),
		},
	})
}

// TeacherDashboard lists the teacher's own notes, any status
func (c *DashboardController) TeacherDashboard(ctx *gin.Context) {
	actor, _ := middleware.ActorFromContext(ctx)

	notes, err := c.noteService.ListOwn(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: gin.H{"notes": dto.NewNoteListResponse(notes)},
	})
}

// StudentDashboard lists approved notes only
func (c *DashboardController) StudentDashboard(ctx *gin.Context) {
	actor, _ := middleware.ActorFromContext(ctx)

	notes, err := c.noteService.ListApproved(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: gin.H{"notes": dto.NewNoteListResponse(notes)},
	})
}
