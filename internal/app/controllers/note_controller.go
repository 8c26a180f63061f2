package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ecetin/edushare/internal/app/models/dto"
	"github.com/ecetin/edushare/internal/app/services"
	"github.com/ecetin/edushare/internal/middleware"
	"github.com/ecetin/edushare/internal/pkg/apperrors"
)

// parseIDParam parses a numeric ID parameter from the request path
func parseIDParam(ctx *gin.Context, paramName string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// NoteController handles note upload and deletion
type NoteController struct {
	noteService services.NoteService
	logger      zerolog.Logger
}

// NewNoteController creates a new NoteController
func NewNoteController(noteService services.NoteService, logger zerolog.Logger) *NoteController {
	return &NoteController{
		noteService: noteService,
		logger:      logger,
	}
}

// UploadForm describes the upload form for clients that fetch it
func (c *NoteController) UploadForm(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: gin.H{"fields": []string{"title", "description", "course", "file"}},
	})
}

// Upload stores the file part and creates a pending note
func (c *NoteController) Upload(ctx *gin.Context) {
	actor, _ := middleware.ActorFromContext(ctx)

	var req dto.UploadNoteRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid upload request").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrMissingFile)
		return
	}

	note, err := c.noteService.Upload(ctx.Request.Context(), actor, &req, fileHeader)
	if err != nil {
		c.logger.Warn().Err(err).Int64("actorID", actor.ID).Msg("Note upload failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: dto.NewNoteResponse(note)})
}

// Delete removes a note; the owner and admins may do this
func (c *NoteController) Delete(ctx *gin.Context) {
	actor, _ := middleware.ActorFromContext(ctx)

	noteID, ok := parseIDParam(ctx, "id")
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("invalid note ID"))
		return
	}

	if err := c.noteService.Delete(ctx.Request.Context(), actor, noteID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Note deleted."}})
}
