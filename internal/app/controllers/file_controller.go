package controllers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ecetin/edushare/internal/app/services"
	"github.com/ecetin/edushare/internal/middleware"
	"github.com/ecetin/edushare/internal/pkg/apperrors"
	"github.com/ecetin/edushare/internal/pkg/filestorage"
)

// FileController serves stored note files inline
type FileController struct {
	fileStore filestorage.FileStore
	logger    zerolog.Logger
}

// NewFileController creates a new FileController
func NewFileController(fileStore filestorage.FileStore, logger zerolog.Logger) *FileController {
	return &FileController{
		fileStore: fileStore,
		logger:    logger,
	}
}

// View streams a stored file to the client. The filename parameter is reduced
// to its base name before lookup, so path traversal cannot escape the storage
// directory. The content type comes from the filename suffix alone.
func (c *FileController) View(ctx *gin.Context) {
	if _, ok := middleware.ActorFromContext(ctx); !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	filename := filepath.Base(ctx.Param("filename"))

	physicalPath := c.fileStore.Path(filename)
	if physicalPath == "" {
		middleware.HandleAPIError(ctx, apperrors.ErrFileNotFound)
		return
	}

	if _, err := os.Stat(physicalPath); err != nil {
		c.logger.Warn().Str("filename", filename).Msg("Requested file does not exist")
		middleware.HandleAPIError(ctx, apperrors.ErrFileNotFound)
		return
	}

	ctx.Header("Content-Type", services.ContentTypeForFilename(filename))
	ctx.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	ctx.File(physicalPath)
}
