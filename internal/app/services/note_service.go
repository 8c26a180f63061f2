package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	appauth "github.com/ecetin/edushare/internal/app/auth"
	"github.com/ecetin/edushare/internal/app/models"
	"github.com/ecetin/edushare/internal/app/models/dto"
	"github.com/ecetin/edushare/internal/app/repositories"
	"github.com/ecetin/edushare/internal/pkg/apperrors"
	"github.com/ecetin/edushare/internal/pkg/filestorage"
)

// NoteService handles note upload, listing and deletion
type NoteService interface {
	Upload(ctx context.Context, actor appauth.Actor, req *dto.UploadNoteRequest, fileHeader *multipart.FileHeader) (*models.Note, error)
	Delete(ctx context.Context, actor appauth.Actor, noteID int64) error
	ListOwn(ctx context.Context, actor appauth.Actor) ([]*models.Note, error)
	ListApproved(ctx context.Context, actor appauth.Actor) ([]*models.Note, error)
}

type noteService struct {
	noteRepo  repositories.INoteRepository
	authz     *appauth.AuthorizationService
	fileStore filestorage.FileStore
	logger    zerolog.Logger
}

// NewNoteService creates a new NoteService
func NewNoteService(
	noteRepo repositories.INoteRepository,
	authz *appauth.AuthorizationService,
	fileStore filestorage.FileStore,
	logger zerolog.Logger,
) NoteService {
	return &noteService{
		noteRepo:  noteRepo,
		authz:     authz,
		fileStore: fileStore,
		logger:    logger,
	}
}

// Upload stores the file and creates a pending note record. The file is
// written first; if the record insert fails the stored file is removed so no
// orphan survives on either side.
func (s *noteService) Upload(ctx context.Context, actor appauth.Actor, req *dto.UploadNoteRequest, fileHeader *multipart.FileHeader) (*models.Note, error) {
	if err := s.authz.Authorize(actor, appauth.ActionUploadNote); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}

	if fileHeader == nil {
		return nil, apperrors.ErrMissingFile
	}

	storedName, err := s.fileStore.Save(fileHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to store uploaded file: %w", err)
	}

	note := &models.Note{
		Title:       title,
		FileName:    fileHeader.Filename,
		StoredName:  storedName,
		FileSize:    fileHeader.Size,
		ContentType: ContentTypeForFilename(fileHeader.Filename),
		Status:      models.NoteStatusPending,
		UserID:      actor.ID,
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		note.Description = &desc
	}
	if course := strings.TrimSpace(req.Course); course != "" {
		note.Course = &course
	}

	if _, err := s.noteRepo.Create(ctx, note); err != nil {
		if rmErr := s.fileStore.Remove(storedName); rmErr != nil {
			s.logger.Error().Err(rmErr).Str("storedName", storedName).Msg("Failed to clean up file after insert failure")
		}
		return nil, fmt.Errorf("failed to create note record: %w", err)
	}

	s.logger.Info().
		Int64("noteID", note.ID).
		Int64("ownerID", actor.ID).
		Str("title", title).
		Msg("Note uploaded, awaiting approval")

	return note, nil
}

// Delete removes a note and its backing file. Allowed to the owner or an
// admin; the policy decides, the service only sequences.
func (s *noteService) Delete(ctx context.Context, actor appauth.Actor, noteID int64) error {
	if err := s.authz.AuthorizeNoteDelete(ctx, actor, noteID); err != nil {
		return err
	}

	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return err
	}

	if err := s.noteRepo.Delete(ctx, noteID); err != nil {
		return err
	}

	if err := s.fileStore.Remove(note.StoredName); err != nil {
		// The record is gone; an undeletable file is logged, not surfaced
		s.logger.Error().Err(err).Str("storedName", note.StoredName).Msg("Failed to remove note file")
	}

	s.logger.Info().Int64("noteID", noteID).Int64("actorID", actor.ID).Msg("Note deleted")
	return nil
}

// ListOwn returns the actor's own notes regardless of status
func (s *noteService) ListOwn(ctx context.Context, actor appauth.Actor) ([]*models.Note, error) {
	if err := s.authz.Authorize(actor, appauth.ActionListOwnNotes); err != nil {
		return nil, err
	}
	return s.noteRepo.ListByOwner(ctx, actor.ID)
}

// ListApproved returns all published notes
func (s *noteService) ListApproved(ctx context.Context, actor appauth.Actor) ([]*models.Note, error) {
	if err := s.authz.Authorize(actor, appauth.ActionListApprovedNotes); err != nil {
		return nil, err
	}
	return s.noteRepo.ListApproved(ctx)
}

// ContentTypeForFilename maps a filename suffix to the served content type.
// The mapping is fixed: pdf, the four image suffixes, and a generic fallback.
// Content sniffing is deliberately not used.
func ContentTypeForFilename(filename string) string {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(name, ".png"):
		return "image/png"
	case strings.HasSuffix(name, ".jpg"), strings.HasSuffix(name, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(name, ".gif"):
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
