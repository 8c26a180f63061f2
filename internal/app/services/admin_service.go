package services

import (
	"context"

	"github.com/rs/zerolog"

	appauth "github.com/ecetin/edushare/internal/app/auth"
	"github.com/ecetin/edushare/internal/app/models"
	"github.com/ecetin/edushare/internal/app/repositories"
	"github.com/ecetin/edushare/internal/pkg/filestorage"
)

// AdminService handles the admin moderation workflows: user approval and
// deletion, note approval, and the moderation listings.
type AdminService interface {
	PendingUsers(ctx context.Context, actor appauth.Actor) ([]*models.User, error)
	ApproveUser(ctx context.Context, actor appauth.Actor, userID int64) error
	DeleteUser(ctx context.Context, actor appauth.Actor, userID int64) error
	PendingNotes(ctx context.Context, actor appauth.Actor) ([]*models.Note, error)
	ApprovedNotes(ctx context.Context, actor appauth.Actor) ([]*models.Note, error)
	ApproveNote(ctx context.Context, actor appauth.Actor, noteID int64) error
}

type adminService struct {
	userRepo  repositories.IUserRepository
	noteRepo  repositories.INoteRepository
	authz     *appauth.AuthorizationService
	fileStore filestorage.FileStore
	logger    zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(
	userRepo repositories.IUserRepository,
	noteRepo repositories.INoteRepository,
	authz *appauth.AuthorizationService,
	fileStore filestorage.FileStore,
	logger zerolog.Logger,
) AdminService {
	return &adminService{
		userRepo:  userRepo,
		noteRepo:  noteRepo,
		authz:     authz,
		fileStore: fileStore,
		logger:    logger,
	}
}

// PendingUsers lists accounts awaiting approval
func (s *adminService) PendingUsers(ctx context.Context, actor appauth.Actor) ([]*models.User, error) {
	if err := s.authz.Authorize(actor, appauth.ActionListPendingUsers); err != nil {
		return nil, err
	}
	return s.userRepo.ListPending(ctx)
}

// ApproveUser flips the approval flag. Idempotent.
func (s *adminService) ApproveUser(ctx context.Context, actor appauth.Actor, userID int64) error {
	if err := s.authz.Authorize(actor, appauth.ActionApproveUser); err != nil {
		return err
	}

	if err := s.userRepo.Approve(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", userID).Int64("adminID", actor.ID).Msg("User approved")
	return nil
}

// DeleteUser removes a user. The FK cascades the user's note rows; the backing
// files are collected first and removed after the row delete succeeds.
func (s *adminService) DeleteUser(ctx context.Context, actor appauth.Actor, userID int64) error {
	if err := s.authz.Authorize(actor, appauth.ActionDeleteUser); err != nil {
		return err
	}

	storedNames, err := s.noteRepo.ListStoredNamesByOwner(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	for _, name := range storedNames {
		if err := s.fileStore.Remove(name); err != nil {
			s.logger.Error().Err(err).Str("storedName", name).Msg("Failed to remove file of deleted user")
		}
	}

	s.logger.Info().
		Int64("userID", userID).
		Int64("adminID", actor.ID).
		Int("notesRemoved", len(storedNames)).
		Msg("User deleted with owned notes")
	return nil
}

// PendingNotes lists notes awaiting moderation
func (s *adminService) PendingNotes(ctx context.Context, actor appauth.Actor) ([]*models.Note, error) {
	if err := s.authz.Authorize(actor, appauth.ActionListPendingNotes); err != nil {
		return nil, err
	}
	return s.noteRepo.ListPending(ctx)
}

// ApprovedNotes lists published notes for the moderation view
func (s *adminService) ApprovedNotes(ctx context.Context, actor appauth.Actor) ([]*models.Note, error) {
	if err := s.authz.Authorize(actor, appauth.ActionListApprovedNotes); err != nil {
		return nil, err
	}
	return s.noteRepo.ListApproved(ctx)
}

// ApproveNote publishes a pending note. Idempotent.
func (s *adminService) ApproveNote(ctx context.Context, actor appauth.Actor, noteID int64) error {
	if err := s.authz.Authorize(actor, appauth.ActionApproveNote); err != nil {
		return err
	}

	if err := s.noteRepo.Approve(ctx, noteID); err != nil {
		return err
	}

	s.logger.Info().Int64("noteID", noteID).Int64("adminID", actor.ID).Msg("Note approved")
	return nil
}
