package auth

import (
	"context"
	"errors"

	"github.com/ecetin/edushare/internal/app/repositories"
	"github.com/ecetin/edushare/internal/pkg/apperrors"
	"github.com/ecetin/edushare/internal/pkg/logger"
)

// AuthorizationService resolves resources from the registries and evaluates
// the policy against them. The policy itself stays pure; this layer only does
// the lookups the rules need.
type AuthorizationService struct {
	noteRepo repositories.INoteRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(noteRepo repositories.INoteRepository) *AuthorizationService {
	return &AuthorizationService{
		noteRepo: noteRepo,
	}
}

// Authorize evaluates the policy for an action that needs no resource lookup
func (s *AuthorizationService) Authorize(actor Actor, action Action) error {
	if !actor.Authenticated {
		return apperrors.ErrUnauthorized
	}
	if Decide(actor, action, Resource{}) == Deny {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// AuthorizeNoteDelete checks whether the actor may delete the given note
func (s *AuthorizationService) AuthorizeNoteDelete(ctx context.Context, actor Actor, noteID int64) error {
	ownerID, err := s.noteRepo.GetOwnerID(ctx, noteID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoteNotFound) {
			return err
		}
		logger.Error().Err(err).Int64("noteID", noteID).Msg("Error fetching note owner for delete check")
		return err
	}

	res := Resource{Kind: ResourceNote, ID: noteID, OwnerID: ownerID}
	if Decide(actor, ActionDeleteNote, res) == Deny {
		return apperrors.NewForbiddenError("only the note owner or an admin can delete a note")
	}

	return nil
}
