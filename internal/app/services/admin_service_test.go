package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	appauth "github.com/ecetin/edushare/internal/app/auth"
	"github.com/ecetin/edushare/internal/app/models"
	"github.com/ecetin/edushare/internal/pkg/apperrors"
)

func newTestAdminService(userRepo *fakeUserRepo, noteRepo *fakeNoteRepo, fileStore *fakeFileStore) AdminService {
	authz := appauth.NewAuthorizationService(noteRepo)
	return NewAdminService(userRepo, noteRepo, authz, fileStore, zerolog.Nop())
}

func TestApproveUser(t *testing.T) {
	userRepo := newFakeUserRepo()
	user := userRepo.addUser(&models.User{Username: "alice", Email: "alice@example.com", RoleType: models.RoleStudent})
	svc := newTestAdminService(userRepo, newFakeNoteRepo(), newFakeFileStore())

	if err := svc.ApproveUser(context.Background(), adminActor(1), user.ID); err != nil {
		t.Fatalf("ApproveUser() error = %v", err)
	}
	if !user.IsApproved {
		t.Error("user not approved")
	}

	// Re-approving an approved user succeeds without change
	if err := svc.ApproveUser(context.Background(), adminActor(1), user.ID); err != nil {
		t.Errorf("repeated ApproveUser() error = %v", err)
	}
}

func TestApproveUserDeniedForNonAdmin(t *testing.T) {
	userRepo := newFakeUserRepo()
	user := userRepo.addUser(&models.User{Username: "alice", Email: "alice@example.com", RoleType: models.RoleStudent})
	svc := newTestAdminService(userRepo, newFakeNoteRepo(), newFakeFileStore())

	err := svc.ApproveUser(context.Background(), teacherActor(2), user.ID)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("ApproveUser() error = %v, want %v", err, apperrors.ErrPermissionDenied)
	}
	if user.IsApproved {
		t.Error("denied approval still flipped the flag")
	}
}

func TestApproveUserMissing(t *testing.T) {
	svc := newTestAdminService(newFakeUserRepo(), newFakeNoteRepo(), newFakeFileStore())

	if err := svc.ApproveUser(context.Background(), adminActor(1), 99); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("ApproveUser() error = %v, want %v", err, apperrors.ErrUserNotFound)
	}
}

func TestDeleteUserRemovesNotesAndFiles(t *testing.T) {
	userRepo := newFakeUserRepo()
	teacher := userRepo.addUser(&models.User{Username: "t", Email: "t@example.com", RoleType: models.RoleTeacher, IsApproved: true})

	noteRepo := newFakeNoteRepo()
	fileStore := newFakeFileStore()
	noteSvc := newTestNoteService(noteRepo, fileStore)

	for i := 0; i < 2; i++ {
		if _, err := noteSvc.Upload(context.Background(), teacherActor(teacher.ID), uploadReq("note"), pdfHeader()); err != nil {
			t.Fatalf("Upload() error = %v", err)
		}
	}

	svc := newTestAdminService(userRepo, noteRepo, fileStore)
	if err := svc.DeleteUser(context.Background(), adminActor(1), teacher.ID); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}

	if _, ok := userRepo.users[teacher.ID]; ok {
		t.Error("user record still present after delete")
	}
	if len(fileStore.files) != 0 {
		t.Errorf("files left after user delete: %d", len(fileStore.files))
	}
}

func TestDeleteUserDeniedForNonAdmin(t *testing.T) {
	userRepo := newFakeUserRepo()
	user := userRepo.addUser(&models.User{Username: "alice", Email: "alice@example.com", RoleType: models.RoleStudent})
	svc := newTestAdminService(userRepo, newFakeNoteRepo(), newFakeFileStore())

	err := svc.DeleteUser(context.Background(), studentActor(3), user.ID)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("DeleteUser() error = %v, want %v", err, apperrors.ErrPermissionDenied)
	}
}

func TestPendingUsersListing(t *testing.T) {
	userRepo := newFakeUserRepo()
	userRepo.addUser(&models.User{Username: "pending", Email: "p@example.com", RoleType: models.RoleStudent})
	userRepo.addUser(&models.User{Username: "approved", Email: "a@example.com", RoleType: models.RoleStudent, IsApproved: true})
	svc := newTestAdminService(userRepo, newFakeNoteRepo(), newFakeFileStore())

	pending, err := svc.PendingUsers(context.Background(), adminActor(1))
	if err != nil {
		t.Fatalf("PendingUsers() error = %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("len(pending) = %d, want 1", len(pending))
	}
	if pending[0].Username != "pending" {
		t.Errorf("Username = %q, want pending", pending[0].Username)
	}

	if _, err := svc.PendingUsers(context.Background(), teacherActor(2)); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("PendingUsers() as teacher: error = %v, want %v", err, apperrors.ErrPermissionDenied)
	}
}

func TestApproveNotePublishes(t *testing.T) {
	noteRepo := newFakeNoteRepo()
	fileStore := newFakeFileStore()
	noteSvc := newTestNoteService(noteRepo, fileStore)

	note, err := noteSvc.Upload(context.Background(), teacherActor(7), uploadReq("Week 3"), pdfHeader())
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	svc := newTestAdminService(newFakeUserRepo(), noteRepo, fileStore)

	if err := svc.ApproveNote(context.Background(), adminActor(1), note.ID); err != nil {
		t.Fatalf("ApproveNote() error = %v", err)
	}
	if note.Status != models.NoteStatusApproved {
		t.Errorf("Status = %q, want %q", note.Status, models.NoteStatusApproved)
	}

	// Idempotent
	if err := svc.ApproveNote(context.Background(), adminActor(1), note.ID); err != nil {
		t.Errorf("repeated ApproveNote() error = %v", err)
	}

	// Now visible to students
	approved, err := noteSvc.ListApproved(context.Background(), studentActor(3))
	if err != nil {
		t.Fatalf("ListApproved() error = %v", err)
	}
	if len(approved) != 1 {
		t.Errorf("len(approved) = %d, want 1", len(approved))
	}
}

func TestApproveNoteDeniedForTeacher(t *testing.T) {
	noteRepo := newFakeNoteRepo()
	fileStore := newFakeFileStore()
	noteSvc := newTestNoteService(noteRepo, fileStore)

	note, err := noteSvc.Upload(context.Background(), teacherActor(7), uploadReq("Week 3"), pdfHeader())
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	svc := newTestAdminService(newFakeUserRepo(), noteRepo, fileStore)

	err = svc.ApproveNote(context.Background(), teacherActor(7), note.ID)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("ApproveNote() error = %v, want %v", err, apperrors.ErrPermissionDenied)
	}
	if note.Status != models.NoteStatusPending {
		t.Error("denied approval changed the note status")
	}
}

func TestPendingNotesListing(t *testing.T) {
	noteRepo := newFakeNoteRepo()
	fileStore := newFakeFileStore()
	noteSvc := newTestNoteService(noteRepo, fileStore)
	svc := newTestAdminService(newFakeUserRepo(), noteRepo, fileStore)

	note, err := noteSvc.Upload(context.Background(), teacherActor(7), uploadReq("Week 3"), pdfHeader())
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	pending, err := svc.PendingNotes(context.Background(), adminActor(1))
	if err != nil {
		t.Fatalf("PendingNotes() error = %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("len(pending) = %d, want 1", len(pending))
	}

	if err := svc.ApproveNote(context.Background(), adminActor(1), note.ID); err != nil {
		t.Fatalf("ApproveNote() error = %v", err)
	}

	pending, err = svc.PendingNotes(context.Background(), adminActor(1))
	if err != nil {
		t.Fatalf("PendingNotes() error = %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("len(pending) after approval = %d, want 0", len(pending))
	}
}
