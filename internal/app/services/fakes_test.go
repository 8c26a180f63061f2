package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/ecetin/edushare/internal/app/models"
	"github.com/ecetin/edushare/internal/pkg/apperrors"
)

// fakeUserRepo is an in-memory IUserRepository for service tests
type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) addUser(u *models.User) *models.User {
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) (int64, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		if u.Username == user.Username {
			return 0, apperrors.ErrUsernameAlreadyExists
		}
	}
	r.addUser(user)
	return user.ID, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Approve(ctx context.Context, id int64) error {
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.IsApproved = true
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) ListPending(ctx context.Context) ([]*models.User, error) {
	var pending []*models.User
	for _, u := range r.users {
		if !u.IsApproved {
			pending = append(pending, u)
		}
	}
	return pending, nil
}

func (r *fakeUserRepo) HasAdmin(ctx context.Context) (bool, error) {
	for _, u := range r.users {
		if u.RoleType == models.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

// fakeNoteRepo is an in-memory INoteRepository for service tests
type fakeNoteRepo struct {
	notes     map[int64]*models.Note
	nextID    int64
	createErr error
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: map[int64]*models.Note{}, nextID: 1}
}

func (r *fakeNoteRepo) addNote(n *models.Note) *models.Note {
	n.ID = r.nextID
	r.nextID++
	r.notes[n.ID] = n
	return n
}

func (r *fakeNoteRepo) Create(ctx context.Context, note *models.Note) (int64, error) {
	if r.createErr != nil {
		return 0, r.createErr
	}
	r.addNote(note)
	return note.ID, nil
}

func (r *fakeNoteRepo) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	n, ok := r.notes[id]
	if !ok {
		return nil, apperrors.ErrNoteNotFound
	}
	return n, nil
}

func (r *fakeNoteRepo) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	n, ok := r.notes[id]
	if !ok {
		return 0, apperrors.ErrNoteNotFound
	}
	return n.UserID, nil
}

func (r *fakeNoteRepo) Approve(ctx context.Context, id int64) error {
	n, ok := r.notes[id]
	if !ok {
		return apperrors.ErrNoteNotFound
	}
	n.Status = models.NoteStatusApproved
	return nil
}

func (r *fakeNoteRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.notes[id]; !ok {
		return apperrors.ErrNoteNotFound
	}
	delete(r.notes, id)
	return nil
}

func (r *fakeNoteRepo) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Note, error) {
	var out []*models.Note
	for _, n := range r.notes {
		if n.UserID == ownerID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNoteRepo) ListApproved(ctx context.Context) ([]*models.Note, error) {
	var out []*models.Note
	for _, n := range r.notes {
		if n.Status == models.NoteStatusApproved {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNoteRepo) ListPending(ctx context.Context) ([]*models.Note, error) {
	var out []*models.Note
	for _, n := range r.notes {
		if n.Status == models.NoteStatusPending {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNoteRepo) ListStoredNamesByOwner(ctx context.Context, ownerID int64) ([]string, error) {
	var names []string
	for _, n := range r.notes {
		if n.UserID == ownerID {
			names = append(names, n.StoredName)
		}
	}
	return names, nil
}

// fakeTokenRepo is an in-memory ITokenRepository for service tests
type fakeTokenRepo struct {
	tokens map[string]*fakeToken
}

type fakeToken struct {
	userID  int64
	expiry  time.Time
	revoked bool
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*fakeToken{}}
}

func (r *fakeTokenRepo) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	if _, ok := r.tokens[token]; ok {
		return apperrors.ErrTokenInvalid
	}
	r.tokens[token] = &fakeToken{userID: userID, expiry: expiryDate}
	return nil
}

func (r *fakeTokenRepo) GetTokenByValue(ctx context.Context, token string) (int64, time.Time, bool, error) {
	t, ok := r.tokens[token]
	if !ok {
		return 0, time.Time{}, false, apperrors.ErrTokenNotFound
	}
	if t.revoked {
		return 0, time.Time{}, false, apperrors.ErrTokenRevoked
	}
	if t.expiry.Before(time.Now()) {
		return 0, time.Time{}, false, apperrors.ErrTokenExpired
	}
	return t.userID, t.expiry, t.revoked, nil
}

func (r *fakeTokenRepo) RevokeToken(ctx context.Context, token string) error {
	t, ok := r.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	t.revoked = true
	return nil
}

func (r *fakeTokenRepo) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	for _, t := range r.tokens {
		if t.userID == userID {
			t.revoked = true
		}
	}
	return nil
}

func (r *fakeTokenRepo) liveTokenCount(userID int64) int {
	count := 0
	for _, t := range r.tokens {
		if t.userID == userID && !t.revoked {
			count++
		}
	}
	return count
}

// fakeFileStore records saved and removed files without touching disk
type fakeFileStore struct {
	files   map[string]bool
	nextID  int
	saveErr error
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: map[string]bool{}}
}

func (s *fakeFileStore) Save(fileHeader *multipart.FileHeader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	if fileHeader == nil {
		return "", fmt.Errorf("no file header provided")
	}
	s.nextID++
	name := fmt.Sprintf("stored-%d%s", s.nextID, filepath.Ext(fileHeader.Filename))
	s.files[name] = true
	return name, nil
}

func (s *fakeFileStore) Remove(storedName string) error {
	delete(s.files, storedName)
	return nil
}

func (s *fakeFileStore) Path(storedName string) string {
	if !s.files[storedName] {
		return ""
	}
	return "/fake/" + storedName
}
