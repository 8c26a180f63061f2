package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecetin/edushare/internal/app/models"
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Approve(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	ListPending(ctx context.Context) ([]*models.User, error)
	HasAdmin(ctx context.Context) (bool, error)
}

// INoteRepository defines the interface for note-related database operations
type INoteRepository interface {
	Create(ctx context.Context, note *models.Note) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Note, error)
	GetOwnerID(ctx context.Context, id int64) (int64, error)
	Approve(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Note, error)
	ListApproved(ctx context.Context) ([]*models.Note, error)
	ListPending(ctx context.Context) ([]*models.Note, error)
	ListStoredNamesByOwner(ctx context.Context, ownerID int64) ([]string, error)
}

// ITokenRepository defines the interface for refresh token persistence
type ITokenRepository interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, time.Time, bool, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository  *UserRepository
	NoteRepository  *NoteRepository
	TokenRepository *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:  NewUserRepository(db),
		NoteRepository:  NewNoteRepository(db),
		TokenRepository: NewTokenRepository(db),
	}
}
