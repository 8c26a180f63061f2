package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecetin/edushare/internal/app/models"
	"github.com/ecetin/edushare/internal/pkg/apperrors"
)

const noteColumns = `id, title, description, course, file_name, stored_name, file_size, content_type, status, user_id, created_at`

// NoteRepository handles note database operations
type NoteRepository struct {
	db *pgxpool.Pool
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{
		db: db,
	}
}

// Create inserts a new note row and returns its id. The caller must already
// have persisted the file bytes under note.StoredName.
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO notes (title, description, course, file_name, stored_name, file_size, content_type, status, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		note.Title, note.Description, note.Course, note.FileName, note.StoredName,
		note.FileSize, note.ContentType, note.Status, note.UserID).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating note: %w", err)
	}

	note.ID = id
	return id, nil
}

// GetByID retrieves a note by ID
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	note := &models.Note{}
	err := r.db.QueryRow(ctx, `
		SELECT `+noteColumns+`
		FROM notes
		WHERE id = $1`,
		id).Scan(
		&note.ID, &note.Title, &note.Description, &note.Course, &note.FileName,
		&note.StoredName, &note.FileSize, &note.ContentType, &note.Status,
		&note.UserID, &note.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, fmt.Errorf("error retrieving note: %w", err)
	}

	return note, nil
}

// GetOwnerID fetches only the owning user id, for ownership checks
func (r *NoteRepository) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	var ownerID int64
	err := r.db.QueryRow(ctx, `SELECT user_id FROM notes WHERE id = $1`, id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNoteNotFound
		}
		return 0, fmt.Errorf("error fetching note owner: %w", err)
	}

	return ownerID, nil
}

// Approve transitions a note to approved. Idempotent: re-approving an approved
// note succeeds without change.
func (r *NoteRepository) Approve(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE notes
		SET status = $1
		WHERE id = $2`,
		models.NoteStatusApproved, id)

	if err != nil {
		return fmt.Errorf("error approving note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}

	return nil
}

// Delete removes a note row; the backing file is the caller's responsibility
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}

	return nil
}

// ListByOwner returns all notes uploaded by a user, any status
func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Note, error) {
	return r.listNotes(ctx, `WHERE user_id = $1 ORDER BY created_at DESC`, ownerID)
}

// ListApproved returns all approved notes
func (r *NoteRepository) ListApproved(ctx context.Context) ([]*models.Note, error) {
	return r.listNotes(ctx, `WHERE status = $1 ORDER BY created_at DESC`, models.NoteStatusApproved)
}

// ListPending returns all notes awaiting moderation
func (r *NoteRepository) ListPending(ctx context.Context) ([]*models.Note, error) {
	return r.listNotes(ctx, `WHERE status = $1 ORDER BY created_at DESC`, models.NoteStatusPending)
}

func (r *NoteRepository) listNotes(ctx context.Context, where string, args ...interface{}) ([]*models.Note, error) {
	rows, err := r.db.Query(ctx, `SELECT `+noteColumns+` FROM notes `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(
			&note.ID, &note.Title, &note.Description, &note.Course, &note.FileName,
			&note.StoredName, &note.FileSize, &note.ContentType, &note.Status,
			&note.UserID, &note.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning note row: %w", err)
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}

// ListStoredNamesByOwner returns the stored filenames of a user's notes, used
// to clean up the file store when the user is cascade-deleted.
func (r *NoteRepository) ListStoredNamesByOwner(ctx context.Context, ownerID int64) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT stored_name FROM notes WHERE user_id = $1`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing stored names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("error scanning stored name: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}
