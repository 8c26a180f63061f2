package models

import "time"

// Note represents an uploaded document's metadata. The file bytes live on disk
// under StoredName; the row never carries content.
type Note struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description,omitempty" db:"description"`
	Course      *string    `json:"course,omitempty" db:"course"`
	FileName    string     `json:"fileName" db:"file_name"`     // original upload name
	StoredName  string     `json:"storedName" db:"stored_name"` // opaque on-disk name
	FileSize    int64      `json:"fileSize" db:"file_size"`
	ContentType string     `json:"contentType" db:"content_type"`
	Status      NoteStatus `json:"status" db:"status"`
	UserID      int64      `json:"userId" db:"user_id"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}
