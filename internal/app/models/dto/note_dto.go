package dto

import (
	"time"

	"github.com/ecetin/edushare/internal/app/models"
)

// UploadNoteRequest carries the metadata part of a note upload. The file part
// travels separately as multipart form data under the "file" key.
type UploadNoteRequest struct {
	Title       string `json:"title" form:"title" binding:"required"`
	Description string `json:"description" form:"description"`
	Course      string `json:"course" form:"course"`
}

// NoteResponse is the public view of a note record
type NoteResponse struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Course      string            `json:"course,omitempty"`
	FileName    string            `json:"fileName"`
	ViewPath    string            `json:"viewPath"`
	FileSize    int64             `json:"fileSize"`
	ContentType string            `json:"contentType"`
	Status      models.NoteStatus `json:"status"`
	OwnerID     int64             `json:"ownerId"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// NewNoteResponse builds a note view from a note model
func NewNoteResponse(note *models.Note) *NoteResponse {
	resp := &NoteResponse{
		ID:          note.ID,
		Title:       note.Title,
		FileName:    note.FileName,
		ViewPath:    "/view/" + note.StoredName,
		FileSize:    note.FileSize,
		ContentType: note.ContentType,
		Status:      note.Status,
		OwnerID:     note.UserID,
		CreatedAt:   note.CreatedAt,
	}
	if note.Description != nil {
		resp.Description = *note.Description
	}
	if note.Course != nil {
		resp.Course = *note.Course
	}
	return resp
}

// NewNoteListResponse builds note views for a list of note models
func NewNoteListResponse(notes []*models.Note) []*NoteResponse {
	out := make([]*NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, NewNoteResponse(n))
	}
	return out
}

// AdminDashboardResponse is the admin moderation view: everything awaiting a
// decision plus the already-published notes.
type AdminDashboardResponse struct {
	PendingUsers  []*UserProfile  `json:"pendingUsers"`
	PendingNotes  []*NoteResponse `json:"pendingNotes"`
	ApprovedNotes []*NoteResponse `json:"approvedNotes"`
}
