package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleTeacher RoleType = "teacher"
	RoleAdmin   RoleType = "admin"
)

// NoteStatus represents the moderation status of a note
type NoteStatus string

const (
	NoteStatusPending  NoteStatus = "pending"
	NoteStatusApproved NoteStatus = "approved"
)
