package auth

import (
	"github.com/ecetin/edushare/internal/app/models"
)

// Action names a request an actor can make against the portal
type Action string

const (
	ActionUploadNote        Action = "note.upload"
	ActionViewNote          Action = "note.view"
	ActionApproveNote       Action = "note.approve"
	ActionDeleteNote        Action = "note.delete"
	ActionListOwnNotes      Action = "note.list_own"
	ActionListApprovedNotes Action = "note.list_approved"
	ActionListPendingNotes  Action = "note.list_pending"
	ActionApproveUser       Action = "user.approve"
	ActionDeleteUser        Action = "user.delete"
	ActionListPendingUsers  Action = "user.list_pending"
	ActionViewFile          Action = "file.view"
)

// Actor is the authenticated identity making a request. A zero Actor is the
// anonymous actor.
type Actor struct {
	ID            int64
	Username      string
	Role          models.RoleType
	Authenticated bool
}

// ResourceKind names the type of resource an action targets
type ResourceKind string

const (
	ResourceNone ResourceKind = ""
	ResourceUser ResourceKind = "user"
	ResourceNote ResourceKind = "note"
)

// Resource describes the target of an action. For note resources OwnerID and
// Status carry the fields the rules depend on.
type Resource struct {
	Kind    ResourceKind
	ID      int64
	OwnerID int64
	Status  models.NoteStatus
}

// Decision is the outcome of a policy evaluation
type Decision bool

const (
	Allow Decision = true
	Deny  Decision = false
)

// Decide is the authorization policy: a pure function from (actor, action,
// resource) to Allow or Deny. Rules in precedence order:
//
//  1. unauthenticated actors are denied everything
//  2. note deletion is allowed to the owner or an admin, regardless of role
//  3. admins may perform all moderation and view-all actions
//  4. teachers may upload and see their own notes
//  5. students may see approved notes
//  6. everything else is denied
func Decide(actor Actor, action Action, res Resource) Decision {
	if !actor.Authenticated {
		return Deny
	}

	// Owner-or-admin special case for note deletion
	if action == ActionDeleteNote && res.Kind == ResourceNote {
		if actor.Role == models.RoleAdmin || actor.ID == res.OwnerID {
			return Allow
		}
		return Deny
	}

	switch actor.Role {
	case models.RoleAdmin:
		switch action {
		case ActionApproveUser, ActionDeleteUser, ActionListPendingUsers,
			ActionApproveNote, ActionListPendingNotes,
			ActionListApprovedNotes, ActionViewFile:
			return Allow
		case ActionViewNote:
			// Admins see every note, pending included
			return Allow
		}

	case models.RoleTeacher:
		switch action {
		case ActionUploadNote, ActionListOwnNotes, ActionViewFile:
			return Allow
		case ActionViewNote:
			// Teachers see their own notes in any status, and published ones
			if res.OwnerID == actor.ID || res.Status == models.NoteStatusApproved {
				return Allow
			}
		}

	case models.RoleStudent:
		switch action {
		case ActionListApprovedNotes, ActionViewFile:
			return Allow
		case ActionViewNote:
			if res.Status == models.NoteStatusApproved {
				return Allow
			}
		}
	}

	return Deny
}
