// Package access decides what a caller may see or change. A uuid.Nil caller
// is anonymous. Resources the caller may not see are reported as not found so
// that private rows are never confirmed to exist.
package access

import (
	"errors"

	"forms-server/internal/store"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("only the workspace owner can modify this resource")
)

func isOwner(ownerID, userID uuid.UUID) bool {
	return userID != uuid.Nil && ownerID == userID
}

// ViewWorkspace allows the owner and, for public workspaces, everyone.
func ViewWorkspace(w store.Workspace, userID uuid.UUID) error {
	if isOwner(w.OwnerID, userID) || w.IsPublic() {
		return nil
	}
	return ErrNotFound
}

// ManageWorkspace allows only the owner.
func ManageWorkspace(w store.Workspace, userID uuid.UUID) error {
	if isOwner(w.OwnerID, userID) {
		return nil
	}
	if w.IsPublic() {
		return ErrForbidden
	}
	return ErrNotFound
}

// ViewForm allows the owner of the workspace and, when the workspace is
// public and the form is not private, everyone. Anonymous submissions use the
// same rule.
func ViewForm(f store.FormScope, userID uuid.UUID) error {
	if isOwner(f.WorkspaceOwnerID, userID) {
		return nil
	}
	if f.WorkspaceVisibility == store.VisibilityPublic && !f.IsPrivate {
		return nil
	}
	return ErrNotFound
}

// ManageForm allows only the workspace owner.
func ManageForm(f store.FormScope, userID uuid.UUID) error {
	if isOwner(f.WorkspaceOwnerID, userID) {
		return nil
	}
	if ViewForm(f, userID) == nil {
		return ErrForbidden
	}
	return ErrNotFound
}
