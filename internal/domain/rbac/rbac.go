// Package rbac decides whether a user may perform an action on a resource.
//
// All permission rules of the API live in Authorize; handlers and services
// never compare roles themselves.
package rbac

import (
	"yamdb/proj/internal/domain/errs"
	"yamdb/proj/internal/domain/models"
)

type Action int

const (
	ActionRead Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionRead:
		return "read"
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	}
	return "unknown"
}

type Kind int

const (
	// KindCatalog covers titles, categories and genres.
	KindCatalog Kind = iota
	// KindContent covers reviews and comments, owned by their author.
	KindContent
	// KindUsers is the admin-facing user management.
	KindUsers
	// KindProfile is the caller's own profile.
	KindProfile
)

type Target struct {
	Kind    Kind
	OwnerID int64
}

func Catalog() Target {
	return Target{Kind: KindCatalog}
}

func Content(ownerID int64) Target {
	return Target{Kind: KindContent, OwnerID: ownerID}
}

func Users() Target {
	return Target{Kind: KindUsers}
}

func Profile() Target {
	return Target{Kind: KindProfile}
}

// Authorize returns nil when user may perform action on target,
// errs.ErrUnauthenticated when the caller must log in first and
// errs.ErrForbidden otherwise.
func Authorize(user *models.User, action Action, target Target) error {
	publicRead := action == ActionRead && (target.Kind == KindCatalog || target.Kind == KindContent)
	if publicRead {
		return nil
	}
	if user.IsAnonymous() {
		return errs.ErrUnauthenticated
	}
	switch target.Kind {
	case KindCatalog, KindUsers:
		if user.IsAdmin() {
			return nil
		}
	case KindProfile:
		if action == ActionRead || action == ActionUpdate {
			return nil
		}
	case KindContent:
		if action == ActionCreate || user.IsModerator() || target.OwnerID == user.ID {
			return nil
		}
	}
	return errs.ErrForbidden
}
