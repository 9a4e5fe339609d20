package authz

import (
	"errors"
	"strings"

	"github.com/scholar-stream/scholarship-service/internal/models"
)

var (
	ErrUnauthenticated = errors.New("authz: no verified subject")
	ErrForbidden       = errors.New("authz: forbidden")
)

// Operation classifies what a request is trying to do. The gate only
// reasons about these classes, never about concrete endpoints.
type Operation int

const (
	ReadOwn Operation = iota
	ReadAll
	WriteOwn
	WriteAdmin
	DeleteOwn
	DeletePrivileged
)

func (op Operation) String() string {
	switch op {
	case ReadOwn:
		return "read-own"
	case ReadAll:
		return "read-all"
	case WriteOwn:
		return "write-own"
	case WriteAdmin:
		return "write-admin"
	case DeleteOwn:
		return "delete-own"
	case DeletePrivileged:
		return "delete-privileged"
	default:
		return "unknown"
	}
}

// Ownership identifies the verified subject and, for ownership-scoped
// operations, the owner of the target resource. Emails compare
// case-insensitively.
type Ownership struct {
	SubjectEmail  string
	ResourceOwner string
}

func (o Ownership) isOwner() bool {
	return o.SubjectEmail != "" &&
		strings.EqualFold(strings.TrimSpace(o.SubjectEmail), strings.TrimSpace(o.ResourceOwner))
}

// Authorize decides whether a subject with the given role may perform an
// operation. It is a pure function: rules are evaluated in order and deny
// always overrides allow. A missing subject is Unauthenticated regardless
// of role; an unknown role has already been normalized to student by the
// role store and is never elevated here.
func Authorize(role models.UserRole, op Operation, own Ownership) error {
	if own.SubjectEmail == "" {
		return ErrUnauthenticated
	}

	switch op {
	case WriteAdmin:
		if !role.IsAdmin() {
			return ErrForbidden
		}
	case ReadAll, DeletePrivileged:
		if !role.IsModerator() {
			return ErrForbidden
		}
	case ReadOwn:
		// Moderators and admins may read any subject's resources.
		if !own.isOwner() && !role.IsModerator() {
			return ErrForbidden
		}
	case WriteOwn, DeleteOwn:
		// Ownership-scoped mutations have no role override; privileged
		// deletion goes through DeletePrivileged instead.
		if !own.isOwner() {
			return ErrForbidden
		}
	default:
		return ErrForbidden
	}

	return nil
}
