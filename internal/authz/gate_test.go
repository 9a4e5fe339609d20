package authz

import (
	"errors"
	"testing"

	"github.com/scholar-stream/scholarship-service/internal/models"
)

func TestAuthorize_Unauthenticated(t *testing.T) {
	ops := []Operation{ReadOwn, ReadAll, WriteOwn, WriteAdmin, DeleteOwn, DeletePrivileged}
	for _, op := range ops {
		err := Authorize(models.RoleSuperAdmin, op, Ownership{SubjectEmail: ""})
		if !errors.Is(err, ErrUnauthenticated) {
			t.Errorf("op %s: expected ErrUnauthenticated for missing subject, got %v", op, err)
		}
	}
}

func TestAuthorize_RoleMatrix(t *testing.T) {
	const subject = "alice@example.com"

	tests := []struct {
		name  string
		role  models.UserRole
		op    Operation
		owner string
		want  error
	}{
		// write-admin requires admin or super-admin
		{"student write-admin", models.RoleStudent, WriteAdmin, subject, ErrForbidden},
		{"moderator write-admin", models.RoleModerator, WriteAdmin, subject, ErrForbidden},
		{"admin write-admin", models.RoleAdmin, WriteAdmin, subject, nil},
		{"super-admin write-admin", models.RoleSuperAdmin, WriteAdmin, subject, nil},

		// read-all requires moderator or above
		{"student read-all", models.RoleStudent, ReadAll, "", ErrForbidden},
		{"moderator read-all", models.RoleModerator, ReadAll, "", nil},
		{"admin read-all", models.RoleAdmin, ReadAll, "", nil},

		// delete-privileged requires moderator or above
		{"student delete-privileged", models.RoleStudent, DeletePrivileged, "other@example.com", ErrForbidden},
		{"moderator delete-privileged", models.RoleModerator, DeletePrivileged, "other@example.com", nil},

		// read-own: owner always, moderators may read others
		{"owner read-own", models.RoleStudent, ReadOwn, subject, nil},
		{"owner read-own case-insensitive", models.RoleStudent, ReadOwn, "Alice@Example.com", nil},
		{"non-owner student read-own", models.RoleStudent, ReadOwn, "other@example.com", ErrForbidden},
		{"non-owner moderator read-own", models.RoleModerator, ReadOwn, "other@example.com", nil},
		{"non-owner admin read-own", models.RoleAdmin, ReadOwn, "other@example.com", nil},

		// write-own and delete-own: owner only, no role override
		{"owner write-own", models.RoleStudent, WriteOwn, subject, nil},
		{"non-owner write-own", models.RoleStudent, WriteOwn, "other@example.com", ErrForbidden},
		{"admin non-owner write-own", models.RoleAdmin, WriteOwn, "other@example.com", ErrForbidden},
		{"owner delete-own", models.RoleStudent, DeleteOwn, subject, nil},
		{"moderator non-owner delete-own", models.RoleModerator, DeleteOwn, "other@example.com", ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.role, tt.op, Ownership{SubjectEmail: subject, ResourceOwner: tt.owner})
			if !errors.Is(err, tt.want) && !(err == nil && tt.want == nil) {
				t.Errorf("Authorize(%s, %s) = %v, want %v", tt.role, tt.op, err, tt.want)
			}
		})
	}
}

func TestNormalizeRole_DefaultsToStudent(t *testing.T) {
	cases := map[string]models.UserRole{
		"":            models.RoleStudent,
		"STUDENT":     models.RoleStudent,
		"Admin":       models.RoleAdmin,
		"MODERATOR":   models.RoleModerator,
		"Super-Admin": models.RoleSuperAdmin,
		"superadmin":  models.RoleSuperAdmin,
		"root":        models.RoleStudent,
		"owner":       models.RoleStudent,
	}
	for raw, want := range cases {
		if got := models.NormalizeRole(raw); got != want {
			t.Errorf("NormalizeRole(%q) = %s, want %s", raw, got, want)
		}
	}
}
