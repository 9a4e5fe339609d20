package services

import (
	"context"
	"errors"
	"testing"

	"github.com/scholar-stream/scholarship-service/internal/authz"
	"github.com/scholar-stream/scholarship-service/internal/models"
	"github.com/scholar-stream/scholarship-service/internal/validator"
)

func newUserFixture(t *testing.T) (*fakeRepository, UserService) {
	t.Helper()
	repo := newFakeRepository()
	svc := NewUserService(repo, testLogger(), validator.New())
	return repo, svc
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("new users are always students", func(t *testing.T) {
		_, svc := newUserFixture(t)

		user, err := svc.Register(ctx, &CreateUserRequest{Name: "Alice", Email: "Alice@Example.com"})
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if user.Role != models.RoleStudent {
			t.Errorf("role = %s, want student", user.Role)
		}
		if user.Email != "alice@example.com" {
			t.Errorf("email not lowercased: %q", user.Email)
		}
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, svc := newUserFixture(t)

		if _, err := svc.Register(ctx, &CreateUserRequest{Name: "Alice", Email: "alice@example.com"}); err != nil {
			t.Fatalf("first Register() error = %v", err)
		}
		_, err := svc.Register(ctx, &CreateUserRequest{Name: "Alice2", Email: "ALICE@example.com"})
		if !errors.Is(err, ErrUserAlreadyExists) {
			t.Errorf("Register() error = %v, want ErrUserAlreadyExists", err)
		}
	})

	t.Run("invalid email fails validation", func(t *testing.T) {
		_, svc := newUserFixture(t)

		_, err := svc.Register(ctx, &CreateUserRequest{Name: "Alice", Email: "not-an-email"})
		var verrs ValidationErrors
		if !errors.As(err, &verrs) {
			t.Errorf("Register() error = %v, want ValidationErrors", err)
		}
	})
}

func TestUserService_GetRole(t *testing.T) {
	ctx := context.Background()
	repo, svc := newUserFixture(t)
	_ = repo.User().Create(ctx, &models.User{Name: "Mod", Email: "mod@example.com", Role: models.RoleModerator})

	t.Run("missing record defaults to student", func(t *testing.T) {
		role, err := svc.GetRole(ctx, "alice@example.com", studentActor)
		if err != nil {
			t.Fatalf("GetRole() error = %v", err)
		}
		if role != models.RoleStudent {
			t.Errorf("role = %s, want student", role)
		}
	})

	t.Run("moderator reads any role", func(t *testing.T) {
		role, err := svc.GetRole(ctx, "mod@example.com", moderatorActor)
		if err != nil {
			t.Fatalf("GetRole() error = %v", err)
		}
		if role != models.RoleModerator {
			t.Errorf("role = %s, want moderator", role)
		}
	})

	t.Run("student cannot read another subject's role", func(t *testing.T) {
		_, err := svc.GetRole(ctx, "mod@example.com", studentActor)
		if !errors.Is(err, authz.ErrForbidden) {
			t.Errorf("GetRole() error = %v, want ErrForbidden", err)
		}
	})
}

func TestUserService_UpdateRole(t *testing.T) {
	ctx := context.Background()
	superAdmin := Actor{Email: "root@example.com", Role: models.RoleSuperAdmin}

	t.Run("admin promotes to moderator", func(t *testing.T) {
		repo, svc := newUserFixture(t)
		u := &models.User{Name: "Alice", Email: "alice@example.com", Role: models.RoleStudent}
		_ = repo.User().Create(ctx, u)

		updated, err := svc.UpdateRole(ctx, u.ID, &UpdateUserRoleRequest{Role: "moderator"}, adminActor)
		if err != nil {
			t.Fatalf("UpdateRole() error = %v", err)
		}
		if updated.Role != models.RoleModerator {
			t.Errorf("role = %s, want moderator", updated.Role)
		}
	})

	t.Run("moderator cannot grant roles", func(t *testing.T) {
		repo, svc := newUserFixture(t)
		u := &models.User{Name: "Alice", Email: "alice@example.com"}
		_ = repo.User().Create(ctx, u)

		_, err := svc.UpdateRole(ctx, u.ID, &UpdateUserRoleRequest{Role: "moderator"}, moderatorActor)
		if !errors.Is(err, authz.ErrForbidden) {
			t.Errorf("UpdateRole() error = %v, want ErrForbidden", err)
		}
	})

	t.Run("only super-admin grants super-admin", func(t *testing.T) {
		repo, svc := newUserFixture(t)
		u := &models.User{Name: "Alice", Email: "alice@example.com"}
		_ = repo.User().Create(ctx, u)

		_, err := svc.UpdateRole(ctx, u.ID, &UpdateUserRoleRequest{Role: "super-admin"}, adminActor)
		var perr *PermissionError
		if !errors.As(err, &perr) {
			t.Fatalf("UpdateRole() error = %v, want PermissionError", err)
		}

		updated, err := svc.UpdateRole(ctx, u.ID, &UpdateUserRoleRequest{Role: "super-admin"}, superAdmin)
		if err != nil {
			t.Fatalf("UpdateRole() as super-admin error = %v", err)
		}
		if updated.Role != models.RoleSuperAdmin {
			t.Errorf("role = %s, want super-admin", updated.Role)
		}
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		_, svc := newUserFixture(t)

		_, err := svc.UpdateRole(ctx, 99, &UpdateUserRoleRequest{Role: "admin"}, adminActor)
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("UpdateRole() error = %v, want ErrUserNotFound", err)
		}
	})
}
