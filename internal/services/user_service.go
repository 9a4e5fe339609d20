package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/scholar-stream/scholarship-service/internal/authz"
	"github.com/scholar-stream/scholarship-service/internal/models"
	"github.com/scholar-stream/scholarship-service/internal/repositories"
	"github.com/scholar-stream/scholarship-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// Register creates a user record. Registration is public and the role is
// always student; privilege is only ever granted by an admin afterwards.
func (s *userService) Register(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.repo.User().ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	user := &models.User{
		Name:     req.Name,
		Email:    email,
		Role:     models.RoleStudent,
		PhotoURL: req.PhotoURL,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", "email", user.Email)
	return user, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string, actor Actor) (*models.User, error) {
	if err := authz.Authorize(actor.Role, authz.ReadOwn, authz.Ownership{
		SubjectEmail:  actor.Email,
		ResourceOwner: email,
	}); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetRole reads the role store directly. Any authenticated subject may
// ask for their own role; reading another subject's role needs moderator
// privileges.
func (s *userService) GetRole(ctx context.Context, email string, actor Actor) (models.UserRole, error) {
	if err := authz.Authorize(actor.Role, authz.ReadOwn, authz.Ownership{
		SubjectEmail:  actor.Email,
		ResourceOwner: email,
	}); err != nil {
		return "", err
	}

	return s.repo.User().GetRole(ctx, email)
}

func (s *userService) List(ctx context.Context, filters repositories.UserFilters, actor Actor) (*UserListResponse, error) {
	if err := authz.Authorize(actor.Role, authz.WriteAdmin, authz.Ownership{SubjectEmail: actor.Email}); err != nil {
		return nil, err
	}

	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &UserListResponse{
		Users: users,
		Total: total,
		Page:  pageFromOffset(filters.Offset, filters.Limit),
		Size:  filters.Limit,
	}, nil
}

func (s *userService) UpdateRole(ctx context.Context, id uint, req *UpdateUserRoleRequest, actor Actor) (*models.User, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	if err := authz.Authorize(actor.Role, authz.WriteAdmin, authz.Ownership{SubjectEmail: actor.Email}); err != nil {
		return nil, err
	}

	role := models.NormalizeRole(req.Role)

	// Only a super-admin may mint another super-admin.
	if role == models.RoleSuperAdmin && actor.Role != models.RoleSuperAdmin {
		return nil, NewPermissionError(actor.Email, "user", "update-role", "only a super-admin can grant super-admin")
	}

	if err := s.repo.User().UpdateRole(ctx, id, role); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	s.logger.Info("User role updated", "user_id", id, "role", role, "by", actor.Email)

	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uint, actor Actor) error {
	if err := authz.Authorize(actor.Role, authz.WriteAdmin, authz.Ownership{SubjectEmail: actor.Email}); err != nil {
		return err
	}

	if err := s.repo.User().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("User deleted", "user_id", id, "by", actor.Email)
	return nil
}

func pageFromOffset(offset, limit int) int {
	if limit <= 0 {
		return 1
	}
	return offset/limit + 1
}
