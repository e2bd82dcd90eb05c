package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/pastor-mobile/church-admin-service/internal/auth"
	"github.com/pastor-mobile/church-admin-service/internal/config"
	"github.com/pastor-mobile/church-admin-service/internal/domain"
	"github.com/pastor-mobile/church-admin-service/internal/events"
	"github.com/pastor-mobile/church-admin-service/internal/repository"
	apperrors "github.com/pastor-mobile/church-admin-service/pkg/util"
)

// CreateManagedUserInput carries fields for provisioning a directory account.
type CreateManagedUserInput struct {
	Email     string
	FirstName string
	LastName  string
	Role      string
}

// UpdateManagedUserInput holds optional field changes; nil means keep.
type UpdateManagedUserInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Role      *string
	Active    *bool
}

// UpdateRoleInput holds optional role definition changes.
type UpdateRoleInput struct {
	Permissions *string
	Active      *bool
}

// DirectoryService manages directory accounts and role definitions. Directory
// accounts carry a denormalized copy of their role's permissions blob; the
// copy is taken at creation and refreshed only on role reassignment, so later
// edits to a role definition do not ripple into existing accounts.
type DirectoryService struct {
	managed    repository.ManagedUserRepository
	users      repository.UserRepository
	roles      repository.RoleRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.AuthConfig
}

// NewDirectoryService builds the service.
func NewDirectoryService(cfg config.AuthConfig, managed repository.ManagedUserRepository, users repository.UserRepository, roles repository.RoleRepository, dispatcher events.Dispatcher, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{
		managed:    managed,
		users:      users,
		roles:      roles,
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// resolveRole validates that a role name is assignable: it must parse, must
// not be superadmin, and its definition must exist and be active.
func (s *DirectoryService) resolveRole(ctx context.Context, name string) (*domain.RoleDefinition, error) {
	role, ok := domain.ParseRole(name)
	if !ok {
		return nil, apperrors.NewValidationError("invalid role: "+name, nil)
	}
	if role == domain.RoleSuperadmin {
		return nil, apperrors.NewValidationError("cannot assign the superadmin role", nil)
	}

	def, err := s.roles.GetByRole(ctx, role)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, err
	}
	if !def.Active {
		return nil, domain.ErrRoleInactive
	}
	return def, nil
}

// CreateManagedUser provisions a directory account with a generated password
// and emails the credentials.
func (s *DirectoryService) CreateManagedUser(ctx context.Context, input CreateManagedUserInput) (*domain.ManagedUser, error) {
	def, err := s.resolveRole(ctx, input.Role)
	if err != nil {
		return nil, err
	}
	if err := ensureEmailFree(ctx, s.users, s.managed, input.Email); err != nil {
		return nil, err
	}

	password, err := auth.GenerateSecurePassword(auth.DefaultGeneratedPasswordLength)
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.ManagedUser{
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: &hash,
		Role:         def.Role,
		RoleID:       &def.ID,
		Permissions:  def.Permissions,
		Active:       true,
	}
	if err := s.managed.Create(ctx, user); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:  events.EventCredentialsIssued,
		Email: user.Email,
		Payload: map[string]any{
			"password":   password,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"role_name":  def.Role.DisplayName(),
		},
	})
	s.logger.Info("directory account created",
		zap.String("email", user.Email), zap.String("role", string(def.Role)))
	return user, nil
}

// ListManagedUsers returns all directory accounts except superadmin rows.
func (s *DirectoryService) ListManagedUsers(ctx context.Context) ([]domain.ManagedUser, error) {
	return s.managed.List(ctx)
}

// ListManagedUsersByRole returns directory accounts holding the given role.
func (s *DirectoryService) ListManagedUsersByRole(ctx context.Context, name string) ([]domain.ManagedUser, error) {
	role, ok := domain.ParseRole(name)
	if !ok || role == domain.RoleSuperadmin {
		return nil, apperrors.NewValidationError("invalid role: "+name, nil)
	}
	return s.managed.ListByRole(ctx, role)
}

// GetManagedUser fetches one directory account. Superadmin rows read as
// missing so they are unreachable through directory endpoints.
func (s *DirectoryService) GetManagedUser(ctx context.Context, id string) (*domain.ManagedUser, error) {
	user, err := s.managed.GetByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	if user.Role == domain.RoleSuperadmin {
		return nil, apperrors.NewNotFound("user", nil)
	}
	return user, nil
}

// UpdateManagedUser applies the provided changes. Reassigning the role
// refreshes the account's role id and permissions blob from the new role's
// definition.
func (s *DirectoryService) UpdateManagedUser(ctx context.Context, id string, input UpdateManagedUserInput) (*domain.ManagedUser, error) {
	user, err := s.GetManagedUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		if err := ensureEmailFree(ctx, s.users, s.managed, *input.Email); err != nil {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Role != nil {
		def, err := s.resolveRole(ctx, *input.Role)
		if err != nil {
			return nil, err
		}
		user.Role = def.Role
		user.RoleID = &def.ID
		user.Permissions = def.Permissions
	}
	if input.Active != nil {
		user.Active = *input.Active
	}

	if err := s.managed.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserPermissions overwrites one account's cached permissions blob.
// The role definition is untouched; this is a per-account override.
func (s *DirectoryService) UpdateUserPermissions(ctx context.Context, id string, permissions string) (*domain.ManagedUser, error) {
	user, err := s.GetManagedUser(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Permissions = &permissions
	if err := s.managed.Update(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("account permissions updated",
		zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// DeleteManagedUser removes a directory account.
func (s *DirectoryService) DeleteManagedUser(ctx context.Context, id string) error {
	if _, err := s.GetManagedUser(ctx, id); err != nil {
		return err
	}
	return s.managed.Delete(ctx, id)
}

// ListRoles returns every role definition.
func (s *DirectoryService) ListRoles(ctx context.Context) ([]domain.RoleDefinition, error) {
	return s.roles.List(ctx)
}

// GetRole fetches one role definition by name.
func (s *DirectoryService) GetRole(ctx context.Context, name string) (*domain.RoleDefinition, error) {
	role, ok := domain.ParseRole(name)
	if !ok {
		return nil, apperrors.NewValidationError("invalid role: "+name, nil)
	}
	def, err := s.roles.GetByRole(ctx, role)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, err
	}
	return def, nil
}

// UpdateRole edits a role definition's permissions blob or active flag.
// Existing directory accounts keep the blob they were stamped with.
func (s *DirectoryService) UpdateRole(ctx context.Context, name string, input UpdateRoleInput) (*domain.RoleDefinition, error) {
	def, err := s.GetRole(ctx, name)
	if err != nil {
		return nil, err
	}

	if input.Permissions != nil {
		def.Permissions = input.Permissions
	}
	if input.Active != nil {
		def.Active = *input.Active
	}

	if err := s.roles.Update(ctx, def); err != nil {
		return nil, err
	}
	return def, nil
}
