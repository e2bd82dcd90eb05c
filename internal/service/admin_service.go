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

// CreateAdminInput carries the fields a superadmin supplies when provisioning
// an admin account. The password is generated, never chosen by the caller.
type CreateAdminInput struct {
	Email     string
	FirstName string
	LastName  string
}

// UpdateAdminInput holds optional field changes; nil means keep.
type UpdateAdminInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Active    *bool
	Verified  *bool
}

// UpdateProfileInput holds self-service profile changes; nil means keep.
type UpdateProfileInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Password  *string
}

// AdminService implements superadmin management of admin accounts in the
// primary table.
type AdminService struct {
	users      repository.UserRepository
	managed    repository.ManagedUserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.AuthConfig
}

// NewAdminService builds the service.
func NewAdminService(cfg config.AuthConfig, users repository.UserRepository, managed repository.ManagedUserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AdminService {
	return &AdminService{
		users:      users,
		managed:    managed,
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// CreateAdmin provisions an admin account with a generated password, records
// who created it and emails the credentials. The account starts active and
// verified since a superadmin vouched for it.
func (s *AdminService) CreateAdmin(ctx context.Context, actorID string, input CreateAdminInput) (*domain.User, error) {
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

	admin := &domain.User{
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Active:       true,
		Verified:     true,
	}
	if actorID != "" {
		admin.CreatedByID = &actorID
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:  events.EventCredentialsIssued,
		Email: admin.Email,
		Payload: map[string]any{
			"password":   password,
			"first_name": admin.FirstName,
			"last_name":  admin.LastName,
			"role_name":  domain.RoleAdmin.DisplayName(),
		},
	})
	s.logger.Info("admin created",
		zap.String("email", admin.Email), zap.String("created_by", actorID))
	return admin, nil
}

// ListAdmins returns all admin accounts, newest first.
func (s *AdminService) ListAdmins(ctx context.Context) ([]domain.User, error) {
	return s.users.ListByRole(ctx, domain.RoleAdmin)
}

// CountAdmins returns the number of admin accounts.
func (s *AdminService) CountAdmins(ctx context.Context) (int64, error) {
	return s.users.CountByRole(ctx, domain.RoleAdmin)
}

// GetAdmin fetches one admin by id. Non-admin rows read as missing.
func (s *AdminService) GetAdmin(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewNotFound("admin", nil)
		}
		return nil, err
	}
	if user.Role != domain.RoleAdmin {
		return nil, apperrors.NewNotFound("admin", nil)
	}
	return user, nil
}

// UpdateAdmin applies the provided changes to an admin account.
func (s *AdminService) UpdateAdmin(ctx context.Context, id string, input UpdateAdminInput) (*domain.User, error) {
	user, err := s.GetAdmin(ctx, id)
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
	if input.Active != nil {
		user.Active = *input.Active
	}
	if input.Verified != nil {
		user.Verified = *input.Verified
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Profile fetches the caller's own primary-table account. No role shield:
// the superadmin reads their own row through here as well.
func (s *AdminService) Profile(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewNotFound("account", nil)
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies self-service changes to the caller's own account.
// A new password is hashed before storage; an email change is checked for
// duplicates across both principal tables.
func (s *AdminService) UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.Profile(ctx, id)
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
	if input.Password != nil && *input.Password != "" {
		hash, err := auth.HashPassword(*input.Password, s.cfg.BcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAdmin removes an admin account.
func (s *AdminService) DeleteAdmin(ctx context.Context, id string) error {
	if _, err := s.GetAdmin(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}
