package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/pastor-mobile/church-admin-service/internal/auth"
	"github.com/pastor-mobile/church-admin-service/internal/config"
	"github.com/pastor-mobile/church-admin-service/internal/domain"
	"github.com/pastor-mobile/church-admin-service/internal/events"
	"github.com/pastor-mobile/church-admin-service/internal/repository"
	apperrors "github.com/pastor-mobile/church-admin-service/pkg/util"
)

// LoginResult bundles the authenticated principal with its token pair.
type LoginResult struct {
	Principal    *domain.Principal
	AccessToken  string
	RefreshToken string
	TokenType    string
}

// TokenPair is the result of a refresh exchange.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

// SignupInput carries admin self-registration fields.
type SignupInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// AuthService owns authentication: it resolves principals across both account
// tables, verifies credentials, issues tokens and runs the OTP lifecycle.
type AuthService struct {
	users      repository.UserRepository
	managed    repository.ManagedUserRepository
	roles      repository.RoleRepository
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.AuthConfig
}

// AuthDependencies encapsulates repo requirements for the auth service.
type AuthDependencies struct {
	UserRepo        repository.UserRepository
	ManagedUserRepo repository.ManagedUserRepository
	RoleRepo        repository.RoleRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, tokens *auth.TokenManager, deps AuthDependencies, dispatcher events.Dispatcher, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		managed:    deps.ManagedUserRepo,
		roles:      deps.RoleRepo,
		tokens:     tokens,
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// Authenticate resolves an email/password pair to a principal. The primary
// table is checked first, then the directory table. Inactive accounts and
// directory accounts without a password are surfaced distinctly so callers can
// tell the user what happened; they never degrade into "not found".
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.Principal, error) {
	foundInPrimary := false

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		foundInPrimary = true
		if !user.Active {
			return nil, domain.ErrAccountInactive
		}
		if user.PasswordHash != "" && auth.CheckPassword(user.PasswordHash, password) {
			return s.primaryPrincipal(ctx, user), nil
		}
	case !isNoRows(err):
		return nil, err
	}

	managed, err := s.managed.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if !managed.Active {
			return nil, domain.ErrAccountInactive
		}
		if managed.PasswordHash == nil || *managed.PasswordHash == "" {
			return nil, domain.ErrCredentialsNotSet
		}
		if auth.CheckPassword(*managed.PasswordHash, password) {
			return domain.PrincipalFromManagedUser(managed), nil
		}
		return nil, domain.ErrInvalidCredentials
	case !isNoRows(err):
		return nil, err
	}

	if foundInPrimary {
		return nil, domain.ErrInvalidCredentials
	}
	return nil, domain.ErrAccountNotFound
}

// LoadPrincipal resolves an id to the first active match across both tables.
func (s *AuthService) LoadPrincipal(ctx context.Context, id string) (*domain.Principal, error) {
	user, err := s.users.GetByID(ctx, id)
	switch {
	case err == nil:
		if user.Active {
			return s.primaryPrincipal(ctx, user), nil
		}
	case !isNoRows(err):
		return nil, err
	}

	managed, err := s.managed.GetByID(ctx, id)
	switch {
	case err == nil:
		if managed.Active {
			return domain.PrincipalFromManagedUser(managed), nil
		}
	case !isNoRows(err):
		return nil, err
	}

	return nil, domain.ErrAccountNotFound
}

// primaryPrincipal normalizes a primary account row. The users table has no
// permissions column, so permissions come from the role definition.
func (s *AuthService) primaryPrincipal(ctx context.Context, user *domain.User) *domain.Principal {
	var permissions *string
	if def, err := s.roles.GetByRole(ctx, user.Role); err == nil {
		permissions = def.Permissions
	}
	return domain.PrincipalFromUser(user, permissions)
}

// Login authenticates any non-superadmin account from either table and issues
// a token pair. Unverified admins are rejected until they confirm the OTP.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	principal, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if principal.Role == domain.RoleSuperadmin {
		return nil, apperrors.NewForbidden("use the superadmin login endpoint")
	}
	if principal.Variant == domain.PrincipalVariantUser &&
		principal.Role == domain.RoleAdmin && !principal.Verified {
		return nil, domain.ErrAccountNotVerified
	}

	return s.issueTokens(principal)
}

// SuperadminLogin only accepts the configured superadmin credentials and
// provisions the superadmin row on first use.
func (s *AuthService) SuperadminLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	if s.cfg.SuperadminEmail == "" ||
		email != s.cfg.SuperadminEmail || password != s.cfg.SuperadminPassword {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.EnsureSuperadmin(ctx); err != nil {
		return nil, err
	}
	user, err := s.users.GetByEmail(ctx, s.cfg.SuperadminEmail)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(s.primaryPrincipal(ctx, user))
}

// EnsureSuperadmin creates the superadmin account from configuration if it
// does not exist yet. Called at startup and on superadmin login.
func (s *AuthService) EnsureSuperadmin(ctx context.Context) error {
	if s.cfg.SuperadminEmail == "" || s.cfg.SuperadminPassword == "" {
		s.logger.Warn("superadmin credentials not configured; skipping bootstrap")
		return nil
	}

	_, err := s.users.GetByEmail(ctx, s.cfg.SuperadminEmail)
	if err == nil {
		return nil
	}
	if !isNoRows(err) {
		return err
	}

	hash, err := auth.HashPassword(s.cfg.SuperadminPassword, s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	superadmin := &domain.User{
		Email:        s.cfg.SuperadminEmail,
		FirstName:    "super",
		LastName:     "admin",
		PasswordHash: hash,
		Role:         domain.RoleSuperadmin,
		Active:       true,
		Verified:     true,
	}
	if err := s.users.Create(ctx, superadmin); err != nil {
		return err
	}
	s.logger.Info("superadmin initialized", zap.String("email", s.cfg.SuperadminEmail))
	return nil
}

// AdminSignup registers a new unverified admin and emails a verification OTP.
// The email must be free in both account tables.
func (s *AuthService) AdminSignup(ctx context.Context, input SignupInput) error {
	if err := ensureEmailFree(ctx, s.users, s.managed, input.Email); err != nil {
		return err
	}

	hash, err := auth.HashPassword(input.Password, s.cfg.BcryptCost)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Active:       true,
		Verified:     false,
	}
	code, err := s.attachOTP(admin)
	if err != nil {
		return err
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:  events.EventAdminSignedUp,
		Email: admin.Email,
		Payload: map[string]any{
			"otp_code":         code,
			"validity_minutes": s.cfg.OTPValidityMinutes,
		},
	})
	return nil
}

// ForgotPassword attaches a fresh reset OTP to the matching admin account.
// Unknown emails succeed silently so the endpoint cannot be used to probe
// which accounts exist.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.reissueOTP(ctx, email, "password_reset")
}

// ResendOTP issues a fresh verification OTP, with the same anti-enumeration
// behavior as ForgotPassword.
func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	return s.reissueOTP(ctx, email, "verification")
}

func (s *AuthService) reissueOTP(ctx context.Context, email, purpose string) error {
	user, err := s.adminByEmail(ctx, email)
	if err != nil {
		if isNoRows(err) || errors.Is(err, domain.ErrAccountNotFound) {
			return nil
		}
		return err
	}

	code, err := s.attachOTP(user)
	if err != nil {
		return err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:  events.EventOTPIssued,
		Email: user.Email,
		Payload: map[string]any{
			"otp_code":         code,
			"validity_minutes": s.cfg.OTPValidityMinutes,
			"purpose":          purpose,
		},
	})
	return nil
}

// VerifyOTP marks an admin account verified and consumes the code.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) error {
	user, err := s.adminByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !auth.IsOTPValid(code, user.OTPCode, user.OTPExpiresAt) {
		return domain.ErrInvalidOrExpiredCode
	}

	user.Verified = true
	user.ClearOTP()
	return s.users.Update(ctx, user)
}

// ResetPassword sets a new password for an admin after OTP validation. The
// hash write and the OTP clear land in the same row update, so a code cannot
// be replayed if the write fails.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := s.adminByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !auth.IsOTPValid(code, user.OTPCode, user.OTPExpiresAt) {
		return domain.ErrInvalidOrExpiredCode
	}

	hash, err := auth.HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.ClearOTP()
	return s.users.Update(ctx, user)
}

// Refresh exchanges a valid refresh token for a fresh token pair. The old
// refresh token stays independently valid until it expires; there is no
// revocation.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	principal, err := s.LoadPrincipal(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	result, err := s.issueTokens(principal)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		TokenType:    result.TokenType,
	}, nil
}

func (s *AuthService) issueTokens(principal *domain.Principal) (*LoginResult, error) {
	access, _, err := s.tokens.GenerateAccessToken(principal.ID, principal.Role)
	if err != nil {
		return nil, err
	}
	refresh, _, err := s.tokens.GenerateRefreshToken(principal.ID, principal.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Principal:    principal,
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}

func (s *AuthService) attachOTP(user *domain.User) (string, error) {
	code, err := auth.GenerateOTP()
	if err != nil {
		return "", err
	}
	user.SetOTP(code, time.Now().UTC().Add(s.cfg.OTPValidity()))
	return code, nil
}

func (s *AuthService) adminByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	if user.Role != domain.RoleAdmin {
		return nil, domain.ErrAccountNotFound
	}
	return user, nil
}

// ensureEmailFree checks both account tables. Uniqueness is only enforced
// per table by the schema, so creation paths defend across variants here.
func ensureEmailFree(ctx context.Context, users repository.UserRepository, managed repository.ManagedUserRepository, email string) error {
	if _, err := users.GetByEmail(ctx, email); err == nil {
		return domain.ErrDuplicateAccount
	} else if !isNoRows(err) {
		return err
	}
	if _, err := managed.GetByEmail(ctx, email); err == nil {
		return domain.ErrDuplicateAccount
	} else if !isNoRows(err) {
		return err
	}
	return nil
}
