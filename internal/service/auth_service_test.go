package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pastor-mobile/church-admin-service/internal/auth"
	"github.com/pastor-mobile/church-admin-service/internal/config"
	"github.com/pastor-mobile/church-admin-service/internal/domain"
	"github.com/pastor-mobile/church-admin-service/internal/events"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:             "test-secret",
		JWTAlgorithm:          "HS256",
		AccessTokenTTLMinutes: 30,
		RefreshTokenTTLDays:   7,
		OTPValidityMinutes:    10,
		BcryptCost:            bcrypt.MinCost,
		SuperadminEmail:       "root@church.test",
		SuperadminPassword:    "root-password",
	}
}

type authFixture struct {
	svc        *AuthService
	users      *stubUserRepo
	managed    *stubManagedRepo
	roles      *stubRoleRepo
	dispatcher *recordingDispatcher
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	cfg := testAuthConfig()
	tokens, err := auth.NewTokenManager(cfg)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	users := newStubUserRepo()
	managed := newStubManagedRepo()
	roles := newStubRoleRepo()
	dispatcher := &recordingDispatcher{}

	svc := NewAuthService(cfg, tokens, AuthDependencies{
		UserRepo:        users,
		ManagedUserRepo: managed,
		RoleRepo:        roles,
	}, dispatcher, zap.NewNop())

	return &authFixture{svc: svc, users: users, managed: managed, roles: roles, dispatcher: dispatcher}
}

func (f *authFixture) seedAdmin(t *testing.T, email, password string, active, verified bool) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	admin := &domain.User{
		Email:        email,
		FirstName:    "Test",
		LastName:     "Admin",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Active:       active,
		Verified:     verified,
	}
	if err := f.users.Create(context.Background(), admin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return admin
}

func (f *authFixture) seedManaged(t *testing.T, email, password string, active bool) *domain.ManagedUser {
	t.Helper()
	user := &domain.ManagedUser{
		Email:     email,
		FirstName: "Test",
		LastName:  "Staff",
		Role:      domain.RolePastorStaff,
		Active:    active,
	}
	if password != "" {
		hash, err := auth.HashPassword(password, bcrypt.MinCost)
		if err != nil {
			t.Fatalf("HashPassword: %v", err)
		}
		user.PasswordHash = &hash
	}
	if err := f.managed.Create(context.Background(), user); err != nil {
		t.Fatalf("seed managed: %v", err)
	}
	return user
}

func TestAuthenticateOutcomes(t *testing.T) {
	f := newAuthFixture(t)
	f.seedAdmin(t, "active@church.test", "pass-1", true, true)
	f.seedAdmin(t, "inactive@church.test", "pass-2", false, true)
	f.seedManaged(t, "staff@church.test", "pass-3", true)
	f.seedManaged(t, "nohash@church.test", "", true)
	f.seedManaged(t, "off@church.test", "pass-4", false)

	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
		variant  domain.PrincipalVariant
	}{
		{"primary account", "active@church.test", "pass-1", nil, domain.PrincipalVariantUser},
		{"directory account", "staff@church.test", "pass-3", nil, domain.PrincipalVariantManaged},
		{"unknown email", "ghost@church.test", "whatever", domain.ErrAccountNotFound, ""},
		{"inactive primary", "inactive@church.test", "pass-2", domain.ErrAccountInactive, ""},
		{"inactive directory", "off@church.test", "pass-4", domain.ErrAccountInactive, ""},
		{"directory without password", "nohash@church.test", "anything", domain.ErrCredentialsNotSet, ""},
		{"wrong password", "staff@church.test", "wrong", domain.ErrInvalidCredentials, ""},
		{"wrong password primary", "active@church.test", "wrong", domain.ErrInvalidCredentials, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal, err := f.svc.Authenticate(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate: %v", err)
			}
			if principal.Variant != tt.variant {
				t.Fatalf("variant = %q, want %q", principal.Variant, tt.variant)
			}
		})
	}
}

func TestLoginRejectsUnverifiedAdmin(t *testing.T) {
	f := newAuthFixture(t)
	f.seedAdmin(t, "new@church.test", "pass-1", true, false)

	_, err := f.svc.Login(context.Background(), "new@church.test", "pass-1")
	if !errors.Is(err, domain.ErrAccountNotVerified) {
		t.Fatalf("err = %v, want ErrAccountNotVerified", err)
	}
}

func TestLoginIssuesTokenPair(t *testing.T) {
	f := newAuthFixture(t)
	admin := f.seedAdmin(t, "verified@church.test", "pass-1", true, true)

	result, err := f.svc.Login(context.Background(), "verified@church.test", "pass-1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatal("missing tokens")
	}
	if result.TokenType != "bearer" {
		t.Fatalf("token type = %q", result.TokenType)
	}
	if result.Principal.ID != admin.ID {
		t.Fatalf("principal id = %q, want %q", result.Principal.ID, admin.ID)
	}
}

func TestSuperadminLoginBootstrapsAccount(t *testing.T) {
	f := newAuthFixture(t)

	if _, err := f.svc.SuperadminLogin(context.Background(), "root@church.test", "nope"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: err = %v", err)
	}

	result, err := f.svc.SuperadminLogin(context.Background(), "root@church.test", "root-password")
	if err != nil {
		t.Fatalf("SuperadminLogin: %v", err)
	}
	if result.Principal.Role != domain.RoleSuperadmin {
		t.Fatalf("role = %q", result.Principal.Role)
	}

	stored, err := f.users.GetByEmail(context.Background(), "root@church.test")
	if err != nil {
		t.Fatalf("superadmin row missing: %v", err)
	}
	if !stored.Verified || !stored.Active {
		t.Fatal("superadmin row not active and verified")
	}
}

func TestLoginRedirectsSuperadmin(t *testing.T) {
	f := newAuthFixture(t)
	if err := f.svc.EnsureSuperadmin(context.Background()); err != nil {
		t.Fatalf("EnsureSuperadmin: %v", err)
	}

	_, err := f.svc.Login(context.Background(), "root@church.test", "root-password")
	if err == nil {
		t.Fatal("superadmin allowed through the general login")
	}
}

func TestAdminSignupDuplicateAcrossTables(t *testing.T) {
	f := newAuthFixture(t)
	f.seedAdmin(t, "taken@church.test", "pass-1", true, true)
	f.seedManaged(t, "staff@church.test", "pass-2", true)

	input := SignupInput{FirstName: "A", LastName: "B", Password: "new-pass"}

	input.Email = "taken@church.test"
	if err := f.svc.AdminSignup(context.Background(), input); !errors.Is(err, domain.ErrDuplicateAccount) {
		t.Fatalf("primary duplicate: err = %v", err)
	}

	input.Email = "staff@church.test"
	if err := f.svc.AdminSignup(context.Background(), input); !errors.Is(err, domain.ErrDuplicateAccount) {
		t.Fatalf("directory duplicate: err = %v", err)
	}
}

func TestAdminSignupAttachesOTPAndPublishes(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.AdminSignup(context.Background(), SignupInput{
		Email: "new@church.test", FirstName: "New", LastName: "Admin", Password: "pass-1",
	})
	if err != nil {
		t.Fatalf("AdminSignup: %v", err)
	}

	user, err := f.users.GetByEmail(context.Background(), "new@church.test")
	if err != nil {
		t.Fatalf("user not created: %v", err)
	}
	if user.Verified {
		t.Fatal("new admin starts verified")
	}
	if user.OTPCode == nil || user.OTPExpiresAt == nil {
		t.Fatal("no OTP attached")
	}

	published := f.dispatcher.published()
	if len(published) != 1 || published[0].Type != events.EventAdminSignedUp {
		t.Fatalf("published = %+v", published)
	}
	if published[0].Payload["otp_code"] != *user.OTPCode {
		t.Fatal("event carries a different code than stored")
	}
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	f := newAuthFixture(t)

	if err := f.svc.ForgotPassword(context.Background(), "ghost@church.test"); err != nil {
		t.Fatalf("unknown email surfaced an error: %v", err)
	}
	if len(f.dispatcher.published()) != 0 {
		t.Fatal("event published for unknown email")
	}
}

func TestForgotPasswordIssuesResetOTP(t *testing.T) {
	f := newAuthFixture(t)
	f.seedAdmin(t, "admin@church.test", "pass-1", true, true)

	if err := f.svc.ForgotPassword(context.Background(), "admin@church.test"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}

	user, _ := f.users.GetByEmail(context.Background(), "admin@church.test")
	if user.OTPCode == nil {
		t.Fatal("no OTP stored")
	}
	published := f.dispatcher.published()
	if len(published) != 1 || published[0].Type != events.EventOTPIssued {
		t.Fatalf("published = %+v", published)
	}
	if published[0].Payload["purpose"] != "password_reset" {
		t.Fatalf("purpose = %v", published[0].Payload["purpose"])
	}
}

func TestVerifyOTPConsumesCode(t *testing.T) {
	f := newAuthFixture(t)
	admin := f.seedAdmin(t, "admin@church.test", "pass-1", true, false)
	admin.SetOTP("123456", time.Now().UTC().Add(5*time.Minute))
	if err := f.users.Update(context.Background(), admin); err != nil {
		t.Fatalf("seed OTP: %v", err)
	}

	if err := f.svc.VerifyOTP(context.Background(), "admin@church.test", "999999"); !errors.Is(err, domain.ErrInvalidOrExpiredCode) {
		t.Fatalf("wrong code: err = %v", err)
	}
	if err := f.svc.VerifyOTP(context.Background(), "admin@church.test", "123456"); err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}

	user, _ := f.users.GetByEmail(context.Background(), "admin@church.test")
	if !user.Verified {
		t.Fatal("account not verified")
	}
	if user.OTPCode != nil || user.OTPExpiresAt != nil {
		t.Fatal("OTP not cleared")
	}

	// Consumed codes cannot be replayed.
	if err := f.svc.VerifyOTP(context.Background(), "admin@church.test", "123456"); !errors.Is(err, domain.ErrInvalidOrExpiredCode) {
		t.Fatalf("replay: err = %v", err)
	}
}

func TestResetPasswordRotatesHashAndClearsOTP(t *testing.T) {
	f := newAuthFixture(t)
	admin := f.seedAdmin(t, "admin@church.test", "old-pass", true, true)
	admin.SetOTP("123456", time.Now().UTC().Add(5*time.Minute))
	if err := f.users.Update(context.Background(), admin); err != nil {
		t.Fatalf("seed OTP: %v", err)
	}

	if err := f.svc.ResetPassword(context.Background(), "admin@church.test", "123456", "new-pass"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	user, _ := f.users.GetByEmail(context.Background(), "admin@church.test")
	if !auth.CheckPassword(user.PasswordHash, "new-pass") {
		t.Fatal("new password does not verify")
	}
	if auth.CheckPassword(user.PasswordHash, "old-pass") {
		t.Fatal("old password still verifies")
	}
	if user.OTPCode != nil {
		t.Fatal("OTP survived the reset")
	}

	if err := f.svc.ResetPassword(context.Background(), "admin@church.test", "123456", "again"); !errors.Is(err, domain.ErrInvalidOrExpiredCode) {
		t.Fatalf("replay: err = %v", err)
	}
}

func TestResetPasswordExpiredCode(t *testing.T) {
	f := newAuthFixture(t)
	admin := f.seedAdmin(t, "admin@church.test", "old-pass", true, true)
	admin.SetOTP("123456", time.Now().UTC().Add(-time.Minute))
	if err := f.users.Update(context.Background(), admin); err != nil {
		t.Fatalf("seed OTP: %v", err)
	}

	err := f.svc.ResetPassword(context.Background(), "admin@church.test", "123456", "new-pass")
	if !errors.Is(err, domain.ErrInvalidOrExpiredCode) {
		t.Fatalf("expired code: err = %v", err)
	}
}

func TestRefreshExchangesTokens(t *testing.T) {
	f := newAuthFixture(t)
	f.seedAdmin(t, "admin@church.test", "pass-1", true, true)

	result, err := f.svc.Login(context.Background(), "admin@church.test", "pass-1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	pair, err := f.svc.Refresh(context.Background(), result.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("missing tokens after refresh")
	}

	// Access tokens are not accepted for refresh.
	if _, err := f.svc.Refresh(context.Background(), result.AccessToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("access token accepted: err = %v", err)
	}
}

func TestRefreshRejectsDeactivatedAccount(t *testing.T) {
	f := newAuthFixture(t)
	admin := f.seedAdmin(t, "admin@church.test", "pass-1", true, true)

	result, err := f.svc.Login(context.Background(), "admin@church.test", "pass-1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	admin.Active = false
	if err := f.users.Update(context.Background(), admin); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if _, err := f.svc.Refresh(context.Background(), result.RefreshToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("deactivated account refreshed: err = %v", err)
	}
}

func TestLoadPrincipalPrefersPrimaryTable(t *testing.T) {
	f := newAuthFixture(t)
	admin := f.seedAdmin(t, "admin@church.test", "pass-1", true, true)

	// A directory row with the same id should not shadow the primary one.
	sameID := &domain.ManagedUser{
		ID: admin.ID, Email: "other@church.test", Role: domain.RolePastorStaff, Active: true,
	}
	if err := f.managed.Create(context.Background(), sameID); err != nil {
		t.Fatalf("seed managed: %v", err)
	}

	principal, err := f.svc.LoadPrincipal(context.Background(), admin.ID)
	if err != nil {
		t.Fatalf("LoadPrincipal: %v", err)
	}
	if principal.Variant != domain.PrincipalVariantUser {
		t.Fatalf("variant = %q, want primary", principal.Variant)
	}
}

func TestLoadPrincipalFallsBackToDirectory(t *testing.T) {
	f := newAuthFixture(t)
	staff := f.seedManaged(t, "staff@church.test", "pass-1", true)

	principal, err := f.svc.LoadPrincipal(context.Background(), staff.ID)
	if err != nil {
		t.Fatalf("LoadPrincipal: %v", err)
	}
	if principal.Variant != domain.PrincipalVariantManaged {
		t.Fatalf("variant = %q", principal.Variant)
	}

	if _, err := f.svc.LoadPrincipal(context.Background(), "missing-id"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("missing id: err = %v", err)
	}
}
