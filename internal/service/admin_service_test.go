package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/pastor-mobile/church-admin-service/internal/auth"
	"github.com/pastor-mobile/church-admin-service/internal/domain"
	"github.com/pastor-mobile/church-admin-service/internal/events"
)

func newAdminFixture() (*AdminService, *stubUserRepo, *stubManagedRepo, *recordingDispatcher) {
	users := newStubUserRepo()
	managed := newStubManagedRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewAdminService(testAuthConfig(), users, managed, dispatcher, zap.NewNop())
	return svc, users, managed, dispatcher
}

func TestCreateAdminIssuesCredentials(t *testing.T) {
	svc, users, _, dispatcher := newAdminFixture()

	admin, err := svc.CreateAdmin(context.Background(), "actor-1", CreateAdminInput{
		Email: "admin@church.test", FirstName: "Ada", LastName: "Admin",
	})
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	if admin.Role != domain.RoleAdmin {
		t.Fatalf("role = %q", admin.Role)
	}
	if !admin.Active || !admin.Verified {
		t.Fatal("provisioned admin not active and verified")
	}
	if admin.CreatedByID == nil || *admin.CreatedByID != "actor-1" {
		t.Fatalf("created_by = %v", admin.CreatedByID)
	}

	stored, err := users.GetByID(context.Background(), admin.ID)
	if err != nil {
		t.Fatalf("admin not persisted: %v", err)
	}

	published := dispatcher.published()
	if len(published) != 1 || published[0].Type != events.EventCredentialsIssued {
		t.Fatalf("published = %+v", published)
	}
	password, _ := published[0].Payload["password"].(string)
	if !auth.CheckPassword(stored.PasswordHash, password) {
		t.Fatal("emailed password does not verify against the stored hash")
	}
}

func TestCreateAdminDuplicateAcrossTables(t *testing.T) {
	svc, _, managed, _ := newAdminFixture()
	if err := managed.Create(context.Background(), &domain.ManagedUser{
		Email: "taken@church.test", Role: domain.RolePastorStaff, Active: true,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := svc.CreateAdmin(context.Background(), "actor-1", CreateAdminInput{
		Email: "taken@church.test", FirstName: "A", LastName: "B",
	})
	if !errors.Is(err, domain.ErrDuplicateAccount) {
		t.Fatalf("err = %v, want ErrDuplicateAccount", err)
	}
}

func TestGetAdminShieldsOtherRoles(t *testing.T) {
	svc, users, _, _ := newAdminFixture()
	root := &domain.User{Email: "root@church.test", Role: domain.RoleSuperadmin, Active: true}
	if err := users.Create(context.Background(), root); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := svc.GetAdmin(context.Background(), root.ID); err == nil {
		t.Fatal("superadmin row readable through admin endpoints")
	}
	if err := svc.DeleteAdmin(context.Background(), root.ID); err == nil {
		t.Fatal("superadmin row deletable through admin endpoints")
	}
}

func TestUpdateProfileSelfService(t *testing.T) {
	svc, users, managed, _ := newAdminFixture()
	admin, err := svc.CreateAdmin(context.Background(), "actor-1", CreateAdminInput{
		Email: "admin@church.test", FirstName: "Ada", LastName: "Admin",
	})
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}

	name := "Renamed"
	password := "fresh-password-1!"
	updated, err := svc.UpdateProfile(context.Background(), admin.ID, UpdateProfileInput{
		FirstName: &name, Password: &password,
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.FirstName != "Renamed" {
		t.Fatalf("first name = %q", updated.FirstName)
	}
	stored, _ := users.GetByID(context.Background(), admin.ID)
	if !auth.CheckPassword(stored.PasswordHash, password) {
		t.Fatal("new password does not verify against the stored hash")
	}

	// Email changes are checked against both principal tables.
	if err := managed.Create(context.Background(), &domain.ManagedUser{
		Email: "taken@church.test", Role: domain.RolePastorStaff, Active: true,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	taken := "taken@church.test"
	if _, err := svc.UpdateProfile(context.Background(), admin.ID, UpdateProfileInput{Email: &taken}); !errors.Is(err, domain.ErrDuplicateAccount) {
		t.Fatalf("err = %v, want ErrDuplicateAccount", err)
	}
}

func TestUpdateProfileReachesSuperadminRow(t *testing.T) {
	svc, users, _, _ := newAdminFixture()
	root := &domain.User{Email: "root@church.test", Role: domain.RoleSuperadmin, Active: true}
	if err := users.Create(context.Background(), root); err != nil {
		t.Fatalf("seed: %v", err)
	}

	name := "Root"
	updated, err := svc.UpdateProfile(context.Background(), root.ID, UpdateProfileInput{FirstName: &name})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.FirstName != "Root" {
		t.Fatalf("first name = %q", updated.FirstName)
	}
}

func TestUpdateAdminAppliesChanges(t *testing.T) {
	svc, _, _, _ := newAdminFixture()
	admin, err := svc.CreateAdmin(context.Background(), "actor-1", CreateAdminInput{
		Email: "admin@church.test", FirstName: "Ada", LastName: "Admin",
	})
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}

	inactive := false
	name := "Renamed"
	updated, err := svc.UpdateAdmin(context.Background(), admin.ID, UpdateAdminInput{
		FirstName: &name, Active: &inactive,
	})
	if err != nil {
		t.Fatalf("UpdateAdmin: %v", err)
	}
	if updated.FirstName != "Renamed" || updated.Active {
		t.Fatalf("updated = %+v", updated)
	}
}
