package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pastor-mobile/church-admin-service/internal/domain"
	"github.com/pastor-mobile/church-admin-service/internal/events"
)

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*domain.User{}}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		r.seq++
		user.ID = "user-" + strconv.Itoa(r.seq)
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, user := range r.users {
		if user.Role == role {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *stubUserRepo) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	list, _ := r.ListByRole(ctx, role)
	return int64(len(list)), nil
}

func (r *stubUserRepo) ClearExpiredOTP(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	var cleared int64
	for _, user := range r.users {
		if user.OTPExpiresAt != nil && user.OTPExpiresAt.Before(now) {
			user.ClearOTP()
			cleared++
		}
	}
	return cleared, nil
}

type stubManagedRepo struct {
	mu    sync.Mutex
	users map[string]*domain.ManagedUser
	seq   int
}

func newStubManagedRepo() *stubManagedRepo {
	return &stubManagedRepo{users: map[string]*domain.ManagedUser{}}
}

func (r *stubManagedRepo) Create(_ context.Context, user *domain.ManagedUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		r.seq++
		user.ID = "managed-" + strconv.Itoa(r.seq)
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *stubManagedRepo) Update(_ context.Context, user *domain.ManagedUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *stubManagedRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *stubManagedRepo) GetByID(_ context.Context, id string) (*domain.ManagedUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubManagedRepo) GetByEmail(_ context.Context, email string) (*domain.ManagedUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubManagedRepo) List(_ context.Context) ([]domain.ManagedUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ManagedUser
	for _, user := range r.users {
		if user.Role != domain.RoleSuperadmin {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *stubManagedRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.ManagedUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ManagedUser
	for _, user := range r.users {
		if user.Role == role {
			out = append(out, *user)
		}
	}
	return out, nil
}

type stubRoleRepo struct {
	mu   sync.Mutex
	defs map[domain.Role]*domain.RoleDefinition
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{defs: map[domain.Role]*domain.RoleDefinition{}}
}

func (r *stubRoleRepo) Create(_ context.Context, def *domain.RoleDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if def.ID == "" {
		def.ID = "role-" + string(def.Role)
	}
	copied := *def
	r.defs[def.Role] = &copied
	return nil
}

func (r *stubRoleRepo) Update(_ context.Context, def *domain.RoleDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.defs[def.Role]; !ok {
		return pgx.ErrNoRows
	}
	copied := *def
	r.defs[def.Role] = &copied
	return nil
}

func (r *stubRoleRepo) GetByRole(_ context.Context, role domain.Role) (*domain.RoleDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if def, ok := r.defs[role]; ok {
		copied := *def
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubRoleRepo) List(_ context.Context) ([]domain.RoleDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.RoleDefinition
	for _, def := range r.defs {
		out = append(out, *def)
	}
	return out, nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}
