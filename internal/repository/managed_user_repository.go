package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pastor-mobile/church-admin-service/internal/domain"
)

// ManagedUserRepository defines persistence access for directory accounts.
type ManagedUserRepository interface {
	Create(ctx context.Context, user *domain.ManagedUser) error
	Update(ctx context.Context, user *domain.ManagedUser) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.ManagedUser, error)
	GetByEmail(ctx context.Context, email string) (*domain.ManagedUser, error)
	List(ctx context.Context) ([]domain.ManagedUser, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.ManagedUser, error)
}

type managedUserRepository struct {
	pool *pgxpool.Pool
}

// NewManagedUserRepository returns a Postgres-backed implementation.
func NewManagedUserRepository(pool *pgxpool.Pool) ManagedUserRepository {
	return &managedUserRepository{pool: pool}
}

const managedUserColumns = `
        id, email, first_name, last_name, password_hash, role, role_id, permissions, is_active`

func (r *managedUserRepository) Create(ctx context.Context, user *domain.ManagedUser) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	const query = `
        INSERT INTO user_management (id, email, first_name, last_name, password_hash,
                                     role, role_id, permissions, is_active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.Role,
		user.RoleID,
		user.Permissions,
		user.Active,
	)
	return err
}

func (r *managedUserRepository) Update(ctx context.Context, user *domain.ManagedUser) error {
	const query = `
        UPDATE user_management
        SET email=$1, first_name=$2, last_name=$3, password_hash=$4, role=$5,
            role_id=$6, permissions=$7, is_active=$8
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		user.Email,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.Role,
		user.RoleID,
		user.Permissions,
		user.Active,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *managedUserRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM user_management WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *managedUserRepository) GetByID(ctx context.Context, id string) (*domain.ManagedUser, error) {
	return r.getOne(ctx, `SELECT `+managedUserColumns+` FROM user_management WHERE id=$1`, id)
}

func (r *managedUserRepository) GetByEmail(ctx context.Context, email string) (*domain.ManagedUser, error) {
	return r.getOne(ctx, `SELECT `+managedUserColumns+` FROM user_management WHERE email=$1`, email)
}

func (r *managedUserRepository) getOne(ctx context.Context, query string, arg any) (*domain.ManagedUser, error) {
	var user domain.ManagedUser
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.Role,
		&user.RoleID,
		&user.Permissions,
		&user.Active,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *managedUserRepository) List(ctx context.Context) ([]domain.ManagedUser, error) {
	const query = `
        SELECT ` + managedUserColumns + `
        FROM user_management WHERE role <> $1 ORDER BY email`
	return r.list(ctx, query, domain.RoleSuperadmin)
}

func (r *managedUserRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.ManagedUser, error) {
	const query = `
        SELECT ` + managedUserColumns + `
        FROM user_management WHERE role=$1 ORDER BY email`
	return r.list(ctx, query, role)
}

func (r *managedUserRepository) list(ctx context.Context, query string, arg any) ([]domain.ManagedUser, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.ManagedUser
	for rows.Next() {
		var user domain.ManagedUser
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.FirstName,
			&user.LastName,
			&user.PasswordHash,
			&user.Role,
			&user.RoleID,
			&user.Permissions,
			&user.Active,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
