package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/pastor-mobile/church-admin-service/internal/domain"
)

// RoleRepository defines persistence access for role definitions.
type RoleRepository interface {
	Create(ctx context.Context, def *domain.RoleDefinition) error
	Update(ctx context.Context, def *domain.RoleDefinition) error
	GetByRole(ctx context.Context, role domain.Role) (*domain.RoleDefinition, error)
	List(ctx context.Context) ([]domain.RoleDefinition, error)
}

type roleRepository struct {
	pool     *pgxpool.Pool
	cache    *redis.Client
	cacheTTL time.Duration
}

// NewRoleRepository returns a Postgres-backed implementation with an optional
// Redis read-through cache for by-role lookups. The cache is invalidated on
// every write, so directory accounts still only refresh their denormalized
// permissions blob when their role is reassigned.
func NewRoleRepository(pool *pgxpool.Pool, cache *redis.Client) RoleRepository {
	return &roleRepository{pool: pool, cache: cache, cacheTTL: 5 * time.Minute}
}

func (r *roleRepository) Create(ctx context.Context, def *domain.RoleDefinition) error {
	if def.ID == "" {
		def.ID = uuid.NewString()
	}

	const query = `
        INSERT INTO role (id, role, permissions, is_active)
        VALUES ($1,$2,$3,$4)`

	if _, err := r.pool.Exec(ctx, query, def.ID, def.Role, def.Permissions, def.Active); err != nil {
		return err
	}
	r.invalidate(ctx, def.Role)
	return nil
}

func (r *roleRepository) Update(ctx context.Context, def *domain.RoleDefinition) error {
	const query = `
        UPDATE role SET permissions=$1, is_active=$2 WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, def.Permissions, def.Active, def.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	r.invalidate(ctx, def.Role)
	return nil
}

func (r *roleRepository) GetByRole(ctx context.Context, role domain.Role) (*domain.RoleDefinition, error) {
	if cached := r.fromCache(ctx, role); cached != nil {
		return cached, nil
	}

	const query = `SELECT id, role, permissions, is_active FROM role WHERE role=$1`

	var def domain.RoleDefinition
	if err := r.pool.QueryRow(ctx, query, role).Scan(
		&def.ID,
		&def.Role,
		&def.Permissions,
		&def.Active,
	); err != nil {
		return nil, err
	}

	r.toCache(ctx, &def)
	return &def, nil
}

func (r *roleRepository) List(ctx context.Context) ([]domain.RoleDefinition, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, role, permissions, is_active FROM role ORDER BY role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []domain.RoleDefinition
	for rows.Next() {
		var def domain.RoleDefinition
		if err := rows.Scan(&def.ID, &def.Role, &def.Permissions, &def.Active); err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

func cacheKey(role domain.Role) string {
	return "roledef:" + string(role)
}

func (r *roleRepository) fromCache(ctx context.Context, role domain.Role) *domain.RoleDefinition {
	if r.cache == nil {
		return nil
	}
	payload, err := r.cache.Get(ctx, cacheKey(role)).Bytes()
	if err != nil {
		return nil
	}
	var def domain.RoleDefinition
	if err := json.Unmarshal(payload, &def); err != nil {
		return nil
	}
	return &def
}

func (r *roleRepository) toCache(ctx context.Context, def *domain.RoleDefinition) {
	if r.cache == nil {
		return
	}
	payload, err := json.Marshal(def)
	if err != nil {
		return
	}
	// Cache failures are invisible to callers; the next read hits postgres.
	_ = r.cache.Set(ctx, cacheKey(def.Role), payload, r.cacheTTL).Err()
}

func (r *roleRepository) invalidate(ctx context.Context, role domain.Role) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Del(ctx, cacheKey(role)).Err()
}
