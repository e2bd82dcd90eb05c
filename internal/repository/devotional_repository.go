package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pastor-mobile/church-admin-service/internal/domain"
)

// DevotionalRepository defines persistence access for devotionals.
type DevotionalRepository interface {
	Create(ctx context.Context, devotional *domain.Devotional) error
	Update(ctx context.Context, devotional *domain.Devotional) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Devotional, error)
	List(ctx context.Context) ([]domain.Devotional, error)
	Count(ctx context.Context) (int64, error)
}

type devotionalRepository struct {
	pool *pgxpool.Pool
}

// NewDevotionalRepository returns a Postgres-backed implementation.
func NewDevotionalRepository(pool *pgxpool.Pool) DevotionalRepository {
	return &devotionalRepository{pool: pool}
}

const devotionalColumns = `
        id, title, date, passage, leader, sermon_id, created_by_id, created_at, updated_at`

func (r *devotionalRepository) Create(ctx context.Context, devotional *domain.Devotional) error {
	if devotional.ID == "" {
		devotional.ID = uuid.NewString()
	}

	const query = `
        INSERT INTO devotionals (id, title, date, passage, leader, sermon_id, created_by_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		devotional.ID,
		devotional.Title,
		devotional.Date,
		devotional.Passage,
		devotional.Leader,
		devotional.SermonID,
		devotional.CreatedByID,
	).Scan(&devotional.CreatedAt, &devotional.UpdatedAt)
}

func (r *devotionalRepository) Update(ctx context.Context, devotional *domain.Devotional) error {
	const query = `
        UPDATE devotionals
        SET title=$1, date=$2, passage=$3, leader=$4, sermon_id=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		devotional.Title,
		devotional.Date,
		devotional.Passage,
		devotional.Leader,
		devotional.SermonID,
		devotional.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *devotionalRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM devotionals WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *devotionalRepository) GetByID(ctx context.Context, id string) (*domain.Devotional, error) {
	const query = `SELECT ` + devotionalColumns + ` FROM devotionals WHERE id=$1`

	var devotional domain.Devotional
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&devotional.ID,
		&devotional.Title,
		&devotional.Date,
		&devotional.Passage,
		&devotional.Leader,
		&devotional.SermonID,
		&devotional.CreatedByID,
		&devotional.CreatedAt,
		&devotional.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &devotional, nil
}

func (r *devotionalRepository) List(ctx context.Context) ([]domain.Devotional, error) {
	const query = `SELECT ` + devotionalColumns + ` FROM devotionals ORDER BY date DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Devotional
	for rows.Next() {
		var devotional domain.Devotional
		if err := rows.Scan(
			&devotional.ID,
			&devotional.Title,
			&devotional.Date,
			&devotional.Passage,
			&devotional.Leader,
			&devotional.SermonID,
			&devotional.CreatedByID,
			&devotional.CreatedAt,
			&devotional.UpdatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, devotional)
	}
	return list, rows.Err()
}

func (r *devotionalRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM devotionals`).Scan(&count)
	return count, err
}
