package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pastor-mobile/church-admin-service/internal/domain"
)

// SeriesRepository defines persistence access for sermon series and their
// membership junction.
type SeriesRepository interface {
	Create(ctx context.Context, series *domain.Series) error
	Update(ctx context.Context, series *domain.Series) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Series, error)
	List(ctx context.Context) ([]domain.Series, error)
	Count(ctx context.Context) (int64, error)
	SermonIDs(ctx context.Context, seriesID string) ([]string, error)
	AddSermons(ctx context.Context, seriesID string, sermonIDs []string) error
	RemoveSermons(ctx context.Context, seriesID string, sermonIDs []string) error
}

type seriesRepository struct {
	pool *pgxpool.Pool
}

// NewSeriesRepository returns a Postgres-backed implementation.
func NewSeriesRepository(pool *pgxpool.Pool) SeriesRepository {
	return &seriesRepository{pool: pool}
}

const seriesColumns = `
        id, title, from_date, to_date, passage, description, created_by_id, created_at, updated_at`

func (r *seriesRepository) Create(ctx context.Context, series *domain.Series) error {
	if series.ID == "" {
		series.ID = uuid.NewString()
	}

	const query = `
        INSERT INTO series (id, title, from_date, to_date, passage, description, created_by_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		series.ID,
		series.Title,
		series.FromDate,
		series.ToDate,
		series.Passage,
		series.Description,
		series.CreatedByID,
	).Scan(&series.CreatedAt, &series.UpdatedAt)
}

func (r *seriesRepository) Update(ctx context.Context, series *domain.Series) error {
	const query = `
        UPDATE series
        SET title=$1, from_date=$2, to_date=$3, passage=$4, description=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		series.Title,
		series.FromDate,
		series.ToDate,
		series.Passage,
		series.Description,
		series.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *seriesRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM series WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *seriesRepository) GetByID(ctx context.Context, id string) (*domain.Series, error) {
	const query = `SELECT ` + seriesColumns + ` FROM series WHERE id=$1`

	var series domain.Series
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&series.ID,
		&series.Title,
		&series.FromDate,
		&series.ToDate,
		&series.Passage,
		&series.Description,
		&series.CreatedByID,
		&series.CreatedAt,
		&series.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &series, nil
}

func (r *seriesRepository) List(ctx context.Context) ([]domain.Series, error) {
	const query = `SELECT ` + seriesColumns + ` FROM series ORDER BY from_date DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Series
	for rows.Next() {
		var series domain.Series
		if err := rows.Scan(
			&series.ID,
			&series.Title,
			&series.FromDate,
			&series.ToDate,
			&series.Passage,
			&series.Description,
			&series.CreatedByID,
			&series.CreatedAt,
			&series.UpdatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, series)
	}
	return list, rows.Err()
}

func (r *seriesRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM series`).Scan(&count)
	return count, err
}

func (r *seriesRepository) SermonIDs(ctx context.Context, seriesID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT sermon_id FROM series_sermons WHERE series_id=$1`, seriesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *seriesRepository) AddSermons(ctx context.Context, seriesID string, sermonIDs []string) error {
	const query = `
        INSERT INTO series_sermons (series_id, sermon_id)
        VALUES ($1,$2) ON CONFLICT DO NOTHING`

	for _, sermonID := range sermonIDs {
		if _, err := r.pool.Exec(ctx, query, seriesID, sermonID); err != nil {
			return err
		}
	}
	return nil
}

func (r *seriesRepository) RemoveSermons(ctx context.Context, seriesID string, sermonIDs []string) error {
	const query = `DELETE FROM series_sermons WHERE series_id=$1 AND sermon_id=$2`

	for _, sermonID := range sermonIDs {
		if _, err := r.pool.Exec(ctx, query, seriesID, sermonID); err != nil {
			return err
		}
	}
	return nil
}
