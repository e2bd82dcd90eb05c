package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pastor-mobile/church-admin-service/internal/domain"
)

// ErrAlreadyAssociated signals a duplicate sermon/series association.
var ErrAlreadyAssociated = errors.New("series is already associated with this sermon")

// SermonRepository defines persistence access for sermons and their
// series associations.
type SermonRepository interface {
	Create(ctx context.Context, sermon *domain.Sermon) error
	Update(ctx context.Context, sermon *domain.Sermon) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Sermon, error)
	List(ctx context.Context) ([]domain.Sermon, error)
	Count(ctx context.Context) (int64, error)
	AssociateSeries(ctx context.Context, sermonID, seriesID string, createdByID *string) error
	AssociatedSeriesIDs(ctx context.Context, sermonID string) ([]string, error)
}

type sermonRepository struct {
	pool *pgxpool.Pool
}

// NewSermonRepository returns a Postgres-backed implementation.
func NewSermonRepository(pool *pgxpool.Pool) SermonRepository {
	return &sermonRepository{pool: pool}
}

const sermonColumns = `
        id, date, time, speaker, passage, title, description, created_by_id, created_at, updated_at`

func (r *sermonRepository) Create(ctx context.Context, sermon *domain.Sermon) error {
	if sermon.ID == "" {
		sermon.ID = uuid.NewString()
	}

	const query = `
        INSERT INTO sermons (id, date, time, speaker, passage, title, description, created_by_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		sermon.ID,
		sermon.Date,
		sermon.Time,
		sermon.Speaker,
		sermon.Passage,
		sermon.Title,
		sermon.Description,
		sermon.CreatedByID,
	).Scan(&sermon.CreatedAt, &sermon.UpdatedAt)
}

func (r *sermonRepository) Update(ctx context.Context, sermon *domain.Sermon) error {
	const query = `
        UPDATE sermons
        SET date=$1, time=$2, speaker=$3, passage=$4, title=$5, description=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		sermon.Date,
		sermon.Time,
		sermon.Speaker,
		sermon.Passage,
		sermon.Title,
		sermon.Description,
		sermon.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *sermonRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM sermons WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *sermonRepository) GetByID(ctx context.Context, id string) (*domain.Sermon, error) {
	const query = `SELECT ` + sermonColumns + ` FROM sermons WHERE id=$1`

	var sermon domain.Sermon
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&sermon.ID,
		&sermon.Date,
		&sermon.Time,
		&sermon.Speaker,
		&sermon.Passage,
		&sermon.Title,
		&sermon.Description,
		&sermon.CreatedByID,
		&sermon.CreatedAt,
		&sermon.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &sermon, nil
}

func (r *sermonRepository) List(ctx context.Context) ([]domain.Sermon, error) {
	const query = `SELECT ` + sermonColumns + ` FROM sermons ORDER BY date DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSermons(rows)
}

func (r *sermonRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sermons`).Scan(&count)
	return count, err
}

func (r *sermonRepository) AssociateSeries(ctx context.Context, sermonID, seriesID string, createdByID *string) error {
	const query = `
        INSERT INTO existing_series (id, sermon_id, series_id, created_by_id)
        VALUES ($1,$2,$3,$4)`

	_, err := r.pool.Exec(ctx, query, uuid.NewString(), sermonID, seriesID, createdByID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyAssociated
		}
		return err
	}
	return nil
}

func (r *sermonRepository) AssociatedSeriesIDs(ctx context.Context, sermonID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT series_id FROM existing_series WHERE sermon_id=$1`, sermonID)
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

func scanSermons(rows pgx.Rows) ([]domain.Sermon, error) {
	var sermons []domain.Sermon
	for rows.Next() {
		var sermon domain.Sermon
		if err := rows.Scan(
			&sermon.ID,
			&sermon.Date,
			&sermon.Time,
			&sermon.Speaker,
			&sermon.Passage,
			&sermon.Title,
			&sermon.Description,
			&sermon.CreatedByID,
			&sermon.CreatedAt,
			&sermon.UpdatedAt,
		); err != nil {
			return nil, err
		}
		sermons = append(sermons, sermon)
	}
	return sermons, rows.Err()
}
