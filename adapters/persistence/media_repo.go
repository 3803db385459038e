package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quangdng/starlog/internal/domain/media"
)

type postgresMediaRepo struct {
	db *pgxpool.Pool
}

func NewPostgresMediaRepo(db *pgxpool.Pool) media.Repository {
	return &postgresMediaRepo{db: db}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const mediaColumns = "id, title, type, genre, release_year, description, cover_image, country, avg_rating, rating_count, created_at, updated_at"

func scanMedia(row pgx.Row) (*media.Media, error) {
	m := &media.Media{}
	var description, coverImage, country sql.NullString

	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Type,
		&m.Genre,
		&m.ReleaseYear,
		&description,
		&coverImage,
		&country,
		&m.AvgRating,
		&m.RatingCount,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, media.ErrMediaNotFound
		}
		return nil, fmt.Errorf("failed to scan media row: %w", err)
	}

	if description.Valid {
		m.Description = &description.String
	}
	if coverImage.Valid {
		m.CoverImage = &coverImage.String
	}
	if country.Valid {
		m.Country = &country.String
	}
	return m, nil
}

func scanMediaRows(rows pgx.Rows) ([]*media.Media, error) {
	items := make([]*media.Media, 0)
	defer rows.Close()

	for rows.Next() {
		m := &media.Media{}
		var description, coverImage, country sql.NullString

		err := rows.Scan(
			&m.ID,
			&m.Title,
			&m.Type,
			&m.Genre,
			&m.ReleaseYear,
			&description,
			&coverImage,
			&country,
			&m.AvgRating,
			&m.RatingCount,
			&m.CreatedAt,
			&m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan media row during iteration: %w", err)
		}

		if description.Valid {
			m.Description = &description.String
		}
		if coverImage.Valid {
			m.CoverImage = &coverImage.String
		}
		if country.Valid {
			m.Country = &country.String
		}
		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating media rows: %w", err)
	}
	return items, nil
}

func (r *postgresMediaRepo) Save(ctx context.Context, m *media.Media) error {
	query := `
		INSERT INTO media (id, title, type, genre, release_year, description, cover_image, country, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		m.ID, m.Title, m.Type, m.Genre, m.ReleaseYear,
		m.Description, m.CoverImage, m.Country, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save media: %w", err)
	}
	return nil
}

func (r *postgresMediaRepo) Update(ctx context.Context, m *media.Media) error {
	query := `
		UPDATE media SET
			title = $2, type = $3, genre = $4, release_year = $5,
			description = $6, cover_image = $7, country = $8, updated_at = $9
		WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query,
		m.ID, m.Title, m.Type, m.Genre, m.ReleaseYear,
		m.Description, m.CoverImage, m.Country, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update media: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return media.ErrMediaNotFound
	}
	return nil
}

// DeleteWithRatings deletes the dependent ratings and the media record in
// one transaction. The store has no ON DELETE CASCADE; ordering matters.
func (r *postgresMediaRepo) DeleteWithRatings(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM ratings WHERE media_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete ratings for media: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return media.ErrMediaNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete transaction: %w", err)
	}
	return nil
}

func (r *postgresMediaRepo) FindByID(ctx context.Context, id uuid.UUID) (*media.Media, error) {
	query := `SELECT ` + mediaColumns + ` FROM media WHERE id = $1`
	row := r.db.QueryRow(ctx, query, id)
	return scanMedia(row)
}

func (r *postgresMediaRepo) ListRecent(ctx context.Context, limit int) ([]*media.Media, error) {
	builder := psql.Select(mediaColumns).
		From("media").
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	sqlStr, args, _ := builder.ToSql()
	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent media: %w", err)
	}
	return scanMediaRows(rows)
}

func (r *postgresMediaRepo) UpdateRatingStats(ctx context.Context, id uuid.UUID, avg float64, count int) error {
	query := `UPDATE media SET avg_rating = $2, rating_count = $3 WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, query, id, avg, count)
	if err != nil {
		return fmt.Errorf("failed to update media rating stats: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return media.ErrMediaNotFound
	}
	return nil
}
