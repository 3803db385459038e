package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quangdng/starlog/internal/domain/rating"
)

type postgresRatingRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRatingRepo(db *pgxpool.Pool) rating.Repository {
	return &postgresRatingRepo{db: db}
}

const ratingColumns = "id, user_id, media_id, value, review, created_at, updated_at"

func scanRating(row pgx.Row) (*rating.Rating, error) {
	rt := &rating.Rating{}
	var review sql.NullString

	err := row.Scan(
		&rt.ID,
		&rt.UserID,
		&rt.MediaID,
		&rt.Value,
		&review,
		&rt.CreatedAt,
		&rt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, rating.ErrRatingNotFound
		}
		return nil, fmt.Errorf("failed to scan rating row: %w", err)
	}

	if review.Valid {
		rt.Review = &review.String
	}
	return rt, nil
}

func (r *postgresRatingRepo) Save(ctx context.Context, rt *rating.Rating) error {
	query := `
		INSERT INTO ratings (id, user_id, media_id, value, review, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		rt.ID, rt.UserID, rt.MediaID, rt.Value, rt.Review, rt.CreatedAt, rt.UpdatedAt,
	)
	if err != nil {
		// UNIQUE(user_id, media_id) closes the two-tab race on first submit.
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return rating.ErrDuplicate
		}
		return fmt.Errorf("failed to save rating: %w", err)
	}
	return nil
}

func (r *postgresRatingRepo) Update(ctx context.Context, rt *rating.Rating) error {
	query := `
		UPDATE ratings SET value = $2, review = $3, updated_at = $4
		WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query, rt.ID, rt.Value, rt.Review, rt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update rating: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return rating.ErrRatingNotFound
	}
	return nil
}

func (r *postgresRatingRepo) FindByUserAndMedia(ctx context.Context, userID, mediaID uuid.UUID) (*rating.Rating, error) {
	query := `SELECT ` + ratingColumns + ` FROM ratings WHERE user_id = $1 AND media_id = $2`
	row := r.db.QueryRow(ctx, query, userID, mediaID)
	return scanRating(row)
}

func (r *postgresRatingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*rating.Rating, error) {
	builder := psql.Select(ratingColumns).
		From("ratings").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("updated_at DESC")

	sqlStr, args, _ := builder.ToSql()
	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings by user: %w", err)
	}

	ratings := make([]*rating.Rating, 0)
	defer rows.Close()

	for rows.Next() {
		rt := &rating.Rating{}
		var review sql.NullString

		err := rows.Scan(
			&rt.ID,
			&rt.UserID,
			&rt.MediaID,
			&rt.Value,
			&review,
			&rt.CreatedAt,
			&rt.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rating row during iteration: %w", err)
		}

		if review.Valid {
			rt.Review = &review.String
		}
		ratings = append(ratings, rt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rating rows: %w", err)
	}
	return ratings, nil
}

func (r *postgresRatingRepo) StatsByMedia(ctx context.Context, mediaID uuid.UUID) (float64, int, error) {
	query := `SELECT COALESCE(AVG(value), 0), COUNT(*) FROM ratings WHERE media_id = $1`

	var avg float64
	var count int
	if err := r.db.QueryRow(ctx, query, mediaID).Scan(&avg, &count); err != nil {
		return 0, 0, fmt.Errorf("failed to query rating stats: %w", err)
	}
	return avg, count, nil
}
