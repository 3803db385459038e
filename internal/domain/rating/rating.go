package rating

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MinValue     = 1
	MaxValue     = 5
	MaxReviewLen = 500
)

type Rating struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	MediaID   uuid.UUID `json:"media_id"`
	Value     int       `json:"rating"`
	Review    *string   `json:"review"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrRatingNotFound = errors.New("rating not found")
	ErrValueRange     = errors.New("rating must be between 1 and 5")
	ErrReviewSize     = errors.New("review must be at most 500 characters")
	ErrDuplicate      = errors.New("rating already exists for this user and media")
)

func (r *Rating) Validate() error {
	if r.Value < MinValue || r.Value > MaxValue {
		return ErrValueRange
	}
	if r.Review != nil && len([]rune(*r.Review)) > MaxReviewLen {
		return ErrReviewSize
	}
	return nil
}

// NormalizeReview trims the raw review text. Input that is empty after
// trimming is stored as absent, never as "".
func NormalizeReview(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type Repository interface {
	Save(ctx context.Context, rating *Rating) error
	Update(ctx context.Context, rating *Rating) error
	FindByUserAndMedia(ctx context.Context, userID, mediaID uuid.UUID) (*Rating, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Rating, error)
	StatsByMedia(ctx context.Context, mediaID uuid.UUID) (avg float64, count int, err error)
}
