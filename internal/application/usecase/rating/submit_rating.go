package rating

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quangdng/starlog/adapters/event"
	"github.com/quangdng/starlog/internal/domain/media"
	"github.com/quangdng/starlog/internal/domain/rating"
	"github.com/quangdng/starlog/pkg/apperror"
	"github.com/quangdng/starlog/pkg/logger"
)

type SubmitRatingUseCase struct {
	ratingRepo rating.Repository
	mediaRepo  media.Repository
	publisher  event.Publisher
	logger     logger.Logger
}

func NewSubmitRatingUseCase(rRepo rating.Repository, mRepo media.Repository, pub event.Publisher, log logger.Logger) *SubmitRatingUseCase {
	return &SubmitRatingUseCase{
		ratingRepo: rRepo,
		mediaRepo:  mRepo,
		publisher:  pub,
		logger:     log,
	}
}

type SubmitRatingInput struct {
	UserID  uuid.UUID
	MediaID uuid.UUID
	Value   int
	Review  string
}

type SubmitRatingOutput struct {
	Rating  *rating.Rating
	Created bool
}

// Execute creates or updates the caller's rating for one media item. The
// (user, media) pair holds at most one rating: an existing record is updated
// in place keeping its id, otherwise a new record is created. A unique index
// on (user_id, media_id) backs the same invariant in the store.
func (uc *SubmitRatingUseCase) Execute(ctx context.Context, input SubmitRatingInput) (*SubmitRatingOutput, error) {
	// Value 0 is the dialog's "unset" sentinel; it never reaches the store.
	if input.Value < rating.MinValue || input.Value > rating.MaxValue {
		return nil, apperror.NewInvalidInput("rating validation failed", rating.ErrValueRange)
	}

	if _, err := uc.mediaRepo.FindByID(ctx, input.MediaID); err != nil {
		return nil, err
	}

	review := rating.NormalizeReview(input.Review)
	now := time.Now().UTC()

	existing, err := uc.ratingRepo.FindByUserAndMedia(ctx, input.UserID, input.MediaID)
	if err != nil && !errors.Is(err, rating.ErrRatingNotFound) {
		return nil, err
	}

	var written *rating.Rating
	created := false

	if existing != nil {
		existing.Value = input.Value
		existing.Review = review
		existing.UpdatedAt = now

		if err := existing.Validate(); err != nil {
			return nil, apperror.NewInvalidInput("rating validation failed", err)
		}
		if err := uc.ratingRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		written = existing
	} else {
		newRating := &rating.Rating{
			ID:        uuid.New(),
			UserID:    input.UserID,
			MediaID:   input.MediaID,
			Value:     input.Value,
			Review:    review,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := newRating.Validate(); err != nil {
			return nil, apperror.NewInvalidInput("rating validation failed", err)
		}
		if err := uc.ratingRepo.Save(ctx, newRating); err != nil {
			if errors.Is(err, rating.ErrDuplicate) {
				return nil, apperror.NewConflict("rating", "media_id", input.MediaID.String())
			}
			return nil, err
		}
		written = newRating
		created = true
	}

	go func() {
		err := uc.publisher.PublishRatingEvent(context.Background(), event.RatingEventPayload{
			EventType: event.RatingEventTypeRated,
			RatingID:  written.ID,
			UserID:    written.UserID,
			MediaID:   written.MediaID,
			Value:     written.Value,
		})
		if err != nil {
			uc.logger.Error("Failed to publish 'rating.rated' event", err, zap.String("rating_id", written.ID.String()))
		}
	}()

	return &SubmitRatingOutput{Rating: written, Created: created}, nil
}
