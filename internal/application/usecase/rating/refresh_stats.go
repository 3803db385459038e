package rating

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/quangdng/starlog/adapters/event"
	"github.com/quangdng/starlog/internal/domain/media"
	"github.com/quangdng/starlog/internal/domain/rating"
)

// RefreshStatsUseCase is the worker-side consumer logic: after a rating is
// written it recomputes the media's aggregate shown on catalog cards.
type RefreshStatsUseCase struct {
	ratingRepo rating.Repository
	mediaRepo  media.Repository
}

func NewRefreshStatsUseCase(rRepo rating.Repository, mRepo media.Repository) *RefreshStatsUseCase {
	return &RefreshStatsUseCase{ratingRepo: rRepo, mediaRepo: mRepo}
}

func (uc *RefreshStatsUseCase) Execute(ctx context.Context, payload event.RatingEventPayload) error {
	log.Printf("Worker UseCase processing event: %s for MediaID: %s", payload.EventType, payload.MediaID)

	avg, count, err := uc.ratingRepo.StatsByMedia(ctx, payload.MediaID)
	if err != nil {
		return fmt.Errorf("compute rating stats failed: %w", err)
	}

	err = uc.mediaRepo.UpdateRatingStats(ctx, payload.MediaID, avg, count)
	if err != nil {
		if errors.Is(err, media.ErrMediaNotFound) {
			log.Printf("WARN: Media %s not found (deleted?), skip.", payload.MediaID)
			return nil
		}
		return fmt.Errorf("update rating stats failed: %w", err)
	}

	log.Printf("Updated media %s stats: avg=%.2f count=%d", payload.MediaID, avg, count)
	return nil
}
