package media

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quangdng/starlog/adapters/event"
	"github.com/quangdng/starlog/internal/application/service"
	"github.com/quangdng/starlog/internal/domain/media"
	"github.com/quangdng/starlog/pkg/logger"
)

type DeleteMediaUseCase struct {
	mediaRepo media.Repository
	cache     service.CatalogCache
	publisher event.Publisher
	logger    logger.Logger
}

func NewDeleteMediaUseCase(repo media.Repository, cache service.CatalogCache, pub event.Publisher, log logger.Logger) *DeleteMediaUseCase {
	return &DeleteMediaUseCase{
		mediaRepo: repo,
		cache:     cache,
		publisher: pub,
		logger:    log,
	}
}

type DeleteMediaInput struct {
	MediaID uuid.UUID
}

// Execute removes the media and its dependent ratings. The repository runs
// both deletes in one transaction, so a failure leaves ratings and media
// untouched rather than half-cascaded.
func (uc *DeleteMediaUseCase) Execute(ctx context.Context, input DeleteMediaInput) error {
	if err := uc.mediaRepo.DeleteWithRatings(ctx, input.MediaID); err != nil {
		return err
	}

	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("Failed to invalidate catalog cache after delete", zap.Error(err))
	}

	go func() {
		err := uc.publisher.PublishMediaEvent(context.Background(), event.MediaEventPayload{
			EventType: event.MediaEventTypeDeleted,
			MediaID:   input.MediaID,
		})
		if err != nil {
			uc.logger.Error("Failed to publish 'media.deleted' event", err, zap.String("media_id", input.MediaID.String()))
		}
	}()

	return nil
}
