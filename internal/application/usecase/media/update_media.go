package media

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quangdng/starlog/adapters/event"
	"github.com/quangdng/starlog/internal/application/service"
	"github.com/quangdng/starlog/internal/domain/media"
	"github.com/quangdng/starlog/pkg/apperror"
	"github.com/quangdng/starlog/pkg/logger"
)

type UpdateMediaUseCase struct {
	mediaRepo media.Repository
	cache     service.CatalogCache
	publisher event.Publisher
	logger    logger.Logger
}

func NewUpdateMediaUseCase(repo media.Repository, cache service.CatalogCache, pub event.Publisher, log logger.Logger) *UpdateMediaUseCase {
	return &UpdateMediaUseCase{
		mediaRepo: repo,
		cache:     cache,
		publisher: pub,
		logger:    log,
	}
}

type UpdateMediaInput struct {
	MediaID     uuid.UUID
	Title       string
	Type        media.MediaType
	Genre       string
	ReleaseYear int
	Description string
	CoverImage  string
	Country     string
}

type UpdateMediaOutput struct {
	Media *media.Media
}

func (uc *UpdateMediaUseCase) Execute(ctx context.Context, input UpdateMediaInput) (*UpdateMediaOutput, error) {
	existing, err := uc.mediaRepo.FindByID(ctx, input.MediaID)
	if err != nil {
		return nil, err
	}

	// Every mutable field is rewritten from the draft.
	existing.Title = strings.TrimSpace(input.Title)
	existing.Type = input.Type
	existing.Genre = input.Genre
	existing.ReleaseYear = input.ReleaseYear
	existing.Description = optional(input.Description)
	existing.CoverImage = optional(input.CoverImage)
	existing.Country = optional(input.Country)
	existing.UpdatedAt = time.Now().UTC()

	if err := existing.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("media validation failed", err)
	}

	if err := uc.mediaRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("Failed to invalidate catalog cache after update", zap.Error(err))
	}

	go func() {
		err := uc.publisher.PublishMediaEvent(context.Background(), event.MediaEventPayload{
			EventType: event.MediaEventTypeUpdated,
			MediaID:   existing.ID,
			Title:     existing.Title,
		})
		if err != nil {
			uc.logger.Error("Failed to publish 'media.updated' event", err, zap.String("media_id", existing.ID.String()))
		}
	}()

	return &UpdateMediaOutput{Media: existing}, nil
}
