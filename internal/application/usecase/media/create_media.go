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

type CreateMediaUseCase struct {
	mediaRepo media.Repository
	cache     service.CatalogCache
	publisher event.Publisher
	logger    logger.Logger
}

func NewCreateMediaUseCase(repo media.Repository, cache service.CatalogCache, pub event.Publisher, log logger.Logger) *CreateMediaUseCase {
	return &CreateMediaUseCase{
		mediaRepo: repo,
		cache:     cache,
		publisher: pub,
		logger:    log,
	}
}

type CreateMediaInput struct {
	Title       string
	Type        media.MediaType
	Genre       string
	ReleaseYear int
	Description string
	CoverImage  string
	Country     string
}

type CreateMediaOutput struct {
	Media *media.Media
}

// optional trims the raw string; empty-after-trim is stored as absent.
func optional(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (uc *CreateMediaUseCase) Execute(ctx context.Context, input CreateMediaInput) (*CreateMediaOutput, error) {
	now := time.Now().UTC()

	newMedia := &media.Media{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(input.Title),
		Type:        input.Type,
		Genre:       input.Genre,
		ReleaseYear: input.ReleaseYear,
		Description: optional(input.Description),
		CoverImage:  optional(input.CoverImage),
		Country:     optional(input.Country),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := newMedia.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("media validation failed", err)
	}

	if err := uc.mediaRepo.Save(ctx, newMedia); err != nil {
		return nil, err
	}

	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("Failed to invalidate catalog cache after create", zap.Error(err))
	}

	go func() {
		err := uc.publisher.PublishMediaEvent(context.Background(), event.MediaEventPayload{
			EventType: event.MediaEventTypeCreated,
			MediaID:   newMedia.ID,
			Title:     newMedia.Title,
		})
		if err != nil {
			uc.logger.Error("Failed to publish 'media.created' event", err, zap.String("media_id", newMedia.ID.String()))
		}
	}()

	return &CreateMediaOutput{Media: newMedia}, nil
}
