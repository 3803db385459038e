package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quangdng/starlog/internal/application/service"
	"github.com/quangdng/starlog/internal/domain/media"
	"github.com/quangdng/starlog/internal/domain/rating"
	"github.com/quangdng/starlog/pkg/logger"
)

// BrowseCatalogUseCase loads the most-recent catalog page together with the
// calling user's ratings, keyed by media id for O(1) lookup per card.
type BrowseCatalogUseCase struct {
	mediaRepo  media.Repository
	ratingRepo rating.Repository
	cache      service.CatalogCache
	logger     logger.Logger
}

func NewBrowseCatalogUseCase(mRepo media.Repository, rRepo rating.Repository, cache service.CatalogCache, log logger.Logger) *BrowseCatalogUseCase {
	return &BrowseCatalogUseCase{
		mediaRepo:  mRepo,
		ratingRepo: rRepo,
		cache:      cache,
		logger:     log,
	}
}

type BrowseCatalogInput struct {
	UserID uuid.UUID
	Filter string
}

type BrowseCatalogOutput struct {
	Items          []*media.Media
	RatingsByMedia map[uuid.UUID]*rating.Rating
}

func (uc *BrowseCatalogUseCase) Execute(ctx context.Context, input BrowseCatalogInput) (*BrowseCatalogOutput, error) {

	items, hit := uc.cache.GetRecent(ctx)
	if !hit {
		var err error
		items, err = uc.mediaRepo.ListRecent(ctx, media.RecentCatalogLimit)
		if err != nil {
			uc.logger.Error("Failed to load recent catalog page", err)
			return nil, err
		}
		uc.cache.SetRecent(ctx, items)
	}

	// The filter narrows the loaded page in memory; it never triggers
	// another store query.
	if input.Filter != "" {
		filtered := make([]*media.Media, 0, len(items))
		for _, m := range items {
			if m.Matches(input.Filter) {
				filtered = append(filtered, m)
			}
		}
		items = filtered
	}

	ratings, err := uc.ratingRepo.ListByUser(ctx, input.UserID)
	if err != nil {
		uc.logger.Error("Failed to load user ratings", err, zap.String("user_id", input.UserID.String()))
		return nil, err
	}

	byMedia := make(map[uuid.UUID]*rating.Rating, len(ratings))
	for _, r := range ratings {
		byMedia[r.MediaID] = r
	}

	return &BrowseCatalogOutput{
		Items:          items,
		RatingsByMedia: byMedia,
	}, nil
}
