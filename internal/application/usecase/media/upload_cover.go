package media

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quangdng/starlog/internal/application/service"
	"github.com/quangdng/starlog/internal/domain/media"
	"github.com/quangdng/starlog/pkg/apperror"
	"github.com/quangdng/starlog/pkg/logger"
)

type UploadCoverUseCase struct {
	mediaRepo media.Repository
	uploader  service.Uploader
	cache     service.CatalogCache
	logger    logger.Logger
}

func NewUploadCoverUseCase(repo media.Repository, up service.Uploader, cache service.CatalogCache, log logger.Logger) *UploadCoverUseCase {
	return &UploadCoverUseCase{
		mediaRepo: repo,
		uploader:  up,
		cache:     cache,
		logger:    log,
	}
}

type UploadCoverInput struct {
	MediaID uuid.UUID
	File    io.Reader
}

type UploadCoverOutput struct {
	CoverImage string
}

func (uc *UploadCoverUseCase) Execute(ctx context.Context, input UploadCoverInput) (*UploadCoverOutput, error) {
	existing, err := uc.mediaRepo.FindByID(ctx, input.MediaID)
	if err != nil {
		return nil, err
	}

	folder := fmt.Sprintf("media/%s/covers", existing.Type)
	publicID := existing.ID.String()

	coverURL, err := uc.uploader.Upload(ctx, input.File, folder, publicID)
	if err != nil {
		return nil, apperror.NewInternal("failed to upload cover image", err)
	}

	existing.CoverImage = &coverURL
	existing.UpdatedAt = time.Now().UTC()

	if err := uc.mediaRepo.Update(ctx, existing); err != nil {
		go uc.uploader.Delete(context.Background(), folder+"/"+publicID)
		return nil, err
	}

	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("Failed to invalidate catalog cache after cover upload", zap.Error(err))
	}

	return &UploadCoverOutput{CoverImage: coverURL}, nil
}
