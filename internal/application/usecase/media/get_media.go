package media

import (
	"context"

	"github.com/google/uuid"

	"github.com/quangdng/starlog/internal/domain/media"
)

type GetMediaUseCase struct {
	mediaRepo media.Repository
}

func NewGetMediaUseCase(repo media.Repository) *GetMediaUseCase {
	return &GetMediaUseCase{mediaRepo: repo}
}

func (uc *GetMediaUseCase) Execute(ctx context.Context, id uuid.UUID) (*media.Media, error) {
	return uc.mediaRepo.FindByID(ctx, id)
}
