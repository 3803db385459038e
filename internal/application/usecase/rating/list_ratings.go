package rating

import (
	"context"

	"github.com/google/uuid"

	"github.com/quangdng/starlog/internal/domain/rating"
)

type ListRatingsUseCase struct {
	ratingRepo rating.Repository
}

func NewListRatingsUseCase(repo rating.Repository) *ListRatingsUseCase {
	return &ListRatingsUseCase{ratingRepo: repo}
}

func (uc *ListRatingsUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*rating.Rating, error) {
	return uc.ratingRepo.ListByUser(ctx, userID)
}
