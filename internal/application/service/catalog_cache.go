package service

import (
	"context"

	"github.com/quangdng/starlog/internal/domain/media"
)

// CatalogCache holds the most-recent catalog page. A miss is not an error;
// callers fall through to the repository.
type CatalogCache interface {
	GetRecent(ctx context.Context) ([]*media.Media, bool)
	SetRecent(ctx context.Context, items []*media.Media)
	Invalidate(ctx context.Context) error
}
