package media

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/quangdng/starlog/adapters/event"
	"github.com/quangdng/starlog/internal/domain/media"
	"github.com/quangdng/starlog/pkg/apperror"
	"github.com/quangdng/starlog/pkg/logger"
)

type fakeMediaRepo struct {
	byID        map[uuid.UUID]*media.Media
	deleteCalls int
	deleteErr   error
}

func newFakeMediaRepo(items ...*media.Media) *fakeMediaRepo {
	f := &fakeMediaRepo{byID: make(map[uuid.UUID]*media.Media)}
	for _, m := range items {
		f.byID[m.ID] = m
	}
	return f
}

func (f *fakeMediaRepo) Save(ctx context.Context, m *media.Media) error {
	cp := *m
	f.byID[m.ID] = &cp
	return nil
}

func (f *fakeMediaRepo) Update(ctx context.Context, m *media.Media) error {
	if _, ok := f.byID[m.ID]; !ok {
		return media.ErrMediaNotFound
	}
	cp := *m
	f.byID[m.ID] = &cp
	return nil
}

func (f *fakeMediaRepo) DeleteWithRatings(ctx context.Context, id uuid.UUID) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return media.ErrMediaNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeMediaRepo) FindByID(ctx context.Context, id uuid.UUID) (*media.Media, error) {
	m, ok := f.byID[id]
	if !ok {
		return nil, media.ErrMediaNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMediaRepo) ListRecent(ctx context.Context, limit int) ([]*media.Media, error) {
	out := make([]*media.Media, 0, len(f.byID))
	for _, m := range f.byID {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMediaRepo) UpdateRatingStats(ctx context.Context, id uuid.UUID, avg float64, count int) error {
	return nil
}

type fakeCache struct {
	invalidations int
}

func (f *fakeCache) GetRecent(ctx context.Context) ([]*media.Media, bool) { return nil, false }
func (f *fakeCache) SetRecent(ctx context.Context, items []*media.Media)  {}
func (f *fakeCache) Invalidate(ctx context.Context) error {
	f.invalidations++
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []event.MediaEventPayload
}

func (f *fakePublisher) PublishMediaEvent(ctx context.Context, p event.MediaEventPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, p)
	return nil
}

func (f *fakePublisher) PublishRatingEvent(ctx context.Context, p event.RatingEventPayload) error {
	return nil
}

func validInput() CreateMediaInput {
	return CreateMediaInput{
		Title:       "  The Godfather  ",
		Type:        media.TypeMovie,
		Genre:       "Drama",
		ReleaseYear: 1972,
		Description: "  A mafia dynasty.  ",
		Country:     "",
	}
}

func TestCreateMedia_TrimsAndNormalizesOptionalFields(t *testing.T) {
	repo := newFakeMediaRepo()
	uc := NewCreateMediaUseCase(repo, &fakeCache{}, &fakePublisher{}, logger.NewZapLogger("development"))

	out, err := uc.Execute(context.Background(), validInput())
	assert.NoError(t, err)

	assert.Equal(t, "The Godfather", out.Media.Title)
	if assert.NotNil(t, out.Media.Description) {
		assert.Equal(t, "A mafia dynasty.", *out.Media.Description)
	}
	assert.Nil(t, out.Media.Country)
	assert.Nil(t, out.Media.CoverImage)
	assert.NotEqual(t, uuid.Nil, out.Media.ID)
	assert.False(t, out.Media.CreatedAt.IsZero())
	assert.Len(t, repo.byID, 1)
}

func TestCreateMedia_GenreMustMatchType(t *testing.T) {
	repo := newFakeMediaRepo()
	uc := NewCreateMediaUseCase(repo, &fakeCache{}, &fakePublisher{}, logger.NewZapLogger("development"))

	// "Action" belongs to movies; after switching the type to book the stale
	// genre selection must be rejected, not silently accepted.
	input := validInput()
	input.Type = media.TypeBook
	input.Genre = "Action"

	_, err := uc.Execute(context.Background(), input)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Empty(t, repo.byID)
}

func TestCreateMedia_MissingRequiredFieldsRejectedLocally(t *testing.T) {
	repo := newFakeMediaRepo()
	uc := NewCreateMediaUseCase(repo, &fakeCache{}, &fakePublisher{}, logger.NewZapLogger("development"))

	input := validInput()
	input.Title = "   "

	_, err := uc.Execute(context.Background(), input)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Empty(t, repo.byID)
}

func TestCreateMedia_InvalidatesCatalogCache(t *testing.T) {
	cache := &fakeCache{}
	uc := NewCreateMediaUseCase(newFakeMediaRepo(), cache, &fakePublisher{}, logger.NewZapLogger("development"))

	_, err := uc.Execute(context.Background(), validInput())
	assert.NoError(t, err)
	assert.Equal(t, 1, cache.invalidations)
}

func existingMedia() *media.Media {
	desc := "old description"
	country := "US"
	return &media.Media{
		ID:          uuid.New(),
		Title:       "Old Title",
		Type:        media.TypeMovie,
		Genre:       "Drama",
		ReleaseYear: 1980,
		Description: &desc,
		Country:     &country,
		CreatedAt:   time.Now().UTC().Add(-time.Hour),
		UpdatedAt:   time.Now().UTC().Add(-time.Hour),
	}
}

func TestUpdateMedia_RewritesAllMutableFields(t *testing.T) {
	m := existingMedia()
	repo := newFakeMediaRepo(m)
	uc := NewUpdateMediaUseCase(repo, &fakeCache{}, &fakePublisher{}, logger.NewZapLogger("development"))

	out, err := uc.Execute(context.Background(), UpdateMediaInput{
		MediaID:     m.ID,
		Title:       "New Title",
		Type:        media.TypeTV,
		Genre:       "Crime",
		ReleaseYear: 2015,
		Description: "",
		Country:     "UK",
	})
	assert.NoError(t, err)

	assert.Equal(t, "New Title", out.Media.Title)
	assert.Equal(t, media.TypeTV, out.Media.Type)
	assert.Equal(t, "Crime", out.Media.Genre)
	assert.Equal(t, 2015, out.Media.ReleaseYear)
	assert.Nil(t, out.Media.Description)
	if assert.NotNil(t, out.Media.Country) {
		assert.Equal(t, "UK", *out.Media.Country)
	}
	assert.True(t, out.Media.UpdatedAt.After(m.UpdatedAt))
	assert.Equal(t, m.CreatedAt, out.Media.CreatedAt)
}

func TestUpdateMedia_NotFound(t *testing.T) {
	uc := NewUpdateMediaUseCase(newFakeMediaRepo(), &fakeCache{}, &fakePublisher{}, logger.NewZapLogger("development"))

	_, err := uc.Execute(context.Background(), UpdateMediaInput{
		MediaID:     uuid.New(),
		Title:       "Whatever",
		Type:        media.TypeMovie,
		Genre:       "Drama",
		ReleaseYear: 2000,
	})
	assert.ErrorIs(t, err, media.ErrMediaNotFound)
}

func TestDeleteMedia_RemovesMediaWithRatings(t *testing.T) {
	m := existingMedia()
	repo := newFakeMediaRepo(m)
	cache := &fakeCache{}
	uc := NewDeleteMediaUseCase(repo, cache, &fakePublisher{}, logger.NewZapLogger("development"))

	err := uc.Execute(context.Background(), DeleteMediaInput{MediaID: m.ID})
	assert.NoError(t, err)
	assert.Equal(t, 1, repo.deleteCalls)
	assert.Empty(t, repo.byID)
	assert.Equal(t, 1, cache.invalidations)
}

func TestDeleteMedia_FailureLeavesRecordAndCache(t *testing.T) {
	m := existingMedia()
	repo := newFakeMediaRepo(m)
	repo.deleteErr = errors.New("connection reset")
	cache := &fakeCache{}
	uc := NewDeleteMediaUseCase(repo, cache, &fakePublisher{}, logger.NewZapLogger("development"))

	err := uc.Execute(context.Background(), DeleteMediaInput{MediaID: m.ID})
	assert.Error(t, err)
	assert.Len(t, repo.byID, 1)
	assert.Equal(t, 0, cache.invalidations)
}
