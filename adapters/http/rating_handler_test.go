package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/quangdng/starlog/adapters/event"
	ratingUC "github.com/quangdng/starlog/internal/application/usecase/rating"
	"github.com/quangdng/starlog/internal/domain/media"
	"github.com/quangdng/starlog/internal/domain/rating"
	"github.com/quangdng/starlog/pkg/logger"
)

type stubRatingRepo struct {
	existing    *rating.Rating
	saveCalls   int
	updateCalls int
}

func (f *stubRatingRepo) Save(ctx context.Context, rt *rating.Rating) error {
	f.saveCalls++
	return nil
}
func (f *stubRatingRepo) Update(ctx context.Context, rt *rating.Rating) error {
	f.updateCalls++
	return nil
}
func (f *stubRatingRepo) FindByUserAndMedia(ctx context.Context, userID, mediaID uuid.UUID) (*rating.Rating, error) {
	if f.existing == nil {
		return nil, rating.ErrRatingNotFound
	}
	return f.existing, nil
}
func (f *stubRatingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*rating.Rating, error) {
	if f.existing == nil {
		return []*rating.Rating{}, nil
	}
	return []*rating.Rating{f.existing}, nil
}
func (f *stubRatingRepo) StatsByMedia(ctx context.Context, mediaID uuid.UUID) (float64, int, error) {
	return 0, 0, nil
}

type stubMediaRepo struct {
	item *media.Media
}

func (f *stubMediaRepo) Save(ctx context.Context, m *media.Media) error           { return nil }
func (f *stubMediaRepo) Update(ctx context.Context, m *media.Media) error         { return nil }
func (f *stubMediaRepo) DeleteWithRatings(ctx context.Context, id uuid.UUID) error { return nil }
func (f *stubMediaRepo) FindByID(ctx context.Context, id uuid.UUID) (*media.Media, error) {
	if f.item == nil || f.item.ID != id {
		return nil, media.ErrMediaNotFound
	}
	return f.item, nil
}
func (f *stubMediaRepo) ListRecent(ctx context.Context, limit int) ([]*media.Media, error) {
	return nil, nil
}
func (f *stubMediaRepo) UpdateRatingStats(ctx context.Context, id uuid.UUID, avg float64, count int) error {
	return nil
}

type noopPublisher struct{}

func (noopPublisher) PublishMediaEvent(ctx context.Context, p event.MediaEventPayload) error {
	return nil
}
func (noopPublisher) PublishRatingEvent(ctx context.Context, p event.RatingEventPayload) error {
	return nil
}

func newRatingTestRouter(rRepo *stubRatingRepo, mRepo *stubMediaRepo, userID uuid.UUID) *gin.Engine {
	appLogger := logger.NewZapLogger("development")
	submitUC := ratingUC.NewSubmitRatingUseCase(rRepo, mRepo, noopPublisher{}, appLogger)
	listUC := ratingUC.NewListRatingsUseCase(rRepo)
	handler := NewRatingHandler(submitUC, listUC)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(GinContextKeyUserID, userID)
		c.Next()
	})
	router.PUT("/api/ratings", handler.SubmitRating)
	router.GET("/api/ratings", handler.ListMyRatings)
	return router
}

func submit(router *gin.Engine, body gin.H) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPut, "/api/ratings", bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestSubmitRating_ZeroRatingRejectedWithoutStoreCall(t *testing.T) {
	rRepo := &stubRatingRepo{}
	m := &media.Media{ID: uuid.New(), Title: "X", Type: media.TypeMovie, Genre: "Drama", ReleaseYear: 2000}
	router := newRatingTestRouter(rRepo, &stubMediaRepo{item: m}, uuid.New())

	rr := submit(router, gin.H{"media_id": m.ID.String(), "rating": 0})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 0, rRepo.saveCalls)
	assert.Equal(t, 0, rRepo.updateCalls)
}

func TestSubmitRating_CreateReturns201(t *testing.T) {
	rRepo := &stubRatingRepo{}
	m := &media.Media{ID: uuid.New(), Title: "X", Type: media.TypeMovie, Genre: "Drama", ReleaseYear: 2000}
	router := newRatingTestRouter(rRepo, &stubMediaRepo{item: m}, uuid.New())

	rr := submit(router, gin.H{"media_id": m.ID.String(), "rating": 4})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, 1, rRepo.saveCalls)

	var dto RatingDTO
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
	assert.Equal(t, 4, dto.Rating)
	assert.Nil(t, dto.Review)
}

func TestSubmitRating_ExistingReturns200AndKeepsID(t *testing.T) {
	userID := uuid.New()
	m := &media.Media{ID: uuid.New(), Title: "X", Type: media.TypeMovie, Genre: "Drama", ReleaseYear: 2000}
	existing := &rating.Rating{
		ID: uuid.New(), UserID: userID, MediaID: m.ID, Value: 3,
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	rRepo := &stubRatingRepo{existing: existing}
	router := newRatingTestRouter(rRepo, &stubMediaRepo{item: m}, userID)

	rr := submit(router, gin.H{"media_id": m.ID.String(), "rating": 5})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, rRepo.saveCalls)
	assert.Equal(t, 1, rRepo.updateCalls)

	var dto RatingDTO
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
	assert.Equal(t, existing.ID, dto.ID)
	assert.Equal(t, 5, dto.Rating)
}

func TestSubmitRating_UnknownMediaReturns404(t *testing.T) {
	router := newRatingTestRouter(&stubRatingRepo{}, &stubMediaRepo{}, uuid.New())

	rr := submit(router, gin.H{"media_id": uuid.New().String(), "rating": 3})

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSubmitRating_MalformedMediaIDReturns400(t *testing.T) {
	router := newRatingTestRouter(&stubRatingRepo{}, &stubMediaRepo{}, uuid.New())

	rr := submit(router, gin.H{"media_id": "not-a-uuid", "rating": 3})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListMyRatings_ReturnsUserRatings(t *testing.T) {
	userID := uuid.New()
	mediaID := uuid.New()
	review := "solid"
	existing := &rating.Rating{
		ID: uuid.New(), UserID: userID, MediaID: mediaID, Value: 4, Review: &review,
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	router := newRatingTestRouter(&stubRatingRepo{existing: existing}, &stubMediaRepo{}, userID)

	req := httptest.NewRequest(http.MethodGet, "/api/ratings", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var dtos []RatingDTO
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dtos))
	assert.Len(t, dtos, 1)
	assert.Equal(t, mediaID, dtos[0].MediaID)
}
