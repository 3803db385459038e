package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/quangdng/starlog/internal/domain/media"
	"github.com/quangdng/starlog/internal/domain/rating"
)

// Media DTOs

type CreateOrUpdateMediaRequest struct {
	Title       string `json:"title" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Genre       string `json:"genre" binding:"required"`
	ReleaseYear int    `json:"release_year" binding:"required"`
	Description string `json:"description"`
	CoverImage  string `json:"cover_image"`
	Country     string `json:"country"`
}

type MediaDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Genre       string    `json:"genre"`
	ReleaseYear int       `json:"release_year"`
	Description *string   `json:"description"`
	CoverImage  string    `json:"cover_image"`
	Country     *string   `json:"country"`
	AvgRating   float64   `json:"avg_rating"`
	RatingCount int       `json:"rating_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToMediaDTO(m *media.Media) MediaDTO {
	return MediaDTO{
		ID:          m.ID,
		Title:       m.Title,
		Type:        string(m.Type),
		Genre:       m.Genre,
		ReleaseYear: m.ReleaseYear,
		Description: m.Description,
		CoverImage:  m.CoverOrPlaceholder(),
		Country:     m.Country,
		AvgRating:   m.AvgRating,
		RatingCount: m.RatingCount,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// Rating DTOs

type SubmitRatingRequest struct {
	MediaID string `json:"media_id" binding:"required"`
	Rating  int    `json:"rating"`
	Review  string `json:"review"`
}

type RatingDTO struct {
	ID        uuid.UUID `json:"id"`
	MediaID   uuid.UUID `json:"media_id"`
	Rating    int       `json:"rating"`
	Review    *string   `json:"review"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToRatingDTO(r *rating.Rating) RatingDTO {
	return RatingDTO{
		ID:        r.ID,
		MediaID:   r.MediaID,
		Rating:    r.Value,
		Review:    r.Review,
		UpdatedAt: r.UpdatedAt,
	}
}

// Catalog DTOs

type CatalogItemDTO struct {
	MediaDTO
	MyRating *RatingDTO `json:"my_rating"`
}

func ToCatalogItemDTO(m *media.Media, r *rating.Rating) CatalogItemDTO {
	item := CatalogItemDTO{MediaDTO: ToMediaDTO(m)}
	if r != nil {
		dto := ToRatingDTO(r)
		item.MyRating = &dto
	}
	return item
}
