package media

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type MediaType string

const (
	TypeMovie MediaType = "movie"
	TypeTV    MediaType = "tv"
	TypeBook  MediaType = "book"
)

const (
	MinReleaseYear     = 1900
	MaxDescriptionLen  = 1000
	PlaceholderCover   = "https://placehold.co/300x450?text=No+Cover"
	RecentCatalogLimit = 20
)

// genresByType is the allowed genre vocabulary per media type. A genre
// selected for one type is not assumed valid for another.
var genresByType = map[MediaType][]string{
	TypeMovie: {"Action", "Comedy", "Drama", "Horror", "Sci-Fi", "Romance", "Thriller", "Documentary", "Animation"},
	TypeTV:    {"Drama", "Comedy", "Reality", "Documentary", "Crime", "Sci-Fi", "Animation", "Talk Show"},
	TypeBook:  {"Fiction", "Non-Fiction", "Fantasy", "Mystery", "Biography", "History", "Romance", "Sci-Fi", "Self-Help"},
}

type Media struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Type        MediaType `json:"type"`
	Genre       string    `json:"genre"`
	ReleaseYear int       `json:"release_year"`
	Description *string   `json:"description"`
	CoverImage  *string   `json:"cover_image"`
	Country     *string   `json:"country"`
	AvgRating   float64   `json:"avg_rating"`
	RatingCount int       `json:"rating_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var (
	ErrMediaNotFound   = errors.New("media not found")
	ErrEmptyTitle      = errors.New("title must not be empty")
	ErrInvalidType     = errors.New("type must be one of movie, tv, book")
	ErrInvalidGenre    = errors.New("genre is not valid for the media type")
	ErrInvalidYear     = fmt.Errorf("release year must be between %d and five years from now", MinReleaseYear)
	ErrDescriptionSize = fmt.Errorf("description must be at most %d characters", MaxDescriptionLen)
)

func GenresFor(t MediaType) []string {
	return genresByType[t]
}

func ValidGenre(t MediaType, genre string) bool {
	for _, g := range genresByType[t] {
		if g == genre {
			return true
		}
	}
	return false
}

func (m *Media) Validate() error {
	if m.Title == "" {
		return ErrEmptyTitle
	}
	switch m.Type {
	case TypeMovie, TypeTV, TypeBook:
	default:
		return ErrInvalidType
	}
	if !ValidGenre(m.Type, m.Genre) {
		return ErrInvalidGenre
	}
	maxYear := time.Now().UTC().Year() + 5
	if m.ReleaseYear < MinReleaseYear || m.ReleaseYear > maxYear {
		return ErrInvalidYear
	}
	if m.Description != nil && len([]rune(*m.Description)) > MaxDescriptionLen {
		return ErrDescriptionSize
	}
	return nil
}

// CoverOrPlaceholder resolves the cover URL shown on catalog cards.
func (m *Media) CoverOrPlaceholder() string {
	if m.CoverImage != nil && *m.CoverImage != "" {
		return *m.CoverImage
	}
	return PlaceholderCover
}

// Matches reports whether the media survives the catalog text filter:
// empty filter matches everything, otherwise the filter must be a
// case-insensitive substring of the title or of the description. A media
// without a description never matches on the description side.
func (m *Media) Matches(filter string) bool {
	if filter == "" {
		return true
	}
	if containsFold(m.Title, filter) {
		return true
	}
	return m.Description != nil && containsFold(*m.Description, filter)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

type Repository interface {
	Save(ctx context.Context, media *Media) error
	Update(ctx context.Context, media *Media) error
	// DeleteWithRatings removes the media and every rating referencing it
	// in a single transaction.
	DeleteWithRatings(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Media, error)
	ListRecent(ctx context.Context, limit int) ([]*Media, error)
	UpdateRatingStats(ctx context.Context, id uuid.UUID, avg float64, count int) error
}
