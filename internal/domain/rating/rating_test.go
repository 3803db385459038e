package rating

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRating_Validate(t *testing.T) {
	base := Rating{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		MediaID:   uuid.New(),
		Value:     4,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	t.Run("valid rating passes", func(t *testing.T) {
		r := base
		assert.NoError(t, r.Validate())
	})

	t.Run("zero sentinel rejected", func(t *testing.T) {
		r := base
		r.Value = 0
		assert.ErrorIs(t, r.Validate(), ErrValueRange)
	})

	t.Run("value above five rejected", func(t *testing.T) {
		r := base
		r.Value = 6
		assert.ErrorIs(t, r.Validate(), ErrValueRange)
	})

	t.Run("oversized review rejected", func(t *testing.T) {
		r := base
		long := make([]rune, MaxReviewLen+1)
		for i := range long {
			long[i] = 'x'
		}
		s := string(long)
		r.Review = &s
		assert.ErrorIs(t, r.Validate(), ErrReviewSize)
	})
}

func TestNormalizeReview(t *testing.T) {
	t.Run("whitespace-only becomes absent", func(t *testing.T) {
		assert.Nil(t, NormalizeReview("   "))
		assert.Nil(t, NormalizeReview(""))
		assert.Nil(t, NormalizeReview("\n\t"))
	})

	t.Run("surrounding whitespace trimmed", func(t *testing.T) {
		got := NormalizeReview("  great movie  ")
		if assert.NotNil(t, got) {
			assert.Equal(t, "great movie", *got)
		}
	})
}
