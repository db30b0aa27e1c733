package reviews

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trekline/gotours/internal/features/tours"
)

func TestValidateCreate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateReviewRequest
		wantErr bool
	}{
		{"valid", CreateReviewRequest{Review: "Loved it", Rating: 4.5}, false},
		{"empty review", CreateReviewRequest{Review: "   ", Rating: 4}, true},
		{"rating too low", CreateReviewRequest{Review: "Meh", Rating: 0.5}, true},
		{"rating too high", CreateReviewRequest{Review: "Best ever", Rating: 5.5}, true},
		{"rating at bounds", CreateReviewRequest{Review: "Fine", Rating: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreate(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	text := "Updated thoughts"
	empty := "  "
	good := 4.0
	bad := 6.0

	assert.Error(t, ValidateUpdate(&UpdateReviewRequest{}), "empty patch")
	assert.Error(t, ValidateUpdate(&UpdateReviewRequest{Review: &empty}))
	assert.Error(t, ValidateUpdate(&UpdateReviewRequest{Rating: &bad}))
	assert.NoError(t, ValidateUpdate(&UpdateReviewRequest{Review: &text}))
	assert.NoError(t, ValidateUpdate(&UpdateReviewRequest{Rating: &good}))
	assert.NoError(t, ValidateUpdate(&UpdateReviewRequest{Review: &text, Rating: &good}))
}

func TestRollup(t *testing.T) {
	t.Run("no reviews falls back to defaults", func(t *testing.T) {
		quantity, average := rollup(nil)
		assert.Equal(t, tours.DefaultRatingsQuantity, quantity)
		assert.Equal(t, tours.DefaultRatingsAverage, average)
	})

	t.Run("uses the aggregated row", func(t *testing.T) {
		quantity, average := rollup([]ratingStats{{NRating: 7, AvgRating: 4.2}})
		assert.Equal(t, 7, quantity)
		assert.Equal(t, 4.2, average)
	})
}
