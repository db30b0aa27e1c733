package tours

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validCreate() CreateTourRequest {
	return CreateTourRequest{
		Name:         "The Forest Hiker",
		Duration:     5,
		MaxGroupSize: 25,
		Difficulty:   DifficultyEasy,
		Price:        397,
		Summary:      "Breathtaking hike through the Canadian Banff National Park",
		ImageCover:   "tour-1-cover.jpg",
	}
}

func TestValidateCreate_OK(t *testing.T) {
	req := validCreate()
	require.NoError(t, ValidateCreate(&req))
}

func TestValidateCreate_NameBounds(t *testing.T) {
	req := validCreate()
	req.Name = "Too short"
	require.Error(t, ValidateCreate(&req))

	req.Name = "This tour name is way way way too long to be acceptable"
	require.Error(t, ValidateCreate(&req))
}

func TestValidateCreate_DifficultyEnum(t *testing.T) {
	req := validCreate()
	req.Difficulty = "impossible"
	require.Error(t, ValidateCreate(&req))

	for _, d := range []string{DifficultyEasy, DifficultyMedium, DifficultyDifficult} {
		req.Difficulty = d
		require.NoError(t, ValidateCreate(&req))
	}
}

func TestValidateCreate_DiscountBelowPrice(t *testing.T) {
	req := validCreate()
	req.PriceDiscount = req.Price + 1
	require.Error(t, ValidateCreate(&req))

	req.PriceDiscount = req.Price - 100
	require.NoError(t, ValidateCreate(&req))

	// zero means no discount
	req.PriceDiscount = 0
	require.NoError(t, ValidateCreate(&req))
}

func TestValidateUpdate_PartialPatch(t *testing.T) {
	// empty patch passes; nothing to check
	require.NoError(t, ValidateUpdate(&UpdateTourRequest{}, 400))

	bad := "hard"
	require.Error(t, ValidateUpdate(&UpdateTourRequest{Difficulty: &bad}, 400))

	short := "Too short"
	require.Error(t, ValidateUpdate(&UpdateTourRequest{Name: &short}, 400))
}

func TestValidateUpdate_DiscountAgainstEffectivePrice(t *testing.T) {
	discount := 350.0

	// against the current price
	require.NoError(t, ValidateUpdate(&UpdateTourRequest{PriceDiscount: &discount}, 400))
	require.Error(t, ValidateUpdate(&UpdateTourRequest{PriceDiscount: &discount}, 300))

	// a patched price wins over the current one
	newPrice := 300.0
	require.Error(t, ValidateUpdate(&UpdateTourRequest{Price: &newPrice, PriceDiscount: &discount}, 1000))
}

func TestSlugify(t *testing.T) {
	require.Equal(t, "the-forest-hiker", Slugify("The Forest Hiker"))
	require.Equal(t, "the-snow-adventurer", Slugify("The Snow  Adventurer!"))
}

func TestDurationWeeks(t *testing.T) {
	tour := Tour{Duration: 14}
	require.InDelta(t, 2.0, tour.DurationWeeks(), 1e-9)
}
