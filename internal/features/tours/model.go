package tours

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DifficultyEasy      = "easy"
	DifficultyMedium    = "medium"
	DifficultyDifficult = "difficult"
)

// Rating defaults applied to new tours and restored when the last review of
// a tour is removed.
const (
	DefaultRatingsAverage  = 4.5
	DefaultRatingsQuantity = 0
)

type Tour struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Slug            string             `bson:"slug" json:"slug"`
	Duration        int                `bson:"duration" json:"duration"`
	MaxGroupSize    int                `bson:"maxGroupSize" json:"maxGroupSize"`
	Difficulty      string             `bson:"difficulty" json:"difficulty"`
	RatingsAverage  float64            `bson:"ratingsAverage" json:"ratingsAverage"`
	RatingsQuantity int                `bson:"ratingsQuantity" json:"ratingsQuantity"`
	Price           float64            `bson:"price" json:"price"`
	PriceDiscount   float64            `bson:"priceDiscount,omitempty" json:"priceDiscount,omitempty"`
	Summary         string             `bson:"summary" json:"summary"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageCover      string             `bson:"imageCover" json:"imageCover"`
	Images          []string           `bson:"images" json:"images"`
	StartDates      []time.Time        `bson:"startDates" json:"startDates"`
	SecretTour      bool               `bson:"secretTour" json:"-"`
	CreatedAt       time.Time          `bson:"createdAt" json:"-"`
}

// DurationWeeks is the derived field the API exposes alongside duration.
func (t *Tour) DurationWeeks() float64 {
	return float64(t.Duration) / 7
}

// MarshalJSON adds durationWeeks to the serialized tour. Derived on the way
// out, never stored.
func (t Tour) MarshalJSON() ([]byte, error) {
	type alias Tour
	return json.Marshal(struct {
		alias
		DurationWeeks float64 `json:"durationWeeks"`
	}{alias(t), t.DurationWeeks()})
}

type CreateTourRequest struct {
	Name          string      `json:"name"`
	Duration      int         `json:"duration"`
	MaxGroupSize  int         `json:"maxGroupSize"`
	Difficulty    string      `json:"difficulty"`
	Price         float64     `json:"price"`
	PriceDiscount float64     `json:"priceDiscount"`
	Summary       string      `json:"summary"`
	Description   string      `json:"description"`
	ImageCover    string      `json:"imageCover"`
	Images        []string    `json:"images"`
	StartDates    []time.Time `json:"startDates"`
	SecretTour    bool        `json:"secretTour"`
}

// UpdateTourRequest is a partial patch; pointers distinguish "absent" from
// zero values.
type UpdateTourRequest struct {
	Name          *string      `json:"name"`
	Duration      *int         `json:"duration"`
	MaxGroupSize  *int         `json:"maxGroupSize"`
	Difficulty    *string      `json:"difficulty"`
	Price         *float64     `json:"price"`
	PriceDiscount *float64     `json:"priceDiscount"`
	Summary       *string      `json:"summary"`
	Description   *string      `json:"description"`
	ImageCover    *string      `json:"imageCover"`
	Images        *[]string    `json:"images"`
	StartDates    *[]time.Time `json:"startDates"`
	SecretTour    *bool        `json:"secretTour"`
}

// TourStats is one row of the by-difficulty aggregation.
type TourStats struct {
	Difficulty string  `bson:"_id" json:"difficulty"`
	NumTours   int     `bson:"numTours" json:"numTours"`
	NumRatings int     `bson:"numRatings" json:"numRatings"`
	AvgRating  float64 `bson:"avgRating" json:"avgRating"`
	AvgPrice   float64 `bson:"avgPrice" json:"avgPrice"`
	MinPrice   float64 `bson:"minPrice" json:"minPrice"`
	MaxPrice   float64 `bson:"maxPrice" json:"maxPrice"`
}

// MonthlyPlan is one row of the starts-per-month aggregation.
type MonthlyPlan struct {
	Month         int      `bson:"month" json:"month"`
	NumTourStarts int      `bson:"numTourStarts" json:"numTourStarts"`
	Tours         []string `bson:"tours" json:"tours"`
}
