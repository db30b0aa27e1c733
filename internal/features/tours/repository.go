package tours

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/trekline/gotours/internal/pkg/apperror"
	"github.com/trekline/gotours/internal/pkg/query"
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection("tours")}
}

// secretFilter applies the secret-tour exclusion on top of a caller filter.
// The exclusion is written last so a requester key on secretTour can never
// override it. Every read goes through this unless the caller explicitly
// bypasses.
func secretFilter(extra bson.M) bson.M {
	filter := bson.M{}
	for k, v := range extra {
		filter[k] = v
	}
	filter["secretTour"] = bson.M{"$ne": true}
	return filter
}

func (r *Repository) Create(ctx context.Context, req *CreateTourRequest) (*Tour, error) {
	tour := &Tour{
		Name:            req.Name,
		Slug:            Slugify(req.Name),
		Duration:        req.Duration,
		MaxGroupSize:    req.MaxGroupSize,
		Difficulty:      req.Difficulty,
		RatingsAverage:  DefaultRatingsAverage,
		RatingsQuantity: DefaultRatingsQuantity,
		Price:           req.Price,
		PriceDiscount:   req.PriceDiscount,
		Summary:         req.Summary,
		Description:     req.Description,
		ImageCover:      req.ImageCover,
		Images:          req.Images,
		StartDates:      req.StartDates,
		SecretTour:      req.SecretTour,
		CreatedAt:       time.Now(),
	}
	if tour.Images == nil {
		tour.Images = []string{}
	}
	if tour.StartDates == nil {
		tour.StartDates = []time.Time{}
	}

	result, err := r.collection.InsertOne(ctx, tour)
	if err != nil {
		return nil, err
	}

	tour.ID = result.InsertedID.(primitive.ObjectID)
	return tour, nil
}

// List runs a filtered find with the requester's query features on top of
// the secret-tour exclusion.
func (r *Repository) List(ctx context.Context, q *query.Options) ([]Tour, error) {
	cursor, err := r.collection.Find(ctx, secretFilter(q.Filter), q.FindOptions())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tours := []Tour{}
	if err := cursor.All(ctx, &tours); err != nil {
		return nil, err
	}
	return tours, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Tour, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound("Invalid ID")
	}

	var tour Tour
	err = r.collection.FindOne(ctx, secretFilter(bson.M{"_id": objectID})).Decode(&tour)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &tour, nil
}

// Update applies a partial patch, recomputing the slug when the name
// changes, and returns the number of matched documents.
func (r *Repository) Update(ctx context.Context, id string, req *UpdateTourRequest) (*Tour, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound("Invalid ID")
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
		set["slug"] = Slugify(*req.Name)
	}
	if req.Duration != nil {
		set["duration"] = *req.Duration
	}
	if req.MaxGroupSize != nil {
		set["maxGroupSize"] = *req.MaxGroupSize
	}
	if req.Difficulty != nil {
		set["difficulty"] = *req.Difficulty
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.PriceDiscount != nil {
		set["priceDiscount"] = *req.PriceDiscount
	}
	if req.Summary != nil {
		set["summary"] = *req.Summary
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.ImageCover != nil {
		set["imageCover"] = *req.ImageCover
	}
	if req.Images != nil {
		set["images"] = *req.Images
	}
	if req.StartDates != nil {
		set["startDates"] = *req.StartDates
	}
	if req.SecretTour != nil {
		set["secretTour"] = *req.SecretTour
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, nil
	}

	var tour Tour
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&tour); err != nil {
		return nil, err
	}
	return &tour, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperror.NotFound("Invalid ID")
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperror.NotFound("Invalid ID")
	}
	return nil
}

// AddImage sets the cover or appends to the gallery.
func (r *Repository) AddImage(ctx context.Context, id string, url string, cover bool) (*Tour, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound("Invalid ID")
	}

	update := bson.M{"$push": bson.M{"images": url}}
	if cover {
		update = bson.M{"$set": bson.M{"imageCover": url}}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, nil
	}

	var tour Tour
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&tour); err != nil {
		return nil, err
	}
	return &tour, nil
}

// Stats groups non-secret, well-rated tours by difficulty.
func (r *Repository) Stats(ctx context.Context) ([]TourStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: secretFilter(bson.M{"ratingsAverage": bson.M{"$gte": 4.5}})}},
		{{Key: "$group", Value: bson.M{
			"_id":        bson.M{"$toUpper": "$difficulty"},
			"numTours":   bson.M{"$sum": 1},
			"numRatings": bson.M{"$sum": "$ratingsQuantity"},
			"avgRating":  bson.M{"$avg": "$ratingsAverage"},
			"avgPrice":   bson.M{"$avg": "$price"},
			"minPrice":   bson.M{"$min": "$price"},
			"maxPrice":   bson.M{"$max": "$price"},
		}}},
		{{Key: "$sort", Value: bson.M{"avgPrice": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stats := []TourStats{}
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// MonthlyPlan unwinds start dates for one year and counts tour starts per
// month, busiest month first.
func (r *Repository) MonthlyPlan(ctx context.Context, year int) ([]MonthlyPlan, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)

	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$startDates"}},
		{{Key: "$match", Value: secretFilter(bson.M{
			"startDates": bson.M{"$gte": from, "$lte": to},
		})}},
		{{Key: "$group", Value: bson.M{
			"_id":           bson.M{"$month": "$startDates"},
			"numTourStarts": bson.M{"$sum": 1},
			"tours":         bson.M{"$push": "$name"},
		}}},
		{{Key: "$addFields", Value: bson.M{"month": "$_id"}}},
		{{Key: "$project", Value: bson.M{"_id": 0}}},
		{{Key: "$sort", Value: bson.M{"numTourStarts": -1}}},
		{{Key: "$limit", Value: 12}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	plan := []MonthlyPlan{}
	if err := cursor.All(ctx, &plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// UpdateRatingStats writes the recomputed review rollup onto a tour. Called
// by the reviews feature after every successful review mutation.
func (r *Repository) UpdateRatingStats(ctx context.Context, tourID primitive.ObjectID, quantity int, average float64) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": tourID}, bson.M{"$set": bson.M{
		"ratingsQuantity": quantity,
		"ratingsAverage":  average,
	}})
	return err
}
