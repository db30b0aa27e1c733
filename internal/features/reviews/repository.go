package reviews

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/trekline/gotours/internal/features/tours"
	"github.com/trekline/gotours/internal/pkg/apperror"
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection("reviews")}
}

// authorLookup embeds the author's name and photo into review reads.
var authorLookup = mongo.Pipeline{
	{{Key: "$lookup", Value: bson.M{
		"from":         "users",
		"localField":   "user",
		"foreignField": "_id",
		"as":           "author",
	}}},
	{{Key: "$unwind", Value: bson.M{"path": "$author", "preserveNullAndEmptyArrays": true}}},
	{{Key: "$addFields", Value: bson.M{"author": bson.M{"name": "$author.name", "photo": "$author.photo"}}}},
}

func (r *Repository) Create(ctx context.Context, review *Review) error {
	review.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		return err
	}

	review.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// List returns reviews with their author populated, optionally scoped to
// one tour.
func (r *Repository) List(ctx context.Context, tourID *primitive.ObjectID) ([]Review, error) {
	match := bson.M{}
	if tourID != nil {
		match["tour"] = *tourID
	}

	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
	}, authorLookup...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := []Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Review, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound("Invalid ID")
	}

	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": objectID}}},
	}, authorLookup...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []Review
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// Update patches a review and returns the updated document, or nil if the
// filter matched nothing.
func (r *Repository) Update(ctx context.Context, id string, filter bson.M, req *UpdateReviewRequest) (*Review, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound("Invalid ID")
	}
	filter["_id"] = objectID

	set := bson.M{}
	if req.Review != nil {
		set["review"] = *req.Review
	}
	if req.Rating != nil {
		set["rating"] = *req.Rating
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, nil
	}

	var review Review
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&review); err != nil {
		return nil, err
	}
	return &review, nil
}

// Delete removes a review matching the filter and returns it, so the caller
// still knows which tour to recompute.
func (r *Repository) Delete(ctx context.Context, id string, filter bson.M) (*Review, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound("Invalid ID")
	}
	filter["_id"] = objectID

	var review Review
	err = r.collection.FindOneAndDelete(ctx, filter).Decode(&review)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// ratingStats is the single row the rollup aggregation produces.
type ratingStats struct {
	NRating   int     `bson:"nRating"`
	AvgRating float64 `bson:"avgRating"`
}

// rollup derives the fields written back to the tour. No remaining reviews
// means the documented defaults, not stale values.
func rollup(stats []ratingStats) (quantity int, average float64) {
	if len(stats) == 0 {
		return tours.DefaultRatingsQuantity, tours.DefaultRatingsAverage
	}
	return stats[0].NRating, stats[0].AvgRating
}

// CalcAverageRatings recomputes a tour's review count and mean rating.
func (r *Repository) CalcAverageRatings(ctx context.Context, tourID primitive.ObjectID) (quantity int, average float64, err error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"tour": tourID}}},
		{{Key: "$group", Value: bson.M{
			"_id":       "$tour",
			"nRating":   bson.M{"$sum": 1},
			"avgRating": bson.M{"$avg": "$rating"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cursor.Close(ctx)

	var stats []ratingStats
	if err := cursor.All(ctx, &stats); err != nil {
		return 0, 0, err
	}

	quantity, average = rollup(stats)
	return quantity, average, nil
}
