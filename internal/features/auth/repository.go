package auth

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trekline/gotours/internal/pkg/apperror"
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection("users")}
}

// activeFilter hides soft-deactivated accounts from every read.
func activeFilter(extra bson.M) bson.M {
	filter := bson.M{"active": bson.M{"$ne": false}}
	for k, v := range extra {
		filter[k] = v
	}
	return filter
}

// passwordProjection strips password material from default reads.
var passwordProjection = bson.M{
	"password":             0,
	"passwordResetToken":   0,
	"passwordResetExpires": 0,
}

func (r *Repository) Create(ctx context.Context, user *User) error {
	user.CreatedAt = time.Now()
	user.Active = true

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return err
	}

	user.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByEmail returns the user including the stored password hash, for
// credential checks. Not-found is (nil, nil).
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, activeFilter(bson.M{"email": email})).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*User, error) {
	return r.findByID(ctx, id, options.FindOne().SetProjection(passwordProjection))
}

// FindByIDWithPassword is for the update-password flow, which must compare
// the current password first.
func (r *Repository) FindByIDWithPassword(ctx context.Context, id string) (*User, error) {
	return r.findByID(ctx, id)
}

func (r *Repository) findByID(ctx context.Context, id string, opts ...*options.FindOneOptions) (*User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.BadRequest("Invalid ID")
	}

	var user User
	err = r.collection.FindOne(ctx, activeFilter(bson.M{"_id": objectID}), opts...).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByResetToken matches a reset-token hash that has not expired.
func (r *Repository) FindByResetToken(ctx context.Context, tokenHash string) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, activeFilter(bson.M{
		"passwordResetToken":   tokenHash,
		"passwordResetExpires": bson.M{"$gt": time.Now()},
	})).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// SavePasswordReset persists the reset-token hash and expiry.
func (r *Repository) SavePasswordReset(ctx context.Context, id primitive.ObjectID, tokenHash string, expires time.Time) error {
	_, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"passwordResetToken":   tokenHash,
		"passwordResetExpires": expires,
	}})
	return err
}

// ClearPasswordReset rolls the reset fields back, used when the email fails
// to send and after a successful reset.
func (r *Repository) ClearPasswordReset(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateByID(ctx, id, bson.M{"$unset": bson.M{
		"passwordResetToken":   "",
		"passwordResetExpires": "",
	}})
	return err
}

// UpdatePassword rotates the stored hash, stamps passwordChangedAt and
// clears any outstanding reset token in one write.
func (r *Repository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error {
	_, err := r.collection.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"password":          hashedPassword,
			"passwordChangedAt": time.Now(),
		},
		"$unset": bson.M{
			"passwordResetToken":   "",
			"passwordResetExpires": "",
		},
	})
	return err
}

// UpdateFields patches profile fields and returns the updated document.
func (r *Repository) UpdateFields(ctx context.Context, id string, fields bson.M) (*User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.BadRequest("Invalid ID")
	}

	var user User
	err = r.collection.FindOneAndUpdate(
		ctx,
		activeFilter(bson.M{"_id": objectID}),
		bson.M{"$set": fields},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(passwordProjection),
	).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Deactivate soft-deletes an account.
func (r *Repository) Deactivate(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperror.BadRequest("Invalid ID")
	}
	_, err = r.collection.UpdateByID(ctx, objectID, bson.M{"$set": bson.M{"active": false}})
	return err
}

// Delete removes an account outright (admin only).
func (r *Repository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperror.BadRequest("Invalid ID")
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperror.NotFound("No user found with that ID")
	}
	return nil
}

// List pages through active users for the admin endpoint.
func (r *Repository) List(ctx context.Context, offset, limit int) ([]User, int64, error) {
	filter := activeFilter(nil)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetProjection(passwordProjection).
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	users := []User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
