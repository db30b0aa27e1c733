package reviews

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Review    string             `bson:"review" json:"review"`
	Rating    float64            `bson:"rating" json:"rating"`
	Tour      primitive.ObjectID `bson:"tour" json:"tour"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt time.Time          `bson:"createdAt" json:"-"`

	// Author is populated on reads via a lookup on the users collection.
	Author *Author `bson:"author,omitempty" json:"author,omitempty"`
}

// Author is the slice of the user document embedded in review reads.
type Author struct {
	Name  string `bson:"name" json:"name"`
	Photo string `bson:"photo,omitempty" json:"photo,omitempty"`
}

type CreateReviewRequest struct {
	Review string  `json:"review"`
	Rating float64 `json:"rating"`
	// Tour is optional in the flat route; the nested route takes it from
	// the path.
	Tour string `json:"tour"`
}

type UpdateReviewRequest struct {
	Review *string  `json:"review"`
	Rating *float64 `json:"rating"`
}
