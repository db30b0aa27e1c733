package tours

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/trekline/gotours/internal/pkg/query"
)

func TestSecretFilter(t *testing.T) {
	exclusion := bson.M{"$ne": true}

	t.Run("applies exclusion to an empty filter", func(t *testing.T) {
		assert.Equal(t, bson.M{"secretTour": exclusion}, secretFilter(nil))
	})

	t.Run("keeps caller conditions", func(t *testing.T) {
		filter := secretFilter(bson.M{"ratingsAverage": bson.M{"$gte": 4.5}})
		assert.Equal(t, bson.M{"$gte": 4.5}, filter["ratingsAverage"])
		assert.Equal(t, exclusion, filter["secretTour"])
	})

	t.Run("requester cannot flip the exclusion", func(t *testing.T) {
		values, err := url.ParseQuery("secretTour=true")
		require.NoError(t, err)

		filter := secretFilter(query.Parse(values).Filter)
		assert.Equal(t, exclusion, filter["secretTour"])
	})

	t.Run("operator form cannot flip the exclusion either", func(t *testing.T) {
		values, err := url.ParseQuery("secretTour[ne]=false&duration[gte]=5")
		require.NoError(t, err)

		filter := secretFilter(query.Parse(values).Filter)
		assert.Equal(t, exclusion, filter["secretTour"])
		assert.Equal(t, bson.M{"$gte": float64(5)}, filter["duration"])
	})
}
