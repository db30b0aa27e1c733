package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParse_OperatorFilters(t *testing.T) {
	v, err := url.ParseQuery("duration[gte]=5&price[lt]=1500&difficulty=easy")
	require.NoError(t, err)

	o := Parse(v)
	require.Equal(t, bson.M{"$gte": float64(5)}, o.Filter["duration"])
	require.Equal(t, bson.M{"$lt": float64(1500)}, o.Filter["price"])
	require.Equal(t, "easy", o.Filter["difficulty"])
}

func TestParse_CombinedOperatorsOnOneField(t *testing.T) {
	v, err := url.ParseQuery("price[gte]=400&price[lte]=1200")
	require.NoError(t, err)

	o := Parse(v)
	require.Equal(t, bson.M{"$gte": float64(400), "$lte": float64(1200)}, o.Filter["price"])
}

func TestParse_ReservedWordsAreNotFilters(t *testing.T) {
	v, err := url.ParseQuery("sort=-price&page=2&limit=10&fields=name,price")
	require.NoError(t, err)

	o := Parse(v)
	require.Empty(t, o.Filter)
	require.Equal(t, bson.D{{Key: "price", Value: -1}}, o.Sort)
	require.Equal(t, bson.M{"name": 1, "price": 1}, o.Fields)
	require.Equal(t, 2, o.Page)
	require.Equal(t, 10, o.Limit)
}

func TestParse_MultiKeySort(t *testing.T) {
	v, err := url.ParseQuery("sort=-ratingsAverage,price")
	require.NoError(t, err)

	o := Parse(v)
	require.Equal(t, bson.D{
		{Key: "ratingsAverage", Value: -1},
		{Key: "price", Value: 1},
	}, o.Sort)
}

func TestParse_DropsInjectionKeys(t *testing.T) {
	v := url.Values{}
	v.Set("price[where]=1", "x")
	v.Set("$where", "sleep(1000)")

	o := Parse(v)
	require.Empty(t, o.Filter)
}

func TestParse_DefaultsAndClamp(t *testing.T) {
	o := Parse(url.Values{})
	require.Equal(t, 1, o.Page)
	require.Equal(t, DefaultLimit, o.Limit)

	v, _ := url.ParseQuery("limit=99999")
	require.Equal(t, MaxLimit, Parse(v).Limit)
}

func TestFindOptions_SkipAndLimit(t *testing.T) {
	v, _ := url.ParseQuery("page=3&limit=10")
	opts := Parse(v).FindOptions()
	require.Equal(t, int64(20), *opts.Skip)
	require.Equal(t, int64(10), *opts.Limit)
}
