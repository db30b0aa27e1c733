// Package query translates requester-supplied query strings into mongo
// filters and find options: comparison filters (duration[gte]=5), sorting
// (sort=-price,ratingsAverage), field limiting (fields=name,price) and
// pagination (page=2&limit=10).
package query

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

var operatorKey = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9]*)\[(gte|gt|lte|lt|ne)\]$`)

// Options carries everything a repository needs to run a filtered find.
type Options struct {
	Filter bson.M
	Sort   bson.D
	Fields bson.M
	Page   int
	Limit  int
}

// reserved words never become filters
var reserved = map[string]bool{
	"page":   true,
	"sort":   true,
	"limit":  true,
	"fields": true,
}

// Parse builds Options from raw URL query values.
func Parse(values url.Values) *Options {
	o := &Options{
		Filter: bson.M{},
		Page:   1,
		Limit:  DefaultLimit,
	}

	for key, vals := range values {
		if reserved[key] || len(vals) == 0 || vals[0] == "" {
			continue
		}
		if m := operatorKey.FindStringSubmatch(key); m != nil {
			field, op := m[1], "$"+m[2]
			cond, ok := o.Filter[field].(bson.M)
			if !ok {
				cond = bson.M{}
				o.Filter[field] = cond
			}
			cond[op] = coerce(vals[0])
			continue
		}
		if strings.ContainsAny(key, "[]$.") {
			// unknown operator or injection attempt, drop it
			continue
		}
		o.Filter[key] = coerce(vals[0])
	}

	if sort := values.Get("sort"); sort != "" {
		o.Sort = parseSort(sort)
	}
	if fields := values.Get("fields"); fields != "" {
		o.Fields = parseFields(fields)
	}
	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		o.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit > 0 {
		o.Limit = limit
	}
	if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}

	return o
}

// FindOptions converts the parsed query into driver find options.
func (o *Options) FindOptions() *options.FindOptions {
	opts := options.Find().
		SetSkip(int64((o.Page - 1) * o.Limit)).
		SetLimit(int64(o.Limit))

	if len(o.Sort) > 0 {
		opts.SetSort(o.Sort)
	}
	if len(o.Fields) > 0 {
		opts.SetProjection(o.Fields)
	}
	return opts
}

// coerce turns numeric and boolean strings into their typed values so
// comparisons against numeric fields behave as expected.
func coerce(s string) interface{} {
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

func parseSort(s string) bson.D {
	var sort bson.D
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		order := 1
		if strings.HasPrefix(field, "-") {
			order = -1
			field = field[1:]
		}
		sort = append(sort, bson.E{Key: field, Value: order})
	}
	return sort
}

func parseFields(s string) bson.M {
	projection := bson.M{}
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if strings.HasPrefix(field, "-") {
			projection[field[1:]] = 0
		} else {
			projection[field] = 1
		}
	}
	return projection
}
