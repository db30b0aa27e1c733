package apperror

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Translate maps storage-layer failures onto operational errors. Known mongo
// error shapes become 4xx responses with a safe message; anything unknown
// collapses to a 500 whose details are only ever logged, not returned.
func Translate(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return Wrap(http.StatusNotFound, "Invalid ID", err)
	case errors.Is(err, primitive.ErrInvalidHex):
		return Wrap(http.StatusBadRequest, "Invalid ID", err)
	case mongo.IsDuplicateKeyError(err):
		return Wrap(http.StatusBadRequest, "Duplicate field value. Please use another value", err)
	case mongo.IsTimeout(err):
		return Wrap(http.StatusServiceUnavailable, "Database timed out. Try again later", err)
	}

	return Wrap(http.StatusInternalServerError, "Something went very wrong", err)
}
