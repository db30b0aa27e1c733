package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStatusWord(t *testing.T) {
	require.Equal(t, "fail", BadRequest("nope").Status())
	require.Equal(t, "fail", NotFound("gone").Status())
	require.Equal(t, "error", Internal("boom").Status())
}

func TestIsOperational(t *testing.T) {
	require.True(t, IsOperational(Unauthorized("no")))
	require.True(t, IsOperational(fmt.Errorf("handler: %w", Forbidden("no"))))
	require.False(t, IsOperational(errors.New("plain")))
}

func TestTranslate_KeepsOperationalErrors(t *testing.T) {
	orig := Unauthorized("Incorrect email or password")
	got := Translate(fmt.Errorf("login: %w", orig))
	require.Equal(t, orig, got)
}

func TestTranslate_NoDocuments(t *testing.T) {
	got := Translate(mongo.ErrNoDocuments)
	require.Equal(t, 404, got.Code)
	require.Equal(t, "Invalid ID", got.Message)
	require.Equal(t, "fail", got.Status())
}

func TestTranslate_InvalidObjectID(t *testing.T) {
	_, err := primitive.ObjectIDFromHex("not-a-hex-id")
	require.Error(t, err)

	got := Translate(err)
	require.Equal(t, 400, got.Code)
	require.Equal(t, "Invalid ID", got.Message)
}

func TestTranslate_UnknownCollapsesTo500(t *testing.T) {
	got := Translate(errors.New("driver exploded"))
	require.Equal(t, 500, got.Code)
	require.Equal(t, "Something went very wrong", got.Message)
	require.Equal(t, "error", got.Status())
}
