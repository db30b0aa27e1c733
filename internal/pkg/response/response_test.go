package response

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/trekline/gotours/internal/pkg/apperror"
)

func TestSuccessEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, 200, gin.H{"tour": gin.H{"name": "The Forest Hiker"}})

	require.Equal(t, 200, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "success", body["status"])
	require.Contains(t, body, "data")
	require.NotContains(t, body, "results")
}

func TestListEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	List(c, 3, gin.H{"tours": []string{"a", "b", "c"}})

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "success", body["status"])
	require.Equal(t, float64(3), body["results"])
	require.NotEmpty(t, body["requestedAt"])
}

func TestErrorEnvelope_Development(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetMode(false)
	t.Cleanup(func() { SetMode(false) })

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/tours/xyz", nil)

	Error(c, apperror.NotFound("Invalid ID"))

	require.Equal(t, 404, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "fail", body["status"])
	require.Equal(t, "Invalid ID", body["message"])
	require.NotEmpty(t, body["stack"])
}

func TestErrorEnvelope_ProductionHidesInternals(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetMode(true)
	t.Cleanup(func() { SetMode(false) })

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/tours", nil)

	Error(c, errors.New("connection pool exhausted"))

	require.Equal(t, 500, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "error", body["status"])
	require.Equal(t, "Something went very wrong", body["message"])
	require.NotContains(t, body, "error")
	require.NotContains(t, body, "stack")
}

func TestErrorEnvelope_OperationalInProduction(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetMode(true)
	t.Cleanup(func() { SetMode(false) })

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/v1/users/login", nil)

	Error(c, apperror.Unauthorized("Incorrect email or password"))

	require.Equal(t, 401, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "fail", body["status"])
	require.Equal(t, "Incorrect email or password", body["message"])
}
