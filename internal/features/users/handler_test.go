package users

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestUpdateMe_RejectsPasswordFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(nil, nil)

	for _, body := range []string{
		`{"password":"newpass123"}`,
		`{"passwordConfirm":"newpass123"}`,
		`{"name":"Jonas","password":"newpass123","passwordConfirm":"newpass123"}`,
	} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/users/me", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		handler.UpdateMe(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "update-password")
	}
}

func TestUpdateMe_NothingToUpdate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/users/me", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.UpdateMe(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRespondUpdatedUser_NilUserIs404(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/users/me/photo", nil)

	respondUpdatedUser(c, nil, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), `"user":null`)
}

func TestUpdateMe_InvalidEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/users/me", strings.NewReader(`{"email":"not-an-email"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.UpdateMe(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
