package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trekline/gotours/internal/config"
	"github.com/trekline/gotours/internal/pkg/token"
)

type stubLoader struct {
	user *User
	err  error
}

func (s *stubLoader) FindByID(ctx context.Context, id string) (*User, error) {
	return s.user, s.err
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "unit-test-secret", JWTExpiresIn: time.Hour}
}

func protectedRouter(loader UserLoader, cfg *config.Config, guards ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{Protect(loader, cfg)}, guards...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(200, gin.H{"role": CurrentUser(c).Role})
	})
	r.GET("/protected", chain...)
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestProtect_NoToken(t *testing.T) {
	r := protectedRouter(&stubLoader{}, testConfig())

	w := doGet(r, "")
	require.Equal(t, 401, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "fail", body["status"])
}

func TestProtect_GarbageToken(t *testing.T) {
	r := protectedRouter(&stubLoader{}, testConfig())
	require.Equal(t, 401, doGet(r, "Bearer not.a.token").Code)
}

func TestProtect_UserNoLongerExists(t *testing.T) {
	cfg := testConfig()
	signed, err := token.Sign(primitive.NewObjectID().Hex(), cfg.JWTSecret, time.Hour)
	require.NoError(t, err)

	r := protectedRouter(&stubLoader{user: nil}, cfg)
	require.Equal(t, 401, doGet(r, "Bearer "+signed).Code)
}

func TestProtect_TokenIssuedBeforePasswordChange(t *testing.T) {
	cfg := testConfig()
	user := &User{ID: primitive.NewObjectID(), Role: RoleUser}
	signed, err := token.Sign(user.ID.Hex(), cfg.JWTSecret, time.Hour)
	require.NoError(t, err)

	changed := time.Now().Add(time.Minute)
	user.PasswordChangedAt = &changed

	r := protectedRouter(&stubLoader{user: user}, cfg)
	w := doGet(r, "Bearer "+signed)
	require.Equal(t, 401, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Contains(t, body["message"], "recently changed password")
}

func TestProtect_ValidToken(t *testing.T) {
	cfg := testConfig()
	user := &User{ID: primitive.NewObjectID(), Role: RoleGuide}
	signed, err := token.Sign(user.ID.Hex(), cfg.JWTSecret, time.Hour)
	require.NoError(t, err)

	r := protectedRouter(&stubLoader{user: user}, cfg)
	w := doGet(r, "Bearer "+signed)
	require.Equal(t, 200, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "guide", body["role"])
}

func TestProtect_CookieFallback(t *testing.T) {
	cfg := testConfig()
	user := &User{ID: primitive.NewObjectID(), Role: RoleUser}
	signed, err := token.Sign(user.ID.Hex(), cfg.JWTSecret, time.Hour)
	require.NoError(t, err)

	r := protectedRouter(&stubLoader{user: user}, cfg)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: signed})
	r.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
}

func TestRestrictTo(t *testing.T) {
	cfg := testConfig()
	user := &User{ID: primitive.NewObjectID(), Role: RoleUser}
	signed, err := token.Sign(user.ID.Hex(), cfg.JWTSecret, time.Hour)
	require.NoError(t, err)

	denied := protectedRouter(&stubLoader{user: user}, cfg, RestrictTo(RoleAdmin, RoleLeadGuide))
	require.Equal(t, 403, doGet(denied, "Bearer "+signed).Code)

	allowed := protectedRouter(&stubLoader{user: user}, cfg, RestrictTo(RoleUser, RoleAdmin))
	require.Equal(t, 200, doGet(allowed, "Bearer "+signed).Code)
}
