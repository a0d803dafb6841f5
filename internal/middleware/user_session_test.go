package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alumnihub/alumnihub-api/internal/models"
	"github.com/alumnihub/alumnihub-api/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCookie = "alumni_session"

func newSessionRouter(tm *jwt.TokenManager, got **models.UserSession) *gin.Engine {
	router := gin.New()
	router.Use(UserSessionMiddleware(tm, testCookie))
	router.GET("/me", func(c *gin.Context) {
		session, err := GetUserSession(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		*got = session
		c.Status(http.StatusOK)
	})
	return router
}

func TestUserSessionMiddleware_Cookie(t *testing.T) {
	tm := jwt.NewTokenManager("secret", "alumnihub-auth", 1)
	token, err := tm.GenerateToken("u-1", "ada@example.com", "Ada", "school_admin")
	require.NoError(t, err)

	var got *models.UserSession
	router := newSessionRouter(tm, &got)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got)
	assert.Equal(t, "u-1", got.UserID)
	assert.Equal(t, models.RoleSchoolAdmin, got.Role)
	assert.NotZero(t, got.ExpiresAt)
}

func TestUserSessionMiddleware_BearerHeader(t *testing.T) {
	tm := jwt.NewTokenManager("secret", "alumnihub-auth", 1)
	token, err := tm.GenerateToken("u-2", "", "", "")
	require.NoError(t, err)

	var got *models.UserSession
	router := newSessionRouter(tm, &got)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-2", got.UserID)
	assert.Equal(t, models.RoleAlumni, got.Role)
}

func TestUserSessionMiddleware_Rejects(t *testing.T) {
	tm := jwt.NewTokenManager("secret", "alumnihub-auth", 1)
	foreign, err := jwt.NewTokenManager("other-secret", "alumnihub-auth", 1).GenerateToken("u-3", "", "", "")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"malformed", "Bearer not.a.jwt"},
		{"wrong signature", "Bearer " + foreign},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *models.UserSession
			router := newSessionRouter(tm, &got)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Nil(t, got)
		})
	}
}

func TestUserSessionMiddleware_Expired(t *testing.T) {
	tm := jwt.NewTokenManager("secret", "alumnihub-auth", -1)
	token, err := tm.GenerateToken("u-4", "", "", "")
	require.NoError(t, err)

	var got *models.UserSession
	router := newSessionRouter(tm, &got)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Session expired")
}

func TestGetUserSession_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, err := GetUserSession(c)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	c.Set(UserSessionContextKey, "not a session")
	_, err = GetUserSession(c)
	assert.ErrorIs(t, err, ErrInvalidSession)
}
