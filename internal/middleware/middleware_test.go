package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workspace-task-api/internal/constants"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"github.com/yukikurage/workspace-task-api/internal/repository"
	"github.com/yukikurage/workspace-task-api/internal/services"
	"github.com/yukikurage/workspace-task-api/internal/testutil"
)

func TestRequireAuth_NoSessionIsForbidden(t *testing.T) {
	db := testutil.NewDB(t)
	authService := services.NewAuthService(repository.NewStore(db))

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	r.GET("/private", RequireAuth(authService), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func scopeRequest(t *testing.T, authService *services.AuthService, user *models.User, pathUserID string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var owner string
	r := gin.New()
	r.GET("/user/:user_id", func(c *gin.Context) {
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}, RequireUserScope(authService), func(c *gin.Context) {
		owner = GetOwner(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/"+pathUserID, nil))
	return w, owner
}

func TestRequireUserScope(t *testing.T) {
	db := testutil.NewDB(t)
	authService := services.NewAuthService(repository.NewStore(db))

	alice := testutil.CreateUser(t, db, "alice", false)
	bob := testutil.CreateUser(t, db, "bob", false)
	admin := testutil.CreateUser(t, db, "admin", true)

	w, owner := scopeRequest(t, authService, alice, alice.OwnerKey())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, alice.OwnerKey(), owner)

	w, _ = scopeRequest(t, authService, alice, bob.OwnerKey())
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, owner = scopeRequest(t, authService, admin, bob.OwnerKey())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, bob.OwnerKey(), owner)

	w, _ = scopeRequest(t, authService, admin, "9999")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = scopeRequest(t, authService, alice, "not-a-number")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetUserID(c)
	assert.False(t, ok)

	c.Set(constants.ContextKeyUserID, uint64(7))
	id, ok := GetUserID(c)
	assert.True(t, ok)
	assert.Equal(t, uint64(7), id)

	c.Set(constants.ContextKeyUserID, -1)
	_, ok = GetUserID(c)
	assert.False(t, ok)
}
