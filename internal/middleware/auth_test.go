package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guillomef06/activity-tracker/internal/auth"
	"github.com/guillomef06/activity-tracker/internal/models"
)

func newAuthRouter(t *testing.T, jwtService *auth.JWTService, extra ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handlers := []gin.HandlerFunc{RequireAuth(jwtService)}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		userID, _ := GetAuthUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	router.GET("/protected", handlers...)
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_ValidToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", "test")
	allianceID := uuid.New()
	token, err := jwtService.GenerateToken(uuid.New(), &allianceID, "alice", models.RoleMember)
	require.NoError(t, err)

	router := newAuthRouter(t, jwtService)
	w := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	router := newAuthRouter(t, auth.NewJWTService("test-secret", "test"))
	w := doRequest(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header required")
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	router := newAuthRouter(t, auth.NewJWTService("test-secret", "test"))
	w := doRequest(router, "Basic abc123")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	other := auth.NewJWTService("other-secret", "test")
	allianceID := uuid.New()
	token, err := other.GenerateToken(uuid.New(), &allianceID, "alice", models.RoleMember)
	require.NoError(t, err)

	router := newAuthRouter(t, auth.NewJWTService("test-secret", "test"))
	w := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestRequireAlliance_SuperAdminWithoutAlliance(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", "test")
	token, err := jwtService.GenerateToken(uuid.New(), nil, "root", models.RoleSuperAdmin)
	require.NoError(t, err)

	router := newAuthRouter(t, jwtService, RequireAlliance())
	w := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Alliance membership required")
}

func TestRequireAdmin_RejectsMember(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", "test")
	allianceID := uuid.New()
	token, err := jwtService.GenerateToken(uuid.New(), &allianceID, "bob", models.RoleMember)
	require.NoError(t, err)

	router := newAuthRouter(t, jwtService, RequireAdmin())
	w := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdmin_AllowsAdminAndSuperAdmin(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", "test")
	allianceID := uuid.New()

	for _, role := range []string{models.RoleAdmin, models.RoleSuperAdmin} {
		token, err := jwtService.GenerateToken(uuid.New(), &allianceID, "carol", role)
		require.NoError(t, err)

		router := newAuthRouter(t, jwtService, RequireAdmin())
		w := doRequest(router, "Bearer "+token)

		assert.Equal(t, http.StatusOK, w.Code, "role %s should pass", role)
	}
}

func TestRequireSuperAdmin_RejectsAdmin(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", "test")
	allianceID := uuid.New()
	token, err := jwtService.GenerateToken(uuid.New(), &allianceID, "carol", models.RoleAdmin)
	require.NoError(t, err)

	router := newAuthRouter(t, jwtService, RequireSuperAdmin())
	w := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
