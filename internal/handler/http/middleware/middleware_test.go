package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTService(t *testing.T) jwt.Service {
	t.Helper()
	svc, err := jwt.NewJWTService("middleware-test-secret", "1h", "24h", nil, false)
	require.NoError(t, err)
	return svc
}

func protected(svc jwt.Service, permission user.Permission) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return jwtauth.Verifier(svc.JWTAuth())(AuthRequired(svc)(RequirePermission(permission)(ok)))
}

func request(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/anything", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAuthRequired_MissingToken(t *testing.T) {
	svc := newJWTService(t)
	rec := httptest.NewRecorder()

	protected(svc, user.PermissionViewOwnProfile).ServeHTTP(rec, request(""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired_RejectsRefreshToken(t *testing.T) {
	svc := newJWTService(t)
	token, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	rec := httptest.NewRecorder()

	protected(svc, user.PermissionViewOwnProfile).ServeHTTP(rec, request(token))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired_RejectsRevokedToken(t *testing.T) {
	svc := newJWTService(t)
	token, _, err := svc.GenerateAccessToken("user-1", "a@example.com", nil, "company-1", user.RoleOwner)
	require.NoError(t, err)
	require.NoError(t, svc.RevokeAccessToken(context.Background(), token, time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()

	protected(svc, user.PermissionViewOwnProfile).ServeHTTP(rec, request(token))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "revoked")
}

func TestRequirePermission(t *testing.T) {
	svc := newJWTService(t)
	employeeToken, _, err := svc.GenerateAccessToken("user-1", "e@example.com", nil, "company-1", user.RoleEmployee)
	require.NoError(t, err)
	ownerToken, _, err := svc.GenerateAccessToken("user-2", "o@example.com", nil, "company-1", user.RoleOwner)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	protected(svc, user.PermissionPayrollManage).ServeHTTP(rec, request(employeeToken))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	protected(svc, user.PermissionPayrollManage).ServeHTTP(rec, request(ownerToken))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
