package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(testSecret, "1h", "24h", nil, false)
	require.NoError(t, err)
	return svc.(*JWTService)
}

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := newTestService(t)
	employeeID := "emp-1"

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "hr@example.com", &employeeID, "company-1", user.RoleManager)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	verified, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), verified, nil)
	claims, err := ClaimsFromContext(ctx)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "hr@example.com", claims.Email)
	assert.Equal(t, "company-1", claims.CompanyID)
	assert.Equal(t, user.RoleManager, claims.Role)
	require.NotNil(t, claims.EmployeeID)
	assert.Equal(t, "emp-1", *claims.EmployeeID)
	assert.True(t, claims.IsManager())
	assert.Equal(t, expiresAt, claims.ExpiresAt.Unix())

	typ, _ := verified.Get("type")
	assert.Equal(t, TokenTypeAccess, typ)
}

func TestClaimsFromContext_WithoutEmployee(t *testing.T) {
	svc := newTestService(t)

	token, _, err := svc.GenerateAccessToken("user-2", "owner@example.com", nil, "company-1", user.RoleOwner)
	require.NoError(t, err)
	verified, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims, err := ClaimsFromContext(jwtauth.NewContext(context.Background(), verified, nil))
	require.NoError(t, err)
	assert.Nil(t, claims.EmployeeID)

	_, err = claims.RequireEmployeeID()
	assert.ErrorIs(t, err, ErrNoEmployeeClaim)
}

func TestClaimsFromContext_Missing(t *testing.T) {
	_, err := ClaimsFromContext(context.Background())
	assert.ErrorIs(t, err, ErrMissingClaims)
}

func TestRefreshTokens_AreUnique(t *testing.T) {
	svc := newTestService(t)

	a, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	b, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestRevokeAccessToken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "a@example.com", nil, "company-1", user.RoleEmployee)
	require.NoError(t, err)

	revoked, err := svc.IsAccessTokenRevoked(ctx, token)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, svc.RevokeAccessToken(ctx, token, time.Unix(expiresAt, 0)))
	revoked, err = svc.IsAccessTokenRevoked(ctx, token)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := newTestService(t)

	cookie := svc.RefreshTokenCookie("abc", time.Now().Add(time.Hour).Unix())
	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
	assert.True(t, cookie.HttpOnly)

	cleared := svc.ClearRefreshTokenCookie()
	assert.Empty(t, cleared.Value)
	assert.Equal(t, -1, cleared.MaxAge)
}

func TestNewJWTService_InvalidDuration(t *testing.T) {
	_, err := NewJWTService(testSecret, "soon", "24h", nil, false)
	assert.Error(t, err)
}

func TestNewContext_RoundTrip(t *testing.T) {
	employeeID := "emp-9"
	ctx := NewContext(context.Background(), Claims{
		UserID:     "user-9",
		CompanyID:  "company-9",
		EmployeeID: &employeeID,
		Role:       user.RoleEmployee,
	})

	claims, err := ClaimsFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-9", claims.UserID)
	assert.Equal(t, "company-9", claims.CompanyID)
	assert.Equal(t, user.RoleEmployee, claims.Role)
	require.NotNil(t, claims.EmployeeID)
	assert.Equal(t, "emp-9", *claims.EmployeeID)
	assert.False(t, claims.IsManager())
}
