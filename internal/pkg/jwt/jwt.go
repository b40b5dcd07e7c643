package jwt

import (
	"context"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/cache"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	refreshCookieName = "refresh_token"
	refreshCookiePath = "/api/v1/auth"
)

type Service interface {
	GenerateAccessToken(userID string, email string, employeeID *string, companyID string, role user.Role) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	ClearRefreshTokenCookie() *http.Cookie
	RevokeAccessToken(ctx context.Context, token string, expiresAt time.Time) error
	IsAccessTokenRevoked(ctx context.Context, token string) (bool, error)
}

type JWTService struct {
	accessTokenExpiration  time.Duration
	refreshTokenExpiration time.Duration
	tokenAuth              *jwtauth.JWTAuth
	blocklist              cache.TokenBlocklist
	secureCookie           bool
	now                    func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// NewJWTService builds the HS256 token service. Expirations are Go duration strings.
func NewJWTService(secretKey string, accessTokenExpirationTime string, refreshTokenExpirationTime string, blocklist cache.TokenBlocklist, secureCookie bool) (Service, error) {
	accessExp, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, err
	}
	refreshExp, err := time.ParseDuration(refreshTokenExpirationTime)
	if err != nil {
		return nil, err
	}
	if blocklist == nil {
		blocklist = cache.NewMemoryBlocklist()
	}
	return &JWTService{
		accessTokenExpiration:  accessExp,
		refreshTokenExpiration: refreshExp,
		tokenAuth:              jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		blocklist:              blocklist,
		secureCookie:           secureCookie,
		now:                    time.Now,
	}, nil
}

func (j *JWTService) GenerateAccessToken(userID string, email string, employeeID *string, companyID string, role user.Role) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]any{
		"jti":         uuid.NewString(),
		"user_id":     userID,
		"email":       email,
		"employee_id": valueOrNil(employeeID),
		"company_id":  companyID,
		"role":        string(role),
		"type":        TokenTypeAccess,
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(userID string) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.refreshTokenExpiration).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]any{
		"jti":     uuid.NewString(),
		"user_id": userID,
		"exp":     expiresAt,
		"type":    TokenTypeRefresh,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     refreshCookiePath,
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

func (j *JWTService) ClearRefreshTokenCookie() *http.Cookie {
	return &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

// RevokeAccessToken blocklists token until it would have expired anyway.
func (j *JWTService) RevokeAccessToken(ctx context.Context, token string, expiresAt time.Time) error {
	return j.blocklist.Block(ctx, token, expiresAt.Sub(j.now()))
}

func (j *JWTService) IsAccessTokenRevoked(ctx context.Context, token string) (bool, error) {
	return j.blocklist.IsBlocked(ctx, token)
}

// RefreshCookieName is the cookie carrying the refresh token.
func RefreshCookieName() string {
	return refreshCookieName
}

func valueOrNil(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}
