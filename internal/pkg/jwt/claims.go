package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var (
	ErrMissingClaims   = errors.New("authentication claims are missing")
	ErrInvalidClaims   = errors.New("authentication claims are invalid")
	ErrNoEmployeeClaim = errors.New("no employee profile is linked to this account")
)

// Claims is the typed view of an access token.
type Claims struct {
	UserID     string
	Email      string
	EmployeeID *string
	CompanyID  string
	Role       user.Role
	ExpiresAt  time.Time
}

// IsManager reports whether the caller may act on other employees' records.
func (c Claims) IsManager() bool {
	return c.Role == user.RoleManager || c.Role == user.RoleOwner
}

// RequireEmployeeID returns the caller's employee id or ErrNoEmployeeClaim.
func (c Claims) RequireEmployeeID() (string, error) {
	if c.EmployeeID == nil || *c.EmployeeID == "" {
		return "", ErrNoEmployeeClaim
	}
	return *c.EmployeeID, nil
}

// ClaimsFromContext reads the verified token that jwtauth.Verifier placed on ctx.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return Claims{}, ErrMissingClaims
	}

	userID, _ := claims["user_id"].(string)
	companyID, _ := claims["company_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || companyID == "" || role == "" {
		return Claims{}, ErrInvalidClaims
	}

	c := Claims{
		UserID:    userID,
		CompanyID: companyID,
		Role:      user.Role(role),
		ExpiresAt: token.Expiration(),
	}
	c.Email, _ = claims["email"].(string)
	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		c.EmployeeID = &employeeID
	}
	return c, nil
}

// NewContext returns ctx carrying c as a verified access token would. The
// operator CLI uses it to act for a company outside of an HTTP request.
func NewContext(ctx context.Context, c Claims) context.Context {
	token := jwt.New()
	_ = token.Set("user_id", c.UserID)
	_ = token.Set("email", c.Email)
	_ = token.Set("company_id", c.CompanyID)
	_ = token.Set("role", string(c.Role))
	_ = token.Set("type", TokenTypeAccess)
	if c.EmployeeID != nil {
		_ = token.Set("employee_id", *c.EmployeeID)
	}
	if !c.ExpiresAt.IsZero() {
		_ = token.Set(jwt.ExpirationKey, c.ExpiresAt)
	}
	return jwtauth.NewContext(ctx, token, nil)
}
