package auth

import (
	"context"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
)

// AuthService owns the session lifecycle: Login saves a session, Me loads it and
// Logout clears it.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, req LogoutRequest) error
	Me(ctx context.Context) (user.UserResponse, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
}

// RefreshTokenRepository persists hashed refresh tokens.
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, session SessionTrackingRequest) error
	IsRefreshTokenRevoked(ctx context.Context, token string) (userID string, revoked bool, err error)
	RevokeRefreshToken(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}
