package auth

import "errors"

var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrTokenRevoked          = errors.New("token has been revoked")
	ErrRefreshTokenRevoked   = errors.New("refresh token has been revoked")
	ErrRefreshTokenNotFound  = errors.New("refresh token is missing")
	ErrAccessTokenNotPresent = errors.New("access token is missing")
)
