package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx postgresql.Transactor
	user.UserRepository
	auth.RefreshTokenRepository
	employee.EmployeeRepository
	jwt.Service
}

func NewAuthService(
	tx postgresql.Transactor,
	userRepository user.UserRepository,
	refreshTokenRepository auth.RefreshTokenRepository,
	employeeRepository employee.EmployeeRepository,
	jwtService jwt.Service,
) auth.AuthService {
	return &AuthServiceImpl{
		tx:                     tx,
		UserRepository:         userRepository,
		RefreshTokenRepository: refreshTokenRepository,
		EmployeeRepository:     employeeRepository,
		Service:                jwtService,
	}
}

// HashPassword returns the bcrypt hash stored for password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse

	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	// A deactivated employee keeps the account row but may not sign in.
	if userData.EmployeeID != nil {
		emp, err := a.EmployeeRepository.GetByID(ctx, *userData.EmployeeID, userData.CompanyID)
		if err != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to get employee: %w", err)
		}
		if emp.Status == employee.StatusInactive {
			return auth.TokenResponse{}, employee.ErrEmployeeInactive
		}
	}

	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.EmployeeID, userData.CompanyID, userData.Role)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		err = a.CreateRefreshToken(ctx, userData.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, sessionTrackReq)
		if err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	slog.Info("User logged in", "user_id", userData.ID, "company_id", userData.CompanyID, "ip", sessionTrackReq.IPAddress)
	return tokenResponse, nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	var accessTokenResponse auth.AccessTokenResponse

	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	// 1. Verify signature and expiry
	token, err := jwtauth.VerifyToken(a.JWTAuth(), req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// 2. Only refresh tokens may mint access tokens
	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != jwt.TokenTypeRefresh {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// 3. Check the stored session
	userID, isRevoked, err := a.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if isRevoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	// 4. Reload the user so role changes apply on the next token
	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	accessTokenResponse.AccessToken, accessTokenResponse.AccessTokenExpiresIn, err =
		a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.EmployeeID, userData.CompanyID, userData.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessTokenResponse, nil
}

// Logout implements auth.AuthService. The access token is blocklisted until it
// expires and the refresh token is revoked.
func (a *AuthServiceImpl) Logout(ctx context.Context, req auth.LogoutRequest) error {
	if req.AccessToken == "" {
		return auth.ErrAccessTokenNotPresent
	}

	if err := a.RevokeAccessToken(ctx, req.AccessToken, req.AccessTokenExpiresAt); err != nil {
		return fmt.Errorf("failed to revoke access token: %w", err)
	}

	if req.RefreshToken == "" {
		return nil
	}

	return a.tx.WithinTx(ctx, func(ctx context.Context) error {
		_, isRevoked, err := a.IsRefreshTokenRevoked(ctx, req.RefreshToken)
		if err != nil {
			if errors.Is(err, auth.ErrRefreshTokenNotFound) {
				return nil
			}
			return fmt.Errorf("failed to check if refresh token is revoked: %w", err)
		}
		if !isRevoked {
			if err := a.RevokeRefreshToken(ctx, req.RefreshToken); err != nil {
				return fmt.Errorf("failed to revoke refresh token: %w", err)
			}
		}
		return nil
	})
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context) (user.UserResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	userData, err := a.UserRepository.GetByID(ctx, claims.UserID)
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.NewUserResponse(userData), nil
}

// ChangePassword implements auth.AuthService. Every refresh token of the user
// is revoked so other devices have to sign in again.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	userData, err := a.UserRepository.GetByID(ctx, claims.UserID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrInvalidCredentials
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := a.UpdatePassword(ctx, userData.ID, hashed); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		if err := a.RevokeAllForUser(ctx, userData.ID); err != nil {
			return fmt.Errorf("failed to revoke refresh tokens: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Password changed", "user_id", userData.ID)
	return nil
}
