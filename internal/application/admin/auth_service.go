// Package admin authenticates the back office and reports shop statistics.
package admin

import (
	"context"

	"github.com/atelier/storefront/internal/domain/shared"
	"github.com/atelier/storefront/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles administrator sign-in and sign-out
type AuthService struct {
	credentials *auth.AdminCredentials
	jwtService  *auth.JWTService
	blacklist   auth.TokenBlacklist
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	credentials *auth.AdminCredentials,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		credentials: credentials,
		jwtService:  jwtService,
		blacklist:   blacklist,
		logger:      logger,
	}
}

// Login checks the credentials and issues an admin token
func (s *AuthService) Login(_ context.Context, req LoginRequest) (*LoginResponse, error) {
	if !s.credentials.Verify(req.Username, req.Password) {
		s.logger.Warn("Invalid admin login attempt", zap.String("username", req.Username))
		return nil, shared.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(req.Username, auth.RoleAdmin)
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Admin logged in", zap.String("username", req.Username))
	return &LoginResponse{Token: token.Value, ExpiresAt: token.ExpiresAt}, nil
}

// Logout revokes the token until it would have expired anyway
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return shared.ErrUnauthorized
	}
	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Failed to revoke token", zap.Error(err))
		return err
	}
	s.logger.Info("Admin logged out", zap.String("username", claims.Username))
	return nil
}

// Dashboard returns the greeting shown on the back-office home
func (s *AuthService) Dashboard(claims *auth.Claims) DashboardResponse {
	return DashboardResponse{
		Message: "Welcome to the admin dashboard",
		User:    CurrentUser{Username: claims.Username, Role: claims.Role},
	}
}
