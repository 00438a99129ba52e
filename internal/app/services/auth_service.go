package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mrc-edu/matricula-backend/internal/app/models"
	"github.com/mrc-edu/matricula-backend/internal/app/models/dto"
	"github.com/mrc-edu/matricula-backend/internal/app/repositories"
	"github.com/mrc-edu/matricula-backend/internal/pkg/apperrors"
	"github.com/mrc-edu/matricula-backend/internal/pkg/auth"
)

// AuthService handles staff login
type AuthService struct {
	userRepo   *repositories.UserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo *repositories.UserRepository, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login verifies the credentials and returns a signed access token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, *models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, nil, fmt.Errorf("error retrieving user: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.HashedPassword, req.Password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, apperrors.ErrAccountDisabled
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, nil, fmt.Errorf("error generating token: %w", err)
	}

	s.logger.Info().Str("username", user.Username).Msg("User logged in")

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, user, nil
}
