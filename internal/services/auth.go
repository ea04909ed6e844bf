package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"portfolio/internal/config"
	"portfolio/internal/metrics"
	"portfolio/internal/util"
	apperrors "portfolio/pkg/errors"
)

// LoginResult is returned by a successful admin login
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// AuthService authenticates the single configured admin account
type AuthService struct {
	username     string
	passwordHash string
	tokens       *util.TokenIssuer
	log          *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(cfg config.AuthConfig, logger *zap.Logger) *AuthService {
	return &AuthService{
		username:     cfg.AdminUsername,
		passwordHash: cfg.AdminPasswordHash,
		tokens:       util.NewTokenIssuer(cfg.SecretKey, time.Duration(cfg.TokenExpiryMinutes)*time.Minute),
		log:          logger.Named("admin"),
	}
}

// Login checks the credentials and issues a staff token
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	s.log.Info("login attempt", zap.String("username", username))

	// Always run the bcrypt comparison so unknown usernames take as long as bad passwords.
	passwordOK := util.CheckPasswordHash(password, s.passwordHash)
	if !util.ConstantTimeEqual(username, s.username) || !passwordOK {
		s.log.Warn("login failed", zap.String("username", username))
		metrics.RecordAuthAttempt(false)
		return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "incorrect username or password")
	}

	token, err := s.tokens.GenerateToken(username)
	if err != nil {
		s.log.Error("token generation failed", zap.String("username", username), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to generate token", err)
	}

	s.log.Info("login successful", zap.String("username", username))
	metrics.RecordAuthAttempt(true)

	return &LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.tokens.Expiry().Seconds()),
	}, nil
}

// Authorize validates a bearer token and requires staff scope
func (s *AuthService) Authorize(ctx context.Context, token string) (*util.Claims, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUnauthorized, "invalid or expired token", err)
	}
	if err := util.RequireStaff(claims); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUnauthorized, "insufficient permissions", err)
	}
	if !util.ConstantTimeEqual(claims.Username, s.username) {
		return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "user not found")
	}
	return claims, nil
}
