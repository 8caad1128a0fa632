package service

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sulik0/woking-time-record/internal/models"
	appErrors "github.com/sulik0/woking-time-record/pkg/errors"
)

// AuthConfig defines the single-admin authentication settings. The password
// is supplied as a bcrypt hash; there is no user store.
type AuthConfig struct {
	Username     string
	PasswordHash string
	Secret       string
	TokenExpiry  time.Duration
}

// AuthService issues and validates access tokens for the single admin user.
type AuthService struct {
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.TokenExpiry <= 0 {
		config.TokenExpiry = 24 * time.Hour
	}
	return &AuthService{validator: validate, logger: logger, config: config}
}

// Login verifies the admin credentials and returns an access token.
func (s *AuthService) Login(req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	if req.Username != s.config.Username || s.config.PasswordHash == "" {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.config.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	now := time.Now().UTC()
	claims := &models.JWTClaims{
		Username: req.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   req.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenExpiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign access token")
	}

	s.logger.Info("admin login", zap.String("username", req.Username))
	return &models.LoginResponse{
		AccessToken: signed,
		ExpiresIn:   int64(s.config.TokenExpiry.Seconds()),
		IssuedAt:    now,
	}, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}
