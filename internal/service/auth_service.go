// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/mrayan007/MonitoringLitterDetection/internal/config"
	"github.com/mrayan007/MonitoringLitterDetection/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	authCfg config.AuthConfig
	jwtCfg  config.JwtConfig
}

func NewAuthService(authCfg config.AuthConfig, jwtCfg config.JwtConfig) IAuthService {
	return &authService{
		authCfg: authCfg,
		jwtCfg:  jwtCfg,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	// Constant-time compare on both fields, combined afterwards so the error
	// never reveals which one was wrong.
	userOk := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.authCfg.Username))
	passOk := subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.authCfg.Password))
	if userOk&passOk != 1 {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(s.jwtCfg.TokenLifetimeMinutes) * time.Minute)

	claims := jwt.RegisteredClaims{
		Subject:   req.Username,
		Issuer:    s.jwtCfg.Issuer,
		Audience:  jwt.ClaimStrings{s.jwtCfg.Audience},
		ID:        uuid.New().String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: signedToken,
		ExpiresAt:   expiresAt,
	}, nil
}
