package service

import (
	"context"
	"testing"
	"time"

	"github.com/mrayan007/MonitoringLitterDetection/internal/config"
	"github.com/mrayan007/MonitoringLitterDetection/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJwtConfig() config.JwtConfig {
	return config.JwtConfig{
		Secret:               "test_secret",
		Issuer:               "MonitoringApi",
		Audience:             "MonitoringFrontend",
		TokenLifetimeMinutes: 60,
	}
}

func TestAuthServiceLogin(t *testing.T) {
	authCfg := config.AuthConfig{Username: "admin", Password: "password123"}
	svc := NewAuthService(authCfg, testJwtConfig())

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid credentials", username: "admin", password: "password123"},
		{name: "wrong password", username: "admin", password: "nope", wantErr: ErrInvalidCredentials},
		{name: "wrong username", username: "root", password: "password123", wantErr: ErrInvalidCredentials},
		{name: "both wrong", username: "root", password: "nope", wantErr: ErrInvalidCredentials},
		{name: "empty", username: "", password: "", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Login(context.Background(), &dto.LoginRequest{
				Username: tt.username,
				Password: tt.password,
			})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, res.AccessToken)
			assert.WithinDuration(t, time.Now().Add(60*time.Minute), res.ExpiresAt, 5*time.Second)
		})
	}
}

func TestAuthServiceIssuesVerifiableClaims(t *testing.T) {
	jwtCfg := testJwtConfig()
	svc := NewAuthService(config.AuthConfig{Username: "admin", Password: "password123"}, jwtCfg)

	res, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "admin", Password: "password123"})
	require.NoError(t, err)

	token, err := jwt.ParseWithClaims(res.AccessToken, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(jwtCfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(jwtCfg.Issuer),
		jwt.WithAudience(jwtCfg.Audience),
		jwt.WithExpirationRequired(),
	)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(*jwt.RegisteredClaims)
	assert.Equal(t, "admin", claims.Subject)
	assert.NotEmpty(t, claims.ID, "token id must be freshly generated")
	assert.WithinDuration(t, res.ExpiresAt, claims.ExpiresAt.Time, time.Second)
}

func TestAuthServiceTokenIdsAreUnique(t *testing.T) {
	jwtCfg := testJwtConfig()
	svc := NewAuthService(config.AuthConfig{Username: "admin", Password: "password123"}, jwtCfg)

	ids := make(map[string]bool)
	for i := 0; i < 3; i++ {
		res, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "admin", Password: "password123"})
		require.NoError(t, err)

		token, err := jwt.ParseWithClaims(res.AccessToken, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
			return []byte(jwtCfg.Secret), nil
		})
		require.NoError(t, err)

		jti := token.Claims.(*jwt.RegisteredClaims).ID
		assert.False(t, ids[jti], "duplicate token id issued")
		ids[jti] = true
	}
}
