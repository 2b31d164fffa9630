package serverutils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mrayan007/MonitoringLitterDetection/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func middlewareJwtConfig() config.JwtConfig {
	return config.JwtConfig{
		Secret:   "test_secret",
		Issuer:   "MonitoringApi",
		Audience: "MonitoringFrontend",
	}
}

func signToken(t *testing.T, secret, issuer, audience string, lifetime time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		Issuer:    issuer,
		Audience:  jwt.ClaimStrings{audience},
		ID:        "test-jti",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifetime)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newProtectedApp(cfg config.JwtConfig) *fiber.App {
	app := fiber.New()
	app.Get("/protected", NewJwtMiddleware(cfg), func(ctx *fiber.Ctx) error {
		return ctx.SendString("subject: " + ctx.Locals("subject").(string))
	})
	return app
}

func TestJwtMiddleware(t *testing.T) {
	cfg := middlewareJwtConfig()

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "valid token passes",
			authHeader: "Bearer " + signToken(t, cfg.Secret, cfg.Issuer, cfg.Audience, time.Hour),
			wantStatus: fiber.StatusOK,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: "Token abc",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "wrong signature",
			authHeader: "Bearer " + signToken(t, "other_secret", cfg.Issuer, cfg.Audience, time.Hour),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "wrong issuer",
			authHeader: "Bearer " + signToken(t, cfg.Secret, "SomeoneElse", cfg.Audience, time.Hour),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "wrong audience",
			authHeader: "Bearer " + signToken(t, cfg.Secret, cfg.Issuer, "OtherApp", time.Hour),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "expired token",
			authHeader: "Bearer " + signToken(t, cfg.Secret, cfg.Issuer, cfg.Audience, -time.Minute),
			wantStatus: fiber.StatusUnauthorized,
		},
	}

	app := newProtectedApp(cfg)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
