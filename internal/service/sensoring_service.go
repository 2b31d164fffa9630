// FILE: internal/service/sensoring_service.go
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mrayan007/MonitoringLitterDetection/internal/config"
	"github.com/mrayan007/MonitoringLitterDetection/internal/dto"
	"github.com/mrayan007/MonitoringLitterDetection/internal/pkg/logger"
)

var ErrUpstreamAuthFailed = errors.New("sensoring login failed")

// Session is the transient credential for one pipeline run. It is passed
// explicitly to every call so the bearer token never lives on a shared
// client.
type Session struct {
	AccessToken string
	AcquiredAt  time.Time
}

type ISensoringService interface {
	Login(ctx context.Context) (*Session, error)
	FetchBatch(ctx context.Context, session *Session) ([]dto.SensoringLitter, error)
	Logout(ctx context.Context, session *Session)
}

type sensoringService struct {
	cfg    config.SensoringConfig
	client *http.Client
	log    logger.ILogger
}

func NewSensoringService(cfg config.SensoringConfig, log logger.ILogger) ISensoringService {
	return &sensoringService{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log,
	}
}

func (s *sensoringService) Login(ctx context.Context) (*Session, error) {
	payload, err := json.Marshal(dto.SensoringLoginRequest{
		Email:    s.cfg.Email,
		Password: s.cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamAuthFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+s.cfg.LoginPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamAuthFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamAuthFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamAuthFailed, resp.StatusCode)
	}

	var loginResp dto.SensoringLoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamAuthFailed, err)
	}
	if loginResp.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", ErrUpstreamAuthFailed)
	}

	return &Session{
		AccessToken: loginResp.AccessToken,
		AcquiredAt:  time.Now(),
	}, nil
}

func (s *sensoringService) FetchBatch(ctx context.Context, session *Session) ([]dto.SensoringLitter, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+s.cfg.DataPath, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch litter data: %w", err)
	}
	// Bearer token is scoped to this request only.
	req.Header.Set("Authorization", "Bearer "+session.AccessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch litter data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch litter data: status %d: %s", resp.StatusCode, string(body))
	}

	var batch []dto.SensoringLitter
	if err := json.NewDecoder(resp.Body).Decode(&batch); err != nil {
		return nil, fmt.Errorf("fetch litter data: %w", err)
	}

	// An empty batch is a valid result, not an error.
	return batch, nil
}

// Logout is best-effort. By the time it runs the fetched data is already
// durable, so a failed logout is logged and swallowed.
func (s *sensoringService) Logout(ctx context.Context, session *Session) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+s.cfg.LogoutPath, nil)
	if err != nil {
		s.log.Warn("sensoring", "Failed to build logout request", map[string]interface{}{"error": err.Error()})
		return
	}
	req.Header.Set("Authorization", "Bearer "+session.AccessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn("sensoring", "Sensoring logout failed", map[string]interface{}{"error": err.Error()})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.log.Warn("sensoring", "Sensoring logout returned non-success status", map[string]interface{}{
			"status": resp.StatusCode,
		})
	}
}
