// FILE: internal/service/prediction_service.go
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mrayan007/MonitoringLitterDetection/internal/config"
	"github.com/mrayan007/MonitoringLitterDetection/internal/dto"
	"github.com/mrayan007/MonitoringLitterDetection/internal/pkg/logger"
)

// DownstreamError carries a non-success inference response so the caller
// can relay status and body unchanged.
type DownstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *DownstreamError) Error() string {
	return fmt.Sprintf("prediction api returned status %d", e.StatusCode)
}

type IPredictionService interface {
	PredictLocation(ctx context.Context, req *dto.PredictionRequest) (*dto.LocationPredictionResponse, error)
	PredictTemperature(ctx context.Context, req *dto.PredictionRequest) (*dto.TemperaturePredictionResponse, error)
}

type predictionService struct {
	cfg     config.PredictionConfig
	client  *http.Client
	geocode IGeocodeService
	log     logger.ILogger
}

func NewPredictionService(cfg config.PredictionConfig, geocode IGeocodeService, log logger.ILogger) IPredictionService {
	return &predictionService{
		cfg:     cfg,
		client:  &http.Client{Timeout: 30 * time.Second},
		geocode: geocode,
		log:     log,
	}
}

// forward posts the prediction payload to the given inference path. A
// non-2xx response comes back as *DownstreamError with the original status
// and body.
func (s *predictionService) forward(ctx context.Context, path string, req *dto.PredictionRequest) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{
		"category":    req.Category,
		"day_of_week": req.DayOfWeek,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call prediction api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read prediction response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &DownstreamError{StatusCode: resp.StatusCode, Body: body}
	}

	return body, nil
}

func (s *predictionService) PredictLocation(ctx context.Context, req *dto.PredictionRequest) (*dto.LocationPredictionResponse, error) {
	body, err := s.forward(ctx, "/predict/location", req)
	if err != nil {
		return nil, err
	}

	var result struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse location prediction: %w", err)
	}

	// Geocoding is enrichment here too: a failed lookup falls back to the
	// bare coordinate pair instead of failing the request.
	address := fmt.Sprintf("%s, %s", formatCoord(result.Latitude), formatCoord(result.Longitude))
	if resolved := s.geocode.ReverseGeocode(ctx, result.Latitude, result.Longitude); resolved != nil {
		address = *resolved
	}

	return &dto.LocationPredictionResponse{
		Latitude:  result.Latitude,
		Longitude: result.Longitude,
		Address:   address,
	}, nil
}

func (s *predictionService) PredictTemperature(ctx context.Context, req *dto.PredictionRequest) (*dto.TemperaturePredictionResponse, error) {
	body, err := s.forward(ctx, "/predict/temperature", req)
	if err != nil {
		return nil, err
	}

	var result struct {
		Prediction float64 `json:"prediction"`
		Unit       string  `json:"unit"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse temperature prediction: %w", err)
	}

	return &dto.TemperaturePredictionResponse{
		Prediction: result.Prediction,
		Unit:       result.Unit,
	}, nil
}
