// FILE: internal/service/geocode_service.go
package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mrayan007/MonitoringLitterDetection/internal/config"
	"github.com/mrayan007/MonitoringLitterDetection/internal/pkg/logger"

	gocache "github.com/patrickmn/go-cache"
)

// IGeocodeService resolves coordinates to a display address. Geocoding is
// best-effort enrichment: every failure mode returns nil, never an error.
type IGeocodeService interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) *string
}

type geocodeService struct {
	cfg    config.LocationIqConfig
	client *http.Client
	cache  *gocache.Cache
	log    logger.ILogger
}

func NewGeocodeService(cfg config.LocationIqConfig, log logger.ILogger) IGeocodeService {
	return &geocodeService{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		cache:  gocache.New(24*time.Hour, 1*time.Hour),
		log:    log,
	}
}

// formatCoord serializes a coordinate with '.' as decimal separator
// independent of host locale. LocationIQ parses the literal string.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (s *geocodeService) ReverseGeocode(ctx context.Context, lat, lon float64) *string {
	latStr := formatCoord(lat)
	lonStr := formatCoord(lon)

	cacheKey := latStr + "," + lonStr
	if val, ok := s.cache.Get(cacheKey); ok {
		address := val.(string)
		return &address
	}

	params := url.Values{}
	params.Add("key", s.cfg.Key)
	params.Add("lat", latStr)
	params.Add("lon", lonStr)
	params.Add("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"/v1/reverse?"+params.Encode(), nil)
	if err != nil {
		s.log.Warn("geocode", "Failed to build reverse geocode request", map[string]interface{}{"error": err.Error()})
		return nil
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn("geocode", "Reverse geocode call failed", map[string]interface{}{"error": err.Error()})
		return nil
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.log.Warn("geocode", "Reverse geocode returned non-success status", map[string]interface{}{
			"status": resp.StatusCode,
			"body":   string(body),
		})
		return nil
	}

	var result struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		s.log.Warn("geocode", "Failed to parse reverse geocode response", map[string]interface{}{
			"error": err.Error(),
			"body":  string(body),
		})
		return nil
	}

	if result.DisplayName == "" {
		s.log.Warn("geocode", "Reverse geocode response missing display_name", map[string]interface{}{
			"body": string(body),
		})
		return nil
	}

	s.cache.Set(cacheKey, result.DisplayName, gocache.DefaultExpiration)
	return &result.DisplayName
}
