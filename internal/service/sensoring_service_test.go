package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mrayan007/MonitoringLitterDetection/internal/config"
	"github.com/mrayan007/MonitoringLitterDetection/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nopLogger keeps service tests quiet; shared across this package's tests.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// sensoringFake is an httptest-backed stand-in for the upstream sensoring
// API with controllable behavior per path.
type sensoringFake struct {
	server      *httptest.Server
	loginStatus int
	loginToken  string
	dataStatus  int
	batch       []dto.SensoringLitter
	dataAuth    atomic.Value // last Authorization header seen on the data path
	logoutCalls atomic.Int32
}

func newSensoringFake() *sensoringFake {
	f := &sensoringFake{
		loginStatus: http.StatusOK,
		loginToken:  "upstream-token",
		dataStatus:  http.StatusOK,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if f.loginStatus != http.StatusOK {
			w.WriteHeader(f.loginStatus)
			return
		}
		json.NewEncoder(w).Encode(dto.SensoringLoginResponse{AccessToken: f.loginToken})
	})
	mux.HandleFunc("/litter", func(w http.ResponseWriter, r *http.Request) {
		f.dataAuth.Store(r.Header.Get("Authorization"))
		if f.dataStatus != http.StatusOK {
			w.WriteHeader(f.dataStatus)
			return
		}
		json.NewEncoder(w).Encode(f.batch)
	})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		f.logoutCalls.Add(1)
	})

	f.server = httptest.NewServer(mux)
	return f
}

func (f *sensoringFake) config() config.SensoringConfig {
	return config.SensoringConfig{
		BaseURL:    f.server.URL,
		LoginPath:  "/auth/login",
		DataPath:   "/litter",
		LogoutPath: "/auth/logout",
		Email:      "monitor@example.com",
		Password:   "secret",
	}
}

func TestSensoringLogin(t *testing.T) {
	t.Run("success returns session with token", func(t *testing.T) {
		fake := newSensoringFake()
		defer fake.server.Close()

		svc := NewSensoringService(fake.config(), nopLogger{})
		session, err := svc.Login(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "upstream-token", session.AccessToken)
		assert.WithinDuration(t, time.Now(), session.AcquiredAt, 5*time.Second)
	})

	t.Run("non-success status fails", func(t *testing.T) {
		fake := newSensoringFake()
		defer fake.server.Close()
		fake.loginStatus = http.StatusUnauthorized

		svc := NewSensoringService(fake.config(), nopLogger{})
		_, err := svc.Login(context.Background())
		require.ErrorIs(t, err, ErrUpstreamAuthFailed)
	})

	t.Run("empty token fails", func(t *testing.T) {
		fake := newSensoringFake()
		defer fake.server.Close()
		fake.loginToken = ""

		svc := NewSensoringService(fake.config(), nopLogger{})
		_, err := svc.Login(context.Background())
		require.ErrorIs(t, err, ErrUpstreamAuthFailed)
	})

	t.Run("unreachable upstream fails", func(t *testing.T) {
		fake := newSensoringFake()
		fake.server.Close()

		svc := NewSensoringService(fake.config(), nopLogger{})
		_, err := svc.Login(context.Background())
		require.ErrorIs(t, err, ErrUpstreamAuthFailed)
	})
}

func TestSensoringFetchBatch(t *testing.T) {
	fake := newSensoringFake()
	defer fake.server.Close()
	fake.batch = []dto.SensoringLitter{
		{Id: uuid.New(), DateTime: time.Now().UTC().Truncate(time.Second), LocationLat: 51.58, LocationLon: 4.79, Category: "plastic", Confidence: 0.92, Temperature: 17.5},
	}

	svc := NewSensoringService(fake.config(), nopLogger{})
	session, err := svc.Login(context.Background())
	require.NoError(t, err)

	batch, err := svc.FetchBatch(context.Background(), session)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "plastic", batch[0].Category)
	assert.Equal(t, "Bearer upstream-token", fake.dataAuth.Load(), "bearer token must be sent on the fetch request")
}

func TestSensoringFetchBatchEmptyIsValid(t *testing.T) {
	fake := newSensoringFake()
	defer fake.server.Close()
	fake.batch = []dto.SensoringLitter{}

	svc := NewSensoringService(fake.config(), nopLogger{})
	session, err := svc.Login(context.Background())
	require.NoError(t, err)

	batch, err := svc.FetchBatch(context.Background(), session)
	require.NoError(t, err)
	assert.Empty(t, batch)
}

func TestSensoringFetchBatchErrorStatus(t *testing.T) {
	fake := newSensoringFake()
	defer fake.server.Close()
	fake.dataStatus = http.StatusInternalServerError

	svc := NewSensoringService(fake.config(), nopLogger{})
	session, err := svc.Login(context.Background())
	require.NoError(t, err)

	_, err = svc.FetchBatch(context.Background(), session)
	require.Error(t, err)
}

func TestSensoringLogoutSwallowsFailures(t *testing.T) {
	fake := newSensoringFake()
	svc := NewSensoringService(fake.config(), nopLogger{})
	session, err := svc.Login(context.Background())
	require.NoError(t, err)

	// Upstream gone by logout time; must not panic or propagate.
	fake.server.Close()
	svc.Logout(context.Background(), session)
}
