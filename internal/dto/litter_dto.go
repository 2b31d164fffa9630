package dto

import (
	"time"

	"github.com/google/uuid"
)

// SensoringLitter is one item of the batch returned by the sensoring data
// endpoint.
type SensoringLitter struct {
	Id          uuid.UUID `json:"id"`
	DateTime    time.Time `json:"dateTime"`
	LocationLat float64   `json:"locationLat"`
	LocationLon float64   `json:"locationLon"`
	Category    string    `json:"category"`
	Confidence  float64   `json:"confidence"`
	Temperature float64   `json:"temperature"`
}

type SensoringLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SensoringLoginResponse struct {
	AccessToken string `json:"accessToken"`
}

// IngestReport summarizes one fetch-and-store run.
type IngestReport struct {
	Fetched  int `json:"fetched"`
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

type EnrichedLitterResponse struct {
	Id          uuid.UUID `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Category    string    `json:"category"`
	Confidence  float64   `json:"confidence"`
	Temperature float64   `json:"temperature"`
	Location    *string   `json:"location"`
}
