package entity

import (
	"time"

	"github.com/google/uuid"
)

// Litter is the raw detection event exactly as fetched from the sensoring
// API. Immutable once stored.
type Litter struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Timestamp   time.Time
	LocationLat float64
	LocationLon float64
	Category    string
	Confidence  float64
	Temperature float64
	CreatedAt   time.Time
}

// EnrichedLitter shares its Id with the Litter row it was derived from.
// Location stays nil when reverse geocoding failed; that is a tolerated
// state, not an error.
type EnrichedLitter struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Timestamp   time.Time
	Category    string
	Confidence  float64
	Temperature float64
	Location    *string
	CreatedAt   time.Time
}
