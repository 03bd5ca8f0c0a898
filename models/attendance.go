package models

import (
	"time"

	"github.com/google/uuid"
)

// Attendance is a persisted check-in. Rows are append-only.
type Attendance struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uint      `gorm:"index;not null" json:"userId"`
	UserEmail       *string   `json:"userEmail"`
	SiteID          string    `gorm:"index;type:varchar(64);not null" json:"siteId"`
	Status          string    `gorm:"type:varchar(20);not null;default:check-in" json:"status"`
	Device          string    `gorm:"type:varchar(20)" json:"device"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	Accuracy        *float64  `json:"accuracy,omitempty"`
	DistanceMeters  float64   `json:"distanceMeters"`
	Timestamp       time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
	ClientTimestamp time.Time `json:"clientTimestamp"`
}
