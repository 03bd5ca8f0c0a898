package dto

import (
	"time"

	"geocheckin/models"
)

// ScanRequest is what the client posts after decoding a QR code.
type ScanRequest struct {
	Payload   string   `json:"payload" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required,lat"`
	Longitude *float64 `json:"longitude" binding:"required,lng"`
	Accuracy  *float64 `json:"accuracy" binding:"omitempty,gte=0"`
}

type ScanResponse struct {
	Outcome        string             `json:"outcome"`
	SiteID         string             `json:"siteId,omitempty"`
	SiteName       string             `json:"siteName,omitempty"`
	DistanceMeters float64            `json:"distanceMeters"`
	RadiusMeters   float64            `json:"radiusMeters,omitempty"`
	Record         *models.Attendance `json:"record,omitempty"`
}

type AttendanceHistoryItem struct {
	models.Attendance
	SiteName    string `json:"siteName"`
	DisplayTime string `json:"displayTime"`
}

type CheckInNotification struct {
	Type     string    `json:"type"`
	UserID   uint      `json:"userId"`
	SiteID   string    `json:"siteId"`
	SiteName string    `json:"siteName"`
	At       time.Time `json:"at"`
}
