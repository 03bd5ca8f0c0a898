package models

import (
	"math"
	"time"

	"geocheckin/services/geofence"
)

// Site is a place users check in at. Coordinates are nullable: a site saved
// without them is kept but cannot admit anyone.
type Site struct {
	ID                   string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	CreatedAt            time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Name                 string    `gorm:"not null" json:"name"`
	Address              string    `json:"address"`
	Latitude             *float64  `json:"latitude"`
	Longitude            *float64  `json:"longitude"`
	GeofenceRadiusMeters *float64  `json:"geofenceRadiusMeters"`
	PhotoURL             string    `json:"photoUrl"`
	CreatedBy            uint      `json:"createdBy"`
}

// Record converts the row into the geofence view; missing coordinates become NaN.
func (s Site) Record() geofence.SiteRecord {
	rec := geofence.SiteRecord{
		ID:        s.ID,
		Name:      s.Name,
		Latitude:  math.NaN(),
		Longitude: math.NaN(),
	}
	if s.Latitude != nil {
		rec.Latitude = *s.Latitude
	}
	if s.Longitude != nil {
		rec.Longitude = *s.Longitude
	}
	if s.GeofenceRadiusMeters != nil {
		r := *s.GeofenceRadiusMeters
		rec.GeofenceRadiusMeters = &r
	}
	return rec
}
