package geofence

import (
	"math"

	"github.com/goccy/go-json"
)

// DefaultRadiusMeters applies when a site has no usable geofence radius.
const DefaultRadiusMeters = 150.0

// SiteRecord is the geofence view of a registered site.
//
// Latitude and Longitude are NaN when the stored document had no usable
// coordinate; such a site is misconfigured and admits nobody.
type SiteRecord struct {
	ID                   string
	Name                 string
	Latitude             float64
	Longitude            float64
	GeofenceRadiusMeters *float64
}

// Coordinate returns the registered site position.
func (s SiteRecord) Coordinate() Coordinate {
	return Coordinate{Lat: s.Latitude, Lng: s.Longitude}
}

// Misconfigured reports whether the site lacks a valid coordinate.
func (s SiteRecord) Misconfigured() bool {
	return !s.Coordinate().Valid()
}

// EffectiveRadiusMeters returns the configured radius, or DefaultRadiusMeters
// when it is absent, not finite or not positive.
func (s SiteRecord) EffectiveRadiusMeters() float64 {
	if s.GeofenceRadiusMeters == nil {
		return DefaultRadiusMeters
	}
	r := *s.GeofenceRadiusMeters
	if !isFinite(r) || r <= 0 {
		return DefaultRadiusMeters
	}
	return r
}

type siteLocationDocument struct {
	Lat json.RawMessage `json:"lat"`
	Lng json.RawMessage `json:"lng"`
}

type siteDocument struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Location             json.RawMessage `json:"location"`
	GeofenceRadiusMeters json.RawMessage `json:"geofenceRadiusMeters"`
}

type siteLocationOut struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type siteDocumentOut struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Location             siteLocationOut `json:"location"`
	GeofenceRadiusMeters *float64        `json:"geofenceRadiusMeters,omitempty"`
}

// UnmarshalJSON decodes the site document shape
// {"id", "name", "location": {"lat", "lng"}, "geofenceRadiusMeters"}.
// Malformed coordinates do not fail decoding; they mark the site misconfigured.
func (s *SiteRecord) UnmarshalJSON(data []byte) error {
	var doc siteDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	s.ID = doc.ID
	s.Name = doc.Name
	s.Latitude = math.NaN()
	s.Longitude = math.NaN()
	s.GeofenceRadiusMeters = nil

	var loc siteLocationDocument
	if len(doc.Location) > 0 && json.Unmarshal(doc.Location, &loc) == nil {
		s.Latitude = numberOrNaN(loc.Lat)
		s.Longitude = numberOrNaN(loc.Lng)
	}

	if r := numberOrNaN(doc.GeofenceRadiusMeters); isFinite(r) && r > 0 {
		s.GeofenceRadiusMeters = &r
	}
	return nil
}

// MarshalJSON writes the same document shape; NaN coordinates become null.
func (s SiteRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(siteDocumentOut{
		ID:   s.ID,
		Name: s.Name,
		Location: siteLocationOut{
			Lat: finiteOrNil(s.Latitude),
			Lng: finiteOrNil(s.Longitude),
		},
		GeofenceRadiusMeters: s.GeofenceRadiusMeters,
	})
}

func numberOrNaN(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return math.NaN()
	}
	var v *float64
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return math.NaN()
	}
	return *v
}

func finiteOrNil(v float64) *float64 {
	if !isFinite(v) {
		return nil
	}
	return &v
}
