package dto

import "geocheckin/models"

type CreateSiteRequest struct {
	ID                   string   `json:"id" binding:"required,max=64"`
	Name                 string   `json:"name" binding:"required"`
	Address              string   `json:"address"`
	Latitude             *float64 `json:"latitude" binding:"required,lat"`
	Longitude            *float64 `json:"longitude" binding:"required,lng"`
	GeofenceRadiusMeters *float64 `json:"geofenceRadiusMeters" binding:"omitempty,radius"`
}

type UpdateSiteRequest struct {
	Name                 *string  `json:"name"`
	Address              *string  `json:"address"`
	Latitude             *float64 `json:"latitude" binding:"omitempty,lat"`
	Longitude            *float64 `json:"longitude" binding:"omitempty,lng"`
	GeofenceRadiusMeters *float64 `json:"geofenceRadiusMeters" binding:"omitempty,radius"`
}

type SiteSearchResult struct {
	Sites      []models.Site `json:"sites"`
	DidYouMean string        `json:"didYouMean,omitempty"`
}

type SiteQRPayloads struct {
	SiteID   string `json:"siteId"`
	JSON     string `json:"json"`
	Prefixed string `json:"prefixed"`
}
