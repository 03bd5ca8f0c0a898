package types

// SiteDailyCount is the number of check-ins recorded at a site during one day.
type SiteDailyCount struct {
	SiteID   string `json:"siteId"`
	SiteName string `json:"siteName"`
	Count    int64  `json:"count"`
}
