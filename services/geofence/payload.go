package geofence

import (
	"errors"
	"strings"

	"github.com/goccy/go-json"
)

// SitePrefix is the plain-text payload form: "site:<id>".
const SitePrefix = "site:"

var ErrInvalidPayload = errors.New("invalid scan payload")

// ParseSiteID extracts the site identifier from a decoded QR payload.
//
// A payload that parses as a JSON object must carry a non-empty string
// "siteId"; it never falls back to the prefix form. Anything that is not a
// JSON object is matched against the "site:" prefix.
func ParseSiteID(payload string) (string, error) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &obj); err == nil && obj != nil {
		siteID, _ := obj["siteId"].(string)
		if siteID == "" {
			return "", ErrInvalidPayload
		}
		return siteID, nil
	}

	if strings.HasPrefix(payload, SitePrefix) {
		if siteID := strings.TrimPrefix(payload, SitePrefix); siteID != "" {
			return siteID, nil
		}
	}

	return "", ErrInvalidPayload
}

// EncodePayloads returns the two payload strings a QR code for siteID may carry.
func EncodePayloads(siteID string) (jsonPayload string, prefixed string, err error) {
	b, err := json.Marshal(map[string]string{"siteId": siteID})
	if err != nil {
		return "", "", err
	}
	return string(b), SitePrefix + siteID, nil
}
