package geofence

import (
	"fmt"
	"math"
)

// Outcome is the result class of an admission attempt.
type Outcome int

const (
	Admitted Outcome = iota + 1
	OutOfRange
	InvalidPayload
	SiteNotFound
	SiteMisconfigured
)

func (o Outcome) String() string {
	switch o {
	case Admitted:
		return "ADMITTED"
	case OutOfRange:
		return "OUT_OF_RANGE"
	case InvalidPayload:
		return "INVALID_PAYLOAD"
	case SiteNotFound:
		return "SITE_NOT_FOUND"
	case SiteMisconfigured:
		return "SITE_MISCONFIGURED"
	default:
		return "UNKNOWN"
	}
}

// Decision is the outcome of one admission attempt.
// DistanceMeters is set for Admitted and OutOfRange, RadiusMeters for OutOfRange.
type Decision struct {
	Outcome        Outcome `json:"outcome"`
	SiteID         string  `json:"siteId,omitempty"`
	DistanceMeters float64 `json:"distanceMeters,omitempty"`
	RadiusMeters   float64 `json:"radiusMeters,omitempty"`
}

func (d Decision) Admitted() bool {
	return d.Outcome == Admitted
}

// Message is the user-facing text for the outcome.
func (d Decision) Message() string {
	switch d.Outcome {
	case Admitted:
		return "Attendance recorded"
	case OutOfRange:
		return fmt.Sprintf("You are too far from this site. (%dm away)", int64(math.Round(d.DistanceMeters)))
	case InvalidPayload:
		return "This QR code is not recognized."
	case SiteNotFound:
		return "No site found for this QR."
	case SiteMisconfigured:
		return "Site is misconfigured: missing location."
	default:
		return "Failed to process scan"
	}
}

// Rejected builds a decision for a payload that yielded no site identifier.
func Rejected() Decision {
	return Decision{Outcome: InvalidPayload}
}

// Decide admits or rejects a check-in at site for a user standing at pos.
// A nil site means the lookup found nothing.
func Decide(siteID string, site *SiteRecord, pos Coordinate) Decision {
	if site == nil {
		return Decision{Outcome: SiteNotFound, SiteID: siteID}
	}
	if site.Misconfigured() {
		return Decision{Outcome: SiteMisconfigured, SiteID: siteID}
	}

	radius := site.EffectiveRadiusMeters()
	d := GreatCircleDistanceMeters(pos, site.Coordinate())
	if d <= radius {
		return Decision{Outcome: Admitted, SiteID: siteID, DistanceMeters: d}
	}
	return Decision{Outcome: OutOfRange, SiteID: siteID, DistanceMeters: d, RadiusMeters: radius}
}
