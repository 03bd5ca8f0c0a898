package geofence

import (
	"errors"
	"time"
)

const (
	StatusCheckIn = "check-in"
	DeviceMobile  = "mobile"
)

var ErrNotAdmitted = errors.New("attendance event requires an admitted decision")

// Identity is the acting user, resolved by the caller before admission.
type Identity struct {
	UserID uint
	Email  string
}

// Event is an admitted check-in, ready to be persisted. The server
// timestamp is assigned by the store.
type Event struct {
	UserID          uint
	UserEmail       string
	SiteID          string
	Status          string
	Device          string
	Coords          Coordinate
	DistanceMeters  float64
	ClientTimestamp time.Time
}

// NewEvent builds the attendance event for an admitted decision.
func NewEvent(d Decision, who Identity, pos Coordinate, now time.Time) (Event, error) {
	if !d.Admitted() {
		return Event{}, ErrNotAdmitted
	}
	return Event{
		UserID:          who.UserID,
		UserEmail:       who.Email,
		SiteID:          d.SiteID,
		Status:          StatusCheckIn,
		Device:          DeviceMobile,
		Coords:          pos,
		DistanceMeters:  d.DistanceMeters,
		ClientTimestamp: now,
	}, nil
}
