package builders

import (
	"time"

	"geocheckin/models"
	"geocheckin/services/geofence"

	"github.com/google/uuid"
)

// AttendanceBuilder assembles an attendance row step by step.
type AttendanceBuilder struct {
	attendance *models.Attendance
}

func NewAttendanceBuilder() *AttendanceBuilder {
	return &AttendanceBuilder{
		attendance: &models.Attendance{
			ID:     uuid.New(),
			Status: geofence.StatusCheckIn,
		},
	}
}

// FromEvent copies an admitted check-in event.
func (b *AttendanceBuilder) FromEvent(ev geofence.Event) *AttendanceBuilder {
	return b.WithUser(ev.UserID, ev.UserEmail).
		WithSite(ev.SiteID).
		WithStatus(ev.Status).
		WithDevice(ev.Device).
		WithCoords(ev.Coords).
		WithDistance(ev.DistanceMeters).
		WithClientTimestamp(ev.ClientTimestamp)
}

func (b *AttendanceBuilder) WithUser(userID uint, email string) *AttendanceBuilder {
	b.attendance.UserID = userID
	if email != "" {
		b.attendance.UserEmail = &email
	} else {
		b.attendance.UserEmail = nil
	}
	return b
}

func (b *AttendanceBuilder) WithSite(siteID string) *AttendanceBuilder {
	b.attendance.SiteID = siteID
	return b
}

func (b *AttendanceBuilder) WithStatus(status string) *AttendanceBuilder {
	b.attendance.Status = status
	return b
}

func (b *AttendanceBuilder) WithDevice(device string) *AttendanceBuilder {
	b.attendance.Device = device
	return b
}

func (b *AttendanceBuilder) WithCoords(c geofence.Coordinate) *AttendanceBuilder {
	b.attendance.Latitude = c.Lat
	b.attendance.Longitude = c.Lng
	return b
}

// WithAccuracy records the reported GPS accuracy in meters, if any.
func (b *AttendanceBuilder) WithAccuracy(accuracy *float64) *AttendanceBuilder {
	if accuracy == nil {
		b.attendance.Accuracy = nil
		return b
	}
	a := *accuracy
	b.attendance.Accuracy = &a
	return b
}

func (b *AttendanceBuilder) WithDistance(meters float64) *AttendanceBuilder {
	b.attendance.DistanceMeters = meters
	return b
}

func (b *AttendanceBuilder) WithClientTimestamp(t time.Time) *AttendanceBuilder {
	b.attendance.ClientTimestamp = t
	return b
}

func (b *AttendanceBuilder) Build() *models.Attendance {
	return b.attendance
}
