package controllers

import (
	"net/http"
	"strconv"

	"geocheckin/dto"
	"geocheckin/errors"
	"geocheckin/response"
	"geocheckin/services"
	"geocheckin/services/geofence"

	"github.com/gin-gonic/gin"
)

type AttendanceController struct {
	attendance *services.AttendanceService
}

func NewAttendanceController(attendance *services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendance: attendance}
}

// outcomeStatus maps a rejected decision to its HTTP status and error code.
func outcomeStatus(o geofence.Outcome) (int, errors.ErrorCode) {
	switch o {
	case geofence.InvalidPayload:
		return http.StatusBadRequest, errors.ErrCodeInvalidPayload
	case geofence.SiteNotFound:
		return http.StatusNotFound, errors.ErrCodeSiteNotFound
	case geofence.SiteMisconfigured:
		return http.StatusUnprocessableEntity, errors.ErrCodeSiteMisconfigured
	case geofence.OutOfRange:
		return http.StatusForbidden, errors.ErrCodeOutOfRange
	default:
		return http.StatusInternalServerError, ""
	}
}

// Scan godoc
// @Summary  Check in by scanning a site QR code
// @Tags     attendance
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    X-Session-ID header string false "scan session"
// @Param    body body dto.ScanRequest true "scan"
// @Success  200 {object} response.Response
// @Failure  400 {object} response.Response
// @Failure  403 {object} response.Response
// @Failure  404 {object} response.Response
// @Failure  409 {object} response.Response
// @Failure  422 {object} response.Response
// @Router   /attendance/scan [post]
func (ac *AttendanceController) Scan(c *gin.Context) {
	var req dto.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, string(errors.ErrCodeValidation), "Payload and a valid location are required", nil)
		return
	}

	userID, email, err := currentUser(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	result, err := ac.attendance.CheckIn(c.Request.Context(), services.CheckInInput{
		Identity:  geofence.Identity{UserID: userID, Email: email},
		SessionID: c.GetString("sessionId"),
		Payload:   req.Payload,
		Position:  geofence.Coordinate{Lat: *req.Latitude, Lng: *req.Longitude},
		Accuracy:  req.Accuracy,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	d := result.Decision
	body := dto.ScanResponse{
		Outcome:        d.Outcome.String(),
		SiteID:         d.SiteID,
		SiteName:       result.SiteName,
		DistanceMeters: d.DistanceMeters,
		RadiusMeters:   d.RadiusMeters,
		Record:         result.Record,
	}
	if d.Admitted() {
		response.SuccessWithMessage(c, d.Message(), body)
		return
	}

	status, code := outcomeStatus(d.Outcome)
	response.Fail(c, status, string(code), d.Message(), body)
}

// History godoc
// @Summary  The caller's recent check-ins, newest first
// @Tags     attendance
// @Produce  json
// @Security BearerAuth
// @Param    limit query int false "max records (default and max 50)"
// @Success  200 {object} response.Response
// @Router   /attendance [get]
func (ac *AttendanceController) History(c *gin.Context) {
	userID, _, err := currentUser(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "limit must be a number")
			return
		}
	}

	items, err := ac.attendance.History(c.Request.Context(), userID, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, items)
}
