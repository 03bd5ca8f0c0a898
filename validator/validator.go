package validator

import (
	"math"
	"reflect"
	"regexp"
	"strings"

	"geocheckin/dto"
	"geocheckin/errors"
	"geocheckin/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const MaxRadiusMeters = 100000

var (
	emailRegex  = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	siteIDRegex = regexp.MustCompile(`^[A-Za-z0-9._\-]{1,64}$`)
)

// RegisterBindings installs the custom tags on gin's binding validator.
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.NewAppError(errors.ErrCodeValidation, "unexpected binding validator engine", nil)
	}
	return RegisterCustomValidations(v)
}

// RegisterCustomValidations adds the lat, lng and radius tags.
func RegisterCustomValidations(validate *validator.Validate) error {
	if err := validate.RegisterValidation("lat", validateLat); err != nil {
		return err
	}
	if err := validate.RegisterValidation("lng", validateLng); err != nil {
		return err
	}
	return validate.RegisterValidation("radius", validateRadius)
}

func fieldFloat(fl validator.FieldLevel) (float64, bool) {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		return field.Float(), true
	case reflect.Int, reflect.Int32, reflect.Int64:
		return float64(field.Int()), true
	}
	return 0, false
}

func validateLat(fl validator.FieldLevel) bool {
	lat, ok := fieldFloat(fl)
	return ok && !math.IsNaN(lat) && lat >= -90 && lat <= 90
}

func validateLng(fl validator.FieldLevel) bool {
	lng, ok := fieldFloat(fl)
	return ok && !math.IsNaN(lng) && lng >= -180 && lng <= 180
}

func validateRadius(fl validator.FieldLevel) bool {
	r, ok := fieldFloat(fl)
	return ok && r > 0 && r <= MaxRadiusMeters
}

// ValidateRegister checks a signup request.
func ValidateRegister(input dto.RegisterInput) error {
	if input.Email == "" || input.Password == "" || input.ConfirmPassword == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Please fill all the fields", nil)
	}
	if !emailRegex.MatchString(input.Email) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Invalid email format", nil)
	}
	if len(input.Password) < 6 {
		return errors.NewAppError(errors.ErrCodeInvalidPassword, "Password must be at least 6 characters", nil)
	}
	if input.Password != input.ConfirmPassword {
		return errors.NewAppError(errors.ErrCodeInvalidPassword, "Passwords do not match", nil)
	}
	return nil
}

// ValidateSiteID checks the identifier used as primary key and QR payload.
func ValidateSiteID(id string) error {
	if !siteIDRegex.MatchString(id) {
		return errors.NewAppError(errors.ErrCodeInvalidSiteID, "Site ID may only contain letters, digits, '.', '_' and '-'", nil)
	}
	return nil
}

// ValidateSite checks a site before it is written.
func ValidateSite(site *models.Site) error {
	if err := ValidateSiteID(site.ID); err != nil {
		return err
	}
	if strings.TrimSpace(site.Name) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Site name is required", nil)
	}
	if site.Latitude == nil || site.Longitude == nil {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Site location is required", nil)
	}
	if math.IsNaN(*site.Latitude) || *site.Latitude < -90 || *site.Latitude > 90 {
		return errors.NewAppError(errors.ErrCodeValidation, "Latitude must be between -90 and 90", nil)
	}
	if math.IsNaN(*site.Longitude) || *site.Longitude < -180 || *site.Longitude > 180 {
		return errors.NewAppError(errors.ErrCodeValidation, "Longitude must be between -180 and 180", nil)
	}
	if r := site.GeofenceRadiusMeters; r != nil && (math.IsNaN(*r) || *r <= 0 || *r > MaxRadiusMeters) {
		return errors.NewAppError(errors.ErrCodeValidation, "Geofence radius must be a positive number of meters", nil)
	}
	return nil
}
