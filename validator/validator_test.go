package validator

import (
	"testing"

	"geocheckin/dto"
	"geocheckin/errors"
	"geocheckin/models"

	"github.com/go-playground/validator/v10"
)

func f(v float64) *float64 { return &v }

func TestCustomTags(t *testing.T) {
	v := validator.New()
	if err := RegisterCustomValidations(v); err != nil {
		t.Fatalf("register: %v", err)
	}

	tests := []struct {
		name    string
		req     dto.ScanRequest
		wantErr bool
	}{
		{name: "valid", req: dto.ScanRequest{Payload: "site:a", Latitude: f(10.7), Longitude: f(106.6)}},
		{name: "zero coordinates are valid", req: dto.ScanRequest{Payload: "site:a", Latitude: f(0), Longitude: f(0)}},
		{name: "latitude too large", req: dto.ScanRequest{Payload: "site:a", Latitude: f(91), Longitude: f(0)}, wantErr: true},
		{name: "longitude too small", req: dto.ScanRequest{Payload: "site:a", Latitude: f(0), Longitude: f(-180.5)}, wantErr: true},
		{name: "missing latitude", req: dto.ScanRequest{Payload: "site:a", Longitude: f(0)}, wantErr: true},
		{name: "missing payload", req: dto.ScanRequest{Latitude: f(0), Longitude: f(0)}, wantErr: true},
		{name: "negative accuracy", req: dto.ScanRequest{Payload: "site:a", Latitude: f(0), Longitude: f(0), Accuracy: f(-1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Struct() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRadiusTag(t *testing.T) {
	v := validator.New()
	if err := RegisterCustomValidations(v); err != nil {
		t.Fatalf("register: %v", err)
	}
	ok := dto.UpdateSiteRequest{GeofenceRadiusMeters: f(200)}
	if err := v.Struct(ok); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	for _, r := range []float64{0, -3, MaxRadiusMeters + 1} {
		if err := v.Struct(dto.UpdateSiteRequest{GeofenceRadiusMeters: f(r)}); err == nil {
			t.Fatalf("radius %v should be rejected", r)
		}
	}
	if err := v.Struct(dto.UpdateSiteRequest{}); err != nil {
		t.Fatalf("absent radius should pass: %v", err)
	}
}

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name  string
		input dto.RegisterInput
		code  errors.ErrorCode
	}{
		{name: "ok", input: dto.RegisterInput{Email: "a@b.co", Password: "secret", ConfirmPassword: "secret"}},
		{name: "missing fields", input: dto.RegisterInput{Email: "a@b.co"}, code: errors.ErrCodeRequiredField},
		{name: "bad email", input: dto.RegisterInput{Email: "a@b", Password: "secret", ConfirmPassword: "secret"}, code: errors.ErrCodeInvalidEmail},
		{name: "short password", input: dto.RegisterInput{Email: "a@b.co", Password: "12345", ConfirmPassword: "12345"}, code: errors.ErrCodeInvalidPassword},
		{name: "mismatch", input: dto.RegisterInput{Email: "a@b.co", Password: "secret1", ConfirmPassword: "secret2"}, code: errors.ErrCodeInvalidPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegister(tt.input)
			if tt.code == "" {
				if err != nil {
					t.Fatalf("unexpected err: %v", err)
				}
				return
			}
			if !errors.HasCode(err, tt.code) {
				t.Fatalf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidateSite(t *testing.T) {
	valid := func() *models.Site {
		return &models.Site{ID: "hq-01", Name: "HQ", Latitude: f(10), Longitude: f(106)}
	}

	if err := ValidateSite(valid()); err != nil {
		t.Fatalf("valid site rejected: %v", err)
	}

	mutations := map[string]func(s *models.Site){
		"bad id":          func(s *models.Site) { s.ID = "has space" },
		"empty id":        func(s *models.Site) { s.ID = "" },
		"blank name":      func(s *models.Site) { s.Name = "  " },
		"no latitude":     func(s *models.Site) { s.Latitude = nil },
		"latitude range":  func(s *models.Site) { s.Latitude = f(-91) },
		"longitude range": func(s *models.Site) { s.Longitude = f(200) },
		"zero radius":     func(s *models.Site) { s.GeofenceRadiusMeters = f(0) },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			s := valid()
			mutate(s)
			if err := ValidateSite(s); !errors.IsAppError(err) {
				t.Fatalf("expected AppError, got %v", err)
			}
		})
	}
}
