package geofence

import (
	"math"
	"testing"
)

func radius(v float64) *float64 { return &v }

func TestDecide(t *testing.T) {
	origin := &SiteRecord{ID: "hq", Latitude: 0, Longitude: 0}

	tests := []struct {
		name        string
		site        *SiteRecord
		pos         Coordinate
		want        Outcome
		wantRadius  float64
		distanceMin float64
		distanceMax float64
	}{
		{name: "admitted about 111m away", site: origin, pos: Coordinate{0, 0.001}, want: Admitted, distanceMin: 111, distanceMax: 112},
		{name: "out of range about 1.1km away", site: origin, pos: Coordinate{0, 0.01}, want: OutOfRange, wantRadius: 150, distanceMin: 1110, distanceMax: 1114},
		{name: "admitted at the site", site: origin, pos: Coordinate{0, 0}, want: Admitted, distanceMax: 0},
		{name: "custom radius admits", site: &SiteRecord{ID: "yard", GeofenceRadiusMeters: radius(2000)}, pos: Coordinate{0, 0.01}, want: Admitted, distanceMin: 1110, distanceMax: 1114},
		{name: "custom radius rejects", site: &SiteRecord{ID: "desk", GeofenceRadiusMeters: radius(50)}, pos: Coordinate{0, 0.001}, want: OutOfRange, wantRadius: 50, distanceMin: 111, distanceMax: 112},
		{name: "zero radius falls back to default", site: &SiteRecord{ID: "z", GeofenceRadiusMeters: radius(0)}, pos: Coordinate{0, 0.01}, want: OutOfRange, wantRadius: 150, distanceMin: 1110, distanceMax: 1114},
		{name: "negative radius falls back to default", site: &SiteRecord{ID: "n", GeofenceRadiusMeters: radius(-5)}, pos: Coordinate{0, 0.001}, want: Admitted, distanceMin: 111, distanceMax: 112},
		{name: "infinite radius falls back to default", site: &SiteRecord{ID: "i", GeofenceRadiusMeters: radius(math.Inf(1))}, pos: Coordinate{0, 0.01}, want: OutOfRange, wantRadius: 150, distanceMin: 1110, distanceMax: 1114},
		{name: "NaN latitude is misconfigured", site: &SiteRecord{ID: "m", Latitude: math.NaN(), Longitude: 0}, pos: Coordinate{0, 0}, want: SiteMisconfigured},
		{name: "infinite longitude is misconfigured", site: &SiteRecord{ID: "m", Latitude: 0, Longitude: math.Inf(-1)}, pos: Coordinate{0, 0}, want: SiteMisconfigured},
		{name: "out of range latitude is misconfigured", site: &SiteRecord{ID: "m", Latitude: 123, Longitude: 0}, pos: Coordinate{0, 0}, want: SiteMisconfigured},
		{name: "not found", site: nil, pos: Coordinate{0, 0}, want: SiteNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide("site-id", tt.site, tt.pos)
			if got.Outcome != tt.want {
				t.Fatalf("outcome = %v, want %v (%+v)", got.Outcome, tt.want, got)
			}
			if got.SiteID != "site-id" {
				t.Fatalf("site id = %q", got.SiteID)
			}
			if got.RadiusMeters != tt.wantRadius {
				t.Fatalf("radius = %v, want %v", got.RadiusMeters, tt.wantRadius)
			}
			if got.DistanceMeters < tt.distanceMin || got.DistanceMeters > tt.distanceMax {
				t.Fatalf("distance = %v, want in [%v, %v]", got.DistanceMeters, tt.distanceMin, tt.distanceMax)
			}
		})
	}
}

func TestDecide_NotFoundCarriesNoDistance(t *testing.T) {
	got := Decide("ghost", nil, Coordinate{Lat: math.NaN(), Lng: math.NaN()})
	if got.Outcome != SiteNotFound || got.DistanceMeters != 0 || got.RadiusMeters != 0 {
		t.Fatalf("unexpected decision: %+v", got)
	}
}

func TestDecide_BoundaryIsInclusive(t *testing.T) {
	site := &SiteRecord{ID: "edge"}
	pos := Coordinate{0, 0.001}
	d := GreatCircleDistanceMeters(pos, site.Coordinate())
	site.GeofenceRadiusMeters = &d

	if got := Decide("edge", site, pos); !got.Admitted() {
		t.Fatalf("distance equal to radius must be admitted, got %+v", got)
	}
}

func TestEffectiveRadiusMeters_Default(t *testing.T) {
	if got := (SiteRecord{}).EffectiveRadiusMeters(); got != 150 {
		t.Fatalf("default radius = %v, want exactly 150", got)
	}
}

func TestDecisionMessage(t *testing.T) {
	d := Decision{Outcome: OutOfRange, DistanceMeters: 1112.6, RadiusMeters: 150}
	if got, want := d.Message(), "You are too far from this site. (1113m away)"; got != want {
		t.Fatalf("Message() = %q, want %q", got, want)
	}
	if Rejected().Message() != "This QR code is not recognized." {
		t.Fatalf("unexpected invalid payload message %q", Rejected().Message())
	}
}

func TestOutcomeString(t *testing.T) {
	seen := map[string]bool{}
	for _, o := range []Outcome{Admitted, OutOfRange, InvalidPayload, SiteNotFound, SiteMisconfigured} {
		s := o.String()
		if s == "UNKNOWN" || seen[s] {
			t.Fatalf("outcome %d has bad or duplicate name %q", o, s)
		}
		seen[s] = true
	}
}
