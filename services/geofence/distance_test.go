package geofence

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestGreatCircleDistanceMeters_Identical(t *testing.T) {
	points := []Coordinate{
		{0, 0},
		{10.762622, 106.660172},
		{-33.8688, 151.2093},
		{90, 0},
		{-90, 180},
		{51.5, -0.12},
	}
	for _, p := range points {
		if d := GreatCircleDistanceMeters(p, p); d != 0 {
			t.Fatalf("distance(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestGreatCircleDistanceMeters_Symmetric(t *testing.T) {
	pairs := [][2]Coordinate{
		{{0, 0}, {0, 0.001}},
		{{10.762622, 106.660172}, {21.028511, 105.804817}},
		{{-33.8688, 151.2093}, {51.5074, -0.1278}},
		{{0, 0}, {0, 180}},
		{{89.9, 10}, {-89.9, -170}},
	}
	for _, p := range pairs {
		ab := GreatCircleDistanceMeters(p[0], p[1])
		ba := GreatCircleDistanceMeters(p[1], p[0])
		if ab != ba {
			t.Fatalf("distance not symmetric for %v: %v != %v", p, ab, ba)
		}
	}
}

func TestGreatCircleDistanceMeters_Known(t *testing.T) {
	tests := []struct {
		name string
		a, b Coordinate
		want float64
		tol  float64
	}{
		{name: "0.001 deg of longitude on the equator", a: Coordinate{0, 0}, b: Coordinate{0, 0.001}, want: 111.19, tol: 0.05},
		{name: "0.01 deg of longitude on the equator", a: Coordinate{0, 0}, b: Coordinate{0, 0.01}, want: 1111.95, tol: 1.5},
		{name: "antipodal", a: Coordinate{0, 0}, b: Coordinate{0, 180}, want: math.Pi * EarthRadiusMeters, tol: 1e-6},
		{name: "pole to pole", a: Coordinate{90, 0}, b: Coordinate{-90, 0}, want: math.Pi * EarthRadiusMeters, tol: 1e-6},
		{name: "tiny separation", a: Coordinate{10, 10}, b: Coordinate{10, 10.0000001}, want: 0.011, tol: 0.001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GreatCircleDistanceMeters(tt.a, tt.b)
			if math.IsNaN(got) || !almostEqual(got, tt.want, tt.tol) {
				t.Fatalf("distance(%v, %v) = %v, want %v±%v", tt.a, tt.b, got, tt.want, tt.tol)
			}
		})
	}
}

func TestCoordinateValid(t *testing.T) {
	if !(Coordinate{Lat: 90, Lng: -180}).Valid() {
		t.Fatal("boundary coordinate should be valid")
	}
	invalid := []Coordinate{
		{Lat: math.NaN(), Lng: 0},
		{Lat: 0, Lng: math.Inf(1)},
		{Lat: 90.5, Lng: 0},
		{Lat: 0, Lng: -181},
	}
	for _, c := range invalid {
		if c.Valid() {
			t.Fatalf("%v should be invalid", c)
		}
	}
}
