package memstore

import (
	"math"
	"testing"
)

func TestHaversine_ZeroDistance(t *testing.T) {
	if d := Haversine(9.0, -79.5, 9.0, -79.5); d != 0 {
		t.Fatalf("expected 0, got %v", d)
	}
}

func TestHaversine_Symmetric(t *testing.T) {
	a := Haversine(9.0, -79.5, 8.5, -80.0)
	b := Haversine(8.5, -80.0, 9.0, -79.5)
	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("expected symmetric distance, got %v and %v", a, b)
	}
}

func TestHaversine_KnownDistance(t *testing.T) {
	// One degree of latitude is roughly 111.2 km everywhere on the sphere.
	d := Haversine(9.0, -79.5, 10.0, -79.5)
	if math.Abs(d-111.19) > 0.5 {
		t.Fatalf("expected ~111.19 km, got %v", d)
	}
}
