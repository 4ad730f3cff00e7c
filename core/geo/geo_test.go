package geo

import (
	"math"
	"testing"
)

func TestPointDistance(t *testing.T) {
	if d := Pt(0, 0).Distance(Pt(3, 4)); d != 5 {
		t.Fatalf("expected 5, got %v", d)
	}
}

func TestPolylineLength(t *testing.T) {
	pl := Line(Pt(0, 0), Pt(3, 0), Pt(3, 4))
	if l := pl.Length(); l != 7 {
		t.Fatalf("expected 7, got %v", l)
	}
	if l := Line(Pt(1, 1)).Length(); l != 0 {
		t.Fatalf("single point length should be 0, got %v", l)
	}
}

func TestPolylineDistance_Perpendicular(t *testing.T) {
	pl := Line(Pt(0, 0), Pt(10, 0))
	if d := pl.Distance(Pt(5, 3)); d != 3 {
		t.Fatalf("expected 3, got %v", d)
	}
}

func TestPolylineDistance_BeyondEndpoint(t *testing.T) {
	pl := Line(Pt(0, 0), Pt(10, 0))
	// The projection falls past the segment end; distance is to the
	// endpoint itself.
	want := math.Hypot(3, 4)
	if d := pl.Distance(Pt(13, 4)); math.Abs(d-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, d)
	}
}

func TestPolylineNearest_PicksClosestSegment(t *testing.T) {
	pl := Line(Pt(0, 0), Pt(10, 0), Pt(10, 10))
	pt, d := pl.Nearest(Pt(12, 5))
	if pt != Pt(10, 5) {
		t.Fatalf("expected nearest (10,5), got %v", pt)
	}
	if d != 2 {
		t.Fatalf("expected distance 2, got %v", d)
	}
}

func TestPolylineNearest_Degenerate(t *testing.T) {
	pl := Line(Pt(2, 2), Pt(2, 2))
	pt, d := pl.Nearest(Pt(2, 5))
	if pt != Pt(2, 2) || d != 3 {
		t.Fatalf("expected (2,2) at 3, got %v at %v", pt, d)
	}

	if _, d := Line().Nearest(Pt(0, 0)); d != math.MaxFloat64 {
		t.Fatalf("empty polyline should report max distance")
	}
}
