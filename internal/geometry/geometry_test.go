package geometry

import (
	"math"
	"testing"
)

func TestParseVertices(t *testing.T) {
	got := ParseVertices("0,0 1531,1  1226.5,239\n332,239")
	want := []Point{{0, 0}, {1531, 1}, {1226.5, 239}, {332, 239}}
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParseVerticesMalformed(t *testing.T) {
	got := ParseVertices("1,2 x,3 4")
	if len(got) != 3 {
		t.Fatalf("got %d points, want 3", len(got))
	}
	if got[0] != (Point{1, 2}) {
		t.Fatalf("first point = %v", got[0])
	}
	if !math.IsNaN(got[1].X) || got[1].Y != 3 {
		t.Fatalf("second point = %v, want (NaN, 3)", got[1])
	}
	if got[2].X != 4 || !math.IsNaN(got[2].Y) {
		t.Fatalf("third point = %v, want (4, NaN)", got[2])
	}
}

func TestSerializeVertices(t *testing.T) {
	got := SerializeVertices([]Point{{0, 0}, {10.126, 3}, {1.5, 2.333}})
	if want := "0.00,0.00 10.13,3.00 1.50,2.33"; got != want {
		t.Fatalf("SerializeVertices = %q, want %q", got, want)
	}
	back := ParseVertices(got)
	if back[1] != (Point{10.13, 3}) {
		t.Fatalf("round trip = %v", back[1])
	}
}

func TestCentroidSquare(t *testing.T) {
	square := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if got := Centroid(square); got != (Point{5, 5}) {
		t.Fatalf("Centroid(square) = %v, want (5,5)", got)
	}
	// Winding direction does not change the centroid.
	reversed := []Point{{0, 10}, {10, 10}, {10, 0}, {0, 0}}
	if got := Centroid(reversed); got != (Point{5, 5}) {
		t.Fatalf("Centroid(reversed) = %v, want (5,5)", got)
	}
}

func TestSignedAreaWinding(t *testing.T) {
	ccw := []Point{{0, 0}, {4, 0}, {4, 3}, {0, 3}}
	if got := SignedArea(ccw); got != 12 {
		t.Fatalf("SignedArea(ccw) = %v, want 12", got)
	}
	cw := []Point{{0, 3}, {4, 3}, {4, 0}, {0, 0}}
	if got := SignedArea(cw); got != -12 {
		t.Fatalf("SignedArea(cw) = %v, want -12", got)
	}
	if got := SignedArea([]Point{{0, 0}, {5, 0}, {10, 0}}); got != 0 {
		t.Fatalf("SignedArea(collinear) = %v, want 0", got)
	}
	if got := SignedArea(nil); got != 0 {
		t.Fatalf("SignedArea(nil) = %v, want 0", got)
	}
}

func TestCentroidCollinearFallsBackToMean(t *testing.T) {
	got := Centroid([]Point{{0, 0}, {5, 0}, {10, 0}})
	if got.IsNaN() {
		t.Fatal("centroid of collinear points is NaN")
	}
	if got != (Point{5, 0}) {
		t.Fatalf("Centroid(collinear) = %v, want (5,0)", got)
	}
}

func TestCentroidNonConvex(t *testing.T) {
	// L shape made of a 2x1 and a 1x1 block.
	l := []Point{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}}
	got := Centroid(l)
	want := Point{X: 5.0 / 6.0, Y: 5.0 / 6.0}
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Fatalf("Centroid(L) = %v, want %v", got, want)
	}
}

func TestTranslateRoundTrip(t *testing.T) {
	orig := []Point{{1, 2}, {3.5, -4}, {100, 7}}
	moved := Translate(orig, 12, -8)
	if moved[0] != (Point{13, -6}) {
		t.Fatalf("translated = %v", moved[0])
	}
	back := Translate(moved, -12, 8)
	for i := range orig {
		if back[i] != orig[i] {
			t.Fatalf("round trip point %d = %v, want %v", i, back[i], orig[i])
		}
	}
	if orig[0] != (Point{1, 2}) {
		t.Fatal("Translate mutated its input")
	}
}

func TestSetVertex(t *testing.T) {
	orig := []Point{{0, 0}, {1, 0}, {1, 1}}
	got := SetVertex(orig, 1, Point{5, 5})
	if got[1] != (Point{5, 5}) || got[0] != orig[0] || got[2] != orig[2] {
		t.Fatalf("SetVertex = %v", got)
	}
	if orig[1] != (Point{1, 0}) {
		t.Fatal("SetVertex mutated its input")
	}
	if same := SetVertex(orig, 3, Point{9, 9}); &same[0] != &orig[0] {
		t.Fatal("out of range SetVertex should return the input")
	}
}

func TestContains(t *testing.T) {
	square := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{5, 5}, true},
		{Point{-1, 5}, false},
		{Point{11, 5}, false},
		{Point{5, 10.5}, false},
	}
	for _, tt := range tests {
		if got := Contains(square, tt.p); got != tt.want {
			t.Errorf("Contains(square, %v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if Contains([]Point{{0, 0}, {1, 1}}, Point{0.5, 0.5}) {
		t.Fatal("two points cannot contain anything")
	}
}

func TestBounds(t *testing.T) {
	min, max := Bounds([]Point{{3, 4}, {-1, 10}, {7, 2}})
	if min != (Point{-1, 2}) || max != (Point{7, 10}) {
		t.Fatalf("Bounds = %v %v", min, max)
	}
}
