package geometry

import (
	"math"
	"testing"
)

func TestTriangleArea(t *testing.T) {
	// Right triangle with sides 3, 4, 5
	tri := NewTriangle(
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)

	area := tri.Area()
	expected := 6.0

	if math.Abs(area-expected) > 1e-10 {
		t.Errorf("Area failed: expected %v, got %v", expected, area)
	}
}

func TestTriangleAreaIgnoresWinding(t *testing.T) {
	ccw := NewTriangle(NewVector3(0, 0, 0), NewVector3(3, 0, 0), NewVector3(0, 4, 0))
	cw := NewTriangle(NewVector3(0, 0, 0), NewVector3(0, 4, 0), NewVector3(3, 0, 0))

	if math.Abs(ccw.Area()-cw.Area()) > 1e-10 {
		t.Errorf("Area depends on winding: %v vs %v", ccw.Area(), cw.Area())
	}
	if ccw.Normal() != NewVector3(0, 0, 1) {
		t.Errorf("Normal failed: expected +Z, got %v", ccw.Normal())
	}
}

func TestTriangleEdgeLengths(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)

	lengths := tri.EdgeLengths()

	if math.Abs(lengths[0]-3.0) > 1e-10 {
		t.Errorf("Edge 0 length failed: expected 3.0, got %v", lengths[0])
	}
	if math.Abs(lengths[1]-5.0) > 1e-10 {
		t.Errorf("Edge 1 length failed: expected 5.0, got %v", lengths[1])
	}
	if math.Abs(lengths[2]-4.0) > 1e-10 {
		t.Errorf("Edge 2 length failed: expected 4.0, got %v", lengths[2])
	}
	if math.Abs(tri.Perimeter()-12.0) > 1e-10 {
		t.Errorf("Perimeter failed: expected 12, got %v", tri.Perimeter())
	}
}

func TestTriangleCenter(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 3, 0),
	)

	center := tri.Center()
	expected := NewVector3(1, 1, 0)

	if center != expected {
		t.Errorf("Center failed: expected %v, got %v", expected, center)
	}
}
