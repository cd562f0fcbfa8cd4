package geometry

import (
	"math"
	"testing"
)

func TestVector3AddSub(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)

	if got := v1.Add(v2); got != NewVector3(5, 7, 9) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := v2.Sub(v1); got != NewVector3(3, 3, 3) {
		t.Errorf("Sub failed: got %v", got)
	}
}

func TestVector3Distance(t *testing.T) {
	v1 := NewVector3(0, 0, 0)
	v2 := NewVector3(3, 4, 0)

	if d := v1.Distance(v2); math.Abs(d-5.0) > 1e-10 {
		t.Errorf("Distance failed: expected 5, got %v", d)
	}
	if v1.Distance(v2) != v2.Distance(v1) {
		t.Errorf("Distance is not symmetric")
	}
}

func TestVector3Normalize(t *testing.T) {
	if l := NewVector3(3, 4, 0).Normalize().Length(); math.Abs(l-1.0) > 1e-10 {
		t.Errorf("Normalize failed: expected length 1, got %v", l)
	}
	if z := (Vector3{}).Normalize(); !z.IsZero() {
		t.Errorf("Normalize of zero vector should stay zero, got %v", z)
	}
}

func TestVector3CrossDot(t *testing.T) {
	if got := NewVector3(1, 0, 0).Cross(NewVector3(0, 1, 0)); got != NewVector3(0, 0, 1) {
		t.Errorf("Cross failed: got %v", got)
	}
	if got := NewVector3(1, 2, 3).Dot(NewVector3(4, 5, 6)); math.Abs(got-32.0) > 1e-10 {
		t.Errorf("Dot failed: expected 32, got %v", got)
	}
}

func TestVector3LerpMidpoint(t *testing.T) {
	a := NewVector3(0, 0, 0)
	b := NewVector3(10, -4, 2)

	if got := a.Lerp(b, 0.25); !got.ApproxEqual(NewVector3(2.5, -1, 0.5), 1e-12) {
		t.Errorf("Lerp failed: got %v", got)
	}
	if got := a.Midpoint(b); got != NewVector3(5, -2, 1) {
		t.Errorf("Midpoint failed: got %v", got)
	}
}

func TestVector3MulComponents(t *testing.T) {
	if got := NewVector3(1, 2, 3).MulComponents(NewVector3(2, 0.5, -1)); got != NewVector3(2, 1, -3) {
		t.Errorf("MulComponents failed: got %v", got)
	}
}
