package geodesy

import "github.com/PrincessGod/plc/pkg/geometry"

// Point is a world position held in both Cartesian and geodetic form. Points
// are immutable values created by an Ellipsoid, so the two representations
// can never drift apart; "moving" a point produces a new one.
type Point struct {
	cartesian    geometry.Vector3
	cartographic Cartographic
}

// Cartesian returns the Earth-fixed Cartesian coordinates
func (p Point) Cartesian() geometry.Vector3 {
	return p.cartesian
}

// Cartographic returns the geodetic position
func (p Point) Cartographic() Cartographic {
	return p.cartographic
}

// Height returns the height above the ellipsoid
func (p Point) Height() float64 {
	return p.cartographic.Height
}

// Equal reports whether p and other are the same world position
func (p Point) Equal(other Point) bool {
	return p.cartesian == other.cartesian
}

// IsZero reports whether p is the zero value (never produced by an Ellipsoid)
func (p Point) IsZero() bool {
	return p.cartesian.IsZero()
}

// Cartesians extracts the Cartesian coordinates of points
func Cartesians(points []Point) []geometry.Vector3 {
	out := make([]geometry.Vector3, len(points))
	for i, p := range points {
		out[i] = p.cartesian
	}
	return out
}
