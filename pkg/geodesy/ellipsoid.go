package geodesy

import (
	"math"

	"github.com/PrincessGod/plc/pkg/geometry"
	"github.com/StefanSchroeder/Golang-Ellipsoid/ellipsoid"
	"github.com/golang/geo/s1"
)

// WGS84 semi-axes in meters
const (
	WGS84SemiMajorAxis = 6378137.0
	WGS84SemiMinorAxis = 6356752.3142451793
)

// Ellipsoid is a reference ellipsoid used to convert and measure positions
type Ellipsoid struct {
	model ellipsoid.Ellipsoid
	radii geometry.Vector3
}

// WGS84 is the default reference ellipsoid
var WGS84 = NewWGS84()

// NewWGS84 creates the WGS84 ellipsoid, working in degrees and meters
func NewWGS84() *Ellipsoid {
	return &Ellipsoid{
		model: ellipsoid.Init("WGS84", ellipsoid.Degrees, ellipsoid.Meter,
			ellipsoid.LongitudeIsSymmetric, ellipsoid.BearingIsSymmetric),
		radii: geometry.NewVector3(WGS84SemiMajorAxis, WGS84SemiMajorAxis, WGS84SemiMinorAxis),
	}
}

// Radii returns the semi-axes along X, Y and Z
func (e *Ellipsoid) Radii() geometry.Vector3 {
	return e.radii
}

// MeanRadius returns the arithmetic mean of the three semi-axes
func (e *Ellipsoid) MeanRadius() float64 {
	return (e.radii.X + e.radii.Y + e.radii.Z) / 3
}

// ToCartesian converts a geodetic position to Earth-fixed Cartesian coordinates
func (e *Ellipsoid) ToCartesian(c Cartographic) geometry.Vector3 {
	x, y, z := e.model.ToECEF(c.Latitude.Degrees(), c.Longitude.Degrees(), c.Height)
	return geometry.NewVector3(x, y, z)
}

// ToCartographic converts Earth-fixed Cartesian coordinates to a geodetic
// position. Positions too close to the center of the ellipsoid have no
// meaningful geodetic representation and report false.
func (e *Ellipsoid) ToCartographic(v geometry.Vector3) (Cartographic, bool) {
	if v.Length() < 0.1*e.radii.Z {
		return Cartographic{}, false
	}
	lat, lon, h := e.model.ToLLA(v.X, v.Y, v.Z)
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsNaN(h) {
		return Cartographic{}, false
	}
	return Cartographic{
		Longitude: s1.Angle(lon) * s1.Degree,
		Latitude:  s1.Angle(lat) * s1.Degree,
		Height:    h,
	}, true
}

// Point creates a point from Cartesian coordinates
func (e *Ellipsoid) Point(v geometry.Vector3) (Point, bool) {
	c, ok := e.ToCartographic(v)
	if !ok {
		return Point{}, false
	}
	return Point{cartesian: v, cartographic: c}, true
}

// PointFromCartographic creates a point from a geodetic position
func (e *Ellipsoid) PointFromCartographic(c Cartographic) Point {
	return Point{cartesian: e.ToCartesian(c), cartographic: c}
}

// WithHeight moves p along the ellipsoid normal to the given height
func (e *Ellipsoid) WithHeight(p Point, height float64) Point {
	return e.PointFromCartographic(p.cartographic.WithHeight(height))
}

// Flatten projects p onto the ellipsoid surface (height 0)
func (e *Ellipsoid) Flatten(p Point) Point {
	return e.WithHeight(p, 0)
}

// SurfaceNormal returns the geodetic surface normal at c
func (e *Ellipsoid) SurfaceNormal(c Cartographic) geometry.Vector3 {
	cosLat := math.Cos(c.Latitude.Radians())
	return geometry.NewVector3(
		cosLat*math.Cos(c.Longitude.Radians()),
		cosLat*math.Sin(c.Longitude.Radians()),
		math.Sin(c.Latitude.Radians()),
	)
}

// Frame is a local east-north-up frame anchored at a geodetic position
type Frame struct {
	Origin geometry.Vector3
	East   geometry.Vector3
	North  geometry.Vector3
	Up     geometry.Vector3
}

// LocalFrame returns the east-north-up frame at c
func (e *Ellipsoid) LocalFrame(c Cartographic) Frame {
	up := e.SurfaceNormal(c)
	east := geometry.NewVector3(-math.Sin(c.Longitude.Radians()), math.Cos(c.Longitude.Radians()), 0)
	return Frame{
		Origin: e.ToCartesian(c),
		East:   east,
		North:  up.Cross(east),
		Up:     up,
	}
}

// Offset returns the Cartesian position displaced from the frame origin
func (f Frame) Offset(east, north, up float64) geometry.Vector3 {
	return f.Origin.Add(f.East.Mul(east)).Add(f.North.Mul(north)).Add(f.Up.Mul(up))
}
