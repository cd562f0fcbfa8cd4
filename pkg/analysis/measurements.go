// Package analysis holds the pure length and area computations behind the
// measurement tools: distance selection, midpoints, polygon area and center,
// and human-readable formatting.
package analysis

import (
	"fmt"
	"math"

	"github.com/PrincessGod/plc/pkg/geodesy"
	"github.com/PrincessGod/plc/pkg/geometry"
	"github.com/golang/geo/s1"
	"github.com/paulmach/orb"
)

// DefaultGeoDistanceCameraHeight is the camera height below which distances
// are measured as straight chords instead of over the ellipsoid surface.
const DefaultGeoDistanceCameraHeight = 400000.0

// Calculator computes measurement values on a reference ellipsoid
type Calculator struct {
	Ellipsoid *geodesy.Ellipsoid
	// GeoDistanceCameraHeight selects chord distance when the viewpoint is
	// lower than this height, surface distance otherwise.
	GeoDistanceCameraHeight float64
}

// NewCalculator creates a calculator with the default distance threshold
func NewCalculator(e *geodesy.Ellipsoid) *Calculator {
	if e == nil {
		e = geodesy.WGS84
	}
	return &Calculator{Ellipsoid: e, GeoDistanceCameraHeight: DefaultGeoDistanceCameraHeight}
}

// Default is a WGS84 calculator with the default threshold
var Default = NewCalculator(geodesy.WGS84)

// Distance returns the chord distance between a and b when viewpointHeight is
// below the threshold, and the surface distance otherwise.
func (c *Calculator) Distance(a, b geodesy.Point, viewpointHeight float64) float64 {
	if viewpointHeight < c.GeoDistanceCameraHeight {
		return a.Cartesian().Distance(b.Cartesian())
	}
	return c.SurfaceDistance(a, b)
}

// SurfaceDistance returns the geodesic distance between the geodetic
// projections of a and b; heights are ignored. The result does not depend on
// the order of a and b, bit for bit.
func (c *Calculator) SurfaceDistance(a, b geodesy.Point) float64 {
	start, end := ordered(a.Cartographic(), b.Cartographic())
	return c.Ellipsoid.Geodesic(start, end).SurfaceDistance()
}

// ordered sorts two positions by latitude, then longitude, so the iterative
// solver always sees the same operands.
func ordered(a, b geodesy.Cartographic) (geodesy.Cartographic, geodesy.Cartographic) {
	if b.Latitude < a.Latitude || (b.Latitude == a.Latitude && b.Longitude < a.Longitude) {
		return b, a
	}
	return a, b
}

// Midpoint returns the geodesic halfway point of a and b with the height
// interpolated linearly.
func (c *Calculator) Midpoint(a, b geodesy.Point) geodesy.Point {
	mid := c.Ellipsoid.Geodesic(a.Cartographic(), b.Cartographic()).InterpolateUsingFraction(0.5)
	return c.Ellipsoid.PointFromCartographic(mid)
}

// PolygonArea triangulates the polygon and sums the triangle areas.
// Fewer than three vertices or collinear vertices yield 0.
func (c *Calculator) PolygonArea(vertices []geodesy.Point) float64 {
	return geometry.PolygonArea(geodesy.Cartesians(vertices))
}

// PolygonCenter returns the middle of the geodetic bounding box of vertices:
// longitude, latitude and height are each reduced to (min+max)/2. This is a
// label anchor, not a centroid.
func (c *Calculator) PolygonCenter(vertices []geodesy.Point) (geodesy.Point, bool) {
	if len(vertices) == 0 {
		return geodesy.Point{}, false
	}

	surface := make(orb.MultiPoint, len(vertices))
	minHeight, maxHeight := math.Inf(1), math.Inf(-1)
	for i, v := range vertices {
		carto := v.Cartographic()
		surface[i] = orb.Point{carto.Longitude.Degrees(), carto.Latitude.Degrees()}
		minHeight = math.Min(minHeight, carto.Height)
		maxHeight = math.Max(maxHeight, carto.Height)
	}

	center := surface.Bound().Center()
	return c.Ellipsoid.PointFromCartographic(geodesy.Cartographic{
		Longitude: s1.Angle(center.Lon()) * s1.Degree,
		Latitude:  s1.Angle(center.Lat()) * s1.Degree,
		Height:    (minHeight + maxHeight) / 2,
	}), true
}

// Flatten projects every point onto the ellipsoid surface
func (c *Calculator) Flatten(points []geodesy.Point) []geodesy.Point {
	out := make([]geodesy.Point, len(points))
	for i, p := range points {
		out[i] = c.Ellipsoid.Flatten(p)
	}
	return out
}

// DistanceBetween is Default.Distance
func DistanceBetween(a, b geodesy.Point, viewpointHeight float64) float64 {
	return Default.Distance(a, b, viewpointHeight)
}

// Midpoint is Default.Midpoint
func Midpoint(a, b geodesy.Point) geodesy.Point {
	return Default.Midpoint(a, b)
}

// PolygonArea is Default.PolygonArea
func PolygonArea(vertices []geodesy.Point) float64 {
	return Default.PolygonArea(vertices)
}

// PolygonCenter is Default.PolygonCenter
func PolygonCenter(vertices []geodesy.Point) (geodesy.Point, bool) {
	return Default.PolygonCenter(vertices)
}

// FormatLength formats a length in meters with a unit chosen by magnitude
func FormatLength(length float64) string {
	if length < 1 {
		return fmt.Sprintf("%.2f cm", length*100)
	}
	if length < 1000 {
		return fmt.Sprintf("%.2f m", length)
	}
	return fmt.Sprintf("%.2f km", length/1000)
}

// FormatArea formats an area in square meters with a unit chosen by magnitude
func FormatArea(area float64) string {
	if area < 1 {
		return fmt.Sprintf("%.2f dm²", area*100)
	}
	if area < 1000000 {
		return fmt.Sprintf("%.2f m²", area)
	}
	return fmt.Sprintf("%.2f km²", area/1000000)
}

// FormatVector formats a Cartesian position
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
