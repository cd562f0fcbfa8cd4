package geodesy

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Geodesic is the shortest path over the ellipsoid surface between two
// geodetic positions. Heights do not contribute to its length.
type Geodesic struct {
	ellipsoid *Ellipsoid
	start     Cartographic
	end       Cartographic
	distance  float64
	bearing   float64 // initial bearing in degrees
	spherical bool
}

// Geodesic solves the inverse problem between start and end. When the
// ellipsoidal solution does not converge (nearly antipodal positions) the
// path falls back to a great circle on the mean-radius sphere.
func (e *Ellipsoid) Geodesic(start, end Cartographic) Geodesic {
	g := Geodesic{ellipsoid: e, start: start, end: end}
	if start.SameSurfacePosition(end) {
		return g
	}

	distance, bearing := e.model.To(
		start.Latitude.Degrees(), start.Longitude.Degrees(),
		end.Latitude.Degrees(), end.Longitude.Degrees(),
	)
	if math.IsNaN(distance) || math.IsInf(distance, 0) || math.IsNaN(bearing) {
		g.spherical = true
		g.distance = float64(latLng(start).Distance(latLng(end))) * e.MeanRadius()
		return g
	}

	g.distance = distance
	g.bearing = bearing
	return g
}

// SurfaceDistance returns the length of the geodesic in meters
func (g Geodesic) SurfaceDistance() float64 {
	return g.distance
}

// Start returns the first end point
func (g Geodesic) Start() Cartographic {
	return g.start
}

// End returns the second end point
func (g Geodesic) End() Cartographic {
	return g.end
}

// InterpolateUsingFraction returns the position at fraction of the surface
// distance from start. Height is interpolated linearly between the end points.
func (g Geodesic) InterpolateUsingFraction(fraction float64) Cartographic {
	height := g.start.Height + (g.end.Height-g.start.Height)*fraction
	if g.distance == 0 {
		return g.start.WithHeight(height)
	}

	if g.spherical {
		p := s2.Interpolate(fraction, s2.PointFromLatLng(latLng(g.start)), s2.PointFromLatLng(latLng(g.end)))
		ll := s2.LatLngFromPoint(p)
		return Cartographic{Longitude: ll.Lng, Latitude: ll.Lat, Height: height}
	}

	lat, lon := g.ellipsoid.model.At(
		g.start.Latitude.Degrees(), g.start.Longitude.Degrees(),
		g.distance*fraction, g.bearing,
	)
	return Cartographic{
		Longitude: s1.Angle(lon) * s1.Degree,
		Latitude:  s1.Angle(lat) * s1.Degree,
		Height:    height,
	}
}

func latLng(c Cartographic) s2.LatLng {
	return s2.LatLng{Lat: c.Latitude, Lng: c.Longitude}
}
