// Package geodesy converts between Earth-fixed Cartesian positions and
// geodetic (longitude, latitude, height) positions on a reference ellipsoid,
// and solves geodesics between geodetic positions.
package geodesy

import (
	"fmt"

	"github.com/golang/geo/s1"
)

// Cartographic is a geodetic position relative to a reference ellipsoid
type Cartographic struct {
	Longitude s1.Angle
	Latitude  s1.Angle
	Height    float64 // meters above the ellipsoid
}

// FromDegrees creates a cartographic position from degrees and meters
func FromDegrees(longitude, latitude, height float64) Cartographic {
	return Cartographic{
		Longitude: s1.Angle(longitude) * s1.Degree,
		Latitude:  s1.Angle(latitude) * s1.Degree,
		Height:    height,
	}
}

// WithHeight returns a copy of c at the given height
func (c Cartographic) WithHeight(height float64) Cartographic {
	c.Height = height
	return c
}

// SameSurfacePosition reports whether c and other share longitude and latitude
func (c Cartographic) SameSurfacePosition(other Cartographic) bool {
	return c.Longitude == other.Longitude && c.Latitude == other.Latitude
}

func (c Cartographic) String() string {
	return fmt.Sprintf("(%.8f°, %.8f°, %.3f m)", c.Longitude.Degrees(), c.Latitude.Degrees(), c.Height)
}
