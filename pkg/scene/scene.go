// Package scene declares the narrow surface through which the measurement
// tools talk to the host 3D globe engine: scene queries for picking,
// factories for renderable geometry and labels, and pointer-event
// subscriptions. The engine itself lives outside this module.
package scene

import "github.com/PrincessGod/plc/pkg/geometry"

// ScreenPosition is a canvas coordinate in pixels
type ScreenPosition struct {
	X, Y float64
}

// Mode is the projection the host view is rendering in
type Mode int

const (
	Mode3D Mode = iota
	Mode2D
	ModeColumbusView
)

func (m Mode) String() string {
	switch m {
	case Mode3D:
		return "3d"
	case Mode2D:
		return "2d"
	case ModeColumbusView:
		return "columbus"
	default:
		return "unknown"
	}
}

// Feature is a rendered object hit by a pick
type Feature struct {
	ID string
	// Geometry is set when the feature is geometry created through a
	// GeometryFactory.
	Geometry GeometryHandle
}

// Querier answers picking and camera questions about the rendered scene
type Querier interface {
	// PickFeature returns the topmost rendered feature at pos
	PickFeature(pos ScreenPosition) (Feature, bool)
	// PickPositionSupported reports whether UnprojectWithDepth can be used
	PickPositionSupported() bool
	// UnprojectWithDepth reconstructs the world position at pos from the depth buffer
	UnprojectWithDepth(pos ScreenPosition) (geometry.Vector3, bool)
	// CastRayToGlobe intersects the camera ray through pos with the globe
	CastRayToGlobe(pos ScreenPosition) (geometry.Vector3, bool)
	Mode() Mode
	// CameraHeight returns the camera height above the ellipsoid in meters
	CameraHeight() float64
}

// Viewer bundles the collaborators a measurement tool needs
type Viewer struct {
	Scene      Querier
	Geometries GeometryFactory
	Labels     LabelFactory
	Events     EventSource
}

// Complete reports whether every collaborator is present
func (v *Viewer) Complete() bool {
	return v != nil && v.Scene != nil && v.Geometries != nil && v.Labels != nil && v.Events != nil
}
