// Package memscene is an in-memory host for the measurement tools. It keeps
// geometry and labels in registries, answers picks from scripted pins and a
// globe camera, and dispatches pointer events synchronously.
package memscene

import (
	"github.com/PrincessGod/plc/pkg/geodesy"
	"github.com/PrincessGod/plc/pkg/geometry"
	"github.com/PrincessGod/plc/pkg/scene"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Pin scripts what a pick at one screen position sees
type Pin struct {
	// Feature is reported by PickFeature when set
	Feature *scene.Feature
	// TopGeometry makes PickFeature report the most recently added live
	// geometry, if any.
	TopGeometry bool
	// Depth is returned by UnprojectWithDepth
	Depth *geometry.Vector3
	// Ground overrides the camera ray intersection
	Ground *geometry.Vector3
	// Miss makes the camera ray miss the globe
	Miss bool
}

// Scene implements every collaborator interface in package scene
type Scene struct {
	ellipsoid      *geodesy.Ellipsoid
	camera         *Camera
	mode           scene.Mode
	depthSupported bool
	pins           map[scene.ScreenPosition]Pin
	logger         *zap.Logger

	*Registry
	*Dispatcher
}

// Options configures a Scene
type Options struct {
	Ellipsoid *geodesy.Ellipsoid
	Camera    *Camera
	// DepthUnsupported disables UnprojectWithDepth
	DepthUnsupported bool
	Logger           *zap.Logger
}

// New creates an empty scene in 3D mode. Without a camera, a 1000x800 camera
// 1000 m above (0, 0) is used.
func New(opts Options) *Scene {
	if opts.Ellipsoid == nil {
		opts.Ellipsoid = geodesy.WGS84
	}
	if opts.Camera == nil {
		opts.Camera = NewCamera(opts.Ellipsoid, 0, 0, 1000, 1000, 800)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Scene{
		ellipsoid:      opts.Ellipsoid,
		camera:         opts.Camera,
		mode:           scene.Mode3D,
		depthSupported: !opts.DepthUnsupported,
		pins:           make(map[scene.ScreenPosition]Pin),
		logger:         opts.Logger,
		Registry:       NewRegistry(opts.Logger),
		Dispatcher:     NewDispatcher(opts.Logger),
	}
}

// Viewer bundles the scene as every collaborator
func (s *Scene) Viewer() *scene.Viewer {
	return &scene.Viewer{Scene: s, Geometries: s, Labels: s, Events: s}
}

// Camera returns the scene camera
func (s *Scene) Camera() *Camera {
	return s.camera
}

// SetCamera replaces the scene camera
func (s *Scene) SetCamera(c *Camera) {
	s.camera = c
}

// SetMode switches the projection mode
func (s *Scene) SetMode(mode scene.Mode) {
	s.mode = mode
}

// Pin scripts the pick result at pos
func (s *Scene) Pin(pos scene.ScreenPosition, pin Pin) {
	s.pins[pos] = pin
}

// PinFeature places a feature at pos whose depth-picked position is the
// given geodetic position.
func (s *Scene) PinFeature(pos scene.ScreenPosition, c geodesy.Cartographic) scene.Feature {
	v := s.ellipsoid.ToCartesian(c)
	f := scene.Feature{ID: uuid.NewString()}
	s.pins[pos] = Pin{Feature: &f, Depth: &v}
	return f
}

// PinGround makes the globe ray at pos hit the given geodetic position
func (s *Scene) PinGround(pos scene.ScreenPosition, c geodesy.Cartographic) {
	v := s.ellipsoid.ToCartesian(c)
	s.pins[pos] = Pin{Ground: &v}
}

// ScreenPosition projects a geodetic position onto the canvas
func (s *Scene) ScreenPosition(c geodesy.Cartographic) (scene.ScreenPosition, bool) {
	x, y, ok := s.camera.Project(s.ellipsoid.ToCartesian(c))
	return scene.ScreenPosition{X: x, Y: y}, ok
}

func (s *Scene) PickFeature(pos scene.ScreenPosition) (scene.Feature, bool) {
	pin, ok := s.pins[pos]
	if !ok {
		return scene.Feature{}, false
	}
	if pin.TopGeometry {
		if h, ok := s.Registry.top(); ok {
			return scene.Feature{ID: string(h), Geometry: h}, true
		}
	}
	if pin.Feature != nil {
		return *pin.Feature, true
	}
	return scene.Feature{}, false
}

func (s *Scene) PickPositionSupported() bool {
	return s.depthSupported
}

func (s *Scene) UnprojectWithDepth(pos scene.ScreenPosition) (geometry.Vector3, bool) {
	if pin, ok := s.pins[pos]; ok && pin.Depth != nil {
		return *pin.Depth, true
	}
	return geometry.Vector3{}, false
}

func (s *Scene) CastRayToGlobe(pos scene.ScreenPosition) (geometry.Vector3, bool) {
	if pin, ok := s.pins[pos]; ok {
		if pin.Miss {
			return geometry.Vector3{}, false
		}
		if pin.Ground != nil {
			return *pin.Ground, true
		}
	}

	origin, direction, err := s.camera.Unproject(pos.X, pos.Y)
	if err != nil {
		s.logger.Debug("unproject failed", zap.Error(err))
		return geometry.Vector3{}, false
	}
	hit, ok := intersectEllipsoid(origin, direction, vec(s.ellipsoid.Radii()))
	if !ok {
		return geometry.Vector3{}, false
	}
	return fromVec(hit), true
}

func (s *Scene) Mode() scene.Mode {
	return s.mode
}

func (s *Scene) CameraHeight() float64 {
	c, ok := s.ellipsoid.ToCartographic(fromVec(s.camera.Position))
	if !ok {
		return 0
	}
	return c.Height
}
