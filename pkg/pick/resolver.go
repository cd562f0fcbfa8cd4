// Package pick turns screen positions into world positions.
package pick

import (
	"github.com/PrincessGod/plc/pkg/geodesy"
	"github.com/PrincessGod/plc/pkg/scene"
	"go.uber.org/zap"
)

// Resolver resolves screen positions against a scene. Depth-based picking is
// preferred when a feature is under the cursor; otherwise the camera ray is
// intersected with the globe.
type Resolver struct {
	scene     scene.Querier
	ellipsoid *geodesy.Ellipsoid
	logger    *zap.Logger

	// IgnoreFeature, when set, excludes features from the depth path; the
	// measurement tools use it to skip their own preview geometry.
	IgnoreFeature func(scene.Feature) bool
}

// NewResolver creates a resolver for q on the WGS84 ellipsoid
func NewResolver(q scene.Querier, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{scene: q, ellipsoid: geodesy.WGS84, logger: logger}
}

// WithEllipsoid returns the resolver using e for geodetic conversion
func (r *Resolver) WithEllipsoid(e *geodesy.Ellipsoid) *Resolver {
	r.ellipsoid = e
	return r
}

// Resolve returns the world position under pos. It reports false outside the
// 3D projection mode and when neither depth picking nor the globe ray yields
// a point.
func (r *Resolver) Resolve(pos scene.ScreenPosition) (geodesy.Point, bool) {
	if r.scene.Mode() != scene.Mode3D {
		r.logger.Debug("pick skipped outside 3d mode", zap.Stringer("mode", r.scene.Mode()))
		return geodesy.Point{}, false
	}

	if feature, hit := r.scene.PickFeature(pos); hit && r.scene.PickPositionSupported() {
		if r.IgnoreFeature == nil || !r.IgnoreFeature(feature) {
			if v, ok := r.scene.UnprojectWithDepth(pos); ok {
				if p, ok := r.ellipsoid.Point(v); ok && p.Height() >= 0 {
					return p, true
				}
				r.logger.Debug("depth pick below ellipsoid, casting ray", zap.String("feature", feature.ID))
			}
		}
	}

	v, ok := r.scene.CastRayToGlobe(pos)
	if !ok {
		r.logger.Debug("pick missed globe", zap.Float64("x", pos.X), zap.Float64("y", pos.Y))
		return geodesy.Point{}, false
	}
	return r.ellipsoid.Point(v)
}
