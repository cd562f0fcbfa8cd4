package memscene

import (
	"math"

	"github.com/PrincessGod/plc/pkg/geodesy"
	"github.com/PrincessGod/plc/pkg/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	nearPlane = 1.0
	farPlane  = 1e9
)

// Camera is a perspective camera in Earth-fixed coordinates
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
	FOV      float64 // Vertical field of view in radians
	Width    int
	Height   int
}

// NewCamera creates a camera above the given geodetic position looking
// straight down, with north towards the top of the canvas.
func NewCamera(e *geodesy.Ellipsoid, lon, lat, altitude float64, width, height int) *Camera {
	ground := geodesy.FromDegrees(lon, lat, 0)
	frame := e.LocalFrame(ground)
	return &Camera{
		Position: vec(e.ToCartesian(ground.WithHeight(altitude))),
		Target:   vec(frame.Origin),
		Up:       vec(frame.North),
		FOV:      math.Pi / 3,
		Width:    width,
		Height:   height,
	}
}

func (c *Camera) matrices() (view, projection mgl64.Mat4) {
	aspect := float64(c.Width) / float64(c.Height)
	view = mgl64.LookAtV(c.Position, c.Target, c.Up)
	projection = mgl64.Perspective(c.FOV, aspect, nearPlane, farPlane)
	return view, projection
}

// Project converts a world position to canvas coordinates (origin top left).
// The second result is false for points behind the camera.
func (c *Camera) Project(point geometry.Vector3) (x, y float64, ok bool) {
	forward := c.Target.Sub(c.Position).Normalize()
	if vec(point).Sub(c.Position).Dot(forward) <= 0 {
		return 0, 0, false
	}

	view, projection := c.matrices()
	win := mgl64.Project(vec(point), view, projection, 0, 0, c.Width, c.Height)
	return win.X(), float64(c.Height) - win.Y(), true
}

// Unproject converts canvas coordinates to a ray starting at the camera
func (c *Camera) Unproject(x, y float64) (origin, direction mgl64.Vec3, err error) {
	view, projection := c.matrices()
	near, err := mgl64.UnProject(mgl64.Vec3{x, float64(c.Height) - y, 0}, view, projection, 0, 0, c.Width, c.Height)
	if err != nil {
		return origin, direction, err
	}
	return c.Position, near.Sub(c.Position).Normalize(), nil
}

// intersectEllipsoid returns the nearest intersection in front of origin of
// the ray with an ellipsoid of the given radii centred at the origin.
func intersectEllipsoid(origin, direction, radii mgl64.Vec3) (mgl64.Vec3, bool) {
	inv := mgl64.Vec3{1 / radii.X(), 1 / radii.Y(), 1 / radii.Z()}
	o := mul(origin, inv)
	d := mul(direction, inv)

	a := d.Dot(d)
	b := 2 * o.Dot(d)
	cc := o.Dot(o) - 1
	disc := b*b - 4*a*cc
	if a == 0 || disc < 0 {
		return mgl64.Vec3{}, false
	}

	sq := math.Sqrt(disc)
	t := (-b - sq) / (2 * a)
	if t < 0 {
		t = (-b + sq) / (2 * a)
	}
	if t < 0 {
		return mgl64.Vec3{}, false
	}
	return origin.Add(direction.Mul(t)), true
}

func mul(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}

func vec(v geometry.Vector3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromVec(v mgl64.Vec3) geometry.Vector3 {
	return geometry.NewVector3(v.X(), v.Y(), v.Z())
}
