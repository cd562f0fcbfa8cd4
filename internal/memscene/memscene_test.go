package memscene

import (
	"testing"

	"github.com/PrincessGod/plc/pkg/geodesy"
	"github.com/PrincessGod/plc/pkg/geometry"
	"github.com/PrincessGod/plc/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraCenterRayHitsNadir(t *testing.T) {
	s := New(Options{Camera: NewCamera(geodesy.WGS84, 116.39, 39.9, 5000, 800, 600)})
	assert.InDelta(t, 5000, s.CameraHeight(), 1e-3)

	v, ok := s.CastRayToGlobe(scene.ScreenPosition{X: 400, Y: 300})
	require.True(t, ok)
	c, ok := geodesy.WGS84.ToCartographic(v)
	require.True(t, ok)
	assert.InDelta(t, 116.39, c.Longitude.Degrees(), 1e-6)
	assert.InDelta(t, 39.9, c.Latitude.Degrees(), 1e-6)
	assert.InDelta(t, 0, c.Height, 1e-3)
}

func TestCameraProjectRoundTrip(t *testing.T) {
	s := New(Options{Camera: NewCamera(geodesy.WGS84, 10, 20, 2000, 1000, 800)})
	target := geodesy.FromDegrees(10.002, 20.001, 0)

	pos, ok := s.ScreenPosition(target)
	require.True(t, ok)
	assert.Greater(t, pos.X, 500.0, "east is right")
	assert.Less(t, pos.Y, 400.0, "north is up")

	v, ok := s.CastRayToGlobe(pos)
	require.True(t, ok)
	c, _ := geodesy.WGS84.ToCartographic(v)
	assert.InDelta(t, 10.002, c.Longitude.Degrees(), 1e-7)
	assert.InDelta(t, 20.001, c.Latitude.Degrees(), 1e-7)
}

func TestCameraRayMissesGlobeFromFarAway(t *testing.T) {
	s := New(Options{Camera: NewCamera(geodesy.WGS84, 0, 0, 1e8, 1000, 800)})
	_, ok := s.CastRayToGlobe(scene.ScreenPosition{X: 0, Y: 0})
	assert.False(t, ok)

	_, ok = s.CastRayToGlobe(scene.ScreenPosition{X: 500, Y: 400})
	assert.True(t, ok)
}

func TestPins(t *testing.T) {
	s := New(Options{})
	pos := scene.ScreenPosition{X: 1, Y: 2}

	f := s.PinFeature(pos, geodesy.FromDegrees(1, 2, 30))
	got, ok := s.PickFeature(pos)
	require.True(t, ok)
	assert.Equal(t, f, got)
	depth, ok := s.UnprojectWithDepth(pos)
	require.True(t, ok)
	assert.Equal(t, geodesy.WGS84.ToCartesian(geodesy.FromDegrees(1, 2, 30)), depth)

	s.Pin(pos, Pin{Miss: true})
	_, ok = s.CastRayToGlobe(pos)
	assert.False(t, ok)

	s.Pin(pos, Pin{TopGeometry: true})
	_, ok = s.PickFeature(pos)
	assert.False(t, ok, "no geometry yet")
	h := s.AddLine([]geometry.Vector3{{X: 1}}, scene.LineStyle{})
	got, ok = s.PickFeature(pos)
	require.True(t, ok)
	assert.Equal(t, h, got.Geometry)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(nil)
	line := r.AddLine([]geometry.Vector3{{X: 1}, {X: 2}}, scene.LineStyle{Width: 5})
	poly := r.AddPolygon([]geometry.Vector3{{X: 1}, {Y: 1}, {Z: 1}}, scene.PolygonStyle{})
	label := r.AddLabel(geometry.Vector3{}, "hello", scene.LabelOptions{Hidden: true})

	require.Len(t, r.Geometries(), 2)
	assert.Equal(t, KindLine, r.Geometries()[0].Kind)
	assert.Equal(t, KindPolygon, r.Geometries()[1].Kind)
	assert.Empty(t, r.VisibleLabels())

	text, show := "world", true
	r.UpdateLabel(label, scene.LabelUpdate{Text: &text, Show: &show})
	l, ok := r.Label(label)
	require.True(t, ok)
	assert.Equal(t, "world", l.Text)
	assert.Len(t, r.VisibleLabels(), 1)

	r.UpdateGeometry(line, []geometry.Vector3{{X: 3}})
	g, _ := r.Geometry(line)
	assert.Equal(t, []geometry.Vector3{{X: 3}}, g.Points)

	r.RemoveGeometry(poly)
	r.RemoveGeometry(poly)
	r.RemoveLabel(label)
	assert.Len(t, r.Geometries(), 1)
	assert.Empty(t, r.Labels())
	assert.Equal(t, 1, r.UnknownRemovals())
}

func TestDispatcher(t *testing.T) {
	d := NewDispatcher(nil)
	var clicks, moves int
	click := d.Subscribe(scene.LeftClick, func(scene.Event) { clicks++ })
	d.Subscribe(scene.MouseMove, func(scene.Event) { moves++ })
	assert.Equal(t, 2, d.LiveSubscriptions())

	d.Click(0, 0)
	d.Move(1, 1)
	d.RightClick(0, 0)
	assert.Equal(t, 1, clicks)
	assert.Equal(t, 1, moves)

	click.Dispose()
	click.Dispose()
	d.Click(0, 0)
	assert.Equal(t, 1, clicks)
	assert.Equal(t, 1, d.LiveSubscriptions())
}

func TestDispatcherSkipsSubscriptionsDisposedDuringDispatch(t *testing.T) {
	d := NewDispatcher(nil)
	var second scene.Subscription
	calls := 0
	d.Subscribe(scene.LeftClick, func(scene.Event) { second.Dispose() })
	second = d.Subscribe(scene.LeftClick, func(scene.Event) { calls++ })

	d.Click(0, 0)
	assert.Equal(t, 0, calls)
}
