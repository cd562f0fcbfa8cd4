package measurement

import (
	"testing"

	"github.com/PrincessGod/plc/internal/memscene"
	"github.com/PrincessGod/plc/pkg/analysis"
	"github.com/PrincessGod/plc/pkg/geodesy"
	"github.com/PrincessGod/plc/pkg/geometry"
	"github.com/PrincessGod/plc/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScene(cameraHeight float64) *memscene.Scene {
	return memscene.New(memscene.Options{
		Camera: memscene.NewCamera(geodesy.WGS84, 116.39, 39.9, cameraHeight, 1000, 800),
	})
}

func at(lon, lat, h float64) geometry.Vector3 {
	return geodesy.WGS84.ToCartesian(geodesy.FromDegrees(lon, lat, h))
}

func point(t *testing.T, v geometry.Vector3) geodesy.Point {
	p, ok := geodesy.WGS84.Point(v)
	require.True(t, ok)
	return p
}

// ground pins a globe hit at a fresh screen position
func ground(s *memscene.Scene, x float64, v geometry.Vector3) scene.ScreenPosition {
	pos := scene.ScreenPosition{X: x, Y: 1}
	s.Pin(pos, memscene.Pin{Ground: &v})
	return pos
}

func click(s *memscene.Scene, pos scene.ScreenPosition) {
	s.Click(pos.X, pos.Y)
}

func move(s *memscene.Scene, pos scene.ScreenPosition) {
	s.Move(pos.X, pos.Y)
}

func rightClick(s *memscene.Scene) {
	s.RightClick(0, 0)
}

func labelText(t *testing.T, s *memscene.Scene, h scene.LabelHandle) string {
	l, ok := s.Label(h)
	require.True(t, ok, "label %s is live", h)
	return l.Text
}

func TestNewToolsRequireViewer(t *testing.T) {
	_, err := NewLineMeasure(LineOptions{})
	assert.ErrorIs(t, err, ErrMissingCollaborator)

	v := newScene(1000).Viewer()
	v.Events = nil
	_, err = NewPolygonMeasure(PolygonOptions{Viewer: v})
	assert.ErrorIs(t, err, ErrMissingCollaborator)
}

func TestLineMeasureCommitsOnSecondClick(t *testing.T) {
	s := newScene(1000)
	line, err := NewLineMeasure(LineOptions{Viewer: s.Viewer()})
	require.NoError(t, err)

	a, b := at(116.39, 39.9, 0), at(116.391, 39.9005, 20)
	p1, p2 := ground(s, 1, a), ground(s, 2, b)

	var painted []Painted
	line.Painted().AddListener(func(p Painted) { painted = append(painted, p) })

	line.StartDraw()
	click(s, p1)
	status := line.Status()
	require.True(t, status.IsStarted)
	assert.Len(t, status.Points, 1)
	assert.Len(t, s.VisibleLabels(), 1, "preview label shown")

	move(s, p2)
	status = line.Status()
	assert.Len(t, status.Points, 1, "cursor is not committed")
	assert.True(t, status.Current.Equal(point(t, b)))

	click(s, p2)
	expected := analysis.DistanceBetween(point(t, a), point(t, b), s.CameraHeight())

	results := line.Results()
	require.Len(t, results, 1)
	assert.Equal(t, KindLine, results[0].Kind)
	assert.Equal(t, analysis.FormatLength(expected), results[0].Text)
	assert.Equal(t, results[0].Text, labelText(t, s, results[0].Label))
	assert.InDelta(t, expected, results[0].Value, 1e-9)

	l, _ := s.Label(results[0].Label)
	assert.Equal(t, analysis.Midpoint(point(t, a), point(t, b)).Cartesian(), l.Position)
	assert.Equal(t, "plc-line-measure-label", l.Options.ClassName)

	assert.False(t, line.Status().IsStarted)
	assert.Len(t, s.Geometries(), 1, "only the painted line remains")
	assert.Len(t, s.VisibleLabels(), 1, "preview label hidden")
	require.Len(t, painted, 1)
	assert.Equal(t, ModeLine, painted[0].Mode)
	assert.Equal(t, results, painted[0].Results)
	assert.True(t, line.IsActive(), "tool keeps drawing after a commit")
}

func TestLineMeasureEndDrawAbandons(t *testing.T) {
	s := newScene(1000)
	line, err := NewLineMeasure(LineOptions{Viewer: s.Viewer()})
	require.NoError(t, err)

	line.StartDraw()
	click(s, ground(s, 1, at(116.39, 39.9, 0)))
	line.EndDraw()

	assert.False(t, line.IsActive())
	assert.False(t, line.Status().IsStarted)
	assert.Empty(t, line.Results())
	assert.Empty(t, s.Geometries())
	assert.Empty(t, s.VisibleLabels())
	assert.Equal(t, 0, s.LiveSubscriptions())

	line.EndDraw()
	assert.False(t, line.IsActive())
}

func TestLineMeasureRightClickCancels(t *testing.T) {
	s := newScene(1000)
	line, err := NewLineMeasure(LineOptions{Viewer: s.Viewer()})
	require.NoError(t, err)

	p1 := ground(s, 1, at(116.39, 39.9, 0))
	p2 := ground(s, 2, at(116.4, 39.9, 0))

	line.StartDraw()
	click(s, p1)
	move(s, p2)
	rightClick(s)
	assert.False(t, line.Status().IsStarted)
	assert.Empty(t, s.Geometries())

	// the next click starts over
	click(s, p2)
	click(s, p1)
	assert.Len(t, line.Results(), 1)
	assert.True(t, line.Results()[0].Points[0].Equal(point(t, at(116.4, 39.9, 0))))
}

func TestLineMeasureIgnoresPickMisses(t *testing.T) {
	s := newScene(1000)
	line, err := NewLineMeasure(LineOptions{Viewer: s.Viewer()})
	require.NoError(t, err)

	miss := scene.ScreenPosition{X: 9, Y: 9}
	s.Pin(miss, memscene.Pin{Miss: true})

	line.StartDraw()
	click(s, miss)
	assert.False(t, line.Status().IsStarted)

	p1 := ground(s, 1, at(116.39, 39.9, 0))
	click(s, p1)
	move(s, miss)
	assert.True(t, line.Status().Current.Equal(point(t, at(116.39, 39.9, 0))))

	s.SetMode(scene.Mode2D)
	click(s, ground(s, 2, at(116.4, 39.9, 0)))
	assert.Empty(t, line.Results(), "no picks outside 3d mode")
}

func TestLineMeasureVerticalHorizontal(t *testing.T) {
	s := newScene(1000)
	line, err := NewLineMeasure(LineOptions{Viewer: s.Viewer()})
	require.NoError(t, err)
	line.SetVHMeasure(true)
	assert.True(t, line.VHMeasure())

	low, high := at(116.39, 39.9, 10), at(116.391, 39.9, 110)
	line.StartDraw()
	click(s, ground(s, 1, high))
	click(s, ground(s, 2, low))

	results := line.Results()
	require.Len(t, results, 3)
	assert.Equal(t, KindLine, results[0].Kind)
	assert.Equal(t, KindHorizontal, results[1].Kind)
	assert.Equal(t, KindVertical, results[2].Kind)

	corner := geodesy.WGS84.WithHeight(point(t, high), point(t, low).Height())
	assert.True(t, results[1].Points[0].Equal(point(t, low)))
	assert.True(t, results[1].Points[1].Equal(corner))
	assert.InDelta(t, analysis.DistanceBetween(point(t, low), corner, s.CameraHeight()), results[1].Value, 1e-9)
	assert.InDelta(t, 100, results[2].Value, 1e-6)
	assert.Equal(t, "100.00 m", results[2].Text)
	assert.Len(t, s.Geometries(), 3)
	assert.Len(t, s.VisibleLabels(), 3)
}

func TestLineMeasureSkipsOwnPreviewWhenPicking(t *testing.T) {
	s := newScene(1000)
	line, err := NewLineMeasure(LineOptions{Viewer: s.Viewer()})
	require.NoError(t, err)

	onPreview := scene.ScreenPosition{X: 5, Y: 5}
	depth, globe := at(116.391, 39.9, 500), at(116.391, 39.9, 0)
	s.Pin(onPreview, memscene.Pin{TopGeometry: true, Depth: &depth, Ground: &globe})

	line.StartDraw()
	click(s, ground(s, 1, at(116.39, 39.9, 0)))
	move(s, onPreview)
	assert.InDelta(t, 0, line.Status().Current.Height(), 1e-6)
}

func TestStartDrawReplacesSubscription(t *testing.T) {
	s := newScene(1000)
	line, err := NewLineMeasure(LineOptions{Viewer: s.Viewer()})
	require.NoError(t, err)

	line.StartDraw()
	line.StartDraw()
	assert.Equal(t, 3, s.LiveSubscriptions())

	p1 := ground(s, 1, at(116.39, 39.9, 0))
	click(s, p1)
	assert.Len(t, line.Status().Points, 1, "one callback per click")
}

func TestClearHistoryRejectedWhileActive(t *testing.T) {
	s := newScene(1000)
	line, err := NewLineMeasure(LineOptions{Viewer: s.Viewer()})
	require.NoError(t, err)

	line.StartDraw()
	click(s, ground(s, 1, at(116.39, 39.9, 0)))
	click(s, ground(s, 2, at(116.4, 39.9, 0)))
	require.Len(t, line.Results(), 1)

	assert.ErrorIs(t, line.ClearHistory(), ErrToolActive)
	assert.Len(t, line.Results(), 1)

	line.EndDraw()
	require.NoError(t, line.ClearHistory())
	assert.Empty(t, line.Results())
	assert.Empty(t, s.Geometries())
	assert.Empty(t, s.VisibleLabels())
	assert.Equal(t, 0, s.UnknownRemovals())
}

func polylineFixture(t *testing.T, cameraHeight float64) (*memscene.Scene, *PolylineMeasure, []geometry.Vector3, []scene.ScreenPosition) {
	s := newScene(cameraHeight)
	tool, err := NewPolylineMeasure(PolylineOptions{Viewer: s.Viewer(), ShowFragLength: true})
	require.NoError(t, err)

	vs := []geometry.Vector3{at(116.39, 39.9, 0), at(116.392, 39.9, 5), at(116.392, 39.902, 0)}
	var ps []scene.ScreenPosition
	for i, v := range vs {
		ps = append(ps, ground(s, float64(i+1), v))
	}
	return s, tool, vs, ps
}

func TestPolylineMeasureCommitsChain(t *testing.T) {
	for _, cameraHeight := range []float64{1000, 1e6} {
		s, tool, vs, ps := polylineFixture(t, cameraHeight)
		h := s.CameraHeight()
		d12 := analysis.DistanceBetween(point(t, vs[0]), point(t, vs[1]), h)
		d23 := analysis.DistanceBetween(point(t, vs[1]), point(t, vs[2]), h)

		tool.StartDraw()
		click(s, ps[0])
		move(s, ps[1])
		assert.InDelta(t, d12, tool.Status().Length, 1e-9)
		click(s, ps[1])
		click(s, ps[2])
		assert.InDelta(t, d12+d23, tool.Status().Total, 1e-9)
		rightClick(s)

		results := tool.Results()
		require.Len(t, results, 1)
		r := results[0]
		assert.Equal(t, KindPolyline, r.Kind)
		assert.Equal(t, analysis.FormatLength(d12+d23), r.Text)
		assert.Len(t, r.Points, 3)

		g, ok := s.Geometry(r.Geometry)
		require.True(t, ok)
		assert.Equal(t, vs, g.Points)

		l, _ := s.Label(r.Label)
		assert.Equal(t, vs[2], l.Position, "total label sits on the last point")

		require.Len(t, r.Fragments, 2)
		assert.Equal(t, analysis.FormatLength(d12), labelText(t, s, r.Fragments[0]))
		assert.Equal(t, analysis.FormatLength(d23), labelText(t, s, r.Fragments[1]))

		// fragments survive a later EndDraw once committed
		tool.EndDraw()
		assert.Len(t, s.VisibleLabels(), 3)
		assert.Len(t, s.Geometries(), 1)
	}
}

func TestPolylineMeasureEndDrawRemovesOpenFragments(t *testing.T) {
	s, tool, _, ps := polylineFixture(t, 1000)

	tool.StartDraw()
	click(s, ps[0])
	click(s, ps[1])
	click(s, ps[2])
	assert.Len(t, s.VisibleLabels(), 3, "two fragments and the preview label")

	tool.EndDraw()
	assert.Empty(t, tool.Results())
	assert.Empty(t, s.VisibleLabels())
	assert.Empty(t, s.Geometries())
}

func TestPolylineMeasureDiscardsSinglePoint(t *testing.T) {
	s, tool, _, ps := polylineFixture(t, 1000)

	tool.StartDraw()
	click(s, ps[0])
	move(s, ps[1])
	rightClick(s)

	assert.Empty(t, tool.Results())
	assert.Empty(t, s.Geometries())
	assert.False(t, tool.Status().IsStarted)
}

func TestPolylineMeasureWithoutFragments(t *testing.T) {
	s, tool, _, ps := polylineFixture(t, 1000)
	tool.SetShowFragLength(false)
	assert.False(t, tool.ShowFragLength())

	tool.StartDraw()
	for _, p := range ps {
		click(s, p)
	}
	rightClick(s)

	require.Len(t, tool.Results(), 1)
	assert.Empty(t, tool.Results()[0].Fragments)
	assert.Len(t, s.VisibleLabels(), 1)
}

// square returns the corners of a side x side square in the local tangent
// plane, pinned at fresh screen positions.
func square(s *memscene.Scene, side float64) []scene.ScreenPosition {
	frame := geodesy.WGS84.LocalFrame(geodesy.FromDegrees(116.39, 39.9, 0))
	corners := [][2]float64{{0, 0}, {side, 0}, {side, side}, {0, side}}
	out := make([]scene.ScreenPosition, len(corners))
	for i, c := range corners {
		out[i] = ground(s, float64(i+1), frame.Offset(c[0], c[1], 0))
	}
	return out
}

func TestPolygonMeasureSquare(t *testing.T) {
	s := newScene(1000)
	tool, err := NewPolygonMeasure(PolygonOptions{Viewer: s.Viewer()})
	require.NoError(t, err)

	var painted []Painted
	tool.Painted().AddListener(func(p Painted) { painted = append(painted, p) })

	tool.StartDraw()
	corners := square(s, 100)
	for _, c := range corners {
		click(s, c)
	}
	status := tool.Status()
	assert.Len(t, status.Points, 4)
	assert.Len(t, status.Surface, 4)
	assert.InDelta(t, 10000, status.Area, 1e-3)
	assert.Len(t, s.Geometries(), 2, "preview polygon and outline")

	rightClick(s)
	results := tool.Results()
	require.Len(t, results, 1)
	assert.Equal(t, KindPolygon, results[0].Kind)
	assert.Equal(t, analysis.FormatArea(100*100), results[0].Text)
	assert.Nil(t, results[0].Surface)

	g, _ := s.Geometry(results[0].Geometry)
	assert.Equal(t, memscene.KindPolygon, g.Kind)
	assert.Equal(t, scene.HeightPerPosition, g.PolygonStyle.HeightMode)
	assert.Len(t, s.Geometries(), 1)

	l, _ := s.Label(results[0].Label)
	center, _ := analysis.PolygonCenter(results[0].Points)
	assert.Equal(t, center.Cartesian(), l.Position)
	assert.Equal(t, "plc-polygon-area-label", l.Options.ClassName)

	require.Len(t, painted, 1)
	assert.Len(t, painted[0].Results, 1)
}

func TestPolygonMeasureSurface(t *testing.T) {
	s := newScene(1000)
	tool, err := NewPolygonMeasure(PolygonOptions{Viewer: s.Viewer(), ShowSurface: true})
	require.NoError(t, err)

	var painted []Painted
	tool.Painted().AddListener(func(p Painted) { painted = append(painted, p) })

	frame := geodesy.WGS84.LocalFrame(geodesy.FromDegrees(116.39, 39.9, 0))
	tool.StartDraw()
	click(s, ground(s, 1, frame.Offset(0, 0, 50)))
	move(s, ground(s, 2, frame.Offset(50, 0, 50)))
	assert.Equal(t, 0.0, tool.Status().CurrentSurface.Height())
	assert.Len(t, s.Geometries(), 3, "surface, polygon and outline previews")
	click(s, ground(s, 3, frame.Offset(50, 0, 50)))
	click(s, ground(s, 4, frame.Offset(50, 50, 50)))
	rightClick(s)

	results := tool.Results()
	require.Len(t, results, 1)
	surface := results[0].Surface
	require.NotNil(t, surface)
	assert.Equal(t, KindSurface, surface.Kind)
	for _, p := range surface.Points {
		assert.Equal(t, 0.0, p.Height())
	}
	assert.InDelta(t, 1250, results[0].Value, 1)
	assert.InDelta(t, results[0].Value, surface.Value, 1)

	g, _ := s.Geometry(surface.Geometry)
	assert.Equal(t, scene.HeightClampToSurface, g.PolygonStyle.HeightMode)
	l, _ := s.Label(surface.Label)
	assert.Equal(t, "plc-polygon-surface-area-label", l.Options.ClassName)

	require.Len(t, painted, 1)
	require.Len(t, painted[0].Results, 2)
	assert.Equal(t, *surface, painted[0].Results[1])

	tool.EndDraw()
	require.NoError(t, tool.ClearHistory())
	assert.Empty(t, s.Geometries())
	assert.Empty(t, s.VisibleLabels())
}

func TestPolygonMeasureDiscardsTwoPoints(t *testing.T) {
	s := newScene(1000)
	tool, err := NewPolygonMeasure(PolygonOptions{Viewer: s.Viewer()})
	require.NoError(t, err)

	tool.StartDraw()
	corners := square(s, 10)
	click(s, corners[0])
	click(s, corners[1])
	rightClick(s)

	assert.Empty(t, tool.Results())
	assert.Empty(t, s.Geometries())
	assert.False(t, tool.Status().IsStarted)
}

func TestPaintedListenerRemoval(t *testing.T) {
	var e PaintedEvent
	calls := 0
	remove := e.AddListener(func(Painted) { calls++ })
	e.AddListener(func(Painted) {})
	assert.Equal(t, 2, e.NumListeners())

	e.raise(Painted{})
	remove()
	remove()
	e.raise(Painted{})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, e.NumListeners())
}

func TestStoreRemoveReleasesLinkedSurface(t *testing.T) {
	r := memscene.NewRegistry(nil)
	store := NewStore(r, r)

	surface := Result{
		Kind:     KindSurface,
		Geometry: r.AddPolygon(nil, scene.PolygonStyle{}),
		Label:    r.AddLabel(geometry.Vector3{}, "s", scene.LabelOptions{}),
	}
	primary := Result{
		Kind:     KindPolygon,
		Geometry: r.AddPolygon(nil, scene.PolygonStyle{}),
		Label:    r.AddLabel(geometry.Vector3{}, "p", scene.LabelOptions{}),
		Surface:  &surface,
	}
	store.Add(primary)

	assert.False(t, store.Remove(surface.Geometry), "surface is only reachable through its polygon")
	assert.True(t, store.Remove(primary.Geometry))
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, r.Geometries())
	assert.Empty(t, r.Labels())
}
