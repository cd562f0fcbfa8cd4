// Package measurement implements the interactive measure tools: state
// machines that accumulate picked points, keep a live preview up to date and
// commit painted results, plus the manager that keeps one of them active.
package measurement

import (
	"fmt"

	"github.com/PrincessGod/plc/pkg/analysis"
	"github.com/PrincessGod/plc/pkg/geodesy"
	"github.com/PrincessGod/plc/pkg/geometry"
	"github.com/PrincessGod/plc/pkg/pick"
	"github.com/PrincessGod/plc/pkg/scene"
	"go.uber.org/zap"
)

// Tool is a measure tool driven by pointer events
type Tool interface {
	Mode() Mode
	// StartDraw subscribes to pointer events; a live subscription is
	// replaced by a new one.
	StartDraw()
	// EndDraw unsubscribes and abandons an unfinished measurement. It is
	// safe to call when not drawing.
	EndDraw()
	// ClearHistory removes every painted result; it fails while active
	ClearHistory() error
	IsActive() bool
	Status() Status
	Results() []Result
	Painted() *PaintedEvent
}

// Status is the in-progress state of a measurement
type Status struct {
	IsStarted bool
	// Points are the committed vertices
	Points []geodesy.Point
	// Current is the live cursor position, never part of Points
	Current geodesy.Point
	// Surface and CurrentSurface are the ground projections of Points and
	// Current; only the polygon tool keeps them.
	Surface        []geodesy.Point
	CurrentSurface geodesy.Point
	// Length is the live length of the open segment
	Length float64
	// Total is the accumulated length of closed segments
	Total float64
	// Area is the live area including the cursor
	Area float64
}

func (s Status) clone() Status {
	s.Points = append([]geodesy.Point(nil), s.Points...)
	s.Surface = append([]geodesy.Point(nil), s.Surface...)
	return s
}

// policy parameterizes the shared point accumulation
type policy struct {
	mode Mode
	// commitAt commits as soon as this many points are picked; 0 waits for
	// a right click.
	commitAt int
	// minPoints is the fewest points a commit accepts
	minPoints int
	// rightClickCancels abandons the measurement instead of finishing it
	rightClickCancels bool
}

// variant supplies the geometry of one kind of measurement
type variant interface {
	// started runs after the first point has been picked
	started(p geodesy.Point)
	// picked runs after a further point has been appended to Points
	picked(p geodesy.Point)
	// moved runs after Current changed
	moved()
	// commit paints the finished measurement
	commit() []Result
	// discard drops variant state; abandoned is false after a commit
	discard(abandoned bool)
}

// drawer is the state machine shared by every tool
type drawer struct {
	policy   policy
	variant  variant
	viewer   *scene.Viewer
	resolver *pick.Resolver
	calc     *analysis.Calculator
	logger   *zap.Logger

	status       Status
	subs         []scene.Subscription
	store        *Store
	painted      PaintedEvent
	previewLabel scene.LabelHandle
	preview      []scene.GeometryHandle
}

type common struct {
	viewer     *scene.Viewer
	calculator *analysis.Calculator
	logger     *zap.Logger
	labelClass string
}

func newDrawer(p policy, c common) (*drawer, error) {
	if !c.viewer.Complete() {
		return nil, fmt.Errorf("%s measure: viewer: %w", p.mode, ErrMissingCollaborator)
	}
	if c.calculator == nil {
		c.calculator = analysis.Default
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}

	d := &drawer{
		policy: p,
		viewer: c.viewer,
		calc:   c.calculator,
		logger: c.logger.With(zap.Stringer("tool", p.mode)),
		store:  NewStore(c.viewer.Geometries, c.viewer.Labels),
	}
	d.resolver = pick.NewResolver(c.viewer.Scene, d.logger).WithEllipsoid(c.calculator.Ellipsoid)
	d.resolver.IgnoreFeature = d.ownsFeature
	d.previewLabel = c.viewer.Labels.AddLabel(geometry.Vector3{}, "", scene.LabelOptions{
		ClassName: c.labelClass,
		Hidden:    true,
		VOffset:   -10,
	})
	return d, nil
}

func (d *drawer) Mode() Mode {
	return d.policy.mode
}

func (d *drawer) StartDraw() {
	d.unsubscribe()
	events := d.viewer.Events
	d.subs = []scene.Subscription{
		events.Subscribe(scene.LeftClick, d.onLeftClick),
		events.Subscribe(scene.RightClick, d.onRightClick),
		events.Subscribe(scene.MouseMove, d.onMove),
	}
	d.logger.Debug("draw started")
}

func (d *drawer) EndDraw() {
	d.unsubscribe()
	if d.status.IsStarted {
		d.logger.Debug("measurement abandoned", zap.Int("points", len(d.status.Points)))
		d.reset(true)
	}
}

func (d *drawer) ClearHistory() error {
	if d.IsActive() {
		return fmt.Errorf("%s measure: %w", d.policy.mode, ErrToolActive)
	}
	d.logger.Debug("history cleared", zap.Int("results", d.store.Len()))
	d.store.Clear()
	return nil
}

func (d *drawer) IsActive() bool {
	return len(d.subs) > 0
}

func (d *drawer) Status() Status {
	return d.status.clone()
}

func (d *drawer) Results() []Result {
	return d.store.Results()
}

func (d *drawer) Painted() *PaintedEvent {
	return &d.painted
}

func (d *drawer) unsubscribe() {
	for _, s := range d.subs {
		s.Dispose()
	}
	d.subs = nil
}

func (d *drawer) onLeftClick(ev scene.Event) {
	p, ok := d.resolver.Resolve(ev.Position)
	if !ok {
		return
	}

	if !d.status.IsStarted {
		d.status = Status{IsStarted: true, Points: []geodesy.Point{p}, Current: p}
		d.variant.started(p)
		return
	}

	d.status.Points = append(d.status.Points, p)
	d.status.Current = p
	d.variant.picked(p)
	if d.policy.commitAt > 0 && len(d.status.Points) >= d.policy.commitAt {
		d.finish()
	}
}

func (d *drawer) onRightClick(scene.Event) {
	if !d.status.IsStarted {
		return
	}
	if d.policy.rightClickCancels {
		d.logger.Debug("measurement cancelled")
		d.reset(true)
		return
	}
	d.finish()
}

func (d *drawer) onMove(ev scene.Event) {
	if !d.status.IsStarted {
		return
	}
	p, ok := d.resolver.Resolve(ev.Position)
	if !ok {
		return
	}
	d.status.Current = p
	d.variant.moved()
}

func (d *drawer) finish() {
	if len(d.status.Points) < d.policy.minPoints {
		d.logger.Debug("measurement discarded", zap.Int("points", len(d.status.Points)))
		d.reset(true)
		return
	}

	var painted []Result
	for _, r := range d.variant.commit() {
		d.store.Add(r)
		painted = append(painted, r)
		if r.Surface != nil {
			painted = append(painted, *r.Surface)
		}
	}
	d.reset(false)
	for _, r := range painted {
		d.logger.Debug("result painted", zap.Stringer("kind", r.Kind), zap.String("text", r.Text))
	}
	d.painted.raise(Painted{Mode: d.policy.mode, Results: painted})
}

func (d *drawer) reset(abandoned bool) {
	d.variant.discard(abandoned)
	for _, h := range d.preview {
		d.viewer.Geometries.RemoveGeometry(h)
	}
	d.preview = nil
	hide := false
	d.viewer.Labels.UpdateLabel(d.previewLabel, scene.LabelUpdate{Show: &hide})
	d.status = Status{}
}

func (d *drawer) cameraHeight() float64 {
	return d.viewer.Scene.CameraHeight()
}

func (d *drawer) distance(a, b geodesy.Point) float64 {
	return d.calc.Distance(a, b, d.cameraHeight())
}

func (d *drawer) addPreviewLine(points []geodesy.Point, style scene.LineStyle) scene.GeometryHandle {
	h := d.viewer.Geometries.AddLine(geodesy.Cartesians(points), style)
	d.preview = append(d.preview, h)
	return h
}

func (d *drawer) addPreviewPolygon(points []geodesy.Point, style scene.PolygonStyle) scene.GeometryHandle {
	h := d.viewer.Geometries.AddPolygon(geodesy.Cartesians(points), style)
	d.preview = append(d.preview, h)
	return h
}

func (d *drawer) updateGeometry(h scene.GeometryHandle, points []geodesy.Point) {
	d.viewer.Geometries.UpdateGeometry(h, geodesy.Cartesians(points))
}

func (d *drawer) showPreviewLabel(at geodesy.Point, text string) {
	position := at.Cartesian()
	show := true
	d.viewer.Labels.UpdateLabel(d.previewLabel, scene.LabelUpdate{Text: &text, Position: &position, Show: &show})
}

func (d *drawer) addLine(points []geodesy.Point, style scene.LineStyle) scene.GeometryHandle {
	return d.viewer.Geometries.AddLine(geodesy.Cartesians(points), style)
}

func (d *drawer) addLabel(at geodesy.Point, text string, opts scene.LabelOptions) scene.LabelHandle {
	return d.viewer.Labels.AddLabel(at.Cartesian(), text, opts)
}

func (d *drawer) ownsFeature(f scene.Feature) bool {
	for _, h := range d.preview {
		if f.Geometry == h {
			return true
		}
	}
	return false
}

// withCurrent returns points followed by the live cursor
func withCurrent(points []geodesy.Point, current geodesy.Point) []geodesy.Point {
	out := make([]geodesy.Point, 0, len(points)+1)
	return append(append(out, points...), current)
}
