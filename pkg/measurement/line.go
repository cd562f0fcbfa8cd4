package measurement

import (
	"math"

	"github.com/PrincessGod/plc/pkg/analysis"
	"github.com/PrincessGod/plc/pkg/geodesy"
	"github.com/PrincessGod/plc/pkg/scene"
	"go.uber.org/zap"
)

// LineOptions configures a LineMeasure
type LineOptions struct {
	Viewer     *scene.Viewer
	Calculator *analysis.Calculator
	Logger     *zap.Logger

	// VHMeasure additionally paints the horizontal and vertical legs
	VHMeasure    bool
	Width        float64
	DrawingColor scene.Color
	PaintedColor scene.Color

	DrawingLabelClassName string
	MeasureLabelClassName string
}

// DefaultLineOptions returns the default line options for viewer
func DefaultLineOptions(viewer *scene.Viewer) LineOptions {
	return LineOptions{
		Viewer:                viewer,
		Width:                 5,
		DrawingColor:          scene.HotPink,
		PaintedColor:          scene.MediumTurquoise,
		DrawingLabelClassName: "plc-line-mesaure-drawing-label",
		MeasureLabelClassName: "plc-line-measure-label",
	}
}

func (o LineOptions) withDefaults() LineOptions {
	def := DefaultLineOptions(o.Viewer)
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.DrawingColor == (scene.Color{}) {
		o.DrawingColor = def.DrawingColor
	}
	if o.PaintedColor == (scene.Color{}) {
		o.PaintedColor = def.PaintedColor
	}
	if o.DrawingLabelClassName == "" {
		o.DrawingLabelClassName = def.DrawingLabelClassName
	}
	if o.MeasureLabelClassName == "" {
		o.MeasureLabelClassName = def.MeasureLabelClassName
	}
	return o
}

// LineMeasure measures the distance between two picked points. The second
// click commits; a right click cancels.
type LineMeasure struct {
	*drawer
	opts        LineOptions
	previewLine scene.GeometryHandle
}

// NewLineMeasure creates a line measure tool
func NewLineMeasure(opts LineOptions) (*LineMeasure, error) {
	opts = opts.withDefaults()
	d, err := newDrawer(
		policy{mode: ModeLine, commitAt: 2, minPoints: 2, rightClickCancels: true},
		common{viewer: opts.Viewer, calculator: opts.Calculator, logger: opts.Logger, labelClass: opts.DrawingLabelClassName},
	)
	if err != nil {
		return nil, err
	}

	l := &LineMeasure{drawer: d, opts: opts}
	d.variant = l
	return l, nil
}

// SetVHMeasure toggles painting of the horizontal and vertical legs
func (l *LineMeasure) SetVHMeasure(enabled bool) {
	l.opts.VHMeasure = enabled
}

// VHMeasure reports whether the horizontal and vertical legs are painted
func (l *LineMeasure) VHMeasure() bool {
	return l.opts.VHMeasure
}

func (l *LineMeasure) started(p geodesy.Point) {
	l.previewLine = l.addPreviewLine([]geodesy.Point{p, p}, scene.LineStyle{Width: l.opts.Width, Color: l.opts.DrawingColor})
	l.showPreviewLabel(p, analysis.FormatLength(0))
}

func (l *LineMeasure) picked(geodesy.Point) {
	l.status.Length = l.distance(l.status.Points[0], l.status.Points[1])
}

func (l *LineMeasure) moved() {
	start, end := l.status.Points[0], l.status.Current
	l.status.Length = l.distance(start, end)
	l.updateGeometry(l.previewLine, []geodesy.Point{start, end})
	l.showPreviewLabel(end, analysis.FormatLength(l.status.Length))
}

func (l *LineMeasure) commit() []Result {
	start, end := l.status.Points[0], l.status.Points[1]
	results := []Result{l.paintSegment(KindLine, start, end, l.distance(start, end))}
	if !l.opts.VHMeasure {
		return results
	}

	lower, higher := start, end
	if lower.Height() > higher.Height() {
		lower, higher = higher, lower
	}
	// The legs meet below the higher point, at the height of the lower one.
	corner := l.calc.Ellipsoid.WithHeight(higher, lower.Height())
	if !lower.Cartographic().SameSurfacePosition(higher.Cartographic()) {
		results = append(results, l.paintSegment(KindHorizontal, lower, corner, l.distance(lower, corner)))
	}
	if dh := math.Abs(higher.Height() - lower.Height()); dh > 0 {
		results = append(results, l.paintSegment(KindVertical, corner, higher, dh))
	}
	return results
}

func (l *LineMeasure) paintSegment(kind ResultKind, a, b geodesy.Point, length float64) Result {
	text := analysis.FormatLength(length)
	return Result{
		Kind:     kind,
		Geometry: l.addLine([]geodesy.Point{a, b}, scene.LineStyle{Width: l.opts.Width, Color: l.opts.PaintedColor}),
		Label:    l.addLabel(l.calc.Midpoint(a, b), text, scene.LabelOptions{ClassName: l.opts.MeasureLabelClassName}),
		Text:     text,
		Value:    length,
		Points:   []geodesy.Point{a, b},
	}
}

func (l *LineMeasure) discard(bool) {
	l.previewLine = ""
}
