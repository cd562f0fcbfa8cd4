package measurement

import (
	"github.com/PrincessGod/plc/pkg/analysis"
	"github.com/PrincessGod/plc/pkg/geodesy"
	"github.com/PrincessGod/plc/pkg/scene"
	"go.uber.org/zap"
)

// PolylineOptions configures a PolylineMeasure
type PolylineOptions struct {
	Viewer     *scene.Viewer
	Calculator *analysis.Calculator
	Logger     *zap.Logger

	// ShowFragLength labels every closed segment with its length
	ShowFragLength bool
	Width          float64
	DrawingColor   scene.Color
	PaintedColor   scene.Color

	DrawingLabelClassName string
	MeasureLabelClassName string
	SegmentLabelClassName string
}

// DefaultPolylineOptions returns the default polyline options for viewer
func DefaultPolylineOptions(viewer *scene.Viewer) PolylineOptions {
	return PolylineOptions{
		Viewer:                viewer,
		Width:                 5,
		DrawingColor:          scene.HotPink,
		PaintedColor:          scene.MediumTurquoise,
		DrawingLabelClassName: "plc-line-mesaure-drawing-label",
		MeasureLabelClassName: "plc-line-measure-label",
		SegmentLabelClassName: "plc-polyline-measure-middle-label",
	}
}

func (o PolylineOptions) withDefaults() PolylineOptions {
	def := DefaultPolylineOptions(o.Viewer)
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
	if o.SegmentLabelClassName == "" {
		o.SegmentLabelClassName = def.SegmentLabelClassName
	}
	return o
}

// PolylineMeasure measures the length of a chain of segments. Left clicks add
// points, a right click commits the chain when it has at least two points.
type PolylineMeasure struct {
	*drawer
	opts        PolylineOptions
	previewLine scene.GeometryHandle
	// fragments are the segment labels added since the chain was started
	fragments []scene.LabelHandle
}

// NewPolylineMeasure creates a polyline measure tool
func NewPolylineMeasure(opts PolylineOptions) (*PolylineMeasure, error) {
	opts = opts.withDefaults()
	d, err := newDrawer(
		policy{mode: ModePolyline, minPoints: 2},
		common{viewer: opts.Viewer, calculator: opts.Calculator, logger: opts.Logger, labelClass: opts.DrawingLabelClassName},
	)
	if err != nil {
		return nil, err
	}

	p := &PolylineMeasure{drawer: d, opts: opts}
	d.variant = p
	return p, nil
}

// SetShowFragLength toggles the per-segment length labels
func (p *PolylineMeasure) SetShowFragLength(show bool) {
	p.opts.ShowFragLength = show
}

// ShowFragLength reports whether segments are labeled
func (p *PolylineMeasure) ShowFragLength() bool {
	return p.opts.ShowFragLength
}

func (p *PolylineMeasure) started(pt geodesy.Point) {
	p.previewLine = p.addPreviewLine([]geodesy.Point{pt, pt}, scene.LineStyle{Width: p.opts.Width, Color: p.opts.DrawingColor})
	p.showPreviewLabel(pt, analysis.FormatLength(0))
}

func (p *PolylineMeasure) picked(pt geodesy.Point) {
	prev := p.status.Points[len(p.status.Points)-2]
	segment := p.distance(prev, pt)
	p.status.Total += segment
	p.status.Length = 0

	if p.opts.ShowFragLength {
		label := p.addLabel(p.calc.Midpoint(prev, pt), analysis.FormatLength(segment), scene.LabelOptions{ClassName: p.opts.SegmentLabelClassName})
		p.fragments = append(p.fragments, label)
	}
	p.updateGeometry(p.previewLine, p.status.Points)
}

func (p *PolylineMeasure) moved() {
	last := p.status.Points[len(p.status.Points)-1]
	p.status.Length = p.distance(last, p.status.Current)
	p.updateGeometry(p.previewLine, withCurrent(p.status.Points, p.status.Current))
	p.showPreviewLabel(p.status.Current, analysis.FormatLength(p.status.Length))
}

func (p *PolylineMeasure) commit() []Result {
	points := append([]geodesy.Point(nil), p.status.Points...)
	text := analysis.FormatLength(p.status.Total)
	r := Result{
		Kind:      KindPolyline,
		Geometry:  p.addLine(points, scene.LineStyle{Width: p.opts.Width, Color: p.opts.PaintedColor}),
		Label:     p.addLabel(points[len(points)-1], text, scene.LabelOptions{ClassName: p.opts.MeasureLabelClassName}),
		Text:      text,
		Value:     p.status.Total,
		Points:    points,
		Fragments: p.fragments,
	}
	p.fragments = nil
	return []Result{r}
}

func (p *PolylineMeasure) discard(abandoned bool) {
	if abandoned {
		for _, l := range p.fragments {
			p.viewer.Labels.RemoveLabel(l)
		}
	}
	p.fragments = nil
	p.previewLine = ""
}
