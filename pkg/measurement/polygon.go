package measurement

import (
	"fmt"

	"github.com/PrincessGod/plc/pkg/analysis"
	"github.com/PrincessGod/plc/pkg/geodesy"
	"github.com/PrincessGod/plc/pkg/scene"
	"go.uber.org/zap"
)

// PolygonOptions configures a PolygonMeasure
type PolygonOptions struct {
	Viewer     *scene.Viewer
	Calculator *analysis.Calculator
	Logger     *zap.Logger

	// ShowSurface also paints the ground projection of every polygon
	ShowSurface bool

	DrawingPolygonFill   scene.Color
	DrawingPolygonStroke scene.Color
	DrawingPolylineColor scene.Color
	SurfacePolygonFill   scene.Color
	SurfacePolygonStroke scene.Color
	PaintedPolygonFill   scene.Color
	PaintedPolygonStroke scene.Color

	DrawingLabelClassName     string
	AreaLabelClassName        string
	SurfaceAreaLabelClassName string
}

// DefaultPolygonOptions returns the default polygon options for viewer
func DefaultPolygonOptions(viewer *scene.Viewer) PolygonOptions {
	return PolygonOptions{
		Viewer:                    viewer,
		DrawingPolygonFill:        scene.RGBA(1, 186, 239, 200),
		DrawingPolygonStroke:      scene.RGBA(23, 125, 184, 200),
		DrawingPolylineColor:      scene.Red,
		SurfacePolygonFill:        scene.RGBA(231, 201, 105, 200),
		SurfacePolygonStroke:      scene.RGBA(225, 224, 186, 200),
		PaintedPolygonFill:        scene.RGBA(104, 200, 200, 200),
		PaintedPolygonStroke:      scene.RGBA(23, 125, 184, 200),
		DrawingLabelClassName:     "plc-line-mesaure-drawing-label",
		AreaLabelClassName:        "plc-polygon-area-label",
		SurfaceAreaLabelClassName: "plc-polygon-surface-area-label",
	}
}

func (o PolygonOptions) withDefaults() PolygonOptions {
	def := DefaultPolygonOptions(o.Viewer)
	colors := []struct{ v, def *scene.Color }{
		{&o.DrawingPolygonFill, &def.DrawingPolygonFill},
		{&o.DrawingPolygonStroke, &def.DrawingPolygonStroke},
		{&o.DrawingPolylineColor, &def.DrawingPolylineColor},
		{&o.SurfacePolygonFill, &def.SurfacePolygonFill},
		{&o.SurfacePolygonStroke, &def.SurfacePolygonStroke},
		{&o.PaintedPolygonFill, &def.PaintedPolygonFill},
		{&o.PaintedPolygonStroke, &def.PaintedPolygonStroke},
	}
	for _, c := range colors {
		if *c.v == (scene.Color{}) {
			*c.v = *c.def
		}
	}
	if o.DrawingLabelClassName == "" {
		o.DrawingLabelClassName = def.DrawingLabelClassName
	}
	if o.AreaLabelClassName == "" {
		o.AreaLabelClassName = def.AreaLabelClassName
	}
	if o.SurfaceAreaLabelClassName == "" {
		o.SurfaceAreaLabelClassName = def.SurfaceAreaLabelClassName
	}
	return o
}

// PolygonMeasure measures the area of a picked polygon. Left clicks add
// vertices, a right click commits the polygon when it has at least three.
type PolygonMeasure struct {
	*drawer
	opts PolygonOptions

	previewPolygon scene.GeometryHandle
	previewOutline scene.GeometryHandle
	previewSurface scene.GeometryHandle
}

// NewPolygonMeasure creates a polygon measure tool
func NewPolygonMeasure(opts PolygonOptions) (*PolygonMeasure, error) {
	opts = opts.withDefaults()
	d, err := newDrawer(
		policy{mode: ModePolygon, minPoints: 3},
		common{viewer: opts.Viewer, calculator: opts.Calculator, logger: opts.Logger, labelClass: opts.DrawingLabelClassName},
	)
	if err != nil {
		return nil, err
	}

	p := &PolygonMeasure{drawer: d, opts: opts}
	d.variant = p
	return p, nil
}

// SetShowSurface toggles painting of the ground projection
func (p *PolygonMeasure) SetShowSurface(show bool) {
	p.opts.ShowSurface = show
}

// ShowSurface reports whether the ground projection is painted
func (p *PolygonMeasure) ShowSurface() bool {
	return p.opts.ShowSurface
}

func (p *PolygonMeasure) started(pt geodesy.Point) {
	ground := p.calc.Ellipsoid.Flatten(pt)
	p.status.Surface = []geodesy.Point{ground}
	p.status.CurrentSurface = ground

	drawing := p.drawingPoints()
	if p.opts.ShowSurface {
		p.previewSurface = p.addPreviewPolygon(p.surfacePoints(), scene.PolygonStyle{
			Fill:         p.opts.SurfacePolygonFill,
			Outline:      true,
			OutlineColor: p.opts.SurfacePolygonStroke,
			HeightMode:   scene.HeightClampToSurface,
		})
	}
	p.previewPolygon = p.addPreviewPolygon(drawing, scene.PolygonStyle{
		Fill:         p.opts.DrawingPolygonFill,
		Outline:      true,
		OutlineColor: p.opts.DrawingPolygonStroke,
		HeightMode:   scene.HeightPerPosition,
	})
	p.previewOutline = p.addPreviewLine(drawing, scene.LineStyle{Width: 1, Color: p.opts.DrawingPolylineColor})
	p.showPreviewLabel(pt, analysis.FormatArea(0))
}

func (p *PolygonMeasure) picked(pt geodesy.Point) {
	ground := p.calc.Ellipsoid.Flatten(pt)
	p.status.Surface = append(p.status.Surface, ground)
	p.status.CurrentSurface = ground
	p.refresh()
}

func (p *PolygonMeasure) moved() {
	p.status.CurrentSurface = p.calc.Ellipsoid.Flatten(p.status.Current)
	p.refresh()
}

func (p *PolygonMeasure) refresh() {
	drawing := p.drawingPoints()
	p.status.Area = p.calc.PolygonArea(drawing)
	p.updateGeometry(p.previewPolygon, drawing)
	p.updateGeometry(p.previewOutline, drawing)
	if p.previewSurface != "" {
		p.updateGeometry(p.previewSurface, p.surfacePoints())
	}
	p.showPreviewLabel(p.status.Current, analysis.FormatArea(p.status.Area))
}

// drawingPoints returns the vertices followed by the cursor; after a click
// the cursor sits on the last vertex.
func (p *PolygonMeasure) drawingPoints() []geodesy.Point {
	if len(p.status.Points) > 0 && p.status.Current.Equal(p.status.Points[len(p.status.Points)-1]) {
		return append([]geodesy.Point(nil), p.status.Points...)
	}
	return withCurrent(p.status.Points, p.status.Current)
}

func (p *PolygonMeasure) surfacePoints() []geodesy.Point {
	if len(p.status.Surface) > 0 && p.status.CurrentSurface.Equal(p.status.Surface[len(p.status.Surface)-1]) {
		return append([]geodesy.Point(nil), p.status.Surface...)
	}
	return withCurrent(p.status.Surface, p.status.CurrentSurface)
}

func (p *PolygonMeasure) commit() []Result {
	name := fmt.Sprintf("plc-polygon-measure-painted-%d", p.store.Len())
	primary := p.paintPolygon(KindPolygon, p.status.Points, name, scene.PolygonStyle{
		Fill:         p.opts.PaintedPolygonFill,
		Outline:      true,
		OutlineColor: p.opts.PaintedPolygonStroke,
		HeightMode:   scene.HeightPerPosition,
	}, p.opts.AreaLabelClassName)

	if p.opts.ShowSurface {
		name = fmt.Sprintf("plc-polygon-measure-surface-%d", p.store.Len())
		surface := p.paintPolygon(KindSurface, p.status.Surface, name, scene.PolygonStyle{
			Fill:         p.opts.SurfacePolygonFill,
			Outline:      true,
			OutlineColor: p.opts.SurfacePolygonStroke,
			HeightMode:   scene.HeightClampToSurface,
		}, p.opts.SurfaceAreaLabelClassName)
		primary.Surface = &surface
	}
	return []Result{primary}
}

func (p *PolygonMeasure) paintPolygon(kind ResultKind, vertices []geodesy.Point, name string, style scene.PolygonStyle, className string) Result {
	vertices = append([]geodesy.Point(nil), vertices...)
	area := p.calc.PolygonArea(vertices)
	center, _ := p.calc.PolygonCenter(vertices)
	text := analysis.FormatArea(area)
	return Result{
		Kind:     kind,
		Geometry: p.viewer.Geometries.AddPolygon(geodesy.Cartesians(vertices), style),
		Label:    p.addLabel(center, text, scene.LabelOptions{Name: name, ClassName: className}),
		Text:     text,
		Value:    area,
		Points:   vertices,
	}
}

func (p *PolygonMeasure) discard(bool) {
	p.previewPolygon = ""
	p.previewOutline = ""
	p.previewSurface = ""
}
