package memscene

import (
	"github.com/PrincessGod/plc/pkg/geometry"
	"github.com/PrincessGod/plc/pkg/scene"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GeometryKind distinguishes lines from polygons
type GeometryKind int

const (
	KindLine GeometryKind = iota
	KindPolygon
)

func (k GeometryKind) String() string {
	if k == KindPolygon {
		return "polygon"
	}
	return "line"
}

// Geometry is a live renderable line or polygon
type Geometry struct {
	Handle       scene.GeometryHandle
	Kind         GeometryKind
	Points       []geometry.Vector3
	LineStyle    scene.LineStyle
	PolygonStyle scene.PolygonStyle
}

// Label is a live text annotation
type Label struct {
	Handle   scene.LabelHandle
	Position geometry.Vector3
	Text     string
	Options  scene.LabelOptions
	Show     bool
}

// Registry stores geometry and labels in creation order
type Registry struct {
	geometries     map[scene.GeometryHandle]*Geometry
	geometryOrder  []scene.GeometryHandle
	labels         map[scene.LabelHandle]*Label
	labelOrder     []scene.LabelHandle
	removedUnknown int
	logger         *zap.Logger
}

// NewRegistry creates an empty registry
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		geometries: make(map[scene.GeometryHandle]*Geometry),
		labels:     make(map[scene.LabelHandle]*Label),
		logger:     logger,
	}
}

func (r *Registry) AddLine(points []geometry.Vector3, style scene.LineStyle) scene.GeometryHandle {
	return r.addGeometry(&Geometry{Kind: KindLine, Points: clone(points), LineStyle: style})
}

func (r *Registry) AddPolygon(vertices []geometry.Vector3, style scene.PolygonStyle) scene.GeometryHandle {
	return r.addGeometry(&Geometry{Kind: KindPolygon, Points: clone(vertices), PolygonStyle: style})
}

func (r *Registry) addGeometry(g *Geometry) scene.GeometryHandle {
	g.Handle = scene.GeometryHandle(uuid.NewString())
	r.geometries[g.Handle] = g
	r.geometryOrder = append(r.geometryOrder, g.Handle)
	r.logger.Debug("geometry added", zap.String("handle", string(g.Handle)), zap.Stringer("kind", g.Kind), zap.Int("points", len(g.Points)))
	return g.Handle
}

func (r *Registry) UpdateGeometry(handle scene.GeometryHandle, points []geometry.Vector3) {
	if g, ok := r.geometries[handle]; ok {
		g.Points = clone(points)
	}
}

func (r *Registry) RemoveGeometry(handle scene.GeometryHandle) {
	if _, ok := r.geometries[handle]; !ok {
		r.removedUnknown++
		return
	}
	delete(r.geometries, handle)
	r.geometryOrder = without(r.geometryOrder, handle)
	r.logger.Debug("geometry removed", zap.String("handle", string(handle)))
}

func (r *Registry) AddLabel(position geometry.Vector3, text string, opts scene.LabelOptions) scene.LabelHandle {
	l := &Label{
		Handle:   scene.LabelHandle(uuid.NewString()),
		Position: position,
		Text:     text,
		Options:  opts,
		Show:     !opts.Hidden,
	}
	r.labels[l.Handle] = l
	r.labelOrder = append(r.labelOrder, l.Handle)
	r.logger.Debug("label added", zap.String("handle", string(l.Handle)), zap.String("text", text))
	return l.Handle
}

func (r *Registry) UpdateLabel(handle scene.LabelHandle, update scene.LabelUpdate) {
	l, ok := r.labels[handle]
	if !ok {
		return
	}
	if update.Text != nil {
		l.Text = *update.Text
	}
	if update.Position != nil {
		l.Position = *update.Position
	}
	if update.Show != nil {
		l.Show = *update.Show
	}
}

func (r *Registry) RemoveLabel(handle scene.LabelHandle) {
	if _, ok := r.labels[handle]; !ok {
		r.removedUnknown++
		return
	}
	delete(r.labels, handle)
	r.labelOrder = without(r.labelOrder, handle)
	r.logger.Debug("label removed", zap.String("handle", string(handle)))
}

// Geometry returns a copy of the live geometry with the given handle
func (r *Registry) Geometry(handle scene.GeometryHandle) (Geometry, bool) {
	g, ok := r.geometries[handle]
	if !ok {
		return Geometry{}, false
	}
	out := *g
	out.Points = clone(g.Points)
	return out, true
}

// Geometries returns copies of all live geometry in creation order
func (r *Registry) Geometries() []Geometry {
	out := make([]Geometry, 0, len(r.geometryOrder))
	for _, h := range r.geometryOrder {
		g, _ := r.Geometry(h)
		out = append(out, g)
	}
	return out
}

// Label returns a copy of the live label with the given handle
func (r *Registry) Label(handle scene.LabelHandle) (Label, bool) {
	l, ok := r.labels[handle]
	if !ok {
		return Label{}, false
	}
	return *l, true
}

// Labels returns copies of all live labels in creation order
func (r *Registry) Labels() []Label {
	out := make([]Label, 0, len(r.labelOrder))
	for _, h := range r.labelOrder {
		out = append(out, *r.labels[h])
	}
	return out
}

// VisibleLabels returns the live labels that are shown
func (r *Registry) VisibleLabels() []Label {
	var out []Label
	for _, l := range r.Labels() {
		if l.Show {
			out = append(out, l)
		}
	}
	return out
}

// UnknownRemovals counts removals of handles that were not live
func (r *Registry) UnknownRemovals() int {
	return r.removedUnknown
}

func (r *Registry) top() (scene.GeometryHandle, bool) {
	if len(r.geometryOrder) == 0 {
		return "", false
	}
	return r.geometryOrder[len(r.geometryOrder)-1], true
}

func clone(points []geometry.Vector3) []geometry.Vector3 {
	return append([]geometry.Vector3(nil), points...)
}

func without[T comparable](items []T, item T) []T {
	for i, v := range items {
		if v == item {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}
