package measurement

import (
	"github.com/PrincessGod/plc/pkg/geodesy"
	"github.com/PrincessGod/plc/pkg/scene"
)

// ResultKind tells what a painted result measures
type ResultKind int

const (
	KindLine ResultKind = iota
	KindHorizontal
	KindVertical
	KindPolyline
	KindPolygon
	KindSurface
)

func (k ResultKind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindHorizontal:
		return "horizontal"
	case KindVertical:
		return "vertical"
	case KindPolyline:
		return "polyline"
	case KindPolygon:
		return "polygon"
	case KindSurface:
		return "surface"
	default:
		return "unknown"
	}
}

// Result is a committed measurement: a renderable geometry and its label.
// Both handles are owned by the Store holding the result.
type Result struct {
	Kind     ResultKind
	Geometry scene.GeometryHandle
	Label    scene.LabelHandle
	Text     string
	// Value is a length in meters or an area in square meters
	Value  float64
	Points []geodesy.Point
	// Fragments are the per-segment length labels of a polyline
	Fragments []scene.LabelHandle
	// Surface is the ground projection painted together with a polygon
	Surface *Result
}

// Store is the ordered collection of a tool's painted results
type Store struct {
	geometries scene.GeometryFactory
	labels     scene.LabelFactory
	results    []Result
}

// NewStore creates an empty store releasing resources through the factories
func NewStore(geometries scene.GeometryFactory, labels scene.LabelFactory) *Store {
	return &Store{geometries: geometries, labels: labels}
}

// Add appends a result and takes ownership of its resources
func (s *Store) Add(r Result) {
	s.results = append(s.results, r)
}

// Len returns the number of results
func (s *Store) Len() int {
	return len(s.results)
}

// Results returns the results in commit order
func (s *Store) Results() []Result {
	return append([]Result(nil), s.results...)
}

// Remove releases and drops the result painted with the given geometry,
// including its linked surface.
func (s *Store) Remove(handle scene.GeometryHandle) bool {
	for i, r := range s.results {
		if r.Geometry == handle {
			s.release(r)
			s.results = append(s.results[:i], s.results[i+1:]...)
			return true
		}
	}
	return false
}

// Clear releases every result
func (s *Store) Clear() {
	for _, r := range s.results {
		s.release(r)
	}
	s.results = nil
}

func (s *Store) release(r Result) {
	if r.Geometry != "" {
		s.geometries.RemoveGeometry(r.Geometry)
	}
	if r.Label != "" {
		s.labels.RemoveLabel(r.Label)
	}
	for _, l := range r.Fragments {
		s.labels.RemoveLabel(l)
	}
	if r.Surface != nil {
		s.release(*r.Surface)
	}
}
