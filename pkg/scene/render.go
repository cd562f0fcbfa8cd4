package scene

import (
	"fmt"

	"github.com/PrincessGod/plc/pkg/geometry"
)

// GeometryHandle references a renderable line or polygon owned by the host
type GeometryHandle string

// LabelHandle references a renderable text annotation owned by the host
type LabelHandle string

// Color is an 8-bit RGBA color
type Color struct {
	R, G, B, A uint8
}

// RGBA creates a color from its components
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %d)", c.R, c.G, c.B, c.A)
}

// Named colors used by the default tool styles
var (
	HotPink         = RGBA(255, 105, 180, 255)
	MediumTurquoise = RGBA(72, 209, 204, 255)
	Red             = RGBA(255, 0, 0, 255)
)

// HeightMode tells the host how to place polygon vertices vertically
type HeightMode int

const (
	// HeightPerPosition renders every vertex at its own height (draped)
	HeightPerPosition HeightMode = iota
	// HeightClampToSurface renders the polygon flat at height 0
	HeightClampToSurface
)

// LineStyle describes a polyline
type LineStyle struct {
	Width float64
	Color Color
}

// PolygonStyle describes a filled polygon
type PolygonStyle struct {
	Fill         Color
	Outline      bool
	OutlineColor Color
	HeightMode   HeightMode
}

// GeometryFactory creates and edits renderable geometry in the host scene
type GeometryFactory interface {
	AddLine(points []geometry.Vector3, style LineStyle) GeometryHandle
	AddPolygon(vertices []geometry.Vector3, style PolygonStyle) GeometryHandle
	UpdateGeometry(handle GeometryHandle, points []geometry.Vector3)
	RemoveGeometry(handle GeometryHandle)
}

// LabelOptions are the creation-time properties of a label
type LabelOptions struct {
	Name      string
	ClassName string
	Hidden    bool
	// VOffset shifts the label vertically in pixels
	VOffset float64
}

// LabelUpdate changes selected properties of an existing label; nil fields
// are left untouched.
type LabelUpdate struct {
	Text     *string
	Position *geometry.Vector3
	Show     *bool
}

// LabelFactory creates and edits text annotations
type LabelFactory interface {
	AddLabel(position geometry.Vector3, text string, opts LabelOptions) LabelHandle
	UpdateLabel(handle LabelHandle, update LabelUpdate)
	RemoveLabel(handle LabelHandle)
}
