package engine

import (
	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/geom"
)

// DefaultControllerSize is the side of a resize handle square in view pixels.
const DefaultControllerSize = 8

// ControllerHandle is one resize handle: a square centered on a corner or edge midpoint of the
// selected element, rotated with it. All coordinates are view space.
type ControllerHandle struct {
	Type     ResizeType    `json:"type"`
	Center   geom.Point    `json:"center"`
	Vertexes geom.Vertexes `json:"vertexes"`
}

// SizeController is the handle layout drawn around a single selected element.
type SizeController struct {
	ElementWrapper geom.Vertexes      `json:"elementWrapper"`
	Handles        []ControllerHandle `json:"handles"`
}

// handleOrder lists corners before edges so that a corner wins where squares overlap on very
// small elements.
var handleOrder = []ResizeType{
	ResizeTopLeft, ResizeTopRight, ResizeBottomRight, ResizeBottomLeft,
	ResizeTop, ResizeRight, ResizeBottom, ResizeLeft,
}

// CalcSizeController lays out the eight handles for elem inside queue. A non-positive size
// falls back to DefaultControllerSize.
func CalcSizeController(elem *document.Element, queue []*document.Element, size float64, vsi geom.ViewScaleInfo) *SizeController {
	if elem == nil {
		return nil
	}
	if size <= 0 {
		size = DefaultControllerSize
	}
	v := vsi.ViewVertexes(ElementVertexesInGroup(elem, queue))
	radian := QueueRadian(queue) + geom.AngleToRadian(elem.Angle)

	centers := map[ResizeType]geom.Point{
		ResizeTopLeft:     v[0],
		ResizeTopRight:    v[1],
		ResizeBottomRight: v[2],
		ResizeBottomLeft:  v[3],
		ResizeTop:         midpoint(v[0], v[1]),
		ResizeRight:       midpoint(v[1], v[2]),
		ResizeBottom:      midpoint(v[2], v[3]),
		ResizeLeft:        midpoint(v[3], v[0]),
	}

	ctrl := &SizeController{ElementWrapper: v, Handles: make([]ControllerHandle, 0, len(handleOrder))}
	for _, t := range handleOrder {
		c := centers[t]
		square := geom.ElementVertexes(geom.Size{X: c.X - size/2, Y: c.Y - size/2, W: size, H: size})
		if radian != 0 {
			square = geom.RotateVertexes(c, square, radian)
		}
		ctrl.Handles = append(ctrl.Handles, ControllerHandle{Type: t, Center: c, Vertexes: square})
	}
	return ctrl
}

// HandleAt returns the handle containing the view-space point, or "".
func (c *SizeController) HandleAt(p geom.Point) ResizeType {
	if c == nil {
		return ""
	}
	for _, h := range c.Handles {
		if h.Vertexes.Contains(p) {
			return h.Type
		}
	}
	return ""
}

// Handle returns the handle of type t.
func (c *SizeController) Handle(t ResizeType) (ControllerHandle, bool) {
	if c != nil {
		for _, h := range c.Handles {
			if h.Type == t {
				return h, true
			}
		}
	}
	return ControllerHandle{}, false
}

func midpoint(a, b geom.Point) geom.Point {
	return geom.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
