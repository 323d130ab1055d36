package document

import (
	"math"

	"github.com/inamate/board/internal/geom"
	"github.com/inamate/board/internal/typeid"
)

// CreateElement builds a new element of type t. Zero extents in base are filled from the
// viewport: a quarter of the visible width and height, centered in the current view. The
// detail defaults to an empty payload for the type when base carries none.
func CreateElement(t ElementType, base Element, vsi geom.ViewScaleInfo, vsz geom.ViewSizeInfo) (*Element, error) {
	elem := base
	elem.Type = t
	if elem.Detail == nil || elem.Detail.elementType() != t {
		detail, err := NewDetail(t)
		if err != nil {
			return nil, err
		}
		elem.Detail = detail
	}

	if elem.UUID == "" {
		if t == ElementTypeGroup {
			elem.UUID = typeid.NewGroupID()
		} else {
			elem.UUID = typeid.NewElementID()
		}
	}

	if elem.W <= 0 || elem.H <= 0 {
		scale := vsi.Scale
		if scale <= 0 {
			scale = 1
		}
		w := vsz.Width / 4 / scale
		h := vsz.Height / 4 / scale
		if t == ElementTypeCircle {
			w = math.Min(w, h)
			h = w
		}
		if w <= 0 || h <= 0 {
			w, h = 100, 100
		}
		elem.W, elem.H = w, h
		view := geom.Rect{Width: vsz.Width, Height: vsz.Height}.Center()
		center := vsi.ModelPoint(view)
		elem.X = center.X - w/2
		elem.Y = center.Y - h/2
	}
	return &elem, nil
}
