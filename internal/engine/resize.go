package engine

import (
	"math"

	"github.com/inamate/board/internal/geom"
)

// DefaultMinSize is the smallest extent a resize shrinks an element to.
const DefaultMinSize = 1

type ResizeOptions struct {
	// Scale converts the view-space pointer delta into model units.
	Scale float64
	// Start and End are pointer positions, already rotated into the frame of the group that
	// holds the element when it is nested.
	Start, End geom.Point
	Type       ResizeType
	// MinSize bounds both extents from below. Elements already smaller keep their size as the
	// bound. Zero means DefaultMinSize.
	MinSize float64
	// KeepRatio makes corner handles scale both extents by the same factor.
	KeepRatio bool
}

// Resize returns the rectangle produced by dragging handle opts.Type of size from opts.Start to
// opts.End. The delta is measured along the element's own rotated axes, and the corner or edge
// opposite the handle stays fixed in the parent frame. Extents never flip: dragging past the
// opposite edge clamps at the minimum size. An unrecognized handle returns size unchanged.
func Resize(size geom.Size, opts ResizeOptions) geom.Size {
	if !opts.Type.Valid() {
		return size
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	minSize := opts.MinSize
	if minSize <= 0 {
		minSize = DefaultMinSize
	}

	radian := geom.AngleToRadian(size.Angle)
	d := rotate(geom.Point{}, geom.Point{
		X: (opts.End.X - opts.Start.X) / scale,
		Y: (opts.End.Y - opts.Start.Y) / scale,
	}, -radian)
	if d.X == 0 && d.Y == 0 {
		return size
	}

	w, h := size.W, size.H
	// (u, v) is the anchor opposite the handle in unit coordinates of the rectangle.
	u, v := 0.5, 0.5
	switch opts.Type {
	case ResizeTop:
		h, v = h-d.Y, 1
	case ResizeBottom:
		h, v = h+d.Y, 0
	case ResizeLeft:
		w, u = w-d.X, 1
	case ResizeRight:
		w, u = w+d.X, 0
	case ResizeTopLeft:
		w, h, u, v = w-d.X, h-d.Y, 1, 1
	case ResizeTopRight:
		w, h, u, v = w+d.X, h-d.Y, 0, 1
	case ResizeBottomLeft:
		w, h, u, v = w-d.X, h+d.Y, 1, 0
	case ResizeBottomRight:
		w, h, u, v = w+d.X, h+d.Y, 0, 0
	}

	if opts.KeepRatio && u != 0.5 && v != 0.5 && size.W > 0 && size.H > 0 {
		ratio := math.Max(w/size.W, h/size.H)
		w, h = size.W*ratio, size.H*ratio
	}

	w = math.Max(w, math.Min(minSize, size.W))
	h = math.Max(h, math.Min(minSize, size.H))

	next := geom.Size{X: size.X, Y: size.Y, W: w, H: h, Angle: size.Angle}
	before := rotate(geom.ElementCenter(size), geom.Point{X: size.X + u*size.W, Y: size.Y + v*size.H}, radian)
	after := rotate(geom.ElementCenter(next), geom.Point{X: next.X + u*w, Y: next.Y + v*h}, radian)
	next.X += before.X - after.X
	next.Y += before.Y - after.Y
	return next
}

func rotate(center, p geom.Point, radian float64) geom.Point {
	if radian == 0 {
		return p
	}
	return geom.RotatePoint(center, p, radian)
}
