package geom

import "math"

// Vertexes are the four corners of a possibly rotated rectangle, in drawing order
// (top-left, top-right, bottom-right, bottom-left of the unrotated shape).
type Vertexes [4]Point

// Contains reports whether p lies inside or on the quadrilateral, using a cross-product
// sign test. The quadrilateral must be convex; a degenerate one contains nothing.
func (v Vertexes) Contains(p Point) bool {
	if v.Area() == 0 {
		return false
	}
	var positive, negative bool
	for i := range v {
		a := v[i]
		b := v[(i+1)%len(v)]
		cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// Area returns the unsigned area of the quadrilateral (shoelace formula).
func (v Vertexes) Area() float64 {
	var sum float64
	for i := range v {
		a := v[i]
		b := v[(i+1)%len(v)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2
}

// Bounds returns the axis-aligned bounding box of the vertexes.
func (v Vertexes) Bounds() Rect {
	minX, minY := v[0].X, v[0].Y
	maxX, maxY := v[0].X, v[0].Y
	for _, p := range v[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Center returns the intersection of the diagonals.
func (v Vertexes) Center() Point {
	return Point{X: (v[0].X + v[2].X) / 2, Y: (v[0].Y + v[2].Y) / 2}
}

// Rect represents an axis-aligned bounding box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectFromPoints returns the normalized rectangle spanned by two drag points,
// regardless of drag direction.
func RectFromPoints(a, b Point) Rect {
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Contains checks if a point is inside the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersects reports whether the two rects overlap or touch.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		other.X <= r.X+r.Width &&
		r.Y <= other.Y+other.Height &&
		other.Y <= r.Y+r.Height
}

// Union returns the smallest rect containing both rects.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}

	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)

	return Rect{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Center returns the center point of the rect.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Vertexes returns the rect corners in drawing order.
func (r Rect) Vertexes() Vertexes {
	return ElementVertexes(Size{X: r.X, Y: r.Y, W: r.Width, H: r.Height})
}
