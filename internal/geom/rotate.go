package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a 2D point. Its frame (view pixels or model units) is implied by the caller.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is an element rectangle: top-left origin, extents, and a clockwise rotation in degrees
// applied about the rectangle's own center.
type Size struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
	Angle float64 `json:"angle,omitempty"`
}

// AngleToRadian converts degrees to radians.
func AngleToRadian(angle float64) float64 {
	return angle / 180 * math.Pi
}

// RadianToAngle converts radians to degrees.
func RadianToAngle(radian float64) float64 {
	return radian / math.Pi * 180
}

// Distance returns the euclidean distance between two points.
func Distance(a, b Point) float64 {
	return r2.Norm(r2.Sub(r2.Vec{X: b.X, Y: b.Y}, r2.Vec{X: a.X, Y: a.Y}))
}

// ElementCenter returns the rotation center of a rectangle.
func ElementCenter(s Size) Point {
	return Point{X: s.X + s.W/2, Y: s.Y + s.H/2}
}

// LineRadian returns the direction of center->p measured clockwise from north
// (the negative y axis), in [0, 2π). Coincident points yield 0.
func LineRadian(center, p Point) float64 {
	x := p.X - center.X
	y := p.Y - center.Y

	if x == 0 {
		if y < 0 {
			return 0
		} else if y > 0 {
			return math.Pi
		}
	} else if y == 0 {
		if x < 0 {
			return math.Pi * 3 / 2
		} else if x > 0 {
			return math.Pi / 2
		}
	}

	switch {
	case x > 0 && y < 0:
		return math.Atan(math.Abs(x) / math.Abs(y))
	case x > 0 && y > 0:
		return math.Pi - math.Atan(math.Abs(x)/math.Abs(y))
	case x < 0 && y > 0:
		return math.Pi + math.Atan(math.Abs(x)/math.Abs(y))
	case x < 0 && y < 0:
		return 2*math.Pi - math.Atan(math.Abs(x)/math.Abs(y))
	}
	return 0
}

// CalcRadian returns the rotation from start to end around center, taking the short way
// across north when the two directions straddle it.
func CalcRadian(center, start, end Point) float64 {
	startRadian := LineRadian(center, start)
	endRadian := LineRadian(center, end)

	switch {
	case startRadian > math.Pi*3/2 && endRadian < math.Pi/2:
		return endRadian + (math.Pi*2 - startRadian)
	case endRadian > math.Pi*3/2 && startRadian < math.Pi/2:
		return startRadian + (math.Pi*2 - endRadian)
	default:
		return endRadian - startRadian
	}
}

// normalizeRadian maps r into [0, 2π).
func normalizeRadian(r float64) float64 {
	r = math.Mod(r, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	if r >= 2*math.Pi {
		r = 0
	}
	return r
}

// RotatePoint rotates p about center by radian, clockwise positive in a y-down frame.
func RotatePoint(center, p Point, radian float64) Point {
	end := normalizeRadian(LineRadian(center, p) + radian)
	length := Distance(center, p)

	var x, y float64
	switch {
	case end == 0:
		y = -length
	case end < math.Pi/2:
		x = math.Sin(end) * length
		y = -math.Cos(end) * length
	case end == math.Pi/2:
		x = length
	case end < math.Pi:
		x = math.Sin(math.Pi-end) * length
		y = math.Cos(math.Pi-end) * length
	case end == math.Pi:
		y = length
	case end < math.Pi*3/2:
		x = -math.Sin(end-math.Pi) * length
		y = math.Cos(end-math.Pi) * length
	case end == math.Pi*3/2:
		x = -length
	default:
		x = -math.Sin(2*math.Pi-end) * length
		y = -math.Cos(2*math.Pi-end) * length
	}

	return Point{X: center.X + x, Y: center.Y + y}
}

// ElementVertexes returns the corners of s (top-left, top-right, bottom-right, bottom-left)
// rotated about its center by s.Angle.
func ElementVertexes(s Size) Vertexes {
	v := Vertexes{
		{X: s.X, Y: s.Y},
		{X: s.X + s.W, Y: s.Y},
		{X: s.X + s.W, Y: s.Y + s.H},
		{X: s.X, Y: s.Y + s.H},
	}
	if s.Angle == 0 {
		return v
	}
	return RotateVertexes(ElementCenter(s), v, AngleToRadian(s.Angle))
}

// RotateVertexes rotates every vertex about center.
func RotateVertexes(center Point, v Vertexes, radian float64) Vertexes {
	for i := range v {
		v[i] = RotatePoint(center, v[i], radian)
	}
	return v
}
