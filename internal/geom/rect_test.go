package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 100, Y: 100, Width: 200, Height: 150}

	tests := []struct {
		p    Point
		want bool
	}{
		{Point{X: 150, Y: 175}, true},
		{Point{X: 100, Y: 100}, true},
		{Point{X: 300, Y: 250}, true},
		{Point{X: 99, Y: 100}, false},
		{Point{X: 301, Y: 100}, false},
		{Point{X: 100, Y: 251}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Contains(tt.p), "Contains(%+v)", tt.p)
	}
}

func TestRectFromPointsNormalizes(t *testing.T) {
	r := RectFromPoints(Point{X: 200, Y: 50}, Point{X: -10, Y: 120})
	assert.Equal(t, Rect{X: -10, Y: 50, Width: 210, Height: 70}, r)
}

func TestRectIntersectsAndUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: 5, Width: 10, Height: 10}
	c := Rect{X: 20, Y: 20, Width: 1, Height: 1}

	assert.True(t, a.Intersects(b))
	assert.False(t, a.Intersects(c))
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 21, Height: 21}, a.Union(c))
	assert.Equal(t, a, Rect{}.Union(a))
}

func TestVertexesContainsRotated(t *testing.T) {
	v := ElementVertexes(Size{X: 0, Y: 0, W: 100, H: 20, Angle: 45})

	assert.True(t, v.Contains(Point{X: 50, Y: 10}))
	// The unrotated corner falls outside once the bar is tilted.
	assert.False(t, v.Contains(Point{X: 2, Y: 1}))
	assert.True(t, v.Contains(Point{X: 70, Y: 30}))
}

func TestVertexesBounds(t *testing.T) {
	v := ElementVertexes(Size{X: 0, Y: 0, W: 100, H: 50, Angle: 90})
	b := v.Bounds()
	assert.InDelta(t, 25, b.X, tol)
	assert.InDelta(t, -25, b.Y, tol)
	assert.InDelta(t, 50, b.Width, tol)
	assert.InDelta(t, 100, b.Height, tol)
}

func TestMatrixRotateAboutMatchesRotatePoint(t *testing.T) {
	center := Point{X: 7, Y: -3}
	p := Point{X: 30, Y: 12}
	radian := AngleToRadian(137)

	want := RotatePoint(center, p, radian)
	got := RotateAbout(center, radian).TransformPoint(p)
	pointsEqual(t, want, got)

	back := RotateAbout(center, radian).Invert().TransformPoint(got)
	pointsEqual(t, p, back)
}

func TestViewScaleInfoRoundTrip(t *testing.T) {
	v := ViewScaleInfo{Scale: 2, OffsetLeft: 10, OffsetTop: -4}
	p := Point{X: 3, Y: 5}

	view := v.ViewPoint(p)
	assert.Equal(t, Point{X: 16, Y: 6}, view)
	assert.Equal(t, p, v.ModelPoint(view))
	assert.Equal(t, view, v.Matrix().TransformPoint(p))

	dx, dy := v.ModelDelta(10, -6)
	assert.Equal(t, 5.0, dx)
	assert.Equal(t, -3.0, dy)

	assert.Equal(t, p, ViewScaleInfo{}.ModelPoint(p))
}
