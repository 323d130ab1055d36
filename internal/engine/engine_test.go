package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/geom"
)

const tol = 1e-7

func pointNear(t *testing.T, want, got geom.Point, msgAndArgs ...any) {
	t.Helper()
	if !scalar.EqualWithinAbs(want.X, got.X, tol) || !scalar.EqualWithinAbs(want.Y, got.Y, tol) {
		assert.Fail(t, "points differ", "expected %+v, got %+v %v", want, got, msgAndArgs)
	}
}

func sizeNear(t *testing.T, want, got geom.Size) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "x")
	assert.InDelta(t, want.Y, got.Y, tol, "y")
	assert.InDelta(t, want.W, got.W, tol, "w")
	assert.InDelta(t, want.H, got.H, tol, "h")
	assert.InDelta(t, want.Angle, got.Angle, tol, "angle")
}

func rect(id string, x, y, w, h, angle float64) *document.Element {
	return &document.Element{
		UUID: id, Type: document.ElementTypeRect,
		X: x, Y: y, W: w, H: h, Angle: angle,
		Detail: &document.RectDetail{},
	}
}

func group(id string, x, y, w, h, angle float64, children ...*document.Element) *document.Element {
	return &document.Element{
		UUID: id, Type: document.ElementTypeGroup,
		X: x, Y: y, W: w, H: h, Angle: angle,
		Detail: &document.GroupDetail{Children: children},
	}
}
