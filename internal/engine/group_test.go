package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/geom"
)

func TestToQueueLocalEmptyQueueIsIdentity(t *testing.T) {
	p := geom.Point{X: 12.5, Y: -3}
	assert.Equal(t, p, ToQueueLocal(p, nil))
	assert.Equal(t, p, FromQueueLocal(p, nil))
	assert.True(t, QueueMatrix(nil).IsIdentity())
}

func TestToGroupLocalUndoesRotation(t *testing.T) {
	g := group("g", 100, 100, 100, 100, 90)
	// The group-local point (10, 10) is drawn at (190, 110) once the group turns a quarter.
	pointNear(t, geom.Point{X: 10, Y: 10}, ToGroupLocal(geom.Point{X: 190, Y: 110}, g))
	pointNear(t, geom.Point{X: 190, Y: 110}, FromGroupLocal(geom.Point{X: 10, Y: 10}, g))
}

func TestTwoLevelQueueComposition(t *testing.T) {
	inner := group("inner", 20, 30, 60, 40, -35)
	outer := group("outer", 100, 50, 200, 150, 25, inner)
	queue := []*document.Element{outer, inner}

	points := []geom.Point{{X: 0, Y: 0}, {X: 150, Y: 120}, {X: -40, Y: 310.5}, {X: 222, Y: 61}}
	for _, p := range points {
		stepwise := ToGroupLocal(ToGroupLocal(p, outer), inner)
		pointNear(t, stepwise, ToQueueLocal(p, queue), "queue %+v", p)
		pointNear(t, stepwise, QueueMatrix(queue).TransformPoint(p), "matrix %+v", p)
		pointNear(t, p, FromQueueLocal(stepwise, queue), "inverse %+v", p)
	}
}

func TestRotateDeltaInGroup(t *testing.T) {
	queue := []*document.Element{group("g", 0, 0, 10, 10, 90)}
	dx, dy := RotateDeltaInGroup(geom.Point{X: 5, Y: 5}, geom.Point{X: 5, Y: 15}, queue)
	assert.InDelta(t, 10, dx, tol)
	assert.InDelta(t, 0, dy, tol)

	dx, dy = RotateDeltaInGroup(geom.Point{X: 1, Y: 2}, geom.Point{X: 4, Y: 6}, nil)
	assert.Equal(t, 3.0, dx)
	assert.Equal(t, 4.0, dy)
}

func TestElementVertexesInGroup(t *testing.T) {
	child := rect("c", 10, 10, 20, 20, 0)
	g := group("g", 100, 100, 100, 100, 90, child)

	v := ElementVertexesInGroup(child, []*document.Element{g})
	pointNear(t, geom.Point{X: 190, Y: 110}, v[0])
	pointNear(t, geom.Point{X: 180, Y: 120}, v.Center())

	list := GroupQueueVertexesList([]*document.Element{g})
	assert.Len(t, list, 1)
	assert.Equal(t, geom.ElementVertexes(g.Size()), list[0])
}

func TestElementVertexesInGroupMatchesStepwise(t *testing.T) {
	child := rect("c", 15, 20, 40, 30, 50)
	inner := group("inner", 20, 30, 90, 80, -35, child)
	outer := group("outer", 100, 50, 200, 150, 25, inner)
	queue := []*document.Element{outer, inner}

	got := ElementVertexesInGroup(child, queue)
	for i, corner := range geom.ElementVertexes(child.Size()) {
		pointNear(t, FromQueueLocal(corner, queue), got[i], "corner %d", i)
	}
	// Every corner lies on a different side of the center, so a bad quadrant shows up here.
	c := got.Center()
	assert.InDelta(t, 40, geom.Distance(got[0], got[1]), tol)
	assert.InDelta(t, 30, geom.Distance(got[1], got[2]), tol)
	assert.InDelta(t, geom.Distance(c, got[0]), geom.Distance(c, got[2]), tol)
}
