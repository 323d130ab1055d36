package engine

import (
	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/geom"
)

// Group frames
//
// A group's children are positioned relative to the group origin (x, y) and the whole group is
// rotated about its own center. A point in the group's parent frame is brought into the group's
// local frame by undoing the rotation first and the origin offset second. A group queue chains
// these frames, outermost group first.

// ToGroupLocal maps p from the parent frame of group into group's local frame.
func ToGroupLocal(p geom.Point, group *document.Element) geom.Point {
	if group == nil {
		return p
	}
	if group.Angle != 0 {
		p = geom.RotatePoint(geom.ElementCenter(group.Size()), p, -geom.AngleToRadian(group.Angle))
	}
	return geom.Point{X: p.X - group.X, Y: p.Y - group.Y}
}

// FromGroupLocal is the inverse of ToGroupLocal.
func FromGroupLocal(p geom.Point, group *document.Element) geom.Point {
	if group == nil {
		return p
	}
	p = geom.Point{X: p.X + group.X, Y: p.Y + group.Y}
	if group.Angle != 0 {
		p = geom.RotatePoint(geom.ElementCenter(group.Size()), p, geom.AngleToRadian(group.Angle))
	}
	return p
}

// ToQueueLocal maps a root-frame point into the frame of the innermost group of queue.
// An empty queue is the identity.
func ToQueueLocal(p geom.Point, queue []*document.Element) geom.Point {
	for _, group := range queue {
		p = ToGroupLocal(p, group)
	}
	return p
}

// FromQueueLocal maps a point in the innermost group's frame back to the root frame.
func FromQueueLocal(p geom.Point, queue []*document.Element) geom.Point {
	for i := len(queue) - 1; i >= 0; i-- {
		p = FromGroupLocal(p, queue[i])
	}
	return p
}

// GroupMatrix is ToGroupLocal as an affine transform.
func GroupMatrix(group *document.Element) geom.Matrix2D {
	if group == nil {
		return geom.Identity()
	}
	center := geom.ElementCenter(group.Size())
	return geom.Translate(-group.X, -group.Y).
		Multiply(geom.RotateAbout(center, -geom.AngleToRadian(group.Angle)))
}

// QueueMatrix composes GroupMatrix for every queue entry, outermost applied first.
func QueueMatrix(queue []*document.Element) geom.Matrix2D {
	m := geom.Identity()
	for _, group := range queue {
		m = GroupMatrix(group).Multiply(m)
	}
	return m
}

// QueueRadian is the accumulated rotation of every group in queue.
func QueueRadian(queue []*document.Element) float64 {
	var total float64
	for _, group := range queue {
		total += group.Angle
	}
	return geom.AngleToRadian(total)
}

// RotateDeltaInGroup returns the movement from start to end expressed along the axes of the
// innermost group of queue. Only rotation applies to a delta; group origins cancel out.
func RotateDeltaInGroup(start, end geom.Point, queue []*document.Element) (float64, float64) {
	d := geom.Point{X: end.X - start.X, Y: end.Y - start.Y}
	radian := QueueRadian(queue)
	if radian == 0 {
		return d.X, d.Y
	}
	d = geom.RotatePoint(geom.Point{}, d, -radian)
	return d.X, d.Y
}

// ElementVertexesInGroup returns the root-frame corners of elem, whose rectangle is expressed
// in the frame of the innermost group of queue.
func ElementVertexesInGroup(elem *document.Element, queue []*document.Element) geom.Vertexes {
	v := geom.ElementVertexes(elem.Size())
	if len(queue) == 0 {
		return v
	}
	return QueueMatrix(queue).Invert().TransformVertexes(v)
}

// GroupQueueVertexesList returns the root-frame corners of every group in queue.
func GroupQueueVertexesList(queue []*document.Element) []geom.Vertexes {
	list := make([]geom.Vertexes, 0, len(queue))
	for i, group := range queue {
		list = append(list, ElementVertexesInGroup(group, queue[:i]))
	}
	return list
}
