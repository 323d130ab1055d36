package engine

import (
	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/geom"
)

// ResizeType identifies one of the eight resize handles of a selected element.
type ResizeType string

const (
	ResizeTop         ResizeType = "resize-top"
	ResizeBottom      ResizeType = "resize-bottom"
	ResizeLeft        ResizeType = "resize-left"
	ResizeRight       ResizeType = "resize-right"
	ResizeTopLeft     ResizeType = "resize-top-left"
	ResizeTopRight    ResizeType = "resize-top-right"
	ResizeBottomLeft  ResizeType = "resize-bottom-left"
	ResizeBottomRight ResizeType = "resize-bottom-right"
)

// Valid reports whether r names one of the eight handles.
func (r ResizeType) Valid() bool {
	switch r {
	case ResizeTop, ResizeBottom, ResizeLeft, ResizeRight,
		ResizeTopLeft, ResizeTopRight, ResizeBottomLeft, ResizeBottomRight:
		return true
	}
	return false
}

// PointTargetType classifies what lies under the pointer. Resize targets use the handle's
// ResizeType value.
type PointTargetType string

const (
	PointTargetNull        PointTargetType = ""
	PointTargetListArea    PointTargetType = "list-area"
	PointTargetOverElement PointTargetType = "over-element"
)

// ResizeType returns the handle identity of a resize target.
func (t PointTargetType) ResizeType() (ResizeType, bool) {
	r := ResizeType(t)
	return r, r.Valid()
}

func (t PointTargetType) String() string {
	if t == PointTargetNull {
		return "null"
	}
	return string(t)
}

// PointTarget is the result of resolving a pointer position. Vertex lists are in the root
// model frame.
type PointTarget struct {
	Type                   PointTargetType
	Elements               []*document.Element
	GroupQueue             []*document.Element
	ElementVertexesList    []geom.Vertexes
	GroupQueueVertexesList []geom.Vertexes
}

// Element returns the single matched element, or nil when the target matched none or many.
func (t PointTarget) Element() *document.Element {
	if len(t.Elements) != 1 {
		return nil
	}
	return t.Elements[0]
}

type PointTargetOptions struct {
	Scene            *document.Scene
	SelectedElements []*document.Element
	ViewScaleInfo    geom.ViewScaleInfo
	GroupQueue       []*document.Element
	// AreaSize is the view-space bounding box of a multi-element selection.
	AreaSize *geom.Rect
	// Controller is the handle layout of the single selected element.
	Controller *SizeController
}

// GetPointTarget resolves a view-space point against the current selection context. It never
// mutates its inputs.
func GetPointTarget(p geom.Point, opts PointTargetOptions) PointTarget {
	target := PointTarget{
		Type:                   PointTargetNull,
		GroupQueue:             opts.GroupQueue,
		GroupQueueVertexesList: GroupQueueVertexesList(opts.GroupQueue),
	}

	if len(opts.GroupQueue) > 0 && !IsPointInActiveGroup(p, opts.GroupQueue, opts.ViewScaleInfo) {
		return target
	}

	if len(opts.SelectedElements) == 1 && opts.Controller != nil {
		if handle := opts.Controller.HandleAt(p); handle != "" {
			elem := opts.SelectedElements[0]
			target.Type = PointTargetType(handle)
			target.Elements = []*document.Element{elem}
			target.ElementVertexesList = []geom.Vertexes{ElementVertexesInGroup(elem, opts.GroupQueue)}
			return target
		}
	}

	if opts.AreaSize != nil && len(opts.SelectedElements) > 1 && opts.AreaSize.Contains(p) {
		target.Type = PointTargetListArea
		target.Elements = opts.SelectedElements
		for _, elem := range opts.SelectedElements {
			target.ElementVertexesList = append(target.ElementVertexesList,
				ElementVertexesInGroup(elem, opts.Scene.GroupQueue(elem.UUID)))
		}
		return target
	}

	list := opts.Scene.Data().Elements
	if len(opts.GroupQueue) > 0 {
		list = opts.GroupQueue[len(opts.GroupQueue)-1].Children()
	}
	if elem, v := topmostAt(p, list, opts.GroupQueue, opts.ViewScaleInfo); elem != nil {
		target.Type = PointTargetOverElement
		target.Elements = []*document.Element{elem}
		target.ElementVertexesList = []geom.Vertexes{v}
	}
	return target
}

// topmostAt returns the last visible element of list whose rotated rectangle contains the
// view-space point, along with its root-frame vertexes.
func topmostAt(p geom.Point, list, queue []*document.Element, vsi geom.ViewScaleInfo) (*document.Element, geom.Vertexes) {
	for i := len(list) - 1; i >= 0; i-- {
		elem := list[i]
		if !elem.Visible() {
			continue
		}
		v := ElementVertexesInGroup(elem, queue)
		if vsi.ViewVertexes(v).Contains(p) {
			return elem, v
		}
	}
	return nil, geom.Vertexes{}
}

// IsPointInActiveGroup reports whether the view-space point lies inside the rotated rectangle
// of the innermost group of queue.
func IsPointInActiveGroup(p geom.Point, queue []*document.Element, vsi geom.ViewScaleInfo) bool {
	if len(queue) == 0 {
		return false
	}
	group := queue[len(queue)-1]
	local := ToQueueLocal(vsi.ModelPoint(p), queue[:len(queue)-1])
	return geom.ElementVertexes(group.Size()).Contains(local)
}

// PointElement returns the topmost visible root element under the view-space point.
func PointElement(scene *document.Scene, p geom.Point, vsi geom.ViewScaleInfo) *document.Element {
	elem, _ := topmostAt(p, scene.Data().Elements, nil, vsi)
	return elem
}

// SelectedElementsArea returns the view-space bounding box of a multi-element selection, or nil
// when fewer than two elements are selected.
func SelectedElementsArea(scene *document.Scene, elems []*document.Element, vsi geom.ViewScaleInfo) *geom.Rect {
	if len(elems) < 2 {
		return nil
	}
	var area geom.Rect
	for _, elem := range elems {
		v := ElementVertexesInGroup(elem, scene.GroupQueue(elem.UUID))
		area = area.Union(vsi.ViewVertexes(v).Bounds())
	}
	return &area
}

// ElementsInArea returns the visible root elements whose view-space bounding boxes intersect
// the marquee spanned by start and end. Locked elements are included.
func ElementsInArea(scene *document.Scene, start, end geom.Point, vsi geom.ViewScaleInfo) []*document.Element {
	area := geom.RectFromPoints(start, end)
	var result []*document.Element
	for _, elem := range scene.Data().Elements {
		if !elem.Visible() {
			continue
		}
		bounds := vsi.ViewVertexes(geom.ElementVertexes(elem.Size())).Bounds()
		if area.Intersects(bounds) {
			result = append(result, elem)
		}
	}
	return result
}
