package document

import (
	"slices"

	"github.com/inamate/board/internal/geom"
)

// Position locates an element in the tree: the root index, then the child index inside
// each group on the way down.
type Position []int

// Scene is the element tree plus an index by uuid. Elements are shared by pointer, so
// interaction code mutates geometry in place; structural edits go through Scene so the
// index stays in sync.
type Scene struct {
	Elements []*Element

	byID     map[string]*Element
	parentOf map[string]*Element // nil value = root
}

// NewScene indexes the given root list.
func NewScene(elements []*Element) *Scene {
	s := &Scene{Elements: elements}
	s.Reindex()
	return s
}

// NewSceneFromJSON decodes and indexes scene JSON.
func NewSceneFromJSON(jsonData []byte) (*Scene, error) {
	data, err := ParseData(jsonData)
	if err != nil {
		return nil, err
	}
	return NewScene(data.Elements), nil
}

// Data returns the serializable form of the scene.
func (s *Scene) Data() *Data {
	if s == nil {
		return &Data{}
	}
	return &Data{Elements: s.Elements}
}

// Reindex rebuilds the uuid and parent index from the tree.
func (s *Scene) Reindex() {
	s.byID = make(map[string]*Element)
	s.parentOf = make(map[string]*Element)
	var walk func(list []*Element, parent *Element)
	walk = func(list []*Element, parent *Element) {
		for _, elem := range list {
			if elem == nil {
				continue
			}
			s.byID[elem.UUID] = elem
			s.parentOf[elem.UUID] = parent
			walk(elem.Children(), elem)
		}
	}
	walk(s.Elements, nil)
}

// Find returns the element with the given uuid, or nil.
func (s *Scene) Find(uuid string) *Element {
	if s == nil {
		return nil
	}
	return s.byID[uuid]
}

// FindAll returns the elements for the given uuids, skipping unknown ones.
func (s *Scene) FindAll(uuids []string) []*Element {
	result := make([]*Element, 0, len(uuids))
	for _, id := range uuids {
		if elem := s.Find(id); elem != nil {
			result = append(result, elem)
		}
	}
	return result
}

// Parent returns the group that directly contains uuid, or nil at root or when unknown.
func (s *Scene) Parent(uuid string) *Element {
	if s == nil {
		return nil
	}
	return s.parentOf[uuid]
}

// GroupQueue returns the ancestors of uuid, outermost first. Root elements and unknown ids
// yield an empty queue.
func (s *Scene) GroupQueue(uuid string) []*Element {
	var queue []*Element
	for parent := s.Parent(uuid); parent != nil; parent = s.Parent(parent.UUID) {
		queue = append(queue, parent)
	}
	slices.Reverse(queue)
	return queue
}

// siblings returns the list that holds uuid.
func (s *Scene) siblings(uuid string) []*Element {
	if parent := s.Parent(uuid); parent != nil {
		return parent.Children()
	}
	return s.Elements
}

// Position returns the index path of uuid, or nil when it is not in the scene.
func (s *Scene) Position(uuid string) Position {
	if s.Find(uuid) == nil {
		return nil
	}
	var pos Position
	for id := uuid; id != ""; {
		idx := slices.IndexFunc(s.siblings(id), func(e *Element) bool { return e.UUID == id })
		if idx < 0 {
			return nil
		}
		pos = append(pos, idx)
		parent := s.Parent(id)
		if parent == nil {
			break
		}
		id = parent.UUID
	}
	slices.Reverse(pos)
	return pos
}

// FindByPosition resolves an index path to exactly one element, or nil.
func (s *Scene) FindByPosition(pos Position) *Element {
	if s == nil || len(pos) == 0 {
		return nil
	}
	list := s.Elements
	var elem *Element
	for i, idx := range pos {
		if idx < 0 || idx >= len(list) {
			return nil
		}
		elem = list[idx]
		if i < len(pos)-1 {
			if !elem.IsGroup() {
				return nil
			}
			list = elem.Children()
		}
	}
	return elem
}

// FindByPositions resolves each path, skipping those that fail.
func (s *Scene) FindByPositions(positions []Position) []*Element {
	result := make([]*Element, 0, len(positions))
	for _, pos := range positions {
		if elem := s.FindByPosition(pos); elem != nil {
			result = append(result, elem)
		}
	}
	return result
}

// listAt returns a pointer to the sibling list addressed by the parent path of pos.
func (s *Scene) listAt(parentPos Position) *[]*Element {
	if len(parentPos) == 0 {
		return &s.Elements
	}
	group := s.FindByPosition(parentPos)
	if !group.IsGroup() {
		return nil
	}
	detail := group.Detail.(*GroupDetail)
	return &detail.Children
}

// Insert places elem at pos. The last index may equal the list length to append.
func (s *Scene) Insert(elem *Element, pos Position) bool {
	if elem == nil || len(pos) == 0 {
		return false
	}
	list := s.listAt(pos[:len(pos)-1])
	if list == nil {
		return false
	}
	idx := pos[len(pos)-1]
	if idx < 0 || idx > len(*list) {
		return false
	}
	*list = slices.Insert(*list, idx, elem)
	s.Reindex()
	return true
}

// DeleteByPosition removes the element at pos.
func (s *Scene) DeleteByPosition(pos Position) bool {
	if s.FindByPosition(pos) == nil {
		return false
	}
	list := s.listAt(pos[:len(pos)-1])
	idx := pos[len(pos)-1]
	*list = slices.Delete(*list, idx, idx+1)
	s.Reindex()
	return true
}

// Delete removes the element with the given uuid.
func (s *Scene) Delete(uuid string) bool {
	return s.DeleteByPosition(s.Position(uuid))
}

// Move relocates the element at from so that it ends up at to. Moving an element into its
// own subtree is refused.
func (s *Scene) Move(from, to Position) bool {
	elem := s.FindByPosition(from)
	if elem == nil || len(to) == 0 {
		return false
	}
	if len(to) >= len(from) && slices.Equal(from, to[:len(from)]) {
		return false
	}

	uuid := elem.UUID
	// Both lists are resolved against the original tree. Insert first, then delete the
	// original by identity.
	origin := s.listAt(from[:len(from)-1])
	list := s.listAt(to[:len(to)-1])
	if list == nil {
		return false
	}
	idx := to[len(to)-1]
	if idx < 0 || idx > len(*list) {
		return false
	}
	*list = slices.Insert(*list, idx, elem)

	for i, e := range *origin {
		if e == elem && !(origin == list && i == idx) {
			*origin = slices.Delete(*origin, i, i+1)
			break
		}
	}
	s.Reindex()
	return s.Find(uuid) != nil
}

// ElementPatch is a partial update; nil fields are left unchanged.
type ElementPatch struct {
	Name       *string
	X, Y       *float64
	W, H       *float64
	Angle      *float64
	Operations *Operations
}

// Update applies patch to the element with the given uuid. A deep-resize group scales its
// descendants when its extents change.
func (s *Scene) Update(uuid string, patch ElementPatch) *Element {
	elem := s.Find(uuid)
	if elem == nil {
		return nil
	}
	if elem.IsGroup() && elem.Operations.DeepResize && (patch.W != nil || patch.H != nil) {
		w, h := elem.W, elem.H
		if patch.W != nil && *patch.W > 0 {
			w = *patch.W
		}
		if patch.H != nil && *patch.H > 0 {
			h = *patch.H
		}
		elem.ResizeDeep(w, h)
	}
	if patch.Name != nil {
		elem.Name = *patch.Name
	}
	if patch.X != nil {
		elem.X = *patch.X
	}
	if patch.Y != nil {
		elem.Y = *patch.Y
	}
	if patch.W != nil {
		elem.W = *patch.W
	}
	if patch.H != nil {
		elem.H = *patch.H
	}
	if patch.Angle != nil {
		elem.Angle = *patch.Angle
	}
	if patch.Operations != nil {
		elem.Operations = *patch.Operations
	}
	return elem
}

// ContentBounds returns the bounding box of the rotated root elements in model space.
func (s *Scene) ContentBounds() geom.Rect {
	var bounds geom.Rect
	for _, elem := range s.Data().Elements {
		if !elem.Visible() {
			continue
		}
		bounds = bounds.Union(geom.ElementVertexes(elem.Size()).Bounds())
	}
	return bounds
}

// ResizeDeep sets the element extents to w x h and scales every descendant's rectangle by
// the same ratios. Zero original extents leave descendants untouched on that axis.
func (e *Element) ResizeDeep(w, h float64) {
	rx, ry := 1.0, 1.0
	if e.W != 0 {
		rx = w / e.W
	}
	if e.H != 0 {
		ry = h / e.H
	}
	e.W, e.H = w, h
	scaleDescendants(e.Children(), rx, ry)
}

func scaleDescendants(list []*Element, rx, ry float64) {
	for _, child := range list {
		child.X *= rx
		child.Y *= ry
		child.W *= rx
		child.H *= ry
		scaleDescendants(child.Children(), rx, ry)
	}
}
