package selector

import (
	"slices"

	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/engine"
	"github.com/inamate/board/internal/geom"
)

// ActionType is the mode of the selection state machine.
type ActionType string

const (
	ActionNone        ActionType = ""
	ActionSelect      ActionType = "select"
	ActionDrag        ActionType = "drag"
	ActionDragList    ActionType = "drag-list"
	ActionDragListEnd ActionType = "drag-list-end"
	ActionResize      ActionType = "resize"
	ActionArea        ActionType = "area"
)

func (a ActionType) String() string {
	if a == ActionNone {
		return "null"
	}
	return string(a)
}

// busy reports whether a pointer gesture owns the board.
func (a ActionType) busy() bool {
	switch a {
	case ActionDrag, ActionDragList, ActionResize, ActionArea:
		return true
	}
	return false
}

// State is the interaction session state shared between the selector's pointer hooks and its
// render hook. Vertexes are in the root model frame; area points are view space.
type State struct {
	ActionType ActionType
	ResizeType engine.ResizeType

	AreaStart *geom.Point
	AreaEnd   *geom.Point

	GroupQueue             []*document.Element
	GroupQueueVertexesList []geom.Vertexes

	HoverElement         *document.Element
	HoverElementVertexes *geom.Vertexes

	SelectedElementList         []*document.Element
	SelectedElementListVertexes []geom.Vertexes
	SelectedElementController   *engine.SizeController
	// SelectedListArea is the view-space box around a multi-element selection.
	SelectedListArea *geom.Rect
}

func NewState() *State {
	return &State{}
}

// Clear resets every field, leaving the root context with nothing selected.
func (s *State) Clear() {
	*s = State{}
}

// clearSelection resets selection, hover, marquee and mode but keeps the group context.
func (s *State) clearSelection() {
	queue, queueVertexes := s.GroupQueue, s.GroupQueueVertexesList
	*s = State{GroupQueue: queue, GroupQueueVertexesList: queueVertexes}
}

// Clone copies the state for a frame snapshot. Elements are shared; slices and pointers to
// plain values are copied.
func (s *State) Clone() *State {
	c := *s
	c.GroupQueue = slices.Clone(s.GroupQueue)
	c.GroupQueueVertexesList = slices.Clone(s.GroupQueueVertexesList)
	c.SelectedElementList = slices.Clone(s.SelectedElementList)
	c.SelectedElementListVertexes = slices.Clone(s.SelectedElementListVertexes)
	c.AreaStart = clonePtr(s.AreaStart)
	c.AreaEnd = clonePtr(s.AreaEnd)
	c.HoverElementVertexes = clonePtr(s.HoverElementVertexes)
	c.SelectedListArea = clonePtr(s.SelectedListArea)
	if s.SelectedElementController != nil {
		ctrl := *s.SelectedElementController
		ctrl.Handles = slices.Clone(ctrl.Handles)
		c.SelectedElementController = &ctrl
	}
	return &c
}

// SelectedUUIDs returns the ids of the selected elements in selection order.
func (s *State) SelectedUUIDs() []string {
	ids := make([]string, 0, len(s.SelectedElementList))
	for _, elem := range s.SelectedElementList {
		ids = append(ids, elem.UUID)
	}
	return ids
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
