package selector

import (
	"log/slog"
	"slices"

	"github.com/inamate/board/internal/board"
	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/engine"
	"github.com/inamate/board/internal/geom"
	"github.com/inamate/board/internal/render"
)

const Name = "selector"

type Options struct {
	// ControllerSize is the side of a resize handle in view pixels.
	ControllerSize float64
	// MinResizeSize is the smallest extent a resize can produce.
	MinResizeSize float64
	// Helper receives the selection affordances every frame; nil disables drawing.
	Helper *render.Layer
}

// Selector is the pointer state machine that selects, drags, resizes and marquee-selects
// elements, and drills into groups.
type Selector struct {
	ctx    board.Context[*State]
	opts   Options
	logger *slog.Logger

	prevPoint *geom.Point
	moved     bool
	cursor    string
	offs      []func()
}

var _ board.Middleware[*State] = (*Selector)(nil)

func New(ctx board.Context[*State], opts Options) *Selector {
	if opts.ControllerSize <= 0 {
		opts.ControllerSize = engine.DefaultControllerSize
	}
	if opts.MinResizeSize <= 0 {
		opts.MinResizeSize = engine.DefaultMinSize
	}
	logger := ctx.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{
		ctx:    ctx,
		opts:   opts,
		logger: logger.With("middleware", Name),
	}
}

func (s *Selector) Name() string { return Name }

// Use subscribes to selection requests.
func (s *Selector) Use() {
	s.offs = append(s.offs,
		board.On(s.ctx.Events, s.onSelectRequest),
		board.On(s.ctx.Events, func(ClearSelectRequest) {
			s.state().Clear()
			s.ctx.DrawFrame()
		}),
	)
}

// Disuse unsubscribes and drops all interaction state.
func (s *Selector) Disuse() {
	for _, off := range s.offs {
		off()
	}
	s.offs = nil
	s.prevPoint = nil
	s.state().Clear()
}

func (s *Selector) state() *State {
	return s.ctx.Sharer.Shared()
}

func (s *Selector) scene() *document.Scene {
	return s.ctx.Sharer.Scene()
}

func (s *Selector) viewScaleInfo() geom.ViewScaleInfo {
	return s.ctx.Sharer.ViewScaleInfo()
}

func (s *Selector) controllerFor(elem *document.Element) *engine.SizeController {
	return engine.CalcSizeController(elem, s.state().GroupQueue, s.opts.ControllerSize, s.viewScaleInfo())
}

func (s *Selector) setGroupQueue(queue []*document.Element) {
	st := s.state()
	st.GroupQueue = queue
	st.GroupQueueVertexesList = engine.GroupQueueVertexesList(queue)
}

// updateSelectedElementList stores the selection with its derived geometry. A controller exists
// only for a single element. SelectEvent fires when trigger is set and the selection changed.
func (s *Selector) updateSelectedElementList(list []*document.Element, trigger bool) {
	st := s.state()
	before := st.SelectedUUIDs()
	scene := s.scene()

	st.SelectedElementList = list
	st.SelectedElementListVertexes = st.SelectedElementListVertexes[:0]
	for _, elem := range list {
		st.SelectedElementListVertexes = append(st.SelectedElementListVertexes,
			engine.ElementVertexesInGroup(elem, scene.GroupQueue(elem.UUID)))
	}
	st.SelectedElementController = nil
	if len(list) == 1 {
		st.SelectedElementController = s.controllerFor(list[0])
	}
	st.SelectedListArea = engine.SelectedElementsArea(scene, list, s.viewScaleInfo())

	if after := st.SelectedUUIDs(); trigger && !slices.Equal(before, after) {
		board.Emit(s.ctx.Events, SelectEvent{UUIDs: after})
	}
}

// pointTarget resolves p against the current selection. The handle layout is recomputed so it
// follows view scale changes.
func (s *Selector) pointTarget(p geom.Point) engine.PointTarget {
	st := s.state()
	vsi := s.viewScaleInfo()
	opts := engine.PointTargetOptions{
		Scene:            s.scene(),
		SelectedElements: st.SelectedElementList,
		ViewScaleInfo:    vsi,
		GroupQueue:       st.GroupQueue,
	}
	switch len(st.SelectedElementList) {
	case 0:
	case 1:
		opts.Controller = s.controllerFor(st.SelectedElementList[0])
	default:
		opts.AreaSize = engine.SelectedElementsArea(s.scene(), st.SelectedElementList, vsi)
	}
	return engine.GetPointTarget(p, opts)
}

func lockedTarget(target engine.PointTarget) bool {
	return target.Element().Locked()
}

// trace logs a mode change made by hook.
func (s *Selector) trace(hook string) func() {
	before := s.state().ActionType
	return func() {
		if after := s.state().ActionType; after != before {
			s.logger.Debug("selector transition", "hook", hook, "from", before.String(), "to", after.String())
		}
	}
}

func (s *Selector) PointStart(e board.PointEvent) {
	defer s.trace("pointStart")()
	st := s.state()
	p := e.Point
	s.prevPoint = &p
	s.moved = false

	if len(st.GroupQueue) > 0 {
		if engine.IsPointInActiveGroup(p, st.GroupQueue, s.viewScaleInfo()) {
			target := s.pointTarget(p)
			if lockedTarget(target) {
				return
			}
			if handle, ok := target.Type.ResizeType(); ok {
				st.ResizeType = handle
				st.ActionType = ActionResize
			} else if target.Type == engine.PointTargetOverElement {
				s.updateSelectedElementList(target.Elements, true)
				st.ActionType = ActionDrag
			} else {
				st.clearSelection()
			}
			s.ctx.DrawFrame()
			return
		}
		// Pressing outside the active group leaves it.
		st.Clear()
	}

	target := s.pointTarget(p)
	if lockedTarget(target) {
		return
	}
	if handle, ok := target.Type.ResizeType(); ok {
		st.ResizeType = handle
		st.ActionType = ActionResize
	} else {
		switch target.Type {
		case engine.PointTargetListArea:
			st.ActionType = ActionDragList
		case engine.PointTargetOverElement:
			s.updateSelectedElementList(target.Elements, true)
			st.ActionType = ActionDrag
		default:
			st.Clear()
			start, end := p, p
			st.ActionType = ActionArea
			st.AreaStart, st.AreaEnd = &start, &end
		}
	}
	s.ctx.DrawFrame()
}

func (s *Selector) PointMove(e board.PointEvent) {
	st := s.state()
	end := e.Point
	start := s.prevPoint
	s.prevPoint = &end
	if start == nil {
		return
	}
	vsi := s.viewScaleInfo()

	switch st.ActionType {
	case ActionDrag:
		if len(st.SelectedElementList) != 1 || st.SelectedElementList[0].Locked() {
			return
		}
		elem := st.SelectedElementList[0]
		dx, dy := vsi.ModelDelta(engine.RotateDeltaInGroup(*start, end, st.GroupQueue))
		elem.X += dx
		elem.Y += dy
		s.moved = true
		s.updateSelectedElementList(st.SelectedElementList, false)
		s.ctx.DrawFrame()

	case ActionDragList:
		dx, dy := vsi.ModelDelta(end.X-start.X, end.Y-start.Y)
		for _, elem := range st.SelectedElementList {
			if elem.Locked() {
				continue
			}
			elem.X += dx
			elem.Y += dy
		}
		s.moved = true
		s.updateSelectedElementList(st.SelectedElementList, false)
		s.ctx.DrawFrame()

	case ActionResize:
		if len(st.SelectedElementList) != 1 || !st.ResizeType.Valid() {
			return
		}
		elem := st.SelectedElementList[0]
		dx, dy := engine.RotateDeltaInGroup(*start, end, st.GroupQueue)
		size := engine.Resize(elem.Size(), engine.ResizeOptions{
			Scale:     vsi.Scale,
			End:       geom.Point{X: dx, Y: dy},
			Type:      st.ResizeType,
			MinSize:   s.opts.MinResizeSize,
			KeepRatio: elem.Operations.LimitRatio,
		})
		if elem.IsGroup() && elem.Operations.DeepResize {
			elem.ResizeDeep(size.W, size.H)
		}
		elem.SetSize(size)
		s.moved = true
		s.updateSelectedElementList(st.SelectedElementList, false)
		s.ctx.DrawFrame()

	case ActionArea:
		st.AreaEnd = &end
		s.ctx.DrawFrame()
	}
}

func (s *Selector) PointEnd(e board.PointEvent) {
	defer s.trace("pointEnd")()
	st := s.state()
	end := e.Point
	s.prevPoint = nil
	moved := s.moved
	s.moved = false

	switch st.ActionType {
	case ActionResize:
		st.ResizeType = ""
		st.ActionType = ActionSelect
		if moved {
			s.emitChange(board.ChangeResizeElement)
		}
		s.ctx.DrawFrame()
		return

	case ActionArea:
		var list []*document.Element
		if st.AreaStart != nil {
			list = engine.ElementsInArea(s.scene(), *st.AreaStart, end, s.viewScaleInfo())
		}
		st.AreaStart, st.AreaEnd = nil, nil
		if len(list) > 0 {
			s.updateSelectedElementList(list, true)
			st.ActionType = ActionDragList
		} else {
			st.clearSelection()
		}
		s.ctx.DrawFrame()
		return

	case ActionDragList:
		st.ActionType = ActionDragListEnd
		s.updateSelectedElementList(st.SelectedElementList, false)
		s.ctx.Viewer.ResetContextSize()
		s.emitChange(board.ChangeDragElement)
		s.ctx.DrawFrame()
		return

	case ActionDrag:
		if moved {
			s.ctx.Viewer.ResetContextSize()
			s.emitChange(board.ChangeDragElement)
		}
	}

	// The selection made on press stays while the release lands on a root element.
	if len(st.SelectedElementList) > 0 && engine.PointElement(s.scene(), end, s.viewScaleInfo()) != nil {
		st.ActionType = ActionSelect
	} else {
		st.clearSelection()
	}
	s.ctx.DrawFrame()
}

func (s *Selector) PointLeave(board.PointEvent) {
	defer s.trace("pointLeave")()
	s.prevPoint = nil
	s.moved = false
	s.state().Clear()
	s.ctx.DrawFrame()
}

func (s *Selector) DoubleClick(e board.PointEvent) {
	defer s.trace("doubleClick")()
	st := s.state()
	target := s.pointTarget(e.Point)
	elem := target.Element()
	if target.Type != engine.PointTargetOverElement || elem == nil || elem.Locked() {
		return
	}

	switch {
	case elem.IsGroup():
		queue := st.GroupQueue
		if len(queue) == 0 || queue[len(queue)-1].Contains(elem) {
			queue = append(slices.Clone(queue), elem)
		} else {
			queue = nil
		}
		st.clearSelection()
		s.setGroupQueue(queue)
		s.logger.Debug("group queue changed", "depth", len(queue), "group", elem.UUID)
		s.ctx.DrawFrame()

	case elem.Type == document.ElementTypeText:
		board.Emit(s.ctx.Events, TextEditEvent{
			Element:       elem,
			Position:      s.scene().Position(elem.UUID),
			GroupQueue:    slices.Clone(st.GroupQueue),
			ViewScaleInfo: s.viewScaleInfo(),
		})
	}
}

func (s *Selector) Hover(e board.PointEvent) {
	st := s.state()
	if st.ActionType.busy() {
		if st.HoverElement != nil {
			st.HoverElement = nil
			st.HoverElementVertexes = nil
			s.ctx.DrawFrame()
		}
		return
	}
	target := s.pointTarget(e.Point)
	s.emitCursor(target)

	var hover *document.Element
	var vertexes *geom.Vertexes
	if target.Type == engine.PointTargetOverElement && target.Element() != nil {
		hover = target.Element()
		v := target.ElementVertexesList[0]
		vertexes = &v
	}
	if hover == st.HoverElement {
		return
	}
	st.HoverElement = hover
	st.HoverElementVertexes = vertexes
	s.ctx.DrawFrame()
}

func (s *Selector) emitCursor(target engine.PointTarget) {
	cursor := string(target.Type)
	if cursor == s.cursor {
		return
	}
	s.cursor = cursor
	var id string
	if elem := target.Element(); elem != nil {
		id = elem.UUID
	}
	board.Emit(s.ctx.Events, board.CursorEvent{Type: cursor, ElementID: id})
}

func (s *Selector) emitChange(t board.ChangeType) {
	board.Emit(s.ctx.Events, board.ChangeEvent{Type: t, Data: s.scene()})
}

func (s *Selector) onSelectRequest(req SelectRequest) {
	scene := s.scene()
	var list []*document.Element
	if len(req.UUIDs) > 0 {
		list = scene.FindAll(req.UUIDs)
	} else {
		list = scene.FindByPositions(req.Positions)
	}
	if len(list) == 0 {
		return
	}
	// A selection lives in one group context: keep the siblings of the first element.
	parent := scene.Parent(list[0].UUID)
	list = slices.DeleteFunc(list, func(elem *document.Element) bool {
		return scene.Parent(elem.UUID) != parent
	})

	st := s.state()
	st.Clear()
	s.setGroupQueue(scene.GroupQueue(list[0].UUID))
	s.updateSelectedElementList(list, false)
	if len(list) == 1 {
		st.ActionType = ActionSelect
	} else {
		st.ActionType = ActionDragListEnd
	}
	s.ctx.DrawFrame()
}
