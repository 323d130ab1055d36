package selector

import (
	"slices"

	"github.com/inamate/board/internal/board"
	"github.com/inamate/board/internal/engine"
	"github.com/inamate/board/internal/geom"
	"github.com/inamate/board/internal/render"
)

var (
	groupQueueStyle  = render.Style{Stroke: "#1973ba", StrokeWidth: 1, Dash: []float64{4, 4}}
	hoverStyle       = render.Style{Stroke: "#1973ba", StrokeWidth: 2}
	lockedHoverStyle = render.Style{Stroke: "#5b5959", StrokeWidth: 2, Dash: []float64{4, 4}}
	wrapperStyle     = render.Style{Stroke: "#1973ba", StrokeWidth: 1}
	handleStyle      = render.Style{Fill: "#ffffff", Stroke: "#1973ba", StrokeWidth: 1}
	areaStyle        = render.Style{Fill: "#1976d21c", Stroke: "#1976d2", StrokeWidth: 1}
	listAreaStyle    = render.Style{Fill: "#1976d20d", Stroke: "#1976d2", StrokeWidth: 1}
)

// BeforeDrawFrame paints group outlines, hover outline, marquee and selection handles onto the
// helper layer. Geometry is recomputed from the snapshot so it follows the current view.
func (s *Selector) BeforeDrawFrame(snapshot board.Snapshot[*State]) {
	layer := s.opts.Helper
	if layer == nil {
		return
	}
	st := snapshot.Shared
	scene := snapshot.Active.Data
	vsi := snapshot.Active.ViewScaleInfo

	for _, v := range engine.GroupQueueVertexesList(st.GroupQueue) {
		layer.Polygon(vsi.ViewVertexes(v), groupQueueStyle)
	}

	if hover := st.HoverElement; hover != nil && !st.ActionType.busy() &&
		!slices.Contains(st.SelectedElementList, hover) {
		style := hoverStyle
		if hover.Locked() {
			style = lockedHoverStyle
		}
		layer.Polygon(vsi.ViewVertexes(engine.ElementVertexesInGroup(hover, st.GroupQueue)), style)
	}

	if st.ActionType == ActionArea && st.AreaStart != nil && st.AreaEnd != nil {
		layer.Rect(geom.RectFromPoints(*st.AreaStart, *st.AreaEnd), areaStyle)
	}

	switch len(st.SelectedElementList) {
	case 0:
	case 1:
		elem := st.SelectedElementList[0]
		ctrl := engine.CalcSizeController(elem, st.GroupQueue, s.opts.ControllerSize, vsi)
		layer.Polygon(ctrl.ElementWrapper, wrapperStyle)
		if elem.Locked() {
			return
		}
		for _, h := range ctrl.Handles {
			layer.Polygon(h.Vertexes, handleStyle)
		}
	default:
		for _, elem := range st.SelectedElementList {
			v := engine.ElementVertexesInGroup(elem, scene.GroupQueue(elem.UUID))
			layer.Polygon(vsi.ViewVertexes(v), wrapperStyle)
		}
		if area := engine.SelectedElementsArea(scene, st.SelectedElementList, vsi); area != nil {
			layer.Rect(*area, listAreaStyle)
		}
	}
}
