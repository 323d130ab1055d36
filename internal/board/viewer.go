package board

import (
	"math"
	"sync"

	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/geom"
)

// FrameStatus is the state of the viewer's paint loop.
type FrameStatus int

const (
	FrameFree FrameStatus = iota
	FrameDrawing
	FrameComplete
)

func (s FrameStatus) String() string {
	switch s {
	case FrameFree:
		return "free"
	case FrameDrawing:
		return "drawing"
	case FrameComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Renderer paints a frame. BeginFrame and EndFrame bracket every pass; middlewares draw their
// affordances between BeginFrame and DrawData.
type Renderer interface {
	BeginFrame()
	DrawData(scene *document.Scene, vsi geom.ViewScaleInfo, vsz geom.ViewSizeInfo)
	EndFrame()
}

// Viewer turns redraw requests into paint passes. Requests are queued as snapshots; at most one
// pass runs at a time and a request arriving mid-pass is drained after it. Each pass paints the
// newest queued snapshot, so bursts of requests coalesce into one paint.
type Viewer[S Cloner[S]] struct {
	sharer     *Sharer[S]
	renderer   Renderer
	beforeDraw func(Snapshot[S])
	// requestFrame schedules fn on the next display refresh.
	requestFrame func(fn func())

	mu     sync.Mutex
	queue  []Snapshot[S]
	status FrameStatus
}

func NewViewer[S Cloner[S]](sharer *Sharer[S], renderer Renderer, beforeDraw func(Snapshot[S]), requestFrame func(func())) *Viewer[S] {
	if requestFrame == nil {
		requestFrame = func(fn func()) { fn() }
	}
	return &Viewer[S]{
		sharer:       sharer,
		renderer:     renderer,
		beforeDraw:   beforeDraw,
		requestFrame: requestFrame,
	}
}

// DrawFrame queues a snapshot of the current state and starts a pass when none is running.
func (v *Viewer[S]) DrawFrame() {
	v.mu.Lock()
	v.queue = append(v.queue, v.sharer.Snapshot())
	v.mu.Unlock()
	v.drawAnimationFrame()
}

func (v *Viewer[S]) drawAnimationFrame() {
	v.mu.Lock()
	if v.status == FrameDrawing || len(v.queue) == 0 {
		v.mu.Unlock()
		return
	}
	v.status = FrameDrawing
	v.mu.Unlock()

	v.requestFrame(func() {
		v.mu.Lock()
		snapshot := v.queue[len(v.queue)-1]
		v.queue = v.queue[:0]
		v.mu.Unlock()

		v.paint(snapshot)

		v.mu.Lock()
		if len(v.queue) == 0 {
			v.status = FrameComplete
		} else {
			v.status = FrameFree
		}
		pending := len(v.queue) > 0
		v.mu.Unlock()

		if pending {
			v.drawAnimationFrame()
		}
	})
}

func (v *Viewer[S]) paint(snapshot Snapshot[S]) {
	if v.renderer == nil {
		return
	}
	v.renderer.BeginFrame()
	if v.beforeDraw != nil {
		v.beforeDraw(snapshot)
	}
	if snapshot.Active.Data != nil {
		v.renderer.DrawData(snapshot.Active.Data, snapshot.Active.ViewScaleInfo, snapshot.Active.ViewSizeInfo)
	}
	v.renderer.EndFrame()
}

// Status returns the paint loop state.
func (v *Viewer[S]) Status() FrameStatus {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

// Scale zooms to scale keeping the view-space point fixed on screen.
func (v *Viewer[S]) Scale(scale float64, point geom.Point) geom.ViewScaleInfo {
	if scale <= 0 {
		return v.sharer.ViewScaleInfo()
	}
	vsi := v.sharer.ViewScaleInfo()
	model := vsi.ModelPoint(point)
	vsi.Scale = scale
	vsi.OffsetLeft = point.X - model.X*scale
	vsi.OffsetTop = point.Y - model.Y*scale
	vsi = v.withOuterOffsets(vsi)
	v.sharer.SetViewScaleInfo(vsi)
	return vsi
}

// Scroll moves the view by a view-space distance.
func (v *Viewer[S]) Scroll(dx, dy float64) geom.ViewScaleInfo {
	vsi := v.sharer.ViewScaleInfo()
	vsi.OffsetLeft += dx
	vsi.OffsetTop += dy
	vsi = v.withOuterOffsets(vsi)
	v.sharer.SetViewScaleInfo(vsi)
	return vsi
}

// Resize updates the viewport size, keeping the context size.
func (v *Viewer[S]) Resize(width, height, devicePixelRatio float64) geom.ViewSizeInfo {
	vsz := v.sharer.ViewSizeInfo()
	vsz.Width, vsz.Height = width, height
	if devicePixelRatio > 0 {
		vsz.DevicePixelRatio = devicePixelRatio
	}
	v.sharer.SetViewSizeInfo(vsz)
	v.sharer.SetViewScaleInfo(v.withOuterOffsets(v.sharer.ViewScaleInfo()))
	return vsz
}

// ResetContextSize sets the context extents to cover the scene content and the viewport.
func (v *Viewer[S]) ResetContextSize() geom.ViewSizeInfo {
	vsz := v.sharer.ViewSizeInfo()
	bounds := v.sharer.Scene().ContentBounds()
	vsz.ContextWidth = math.Max(vsz.Width, bounds.X+bounds.Width)
	vsz.ContextHeight = math.Max(vsz.Height, bounds.Y+bounds.Height)
	v.sharer.SetViewSizeInfo(vsz)
	v.sharer.SetViewScaleInfo(v.withOuterOffsets(v.sharer.ViewScaleInfo()))
	return vsz
}

// withOuterOffsets derives the right and bottom offsets: the distance from the scaled context
// edge to the viewport edge.
func (v *Viewer[S]) withOuterOffsets(vsi geom.ViewScaleInfo) geom.ViewScaleInfo {
	vsz := v.sharer.ViewSizeInfo()
	scale := vsi.Scale
	if scale <= 0 {
		scale = 1
	}
	vsi.OffsetRight = vsz.Width - (vsi.OffsetLeft + vsz.ContextWidth*scale)
	vsi.OffsetBottom = vsz.Height - (vsi.OffsetTop + vsz.ContextHeight*scale)
	return vsi
}
