package board

import (
	"log/slog"

	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/geom"
)

// PointEvent is a pointer position in view space.
type PointEvent struct {
	Point geom.Point
}

// Middleware is an interaction layer plugged into a board. Pointer hooks run in registration
// order on the board's event loop; BeforeDrawFrame runs inside every paint pass and must not
// mutate state.
type Middleware[S any] interface {
	Name() string
	Use()
	Disuse()
	Hover(e PointEvent)
	PointStart(e PointEvent)
	PointMove(e PointEvent)
	PointEnd(e PointEvent)
	PointLeave(e PointEvent)
	DoubleClick(e PointEvent)
	BeforeDrawFrame(snapshot Snapshot[S])
}

// Context is what a middleware gets from its board.
type Context[S Cloner[S]] struct {
	Sharer *Sharer[S]
	Events *EventHub
	Viewer *Viewer[S]
	Logger *slog.Logger
}

// DrawFrame requests a paint pass.
func (c Context[S]) DrawFrame() {
	c.Viewer.DrawFrame()
}

type Options struct {
	Renderer Renderer
	// RequestFrame schedules a paint callback; nil paints synchronously.
	RequestFrame func(func())
	Logger       *slog.Logger
}

// Board wires the shared store, the event hub and the viewer, and fans pointer events out to
// its middlewares. A board is driven by one goroutine at a time.
type Board[S Cloner[S]] struct {
	sharer      *Sharer[S]
	events      *EventHub
	viewer      *Viewer[S]
	logger      *slog.Logger
	middlewares []Middleware[S]
}

func New[S Cloner[S]](shared S, opts Options) *Board[S] {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	b := &Board[S]{
		sharer: NewSharer(shared),
		events: NewEventHub(),
		logger: logger,
	}
	b.viewer = NewViewer(b.sharer, opts.Renderer, b.beforeDrawFrame, opts.RequestFrame)
	return b
}

// Context returns the handles a middleware is constructed with.
func (b *Board[S]) Context() Context[S] {
	return Context[S]{Sharer: b.sharer, Events: b.events, Viewer: b.viewer, Logger: b.logger}
}

// Use registers mw and calls its Use hook. Registering the same name twice is a no-op.
func (b *Board[S]) Use(mw Middleware[S]) {
	for _, existing := range b.middlewares {
		if existing.Name() == mw.Name() {
			return
		}
	}
	b.middlewares = append(b.middlewares, mw)
	mw.Use()
	b.logger.Debug("middleware registered", "name", mw.Name())
}

// Disuse removes the middleware with the given name and calls its Disuse hook.
func (b *Board[S]) Disuse(name string) {
	for i, mw := range b.middlewares {
		if mw.Name() == name {
			b.middlewares = append(b.middlewares[:i:i], b.middlewares[i+1:]...)
			mw.Disuse()
			return
		}
	}
}

func (b *Board[S]) Sharer() *Sharer[S] { return b.sharer }
func (b *Board[S]) Events() *EventHub  { return b.events }
func (b *Board[S]) Viewer() *Viewer[S] { return b.viewer }

// SetData replaces the scene and repaints.
func (b *Board[S]) SetData(scene *document.Scene) {
	b.sharer.SetScene(scene)
	b.viewer.ResetContextSize()
	Emit(b.events, ChangeEvent{Type: ChangeSetData, Data: scene})
	b.viewer.DrawFrame()
}

func (b *Board[S]) Data() *document.Scene {
	return b.sharer.Scene()
}

// Scale zooms about a view-space point and repaints.
func (b *Board[S]) Scale(scale float64, point geom.Point) geom.ViewScaleInfo {
	vsi := b.viewer.Scale(scale, point)
	b.viewer.DrawFrame()
	return vsi
}

// Scroll pans the view and repaints.
func (b *Board[S]) Scroll(dx, dy float64) geom.ViewScaleInfo {
	vsi := b.viewer.Scroll(dx, dy)
	b.viewer.DrawFrame()
	return vsi
}

// Resize changes the viewport and repaints.
func (b *Board[S]) Resize(width, height, devicePixelRatio float64) {
	b.viewer.Resize(width, height, devicePixelRatio)
	b.viewer.DrawFrame()
}

func (b *Board[S]) DrawFrame() {
	b.viewer.DrawFrame()
}

func (b *Board[S]) Hover(e PointEvent) {
	for _, mw := range b.middlewares {
		mw.Hover(e)
	}
}

func (b *Board[S]) PointStart(e PointEvent) {
	for _, mw := range b.middlewares {
		mw.PointStart(e)
	}
}

func (b *Board[S]) PointMove(e PointEvent) {
	for _, mw := range b.middlewares {
		mw.PointMove(e)
	}
}

func (b *Board[S]) PointEnd(e PointEvent) {
	for _, mw := range b.middlewares {
		mw.PointEnd(e)
	}
}

func (b *Board[S]) PointLeave(e PointEvent) {
	for _, mw := range b.middlewares {
		mw.PointLeave(e)
	}
}

func (b *Board[S]) DoubleClick(e PointEvent) {
	for _, mw := range b.middlewares {
		mw.DoubleClick(e)
	}
}

func (b *Board[S]) beforeDrawFrame(snapshot Snapshot[S]) {
	for _, mw := range b.middlewares {
		mw.BeforeDrawFrame(snapshot)
	}
}
