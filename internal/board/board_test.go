package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/geom"
)

type counterState struct {
	N int
}

func (s *counterState) Clone() *counterState {
	c := *s
	return &c
}

type recordingRenderer struct {
	frames []string
	scenes int
}

func (r *recordingRenderer) BeginFrame() { r.frames = append(r.frames, "begin") }
func (r *recordingRenderer) DrawData(*document.Scene, geom.ViewScaleInfo, geom.ViewSizeInfo) {
	r.scenes++
}
func (r *recordingRenderer) EndFrame() { r.frames = append(r.frames, "end") }

type recordingMiddleware struct {
	name   string
	calls  []string
	seen   []int
	onDraw func()
}

func (m *recordingMiddleware) Name() string           { return m.name }
func (m *recordingMiddleware) Use()                   { m.calls = append(m.calls, "use") }
func (m *recordingMiddleware) Disuse()                { m.calls = append(m.calls, "disuse") }
func (m *recordingMiddleware) Hover(PointEvent)       { m.calls = append(m.calls, "hover") }
func (m *recordingMiddleware) PointStart(PointEvent)  { m.calls = append(m.calls, "start") }
func (m *recordingMiddleware) PointMove(PointEvent)   { m.calls = append(m.calls, "move") }
func (m *recordingMiddleware) PointEnd(PointEvent)    { m.calls = append(m.calls, "end") }
func (m *recordingMiddleware) PointLeave(PointEvent)  { m.calls = append(m.calls, "leave") }
func (m *recordingMiddleware) DoubleClick(PointEvent) { m.calls = append(m.calls, "dblclick") }
func (m *recordingMiddleware) BeforeDrawFrame(s Snapshot[*counterState]) {
	m.seen = append(m.seen, s.Shared.N)
	if m.onDraw != nil {
		m.onDraw()
	}
}

func TestBoardDispatchesInOrder(t *testing.T) {
	b := New(&counterState{}, Options{Renderer: &recordingRenderer{}})
	first := &recordingMiddleware{name: "first"}
	second := &recordingMiddleware{name: "second"}
	b.Use(first)
	b.Use(second)
	b.Use(&recordingMiddleware{name: "first"})

	e := PointEvent{Point: geom.Point{X: 1, Y: 2}}
	b.PointStart(e)
	b.PointMove(e)
	b.PointEnd(e)
	b.Hover(e)
	b.DoubleClick(e)
	b.PointLeave(e)

	want := []string{"use", "start", "move", "end", "hover", "dblclick", "leave"}
	assert.Equal(t, want, first.calls)
	assert.Equal(t, want, second.calls)

	b.Disuse("first")
	b.PointStart(e)
	assert.Equal(t, "disuse", first.calls[len(first.calls)-1])
	assert.Equal(t, "start", second.calls[len(second.calls)-1])
}

func TestViewerCoalescesQueuedFrames(t *testing.T) {
	renderer := &recordingRenderer{}
	var pending []func()
	b := New(&counterState{}, Options{
		Renderer:     renderer,
		RequestFrame: func(fn func()) { pending = append(pending, fn) },
	})
	mw := &recordingMiddleware{name: "mw"}
	b.Use(mw)
	b.SetData(document.NewScene(nil))

	for i := 1; i <= 3; i++ {
		b.Sharer().Shared().N = i
		b.DrawFrame()
	}
	require.Len(t, pending, 1)
	assert.Equal(t, FrameDrawing, b.Viewer().Status())

	pending[0]()
	assert.Equal(t, []int{3}, mw.seen, "the newest snapshot is painted")
	assert.Equal(t, FrameComplete, b.Viewer().Status())
	assert.Equal(t, []string{"begin", "end"}, renderer.frames)
	assert.Equal(t, 1, renderer.scenes)
}

func TestViewerDrainsRequestsMadeWhilePainting(t *testing.T) {
	renderer := &recordingRenderer{}
	b := New(&counterState{}, Options{Renderer: renderer})
	var redrawn bool
	mw := &recordingMiddleware{name: "mw"}
	mw.onDraw = func() {
		if !redrawn {
			redrawn = true
			b.Sharer().Shared().N = 7
			b.DrawFrame()
		}
	}
	b.Use(mw)

	b.DrawFrame()
	assert.Equal(t, []int{0, 7}, mw.seen)
	assert.Equal(t, FrameComplete, b.Viewer().Status())
	assert.Zero(t, renderer.scenes, "no scene set")
}

func TestSnapshotCopiesSharedState(t *testing.T) {
	s := NewSharer(&counterState{N: 1})
	snap := s.Snapshot()
	s.Shared().N = 5
	assert.Equal(t, 1, snap.Shared.N)
	assert.Equal(t, 1.0, snap.Active.ViewScaleInfo.Scale)
}

func TestViewerScaleKeepsPointFixed(t *testing.T) {
	b := New(&counterState{}, Options{})
	b.Resize(800, 600, 2)
	anchor := geom.Point{X: 200, Y: 100}
	before := b.Sharer().ViewScaleInfo().ModelPoint(anchor)

	vsi := b.Scale(2, anchor)
	assert.Equal(t, 2.0, vsi.Scale)
	assert.Equal(t, before, vsi.ModelPoint(anchor))

	vsi = b.Scroll(10, -20)
	assert.Equal(t, -190.0, vsi.OffsetLeft)
	assert.Equal(t, -120.0, vsi.OffsetTop)
	assert.Equal(t, 2.0, b.Sharer().ViewSizeInfo().DevicePixelRatio)

	assert.Equal(t, b.Sharer().ViewScaleInfo().Scale, b.Scale(0, anchor).Scale)
}

func TestResetContextSize(t *testing.T) {
	b := New(&counterState{}, Options{})
	b.Resize(100, 100, 1)
	b.SetData(document.NewScene([]*document.Element{
		{UUID: "a", Type: document.ElementTypeRect, X: 50, Y: 20, W: 200, H: 30, Detail: &document.RectDetail{}},
	}))
	vsz := b.Sharer().ViewSizeInfo()
	assert.Equal(t, 250.0, vsz.ContextWidth)
	assert.Equal(t, 100.0, vsz.ContextHeight)
	assert.Equal(t, -150.0, b.Sharer().ViewScaleInfo().OffsetRight)
}

func TestEventHub(t *testing.T) {
	h := NewEventHub()
	var got []string
	offA := On(h, func(e ChangeEvent) { got = append(got, "a:"+string(e.Type)) })
	On(h, func(e ChangeEvent) { got = append(got, "b:"+string(e.Type)) })
	On(h, func(e CursorEvent) { got = append(got, "cursor:"+e.Type) })

	Emit(h, ChangeEvent{Type: ChangeDragElement})
	Emit(h, CursorEvent{Type: "over-element"})
	assert.Equal(t, []string{"a:drag-element", "b:drag-element", "cursor:over-element"}, got)

	offA()
	offA()
	got = nil
	Emit(h, ChangeEvent{Type: ChangeResizeElement})
	assert.Equal(t, []string{"b:resize-element"}, got)
	assert.True(t, Has[CursorEvent](h))
	assert.False(t, Has[PointEvent](h))
}
