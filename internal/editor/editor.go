package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/inamate/board/internal/board"
	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/geom"
	"github.com/inamate/board/internal/render"
	"github.com/inamate/board/internal/selector"
)

var (
	ErrElementNotFound = errors.New("element not found")
	ErrInvalidPosition = errors.New("invalid position")
)

type Options struct {
	ControllerSize float64
	MinResizeSize  float64
	// RequestFrame schedules a paint callback; nil paints synchronously.
	RequestFrame func(func())
	// OnFrame receives every painted frame.
	OnFrame func(render.Frame)
	Logger  *slog.Logger
}

// Editor owns one board with the selector plugged in and the renderer it paints with.
// It is driven by a single goroutine: the wasm event loop or a session read loop.
type Editor struct {
	board    *board.Board[*selector.State]
	selector *selector.Selector
	renderer *render.SceneRenderer
	logger   *slog.Logger
}

// New creates an editor with an empty scene.
func New(opts Options) *Editor {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	e := &Editor{
		renderer: render.NewSceneRenderer(opts.OnFrame),
		logger:   logger,
	}
	e.board = board.New(selector.NewState(), board.Options{
		Renderer:     e.renderer,
		RequestFrame: opts.RequestFrame,
		Logger:       logger,
	})
	e.selector = selector.New(e.board.Context(), selector.Options{
		ControllerSize: opts.ControllerSize,
		MinResizeSize:  opts.MinResizeSize,
		Helper:         e.renderer.Helper(),
	})
	e.board.Use(e.selector)
	e.board.SetData(document.NewScene(nil))
	return e
}

// --- Scene ---

// LoadScene replaces the scene with decoded JSON and drops the selection.
func (e *Editor) LoadScene(jsonData []byte) error {
	scene, err := document.NewSceneFromJSON(jsonData)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	e.SetScene(scene)
	return nil
}

// LoadSampleScene loads the built-in sample scene.
func (e *Editor) LoadSampleScene() {
	e.SetScene(document.NewSampleScene())
}

// SetScene replaces the scene and drops the selection.
func (e *Editor) SetScene(scene *document.Scene) {
	e.board.Sharer().Shared().Clear()
	e.board.SetData(scene)
	e.logger.Debug("scene loaded", "elements", len(scene.Data().Elements))
}

func (e *Editor) Scene() *document.Scene {
	return e.board.Data()
}

// SceneJSON returns the full scene as JSON.
func (e *Editor) SceneJSON() string {
	data, err := json.Marshal(e.Scene().Data())
	if err != nil {
		return "{}"
	}
	return string(data)
}

// --- Pointer input (view-space coordinates) ---

func (e *Editor) PointStart(x, y float64) { e.board.PointStart(point(x, y)) }
func (e *Editor) PointMove(x, y float64)  { e.board.PointMove(point(x, y)) }
func (e *Editor) PointEnd(x, y float64)   { e.board.PointEnd(point(x, y)) }
func (e *Editor) PointLeave(x, y float64) { e.board.PointLeave(point(x, y)) }
func (e *Editor) Hover(x, y float64)      { e.board.Hover(point(x, y)) }
func (e *Editor) DoubleClick(x, y float64) {
	e.board.DoubleClick(point(x, y))
}

func point(x, y float64) board.PointEvent {
	return board.PointEvent{Point: geom.Point{X: x, Y: y}}
}

// --- View ---

// Scale zooms about the view-space point (x, y).
func (e *Editor) Scale(scale, x, y float64) geom.ViewScaleInfo {
	return e.board.Scale(scale, geom.Point{X: x, Y: y})
}

func (e *Editor) Scroll(dx, dy float64) geom.ViewScaleInfo {
	return e.board.Scroll(dx, dy)
}

func (e *Editor) Resize(width, height, devicePixelRatio float64) {
	e.board.Resize(width, height, devicePixelRatio)
}

func (e *Editor) ViewScaleInfo() geom.ViewScaleInfo {
	return e.board.Sharer().ViewScaleInfo()
}

func (e *Editor) ViewSizeInfo() geom.ViewSizeInfo {
	return e.board.Sharer().ViewSizeInfo()
}

// --- Selection ---

// Select selects elements by uuid, entering the group that contains the first one.
func (e *Editor) Select(uuids []string) {
	board.Emit(e.board.Events(), selector.SelectRequest{UUIDs: uuids})
}

// SelectPositions selects elements by tree position.
func (e *Editor) SelectPositions(positions []document.Position) {
	board.Emit(e.board.Events(), selector.SelectRequest{Positions: positions})
}

// ClearSelection drops the selection and leaves any group.
func (e *Editor) ClearSelection() {
	board.Emit(e.board.Events(), selector.ClearSelectRequest{})
}

// Selection returns the selected uuids.
func (e *Editor) Selection() []string {
	return e.State().SelectedUUIDs()
}

// State returns the live selector state.
func (e *Editor) State() *selector.State {
	return e.board.Sharer().Shared()
}

// --- Element edits ---

// AddElement creates an element of type t from base and inserts it at pos. A nil pos
// appends it to the root list, on top of everything else.
func (e *Editor) AddElement(t document.ElementType, base document.Element, pos document.Position) (*document.Element, error) {
	scene := e.Scene()
	elem, err := document.CreateElement(t, base, e.ViewScaleInfo(), e.ViewSizeInfo())
	if err != nil {
		return nil, fmt.Errorf("add element: %w", err)
	}
	if pos == nil {
		pos = document.Position{len(scene.Elements)}
	}
	if !scene.Insert(elem, pos) {
		return nil, fmt.Errorf("add element at %v: %w", pos, ErrInvalidPosition)
	}
	e.afterEdit(board.ChangeAddElement)
	return elem, nil
}

// DeleteElement removes an element and drops the selection.
func (e *Editor) DeleteElement(uuid string) error {
	scene := e.Scene()
	if scene.Find(uuid) == nil {
		return fmt.Errorf("delete element %q: %w", uuid, ErrElementNotFound)
	}
	e.State().Clear()
	scene.Delete(uuid)
	e.afterEdit(board.ChangeDeleteElement)
	return nil
}

// MoveElement relocates the element at from to the position to and drops the selection.
func (e *Editor) MoveElement(from, to document.Position) error {
	scene := e.Scene()
	if scene.FindByPosition(from) == nil {
		return fmt.Errorf("move element from %v: %w", from, ErrElementNotFound)
	}
	e.State().Clear()
	if !scene.Move(from, to) {
		return fmt.Errorf("move element to %v: %w", to, ErrInvalidPosition)
	}
	e.afterEdit(board.ChangeMoveElement)
	return nil
}

// UpdateElement patches an element. A selection that includes it is refreshed.
func (e *Editor) UpdateElement(uuid string, patch document.ElementPatch) (*document.Element, error) {
	elem := e.Scene().Update(uuid, patch)
	if elem == nil {
		return nil, fmt.Errorf("update element %q: %w", uuid, ErrElementNotFound)
	}
	if selected := e.Selection(); len(selected) > 0 {
		e.Select(selected)
	}
	e.afterEdit(board.ChangeUpdateElement)
	return elem, nil
}

func (e *Editor) afterEdit(t board.ChangeType) {
	e.board.Viewer().ResetContextSize()
	board.Emit(e.board.Events(), board.ChangeEvent{Type: t, Data: e.Scene()})
	e.board.DrawFrame()
}

// --- Output ---

// Events is the hub carrying change, cursor, select and text-edit events.
func (e *Editor) Events() *board.EventHub {
	return e.board.Events()
}

// DrawFrame requests a paint pass.
func (e *Editor) DrawFrame() {
	e.board.DrawFrame()
}

// Frame returns the most recently painted frame.
func (e *Editor) Frame() render.Frame {
	return e.renderer.LastFrame()
}

// Render returns the most recently painted frame as JSON.
func (e *Editor) Render() string {
	data, err := json.Marshal(e.Frame())
	if err != nil {
		return `{"scene":[],"helper":[]}`
	}
	return string(data)
}

// Status returns the paint loop state.
func (e *Editor) Status() board.FrameStatus {
	return e.board.Viewer().Status()
}
