package board

import (
	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/geom"
)

// Cloner is implemented by shared state that can be copied into a frame snapshot.
type Cloner[S any] interface {
	Clone() S
}

// ActiveStore is the board-level data every middleware reads: the scene and the view mapping.
type ActiveStore struct {
	Data          *document.Scene
	ViewScaleInfo geom.ViewScaleInfo
	ViewSizeInfo  geom.ViewSizeInfo
}

// Snapshot is the state a frame is painted from. Active.Data points at the live scene;
// Shared is a copy taken when the frame was requested.
type Snapshot[S any] struct {
	Active ActiveStore
	Shared S
}

// Sharer holds the active store and the typed state shared between middlewares and their
// render hooks. It has no lifecycle beyond the board that owns it.
type Sharer[S Cloner[S]] struct {
	active ActiveStore
	shared S
}

func NewSharer[S Cloner[S]](shared S) *Sharer[S] {
	return &Sharer[S]{
		active: ActiveStore{ViewScaleInfo: geom.DefaultViewScaleInfo()},
		shared: shared,
	}
}

func (s *Sharer[S]) Scene() *document.Scene {
	return s.active.Data
}

func (s *Sharer[S]) SetScene(scene *document.Scene) {
	s.active.Data = scene
}

func (s *Sharer[S]) ViewScaleInfo() geom.ViewScaleInfo {
	return s.active.ViewScaleInfo
}

func (s *Sharer[S]) SetViewScaleInfo(vsi geom.ViewScaleInfo) {
	s.active.ViewScaleInfo = vsi
}

func (s *Sharer[S]) ViewSizeInfo() geom.ViewSizeInfo {
	return s.active.ViewSizeInfo
}

func (s *Sharer[S]) SetViewSizeInfo(vsz geom.ViewSizeInfo) {
	s.active.ViewSizeInfo = vsz
}

// Shared returns the live shared state. Only the event loop may write through it.
func (s *Sharer[S]) Shared() S {
	return s.shared
}

// Snapshot copies the shared state for painting.
func (s *Sharer[S]) Snapshot() Snapshot[S] {
	return Snapshot[S]{Active: s.active, Shared: s.shared.Clone()}
}
