package session

import (
	"encoding/json"

	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/geom"
)

type Message struct {
	Type     string          `json:"type"`
	BoardID  string          `json:"boardId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

const (
	// Client -> server: pointer input in view space
	TypePointStart  = "point.start"
	TypePointMove   = "point.move"
	TypePointEnd    = "point.end"
	TypePointLeave  = "point.leave"
	TypeHover       = "hover"
	TypeDoubleClick = "double-click"

	// Client -> server: view
	TypeViewScale  = "view.scale"
	TypeViewScroll = "view.scroll"
	TypeViewResize = "view.resize"

	// Client -> server: selection
	TypeSelect      = "select"
	TypeSelectClear = "select.clear"

	// Client -> server: element edits
	TypeElementAdd    = "element.add"
	TypeElementDelete = "element.delete"
	TypeElementMove   = "element.move"
	TypeElementUpdate = "element.update"

	// Server -> client
	TypeWelcome       = "welcome"
	TypePresenceJoin  = "presence.join"
	TypePresenceLeave = "presence.leave"
	TypeFrame         = "frame"
	TypeChange        = "change"
	TypeCursor        = "cursor"
	TypeTextEdit      = "text-edit"
	TypeError         = "error"
)

type PointPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ScalePayload zooms to Scale keeping the view point (X, Y) fixed.
type ScalePayload struct {
	Scale float64 `json:"scale"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type ScrollPayload struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

type ResizePayload struct {
	Width            float64 `json:"width"`
	Height           float64 `json:"height"`
	DevicePixelRatio float64 `json:"devicePixelRatio"`
}

// SelectPayload selects by uuid, or by position when UUIDs is empty. The server echoes it
// with the resulting selection when a pointer gesture changes it.
type SelectPayload struct {
	UUIDs     []string            `json:"uuids,omitempty"`
	Positions []document.Position `json:"positions,omitempty"`
}

// ElementAddPayload describes a new element. Zero extents size it to the viewport.
type ElementAddPayload struct {
	Type       document.ElementType `json:"type"`
	Name       string               `json:"name,omitempty"`
	X          float64              `json:"x"`
	Y          float64              `json:"y"`
	W          float64              `json:"w"`
	H          float64              `json:"h"`
	Angle      float64              `json:"angle,omitempty"`
	Operations document.Operations  `json:"operations"`
	Detail     json.RawMessage      `json:"detail,omitempty"`
	Position   document.Position    `json:"position,omitempty"`
}

type ElementDeletePayload struct {
	UUID string `json:"uuid"`
}

type ElementMovePayload struct {
	From document.Position `json:"from"`
	To   document.Position `json:"to"`
}

// ElementUpdatePayload patches an element; absent fields are left unchanged.
type ElementUpdatePayload struct {
	UUID       string               `json:"uuid"`
	Name       *string              `json:"name,omitempty"`
	X          *float64             `json:"x,omitempty"`
	Y          *float64             `json:"y,omitempty"`
	W          *float64             `json:"w,omitempty"`
	H          *float64             `json:"h,omitempty"`
	Angle      *float64             `json:"angle,omitempty"`
	Operations *document.Operations `json:"operations,omitempty"`
}

type WelcomePayload struct {
	ClientID string          `json:"clientId"`
	BoardID  string          `json:"boardId"`
	Clients  int             `json:"clients"`
	Scene    json.RawMessage `json:"scene"`
}

// PresencePayload announces a client joining or leaving; Clients is the room size after it.
type PresencePayload struct {
	ClientID string `json:"clientId"`
	Clients  int    `json:"clients"`
}

// ChangePayload carries the scene after an edit. ClientID names the client that made it.
type ChangePayload struct {
	Type     string          `json:"type"`
	ClientID string          `json:"clientId,omitempty"`
	Scene    json.RawMessage `json:"scene"`
}

type CursorPayload struct {
	Cursor    string `json:"cursor"`
	ElementID string `json:"elementId,omitempty"`
}

type TextEditPayload struct {
	UUID          string             `json:"uuid"`
	Position      document.Position  `json:"position"`
	GroupQueue    []string           `json:"groupQueue"`
	ViewScaleInfo geom.ViewScaleInfo `json:"viewScaleInfo"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
