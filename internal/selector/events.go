package selector

import (
	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/geom"
)

// SelectEvent reports a selection made with the pointer.
type SelectEvent struct {
	UUIDs []string
}

// SelectRequest asks the selector to select elements by uuid or, when UUIDs is empty, by
// position. The group context becomes the ancestors of the first element found.
type SelectRequest struct {
	UUIDs     []string
	Positions []document.Position
}

// ClearSelectRequest asks the selector to drop the selection and leave any group.
type ClearSelectRequest struct{}

// TextEditEvent is emitted when a text element is double clicked.
type TextEditEvent struct {
	Element       *document.Element
	Position      document.Position
	GroupQueue    []*document.Element
	ViewScaleInfo geom.ViewScaleInfo
}
