package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/inamate/board/internal/document"
)

var ErrUnknownMessage = errors.New("unknown message type")

func decode[T any](msg *Message) (T, error) {
	var payload T
	if len(msg.Payload) == 0 {
		return payload, nil
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("decode %s payload: %w", msg.Type, err)
	}
	return payload, nil
}

// handle applies one client message to the editor.
func (c *Client) handle(msg *Message) error {
	ed := c.editor

	switch msg.Type {
	case TypePointStart, TypePointMove, TypePointEnd, TypePointLeave, TypeHover, TypeDoubleClick:
		p, err := decode[PointPayload](msg)
		if err != nil {
			return err
		}
		switch msg.Type {
		case TypePointStart:
			ed.PointStart(p.X, p.Y)
		case TypePointMove:
			ed.PointMove(p.X, p.Y)
		case TypePointEnd:
			ed.PointEnd(p.X, p.Y)
		case TypePointLeave:
			ed.PointLeave(p.X, p.Y)
		case TypeHover:
			ed.Hover(p.X, p.Y)
		case TypeDoubleClick:
			ed.DoubleClick(p.X, p.Y)
		}

	case TypeViewScale:
		p, err := decode[ScalePayload](msg)
		if err != nil {
			return err
		}
		ed.Scale(p.Scale, p.X, p.Y)

	case TypeViewScroll:
		p, err := decode[ScrollPayload](msg)
		if err != nil {
			return err
		}
		ed.Scroll(p.DX, p.DY)

	case TypeViewResize:
		p, err := decode[ResizePayload](msg)
		if err != nil {
			return err
		}
		ed.Resize(p.Width, p.Height, p.DevicePixelRatio)

	case TypeSelect:
		p, err := decode[SelectPayload](msg)
		if err != nil {
			return err
		}
		if len(p.UUIDs) > 0 {
			ed.Select(p.UUIDs)
		} else {
			ed.SelectPositions(p.Positions)
		}

	case TypeSelectClear:
		ed.ClearSelection()

	case TypeElementAdd:
		p, err := decode[ElementAddPayload](msg)
		if err != nil {
			return err
		}
		base, err := p.element()
		if err != nil {
			return err
		}
		if _, err := ed.AddElement(p.Type, base, p.Position); err != nil {
			return err
		}

	case TypeElementDelete:
		p, err := decode[ElementDeletePayload](msg)
		if err != nil {
			return err
		}
		return ed.DeleteElement(p.UUID)

	case TypeElementMove:
		p, err := decode[ElementMovePayload](msg)
		if err != nil {
			return err
		}
		return ed.MoveElement(p.From, p.To)

	case TypeElementUpdate:
		p, err := decode[ElementUpdatePayload](msg)
		if err != nil {
			return err
		}
		_, err = ed.UpdateElement(p.UUID, document.ElementPatch{
			Name:       p.Name,
			X:          p.X,
			Y:          p.Y,
			W:          p.W,
			H:          p.H,
			Angle:      p.Angle,
			Operations: p.Operations,
		})
		return err

	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	return nil
}

// element builds the base element for CreateElement, decoding the detail for its type.
func (p ElementAddPayload) element() (document.Element, error) {
	detail, err := document.NewDetail(p.Type)
	if err != nil {
		return document.Element{}, err
	}
	if len(p.Detail) > 0 {
		if err := json.Unmarshal(p.Detail, detail); err != nil {
			return document.Element{}, fmt.Errorf("decode %s detail: %w", p.Type, err)
		}
	}
	return document.Element{
		Name:       p.Name,
		Type:       p.Type,
		X:          p.X,
		Y:          p.Y,
		W:          p.W,
		H:          p.H,
		Angle:      p.Angle,
		Operations: p.Operations,
		Detail:     detail,
	}, nil
}
