package document

import (
	"github.com/inamate/board/internal/typeid"
)

// NewSampleScene returns a small board used by the demo server and the wasm harness: a
// plain rectangle, a rotated one, a text block, a locked background and a nested group.
func NewSampleScene() *Scene {
	groupID := typeid.NewGroupID()
	innerGroupID := typeid.NewGroupID()

	elements := []*Element{
		{
			UUID:       typeid.NewElementID(),
			Name:       "Background",
			Type:       ElementTypeRect,
			X:          0,
			Y:          0,
			W:          1280,
			H:          720,
			Operations: Operations{Lock: true},
			Detail:     &RectDetail{Background: "#1a1a2e"},
		},
		{
			UUID:   typeid.NewElementID(),
			Name:   "Card",
			Type:   ElementTypeRect,
			X:      200,
			Y:      200,
			W:      200,
			H:      150,
			Detail: &RectDetail{Background: "#e94560", BorderColor: "#000000", BorderWidth: 2, BorderRadius: 8},
		},
		{
			UUID:   typeid.NewElementID(),
			Name:   "Tilted",
			Type:   ElementTypeRect,
			X:      560,
			Y:      280,
			W:      160,
			H:      80,
			Angle:  30,
			Detail: &RectDetail{Background: "#0f3460"},
		},
		{
			UUID:   typeid.NewElementID(),
			Name:   "Title",
			Type:   ElementTypeText,
			X:      200,
			Y:      60,
			W:      400,
			H:      60,
			Detail: &TextDetail{Text: "Hello board", Color: "#ffffff", FontSize: 32, TextAlign: "left"},
		},
		{
			UUID:  groupID,
			Name:  "Badge",
			Type:  ElementTypeGroup,
			X:     860,
			Y:     180,
			W:     240,
			H:     240,
			Angle: 15,
			Detail: &GroupDetail{
				Children: []*Element{
					{
						UUID:   typeid.NewElementID(),
						Name:   "Badge ring",
						Type:   ElementTypeCircle,
						X:      0,
						Y:      0,
						W:      240,
						H:      240,
						Detail: &CircleDetail{Background: "#53d769", BorderColor: "#2d6a4f", BorderWidth: 4},
					},
					{
						UUID:       innerGroupID,
						Name:       "Badge label",
						Type:       ElementTypeGroup,
						X:          40,
						Y:          80,
						W:          160,
						H:          80,
						Operations: Operations{DeepResize: true},
						Detail: &GroupDetail{
							Children: []*Element{
								{
									UUID:   typeid.NewElementID(),
									Name:   "Label plate",
									Type:   ElementTypeRect,
									X:      0,
									Y:      0,
									W:      160,
									H:      80,
									Detail: &RectDetail{Background: "#f5a623", BorderRadius: 12},
								},
								{
									UUID:   typeid.NewElementID(),
									Name:   "Label text",
									Type:   ElementTypeText,
									X:      10,
									Y:      20,
									W:      140,
									H:      40,
									Detail: &TextDetail{Text: "NEW", Color: "#000000", FontSize: 28, TextAlign: "center"},
								},
							},
						},
					},
				},
			},
		},
	}
	return NewScene(elements)
}
