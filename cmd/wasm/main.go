//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/inamate/board/internal/board"
	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/editor"
	"github.com/inamate/board/internal/render"
	"github.com/inamate/board/internal/selector"
)

var (
	ed        *editor.Editor
	listeners = map[string]js.Value{}
)

func main() {
	ed = editor.New(editor.Options{
		RequestFrame: requestAnimationFrame,
		OnFrame:      onFrame,
	})
	subscribe()

	// Create the editor API object
	api := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	api.Set("loadScene", js.FuncOf(loadScene))
	api.Set("loadSampleScene", js.FuncOf(loadSampleScene))
	api.Set("pointStart", js.FuncOf(pointer(ed.PointStart)))
	api.Set("pointMove", js.FuncOf(pointer(ed.PointMove)))
	api.Set("pointEnd", js.FuncOf(pointer(ed.PointEnd)))
	api.Set("pointLeave", js.FuncOf(pointer(ed.PointLeave)))
	api.Set("hover", js.FuncOf(pointer(ed.Hover)))
	api.Set("doubleClick", js.FuncOf(pointer(ed.DoubleClick)))
	api.Set("scale", js.FuncOf(scale))
	api.Set("scroll", js.FuncOf(scroll))
	api.Set("resize", js.FuncOf(resize))
	api.Set("select", js.FuncOf(selectElements))
	api.Set("clearSelection", js.FuncOf(clearSelection))
	api.Set("addElement", js.FuncOf(addElement))
	api.Set("deleteElement", js.FuncOf(deleteElement))
	api.Set("on", js.FuncOf(on))

	// --- Queries (frontend ← backend) ---
	api.Set("render", js.FuncOf(renderFrame))
	api.Set("getScene", js.FuncOf(getScene))
	api.Set("getSelection", js.FuncOf(getSelection))

	// Register on global scope
	js.Global().Set("boardEditor", api)

	// Signal that WASM is ready
	js.Global().Set("boardWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func requestAnimationFrame(fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		cb.Release()
		fn()
		return nil
	})
	js.Global().Call("requestAnimationFrame", cb)
}

// emit calls the listener registered for name with a JSON payload.
func emit(name string, payload interface{}) {
	fn, ok := listeners[name]
	if !ok {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fn.Invoke(string(data))
}

func onFrame(frame render.Frame) {
	emit("frame", frame)
}

func subscribe() {
	events := ed.Events()
	board.On(events, func(e board.ChangeEvent) {
		emit("change", map[string]interface{}{"type": e.Type, "scene": e.Data.Data()})
	})
	board.On(events, func(e selector.SelectEvent) {
		emit("select", map[string]interface{}{"uuids": e.UUIDs})
	})
	board.On(events, func(e board.CursorEvent) {
		emit("cursor", map[string]interface{}{"cursor": e.Type, "elementId": e.ElementID})
	})
	board.On(events, func(e selector.TextEditEvent) {
		emit("text-edit", map[string]interface{}{
			"uuid":          e.Element.UUID,
			"position":      e.Position,
			"viewScaleInfo": e.ViewScaleInfo,
		})
	})
}

func errorResult(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{"error": msg})
}

func okResult() interface{} {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Command Handlers ---

func on(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 || args[1].Type() != js.TypeFunction {
		return errorResult("usage: on(event, fn)")
	}
	listeners[args[0].String()] = args[1]
	return nil
}

func loadScene(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("missing scene JSON")
	}
	if err := ed.LoadScene([]byte(args[0].String())); err != nil {
		return errorResult(err.Error())
	}
	return okResult()
}

func loadSampleScene(this js.Value, args []js.Value) interface{} {
	ed.LoadSampleScene()
	return okResult()
}

func pointer(fn func(x, y float64)) func(js.Value, []js.Value) interface{} {
	return func(this js.Value, args []js.Value) interface{} {
		if len(args) < 2 {
			return nil
		}
		fn(args[0].Float(), args[1].Float())
		return nil
	}
}

func scale(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	vsi := ed.Scale(args[0].Float(), args[1].Float(), args[2].Float())
	data, _ := json.Marshal(vsi)
	return string(data)
}

func scroll(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	vsi := ed.Scroll(args[0].Float(), args[1].Float())
	data, _ := json.Marshal(vsi)
	return string(data)
}

func resize(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	dpr := 1.0
	if len(args) > 2 {
		dpr = args[2].Float()
	}
	ed.Resize(args[0].Float(), args[1].Float(), dpr)
	return nil
}

func selectElements(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	var uuids []string
	if err := json.Unmarshal([]byte(args[0].String()), &uuids); err != nil {
		return errorResult("invalid uuid list: " + err.Error())
	}
	ed.Select(uuids)
	return nil
}

func clearSelection(this js.Value, args []js.Value) interface{} {
	ed.ClearSelection()
	return nil
}

// addElement(type, detailJSON?) creates an element sized to the viewport.
func addElement(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("missing element type")
	}
	t := document.ElementType(args[0].String())
	detail, err := document.NewDetail(t)
	if err != nil {
		return errorResult(err.Error())
	}
	if len(args) > 1 && args[1].Type() == js.TypeString {
		if err := json.Unmarshal([]byte(args[1].String()), detail); err != nil {
			return errorResult("invalid detail: " + err.Error())
		}
	}
	elem, err := ed.AddElement(t, document.Element{Detail: detail}, nil)
	if err != nil {
		return errorResult(err.Error())
	}
	return js.ValueOf(map[string]interface{}{"uuid": elem.UUID})
}

func deleteElement(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("missing uuid")
	}
	if err := ed.DeleteElement(args[0].String()); err != nil {
		return errorResult(err.Error())
	}
	return okResult()
}

// --- Query Handlers ---

func renderFrame(this js.Value, args []js.Value) interface{} {
	return ed.Render()
}

func getScene(this js.Value, args []js.Value) interface{} {
	return ed.SceneJSON()
}

func getSelection(this js.Value, args []js.Value) interface{} {
	data, _ := json.Marshal(ed.Selection())
	return string(data)
}
