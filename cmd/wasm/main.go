//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/hexpanel/hexpanel/internal/engine"
)

var (
	eng         *engine.Engine
	afterDrawFn js.Value
)

func main() {
	eng = engine.NewEngine()

	// Create the engine API object
	hexpanelEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	hexpanelEngine.Set("loadDocument", js.FuncOf(loadDocument))
	hexpanelEngine.Set("loadSample", js.FuncOf(loadSample))
	hexpanelEngine.Set("resize", js.FuncOf(resize))
	hexpanelEngine.Set("setSelection", js.FuncOf(setSelection))
	hexpanelEngine.Set("onAfterDraw", js.FuncOf(onAfterDraw))

	// --- Queries (frontend ← backend) ---
	hexpanelEngine.Set("render", js.FuncOf(render))
	hexpanelEngine.Set("hitTest", js.FuncOf(hitTest))
	hexpanelEngine.Set("exportSVG", js.FuncOf(exportSVG))
	hexpanelEngine.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	hexpanelEngine.Set("getDocument", js.FuncOf(getDocument))
	hexpanelEngine.Set("getSelection", js.FuncOf(getSelection))

	// Register on global scope
	js.Global().Set("hexpanelEngine", hexpanelEngine)

	// Signal that WASM is ready
	js.Global().Set("hexpanelWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func result(err error) interface{} {
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document JSON"})
	}
	return result(eng.LoadDocument(args[0].String()))
}

func loadSample(this js.Value, args []js.Value) interface{} {
	name := "side-panel"
	if len(args) > 0 && args[0].Type() == js.TypeString {
		name = args[0].String()
	}
	return result(eng.LoadSample(name))
}

// resize is wired to the host surface's resize event.
func resize(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.Resize(args[0].Float(), args[1].Float())
	return nil
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		eng.SetSelection(nil)
		return nil
	}

	arr := args[0]
	length := arr.Length()
	ids := make([]string, length)
	for i := 0; i < length; i++ {
		ids[i] = arr.Index(i).String()
	}
	eng.SetSelection(ids)
	return nil
}

// onAfterDraw registers a callback that receives the SVG of every redraw,
// for the download link. Passing null unregisters it.
func onAfterDraw(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeFunction {
		afterDrawFn = js.Undefined()
		eng.SetAfterDraw(nil)
		return nil
	}
	afterDrawFn = args[0]
	eng.SetAfterDraw(func(svg string) {
		afterDrawFn.Invoke(svg)
	})
	return nil
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	x := args[0].Float()
	y := args[1].Float()
	return js.ValueOf(eng.HitTest(x, y))
}

func exportSVG(this js.Value, args []js.Value) interface{} {
	svg, err := eng.ExportSVG()
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(svg)
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelectionBounds())
}

func getDocument(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetDocument())
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelection())
}
