package engine

import (
	"encoding/json"
	"fmt"

	"github.com/hexpanel/hexpanel/internal/document"
	"github.com/hexpanel/hexpanel/internal/geom"
	"github.com/hexpanel/hexpanel/internal/typeid"
)

// Engine owns a panel document and its scene graph. Any change to the panel
// or the viewport marks the scene dirty; the next Render rebuilds it from
// scratch, so the latest load or resize always wins.
type Engine struct {
	panel *document.Panel

	// Retained scene graph
	sceneGraph *SceneGraph

	// viewport is the host surface size; zero means "use the panel bounds".
	viewport geom.Size

	// Selection state (backend owns this)
	selection []string

	// Dirty flag - scene graph needs rebuild
	dirty bool

	// afterDraw receives the serialised SVG once per rebuild.
	afterDraw func(svg string)
}

// NewEngine creates a new engine instance.
func NewEngine() *Engine {
	return &Engine{
		sceneGraph: NewSceneGraph(),
		dirty:      true,
	}
}

// --- Commands (frontend → backend) ---

// LoadDocument parses, validates and loads a panel from JSON.
func (e *Engine) LoadDocument(jsonData string) error {
	panel, err := document.Parse([]byte(jsonData))
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	e.LoadPanel(panel)
	return nil
}

// LoadPanel loads an already validated panel.
func (e *Engine) LoadPanel(panel *document.Panel) {
	e.panel = panel
	e.selection = nil
	e.dirty = true
}

// LoadSample loads one of the built-in drawings.
func (e *Engine) LoadSample(name string) error {
	panel, err := document.NewSample(name, typeid.NewPanelID())
	if err != nil {
		return err
	}
	e.LoadPanel(panel)
	return nil
}

// Resize records a new host surface size and schedules a redraw.
func (e *Engine) Resize(width, height float64) {
	size := geom.Size{Width: width, Height: height}
	if size != e.viewport {
		e.viewport = size
		e.dirty = true
	}
}

// SetSelection sets the selected object IDs.
func (e *Engine) SetSelection(ids []string) {
	e.selection = ids
}

// SetAfterDraw registers fn to receive the exported SVG after every rebuild.
// Pass nil to stop exporting.
func (e *Engine) SetAfterDraw(fn func(svg string)) {
	e.afterDraw = fn
}

// --- Queries (frontend ← backend) ---

// Scene rebuilds the scene graph if needed and returns it.
func (e *Engine) Scene() *SceneGraph {
	if e.panel == nil {
		return e.sceneGraph
	}
	if e.dirty {
		e.sceneGraph = BuildSceneGraph(e.panel)
		e.dirty = false
		Logger().Debug("scene rebuilt",
			"panel", e.panel.ID,
			"nodes", len(e.sceneGraph.NodesById),
		)
		e.runAfterDraw()
	}
	return e.sceneGraph
}

func (e *Engine) runAfterDraw() {
	if e.afterDraw == nil {
		return
	}
	svg, err := RenderSVG(e.sceneGraph, e.exportSize())
	if err != nil {
		Logger().Warn("afterDraw export failed", "error", err)
		return
	}
	e.afterDraw(svg)
}

// Render evaluates the scene graph and returns draw commands as JSON.
func (e *Engine) Render() string {
	if e.panel == nil {
		return "[]"
	}
	result, _ := DrawCommandsToJSON(CompileDrawCommands(e.Scene()))
	return result
}

// ExportSVG returns the current drawing as an SVG document.
func (e *Engine) ExportSVG() (string, error) {
	if e.panel == nil {
		return "", fmt.Errorf("export svg: no document loaded")
	}
	return RenderSVG(e.Scene(), e.exportSize())
}

func (e *Engine) exportSize() geom.Size {
	if e.viewport.Width > 0 && e.viewport.Height > 0 {
		return e.viewport
	}
	return e.panel.Bounds
}

// HitTest performs a hit test at the given coordinates.
// Returns the object ID of the topmost hit, or empty string.
func (e *Engine) HitTest(x, y float64) string {
	if e.panel == nil {
		return ""
	}
	return HitTest(e.Scene(), x, y)
}

// GetSelectionBounds returns the bounding box of the current selection as JSON.
func (e *Engine) GetSelectionBounds() string {
	if e.panel == nil || len(e.selection) == 0 {
		return RectToJSON(geom.Rect{})
	}
	return RectToJSON(GetSelectionBounds(e.Scene(), e.selection))
}

// GetDocument returns the full document as JSON (for debugging/sync).
func (e *Engine) GetDocument() string {
	if e.panel == nil {
		return "{}"
	}
	data, _ := json.Marshal(e.panel)
	return string(data)
}

// GetSelection returns the current selection as JSON.
func (e *Engine) GetSelection() string {
	data, _ := json.Marshal(e.selection)
	return string(data)
}

// Panel returns the loaded panel, or nil.
func (e *Engine) Panel() *document.Panel {
	return e.panel
}

// Viewport returns the last size passed to Resize.
func (e *Engine) Viewport() geom.Size {
	return e.viewport
}
