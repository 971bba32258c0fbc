package collab

import (
	"encoding/json"
	"fmt"
	"math"
	"sync"

	"github.com/hexpanel/hexpanel/internal/document"
	"github.com/hexpanel/hexpanel/internal/engine"
	"github.com/hexpanel/hexpanel/internal/geom"
)

// PreviewState holds the authoritative panel for a room and the engine that
// draws it.
type PreviewState struct {
	mu        sync.Mutex
	engine    *engine.Engine
	serverSeq int64
	// panelSeq counts panel replacements; savedSeq is the last one persisted.
	panelSeq int64
	savedSeq int64
}

// NewPreviewState creates a preview for an already validated panel.
func NewPreviewState(panel *document.Panel) *PreviewState {
	e := engine.NewEngine()
	e.LoadPanel(panel)
	return &PreviewState{engine: e}
}

// ApplyPanel replaces the panel with the JSON document in data and returns
// the new server sequence. Invalid documents leave the state untouched.
func (ps *PreviewState) ApplyPanel(data []byte) (int64, error) {
	panel, err := document.Parse(data)
	if err != nil {
		return 0, err
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	if cur := ps.engine.Panel(); cur != nil {
		panel.ID = cur.ID
		panel.Version = cur.Version
	}
	ps.engine.LoadPanel(panel)
	ps.panelSeq++
	ps.serverSeq++
	return ps.serverSeq, nil
}

// Resize changes the room's shared viewport.
func (ps *PreviewState) Resize(width, height float64) (int64, error) {
	if !validExtent(width) || !validExtent(height) {
		return 0, fmt.Errorf("invalid viewport %vx%v", width, height)
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.engine.Resize(width, height)
	ps.serverSeq++
	return ps.serverSeq, nil
}

func validExtent(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// Render draws the current panel.
func (ps *PreviewState) Render() (ScenePayload, int64) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	sg := ps.engine.Scene()
	payload := ScenePayload{
		Commands: engine.CompileDrawCommands(sg),
		Viewport: ps.engine.Viewport(),
		Tiles:    len(sg.Tiles()),
	}
	if payload.Commands == nil {
		payload.Commands = []engine.DrawCommand{}
	}
	if sg.Root != nil {
		payload.Bounds = sg.Root.Bounds
	}
	if payload.Viewport == (geom.Size{}) {
		if p := ps.engine.Panel(); p != nil {
			payload.Viewport = p.Bounds
		}
	}
	return payload, ps.serverSeq
}

// PanelJSON returns the current panel document.
func (ps *PreviewState) PanelJSON() json.RawMessage {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return json.RawMessage(ps.engine.GetDocument())
}

// Snapshot returns a copy of the panel, its revision, and whether that
// revision still needs saving.
func (ps *PreviewState) Snapshot() (*document.Panel, int64, bool) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	var panel document.Panel
	if err := json.Unmarshal([]byte(ps.engine.GetDocument()), &panel); err != nil {
		return nil, 0, false
	}
	return &panel, ps.panelSeq, ps.panelSeq > ps.savedSeq
}

// MarkSaved records that revision rev was persisted. Later revisions stay
// dirty.
func (ps *PreviewState) MarkSaved(rev int64) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if rev > ps.savedSeq {
		ps.savedSeq = rev
	}
}
