package engine

import (
	"fmt"

	"github.com/hexpanel/hexpanel/internal/document"
	"github.com/hexpanel/hexpanel/internal/geom"
	"github.com/hexpanel/hexpanel/internal/hexagon"
	"github.com/hexpanel/hexpanel/internal/tiling"
)

// RootID is the ID of the scene's root group.
const RootID = "root"

// FrameID is the ID of the panel's cut-out frame node.
const FrameID = "frame"

// TileID names the node for the n-th tile center.
func TileID(n int) string {
	return fmt.Sprintf("tile-%d", n)
}

// BuildSceneGraph lays out a panel: one node per tile center carrying the
// panel's motif, then the free items, then the frame on top.
// Items that fail to build are skipped and logged.
func BuildSceneGraph(panel *document.Panel) *SceneGraph {
	sg := NewSceneGraph()
	if panel == nil {
		return sg
	}
	sg.Size = panel.Bounds

	root := &SceneNode{
		ID:             RootID,
		Type:           NodeGroup,
		WorldTransform: geom.Identity(),
		Opacity:        1,
		Visible:        true,
	}
	sg.Root = root
	sg.NodesById[root.ID] = root

	if panel.Tiled() {
		buildTiles(sg, panel)
	}
	for i := range panel.Items {
		buildItem(sg, &panel.Items[i])
	}
	if panel.Frame {
		frame := geom.NewRectangle(geom.Rect{Width: panel.Bounds.Width, Height: panel.Bounds.Height})
		addNode(sg, &SceneNode{
			ID:          FrameID,
			Type:        NodeFrame,
			Shape:       frame,
			Stroke:      panel.FrameStroke,
			StrokeWidth: 1,
			Opacity:     1,
		})
	}

	for _, child := range root.Children {
		root.Bounds = root.Bounds.Union(child.Bounds)
	}
	sg.Dirty = false
	return sg
}

func buildTiles(sg *SceneGraph, panel *document.Panel) {
	centers := tiling.BeeHive(panel.Bounds, panel.Radius, tiling.WithLoose(panel.Loose))
	r := panel.TileRadius()

	Logger().Debug("building tiles",
		"panel", panel.ID,
		"motif", panel.Motif,
		"tiles", len(centers),
	)

	for n, c := range centers {
		shape, err := hexagon.Build(panel.Motif, c, r, panel.Params)
		if err != nil {
			Logger().Warn("skipping tile", "tile", n, "error", err)
			continue
		}
		addNode(sg, &SceneNode{
			ID:          TileID(n),
			Type:        NodeTile,
			Center:      c,
			Shape:       shape,
			Fill:        panel.Style.Fill,
			Stroke:      panel.Style.Stroke,
			StrokeWidth: panel.Style.StrokeWidth,
			Opacity:     opacity(panel.Style.Opacity),
		})
	}
}

func buildItem(sg *SceneGraph, item *document.Item) {
	var shape geom.Shape
	switch item.Type {
	case document.ItemTypeCircle:
		shape = geom.NewCircle(item.Center, item.Radius)
	case document.ItemTypeMotif:
		s, err := hexagon.Build(item.Motif, item.Center, item.Radius, item.Params)
		if err != nil {
			Logger().Warn("skipping item", "item", item.ID, "error", err)
			return
		}
		shape = s
	default:
		Logger().Warn("skipping item", "item", item.ID, "type", item.Type)
		return
	}
	if item.Scale != 0 && item.Scale != 1 {
		shape = geom.ScaleShape(shape, item.Scale)
	}

	id := item.ID
	if id == "" {
		id = fmt.Sprintf("item-%d", len(sg.NodesById))
	}
	addNode(sg, &SceneNode{
		ID:          id,
		Type:        NodeItem,
		Center:      item.Center,
		Shape:       shape,
		Fill:        item.Style.Fill,
		Stroke:      item.Style.Stroke,
		StrokeWidth: item.Style.StrokeWidth,
		Opacity:     opacity(item.Style.Opacity),
	})
}

// addNode attaches a leaf under the root, resolving its path and bounds.
func addNode(sg *SceneGraph, node *SceneNode) {
	node.Parent = sg.Root
	node.Visible = true
	node.WorldTransform = geom.Identity()
	node.Path = PathCommands(node.Shape)
	node.Bounds = node.Shape.Bounds()

	sg.Root.Children = append(sg.Root.Children, node)
	sg.NodesById[node.ID] = node
}

// opacity treats an unset opacity as fully opaque.
func opacity(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}
