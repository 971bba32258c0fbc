package engine

import "github.com/hexpanel/hexpanel/internal/geom"

// Node types.
const (
	NodeGroup = "group"
	NodeTile  = "tile"
	NodeItem  = "item"
	NodeFrame = "frame"
)

// SceneGraph is the render-ready form of a panel. It is rebuilt from scratch
// on every draw.
type SceneGraph struct {
	Root      *SceneNode
	NodesById map[string]*SceneNode
	// Size is the drawing area the scene was laid out in.
	Size  geom.Size
	Dirty bool // needs re-evaluation
}

// SceneNode is a resolved node ready for rendering. Geometry is baked into
// Path in world coordinates.
type SceneNode struct {
	ID   string
	Type string // "group", "tile", "item", "frame"

	WorldTransform geom.Matrix2D

	Opacity float64
	Visible bool

	Parent   *SceneNode
	Children []*SceneNode

	// Center is the tile center a motif was stamped at.
	Center geom.Point

	Shape       geom.Shape
	Path        []PathCommand
	Fill        string
	Stroke      string
	StrokeWidth float64

	// Hit testing
	Bounds geom.Rect // axis-aligned bounding box in world space
}

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["C", x1, y1, x2, y2, x, y], ["Z"].
type PathCommand []interface{}

// NewSceneGraph creates an empty scene graph.
func NewSceneGraph() *SceneGraph {
	return &SceneGraph{
		NodesById: make(map[string]*SceneNode),
		Dirty:     true,
	}
}

// Tiles returns the tile nodes in drawing order.
func (sg *SceneGraph) Tiles() []*SceneNode {
	if sg == nil || sg.Root == nil {
		return nil
	}
	var tiles []*SceneNode
	for _, child := range sg.Root.Children {
		if child.Type == NodeTile {
			tiles = append(tiles, child)
		}
	}
	return tiles
}

// PathCommands converts shape contours into Canvas2D-style commands.
func PathCommands(s geom.Shape) []PathCommand {
	var cmds []PathCommand
	for _, c := range s.Contours() {
		cmds = appendContour(cmds, c)
	}
	return cmds
}

func appendContour(cmds []PathCommand, c *geom.Path) []PathCommand {
	if c.IsEmpty() {
		return cmds
	}
	n := len(c.Segments)
	start := c.Segments[0].Point
	cmds = append(cmds, PathCommand{"M", start.X, start.Y})

	edges := n - 1
	if c.Closed {
		edges = n
	}
	for i := 0; i < edges; i++ {
		a := c.Segments[i]
		b := c.Segments[(i+1)%n]
		if a.Out.IsZero() && b.In.IsZero() {
			if i == n-1 {
				// closing straight edge is implied by Z
				break
			}
			cmds = append(cmds, PathCommand{"L", b.Point.X, b.Point.Y})
			continue
		}
		c1 := a.Point.Add(a.Out)
		c2 := b.Point.Add(b.In)
		cmds = append(cmds, PathCommand{"C", c1.X, c1.Y, c2.X, c2.Y, b.Point.X, b.Point.Y})
	}
	if c.Closed {
		cmds = append(cmds, PathCommand{"Z"})
	}
	return cmds
}
