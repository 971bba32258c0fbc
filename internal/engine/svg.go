package engine

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/hexpanel/hexpanel/internal/geom"
)

// WriteSVG draws every visible node of sg onto a canvas of the given size
// and serialises it as SVG. Coordinates are y-down from the top-left corner,
// matching the scene graph.
func WriteSVG(w io.Writer, sg *SceneGraph, size geom.Size) error {
	if sg == nil {
		return fmt.Errorf("write svg: nil scene graph")
	}
	if size.Width <= 0 || size.Height <= 0 {
		size = sg.Size
	}

	c := canvas.New(size.Width, size.Height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)
	drawNode(ctx, sg.Root)

	out := svg.New(w, size.Width, size.Height, nil)
	c.RenderTo(out)
	if err := out.Close(); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// RenderSVG is WriteSVG into a string.
func RenderSVG(sg *SceneGraph, size geom.Size) (string, error) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, sg, size); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func drawNode(ctx *canvas.Context, node *SceneNode) {
	if node == nil || !node.Visible {
		return
	}
	if node.Shape != nil {
		ctx.SetFillColor(paint(node.Fill, node.Opacity))
		ctx.SetStrokeColor(paint(node.Stroke, node.Opacity))
		ctx.SetStrokeWidth(node.StrokeWidth)
		for _, contour := range node.Shape.Contours() {
			if contour.IsEmpty() {
				continue
			}
			ctx.DrawPath(0, 0, geom.ToCanvas(contour))
		}
	}
	for _, child := range node.Children {
		drawNode(ctx, child)
	}
}

// paint parses a #rrggbb color, treating an empty string as no paint.
func paint(hex string, opacity float64) color.RGBA {
	if hex == "" || hex == "none" {
		return canvas.Transparent
	}
	c := canvas.Hex(hex)
	if opacity <= 0 || opacity >= 1 {
		return c
	}
	// color.RGBA is alpha-premultiplied
	return color.RGBA{
		R: uint8(float64(c.R) * opacity),
		G: uint8(float64(c.G) * opacity),
		B: uint8(float64(c.B) * opacity),
		A: uint8(float64(c.A) * opacity),
	}
}
