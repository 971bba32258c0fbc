package geom

import (
	"github.com/tdewolff/canvas"
)

// curveSteps is the number of line segments used per bezier edge when a
// curved operand has to be flattened before a boolean operation.
const curveSteps = 24

// closeEpsilon merges a trailing vertex into the first one when a contour
// comes back from canvas with its closing point repeated.
const closeEpsilon = 1e-9

// Subtract returns a minus b.
func Subtract(a, b Shape) Shape {
	return fromCanvas(operand(a).Not(operand(b)))
}

// Unite returns the union of a and b.
func Unite(a, b Shape) Shape {
	return fromCanvas(operand(a).Or(operand(b)))
}

// Intersect returns the overlap of a and b.
func Intersect(a, b Shape) Shape {
	return fromCanvas(operand(a).And(operand(b)))
}

// ToCanvas converts a shape into a canvas path, one subpath per contour.
// Contours keep their bezier handles as cubic segments.
func ToCanvas(s Shape) *canvas.Path {
	p := &canvas.Path{}
	for _, c := range s.Contours() {
		appendContour(p, c)
	}
	return p
}

func appendContour(p *canvas.Path, c *Path) {
	if len(c.Segments) == 0 {
		return
	}
	start := c.Segments[0].Point
	p.MoveTo(start.X, start.Y)
	for _, cv := range c.curves() {
		if cv.isLine() {
			if cv.P0 == cv.P3 {
				continue
			}
			p.LineTo(cv.P3.X, cv.P3.Y)
			continue
		}
		p.CubeTo(cv.P1.X, cv.P1.Y, cv.P2.X, cv.P2.Y, cv.P3.X, cv.P3.Y)
	}
	if c.Closed {
		p.Close()
	}
}

// operand flattens curves so that results come back as polygons.
func operand(s Shape) *canvas.Path {
	p := &canvas.Path{}
	for _, c := range s.Contours() {
		appendContour(p, c.Flatten(curveSteps))
	}
	return p
}

// fromCanvas splits a polygonal canvas path back into contours. One contour
// comes back as a *Path, anything else as a *CompositePath.
func fromCanvas(p *canvas.Path) Shape {
	var contours []*Path
	for _, sub := range p.Split() {
		coords := sub.Coords()
		pts := make([]Point, 0, len(coords))
		for _, c := range coords {
			pts = append(pts, Point{X: c.X, Y: c.Y})
		}
		if n := len(pts); n > 1 && pts[n-1].Approx(pts[0], closeEpsilon) {
			pts = pts[:n-1]
		}
		if len(pts) < 3 {
			continue
		}
		contours = append(contours, NewPolygon(pts...))
	}
	if len(contours) == 1 {
		return contours[0]
	}
	return NewCompositePath(contours...)
}
