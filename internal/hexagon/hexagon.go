// Package hexagon builds the hexagon motifs that are cut into panels: the
// plain hexagon, its 60 degree wedge and the composite shapes derived from
// them. Builders are pure; they never validate their numeric parameters and
// out-of-range values simply produce odd-looking geometry.
package hexagon

import (
	"math"

	"github.com/hexpanel/hexpanel/internal/geom"
)

// PetalSmoothing is the Catmull-Rom factor applied to petal outlines.
const PetalSmoothing = 0.8

// Hexagon returns a closed pointy-top hexagon with circumradius r.
func Hexagon(c geom.Point, r float64) *geom.Path {
	top := geom.Pt(0, -r)
	pts := make([]geom.Point, 6)
	for i := range pts {
		pts[i] = c.Add(top.Rotate(float64(i-1)*60, geom.Point{}))
	}
	return geom.NewPolygon(pts...)
}

// Wedge returns the 60 degree slice of a hexagon pointing right of c:
// [c, upper corner, lower corner, c].
func Wedge(c geom.Point, r float64) *geom.Path {
	seed := c.Add(geom.Pt(r, 0))
	return geom.NewPolygon(c, seed.Rotate(-30, c), seed.Rotate(30, c), c)
}

// TrapezoidalWedge is Wedge(c, r) with its tip cut away by
// Wedge(c, r*percentToClip).
func TrapezoidalWedge(c geom.Point, r, percentToClip float64) geom.Shape {
	return geom.Subtract(Wedge(c, r), Wedge(c, r*percentToClip))
}

// Petal is a wedge scaled about its own center, notched along its axis by a
// thin stem and then rounded off.
func Petal(c geom.Point, r, scale float64) geom.Shape {
	wedge := Wedge(c, r).Scale(scale)
	stem := geom.NewRectangle(geom.RectAt(
		c.Sub(geom.Pt(0, r/20)),
		geom.Size{Width: r * 0.75, Height: r / 10},
	))
	return smooth(geom.Subtract(wedge, stem), PetalSmoothing)
}

func smooth(s geom.Shape, factor float64) geom.Shape {
	switch v := s.(type) {
	case *geom.Path:
		return v.Smooth(factor)
	case *geom.CompositePath:
		return v.Smooth(factor)
	default:
		return s
	}
}

// WindowedHexagon is a small central hexagon surrounded by six trapezoidal
// panes. Every piece is shrunk by percentForFraming to leave a frame between
// them. The outline of the enclosing hexagon is implied, not drawn.
func WindowedHexagon(c geom.Point, r, percentToClip, percentForFraming float64) *geom.Group {
	shrink := 1 - percentForFraming
	window := Hexagon(c, r*percentToClip).Scale(shrink)
	g := geom.NewGroup(window)
	g.Add(ring(TrapezoidalWedge(c, r, percentToClip), c, shrink)...)
	return g
}

// SixPetalFlowerHexagon arranges six petals around c.
//
// percentToClip is accepted so the signature matches WindowedHexagon; it has
// no effect on the petals.
func SixPetalFlowerHexagon(c geom.Point, r, percentToClip, percentForFraming float64) *geom.Group {
	shrink := 1 - percentForFraming
	return geom.NewGroup(ring(Petal(c, r, shrink), c, shrink)...)
}

// ring copies s six times, rotating copy i by 60*i degrees about c and then
// scaling it about its own center.
func ring(s geom.Shape, c geom.Point, scale float64) []geom.Shape {
	out := make([]geom.Shape, 6)
	for i := range out {
		out[i] = geom.ScaleShape(geom.Rotate(s, 60*float64(i), c), scale)
	}
	return out
}

// ParallelogramWedge fills one third of the hexagon, the rhombus spanned by
// the -30 and 90 degree directions from c, with two congruent parallelogram
// strips. frameWidth is the gap around each strip as a fraction of the strip
// height r*sin(60).
func ParallelogramWedge(c geom.Point, r, frameWidth float64) *geom.Group {
	u := geom.Pt(r*math.Sqrt(3)/2, -r/2)
	v := geom.Pt(0, r)
	at := func(a, b float64) geom.Point {
		return c.Add(u.Mul(a)).Add(v.Mul(b))
	}
	strip := func(b0, b1 float64, inset float64) *geom.Path {
		return geom.NewPolygon(
			at(inset, b0), at(1-inset, b0),
			at(1-inset, b1), at(inset, b1),
		)
	}

	h := r * math.Sin(math.Pi/3)
	gap := frameWidth * h / 2
	t := 0.0
	if h != 0 {
		t = gap / h
	}
	return geom.NewGroup(
		strip(t, 0.5-t, t),
		strip(0.5+t, 1-t, t),
	)
}

// ParallelogramHexagon is three ParallelogramWedges 120 degrees apart,
// optionally with the enclosing hexagon outline.
func ParallelogramHexagon(c geom.Point, r, frameWidth float64, showSurround bool) *geom.Group {
	wedge := ParallelogramWedge(c, r, frameWidth)
	g := geom.NewGroup(wedge, wedge.Rotate(120, c), wedge.Rotate(240, c))
	if showSurround {
		g.Add(Hexagon(c, r))
	}
	return g
}
