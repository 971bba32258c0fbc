package geom

import "math"

// Segment is a path vertex with optional bezier handles. Handles are stored
// relative to Point; a zero handle means the adjoining edge is straight.
type Segment struct {
	Point Point `json:"point"`
	In    Point `json:"in,omitempty"`
	Out   Point `json:"out,omitempty"`
}

// Path is a single contour: an ordered run of segments, optionally closed.
// All methods return new paths; the receiver is never modified.
type Path struct {
	Segments []Segment
	Closed   bool
}

// NewPath returns an empty open path.
func NewPath() *Path {
	return &Path{}
}

// NewPolyline builds an open path through pts.
func NewPolyline(pts ...Point) *Path {
	p := &Path{Segments: make([]Segment, len(pts))}
	for i, pt := range pts {
		p.Segments[i] = Segment{Point: pt}
	}
	return p
}

// NewPolygon builds a closed path through pts.
func NewPolygon(pts ...Point) *Path {
	p := NewPolyline(pts...)
	p.Closed = true
	return p
}

// NewRectangle builds the closed outline of r, clockwise on screen.
func NewRectangle(r Rect) *Path {
	return NewPolygon(
		Point{r.X, r.Y},
		Point{r.X + r.Width, r.Y},
		Point{r.X + r.Width, r.Y + r.Height},
		Point{r.X, r.Y + r.Height},
	)
}

// kappa places cubic handles so four segments approximate a circle.
const kappa = 0.5522847498307936

// NewCircle builds a closed four-segment circle starting at its leftmost
// point and running clockwise on screen.
func NewCircle(c Point, r float64) *Path {
	k := r * kappa
	return &Path{Closed: true, Segments: []Segment{
		{Point: Point{c.X - r, c.Y}, In: Point{0, k}, Out: Point{0, -k}},
		{Point: Point{c.X, c.Y - r}, In: Point{-k, 0}, Out: Point{k, 0}},
		{Point: Point{c.X + r, c.Y}, In: Point{0, -k}, Out: Point{0, k}},
		{Point: Point{c.X, c.Y + r}, In: Point{k, 0}, Out: Point{-k, 0}},
	}}
}

func (p *Path) Kind() Kind { return KindPath }

// Contours returns the path itself.
func (p *Path) Contours() []*Path { return []*Path{p} }

// Len returns the number of segments.
func (p *Path) Len() int { return len(p.Segments) }

// IsEmpty reports whether the path has no segments.
func (p *Path) IsEmpty() bool { return len(p.Segments) == 0 }

// IsPolygon reports whether every edge is a straight line.
func (p *Path) IsPolygon() bool {
	for _, s := range p.Segments {
		if !s.In.IsZero() || !s.Out.IsZero() {
			return false
		}
	}
	return true
}

// Points returns the anchor points in order.
func (p *Path) Points() []Point {
	pts := make([]Point, len(p.Segments))
	for i, s := range p.Segments {
		pts[i] = s.Point
	}
	return pts
}

// Clone returns a deep copy.
func (p *Path) Clone() Shape { return p.clone() }

func (p *Path) clone() *Path {
	segs := make([]Segment, len(p.Segments))
	copy(segs, p.Segments)
	return &Path{Segments: segs, Closed: p.Closed}
}

// Transform applies m to every anchor and handle.
func (p *Path) Transform(m Matrix2D) Shape { return p.transform(m) }

func (p *Path) transform(m Matrix2D) *Path {
	out := &Path{Segments: make([]Segment, len(p.Segments)), Closed: p.Closed}
	for i, s := range p.Segments {
		out.Segments[i] = Segment{
			Point: m.Apply(s.Point),
			In:    m.ApplyVector(s.In),
			Out:   m.ApplyVector(s.Out),
		}
	}
	return out
}

// Rotate rotates the path by degrees around pivot.
func (p *Path) Rotate(degrees float64, pivot Point) *Path {
	return p.transform(RotateAbout(degrees, pivot))
}

// Scale scales the path around the center of its own bounds.
func (p *Path) Scale(factor float64) *Path {
	return p.transform(ScaleAbout(factor, p.Bounds().Center()))
}

// ScaleAbout scales the path around pivot.
func (p *Path) ScaleAbout(factor float64, pivot Point) *Path {
	return p.transform(ScaleAbout(factor, pivot))
}

// Translate moves the path by v.
func (p *Path) Translate(v Point) *Path {
	return p.transform(Translate(v.X, v.Y))
}

// curve is one edge of a path as a cubic bezier. Straight edges have their
// control points on the endpoints.
type curve struct {
	P0, P1, P2, P3 Point
}

func (c curve) isLine() bool {
	return c.P1 == c.P0 && c.P2 == c.P3
}

// curves returns the edges of the path, including the closing edge of a
// closed path.
func (p *Path) curves() []curve {
	n := len(p.Segments)
	if n < 2 {
		return nil
	}
	edges := n - 1
	if p.Closed {
		edges = n
	}
	out := make([]curve, 0, edges)
	for i := 0; i < edges; i++ {
		a := p.Segments[i]
		b := p.Segments[(i+1)%n]
		out = append(out, curve{
			P0: a.Point,
			P1: a.Point.Add(a.Out),
			P2: b.Point.Add(b.In),
			P3: b.Point,
		})
	}
	return out
}

// Bounds returns the tight axis-aligned bounding box, using curve extrema.
func (p *Path) Bounds() Rect {
	if len(p.Segments) == 0 {
		return Rect{}
	}
	pts := p.Points()
	for _, c := range p.curves() {
		if c.isLine() {
			continue
		}
		pts = append(pts, c.extrema()...)
	}
	return RectFromPoints(pts...)
}

// extrema returns the points where the curve's derivative vanishes on either axis.
func (c curve) extrema() []Point {
	var pts []Point
	for _, t := range append(
		derivativeRoots(c.P0.X, c.P1.X, c.P2.X, c.P3.X),
		derivativeRoots(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y)...,
	) {
		pts = append(pts, c.at(t))
	}
	return pts
}

// derivativeRoots solves B'(t) = 0 for one axis of a cubic, keeping roots in (0, 1).
func derivativeRoots(p0, p1, p2, p3 float64) []float64 {
	a := -p0 + 3*p1 - 3*p2 + p3
	b := 2 * (p0 - 2*p1 + p2)
	c := p1 - p0

	var roots []float64
	keep := func(t float64) {
		if t > 0 && t < 1 {
			roots = append(roots, t)
		}
	}

	const eps = 1e-12
	if math.Abs(a) < eps {
		if math.Abs(b) > eps {
			keep(-c / b)
		}
		return roots
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return roots
	}
	sq := math.Sqrt(disc)
	keep((-b + sq) / (2 * a))
	keep((-b - sq) / (2 * a))
	return roots
}

func (c curve) at(t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	d := 3 * mt * t * t
	e := t * t * t
	return Point{
		X: a*c.P0.X + b*c.P1.X + d*c.P2.X + e*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + d*c.P2.Y + e*c.P3.Y,
	}
}

// Area returns the signed area enclosed by the path, treating an open path as
// closed. Positive for clockwise paths on a y-down screen.
func (p *Path) Area() float64 {
	if len(p.Segments) < 3 && p.IsPolygon() {
		return 0
	}
	closed := p
	if !p.Closed {
		closed = p.clone()
		closed.Closed = true
	}

	var area float64
	for _, c := range closed.curves() {
		if c.isLine() {
			area += lineArea(c.P0, c.P3)
		} else {
			area += cubicArea(c.P0, c.P1, c.P2, c.P3)
		}
	}
	return area
}

// lineArea computes the contribution of a line segment to the signed area.
// Uses the shoelace formula: 0.5 * (x0*y1 - x1*y0)
func lineArea(p0, p1 Point) float64 {
	return 0.5 * (p0.X*p1.Y - p1.X*p0.Y)
}

// cubicArea computes the contribution of a cubic Bezier to the signed area
// (Green's theorem on the parametric form).
func cubicArea(p0, p1, p2, p3 Point) float64 {
	return (p0.X*(6*p1.Y+3*p2.Y+p3.Y) +
		3*p1.X*(-2*p0.Y+p2.Y+p3.Y) +
		3*p2.X*(-p0.Y-p1.Y+2*p3.Y) +
		p3.X*(-p0.Y-3*p1.Y-6*p2.Y)) / 20.0
}

// Flatten returns a polygonal copy of the path, splitting every curved edge
// into steps line segments.
func (p *Path) Flatten(steps int) *Path {
	if p.IsPolygon() {
		return p.clone()
	}
	if steps < 1 {
		steps = 16
	}
	out := &Path{Closed: p.Closed}
	for i, c := range p.curves() {
		if i == 0 {
			out.Segments = append(out.Segments, Segment{Point: c.P0})
		}
		if c.isLine() {
			out.Segments = append(out.Segments, Segment{Point: c.P3})
			continue
		}
		for k := 1; k <= steps; k++ {
			out.Segments = append(out.Segments, Segment{Point: c.at(float64(k) / float64(steps))})
		}
	}
	// the closing edge ends on the first point, which is already present
	if p.Closed && len(out.Segments) > 1 {
		out.Segments = out.Segments[:len(out.Segments)-1]
	}
	return out
}
