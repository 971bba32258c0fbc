package geom

// Kind tags the concrete type behind a Shape.
type Kind int

const (
	KindPath Kind = iota
	KindCompositePath
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindPath:
		return "path"
	case KindCompositePath:
		return "compositePath"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Shape is anything the motif builders produce: a single contour, a
// multi-contour path, or a group of shapes. Implementations are immutable
// from the caller's point of view; Transform and Clone return new values.
type Shape interface {
	Kind() Kind
	Bounds() Rect
	Clone() Shape
	Transform(m Matrix2D) Shape
	// Contours flattens the shape into its closed or open contours, in
	// drawing order.
	Contours() []*Path
}

// Rotate rotates any shape by degrees around pivot.
func Rotate(s Shape, degrees float64, pivot Point) Shape {
	return s.Transform(RotateAbout(degrees, pivot))
}

// ScaleShape scales any shape around the center of its own bounds.
func ScaleShape(s Shape, factor float64) Shape {
	return s.Transform(ScaleAbout(factor, s.Bounds().Center()))
}

// Area sums the absolute area of every contour of s. Holes produced by
// boolean operations are wound opposite to their outline, so their signed
// area is subtracted.
func Area(s Shape) float64 {
	var signed float64
	var outline float64
	for _, c := range s.Contours() {
		a := c.Area()
		if abs(a) > abs(outline) {
			outline = a
		}
		signed += a
	}
	if outline < 0 {
		signed = -signed
	}
	return signed
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// CompositePath is a set of contours treated as one path, the result of a
// boolean operation that yields islands or holes.
type CompositePath struct {
	Children []*Path
}

// NewCompositePath returns an empty composite path.
func NewCompositePath(children ...*Path) *CompositePath {
	return &CompositePath{Children: children}
}

func (c *CompositePath) Kind() Kind        { return KindCompositePath }
func (c *CompositePath) Contours() []*Path { return c.Children }
func (c *CompositePath) IsEmpty() bool     { return len(c.Children) == 0 }

func (c *CompositePath) Bounds() Rect {
	var r Rect
	for i, child := range c.Children {
		if i == 0 {
			r = child.Bounds()
			continue
		}
		r = r.Union(child.Bounds())
	}
	return r
}

func (c *CompositePath) Clone() Shape {
	out := &CompositePath{Children: make([]*Path, len(c.Children))}
	for i, child := range c.Children {
		out.Children[i] = child.clone()
	}
	return out
}

func (c *CompositePath) Transform(m Matrix2D) Shape {
	out := &CompositePath{Children: make([]*Path, len(c.Children))}
	for i, child := range c.Children {
		out.Children[i] = child.transform(m)
	}
	return out
}

// Smooth smooths every contour.
func (c *CompositePath) Smooth(factor float64) *CompositePath {
	out := &CompositePath{Children: make([]*Path, len(c.Children))}
	for i, child := range c.Children {
		out.Children[i] = child.Smooth(factor)
	}
	return out
}

// Group is an ordered collection of shapes transformed as a unit.
type Group struct {
	Children []Shape
}

// NewGroup returns a group holding children in order.
func NewGroup(children ...Shape) *Group {
	return &Group{Children: children}
}

func (g *Group) Kind() Kind { return KindGroup }

// Len returns the number of direct children.
func (g *Group) Len() int { return len(g.Children) }

// Add appends shapes and returns the group for chaining.
func (g *Group) Add(shapes ...Shape) *Group {
	g.Children = append(g.Children, shapes...)
	return g
}

func (g *Group) Bounds() Rect {
	var r Rect
	first := true
	for _, child := range g.Children {
		b := child.Bounds()
		if first {
			r = b
			first = false
			continue
		}
		r = r.Union(b)
	}
	return r
}

func (g *Group) Clone() Shape {
	out := &Group{Children: make([]Shape, len(g.Children))}
	for i, child := range g.Children {
		out.Children[i] = child.Clone()
	}
	return out
}

func (g *Group) Transform(m Matrix2D) Shape { return g.transform(m) }

func (g *Group) transform(m Matrix2D) *Group {
	out := &Group{Children: make([]Shape, len(g.Children))}
	for i, child := range g.Children {
		out.Children[i] = child.Transform(m)
	}
	return out
}

// Rotate rotates the whole group by degrees around pivot.
func (g *Group) Rotate(degrees float64, pivot Point) *Group {
	return g.transform(RotateAbout(degrees, pivot))
}

// Scale scales the group around the center of its bounds.
func (g *Group) Scale(factor float64) *Group {
	return g.transform(ScaleAbout(factor, g.Bounds().Center()))
}

func (g *Group) Contours() []*Path {
	var out []*Path
	for _, child := range g.Children {
		out = append(out, child.Contours()...)
	}
	return out
}
