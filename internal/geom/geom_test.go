package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestPoint_Rotate(t *testing.T) {
	tests := []struct {
		name    string
		p       Point
		degrees float64
		pivot   Point
		want    Point
	}{
		{"zero angle", Pt(3, 4), 0, Pt(0, 0), Pt(3, 4)},
		{"quarter turn", Pt(1, 0), 90, Pt(0, 0), Pt(0, 1)},
		{"negative quarter", Pt(1, 0), -90, Pt(0, 0), Pt(0, -1)},
		{"about pivot", Pt(2, 1), 180, Pt(1, 1), Pt(0, 1)},
		{"minus sixty", Pt(0, 10), -60, Pt(0, 0), Pt(10*math.Sqrt(3)/2, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.p.Rotate(tt.degrees, tt.pivot)
			if !got.Approx(tt.want, eps) {
				t.Errorf("%v.Rotate(%v, %v) = %v, want %v", tt.p, tt.degrees, tt.pivot, got, tt.want)
			}
		})
	}
}

func TestRect_Contains(t *testing.T) {
	outer := Rect{X: 0, Y: 0, Width: 100, Height: 50}
	tests := []struct {
		name  string
		inner Rect
		want  bool
	}{
		{"inside", Rect{10, 10, 20, 20}, true},
		{"touching edges", Rect{0, 0, 100, 50}, true},
		{"crossing right", Rect{90, 10, 20, 20}, false},
		{"negative origin", Rect{-1, 10, 20, 20}, false},
		{"too tall", Rect{0, 0, 10, 51}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outer.Contains(tt.inner); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.inner, got, tt.want)
			}
		})
	}
}

func TestMatrix_RotateAboutMatchesPoint(t *testing.T) {
	pivot := Pt(5, -2)
	p := Pt(12, 7)
	for _, deg := range []float64{-60, 30, 60, 120, 240} {
		want := p.Rotate(deg, pivot)
		got := RotateAbout(deg, pivot).Apply(p)
		if !got.Approx(want, eps) {
			t.Errorf("RotateAbout(%v) = %v, want %v", deg, got, want)
		}
	}
}

func TestMatrix_Invert(t *testing.T) {
	m := RotateAbout(33, Pt(4, 9)).Multiply(ScaleAbout(2.5, Pt(-1, 3)))
	p := Pt(7, -8)
	back := m.Invert().Apply(m.Apply(p))
	if !back.Approx(p, 1e-9) {
		t.Errorf("Invert round trip = %v, want %v", back, p)
	}
}

func TestPath_AreaAndBounds(t *testing.T) {
	square := NewRectangle(Rect{X: 2, Y: 3, Width: 10, Height: 4})
	if got := square.Area(); math.Abs(got-40) > eps {
		t.Errorf("Area() = %v, want 40", got)
	}
	if got := square.Bounds(); got != (Rect{2, 3, 10, 4}) {
		t.Errorf("Bounds() = %v", got)
	}

	// open path is treated as closed
	open := NewPolyline(Pt(0, 0), Pt(4, 0), Pt(4, 3))
	if got := open.Area(); math.Abs(got-6) > eps {
		t.Errorf("open Area() = %v, want 6", got)
	}
}

func TestPath_BoundsIncludesCurveExtrema(t *testing.T) {
	// a single arch from (0,0) to (10,0) bulging upward
	p := &Path{Segments: []Segment{
		{Point: Pt(0, 0), Out: Pt(0, -8)},
		{Point: Pt(10, 0), In: Pt(0, -8)},
	}}
	b := p.Bounds()
	// cubic peak is at t=0.5: 0.75 * -8
	if math.Abs(b.Y-(-6)) > 1e-9 {
		t.Errorf("Bounds().Y = %v, want -6", b.Y)
	}
	if b.Width != 10 {
		t.Errorf("Bounds().Width = %v, want 10", b.Width)
	}
}

func TestPath_CubicAreaMatchesFlattened(t *testing.T) {
	p := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)).Smooth(0.5)
	exact := p.Area()
	flat := p.Flatten(256).Area()
	if math.Abs(exact-flat) > 0.05 {
		t.Errorf("cubic area %v differs from flattened area %v", exact, flat)
	}
}

func TestPath_SmoothUniformSpacing(t *testing.T) {
	// With equal edge lengths the handles reduce to the classic (p2 - p0) / 6.
	sq := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	s := sq.Smooth(0.8)

	seg := s.Segments[1] // (10, 0), neighbours (0,0) and (10,10)
	wantOut := Pt(10, 10).Sub(Pt(0, 0)).Mul(1.0 / 6)
	if !seg.Out.Approx(wantOut, eps) {
		t.Errorf("Out = %v, want %v", seg.Out, wantOut)
	}
	if !seg.In.Approx(wantOut.Neg(), eps) {
		t.Errorf("In = %v, want %v", seg.In, wantOut.Neg())
	}
	if !sq.IsPolygon() {
		t.Error("Smooth modified its receiver")
	}
}

func TestPath_SmoothOpenEndsStayStraight(t *testing.T) {
	p := NewPolyline(Pt(0, 0), Pt(5, 5), Pt(10, 0)).Smooth(0.8)
	if !p.Segments[0].In.IsZero() || !p.Segments[0].Out.IsZero() {
		t.Errorf("first segment handles = %v/%v, want zero", p.Segments[0].In, p.Segments[0].Out)
	}
	if !p.Segments[2].Out.IsZero() {
		t.Errorf("last segment out handle = %v, want zero", p.Segments[2].Out)
	}
}

func TestPath_TransformsDoNotMutate(t *testing.T) {
	p := NewPolygon(Pt(0, 0), Pt(4, 0), Pt(4, 2))
	before := p.Points()

	_ = p.Rotate(45, Pt(1, 1))
	_ = p.Scale(3)
	_ = p.Translate(Pt(5, 5))
	_ = p.Clone()

	for i, pt := range p.Points() {
		if pt != before[i] {
			t.Fatalf("point %d changed from %v to %v", i, before[i], pt)
		}
	}
}

func TestPath_ScaleAboutOwnCenter(t *testing.T) {
	p := NewRectangle(Rect{X: 10, Y: 10, Width: 20, Height: 10})
	s := p.Scale(0.5)
	if got := s.Bounds(); !got.Center().Approx(Pt(20, 15), eps) || math.Abs(got.Width-10) > eps {
		t.Errorf("Scale(0.5).Bounds() = %v", got)
	}
}

func TestGroup_TransformAndContours(t *testing.T) {
	a := NewRectangle(Rect{0, 0, 2, 2})
	b := NewRectangle(Rect{4, 0, 2, 2})
	g := NewGroup(a, NewGroup(b))

	if got := len(g.Contours()); got != 2 {
		t.Fatalf("Contours() = %d, want 2", got)
	}
	if got := g.Bounds(); got != (Rect{0, 0, 6, 2}) {
		t.Errorf("Bounds() = %v", got)
	}

	moved := g.Transform(Translate(10, 0)).(*Group)
	if got := moved.Bounds(); got != (Rect{10, 0, 6, 2}) {
		t.Errorf("moved Bounds() = %v", got)
	}
	if got := g.Bounds(); got != (Rect{0, 0, 6, 2}) {
		t.Errorf("original group moved: %v", got)
	}
	if moved.Kind() != KindGroup || a.Kind() != KindPath {
		t.Errorf("unexpected kinds %v %v", moved.Kind(), a.Kind())
	}
}

func TestSubtract(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Shape
		wantArea float64
	}{
		{
			name:     "half overlap",
			a:        NewRectangle(Rect{0, 0, 10, 10}),
			b:        NewRectangle(Rect{5, -1, 10, 12}),
			wantArea: 50,
		},
		{
			name:     "disjoint",
			a:        NewRectangle(Rect{0, 0, 10, 10}),
			b:        NewRectangle(Rect{20, 20, 5, 5}),
			wantArea: 100,
		},
		{
			name:     "hole",
			a:        NewRectangle(Rect{0, 0, 10, 10}),
			b:        NewRectangle(Rect{2, 2, 2, 2}),
			wantArea: 96,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Area(Subtract(tt.a, tt.b))
			if math.Abs(got-tt.wantArea) > 1e-6 {
				t.Errorf("Area(Subtract) = %v, want %v", got, tt.wantArea)
			}
		})
	}
}

func TestUnite(t *testing.T) {
	a := NewRectangle(Rect{0, 0, 10, 10})
	b := NewRectangle(Rect{5, 0, 10, 10})
	u := Unite(a, b)
	if u.Kind() != KindPath {
		t.Fatalf("Unite kind = %v, want a single path", u.Kind())
	}
	if got := Area(u); math.Abs(got-150) > 1e-6 {
		t.Errorf("Area(Unite) = %v, want 150", got)
	}
}

func TestNewCircle(t *testing.T) {
	c := NewCircle(Pt(50, 50), 25)
	if got := c.Bounds(); !got.Center().Approx(Pt(50, 50), 1e-9) || math.Abs(got.Width-50) > 1e-9 {
		t.Errorf("Bounds() = %v", got)
	}
	// the bezier approximation is within 0.05% of pi r^2
	want := math.Pi * 25 * 25
	if got := c.Area(); math.Abs(got-want)/want > 5e-4 {
		t.Errorf("Area() = %v, want about %v", got, want)
	}
}
