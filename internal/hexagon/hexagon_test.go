package hexagon

import (
	"errors"
	"math"
	"testing"

	"github.com/hexpanel/hexpanel/internal/geom"
)

var sqrt3 = math.Sqrt(3)

func TestHexagon_Vertices(t *testing.T) {
	tests := []struct {
		name string
		c    geom.Point
		r    float64
	}{
		{"origin", geom.Pt(0, 0), 10},
		{"offset", geom.Pt(370, 160), 59},
		{"small", geom.Pt(-3, 7), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Hexagon(tt.c, tt.r)
			if !h.Closed {
				t.Error("hexagon is not closed")
			}
			pts := h.Points()
			if len(pts) != 6 {
				t.Fatalf("got %d vertices, want 6", len(pts))
			}
			for i, p := range pts {
				if d := p.Distance(tt.c); math.Abs(d-tt.r) > 1e-9 {
					t.Errorf("vertex %d at distance %v, want %v", i, d, tt.r)
				}
			}
			// pointy top
			if !pts[1].Approx(tt.c.Add(geom.Pt(0, -tt.r)), 1e-9) {
				t.Errorf("vertex 1 = %v, want top corner", pts[1])
			}
		})
	}
}

func TestWedge_Points(t *testing.T) {
	w := Wedge(geom.Pt(0, 0), 10)
	want := []geom.Point{
		geom.Pt(0, 0),
		geom.Pt(5*sqrt3, -5),
		geom.Pt(5*sqrt3, 5),
		geom.Pt(0, 0),
	}
	got := w.Points()
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Approx(want[i], 1e-6) {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWedge_IsSixthOfHexagon(t *testing.T) {
	c := geom.Pt(12, 34)
	hex := Hexagon(c, 20).Area()
	wedge := Wedge(c, 20).Area()
	if math.Abs(6*wedge-hex) > 1e-6 {
		t.Errorf("6 * wedge area = %v, hexagon area = %v", 6*wedge, hex)
	}
}

func TestTrapezoidalWedge_Area(t *testing.T) {
	tests := []struct {
		name string
		clip float64
	}{
		{"half", 0.5},
		{"quarter", 0.25},
		{"most", 0.9},
	}

	c := geom.Pt(100, 100)
	r := 10.0
	full := math.Abs(Wedge(c, r).Area())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := geom.Area(TrapezoidalWedge(c, r, tt.clip))
			want := full * (1 - tt.clip*tt.clip)
			if got >= full {
				t.Errorf("trapezoid area %v not smaller than wedge %v", got, full)
			}
			if math.Abs(got-want) > 1e-3 {
				t.Errorf("area = %v, want %v", got, want)
			}
		})
	}
}

func TestPetal(t *testing.T) {
	c := geom.Pt(50, 50)
	p := Petal(c, 20, 0.8)

	contours := p.Contours()
	if len(contours) == 0 {
		t.Fatal("petal has no contours")
	}
	curved := false
	for _, ct := range contours {
		if !ct.IsPolygon() {
			curved = true
		}
	}
	if !curved {
		t.Error("petal outline was not smoothed")
	}

	b := p.Bounds()
	if b.Center().X <= c.X {
		t.Errorf("petal center %v should lie right of %v", b.Center(), c)
	}
	if math.Abs(b.Center().Y-c.Y) > 0.5 {
		t.Errorf("petal is not symmetric about its axis: %v", b)
	}
	if a := geom.Area(p); a <= 0 || a >= math.Abs(Wedge(c, 20).Area()) {
		t.Errorf("petal area = %v", a)
	}
}

func TestWindowedHexagon(t *testing.T) {
	c := geom.Pt(200, 200)
	g := WindowedHexagon(c, 25, 0.5, 0.2)
	if g.Len() != 7 {
		t.Fatalf("children = %d, want 7", g.Len())
	}

	window := g.Children[0].Bounds()
	if !window.Center().Approx(c, 1e-9) {
		t.Errorf("window center = %v, want %v", window.Center(), c)
	}
	wantWidth := 2 * (25 * 0.5 * 0.8) * sqrt3 / 2
	if math.Abs(window.Width-wantWidth) > 1e-9 {
		t.Errorf("window width = %v, want %v", window.Width, wantWidth)
	}

	// panes are rotated copies: equal areas
	first := geom.Area(g.Children[1])
	for i := 2; i < 7; i++ {
		if a := geom.Area(g.Children[i]); math.Abs(a-first) > 1e-3 {
			t.Errorf("pane %d area = %v, want %v", i, a, first)
		}
	}
	if b := g.Bounds(); !b.Center().Approx(c, 1e-3) {
		t.Errorf("group center = %v, want %v", b.Center(), c)
	}
}

func TestSixPetalFlowerHexagon(t *testing.T) {
	c := geom.Pt(370, 160)
	g := SixPetalFlowerHexagon(c, 59, 0.6, 0.2)
	if g.Len() != 6 {
		t.Fatalf("children = %d, want 6", g.Len())
	}

	// the clip percentage does not change the petals
	other := SixPetalFlowerHexagon(c, 59, 0.1, 0.2)
	if g.Bounds() != other.Bounds() {
		t.Errorf("bounds differ with clip: %v vs %v", g.Bounds(), other.Bounds())
	}
	hex := Hexagon(c, 59).Bounds()
	if b := g.Bounds(); b.X < hex.X || b.X+b.Width > hex.X+hex.Width {
		t.Errorf("flower %v wider than its hexagon %v", b, hex)
	}
}

func TestParallelogramWedge(t *testing.T) {
	c := geom.Pt(0, 0)
	r := 30.0
	rhombus := r * r * sqrt3 / 2

	g := ParallelogramWedge(c, r, 0)
	if g.Len() != 2 {
		t.Fatalf("children = %d, want 2", g.Len())
	}
	if got := geom.Area(g); math.Abs(got-rhombus) > 1e-9 {
		t.Errorf("unframed area = %v, want %v", got, rhombus)
	}

	framed := ParallelogramWedge(c, r, 0.2)
	a0 := geom.Area(framed.Children[0])
	a1 := geom.Area(framed.Children[1])
	if math.Abs(a0-a1) > 1e-9 {
		t.Errorf("strips not congruent: %v vs %v", a0, a1)
	}
	if a0+a1 >= rhombus {
		t.Errorf("framed area %v not smaller than %v", a0+a1, rhombus)
	}
}

func TestParallelogramHexagon(t *testing.T) {
	c := geom.Pt(10, 10)
	r := 12.0

	tests := []struct {
		name         string
		showSurround bool
		want         int
	}{
		{"strips only", false, 3},
		{"with surround", true, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := ParallelogramHexagon(c, r, 0, tt.showSurround)
			if g.Len() != tt.want {
				t.Fatalf("children = %d, want %d", g.Len(), tt.want)
			}
			var strips float64
			for _, child := range g.Children[:3] {
				strips += geom.Area(child)
			}
			hex := math.Abs(Hexagon(c, r).Area())
			if math.Abs(strips-hex) > 1e-6 {
				t.Errorf("strips cover %v, hexagon is %v", strips, hex)
			}
		})
	}
}

func TestBuildersAreRepeatable(t *testing.T) {
	c := geom.Pt(5, 5)
	a := WindowedHexagon(c, 10, 0.5, 0.2)
	b := WindowedHexagon(c, 10, 0.5, 0.2)
	if a.Bounds() != b.Bounds() {
		t.Errorf("bounds differ: %v vs %v", a.Bounds(), b.Bounds())
	}
	if c != geom.Pt(5, 5) {
		t.Errorf("center changed to %v", c)
	}

	w := Wedge(c, 10)
	before := w.Points()
	_ = geom.Subtract(w, Wedge(c, 5))
	for i, p := range w.Points() {
		if p != before[i] {
			t.Errorf("subtract modified operand point %d", i)
		}
	}
}

func TestBuild(t *testing.T) {
	c := geom.Pt(100, 100)
	for _, m := range Motifs() {
		t.Run(string(m), func(t *testing.T) {
			if !m.Valid() {
				t.Errorf("%q not valid", m)
			}
			s, err := Build(m, c, 20, DefaultParams())
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if len(s.Contours()) == 0 {
				t.Error("no contours")
			}
		})
	}

	_, err := Build("star", c, 20, DefaultParams())
	if !errors.Is(err, ErrUnknownMotif) {
		t.Errorf("err = %v, want ErrUnknownMotif", err)
	}
	if Motif("star").Valid() {
		t.Error("star reported valid")
	}
}
