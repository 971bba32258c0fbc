package geom

import "math"

// Smooth returns a copy of the path with Catmull-Rom handles on every
// segment. factor picks the parameterization: 0 uniform, 0.5 centripetal,
// 1 chordal. Open paths keep straight handles at their two ends.
func (p *Path) Smooth(factor float64) *Path {
	out := p.clone()
	n := len(out.Segments)
	if n < 3 {
		return out
	}

	for i := range out.Segments {
		first := !p.Closed && i == 0
		last := !p.Closed && i == n-1

		p1 := p.Segments[i].Point
		p0, p2 := p1, p1
		if p.Closed || i > 0 {
			p0 = p.Segments[(i-1+n)%n].Point
		}
		if p.Closed || i < n-1 {
			p2 = p.Segments[(i+1)%n].Point
		}

		d1a := math.Pow(p0.Distance(p1), factor)
		d2a := math.Pow(p1.Distance(p2), factor)
		d1_2a := d1a * d1a
		d2_2a := d2a * d2a

		if !first {
			a := 2*d2_2a + 3*d2a*d1a + d1_2a
			nn := 3 * d2a * (d2a + d1a)
			out.Segments[i].In = Point{}
			if nn != 0 {
				out.Segments[i].In = Point{
					X: (d2_2a*p0.X+a*p1.X-d1_2a*p2.X)/nn - p1.X,
					Y: (d2_2a*p0.Y+a*p1.Y-d1_2a*p2.Y)/nn - p1.Y,
				}
			}
		}
		if !last {
			a := 2*d1_2a + 3*d1a*d2a + d2_2a
			nn := 3 * d1a * (d1a + d2a)
			out.Segments[i].Out = Point{}
			if nn != 0 {
				out.Segments[i].Out = Point{
					X: (d1_2a*p2.X+a*p1.X-d2_2a*p0.X)/nn - p1.X,
					Y: (d1_2a*p2.Y+a*p1.Y-d2_2a*p0.Y)/nn - p1.Y,
				}
			}
		}
	}
	return out
}
