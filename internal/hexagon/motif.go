package hexagon

import (
	"errors"
	"fmt"

	"github.com/hexpanel/hexpanel/internal/geom"
)

var ErrUnknownMotif = errors.New("unknown motif")

// Motif names a shape that can be stamped at every tile center.
type Motif string

const (
	MotifHexagon       Motif = "hexagon"
	MotifWedge         Motif = "wedge"
	MotifTrapezoid     Motif = "trapezoid"
	MotifPetal         Motif = "petal"
	MotifWindowed      Motif = "windowed"
	MotifFlower        Motif = "flower"
	MotifParallelogram Motif = "parallelogram"
)

// Motifs lists every known motif in a stable order.
func Motifs() []Motif {
	return []Motif{
		MotifHexagon, MotifWedge, MotifTrapezoid, MotifPetal,
		MotifWindowed, MotifFlower, MotifParallelogram,
	}
}

// Valid reports whether m is a known motif.
func (m Motif) Valid() bool {
	for _, k := range Motifs() {
		if k == m {
			return true
		}
	}
	return false
}

// Params carries the numeric knobs shared by the motifs. Each motif reads
// only the fields it needs.
type Params struct {
	Clip         float64 `json:"clip"`
	Framing      float64 `json:"framing"`
	FrameWidth   float64 `json:"frameWidth"`
	ShowSurround bool    `json:"showSurround"`
}

// DefaultParams matches the defaults of the individual builders.
func DefaultParams() Params {
	return Params{Clip: 0.5, Framing: 0.2, FrameWidth: 0.1}
}

// Build stamps motif m at c with circumradius r.
func Build(m Motif, c geom.Point, r float64, p Params) (geom.Shape, error) {
	switch m {
	case MotifHexagon:
		return Hexagon(c, r), nil
	case MotifWedge:
		return Wedge(c, r), nil
	case MotifTrapezoid:
		return TrapezoidalWedge(c, r, p.Clip), nil
	case MotifPetal:
		return Petal(c, r, 1-p.Framing), nil
	case MotifWindowed:
		return WindowedHexagon(c, r, p.Clip, p.Framing), nil
	case MotifFlower:
		return SixPetalFlowerHexagon(c, r, p.Clip, p.Framing), nil
	case MotifParallelogram:
		return ParallelogramHexagon(c, r, p.FrameWidth, p.ShowSurround), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMotif, string(m))
	}
}
