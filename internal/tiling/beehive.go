// Package tiling computes tile centers for hexagon panel layouts.
package tiling

import (
	"math"

	"github.com/hexpanel/hexpanel/internal/geom"
)

type options struct {
	loose bool
}

// Option configures BeeHive.
type Option func(*options)

// WithLoose switches containment from the tile's 2r square to the pointy-top
// hexagon's own extents, which admits tiles whose square would clip at the
// left or right edge.
func WithLoose(loose bool) Option {
	return func(o *options) { o.loose = loose }
}

// StaggerOffset is the offset from a tile center to its lower-right
// neighbour on a hex grid of circumradius radius.
func StaggerOffset(radius float64) geom.Point {
	return geom.Pt(0, radius).Rotate(-60, geom.Point{}).Add(geom.Pt(0, radius))
}

// BeeHive returns the centers of a hexagonal tiling grown outward from the
// middle of bounds. Every returned tile lies fully inside the rectangle
// (0, 0, bounds.Width, bounds.Height). When not even the middle tile fits,
// or radius is not a positive finite number, the middle point alone is
// returned.
//
// Rows are emitted center line first, then the center line's copies above
// and below, then the staggered rows.
func BeeHive(bounds geom.Size, radius float64, opts ...Option) []geom.Point {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if !(radius > 0) || math.IsInf(radius, 0) {
		return []geom.Point{bounds.Center()}
	}

	container := geom.Rect{Width: bounds.Width, Height: bounds.Height}
	half := geom.Pt(radius, radius)
	if o.loose {
		half = geom.Pt(radius*math.Sqrt(3)/2, radius)
	}
	contained := func(at geom.Point) bool {
		return container.Contains(geom.RectAt(at.Sub(half), geom.Size{Width: 2 * half.X, Height: 2 * half.Y}))
	}

	stagger := StaggerOffset(radius)
	xOffset := geom.Pt(stagger.X*2, 0)
	yOffset := geom.Pt(0, stagger.Y*2)
	center := bounds.Center()

	centerLine := walkRow(center, xOffset, contained)
	if len(centerLine) == 0 {
		return []geom.Point{center}
	}
	points := append([]geom.Point(nil), centerLine...)

	staggerLine := walkRow(center.Add(stagger), xOffset, contained)

	// the center line is symmetric about the middle, so one walk covers both
	// directions
	anchor := centerLine[0]
	for at := anchor.Add(yOffset); contained(at); at = at.Add(yOffset) {
		shift := at.Sub(anchor)
		points = appendShifted(points, centerLine, shift)
		points = appendShifted(points, centerLine, shift.Neg())
	}

	if len(staggerLine) == 0 {
		return points
	}
	anchor = staggerLine[0]
	for at := anchor; contained(at); at = at.Add(yOffset) {
		points = appendShifted(points, staggerLine, at.Sub(anchor))
	}
	// start one row up so the template row is not emitted twice
	for at := anchor.Sub(yOffset); contained(at); at = at.Sub(yOffset) {
		points = appendShifted(points, staggerLine, at.Sub(anchor))
	}
	return points
}

// walkRow collects contained points from start stepping +step, then from
// start-step stepping -step.
func walkRow(start, step geom.Point, contained func(geom.Point) bool) []geom.Point {
	var row []geom.Point
	for at := start; contained(at); at = at.Add(step) {
		row = append(row, at)
	}
	for at := start.Sub(step); contained(at); at = at.Sub(step) {
		row = append(row, at)
	}
	return row
}

func appendShifted(dst, row []geom.Point, shift geom.Point) []geom.Point {
	for _, p := range row {
		dst = append(dst, p.Add(shift))
	}
	return dst
}
