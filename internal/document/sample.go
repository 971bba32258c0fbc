package document

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/hexpanel/hexpanel/internal/geom"
	"github.com/hexpanel/hexpanel/internal/hexagon"
	"github.com/hexpanel/hexpanel/internal/typeid"
)

var ErrUnknownSample = errors.New("unknown sample")

const (
	SampleSidePanel = "side-panel"
	SampleSheet     = "sample"
)

var samples = map[string]func(id string) *Panel{
	SampleSidePanel: NewSidePanel,
	SampleSheet:     NewSampleSheet,
}

// SampleNames lists the built-in drawings, sorted.
func SampleNames() []string {
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// NewSample builds the named built-in drawing.
func NewSample(name, id string) (*Panel, error) {
	build, ok := samples[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSample, name)
	}
	return build(id), nil
}

// NewSidePanel is a 740x320 laser-cut side panel of six petal flowers inside
// a red cut-out frame.
func NewSidePanel(id string) *Panel {
	now := time.Now().UTC().Format(time.RFC3339)

	return &Panel{
		ID:        id,
		Name:      "Side panel",
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
		Bounds:    geom.Size{Width: 740, Height: 320},
		Radius:    60,
		Border:    1,
		Motif:     hexagon.MotifFlower,
		Params: hexagon.Params{
			Clip:    0.6,
			Framing: 0.2,
		},
		Style: Style{
			Stroke: "#008000", StrokeWidth: 1, Opacity: 1,
		},
		Frame:       true,
		FrameStroke: "#ff0000",
		Items:       []Item{},
	}
}

// NewSampleSheet lays out one of each basic shape for eyeballing the
// builders.
func NewSampleSheet(id string) *Panel {
	now := time.Now().UTC().Format(time.RFC3339)

	center := geom.Pt(50, 50)
	radius := 25.0
	black := Style{Stroke: "#000000", StrokeWidth: 1, Opacity: 1}

	return &Panel{
		ID:        id,
		Name:      "Sample",
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
		Bounds:    geom.Size{Width: 300, Height: 300},
		Params:    hexagon.DefaultParams(),
		Style:     black,
		Items: []Item{
			{
				ID: typeid.NewItemID(), Type: ItemTypeCircle,
				Center: center, Radius: radius, Style: black,
			},
			{
				ID: typeid.NewItemID(), Type: ItemTypeMotif, Motif: hexagon.MotifHexagon,
				Center: center, Radius: radius, Style: black,
			},
			{
				ID: typeid.NewItemID(), Type: ItemTypeMotif, Motif: hexagon.MotifWedge,
				Center: center, Radius: radius,
				Style: Style{Stroke: "#008000", StrokeWidth: 1, Opacity: 1},
			},
			{
				ID: typeid.NewItemID(), Type: ItemTypeMotif, Motif: hexagon.MotifTrapezoid,
				Center: center, Radius: radius, Params: hexagon.Params{Clip: 0.5}, Scale: 0.75,
				Style: Style{Stroke: "#0000ff", StrokeWidth: 1, Opacity: 1},
			},
			{
				ID: typeid.NewItemID(), Type: ItemTypeMotif, Motif: hexagon.MotifWindowed,
				Center: geom.Pt(200, 200), Radius: radius, Params: hexagon.DefaultParams(),
				Style: black,
			},
			{
				ID: typeid.NewItemID(), Type: ItemTypeCircle,
				Center: geom.Pt(100, 100), Radius: radius,
				Style: Style{Stroke: "#ff0000", StrokeWidth: 1, Opacity: 1},
			},
		},
	}
}
