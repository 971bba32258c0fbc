package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/hexpanel/hexpanel/internal/geom"
	"github.com/hexpanel/hexpanel/internal/hexagon"
)

var ErrInvalid = errors.New("invalid panel")

// MaxTiles bounds how many tiles a panel may lay out. Panel documents arrive
// from anonymous clients and each tile is a handful of boolean operations.
const MaxTiles = 10000

// Panel describes one drawing: a rectangular panel tiled with a hexagon
// motif, plus any free-standing items.
type Panel struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Version   int    `json:"version"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`

	Bounds geom.Size `json:"bounds"`
	// Radius is the tiling pitch radius; motifs are drawn at Radius-Border
	// so neighbouring tiles do not touch.
	Radius float64        `json:"radius"`
	Border float64        `json:"border"`
	Loose  bool           `json:"loose"`
	Motif  hexagon.Motif  `json:"motif,omitempty"`
	Params hexagon.Params `json:"params"`
	Style  Style          `json:"style"`

	Frame       bool   `json:"frame"`
	FrameStroke string `json:"frameStroke,omitempty"`

	Items []Item `json:"items"`
}

type Style struct {
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	Opacity     float64 `json:"opacity"`
}

type ItemType string

const (
	ItemTypeCircle ItemType = "circle"
	ItemTypeMotif  ItemType = "motif"
)

// Item is a single shape placed by hand rather than by the tiling.
type Item struct {
	ID     string         `json:"id"`
	Type   ItemType       `json:"type"`
	Motif  hexagon.Motif  `json:"motif,omitempty"`
	Center geom.Point     `json:"center"`
	Radius float64        `json:"radius"`
	Params hexagon.Params `json:"params"`
	// Scale shrinks or grows the finished shape about its own center.
	// Zero means unscaled.
	Scale float64 `json:"scale,omitempty"`
	Style Style   `json:"style"`
}

// Tiled reports whether the panel stamps a motif across its bounds.
func (p *Panel) Tiled() bool {
	return p.Motif != ""
}

// TileRadius is the radius each motif is drawn at.
func (p *Panel) TileRadius() float64 {
	return p.Radius - p.Border
}

// EstimatedTiles is an upper estimate of the tiles BeeHive lays out over
// the panel: columns at sqrt(3)*r pitch by rows at 1.5*r pitch.
func (p *Panel) EstimatedTiles() float64 {
	if p.Radius <= 0 {
		return math.Inf(1)
	}
	cols := p.Bounds.Width/(math.Sqrt(3)*p.Radius) + 1
	rows := p.Bounds.Height/(1.5*p.Radius) + 1
	return cols * rows
}

// Validate checks the values a drawing needs to make sense. Builders accept
// anything, so this runs at the edges: API input, stored documents, files.
func (p *Panel) Validate() error {
	if !finite(p.Bounds.Width, p.Bounds.Height) || p.Bounds.Width < 0 || p.Bounds.Height < 0 {
		return fmt.Errorf("%w: bounds must be non-negative", ErrInvalid)
	}
	if p.Tiled() {
		if !p.Motif.Valid() {
			return fmt.Errorf("%w: %w %q", ErrInvalid, hexagon.ErrUnknownMotif, string(p.Motif))
		}
		if !finite(p.Radius, p.Border) || p.Radius <= 0 || p.Border < 0 {
			return fmt.Errorf("%w: radius must be positive and border non-negative", ErrInvalid)
		}
		if p.TileRadius() <= 0 {
			return fmt.Errorf("%w: radius must exceed border", ErrInvalid)
		}
		if n := p.EstimatedTiles(); n > MaxTiles {
			return fmt.Errorf("%w: about %.0f tiles, at most %d allowed", ErrInvalid, n, MaxTiles)
		}
		if err := validateParams(p.Params); err != nil {
			return err
		}
	}
	if !finite(p.Style.StrokeWidth) || p.Style.StrokeWidth < 0 {
		return fmt.Errorf("%w: stroke width must be non-negative", ErrInvalid)
	}
	for i, item := range p.Items {
		if err := item.validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

func (it *Item) validate() error {
	switch it.Type {
	case ItemTypeCircle:
	case ItemTypeMotif:
		if !it.Motif.Valid() {
			return fmt.Errorf("%w: %w %q", ErrInvalid, hexagon.ErrUnknownMotif, string(it.Motif))
		}
		if err := validateParams(it.Params); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown item type %q", ErrInvalid, string(it.Type))
	}
	if !finite(it.Center.X, it.Center.Y, it.Radius, it.Scale) || it.Radius <= 0 {
		return fmt.Errorf("%w: item radius must be positive", ErrInvalid)
	}
	return nil
}

func validateParams(p hexagon.Params) error {
	if !finite(p.Clip, p.Framing, p.FrameWidth) {
		return fmt.Errorf("%w: params must be finite", ErrInvalid)
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Parse decodes and validates a panel document.
func Parse(data []byte) (*Panel, error) {
	var p Panel
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// NewEmptyPanel creates a blank panel for a new design.
func NewEmptyPanel(id, name string) *Panel {
	return &Panel{
		ID:      id,
		Name:    name,
		Version: 1,
		Bounds:  geom.Size{Width: 740, Height: 320},
		Radius:  60,
		Border:  1,
		Motif:   hexagon.MotifHexagon,
		Params:  hexagon.DefaultParams(),
		Style: Style{
			Stroke: "#000000", StrokeWidth: 1, Opacity: 1,
		},
		Frame:       true,
		FrameStroke: "#ff0000",
		Items:       []Item{},
	}
}
