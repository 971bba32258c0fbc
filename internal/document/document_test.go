package document

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/hexpanel/hexpanel/internal/geom"
	"github.com/hexpanel/hexpanel/internal/hexagon"
	"github.com/hexpanel/hexpanel/internal/tiling"
)

func TestSamplesValidate(t *testing.T) {
	for _, name := range SampleNames() {
		t.Run(name, func(t *testing.T) {
			p, err := NewSample(name, "panel_test")
			if err != nil {
				t.Fatalf("NewSample: %v", err)
			}
			if err := p.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}

	if _, err := NewSample("nope", "x"); !errors.Is(err, ErrUnknownSample) {
		t.Errorf("err = %v, want ErrUnknownSample", err)
	}
}

func TestSidePanel(t *testing.T) {
	p := NewSidePanel("panel_1")
	if !p.Tiled() || p.Motif != hexagon.MotifFlower {
		t.Errorf("motif = %q", p.Motif)
	}
	if p.TileRadius() != 59 {
		t.Errorf("TileRadius() = %v, want 59", p.TileRadius())
	}
	if p.Bounds.Width != 740 || p.Bounds.Height != 320 {
		t.Errorf("bounds = %v", p.Bounds)
	}
}

func TestSampleSheet(t *testing.T) {
	p := NewSampleSheet("panel_2")
	if p.Tiled() {
		t.Error("sample sheet should not tile")
	}
	if len(p.Items) != 6 {
		t.Fatalf("items = %d, want 6", len(p.Items))
	}
	if p.Items[3].Motif != hexagon.MotifTrapezoid || p.Items[3].Scale != 0.75 {
		t.Errorf("item 3 = %+v", p.Items[3])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Panel)
	}{
		{"border swallows radius", func(p *Panel) { p.Border = p.Radius }},
		{"negative width", func(p *Panel) { p.Bounds.Width = -1 }},
		{"unknown motif", func(p *Panel) { p.Motif = "star" }},
		{"nan clip", func(p *Panel) { p.Params.Clip = math.NaN() }},
		{"inf radius", func(p *Panel) { p.Radius = math.Inf(1) }},
		{"zero radius negative border", func(p *Panel) { p.Radius, p.Border = 0, -5 }},
		{"negative border", func(p *Panel) { p.Border = -1 }},
		{"too many tiles", func(p *Panel) { p.Radius, p.Border = 0.01, 0 }},
		{"huge bounds", func(p *Panel) { p.Bounds = geom.Size{Width: 1e7, Height: 1e7} }},
		{"negative stroke", func(p *Panel) { p.Style.StrokeWidth = -2 }},
		{"bad item type", func(p *Panel) { p.Items = append(p.Items, Item{Type: "blob", Radius: 1}) }},
		{"zero item radius", func(p *Panel) { p.Items = append(p.Items, Item{Type: ItemTypeCircle}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewSidePanel("panel_3")
			tt.mutate(p)
			if err := p.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestEstimatedTiles(t *testing.T) {
	p := NewSidePanel("panel_5")
	got := len(tiling.BeeHive(p.Bounds, p.Radius, tiling.WithLoose(true)))
	if est := p.EstimatedTiles(); est < float64(got) || est > MaxTiles {
		t.Errorf("EstimatedTiles() = %v, BeeHive laid out %d", est, got)
	}

	p.Radius = 0
	if !math.IsInf(p.EstimatedTiles(), 1) {
		t.Errorf("zero radius estimate = %v, want +Inf", p.EstimatedTiles())
	}
}

func TestParse(t *testing.T) {
	data, err := json.Marshal(NewSidePanel("panel_4"))
	if err != nil {
		t.Fatal(err)
	}
	p, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.ID != "panel_4" || p.Params.Clip != 0.6 {
		t.Errorf("parsed %+v", p)
	}

	if _, err := Parse([]byte(`{"bounds":`)); !errors.Is(err, ErrInvalid) {
		t.Errorf("truncated json err = %v, want ErrInvalid", err)
	}
	if _, err := Parse([]byte(`{"bounds":{"width":740,"height":320},"radius":0,"border":-5,"motif":"hexagon"}`)); !errors.Is(err, ErrInvalid) {
		t.Errorf("zero radius err = %v, want ErrInvalid", err)
	}
	if _, err := Parse([]byte(`{"motif":"flower","radius":1,"border":2}`)); !errors.Is(err, ErrInvalid) {
		t.Errorf("bad radius err = %v, want ErrInvalid", err)
	}
}

func TestNewEmptyPanel(t *testing.T) {
	p := NewEmptyPanel("panel_5", "Blank")
	if err := p.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if p.Items == nil {
		t.Error("Items should marshal as an empty list")
	}
}
