// Command hexpanel renders hexagon panel drawings to SVG.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/hexpanel/hexpanel/internal/document"
	"github.com/hexpanel/hexpanel/internal/engine"
	"github.com/hexpanel/hexpanel/internal/tiling"
	"github.com/hexpanel/hexpanel/internal/typeid"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("hexpanel", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("hexpanel", flag.ContinueOnError)
	var (
		sample      = fs.String("sample", document.SampleSidePanel, "built-in drawing: "+strings.Join(document.SampleNames(), ", "))
		in          = fs.String("in", "", "panel JSON file (overrides -sample)")
		out         = fs.String("o", "drawing.svg", "output SVG file, - for stdout")
		loose       = fs.Bool("loose", false, "let tiles reach the panel edge")
		printPoints = fs.Bool("print-points", false, "print tile centers instead of drawing")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	panel, err := loadPanel(*in, *sample)
	if err != nil {
		return err
	}
	if *loose {
		panel.Loose = true
	}

	if *printPoints {
		w := bufio.NewWriter(stdout)
		for _, p := range tiling.BeeHive(panel.Bounds, panel.Radius, tiling.WithLoose(panel.Loose)) {
			fmt.Fprintf(w, "%g,%g\n", p.X, p.Y)
		}
		return w.Flush()
	}

	var dst io.Writer = stdout
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		dst = f
	}

	sg := engine.BuildSceneGraph(panel)
	if err := engine.WriteSVG(dst, sg, panel.Bounds); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	if *out != "-" {
		slog.Info("drawing saved", "file", *out, "tiles", len(sg.Tiles()))
	}
	return nil
}

func loadPanel(path, sample string) (*document.Panel, error) {
	if path == "" {
		return document.NewSample(sample, typeid.NewPanelID())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read panel: %w", err)
	}
	return document.Parse(data)
}
