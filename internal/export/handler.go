package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/hexpanel/hexpanel/internal/document"
	"github.com/hexpanel/hexpanel/internal/engine"
	"github.com/hexpanel/hexpanel/internal/typeid"
)

const maxPanelSize = 1 << 20 // 1MB

// DefaultName is the download name used when the client does not ask for one.
const DefaultName = "drawing"

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// ExportSVG renders the panel in the request body and returns it as an SVG
// attachment.
func (h *Handler) ExportSVG(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPanelSize)

	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "request too large", http.StatusBadRequest)
		return
	}

	panel, err := document.Parse(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeSVG(w, r, panel, SanitizeName(r.URL.Query().Get("name")))
}

// ExportSample renders one of the built-in drawings.
func (h *Handler) ExportSample(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	panel, err := document.NewSample(name, typeid.NewPanelID())
	if errors.Is(err, document.ErrUnknownSample) {
		http.Error(w, "unknown sample", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("build sample", "sample", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.writeSVG(w, r, panel, SanitizeName(name))
}

func (h *Handler) writeSVG(w http.ResponseWriter, r *http.Request, panel *document.Panel, name string) {
	sg := engine.BuildSceneGraph(panel)

	var buf bytes.Buffer
	if err := engine.WriteSVG(&buf, sg, panel.Bounds); err != nil {
		slog.Error("render svg", "panel", panel.ID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.svg"`, name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("write svg response", "error", err)
		return
	}

	slog.Info("export complete",
		"panel", panel.ID,
		"tiles", len(sg.Tiles()),
		"size", buf.Len(),
		"remote", r.RemoteAddr,
	)
}

// SanitizeName reduces a requested file name to letters, digits, '-' and
// '_'. An empty name becomes DefaultName.
func SanitizeName(name string) string {
	name = strings.TrimSuffix(name, ".svg")
	if name == "" {
		return DefaultName
	}
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)
}
