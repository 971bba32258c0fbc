package export

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/hexpanel/hexpanel/internal/document"
)

func newRouter() *mux.Router {
	h := NewHandler()
	r := mux.NewRouter()
	r.HandleFunc("/export/svg", h.ExportSVG).Methods("POST")
	r.HandleFunc("/export/samples/{name}.svg", h.ExportSample).Methods("GET")
	return r
}

func TestExportSVG(t *testing.T) {
	body, err := json.Marshal(document.NewSidePanel("panel_export"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		url      string
		filename string
	}{
		{"default name", "/export/svg", `attachment; filename="drawing.svg"`},
		{"custom name", "/export/svg?name=side+panel", `attachment; filename="side-panel.svg"`},
		{"path traversal", "/export/svg?name=../../etc", `attachment; filename="------etc.svg"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", tt.url, bytes.NewReader(body))
			rec := httptest.NewRecorder()
			newRouter().ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
				t.Errorf("Content-Type = %q", ct)
			}
			if cd := rec.Header().Get("Content-Disposition"); cd != tt.filename {
				t.Errorf("Content-Disposition = %q, want %q", cd, tt.filename)
			}
			if !strings.Contains(rec.Body.String(), "<svg") {
				t.Error("body is not svg")
			}
		})
	}
}

func TestExportSVG_InvalidPanel(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown motif", `{"motif":"star","radius":10}`},
		{"zero radius", `{"bounds":{"width":740,"height":320},"radius":0,"border":-5,"motif":"hexagon"}`},
		{"too many tiles", `{"bounds":{"width":100000,"height":100000},"radius":1,"motif":"hexagon"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/export/svg", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			newRouter().ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestExportSample(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{document.SampleSidePanel, http.StatusOK},
		{document.SampleSheet, http.StatusOK},
		{"missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/export/samples/"+tt.name+".svg", nil)
			rec := httptest.NewRecorder()
			newRouter().ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.status == http.StatusOK {
				want := `attachment; filename="` + tt.name + `.svg"`
				if cd := rec.Header().Get("Content-Disposition"); cd != want {
					t.Errorf("Content-Disposition = %q, want %q", cd, want)
				}
			}
		})
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", "drawing"},
		{"panel.svg", "panel"},
		{"my panel!", "my-panel-"},
		{"ok_name-1", "ok_name-1"},
	}
	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
