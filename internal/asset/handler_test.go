package asset

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/hexpanel/hexpanel/internal/auth"
	"github.com/hexpanel/hexpanel/internal/db"
	"github.com/hexpanel/hexpanel/internal/design"
	"github.com/hexpanel/hexpanel/internal/document"
)

const drawing = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
    <path d="M 0 0 L 10 0 L 10 10 Z" fill="none" stroke="#000000"/>
</svg>`

type fakeRenderer struct{}

func (fakeRenderer) RenderSVG(_ context.Context, designID, userID string) ([]byte, *document.Panel, error) {
	switch {
	case designID == "design_missing":
		return nil, nil, design.ErrNotFound
	case userID != "user_a":
		return nil, nil, design.ErrForbidden
	}
	p := document.NewEmptyPanel(designID, "x")
	p.Version = 3
	return []byte(drawing), p, nil
}

type fakeRecorder struct {
	assets []db.CreateAssetParams
	err    error
}

func (f *fakeRecorder) CreateAsset(_ context.Context, arg db.CreateAssetParams) (db.Asset, error) {
	if f.err != nil {
		return db.Asset{}, f.err
	}
	f.assets = append(f.assets, arg)
	return db.Asset{ID: arg.ID, DesignID: arg.DesignID, Version: arg.Version, URL: arg.URL, Size: arg.Size}, nil
}

func TestStore_PutServeDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(filepath.Join(dir, "assets"))
	if err != nil {
		t.Fatal(err)
	}

	id, url, size, err := s.Put([]byte(drawing))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !strings.HasPrefix(id, "asset_") || url != "/assets/"+id+".svg" {
		t.Errorf("id = %q url = %q", id, url)
	}
	if size <= 0 || size >= int64(len(drawing)) {
		t.Errorf("size = %d, want minified below %d", size, len(drawing))
	}

	rec := httptest.NewRecorder()
	s.Serve().ServeHTTP(rec, httptest.NewRequest("GET", url, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("serve status = %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Cache-Control"), "immutable") {
		t.Errorf("Cache-Control = %q", rec.Header().Get("Cache-Control"))
	}
	if !strings.Contains(rec.Body.String(), "<path") {
		t.Errorf("body = %s", rec.Body.String())
	}

	if err := s.Delete(id); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "assets", id+".svg")); !os.IsNotExist(err) {
		t.Errorf("file still present: %v", err)
	}
	if err := s.Delete(id); err == nil {
		t.Error("second delete succeeded")
	}
}

func TestHandler_Publish(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		designID string
		userID   string
		recErr   error
		status   int
	}{
		{"owner", "design_1", "user_a", nil, http.StatusCreated},
		{"stranger", "design_1", "user_b", nil, http.StatusForbidden},
		{"missing", "design_missing", "user_a", nil, http.StatusNotFound},
		{"record fails", "design_1", "user_a", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &fakeRecorder{err: tt.recErr}
			h := NewHandler(s, fakeRenderer{}, recorder)

			r := mux.NewRouter()
			r.HandleFunc("/api/designs/{designId}/publish", h.Publish).Methods("POST")

			req := httptest.NewRequest("POST", "/api/designs/"+tt.designID+"/publish", nil)
			req = req.WithContext(auth.WithUserID(req.Context(), tt.userID))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			if tt.status != http.StatusCreated {
				return
			}

			var resp PublishResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.DesignID != "design_1" || resp.Version != 3 || resp.URL == "" {
				t.Errorf("response = %+v", resp)
			}
			if len(recorder.assets) != 1 || recorder.assets[0].ID != resp.ID || recorder.assets[0].Version != 3 {
				t.Errorf("recorded = %+v", recorder.assets)
			}
		})
	}
}
