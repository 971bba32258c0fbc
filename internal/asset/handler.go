package asset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"

	"github.com/hexpanel/hexpanel/internal/auth"
	"github.com/hexpanel/hexpanel/internal/db"
	"github.com/hexpanel/hexpanel/internal/design"
	"github.com/hexpanel/hexpanel/internal/document"
	"github.com/hexpanel/hexpanel/internal/typeid"
)

const svgMediaType = "image/svg+xml"

// Store keeps published drawings as files named by asset ID.
type Store struct {
	dir      string // directory to store asset files
	minifier *minify.M
}

// NewStore creates a store that writes into dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create asset dir: %w", err)
	}
	m := minify.New()
	m.AddFunc(svgMediaType, svg.Minify)
	return &Store{dir: dir, minifier: m}, nil
}

// Put minifies and stores an SVG document and returns its ID and URL.
func (s *Store) Put(data []byte) (id, url string, size int64, err error) {
	small, err := s.minifier.Bytes(svgMediaType, data)
	if err != nil {
		return "", "", 0, fmt.Errorf("minify svg: %w", err)
	}

	id = typeid.NewAssetID()
	filename := id + ".svg"
	if err := os.WriteFile(filepath.Join(s.dir, filename), small, 0644); err != nil {
		return "", "", 0, fmt.Errorf("write asset: %w", err)
	}
	return id, "/assets/" + filename, int64(len(small)), nil
}

// Serve returns an http.Handler that serves stored asset files with caching headers.
func (s *Store) Serve() http.Handler {
	fs := http.FileServer(http.Dir(s.dir))
	return http.StripPrefix("/assets/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Asset IDs are unique, so files are immutable
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		fs.ServeHTTP(w, r)
	}))
}

// Delete removes an asset file from disk (for cleanup).
func (s *Store) Delete(assetID string) error {
	if err := os.Remove(filepath.Join(s.dir, assetID+".svg")); err != nil {
		return fmt.Errorf("asset not found: %s", assetID)
	}
	return nil
}

// Renderer draws a design the user may read.
type Renderer interface {
	RenderSVG(ctx context.Context, designID, userID string) ([]byte, *document.Panel, error)
}

// Recorder stores the asset row for a published drawing.
type Recorder interface {
	CreateAsset(ctx context.Context, arg db.CreateAssetParams) (db.Asset, error)
}

// PublishResponse is returned from the publish endpoint.
type PublishResponse struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	DesignID string `json:"designId"`
	Version  int    `json:"version"`
	Size     int64  `json:"size"`
}

// Handler publishes designs as static SVG assets.
type Handler struct {
	store    *Store
	designs  Renderer
	recorder Recorder
}

func NewHandler(store *Store, designs Renderer, recorder Recorder) *Handler {
	return &Handler{store: store, designs: designs, recorder: recorder}
}

// Publish handles POST /api/designs/{designId}/publish.
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	designID := mux.Vars(r)["designId"]

	data, panel, err := h.designs.RenderSVG(r.Context(), designID, userID)
	switch {
	case errors.Is(err, design.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	case errors.Is(err, design.ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
		return
	case err != nil:
		slog.Error("render design", "design", designID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	assetID, url, size, err := h.store.Put(data)
	if err != nil {
		slog.Error("store asset", "design", designID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save file"})
		return
	}

	_, err = h.recorder.CreateAsset(r.Context(), db.CreateAssetParams{
		ID:       assetID,
		DesignID: designID,
		Version:  int32(panel.Version),
		URL:      url,
		Size:     size,
	})
	if err != nil {
		slog.Error("record asset", "asset", assetID, "error", err)
		h.store.Delete(assetID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	slog.Info("design published", "design", designID, "asset", assetID, "size", size)
	writeJSON(w, http.StatusCreated, PublishResponse{
		ID:       assetID,
		URL:      url,
		DesignID: designID,
		Version:  panel.Version,
		Size:     size,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
