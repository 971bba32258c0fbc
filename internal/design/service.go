package design

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hexpanel/hexpanel/internal/db"
	"github.com/hexpanel/hexpanel/internal/document"
	"github.com/hexpanel/hexpanel/internal/engine"
	"github.com/hexpanel/hexpanel/internal/typeid"
)

var (
	ErrNotFound  = errors.New("design not found")
	ErrForbidden = errors.New("forbidden")
	ErrInvalid   = errors.New("invalid design")
)

const timeFormat = "2006-01-02T15:04:05Z"

// Store is the slice of db.Queries the design service needs.
type Store interface {
	CreateDesign(ctx context.Context, arg db.CreateDesignParams) (db.Design, error)
	GetDesign(ctx context.Context, id string) (db.Design, error)
	ListDesignsByOwner(ctx context.Context, ownerID string) ([]db.Design, error)
	UpdateDesign(ctx context.Context, arg db.UpdateDesignParams) (db.Design, error)
	DeleteDesign(ctx context.Context, id string) error
	CreateDesignVersion(ctx context.Context, arg db.CreateDesignVersionParams) (db.DesignVersion, error)
	GetLatestVersion(ctx context.Context, designID string) (db.DesignVersion, error)
	ListDesignVersions(ctx context.Context, designID string) ([]db.DesignVersion, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

type Design struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	OwnerID   string  `json:"ownerId"`
	Motif     string  `json:"motif"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

type Version struct {
	ID        string `json:"id"`
	Version   int    `json:"version"`
	CreatedBy string `json:"createdBy"`
	CreatedAt string `json:"createdAt"`
}

// Create stores a new design and its first version. A nil panel starts
// from the blank default panel.
func (s *Service) Create(ctx context.Context, name, ownerID string, panel *document.Panel) (*Design, error) {
	designID := typeid.NewDesignID()
	if panel == nil {
		panel = document.NewEmptyPanel(designID, name)
	}
	panel.ID = designID
	panel.Name = name
	if err := panel.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	dbDesign, err := s.store.CreateDesign(ctx, db.CreateDesignParams{
		ID:      designID,
		Name:    name,
		OwnerID: ownerID,
		Motif:   string(panel.Motif),
		Width:   panel.Bounds.Width,
		Height:  panel.Bounds.Height,
	})
	if err != nil {
		return nil, fmt.Errorf("create design: %w", err)
	}

	if _, err := s.appendVersion(ctx, designID, ownerID, panel); err != nil {
		return nil, fmt.Errorf("create initial version: %w", err)
	}

	return dbDesignToDesign(dbDesign), nil
}

func (s *Service) Get(ctx context.Context, designID, userID string) (*Design, error) {
	dbDesign, err := s.ownedDesign(ctx, designID, userID)
	if err != nil {
		return nil, err
	}
	return dbDesignToDesign(dbDesign), nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Design, error) {
	dbDesigns, err := s.store.ListDesignsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list designs: %w", err)
	}

	designs := make([]Design, len(dbDesigns))
	for i, d := range dbDesigns {
		designs[i] = *dbDesignToDesign(d)
	}
	return designs, nil
}

// Update saves panel as the design's next version and refreshes the
// design's summary columns.
func (s *Service) Update(ctx context.Context, designID, userID string, panel *document.Panel) (*Version, error) {
	if panel == nil {
		return nil, fmt.Errorf("%w: missing panel", ErrInvalid)
	}
	if err := panel.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	dbDesign, err := s.ownedDesign(ctx, designID, userID)
	if err != nil {
		return nil, err
	}

	panel.ID = designID
	if panel.Name == "" {
		panel.Name = dbDesign.Name
	}

	v, err := s.appendVersion(ctx, designID, userID, panel)
	if err != nil {
		return nil, fmt.Errorf("append version: %w", err)
	}

	_, err = s.store.UpdateDesign(ctx, db.UpdateDesignParams{
		ID:     designID,
		Name:   panel.Name,
		Motif:  string(panel.Motif),
		Width:  panel.Bounds.Width,
		Height: panel.Bounds.Height,
	})
	if err != nil {
		return nil, fmt.Errorf("update design: %w", err)
	}
	return v, nil
}

func (s *Service) Delete(ctx context.Context, designID, userID string) error {
	if _, err := s.ownedDesign(ctx, designID, userID); err != nil {
		return err
	}
	if err := s.store.DeleteDesign(ctx, designID); err != nil {
		return fmt.Errorf("delete design: %w", err)
	}
	return nil
}

// LatestVersion returns the newest stored panel of a design.
func (s *Service) LatestVersion(ctx context.Context, designID, userID string) (*document.Panel, error) {
	if _, err := s.ownedDesign(ctx, designID, userID); err != nil {
		return nil, err
	}
	return s.latestPanel(ctx, designID)
}

func (s *Service) ListVersions(ctx context.Context, designID, userID string) ([]Version, error) {
	if _, err := s.ownedDesign(ctx, designID, userID); err != nil {
		return nil, err
	}

	dbVersions, err := s.store.ListDesignVersions(ctx, designID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}

	versions := make([]Version, len(dbVersions))
	for i, v := range dbVersions {
		versions[i] = dbVersionToVersion(v)
	}
	return versions, nil
}

// RenderSVG draws the latest version of a design.
func (s *Service) RenderSVG(ctx context.Context, designID, userID string) ([]byte, *document.Panel, error) {
	panel, err := s.LatestVersion(ctx, designID, userID)
	if err != nil {
		return nil, nil, err
	}

	sg := engine.BuildSceneGraph(panel)
	var buf bytes.Buffer
	if err := engine.WriteSVG(&buf, sg, panel.Bounds); err != nil {
		return nil, nil, fmt.Errorf("render svg: %w", err)
	}
	return buf.Bytes(), panel, nil
}

// LoadPanel returns the latest panel without an ownership check. The
// preview hub uses it after the websocket handshake has authorized the
// user.
func (s *Service) LoadPanel(ctx context.Context, designID string) (*document.Panel, error) {
	return s.latestPanel(ctx, designID)
}

// SavePanel appends a version on behalf of the design owner.
func (s *Service) SavePanel(ctx context.Context, designID string, panel *document.Panel) error {
	dbDesign, err := s.store.GetDesign(ctx, designID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get design: %w", err)
	}
	_, err = s.Update(ctx, designID, dbDesign.OwnerID, panel)
	return err
}

func (s *Service) latestPanel(ctx context.Context, designID string) (*document.Panel, error) {
	v, err := s.store.GetLatestVersion(ctx, designID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get latest version: %w", err)
	}

	panel, err := document.Parse(v.Panel)
	if err != nil {
		return nil, fmt.Errorf("decode version %d: %w", v.Version, err)
	}
	panel.Version = int(v.Version)
	return panel, nil
}

func (s *Service) appendVersion(ctx context.Context, designID, userID string, panel *document.Panel) (*Version, error) {
	panel.UpdatedAt = time.Now().UTC().Format(timeFormat)
	if panel.CreatedAt == "" {
		panel.CreatedAt = panel.UpdatedAt
	}

	data, err := json.Marshal(panel)
	if err != nil {
		return nil, fmt.Errorf("marshal panel: %w", err)
	}

	dbVersion, err := s.store.CreateDesignVersion(ctx, db.CreateDesignVersionParams{
		ID:        typeid.NewVersionID(),
		DesignID:  designID,
		Panel:     data,
		CreatedBy: userID,
	})
	if err != nil {
		return nil, err
	}
	panel.Version = int(dbVersion.Version)

	v := dbVersionToVersion(dbVersion)
	return &v, nil
}

func (s *Service) ownedDesign(ctx context.Context, designID, userID string) (db.Design, error) {
	dbDesign, err := s.store.GetDesign(ctx, designID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.Design{}, ErrNotFound
		}
		return db.Design{}, fmt.Errorf("get design: %w", err)
	}
	if dbDesign.OwnerID != userID {
		return db.Design{}, ErrForbidden
	}
	return dbDesign, nil
}

func dbDesignToDesign(d db.Design) *Design {
	return &Design{
		ID:        d.ID,
		Name:      d.Name,
		OwnerID:   d.OwnerID,
		Motif:     d.Motif,
		Width:     d.Width,
		Height:    d.Height,
		CreatedAt: d.CreatedAt.Format(timeFormat),
		UpdatedAt: d.UpdatedAt.Format(timeFormat),
	}
}

func dbVersionToVersion(v db.DesignVersion) Version {
	return Version{
		ID:        v.ID,
		Version:   int(v.Version),
		CreatedBy: v.CreatedBy,
		CreatedAt: v.CreatedAt.Format(timeFormat),
	}
}
